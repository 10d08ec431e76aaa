// Package prefstore persists user share preferences in SQLite.
package prefstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"shareflow/internal/share"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	id                  INTEGER PRIMARY KEY CHECK (id = 1),
	include_app_hashtag INTEGER NOT NULL DEFAULT 1,
	include_location    INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS platform_prefs (
	platform    TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	enabled     INTEGER NOT NULL DEFAULT 1,
	hashtag_cap INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS platform_tags (
	platform TEXT NOT NULL,
	kind     TEXT NOT NULL CHECK (kind IN ('hashtag', 'mention')),
	position INTEGER NOT NULL,
	value    TEXT NOT NULL,
	PRIMARY KEY (platform, kind, position)
);
`

// Store reads and writes preferences. Safe for concurrent use; writes run in
// a single transaction.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the preference database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open preference db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping preference db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init preference schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Defaults is what a fresh installation gets: every platform enabled in the
// catalog's display order, attribution tag on, location off.
func Defaults() share.Preferences {
	prefs := share.Preferences{
		IncludeAppHashtag: true,
		Platforms:         make(map[share.Platform]share.PlatformPrefs),
	}
	for _, p := range share.Platforms() {
		prefs.PlatformOrder = append(prefs.PlatformOrder, p)
		prefs.Platforms[p] = share.PlatformPrefs{Enabled: true}
	}
	return prefs
}

// GetPreferences loads the stored preferences, or Defaults when nothing has
// been saved yet.
func (s *Store) GetPreferences(ctx context.Context) (share.Preferences, error) {
	prefs := share.Preferences{Platforms: make(map[share.Platform]share.PlatformPrefs)}

	var includeHashtag, includeLocation int
	err := s.db.QueryRowContext(ctx,
		`SELECT include_app_hashtag, include_location FROM settings WHERE id = 1`,
	).Scan(&includeHashtag, &includeLocation)
	if err == sql.ErrNoRows {
		return Defaults(), nil
	}
	if err != nil {
		return share.Preferences{}, fmt.Errorf("load settings: %w", err)
	}
	prefs.IncludeAppHashtag = includeHashtag != 0
	prefs.IncludeLocation = includeLocation != 0

	rows, err := s.db.QueryContext(ctx,
		`SELECT platform, enabled, hashtag_cap FROM platform_prefs ORDER BY position`,
	)
	if err != nil {
		return share.Preferences{}, fmt.Errorf("load platform prefs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			platform string
			enabled  int
			capOver  int
		)
		if err := rows.Scan(&platform, &enabled, &capOver); err != nil {
			return share.Preferences{}, fmt.Errorf("scan platform prefs: %w", err)
		}
		p := share.Platform(platform)
		prefs.PlatformOrder = append(prefs.PlatformOrder, p)
		prefs.Platforms[p] = share.PlatformPrefs{Enabled: enabled != 0, HashtagCap: capOver}
	}
	if err := rows.Err(); err != nil {
		return share.Preferences{}, fmt.Errorf("iterate platform prefs: %w", err)
	}

	if err := s.loadTags(ctx, &prefs); err != nil {
		return share.Preferences{}, err
	}
	return prefs, nil
}

func (s *Store) loadTags(ctx context.Context, prefs *share.Preferences) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT platform, kind, value FROM platform_tags ORDER BY platform, kind, position`,
	)
	if err != nil {
		return fmt.Errorf("load platform tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var platform, kind, value string
		if err := rows.Scan(&platform, &kind, &value); err != nil {
			return fmt.Errorf("scan platform tags: %w", err)
		}
		p := share.Platform(platform)
		pp := prefs.Platforms[p]
		switch kind {
		case "hashtag":
			pp.DefaultHashtags = append(pp.DefaultHashtags, value)
		case "mention":
			pp.DefaultMentions = append(pp.DefaultMentions, value)
		}
		prefs.Platforms[p] = pp
	}
	return rows.Err()
}

// SavePreferences replaces the stored preferences atomically.
func (s *Store) SavePreferences(ctx context.Context, prefs share.Preferences) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO settings (id, include_app_hashtag, include_location) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET include_app_hashtag = excluded.include_app_hashtag,
		                               include_location = excluded.include_location`,
		boolInt(prefs.IncludeAppHashtag), boolInt(prefs.IncludeLocation),
	); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM platform_prefs`); err != nil {
		return fmt.Errorf("clear platform prefs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM platform_tags`); err != nil {
		return fmt.Errorf("clear platform tags: %w", err)
	}

	for i, p := range prefs.PlatformOrder {
		pp := prefs.Platforms[p]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO platform_prefs (platform, position, enabled, hashtag_cap) VALUES (?, ?, ?, ?)`,
			string(p), i, boolInt(pp.Enabled), pp.HashtagCap,
		); err != nil {
			return fmt.Errorf("save platform prefs: %w", err)
		}
		for j, tag := range pp.DefaultHashtags {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO platform_tags (platform, kind, position, value) VALUES (?, 'hashtag', ?, ?)`,
				string(p), j, tag,
			); err != nil {
				return fmt.Errorf("save default hashtags: %w", err)
			}
		}
		for j, mention := range pp.DefaultMentions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO platform_tags (platform, kind, position, value) VALUES (?, 'mention', ?, ?)`,
				string(p), j, mention,
			); err != nil {
				return fmt.Errorf("save default mentions: %w", err)
			}
		}
	}

	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
