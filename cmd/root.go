/*
Copyright © 2025 the shareflow authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shareflow/internal/logutil"
	"shareflow/internal/prefstore"
	"shareflow/internal/probe"
	"shareflow/internal/sender/native"
	"shareflow/internal/sender/sdk"
	"shareflow/internal/sender/web"
	"shareflow/internal/share"
	"shareflow/internal/templatecfg"
)

var (
	messageFlag     string
	titleFlag       string
	platformFlag    string
	imagePaths      []string
	videoPaths      []string
	urlFlag         string
	hashtagFlag     []string
	mentionFlag     []string
	locationFlag    string
	templateFlag    string
	templatesPath   string
	placeholderFlag []string
	prefsPath       string
	dryRun          bool
	verboseFlag     bool
)

// Execute runs the root command.
func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shareflow [message]",
		Short: "Share content to a social network",
		Long: "shareflow composes a post, applies your preferences, validates it against " +
			"the target platform's limits, and delivers it through the app, the vendor SDK, " +
			"or the platform's web share page.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
		Example: `  shareflow "Ship it!" --platform twitter
  shareflow --platform facebook --url https://example.com --image ./shot.png
  shareflow --platform instagram --template trip --placeholder city=Lisbon
  echo "Release shipped" | shareflow --platform mastodon --dry-run`,
	}

	cmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Message text to post")
	cmd.Flags().StringVarP(&platformFlag, "platform", "p", string(share.PlatformNative), "Target platform")
	cmd.Flags().StringVar(&titleFlag, "title", "", "Post title")
	cmd.Flags().StringSliceVar(&imagePaths, "image", nil, "Image to attach (repeatable)")
	cmd.Flags().StringSliceVar(&videoPaths, "video", nil, "Video to attach (repeatable)")
	cmd.Flags().StringVar(&urlFlag, "url", "", "Link to include")
	cmd.Flags().StringSliceVar(&hashtagFlag, "hashtag", nil, "Hashtag to include (repeatable)")
	cmd.Flags().StringSliceVar(&mentionFlag, "mention", nil, "Account to mention (repeatable)")
	cmd.Flags().StringVar(&locationFlag, "location", "", "Place tag")
	cmd.Flags().StringVar(&templateFlag, "template", "", "Template category to render the message from")
	cmd.Flags().StringVar(&templatesPath, "templates", "", "Template catalog file")
	cmd.Flags().StringSliceVar(&placeholderFlag, "placeholder", nil, "Template placeholder as name=value (repeatable)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "Preference database path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be sent without sending")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().SortFlags = false

	cmd.AddCommand(newPlatformsCommand())
	cmd.AddCommand(newCompletionCommand())

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logutil.SetVerbose(verboseFlag)

	platform, err := share.ParsePlatform(platformFlag)
	if err != nil {
		return err
	}

	post, err := buildPost(cmd, args, platform)
	if err != nil {
		return err
	}

	prefs, closeStore, err := loadPreferences(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	catalog := share.NewCatalog(probe.Path{})
	if err := catalog.RefreshAvailability(ctx); err != nil {
		logutil.Warnf("availability refresh incomplete: %v", err)
	}

	dispatcher := share.NewDispatcher(catalog, share.Senders{
		Native: native.New(native.Config{Out: cmd.OutOrStdout()}),
		Sdk:    sdk.New(),
		Web:    web.New(nil),
	})

	out := cmd.OutOrStdout()
	if dryRun {
		return printPlan(out, dispatcher, post, prefs)
	}

	result, err := dispatcher.Share(ctx, post, prefs)
	if err != nil {
		return err
	}
	for _, w := range result.Validation.Warnings {
		logutil.Warnf("%s", w)
	}
	for _, e := range result.Validation.Errors {
		fmt.Fprintf(out, "error: %s\n", e)
	}
	if !result.Success {
		return fmt.Errorf("%s: %s", result.Code, result.Message)
	}
	fmt.Fprintln(out, result.Message)
	return nil
}

func buildPost(cmd *cobra.Command, args []string, platform share.Platform) (share.Post, error) {
	message, err := resolveMessage(cmd, args)
	if err != nil {
		return share.Post{}, err
	}

	placeholders, err := parsePlaceholders(placeholderFlag)
	if err != nil {
		return share.Post{}, err
	}

	hashtags := make([]string, 0, len(hashtagFlag))
	for _, tag := range hashtagFlag {
		if tag = strings.TrimPrefix(strings.TrimSpace(tag), "#"); tag != "" {
			hashtags = append(hashtags, tag)
		}
	}

	if templateFlag != "" {
		rendered, templateTags, err := renderTemplate(platform, placeholders)
		if err != nil {
			return share.Post{}, err
		}
		if message == "" {
			message = rendered
		}
		hashtags = mergeTags(hashtags, templateTags)
	}

	if message == "" && len(imagePaths) == 0 && len(videoPaths) == 0 {
		return share.Post{}, errors.New("message is required")
	}

	mentions := make([]string, 0, len(mentionFlag))
	for _, m := range mentionFlag {
		if m = strings.TrimPrefix(strings.TrimSpace(m), "@"); m != "" {
			mentions = append(mentions, m)
		}
	}

	media, err := collectMedia()
	if err != nil {
		return share.Post{}, err
	}

	post := share.Post{
		Title:        titleFlag,
		Text:         message,
		Hashtags:     hashtags,
		Mentions:     mentions,
		Media:        media,
		URL:          urlFlag,
		Platform:     platform,
		Placeholders: placeholders,
	}
	if locationFlag != "" {
		post.Location = &share.Location{Name: locationFlag}
	}
	return post, nil
}

func resolveMessage(cmd *cobra.Command, args []string) (string, error) {
	var message string

	if messageFlag != "" {
		message = messageFlag
	}

	if len(args) > 0 {
		if message != "" {
			return "", errors.New("provide the message either as an argument or with --message, not both")
		}
		message = strings.Join(args, " ")
	}

	if message != "" {
		return strings.TrimSpace(message), nil
	}

	stdin := cmd.InOrStdin()
	if file, ok := stdin.(*os.File); ok && !term.IsTerminal(int(file.Fd())) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		message = strings.TrimSpace(string(data))
	}

	return message, nil
}

func renderTemplate(platform share.Platform, placeholders map[string]string) (string, []string, error) {
	if templatesPath == "" {
		return "", nil, errors.New("--template requires --templates pointing at a catalog file")
	}
	catalog, err := templatecfg.Load(templatesPath)
	if err != nil {
		return "", nil, err
	}
	tmpl, ok := catalog.Find(platform, templateFlag)
	if !ok {
		return "", nil, fmt.Errorf("no %q template for %s in %s", templateFlag, platform, templatesPath)
	}
	tags := share.NormalizeHashtags(tmpl.RenderWithHashtags(placeholders))
	stripped := make([]string, 0, len(tags))
	for _, t := range tags {
		stripped = append(stripped, strings.TrimPrefix(t, "#"))
	}
	return tmpl.Render(placeholders), stripped, nil
}

func mergeTags(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[strings.ToLower(t)] = struct{}{}
	}
	for _, t := range extra {
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		existing = append(existing, t)
	}
	return existing
}

func parsePlaceholders(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid placeholder %q, expected name=value", pair)
		}
		values[strings.TrimSpace(name)] = value
	}
	return values, nil
}

func collectMedia() ([]share.Media, error) {
	var media []share.Media
	order := 0
	add := func(paths []string, t share.MediaType) error {
		for _, path := range paths {
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("media %q: %w", path, err)
			}
			media = append(media, share.Media{
				Type:   t,
				Source: path,
				Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
				Size:   info.Size(),
				Order:  order,
			})
			order++
		}
		return nil
	}
	if err := add(imagePaths, share.MediaImage); err != nil {
		return nil, err
	}
	if err := add(videoPaths, share.MediaVideo); err != nil {
		return nil, err
	}
	return media, nil
}

func loadPreferences(ctx context.Context) (share.Preferences, func(), error) {
	path := prefsPath
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			logutil.Debugf("no user config dir, using default preferences: %v", err)
			return prefstore.Defaults(), func() {}, nil
		}
		dir := filepath.Join(configDir, "shareflow")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return share.Preferences{}, nil, fmt.Errorf("create config dir: %w", err)
		}
		path = filepath.Join(dir, "prefs.db")
	}

	store, err := prefstore.Open(path)
	if err != nil {
		return share.Preferences{}, nil, err
	}
	prefs, err := store.GetPreferences(ctx)
	if err != nil {
		store.Close()
		return share.Preferences{}, nil, err
	}
	return prefs, func() { store.Close() }, nil
}

func printPlan(out io.Writer, dispatcher *share.Dispatcher, post share.Post, prefs share.Preferences) error {
	enriched, vr, method, err := dispatcher.Plan(post, prefs)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "[dry-run] platform: %s\n", enriched.Platform)
	fmt.Fprintf(out, "[dry-run] method: %s\n", method)
	fmt.Fprintf(out, "[dry-run] text: %q\n", enriched.Text)
	if len(enriched.Hashtags) > 0 {
		fmt.Fprintf(out, "[dry-run] hashtags: %s\n", strings.Join(enriched.Hashtags, ", "))
	}
	if len(enriched.Mentions) > 0 {
		fmt.Fprintf(out, "[dry-run] mentions: %s\n", strings.Join(enriched.Mentions, ", "))
	}
	for _, m := range enriched.Media {
		fmt.Fprintf(out, "[dry-run] media: %s (%s)\n", m.Source, m.Type)
	}
	for _, e := range vr.Errors {
		fmt.Fprintf(out, "[dry-run] error: %s\n", e)
	}
	for _, w := range vr.Warnings {
		fmt.Fprintf(out, "[dry-run] warning: %s\n", w)
	}
	if !vr.Valid() {
		return fmt.Errorf("content would be rejected with %d error(s)", len(vr.Errors))
	}
	return nil
}
