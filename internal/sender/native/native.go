// Package native implements the native-intent sender: the composed content
// is handed to the OS share surface, or to whatever hand-off command the
// host provides.
package native

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"shareflow/internal/logutil"
	"shareflow/internal/share"
)

const (
	senderName = "native"

	// envCommand names a host command that receives the composed share text
	// on stdin, e.g. termux-share on Android hosts.
	envCommand = "SHAREFLOW_NATIVE_COMMAND"
)

// Config controls where the composed content goes.
type Config struct {
	// Command is run with the share text on stdin. Empty means fall back to
	// the SHAREFLOW_NATIVE_COMMAND environment variable, then to Out.
	Command string
	// Out receives the composed text when no command is configured.
	// Defaults to stdout.
	Out io.Writer
}

// Sender writes or pipes the composed bundle to the OS hand-off point.
type Sender struct {
	command string
	out     io.Writer
}

// New constructs the native-intent sender.
func New(cfg Config) *Sender {
	command := cfg.Command
	if command == "" {
		command = strings.TrimSpace(os.Getenv(envCommand))
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	return &Sender{command: command, out: out}
}

// Name identifies the sender.
func (s *Sender) Name() string { return senderName }

// Send composes the bundle and hands it off. With a command configured the
// text is piped to it; otherwise it is written to the configured writer.
func (s *Sender) Send(ctx context.Context, b share.Bundle) error {
	text := Compose(b)
	if s.command == "" {
		if _, err := fmt.Fprintln(s.out, text); err != nil {
			return fmt.Errorf("write share text: %w", err)
		}
		return nil
	}

	logutil.Debugf("native hand-off: command=%s bytes=%d", s.command, len(text))
	cmd := exec.CommandContext(ctx, s.command)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("native hand-off %s: %w", s.command, err)
	}
	return nil
}

// Compose renders the final share text: optional title line, then the
// bundle's composed body, then any media references.
func Compose(b share.Bundle) string {
	var sb strings.Builder
	if b.Title != "" {
		sb.WriteString(b.Title)
		sb.WriteString("\n\n")
	}
	sb.WriteString(b.ComposeText())
	for _, m := range b.Media {
		sb.WriteString("\n")
		sb.WriteString(m.Source)
	}
	return sb.String()
}
