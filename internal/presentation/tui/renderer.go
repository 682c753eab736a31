package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// It detects the background style automatically and word-wraps to the
// terminal width (capped, so wide terminals stay readable).
func NewRenderer() func(string) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		if width > 100 {
			width = 100
		}
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)

	return func(markdown string) (string, error) {
		if err != nil {
			// Fall back to the raw markdown rather than failing the command
			return markdown, nil
		}
		return r.Render(markdown)
	}
}

// IsInteractive reports whether stdout is attached to a terminal. Piped
// output should receive plain text instead of ANSI-styled markdown.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
