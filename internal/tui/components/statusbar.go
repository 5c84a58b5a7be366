package components

import (
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind selects the color of the status bar message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusOK
	StatusWarn
	StatusError
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// an optional message in the middle and the storage location on the right.
func RenderStatusBar(width int, msg string, kind StatusKind, location string) string {
	t := theme.Active

	base := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	msgColor := t.TextMuted
	switch kind {
	case StatusOK:
		msgColor = t.GreenBright
	case StatusWarn:
		msgColor = t.Orange
	case StatusError:
		msgColor = t.Red
	}
	msgStyle := base.Foreground(msgColor).Bold(kind != StatusInfo)

	left := base.Render(" ? help  [ ] month  q quit ")
	right := base.Render(" " + location + " ")
	mid := ""
	if msg != "" {
		mid = msgStyle.Render(" " + msg + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if padding < 0 {
		right = ""
		padding = width - lipgloss.Width(left) - lipgloss.Width(mid)
	}
	if padding < 0 {
		padding = 0
	}

	half := padding / 2
	return left +
		base.Render(spaces(half)) + mid + base.Render(spaces(padding-half)) +
		right
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
