// Package style holds the terminal styles conductor prints with.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	ServiceStyle = lipgloss.NewStyle().
			Foreground(ServiceColor).
			Bold(true)

	TaskStyle = lipgloss.NewStyle().
			Foreground(TaskColor).
			Bold(true)

	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	PendingIndicator = MutedStyle.Render("○")
)

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

// Path renders a filesystem path.
func Path(p string) string {
	return PathStyle.Render(p)
}

// Title renders a section heading.
func Title(s string) string {
	return TitleStyle.Render(s)
}

// Warning renders a non-fatal problem the user should know about.
func Warning(s string) string {
	return WarningStyle.Render(s)
}

// ListItem indents s as an entry under a heading.
func ListItem(s string) string {
	return ListItemStyle.Render(s)
}

// PodType renders a pod type name in its color.
func PodType(name string) string {
	if name == "task" {
		return TaskStyle.Render(name)
	}
	return ServiceStyle.Render(name)
}
