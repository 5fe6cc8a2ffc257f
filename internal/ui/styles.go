package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Sky)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Green)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Red)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Text)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Subtext0)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Mauve)
)

// Status is the outcome class of a report line
type Status int

const (
	StatusSuccess Status = iota
	StatusError
	StatusWarning
	StatusInfo
)

// GetStatusStyle returns the style for a report line of the given status
func GetStatusStyle(status Status) lipgloss.Style {
	switch status {
	case StatusSuccess:
		return SuccessStyle
	case StatusError:
		return ErrorStyle
	case StatusWarning:
		return WarningStyle
	default:
		return InfoStyle
	}
}

// Banner is the one-line program introduction
func Banner(version string) string {
	return BannerStyle.Render(fmt.Sprintf("MAMEduino %s - Configure the Arduino Leonardo MAME interface.", version))
}

// Println writes one styled line to w
func Println(w io.Writer, status Status, format string, args ...any) {
	fmt.Fprintln(w, GetStatusStyle(status).Render(fmt.Sprintf(format, args...)))
}
