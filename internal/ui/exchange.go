package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Direction of an exchange line
type Direction int

const (
	TX Direction = iota
	RX
)

// TXStatus describes what happened to an outgoing frame
type TXStatus string

const (
	TXWritten TXStatus = "WRITTEN"
	TXError   TXStatus = "ERROR"
)

// ExchangeLine is one frame sent to or bytes received from the device
type ExchangeLine struct {
	Timestamp time.Time
	Direction Direction
	Status    TXStatus // empty for RX
	Data      []byte
}

// FormatExchange renders a line as timestamp, direction, hex and ASCII
func FormatExchange(line ExchangeLine) string {
	var indicator string
	if line.Direction == TX {
		txColor := Peach
		statusText := "TX"
		switch line.Status {
		case TXWritten:
			txColor = Green
			statusText = "TX ✓"
		case TXError:
			txColor = Red
			statusText = "TX ✗"
		}
		indicator = lipgloss.NewStyle().
			Foreground(txColor).
			Bold(true).
			Render("↗ " + statusText)
	} else {
		indicator = lipgloss.NewStyle().
			Foreground(Sky).
			Bold(true).
			Render("↙ RX")
	}

	timestamp := MutedStyle.Render(fmt.Sprintf("[%s]", line.Timestamp.Format("15:04:05.000")))

	if len(line.Data) == 0 {
		return fmt.Sprintf("%s %s: %s", timestamp, indicator, MutedStyle.Render("(nothing)"))
	}
	return fmt.Sprintf("%s %s: HEX: % X  ASCII: %s", timestamp, indicator, line.Data, printable(line.Data))
}

// printable replaces every byte outside printable ASCII with a dot
func printable(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		if b >= 32 && b <= 126 {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
