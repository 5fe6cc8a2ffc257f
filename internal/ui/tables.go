package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	bubbletable "github.com/evertras/bubble-table/table"
)

// KeyRow is one entry of the named key table
type KeyRow struct {
	Name string
	Code byte
}

// RenderKeyTable renders the named keys as a static table
func RenderKeyTable(keys []KeyRow) string {
	columns := []table.Column{
		{Title: "Name", Width: 12},
		{Title: "Code", Width: 6},
	}

	rows := make([]table.Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, table.Row{k.Name, fmt.Sprintf("0x%02X", k.Code)})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Subtext0).
		BorderBottom(true).
		Bold(true).
		Foreground(Text)
	// Nothing is selectable in a static render
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}

// PortRow is one serial port in the port listing
type PortRow struct {
	Path        string
	Type        string
	Description string
	// Identity is the probe result, empty when not probed
	Identity string
}

const (
	columnKeyPort     = "port"
	columnKeyType     = "type"
	columnKeyDesc     = "desc"
	columnKeyIdentity = "identity"
)

// RenderPortTable renders the port listing. The identity column is only
// shown when probed is set.
func RenderPortTable(ports []PortRow, probed bool) string {
	columns := []bubbletable.Column{
		bubbletable.NewColumn(columnKeyPort, "Port", 15),
		bubbletable.NewColumn(columnKeyType, "Type", 16),
		bubbletable.NewColumn(columnKeyDesc, "Description", 22),
	}
	if probed {
		columns = append(columns, bubbletable.NewColumn(columnKeyIdentity, "Identity", 32))
	}

	rows := make([]bubbletable.Row, 0, len(ports))
	for _, p := range ports {
		data := bubbletable.RowData{
			columnKeyPort: p.Path,
			columnKeyType: p.Type,
			columnKeyDesc: p.Description,
		}
		if probed {
			identity := bubbletable.NewStyledCell("-", MutedStyle)
			if p.Identity != "" {
				identity = bubbletable.NewStyledCell(p.Identity, SuccessStyle)
			}
			data[columnKeyIdentity] = identity
		}
		rows = append(rows, bubbletable.NewRow(data))
	}

	return bubbletable.New(columns).
		WithRows(rows).
		HeaderStyle(TitleStyle).
		WithBaseStyle(lipgloss.NewStyle().BorderForeground(Surface1).Align(lipgloss.Left)).
		BorderRounded().
		WithFooterVisibility(false).
		View()
}
