package views

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tboard/internal/ui/styles"
)

// newTable builds a focused table in the theme's colours
func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Current.Border).
		BorderBottom(true).
		Foreground(styles.Current.Secondary).
		Bold(true)
	ts.Cell = ts.Cell.Foreground(styles.Current.Foreground)
	ts.Selected = ts.Selected.
		Foreground(styles.Current.Primary).
		Background(styles.Current.Selection).
		Bold(true)
	t.SetStyles(ts)
	return t
}

// spread sizes columns to fill width. weights are relative shares.
func spread(titles []string, weights []int, width int) []table.Column {
	total := 0
	for _, w := range weights {
		total += w
	}
	// each cell carries one cell of padding on both sides
	avail := max(width-2*len(titles), len(titles)*4)

	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		cols[i] = table.Column{Title: title, Width: max(avail*weights[i]/total, 4)}
	}
	return cols
}
