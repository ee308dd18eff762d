package tui

import (
	"github.com/handiism/tagpatch/internal/patch"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Layout describes how a patch wants its table drawn.
type Layout interface {
	TableHeaders() []string
	TableFormat() string
	TableMaxColWidth() int
}

// RenderTable draws rows using layout. Flagged cells are highlighted.
// Supported formats are "grid", "rounded" and "plain"; anything else
// falls back to "grid".
func RenderTable(layout Layout, rows patch.Table) string {
	headers := layout.TableHeaders()
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	applyFormat(tw, layout.TableFormat())

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			r[i] = ""
			if i < len(row) {
				r[i] = renderCell(row[i])
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
			WidthMax:    layout.TableMaxColWidth(),
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func applyFormat(tw table.Writer, format string) {
	switch format {
	case "rounded":
		tw.SetStyle(table.StyleRounded)
	case "plain":
		tw.SetStyle(table.StyleLight)
		tw.Style().Options.DrawBorder = false
		tw.Style().Options.SeparateColumns = false
	default:
		tw.SetStyle(table.StyleDefault)
		tw.Style().Options.SeparateRows = true
	}
}

func renderCell(c patch.Cell) string {
	if c.Flag && c.Text != "" {
		return flagStyle.Render(c.Text)
	}
	return c.Text
}
