package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableColumn describes one column of a listing. A zero maxWidth leaves the
// column unwrapped.
type tableColumn struct {
	header   string
	align    text.Align
	maxWidth int
}

// historyColumns lay out `vidgrab history`.
var historyColumns = []tableColumn{
	{header: "ID", align: text.AlignLeft},
	{header: "Phase", align: text.AlignLeft},
	{header: "Progress", align: text.AlignRight},
	{header: "Format", align: text.AlignLeft},
	{header: "URL", align: text.AlignLeft, maxWidth: 60},
	{header: "Updated", align: text.AlignLeft},
}

// renderTable writes rows under columns; missing trailing cells render empty.
func renderTable(columns []tableColumn, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       col.align,
			AlignHeader: text.AlignLeft,
			WidthMax:    col.maxWidth,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range rows {
		row := make(table.Row, len(columns))
		for i := range row {
			row[i] = ""
			if i < len(cells) {
				row[i] = cells[i]
			}
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}
