// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Output formats accepted by batch.
const (
	formatTable = "table"
	formatTSV   = "tsv"
)

// table collects static rows for the batch reports.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// render writes t to w as an aligned table or, with formatTSV, as plain
// tab-separated lines without title or divider.
func (t *table) render(w io.Writer, format string) error {
	if format == formatTSV {
		var sb strings.Builder
		sb.WriteString(strings.Join(t.headers, "\t") + "\n")
		for _, row := range t.rows {
			sb.WriteString(strings.Join(row, "\t") + "\n")
		}
		_, err := io.WriteString(w, sb.String())

		return err
	}
	_, err := io.WriteString(w, t.view(lipgloss.NewRenderer(w)))

	return err
}

func (t *table) view(re *lipgloss.Renderer) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// Width includes the padding.
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	title := re.NewStyle().Bold(true).Underline(true)
	header := re.NewStyle().Bold(true).Padding(0, 1)
	cell := re.NewStyle().Padding(0, 1)
	sep := re.NewStyle().Foreground(lipgloss.Color("241"))

	line := func(sb *strings.Builder, style lipgloss.Style, cells []string) {
		for i := range widths {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			sb.WriteString(style.Width(widths[i]).Render(c))
			if i < len(widths)-1 {
				sb.WriteString(sep.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(title.Render(t.title) + "\n")
	}
	line(&sb, header, t.headers)
	sb.WriteString(sep.Render(strings.Repeat("-", total)) + "\n")
	for _, row := range t.rows {
		line(&sb, cell, row)
	}
	sb.WriteString("\n")

	return sb.String()
}

func formatValue(v float64, ok bool) string {
	if !ok {
		return "-"
	}

	return fmt.Sprintf("%.4g", v)
}
