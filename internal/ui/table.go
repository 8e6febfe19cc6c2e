package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
}

// Row is a slice of cell values.
type Row []string

// Table renders fixed-width columnar output for record listings.
type Table struct {
	Columns []Column
	Rows    []Row
	SelIdx  int // selected row index (-1 = none)
}

// NewTable creates a table with no rows and nothing selected.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols, SelIdx: -1}
}

// AddRow appends a row.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// fit forces s into exactly width cells, truncating on rune boundaries.
// Width math happens on the raw string before any styling; applying a
// lipgloss Width to already-styled text miscounts the ANSI escapes and
// wraps the cell.
func fit(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		runes = runes[:width]
	}
	return string(runes) + strings.Repeat(" ", width-len(runes))
}

// renderRow styles one line of cells. A row shorter than the column
// set renders empty cells for the missing tail.
func (t *Table) renderRow(row Row, style lipgloss.Style) string {
	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		val := ""
		if i < len(row) {
			val = row[i]
		}
		cells[i] = style.Render(fit(val, col.Width))
	}
	return strings.Join(cells, " ")
}

// Render returns the table as a string: header, divider, then rows,
// with the selected row (if any) highlighted.
func (t *Table) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(ColorValue)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMeta)

	header := make(Row, len(t.Columns))
	divider := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Title
		divider[i] = strings.Repeat("-", col.Width)
	}

	lines := []string{
		t.renderRow(header, headerStyle),
		t.renderRow(divider, dimStyle),
	}
	for i, row := range t.Rows {
		style := cellStyle
		if i == t.SelIdx {
			style = StyleSelected
		}
		lines = append(lines, t.renderRow(row, style))
	}
	return strings.Join(lines, "\n") + "\n"
}

// KeyValueBlock renders labelled values inside a rounded border, with
// labels aligned to a fixed gutter.
func KeyValueBlock(title string, pairs [][2]string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(fmt.Sprintf("%-20s", p[0]+":"))
		sb.WriteString("  " + key + " " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(sb.String())
}

// padR pads s to visible width n (ANSI-safe using lipgloss.Width).
func padR(s string, n int) string {
	w := lipgloss.Width(s)
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}
