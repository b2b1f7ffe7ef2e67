package logger

import (
	"fmt"
	"io"
	"strings"
)

type Table struct {
	headers     []string
	rows        [][]string
	columnWidth []int
	out         io.Writer
}

func NewTable(headers []string, out io.Writer) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	return &Table{
		headers:     headers,
		columnWidth: widths,
		out:         out,
	}
}

func (t *Table) AddRow(cells ...string) {
	if len(cells) > len(t.headers) {
		cells = cells[:len(t.headers)]
	} else if len(cells) < len(t.headers) {
		padded := make([]string, len(t.headers))
		copy(padded, cells)
		cells = padded
	}

	for i, cell := range cells {
		if len(cell) > t.columnWidth[i] {
			t.columnWidth[i] = len(cell)
		}
	}

	t.rows = append(t.rows, cells)
}

// Render draws the table with box-drawing borders, without a trailing newline.
func (t *Table) Render() string {
	var sb strings.Builder

	rule := func(left, mid, right string) {
		sb.WriteString(left)
		for i, width := range t.columnWidth {
			sb.WriteString(strings.Repeat("─", width+2))
			if i < len(t.columnWidth)-1 {
				sb.WriteString(mid)
			}
		}
		sb.WriteString(right)
		sb.WriteString("\n")
	}
	row := func(cells []string) {
		sb.WriteString("│")
		for i, cell := range cells {
			fmt.Fprintf(&sb, " %-*s │", t.columnWidth[i], cell)
		}
		sb.WriteString("\n")
	}

	rule("┌", "┬", "┐")
	row(t.headers)
	rule("├", "┼", "┤")
	for _, r := range t.rows {
		row(r)
	}
	rule("└", "┴", "┘")

	return strings.TrimSuffix(sb.String(), "\n")
}

func (t *Table) Print() {
	fmt.Fprintln(t.out, t.Render())
}
