package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// columnGap separates table columns in the CLI listings.
const columnGap = "  "

// SimpleTable renders static tabular data for the non-interactive CLI
// listings (missions, invites, skills, search results).
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewSimpleTable creates a table with the given title and column headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{Title: title, Headers: headers}
}

// AddRow appends a row. Missing trailing cells render empty; extra cells
// beyond the header count are dropped.
func (t *SimpleTable) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Len reports the number of data rows.
func (t *SimpleTable) Len() int { return len(t.Rows) }

func (t *SimpleTable) widths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// View renders the table. An empty table renders the title and a muted
// placeholder so listings never print a bare header block.
func (t *SimpleTable) View(styles Styles) string {
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		sb.WriteString(styles.Muted.Render("(none)"))
		sb.WriteString("\n")
		return sb.String()
	}

	widths := t.widths()
	line := func(cells []string, style lipgloss.Style) {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			parts[i] = style.Render(cell) + strings.Repeat(" ", pad)
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, columnGap), " "))
		sb.WriteString("\n")
	}

	line(t.Headers, styles.Bold)
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("-", w)
	}
	line(rules, styles.Muted)
	for _, row := range t.Rows {
		line(row, styles.Body)
	}
	return sb.String()
}
