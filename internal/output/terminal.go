package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// TerminalWidth returns the terminal width for w, or defaultTermWidth if w is
// not a terminal or the width cannot be determined.
func TerminalWidth(w io.Writer) int {
	type fder interface{ Fd() uintptr }
	if f, ok := w.(fder); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 { //nolint:gosec // uintptr→int is safe for file descriptors; they fit in int on all supported platforms
			return width
		}
	}
	return defaultTermWidth
}

// NewWrappingTable returns a tablewriter that auto-wraps cell content to fit
// the terminal. minWidth is the floor for the computed column max width;
// overhead is the characters consumed by borders, padding, and fixed columns.
func NewWrappingTable(w io.Writer, minWidth, overhead int) *tablewriter.Table {
	maxColWidth := max(minWidth, TerminalWidth(w)-overhead)
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting:   tw.CellFormatting{AutoWrap: tw.WrapNormal},
				ColMaxWidths: tw.CellWidth{Global: maxColWidth},
			},
		}),
	)
}

// Row is one key/value pair of a KEY/VALUE table.
type Row struct {
	Key   string
	Value string
}

// WriteKeyValueTable renders rows as a two-column KEY/VALUE table.
// Values are stripped of ANSI escape sequences first.
func WriteKeyValueTable(w io.Writer, rows []Row) error {
	table := NewWrappingTable(w, 20, 6)
	table.Header([]string{"KEY", "VALUE"})
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.Key, StripANSI(r.Value)}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteKeyValueLines renders rows as key=value lines.
func WriteKeyValueLines(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if _, err := io.WriteString(w, r.Key+"="+StripANSI(r.Value)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
