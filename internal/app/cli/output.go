package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, headers ...string) *table {
	t := &table{w: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)}
	t.row(headers...)
	return t
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	return t.w.Flush()
}

func idText(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(*id)
}
