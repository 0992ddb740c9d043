package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dmitrijs2005/achievo/internal/client/models"
)

const maxCellWidth = 40

// table writes tab separated rows as aligned columns.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, header ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
	t.row(header...)
	return t
}

func (t *table) row(cells ...string) {
	for i, c := range cells {
		cells[i] = truncate(c, maxCellWidth)
	}
	fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
}

func (t *table) flush() {
	_ = t.tw.Flush()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func optDate(t *models.Timestamp) string {
	if t == nil {
		return "-"
	}
	return t.Date()
}

func optID(id *int64) string {
	if id == nil {
		return "-"
	}
	return itoa(*id)
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("*", n) + strings.Repeat(".", 5-n)
}

// bar renders n against top as a fixed width bar.
func bar(n, top, width int) string {
	if top <= 0 || n <= 0 {
		return ""
	}
	l := n * width / top
	if l == 0 {
		l = 1
	}
	return strings.Repeat("#", l)
}

func parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
