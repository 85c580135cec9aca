package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// loading prints the screen's in-flight note; lists can take a moment against
// a remote backend.
func (cli *commandLine) loading(what string) {
	fmt.Fprintf(cli.out, "Loading %s...\n", what)
}

// table renders rows with aligned columns. An empty row set prints the
// documented empty-state line instead of a bare header.
func (cli *commandLine) table(header []string, rows [][]string, emptyMsg string) {
	if len(rows) == 0 {
		fmt.Fprintln(cli.out, emptyMsg)
		return
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush() //nolint:errcheck
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// dash substitutes the placeholder for an absent value.
func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func itoa(i int) string { return fmt.Sprintf("%d", i) }

func vnd(amount int) string {
	s := itoa(amount)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String() + " ₫"
}
