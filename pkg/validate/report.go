package validate

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
)

// Render writes the report as a table to the given writer. Only mismatches
// are listed, unless all is set.
func (r *Report) Render(w io.Writer, all bool) {
	bold := color.New(color.Bold).SprintfFunc()
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	mismatches := r.Mismatches()
	output(w, "Epoch:\t\t%s\n", bold("%d", r.Epoch))
	output(w, "Compared:\t%s\n", bold("%d", len(r.Comparisons)))
	if len(mismatches) == 0 {
		output(w, "Mismatches:\t%s\n", green("none"))
	} else {
		output(w, "Mismatches:\t%s\n", red(len(mismatches)))
	}
	if len(r.Unobserved) > 0 {
		output(w, "Unobserved:\t%s\n", strings.Join(r.Unobserved, ", "))
	}

	rows := mismatches
	if all {
		rows = r.Comparisons
	}
	if len(rows) == 0 {
		return
	}
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Subject", "Field", "Computed", "Observed", "Delta"})
	tbl.SetBorder(true)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, c := range rows {
		delta := c.Delta().String()
		if c.Matches() {
			delta = green(delta)
		} else {
			delta = red(delta)
		}
		tbl.Append([]string{c.Subject, c.Field, c.Computed.String(), c.Observed.String(), delta})
	}
	tbl.Render()
}

func output(w io.Writer, format string, a ...any) {
	_, err := fmt.Fprintf(w, format, a...)
	if err != nil {
		log.Errorf("couldn't write the report: %s", err.Error())
	}
}
