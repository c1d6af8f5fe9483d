// Package printer formats command-line output with colour.
package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"appeal-archive/internal/models"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

// Printer writes user-facing messages to out and errors to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

func (p *Printer) Success(format string, a ...any) {
	green.Fprintf(p.out, "✓ %s\n", fmt.Sprintf(format, a...))
}

func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

func (p *Printer) Warning(format string, a ...any) {
	yellow.Fprintf(p.out, "! %s\n", fmt.Sprintf(format, a...))
}

func (p *Printer) Step(format string, a ...any) {
	cyan.Fprintf(p.out, "→ %s\n", fmt.Sprintf(format, a...))
}

// Error prints title and explanation to the error stream and returns an
// error carrying only the title, for cobra to exit with.
func (p *Printer) Error(title, explanation string, suggestions ...string) error {
	red.Fprintf(p.errOut, "%s\n", title)
	if explanation != "" {
		fmt.Fprintf(p.errOut, "\n%s\n", explanation)
	}
	if len(suggestions) > 0 {
		fmt.Fprintln(p.errOut)
		for _, s := range suggestions {
			fmt.Fprintf(p.errOut, "  • %s\n", s)
		}
	}
	return fmt.Errorf("%s", title)
}

// Appeals prints appeals as an aligned table, newest first as given.
func (p *Printer) Appeals(appeals []models.Appeal) {
	if len(appeals) == 0 {
		faint.Fprintln(p.out, "no appeals match")
		return
	}
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tDATE\tCATEGORY\tSTATUS\tAPPLICANT\tSUBJECT")
	for _, a := range appeals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Number, a.Date, a.CategoryName, a.Status, a.Applicant, oneLine(a.Subject))
	}
	tw.Flush()
	faint.Fprintf(p.out, "%d appeal(s)\n", len(appeals))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
