package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/sambabib/ncu-helper/pkg/filter"
)

var (
	Included = color.New(color.FgGreen)
	Ignored  = color.New(color.FgYellow)
	Capped   = color.New(color.Faint)
	Header   = color.New(color.Bold)
	Failure  = color.New(color.FgRed, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// State describes how a library takes part in the generated output.
func State(lib filter.Library) string {
	switch {
	case lib.Disabled:
		return "capped"
	case !lib.Checked:
		return "ignored"
	default:
		return "included"
	}
}

func stateColor(state string) *color.Color {
	switch state {
	case "capped":
		return Capped
	case "ignored":
		return Ignored
	default:
		return Included
	}
}

// PrintLibraries prints the library list in a tabular text format
func PrintLibraries(w io.Writer, libs []filter.Library) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// one escape pair around the whole row: the opening code only widens the
	// empty first cell and the reset trails the last one
	fmt.Fprintln(tw, Header.Sprint("\tNAME\tFROM\tTO\tDIFF\tSTATE"))
	fmt.Fprintln(tw, "\t----\t----\t--\t----\t-----")

	for _, lib := range libs {
		box := "[x]"
		if !lib.Checked {
			box = "[ ]"
		}
		diff := string(lib.Diff)
		if diff == "" {
			diff = "-"
		}
		name := lib.Name
		if lib.Alias != "" {
			name = fmt.Sprintf("%s (%s)", lib.Name, lib.Alias)
		}

		// colored cell last so escape codes do not skew the column widths
		state := State(lib)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			box,
			name,
			lib.From,
			lib.To,
			diff,
			stateColor(state).Sprint(state),
		)
	}

	tw.Flush()
}

// PrintDiagnostic prints the invalid-input message in the failure color.
func PrintDiagnostic(w io.Writer, msg string) {
	Failure.Fprintln(w, msg)
}
