// Package pipeline ties parsing, filtering and command generation together.
// Every run is a pure function of the pasted text and the preferences.
package pipeline

import (
	"errors"
	"strings"

	"github.com/sambabib/ncu-helper/pkg/filter"
	"github.com/sambabib/ncu-helper/pkg/generator"
	"github.com/sambabib/ncu-helper/pkg/ncu"
	"github.com/sambabib/ncu-helper/pkg/prefs"
)

// Diagnostic replaces the output when the pasted text cannot be parsed.
const Diagnostic = "This doesn't look like a valid npx npm-check-updates output."

// Sample is a representative npm-check-updates report, shown while nothing
// valid has been pasted yet.
const Sample = `babel-plugin-styled-components  ^1.10.2  →  ^1.10.6
gatsby                          ^2.10.5  →  ^2.13.3
gatsby-image                     ^2.2.3  →   ^2.2.4
gatsby-plugin-manifest           ^2.2.0  →   ^2.2.1
gatsby-plugin-offline            ^2.2.0  →   ^2.2.1
gatsby-plugin-sharp              ^2.2.1  →   ^2.2.2
gatsby-source-filesystem         ^2.1.1  →   ^2.1.2
gatsby-transformer-sharp         ^2.2.0  →   ^2.2.1`

// Result is the outcome of one parse-filter-generate cycle.
type Result struct {
	Records   []ncu.Record     // every parsed record, de-duplicated
	Selected  []ncu.Record     // records surviving the filters
	Libraries []filter.Library // display state of Records
	Commands  []string
	Output    string
	Err       error
}

// Display returns what should be shown to the user: the generated commands,
// or the fixed diagnostic if the input was rejected.
func (r Result) Display() string {
	if r.Err != nil {
		return Diagnostic
	}
	return r.Output
}

// Malformed reports whether the input was rejected as a whole.
func (r Result) Malformed() bool {
	return errors.Is(r.Err, ncu.ErrMalformedBatch)
}

// Run parses input and generates the command sequence for p. The output
// depends only on the filtered records and p, so blank input still yields the
// lockfile command when it is requested. A malformed batch yields no records,
// no commands and a non-nil Err.
func Run(input string, p prefs.Preferences) Result {
	records, err := ncu.Parse(input)
	if err != nil {
		return Result{Err: err}
	}
	rules := p.Rules()
	selected := filter.Apply(records, rules)
	commands := generator.Commands(selected, p.Options())

	return Result{
		Records:   records,
		Selected:  selected,
		Libraries: filter.Libraries(records, rules),
		Commands:  commands,
		Output:    strings.Join(commands, generator.Separator),
	}
}
