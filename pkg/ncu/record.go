package ncu

import (
	"errors"
	"fmt"
)

// ErrMalformedBatch is returned when any line of a pasted report fails to parse
// or validate. A single bad line rejects the whole batch.
var ErrMalformedBatch = errors.New("malformed npm-check-updates output")

// Record is one upgrade line of an npm-check-updates report.
type Record struct {
	Name  string `json:"name"`            // first token of the line, verbatim
	From  string `json:"from"`            // currently declared version, range operator stripped
	To    string `json:"to"`              // version ncu would upgrade to
	Alias string `json:"alias,omitempty"` // real package behind an npm:<name>@<version> alias
	Line  int    `json:"line"`            // 1-based line in the input
}

// String renders the record the way the library list shows it.
func (r Record) String() string {
	return fmt.Sprintf("%s %s → %s", r.Name, r.From, r.To)
}

// LineError describes the first offending line of a rejected batch.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// Unwrap lets callers match the batch failure with errors.Is.
func (e *LineError) Unwrap() error {
	return ErrMalformedBatch
}
