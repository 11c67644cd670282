package pipeline

import (
	"github.com/sambabib/ncu-helper/pkg/filter"
	"github.com/sambabib/ncu-helper/pkg/logger"
	"github.com/sambabib/ncu-helper/pkg/prefs"
)

// Session holds the current input and preferences and recomputes the result
// whenever either changes. It replaces the output with Diagnostic while the
// input is malformed and clears it on the next successful parse.
type Session struct {
	input  string
	prefs  prefs.Preferences
	result Result
}

// NewSession creates a session with empty input.
func NewSession(p prefs.Preferences) *Session {
	s := &Session{prefs: p}
	s.recompute()
	return s
}

// SetInput replaces the pasted text.
func (s *Session) SetInput(input string) {
	s.input = input
	s.recompute()
}

// SetPreferences replaces the preferences.
func (s *Session) SetPreferences(p prefs.Preferences) {
	s.prefs = p
	s.recompute()
}

// Input returns the current pasted text.
func (s *Session) Input() string {
	return s.input
}

// Preferences returns the current preferences.
func (s *Session) Preferences() prefs.Preferences {
	return s.prefs
}

// Result returns the latest computation.
func (s *Session) Result() Result {
	return s.result
}

// Output returns the generated commands, or Diagnostic for malformed input.
func (s *Session) Output() string {
	return s.result.Display()
}

// Error returns the rejection of the current input, if any.
func (s *Session) Error() error {
	return s.result.Err
}

// Libraries returns the library list for the current input. While the input
// is empty or malformed the sample report is listed instead, so the user can
// see what the list will look like.
func (s *Session) Libraries() []filter.Library {
	if s.ShowingSample() {
		return Run(Sample, s.prefs).Libraries
	}
	return s.result.Libraries
}

// ShowingSample reports whether Libraries is currently listing the sample:
// nothing was pasted at all, or the paste is malformed. Whitespace counts as a
// paste and lists nothing.
func (s *Session) ShowingSample() bool {
	return s.result.Err != nil || s.input == ""
}

// Placeholder returns the output generated for the sample report.
func (s *Session) Placeholder() string {
	return Run(Sample, s.prefs).Output
}

func (s *Session) recompute() {
	s.result = Run(s.input, s.prefs)
	if s.result.Err != nil {
		logger.Debugf("pipeline: %v", s.result.Err)
	}
}
