package filter

import (
	"errors"
	"slices"

	"github.com/sambabib/ncu-helper/pkg/logger"
	"github.com/sambabib/ncu-helper/pkg/ncu"
)

// ErrLibraryDisabled is returned when toggling a library that the active cap
// already excludes.
var ErrLibraryDisabled = errors.New("library exceeds the active upgrade cap")

// Rules are the user-controlled predicates applied to a parsed batch.
type Rules struct {
	Ignored []string
	Cap     Cap
}

// IsIgnored checks if a package is on the ignore list.
func (r Rules) IsIgnored(name string) bool {
	return slices.Contains(r.Ignored, name)
}

// Apply drops ignored records, then records whose upgrade exceeds the cap.
// Input order is preserved.
func Apply(records []ncu.Record, rules Rules) []ncu.Record {
	out := make([]ncu.Record, 0, len(records))
	for _, r := range records {
		if rules.IsIgnored(r.Name) {
			logger.Debugf("filter: %s is ignored", r.Name)
			continue
		}
		if !WithinCap(rules.Cap, r) {
			logger.Debugf("filter: %s %s → %s exceeds %s cap", r.Name, r.From, r.To, rules.Cap)
			continue
		}
		out = append(out, r)
	}
	return out
}

// Library is the display state of one record in the library list.
type Library struct {
	ncu.Record
	Diff     DiffKind `json:"diff"`
	Checked  bool     `json:"checked"`  // not on the ignore list
	Disabled bool     `json:"disabled"` // hidden by the cap, cannot be toggled
}

// Libraries derives the display state of every record. The full list is always
// returned, so libraries hidden by the cap stay visible.
func Libraries(records []ncu.Record, rules Rules) []Library {
	libs := make([]Library, 0, len(records))
	for _, r := range records {
		libs = append(libs, Library{
			Record:   r,
			Diff:     Diff(r.From, r.To),
			Checked:  !rules.IsIgnored(r.Name),
			Disabled: !WithinCap(rules.Cap, r),
		})
	}
	return libs
}

// ToggleIgnored adds name to the ignore list, or removes it if present. New
// names are appended so the stored order follows the user's clicks. Names of
// libraries the cap disables cannot be toggled.
func ToggleIgnored(ignored []string, libs []Library, name string) ([]string, error) {
	for _, lib := range libs {
		if lib.Name == name && lib.Disabled {
			return ignored, ErrLibraryDisabled
		}
	}

	if i := slices.Index(ignored, name); i >= 0 {
		return slices.Delete(slices.Clone(ignored), i, i+1), nil
	}
	return append(slices.Clone(ignored), name), nil
}
