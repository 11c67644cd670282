package filter

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/sambabib/ncu-helper/pkg/ncu"
)

// DiffKind is the most significant semver component that changes between two
// versions.
type DiffKind string

const (
	DiffNone  DiffKind = ""
	DiffPatch DiffKind = "patch"
	DiffMinor DiffKind = "minor"
	DiffMajor DiffKind = "major"
)

// Cap is the largest version bump the user is willing to include.
type Cap string

const (
	CapMajor Cap = "major"
	CapMinor Cap = "minor"
	CapPatch Cap = "patch"
)

// Caps lists every valid cap, loosest first.
var Caps = []Cap{CapMajor, CapMinor, CapPatch}

// ParseCap validates a cap name.
func ParseCap(s string) (Cap, error) {
	for _, c := range Caps {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown upgrade cap %q (want major, minor or patch)", s)
}

// Diff classifies the change from one version to another. Short versions are
// padded, so "4" and "4.0.0" compare equal. Unparseable or identical versions
// yield DiffNone.
func Diff(from, to string) DiffKind {
	fromVer, err := semver.NewVersion(from)
	if err != nil {
		return DiffNone
	}
	toVer, err := semver.NewVersion(to)
	if err != nil {
		return DiffNone
	}

	switch {
	case fromVer.Major() != toVer.Major():
		return DiffMajor
	case fromVer.Minor() != toVer.Minor():
		return DiffMinor
	case fromVer.Patch() != toVer.Patch():
		return DiffPatch
	}
	return DiffNone
}

// Allows reports whether a change of the given kind fits under the cap.
func (c Cap) Allows(kind DiffKind) bool {
	switch c {
	case CapMinor:
		return kind == DiffMinor || kind == DiffPatch
	case CapPatch:
		return kind == DiffPatch
	}
	// major, or an unset cap, filters nothing
	return true
}

// WithinCap reports whether the record's upgrade fits under the cap.
func WithinCap(c Cap, r ncu.Record) bool {
	if c == CapMajor || c == "" {
		return true
	}
	return c.Allows(Diff(r.From, r.To))
}
