package ncu

import (
	"fmt"
	"regexp"
)

var (
	// Unanchored, so scoped names like @types/react still match.
	namePattern    = regexp.MustCompile(`[\w-]+`)
	versionPattern = regexp.MustCompile(`^\d+(\.\d+)?(\.\d+)?$`)
)

// ValidName reports whether name contains at least one word or hyphen character.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ValidVersion reports whether version is one to three dot-separated numeric segments.
func ValidVersion(version string) bool {
	return versionPattern.MatchString(version)
}

// Validate checks a single record and returns the reason it was rejected, or
// an empty string when it is valid.
func Validate(r Record) string {
	switch {
	case !ValidName(r.Name):
		return "invalid package name"
	case !ValidVersion(r.From):
		return fmt.Sprintf("invalid current version %q", r.From)
	case !ValidVersion(r.To):
		return fmt.Sprintf("invalid target version %q", r.To)
	}
	return ""
}
