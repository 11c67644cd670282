package prefs

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sambabib/ncu-helper/pkg/filter"
	"github.com/sambabib/ncu-helper/pkg/generator"
	"github.com/sambabib/ncu-helper/pkg/logger"
)

// Storage keys. Values are JSON encoded.
const (
	KeyPackageManager = "packageManager"
	KeySeverityCap    = "upgradeVersion"
	KeyIgnoredLibs    = "ignoredLibs"
	KeyBumpLockfile   = "bumpLockfile"
	KeyDeep           = "deep"
)

// Keys lists every preference key in display order.
var Keys = []string{KeyPackageManager, KeySeverityCap, KeyIgnoredLibs, KeyBumpLockfile, KeyDeep}

// Preferences are the user's choices that shape filtering and generation.
type Preferences struct {
	PackageManager generator.PackageManager `json:"packageManager"`
	SeverityCap    filter.Cap               `json:"upgradeVersion"`
	IgnoredLibs    []string                 `json:"ignoredLibs"`
	BumpLockfile   bool                     `json:"bumpLockfile"`
	Deep           bool                     `json:"deep"`
}

// Defaults returns the built-in preferences: npm, no cap, nothing ignored.
func Defaults() Preferences {
	return Preferences{
		PackageManager: generator.NPM,
		SeverityCap:    filter.CapMajor,
		IgnoredLibs:    []string{},
	}
}

// Rules returns the filter rules for these preferences.
func (p Preferences) Rules() filter.Rules {
	return filter.Rules{Ignored: p.IgnoredLibs, Cap: p.SeverityCap}
}

// Options returns the generator options for these preferences.
func (p Preferences) Options() generator.Options {
	return generator.Options{
		PackageManager: p.PackageManager,
		Deep:           p.Deep,
		BumpLockfile:   p.BumpLockfile,
	}
}

// Load reads every preference from the store, using defaults for missing or
// invalid values.
func Load(s *Store, defaults Preferences) Preferences {
	p := Preferences{
		PackageManager: Get(s, KeyPackageManager, defaults.PackageManager),
		SeverityCap:    Get(s, KeySeverityCap, defaults.SeverityCap),
		IgnoredLibs:    Get(s, KeyIgnoredLibs, defaults.IgnoredLibs),
		BumpLockfile:   Get(s, KeyBumpLockfile, defaults.BumpLockfile),
		Deep:           Get(s, KeyDeep, defaults.Deep),
	}

	if _, err := generator.ParsePackageManager(string(p.PackageManager)); err != nil {
		logger.Warnf("prefs: %v, using %s", err, defaults.PackageManager)
		p.PackageManager = defaults.PackageManager
	}
	if _, err := filter.ParseCap(string(p.SeverityCap)); err != nil {
		logger.Warnf("prefs: %v, using %s", err, defaults.SeverityCap)
		p.SeverityCap = defaults.SeverityCap
	}
	if p.IgnoredLibs == nil {
		p.IgnoredLibs = []string{}
	}
	return p
}

// Save writes every preference whose stored value is missing, undecodable or
// different from p. An invalid stored value never matches a valid p, so it is
// always replaced.
func Save(s *Store, p Preferences) error {
	if err := saveValue(s, KeyPackageManager, p.PackageManager); err != nil {
		return err
	}
	if err := saveValue(s, KeySeverityCap, p.SeverityCap); err != nil {
		return err
	}

	ignored := p.IgnoredLibs
	if ignored == nil {
		ignored = []string{}
	}
	if current, ok := lookup[[]string](s, KeyIgnoredLibs); !ok || current == nil || !slices.Equal(current, ignored) {
		if err := Set(s, KeyIgnoredLibs, ignored); err != nil {
			return err
		}
	}

	if err := saveValue(s, KeyBumpLockfile, p.BumpLockfile); err != nil {
		return err
	}
	return saveValue(s, KeyDeep, p.Deep)
}

// saveValue stores value unless the store already holds exactly that value.
func saveValue[T comparable](s *Store, key string, value T) error {
	if current, ok := lookup[T](s, key); ok && current == value {
		return nil
	}
	return Set(s, key, value)
}

// Reset removes every stored preference.
func Reset(s *Store) error {
	for _, key := range Keys {
		if err := s.Remove(key); err != nil {
			return err
		}
	}
	return nil
}

// SetString parses a command-line value for key and stores it. Ignored
// libraries are given as a comma separated list.
func SetString(s *Store, key, value string) error {
	switch key {
	case KeyPackageManager:
		pm, err := generator.ParsePackageManager(value)
		if err != nil {
			return err
		}
		return Set(s, key, pm)
	case KeySeverityCap:
		c, err := filter.ParseCap(value)
		if err != nil {
			return err
		}
		return Set(s, key, c)
	case KeyIgnoredLibs:
		return Set(s, key, SplitList(value))
	case KeyBumpLockfile, KeyDeep:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: want true or false", value, key)
		}
		return Set(s, key, b)
	}
	return fmt.Errorf("unknown preference %q (want one of %s)", key, strings.Join(Keys, ", "))
}

// SplitList splits a comma separated list, dropping blanks and duplicates.
func SplitList(value string) []string {
	out := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" && !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}
