// Package generator builds the shell command sequence that applies upgrades
// one library at a time, committing after each.
package generator

import (
	"fmt"
	"strings"

	"github.com/sambabib/ncu-helper/pkg/ncu"
)

// PackageManager selects the install command and lockfile name.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	Yarn PackageManager = "yarn"
)

// PackageManagers lists the supported package managers.
var PackageManagers = []PackageManager{NPM, Yarn}

// Separator joins commands into a single pasteable line.
const Separator = "; "

const ncuCommand = "npx npm-check-updates"

// ParsePackageManager validates a package manager name.
func ParsePackageManager(s string) (PackageManager, error) {
	for _, pm := range PackageManagers {
		if string(pm) == s {
			return pm, nil
		}
	}
	return "", fmt.Errorf("unknown package manager %q (want npm or yarn)", s)
}

// Install returns the command that installs dependencies.
func (pm PackageManager) Install() string {
	if pm == Yarn {
		return "yarn"
	}
	return "npm i"
}

// Lockfile returns the lockfile the package manager writes.
func (pm PackageManager) Lockfile() string {
	if pm == Yarn {
		return "yarn.lock"
	}
	return "package-lock.json"
}

// Options controls the shape of the generated commands.
type Options struct {
	PackageManager PackageManager
	Deep           bool
	BumpLockfile   bool
}

// CheckCommand is the npm-check-updates invocation whose report should be
// pasted back in.
func CheckCommand(deep bool) string {
	if deep {
		return ncuCommand + " --deep"
	}
	return ncuCommand
}

// LibraryCommand upgrades, installs and commits a single library.
func LibraryCommand(r ncu.Record, opts Options) string {
	upgrade := fmt.Sprintf("%s -u %s", ncuCommand, r.Name)
	if opts.Deep {
		upgrade += " --deep"
	}

	return strings.Join([]string{
		upgrade,
		opts.PackageManager.Install(),
		"git add -A",
		fmt.Sprintf(`git commit -m "chore(deps): bump %s to %s"`, r.Name, r.To),
	}, Separator)
}

// LockfileCommand recreates the lockfile from scratch and commits it.
func LockfileCommand(pm PackageManager) string {
	return strings.Join([]string{
		"rm " + pm.Lockfile(),
		pm.Install(),
		"git add -A",
		`git commit -m "chore(deps): bump lockfile"`,
	}, Separator)
}

// Commands returns one command per record, in order, followed by the lockfile
// command when requested. Records must already be de-duplicated.
func Commands(records []ncu.Record, opts Options) []string {
	commands := make([]string, 0, len(records)+1)
	for _, r := range records {
		commands = append(commands, LibraryCommand(r, opts))
	}
	if opts.BumpLockfile {
		commands = append(commands, LockfileCommand(opts.PackageManager))
	}
	return commands
}

// Generate joins Commands into the final output line.
func Generate(records []ncu.Record, opts Options) string {
	return strings.Join(Commands(records, opts), Separator)
}
