package ncu

import (
	"strings"

	"github.com/sambabib/ncu-helper/pkg/logger"
)

// Banners are line prefixes printed by npm-check-updates around the report
// itself. Lines starting with any of them are skipped.
var Banners = []string{
	"Run npx npm-check-updates ",
	"Run ncu ",
}

const (
	progressMarker = "Checking "
	noDepsNotice   = "No dependencies."
	aliasPrefix    = "npm:"
)

// Parse turns a pasted npm-check-updates report into records, in input order
// and de-duplicated by name (first occurrence wins). If any line is malformed
// the whole batch is rejected with an error wrapping ErrMalformedBatch and no
// records are returned.
func Parse(input string) ([]Record, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	var records []Record
	for i, raw := range strings.Split(input, "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(raw)
		if skipLine(line) {
			if line != "" {
				logger.Debugf("ncu: skipping line %d: %q", lineNum, line)
			}
			continue
		}

		record, err := parseLine(lineNum, line)
		if err != nil {
			logger.Debugf("ncu: rejecting batch: %v", err)
			return nil, err
		}
		records = append(records, record)
	}

	return Dedupe(records), nil
}

// Dedupe drops records whose name was already seen earlier in the slice.
func Dedupe(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if seen[r.Name] {
			logger.Debugf("ncu: dropping duplicate %s on line %d", r.Name, r.Line)
			continue
		}
		seen[r.Name] = true
		out = append(out, r)
	}
	return out
}

func skipLine(line string) bool {
	if line == "" {
		return true
	}
	for _, banner := range Banners {
		if strings.HasPrefix(line, banner) {
			return true
		}
	}
	return strings.Contains(line, progressMarker) || strings.Contains(line, noDepsNotice)
}

// parseLine splits "name  from  →  to" into a validated record.
func parseLine(lineNum int, line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Record{}, &LineError{Line: lineNum, Text: line, Reason: "expected name, version, arrow and target version"}
	}

	from, fromAlias := unwrapVersion(fields[1])
	to, toAlias := unwrapVersion(fields[3])

	record := Record{
		Name: fields[0],
		From: from,
		To:   to,
		Line: lineNum,
	}
	if toAlias != "" {
		record.Alias = toAlias
	} else {
		record.Alias = fromAlias
	}

	if reason := Validate(record); reason != "" {
		return Record{}, &LineError{Line: lineNum, Text: line, Reason: reason}
	}
	return record, nil
}

// unwrapVersion strips an npm:<name>@ alias wrapper and a single leading
// range operator from a version token. The aliased package name, if any, is
// returned separately.
func unwrapVersion(token string) (version, alias string) {
	version = token
	if strings.HasPrefix(version, aliasPrefix) {
		rest := strings.TrimPrefix(version, aliasPrefix)
		// Scoped names carry their own leading '@', so split on the last one.
		if at := strings.LastIndex(rest, "@"); at > 0 {
			alias = rest[:at]
			version = rest[at+1:]
		}
	}
	return stripRange(version), alias
}

func stripRange(version string) string {
	if strings.HasPrefix(version, "^") || strings.HasPrefix(version, "~") {
		return version[1:]
	}
	return version
}
