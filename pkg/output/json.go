package output

import (
	"encoding/json"

	"github.com/sambabib/ncu-helper/pkg/filter"
	"github.com/sambabib/ncu-helper/pkg/pipeline"
)

// Report is the machine-readable form of a pipeline result.
type Report struct {
	Output    string           `json:"output"`
	Commands  []string         `json:"commands"`
	Libraries []filter.Library `json:"libraries"`
	Error     string           `json:"error,omitempty"`
}

// NewReport converts a pipeline result into a Report. Slices are never nil so
// consumers always see arrays.
func NewReport(result pipeline.Result) Report {
	report := Report{
		Output:    result.Display(),
		Commands:  result.Commands,
		Libraries: result.Libraries,
	}
	if report.Commands == nil {
		report.Commands = []string{}
	}
	if report.Libraries == nil {
		report.Libraries = []filter.Library{}
	}
	if result.Err != nil {
		report.Error = result.Err.Error()
	}
	return report
}

// GenerateJSONReport converts a pipeline result to JSON format
func GenerateJSONReport(result pipeline.Result) ([]byte, error) {
	return json.MarshalIndent(NewReport(result), "", "  ")
}
