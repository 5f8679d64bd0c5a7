// Package report renders validation run results for the CLI.
package report

import (
	"io"

	"github.com/bitshepherds/jtd-validate/internal/runner"
)

// Reporter writes the outcome of a validation run.
type Reporter interface {
	Write(w io.Writer, results []runner.Result) error
}

// New returns the Reporter for the given output format. Format validity is
// enforced at flag parse time; anything unrecognised falls back to text.
func New(format string) Reporter {
	if format == "json" {
		return &JSONReporter{}
	}
	return &LineReporter{}
}
