package report

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/bitshepherds/jtd-validate/internal/runner"
)

// LineReporter writes the standard JSON Typedef error indicator format:
// one JSON object per validation error per line. IO and engine failures
// are written as plain lines prefixed with the file path.
type LineReporter struct{}

// errorIndicator is the wire form of one validation error.
type errorIndicator struct {
	InstancePath string `json:"instancePath"`
	SchemaPath   string `json:"schemaPath"`
}

func (lr *LineReporter) Write(w io.Writer, results []runner.Result) error {
	for _, res := range results {
		if res.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: %v\n", res.Path, res.Err); err != nil {
				return err
			}
			continue
		}

		for _, ve := range res.Errors {
			line, err := json.Marshal(errorIndicator{
				InstancePath: ve.InstancePointer(),
				SchemaPath:   ve.SchemaPointer(),
			})
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}
