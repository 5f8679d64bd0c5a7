package report

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/bitshepherds/jtd-validate/internal/runner"
)

// JSONReporter writes one aggregate JSON document for the whole run.
type JSONReporter struct{}

type jsonFile struct {
	Path     string           `json:"path"`
	Valid    bool             `json:"valid"`
	Skipped  bool             `json:"skipped,omitempty"`
	Instance *int             `json:"instance,omitempty"`
	Errors   []errorIndicator `json:"errors,omitempty"`
	Error    string           `json:"error,omitempty"`
}

type jsonOutput struct {
	Files []jsonFile `json:"files"`
	Stats struct {
		TotalFiles   int `json:"totalFiles"`
		InvalidFiles int `json:"invalidFiles"`
	} `json:"stats"`
}

func (jr *JSONReporter) Write(w io.Writer, results []runner.Result) error {
	out := jsonOutput{Files: make([]jsonFile, 0, len(results))}
	out.Stats.TotalFiles = len(results)

	for _, res := range results {
		jf := jsonFile{
			Path:    res.Path,
			Valid:   !res.Invalid() && !res.Skipped,
			Skipped: res.Skipped,
		}

		if res.Err != nil {
			jf.Error = res.Err.Error()
		}
		if len(res.Errors) > 0 {
			instance := res.Instance
			jf.Instance = &instance
			for _, ve := range res.Errors {
				jf.Errors = append(jf.Errors, errorIndicator{
					InstancePath: ve.InstancePointer(),
					SchemaPath:   ve.SchemaPointer(),
				})
			}
		}
		if res.Invalid() {
			out.Stats.InvalidFiles++
		}

		out.Files = append(out.Files, jf)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
