// Package runner validates streams of JSON instances against a single
// parsed schema, one stream per file, fanning files out across workers.
package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bitshepherds/jtd-validate/internal/instances"
	"github.com/bitshepherds/jtd-validate/internal/jtd"
)

// errStopRun cancels remaining work once a file has failed validation and
// the run is not set to continue on error. It never escapes Run.
var errStopRun = errors.New("stopping after first invalid file")

// Result is the outcome of validating one instance file.
type Result struct {
	// Path is the instance file, or instances.Stdin.
	Path string

	// Instance is the ordinal of the first invalid instance in the file's
	// stream. Meaningful only when Errors is non-empty.
	Instance int

	// Errors are the validation errors of the first invalid instance.
	// Validation of a file stops at its first invalid instance.
	Errors []jtd.ValidationError

	// Err is an engine-level or IO failure: unreadable file, malformed
	// JSON, or the schema's ref depth bound being exceeded.
	Err error

	// Skipped is set when the run was cut short before this file finished.
	Skipped bool
}

// Invalid reports whether the file failed, either by validation errors or
// by an engine-level failure.
func (r Result) Invalid() bool {
	return len(r.Errors) > 0 || r.Err != nil
}

// Runner validates instance files against one immutable schema. The schema
// is shared read-only across workers; each file gets its own decoder and
// error accumulator.
type Runner struct {
	schema *jtd.Schema
	opts   jtd.ValidateOptions
	logger *slog.Logger

	workers         int
	continueOnError bool
	stdin           io.Reader
}

// New creates a Runner for the given parsed schema.
func New(schema *jtd.Schema, opts jtd.ValidateOptions, logger *slog.Logger) *Runner {
	return &Runner{
		schema:  schema,
		opts:    opts,
		logger:  logger.With("component", "runner"),
		workers: runtime.GOMAXPROCS(0),
		stdin:   os.Stdin,
	}
}

// SetWorkers controls how many files are validated concurrently.
func (r *Runner) SetWorkers(n int) {
	if n > 0 {
		r.workers = n
	}
}

// SetContinueOnError controls whether remaining files are still validated
// after one fails. It defaults to false, matching the first-bad-input
// contract of the CLI.
func (r *Runner) SetContinueOnError(b bool) {
	r.continueOnError = b
}

// SetStdin replaces the reader used for the instances.Stdin pseudo-path.
func (r *Runner) SetStdin(in io.Reader) {
	r.stdin = in
}

// Run validates every path and returns one Result per path, in input
// order. The returned error reports a cancelled context; per-file failures
// are carried in the results.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, runCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range paths {
		g.Go(func() error {
			if runCtx.Err() != nil {
				results[i] = Result{Path: path, Skipped: true}
				return nil
			}

			res := r.runFile(runCtx, path)
			results[i] = res

			if res.Invalid() && !r.continueOnError {
				return errStopRun
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, errStopRun) {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// runFile validates one file's instance stream, stopping at the first
// invalid instance.
func (r *Runner) runFile(ctx context.Context, path string) Result {
	res := Result{Path: path}

	var reader io.Reader
	if path == instances.Stdin {
		reader = r.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			res.Err = err
			return res
		}
		defer f.Close()
		reader = f
	}

	dec := instances.NewDecoder(reader, path)
	for i := 0; ; i++ {
		if ctx.Err() != nil {
			res.Skipped = true
			return res
		}

		instance, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Err = err
			return res
		}

		errs, err := jtd.Validate(r.schema, instance, r.opts)
		if err != nil {
			res.Err = err
			return res
		}
		if len(errs) > 0 {
			res.Instance = i
			res.Errors = errs
			r.logger.Debug("instance failed validation", "path", path, "instance", i, "errors", len(errs))
			return res
		}
	}

	r.logger.Debug("all instances valid", "path", path)
	return res
}
