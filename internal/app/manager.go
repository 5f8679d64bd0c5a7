package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	json "github.com/goccy/go-json"

	"github.com/bitshepherds/jtd-validate/internal/config"
	"github.com/bitshepherds/jtd-validate/internal/instances"
	"github.com/bitshepherds/jtd-validate/internal/jtd"
	"github.com/bitshepherds/jtd-validate/internal/report"
	"github.com/bitshepherds/jtd-validate/internal/runner"
	"github.com/bitshepherds/jtd-validate/internal/watch"
)

// ValidateParams carries one validation run's settings, already merged
// from config file and command-line flags.
type ValidateParams struct {
	SchemaPath      string
	Instances       []string
	MaxDepth        int
	MaxErrors       int
	Output          string
	Workers         int
	ContinueOnError bool

	// Quiet suppresses the report; only the exit code reports the outcome.
	Quiet bool
}

// Manager defines the business logic for instance validation.
type Manager interface {
	Config() *config.Config
	ValidateInstances(ctx context.Context, params ValidateParams) error
	WatchValidation(ctx context.Context, params ValidateParams, readyChan chan<- struct{}) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Config() *config.Config {
	return l.check().Config()
}

func (l *LazyManager) ValidateInstances(ctx context.Context, params ValidateParams) error {
	return l.check().ValidateInstances(ctx, params)
}

func (l *LazyManager) WatchValidation(ctx context.Context, params ValidateParams, readyChan chan<- struct{}) error {
	return l.check().WatchValidation(ctx, params, readyChan)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger         *slog.Logger
	cfg            *config.Config
	reporterWriter io.Writer
	stdin          io.Reader
}

func NewCLIManager(l *slog.Logger, cfg *config.Config, stdout io.Writer) *CLIManager {
	return &CLIManager{
		logger:         l,
		cfg:            cfg,
		reporterWriter: stdout,
		stdin:          os.Stdin,
	}
}

func (m *CLIManager) Config() *config.Config {
	return m.cfg
}

func (m *CLIManager) ValidateInstances(ctx context.Context, params ValidateParams) error {
	m.logger.Debug("validating instances", "schema", params.SchemaPath, "instances", params.Instances,
		"maxDepth", params.MaxDepth, "maxErrors", params.MaxErrors, "continueOnError", params.ContinueOnError)

	args := params.Instances
	if len(args) == 0 {
		args = []string{instances.Stdin}
	}

	paths, err := instances.Resolve(args)
	if err != nil {
		return err
	}

	if params.SchemaPath == instances.Stdin && slices.Contains(paths, instances.Stdin) {
		return &StdinConflictError{}
	}

	return m.validatePaths(ctx, params, paths)
}

// WatchValidation validates once, then watches the schema and instance
// files and revalidates on every change. If you want to know when the
// watcher is ready to start listening to changes, pass a non-nil readyChan
// to be notified.
func (m *CLIManager) WatchValidation(ctx context.Context, params ValidateParams, readyChan chan<- struct{}) error {
	m.logger.Debug("watching validation", "schema", params.SchemaPath, "instances", params.Instances)

	paths, err := instances.Resolve(params.Instances)
	if err != nil {
		return err
	}
	if len(paths) == 0 || params.SchemaPath == instances.Stdin || slices.Contains(paths, instances.Stdin) {
		return &WatchStdinError{}
	}

	runOnce := func() {
		// The schema is reloaded each run so edits to it take effect.
		if vErr := m.validatePaths(ctx, params, paths); vErr != nil && !errors.Is(vErr, ErrInvalidInstances) {
			m.logger.Error("Validation failed", "error", vErr)
		}
	}
	runOnce()

	watcher := watch.New(m.logger, append([]string{params.SchemaPath}, paths...)...)

	// Forward watcher Ready signal if caller wants notification
	if readyChan != nil {
		go func() {
			<-watcher.Ready
			readyChan <- struct{}{}
		}()
	}

	return watcher.Watch(ctx, func(event watch.Event) {
		m.logger.Info("File changed:", "path", event.Path)
		runOnce()
	})
}

// validatePaths runs the schema over already-resolved instance paths and
// writes the report.
func (m *CLIManager) validatePaths(ctx context.Context, params ValidateParams, paths []string) error {
	root, err := m.loadSchema(params.SchemaPath)
	if err != nil {
		return err
	}

	r := runner.New(root, jtd.ValidateOptions{MaxDepth: params.MaxDepth, MaxErrors: params.MaxErrors}, m.logger)
	r.SetWorkers(params.Workers)
	r.SetContinueOnError(params.ContinueOnError)
	r.SetStdin(m.stdin)

	results, err := r.Run(ctx, paths)
	if err != nil {
		return err
	}

	if !params.Quiet {
		if err := report.New(params.Output).Write(m.reporterWriter, results); err != nil {
			return err
		}
	}

	for _, res := range results {
		if res.Invalid() {
			return ErrInvalidInstances
		}
	}
	return nil
}

// loadSchema reads and parses a schema document from disk or, for the
// stdin pseudo-path, from standard input.
func (m *CLIManager) loadSchema(path string) (*jtd.Schema, error) {
	var data []byte
	var err error
	if path == instances.Stdin {
		data, err = io.ReadAll(m.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema %s is not valid JSON: %w", path, err)
	}

	root, err := jtd.ParseSchema(doc)
	if err != nil {
		return nil, fmt.Errorf("schema %s is invalid: %w", path, err)
	}
	return root, nil
}
