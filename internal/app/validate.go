package app

import (
	"github.com/spf13/cobra"
)

func NewValidateCmd(mgr Manager) *cobra.Command {
	var maxDepth int
	var maxErrors int
	var workers int
	var quiet bool
	var continueOnError bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate <schema> [instances...]",
		Short: "Validate JSON instances against a JSON Type Definition schema",
		Args:  cobra.MinimumNArgs(1),
		Example: `
VALIDATING FILES
  jtdv validate user.jtd.json users.json
  jtdv validate user.jtd.json fixtures/*.json
  jtdv validate user.jtd.json "fixtures/**/*.json"

VALIDATING STANDARD INPUT
  curl -s https://api.example.com/users | jtdv validate user.jtd.json
  jtdv validate user.jtd.json - < users.json

SCRIPTING
  jtdv validate -q user.jtd.json users.json && echo ok

WATCH MODE
  jtdv validate -w user.jtd.json fixtures/*.json`,
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 0,
		"Maximum ref indirections before validation errors out (0 = unbounded)")
	cmd.Flags().IntVar(&maxErrors, "max-errors", 0,
		"Stop collecting errors for an instance after this many (0 = unbounded)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the report; only the exit code reports the outcome")
	outputVal := formatValue("")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().BoolVarP(&continueOnError, "continue-on-error", "C", false,
		"Keep validating remaining files after one fails (default is to stop on first invalid file)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of files validated in parallel (0 = one per CPU)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch the schema and instance files and revalidate on change")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		// Config supplies defaults; flags that were set win.
		cfg := mgr.Config()
		params := ValidateParams{
			SchemaPath:      args[0],
			Instances:       args[1:],
			MaxDepth:        cfg.MaxDepth,
			MaxErrors:       cfg.MaxErrors,
			Output:          cfg.Output,
			Workers:         cfg.Workers,
			ContinueOnError: continueOnError,
		}
		if cmd.Flags().Changed("max-depth") {
			params.MaxDepth = maxDepth
		}
		if cmd.Flags().Changed("max-errors") {
			params.MaxErrors = maxErrors
		}
		if cmd.Flags().Changed("workers") {
			params.Workers = workers
		}
		if outputVal != "" {
			params.Output = string(outputVal)
		}
		if quiet {
			// The exit code is the only output, so one error per instance
			// is enough to decide it.
			params.MaxErrors = 1
			params.Quiet = true
		}

		if watch {
			return mgr.WatchValidation(cmd.Context(), params, nil)
		}

		return mgr.ValidateInstances(cmd.Context(), params)
	}

	return cmd
}
