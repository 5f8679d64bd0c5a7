package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bitshepherds/jtd-validate/internal/config"
	"github.com/bitshepherds/jtd-validate/internal/validator"
)

// Version is the current version of jtdv, set at build time.
var Version = "dev"

// Banner with colour codes.
var Banner = "\033[32m" + `
       _ __      __
      (_) /_____/ /  __
     / / __/ __  / |/ /
    / / /_/ /_/ /|   /
 __/ /\__/\__,_/ |__/
/___/
` + "\033[0m"

var LongDescription = `
jtdv validates JSON documents against JSON Type Definition schemas (RFC 8927).
Point it at a schema and one or more instance files, glob patterns, or
standard input, and it reports every violation as a pair of JSON Pointers
into the instance and the schema.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stdout, stderr io.Writer) *cobra.Command {
	var debug bool
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "jtdv",
		Short:         "A validator for JSON Type Definition schemas",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          Banner + "\n" + LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help and completion commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				if debug {
					ll.Set(slog.LevelDebug)
				}
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}

			logger, _, err := setupLogger(stderr, ll)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}

			// 2. Load Configuration
			cfg := config.Default()
			if path := config.Locate(configPath); path != "" {
				cfg, err = config.Load(path, validator.NewSanthoshCompiler())
				if err != nil {
					return fmt.Errorf("config initialisation failed: %w", err)
				}
				logger.Debug("loaded config", "path", path)
			}

			// 3. Hydrate the Lazy Wrapper
			lazy.SetInner(NewCLIManager(logger, cfg, stdout))

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (overrides env/default)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	// Subcommands
	rootCmd.AddCommand(NewValidateCmd(lazy))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
