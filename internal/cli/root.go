// Package cli provides the Cobra command tree and output wiring for pyrho.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jmmshn/pyrho/internal/config"
	"github.com/jmmshn/pyrho/internal/output"
	"github.com/jmmshn/pyrho/internal/version"
)

// NewRootCmd builds the top-level Cobra command for pyrho.
// Callers must set stdout/stderr via cmd.SetOut / cmd.SetErr before Execute.
func NewRootCmd(logger *slog.Logger, levelVar *slog.LevelVar) *cobra.Command {
	// d is populated by PersistentPreRunE before any subcommand's RunE runs.
	// INVARIANT: Cobra only executes the innermost PersistentPreRunE in the
	// command chain. Only the completion command may define its own.
	var d deps

	cmd := &cobra.Command{
		Use:   "pyrho",
		Short: "pyrho reports mp-pyrho package metadata",
		Long: `pyrho reports the mp-pyrho package metadata: author, contact email and the
version of the running module.

The version comes from ldflags when set at build time, otherwise from the
module information recorded in the binary. When the module is not recorded
the version is reported as "unknown".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := buildDeps(cmd, logger, levelVar)
			if err != nil {
				return err
			}
			d = *resolved
			return nil
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	config.RegisterFlagCompletions(cmd)

	cmd.Version = version.Version
	cmd.SetVersionTemplate("pyrho version {{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: "info", Title: "Package Information:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)

	cmd.AddCommand(
		newVersionCmd(&d),
		newAboutCmd(&d),
		newConfigCmd(&d),
		newAliasCmd(&d),
		newCompletionCmd(),
	)

	return cmd
}

// Execute expands a leading alias in args and runs the command tree.
func Execute(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	stdout, stderr io.Writer,
	logger *slog.Logger,
	levelVar *slog.LevelVar,
) error {
	cmd := NewRootCmd(logger, levelVar)
	cmd.SetArgs(expandArgs(cmd, args, logger))
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// deps holds fully-resolved runtime dependencies for a subcommand.
type deps struct {
	logger *slog.Logger
	cfg    *config.Config
	format output.Format
}

// buildDeps resolves config, log level and output format.
func buildDeps(cmd *cobra.Command, logger *slog.Logger, levelVar *slog.LevelVar) (*deps, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.Verbose {
		levelVar.Set(slog.LevelDebug)
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded",
		"config_file", cfg.ConfigFile,
		"output", cfg.Output,
		"aliases", len(cfg.Aliases),
	)

	return &deps{logger: logger, cfg: cfg, format: format}, nil
}

// writeResult formats and writes a result to stdout.
func writeResult(stdout io.Writer, d *deps, result any) error {
	if err := output.Write(stdout, d.format, result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
