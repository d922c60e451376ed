package cli

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/jmmshn/pyrho/internal/output"
	"github.com/jmmshn/pyrho/internal/version"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

type versionResult struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func (r versionResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "pyrho version %s (commit: %s, built: %s)\n",
		output.StripANSI(r.Version), output.StripANSI(r.Commit), output.StripANSI(r.Date))
	return err
}

func (r versionResult) WritePlain(w io.Writer) error {
	_, err := fmt.Fprintln(w, output.StripANSI(r.Version))
	return err
}

type moduleResult struct {
	Module  string `json:"module"`
	Version string `json:"version"`
}

func (r moduleResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %s\n", output.StripANSI(r.Module), output.StripANSI(r.Version))
	return err
}

func (r moduleResult) WritePlain(w io.Writer) error {
	_, err := fmt.Fprintln(w, output.StripANSI(r.Version))
	return err
}

func newVersionCmd(d *deps) *cobra.Command {
	var module string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the mp-pyrho version",
		Long: `Print the mp-pyrho version, commit and build date.

With --module, print the version recorded in this binary for another module
path instead; modules that are not recorded report "unknown".`,
		Args:    cobra.NoArgs,
		GroupID: "info",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if module != "" {
				v := version.Resolve(readBuildInfo, module)
				d.logger.Debug("resolved module version", "module", module, "version", v)
				return writeResult(cmd.OutOrStdout(), d, moduleResult{Module: module, Version: v})
			}

			info := version.Get()
			d.logger.Debug("resolved version",
				"version", info.Version,
				"source", info.Source,
				"semantic", info.Semantic,
			)
			return writeResult(cmd.OutOrStdout(), d, versionResult{
				Version: info.Version,
				Commit:  info.Commit,
				Date:    info.Date,
			})
		},
	}

	cmd.Flags().StringVar(&module, "module", "", "module path to look up in the build information")

	return cmd
}
