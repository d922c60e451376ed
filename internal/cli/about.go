package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmmshn/pyrho/internal/output"
	"github.com/jmmshn/pyrho/internal/version"
)

type aboutResult struct {
	version.Info
}

func (r aboutResult) rows() []output.Row {
	return []output.Row{
		{Key: "name", Value: r.Name},
		{Key: "module", Value: r.Module},
		{Key: "version", Value: r.Version},
		{Key: "commit", Value: r.Commit},
		{Key: "date", Value: r.Date},
		{Key: "go_version", Value: r.GoVersion},
		{Key: "author", Value: r.Author},
		{Key: "email", Value: r.Email},
		{Key: "semantic", Value: strconv.FormatBool(r.Semantic)},
		{Key: "source", Value: string(r.Source)},
	}
}

func (r aboutResult) WriteText(w io.Writer) error {
	return output.WriteKeyValueTable(w, r.rows())
}

func (r aboutResult) WritePlain(w io.Writer) error {
	return output.WriteKeyValueLines(w, r.rows())
}

func newAboutCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "about",
		Short:   "Show package metadata (author, email, version, build)",
		Args:    cobra.NoArgs,
		GroupID: "info",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeResult(cmd.OutOrStdout(), d, aboutResult{Info: version.Get()})
		},
	}
}
