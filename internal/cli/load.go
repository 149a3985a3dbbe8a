package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbellwood/arcanum/internal/loader"
)

// LoadResultData is the JSON payload for the load command.
type LoadResultData struct {
	Loaded int `json:"loaded"`
	Total  int `json:"total"`
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <catalog-dir>",
		Short: "Load guideline catalog files into the database",
		Long: `Load guideline catalog files (YAML or CUE) from a directory.

Every guideline is inserted into both the database and the in-memory
catalog; a duplicate key anywhere in the input fails the load.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runLoad(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	entries, err := loader.LoadDir(dir)
	if err != nil {
		formatter.Error("LOAD_ERROR", err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "loading catalog files", Err: err}
	}

	formatter.VerboseLog("Loaded %d guideline(s) from %s", len(entries), dir)

	reg, s, err := openRegistry(ctx, opts)
	if err != nil {
		formatter.Error("DB_ERROR", err.Error(), nil)
		return err
	}
	defer s.Close()

	loaded := 0
	for _, entry := range entries {
		if _, err := reg.Insert(ctx, entry); err != nil {
			formatter.Error(domainErrorCode(err), err.Error(), nil)
			return &ExitError{Code: ExitFailure, Message: "inserting guideline", Err: err}
		}
		loaded++
	}

	data := LoadResultData{Loaded: loaded, Total: reg.Catalog().Len()}
	return formatter.Success(
		fmt.Sprintf("loaded %d guideline(s); catalog now holds %d", data.Loaded, data.Total),
		data,
	)
}
