package cli

import (
	"github.com/spf13/cobra"

	"github.com/mbellwood/arcanum/internal/catalog"
	"github.com/mbellwood/arcanum/internal/loader"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Guidelines int      `json:"guidelines"`
	Errors     []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog-dir>",
		Short: "Validate catalog files without touching the database",
		Long: `Validate guideline catalog files (YAML or CUE) in a directory.

Checks file syntax, the CUE schema for .cue files, required fields, and
key uniqueness across the whole directory. Nothing is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	entries, err := loader.LoadDir(dir)
	if err != nil {
		result := ValidationResult{Valid: false, Errors: []string{err.Error()}}
		formatter.Error("INVALID_CATALOG", err.Error(), result)
		return &ExitError{Code: ExitFailure, Message: "catalog files invalid", Err: err}
	}

	formatter.VerboseLog("Loaded %d guideline(s) from %s", len(entries), dir)

	// Uniqueness check: a throwaway catalog rejects the first duplicate.
	if _, err := catalog.NewFromEntries(entries); err != nil {
		result := ValidationResult{Valid: false, Guidelines: len(entries), Errors: []string{err.Error()}}
		formatter.Error(domainErrorCode(err), err.Error(), result)
		return &ExitError{Code: ExitFailure, Message: "catalog files invalid", Err: err}
	}

	result := ValidationResult{Valid: true, Guidelines: len(entries)}
	return formatter.Success("valid: "+dir, result)
}
