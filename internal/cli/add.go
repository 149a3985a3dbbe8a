package cli

import (
	"github.com/spf13/cobra"

	"github.com/mbellwood/arcanum/internal/guideline"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	keys := &keyFlags{}
	var description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one guideline to the catalog",
		Long: `Add a guideline identified by --form, --technique, --level, and --name.

Omitting --level (or passing 0) records a generic guideline, which sorts
before every leveled guideline of the same form and technique. Adding a
key that already exists fails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, keys, description, cmd)
		},
	}

	keys.register(cmd)
	cmd.Flags().StringVar(&description, "description", "", "free-text description")

	return cmd
}

func runAdd(opts *RootOptions, keys *keyFlags, description string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	key, err := keys.fullKey()
	if err != nil {
		formatter.Error("BAD_FLAGS", err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "invalid key flags", Err: err}
	}

	reg, s, err := openRegistry(ctx, opts)
	if err != nil {
		formatter.Error("DB_ERROR", err.Error(), nil)
		return err
	}
	defer s.Close()

	entry := guideline.Entry{Key: key, Description: description}
	if _, err := reg.Insert(ctx, entry); err != nil {
		formatter.Error(domainErrorCode(err), err.Error(), nil)
		return &ExitError{Code: ExitFailure, Message: "adding guideline", Err: err}
	}

	return formatter.Success("added "+key.String(), toEntryData(entry))
}
