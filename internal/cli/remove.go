package cli

import (
	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	keys := &keyFlags{}

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a guideline by exact key or bare name",
		Long: `Remove a guideline from the catalog and the database.

With all key flags supplied the exact composite key is removed via binary
search. With only --name, the first guideline matching that name is
removed via a linear scan (slower, catalogs are small). Removing an
absent guideline is reported, not an error.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, keys, cmd)
		},
	}

	keys.register(cmd)

	return cmd
}

func runRemove(opts *RootOptions, keys *keyFlags, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	byNameOnly := cmd.Flags().Changed("name") &&
		!cmd.Flags().Changed("form") &&
		!cmd.Flags().Changed("technique") &&
		!cmd.Flags().Changed("level")

	reg, s, err := openRegistry(ctx, opts)
	if err != nil {
		formatter.Error("DB_ERROR", err.Error(), nil)
		return err
	}
	defer s.Close()

	if byNameOnly {
		removed, err := reg.RemoveByName(ctx, keys.name)
		if err != nil {
			formatter.Error(domainErrorCode(err), err.Error(), nil)
			return &ExitError{Code: ExitFailure, Message: "removing guideline", Err: err}
		}
		if removed == nil {
			return formatter.Success("no guideline named "+keys.name, nil)
		}
		return formatter.Success("removed "+removed.Key.String(), toEntryData(*removed))
	}

	key, err := keys.fullKey()
	if err != nil {
		formatter.Error("BAD_FLAGS", err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "invalid key flags", Err: err}
	}

	removed, err := reg.Remove(ctx, key)
	if err != nil {
		formatter.Error(domainErrorCode(err), err.Error(), nil)
		return &ExitError{Code: ExitFailure, Message: "removing guideline", Err: err}
	}
	if removed == nil {
		return formatter.Success("no guideline with key "+key.String(), nil)
	}
	return formatter.Success("removed "+removed.Key.String(), toEntryData(*removed))
}
