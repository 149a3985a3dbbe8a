package cli

import (
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	keys := &keyFlags{}

	cmd := &cobra.Command{
		Use:           "get",
		Short:         "Look up one guideline by exact key",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, keys, cmd)
		},
	}

	keys.register(cmd)

	return cmd
}

func runGet(opts *RootOptions, keys *keyFlags, cmd *cobra.Command) error {
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

	entry, err := reg.Lookup(key)
	if err != nil {
		formatter.Error(domainErrorCode(err), err.Error(), nil)
		return &ExitError{Code: ExitFailure, Message: "looking up guideline", Err: err}
	}
	if entry == nil {
		formatter.Error("NOT_FOUND", "no guideline with key "+key.String(), nil)
		return &ExitError{Code: ExitFailure, Message: "guideline not found"}
	}

	return formatter.Success(formatEntry(*entry), toEntryData(*entry))
}
