package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	keys := &keyFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog guidelines matching a partial key",
		Long: `List guidelines in catalog order, filtered by whichever of --form,
--technique, --level, and --name are supplied. Unsupplied fields match
everything. The scan runs against the in-memory catalog.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, keys, cmd)
		},
	}

	keys.register(cmd)

	return cmd
}

func runList(opts *RootOptions, keys *keyFlags, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	filter, err := keys.partialKey(cmd)
	if err != nil {
		formatter.Error("BAD_FLAGS", err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "invalid filter flags", Err: err}
	}

	reg, s, err := openRegistry(ctx, opts)
	if err != nil {
		formatter.Error("DB_ERROR", err.Error(), nil)
		return err
	}
	defer s.Close()

	var (
		lines   []string
		payload []entryData
	)
	for entry := range reg.Scan(filter) {
		lines = append(lines, formatEntry(entry))
		payload = append(payload, toEntryData(entry))
	}

	if payload == nil {
		payload = []entryData{}
	}
	return formatter.Success(strings.Join(lines, "\n"), payload)
}
