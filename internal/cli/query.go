package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	keys := &keyFlags{}
	var orderBy string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query guidelines from the database with filters and ordering",
		Long: `Query the database with a dynamically compiled parameterized statement.

Filters come from whichever key flags are supplied; --level 0 compiles to
an IS NULL predicate (generic guidelines). --order-by takes a comma list
of fields with optional directions, e.g. "level:desc,name". Fields outside
the catalog's allow-list are dropped, not errors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, keys, orderBy, cmd)
		},
	}

	keys.register(cmd)
	cmd.Flags().StringVar(&orderBy, "order-by", "", "comma-separated order fields, each optionally :asc or :desc")

	return cmd
}

func runQuery(opts *RootOptions, keys *keyFlags, orderBy string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	filter, err := keys.partialKey(cmd)
	if err != nil {
		formatter.Error("BAD_FLAGS", err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "invalid filter flags", Err: err}
	}

	order, err := parseOrder(orderBy)
	if err != nil {
		formatter.Error("BAD_FLAGS", err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "invalid order flags", Err: err}
	}

	reg, s, err := openRegistry(ctx, opts)
	if err != nil {
		formatter.Error("DB_ERROR", err.Error(), nil)
		return err
	}
	defer s.Close()

	entries, err := reg.Query(ctx, filter, order)
	if err != nil {
		formatter.Error(domainErrorCode(err), err.Error(), nil)
		return &ExitError{Code: ExitFailure, Message: "querying guidelines", Err: err}
	}

	lines := make([]string, 0, len(entries))
	payload := make([]entryData, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, formatEntry(entry))
		payload = append(payload, toEntryData(entry))
	}

	return formatter.Success(strings.Join(lines, "\n"), payload)
}
