package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbellwood/arcanum/internal/catalog"
	"github.com/mbellwood/arcanum/internal/guideline"
	"github.com/mbellwood/arcanum/internal/querysql"
	"github.com/mbellwood/arcanum/internal/registry"
	"github.com/mbellwood/arcanum/internal/store"
)

// newFormatter builds the output formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// keyFlags registers the four composite-key flags on a command.
// Whether a flag was actually supplied matters (partial keys), so reads go
// through cobra's Changed tracking, not zero-value checks.
type keyFlags struct {
	form      string
	technique string
	level     int
	name      string
}

// register adds the key flags to the command.
func (k *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&k.form, "form", "", "guideline form (e.g. Animal)")
	cmd.Flags().StringVar(&k.technique, "technique", "", "guideline technique (e.g. Creo)")
	cmd.Flags().IntVar(&k.level, "level", 0, "guideline level (0 = generic)")
	cmd.Flags().StringVar(&k.name, "name", "", "guideline name")
}

// fullKey builds a complete key; every field except level is required.
// Level defaults to generic when not supplied.
func (k *keyFlags) fullKey() (guideline.Key, error) {
	if k.form == "" || k.technique == "" || k.name == "" {
		return guideline.Key{}, fmt.Errorf("--form, --technique, and --name are required")
	}
	if k.level < 0 {
		return guideline.Key{}, fmt.Errorf("--level must be >= 0")
	}
	return guideline.Key{
		Form:      k.form,
		Technique: k.technique,
		Level:     guideline.Level(k.level),
		Name:      k.name,
	}, nil
}

// partialKey builds a partial key from whichever flags were supplied.
func (k *keyFlags) partialKey(cmd *cobra.Command) (guideline.PartialKey, error) {
	var p guideline.PartialKey
	if cmd.Flags().Changed("form") {
		p = p.WithForm(k.form)
	}
	if cmd.Flags().Changed("technique") {
		p = p.WithTechnique(k.technique)
	}
	if cmd.Flags().Changed("level") {
		if k.level < 0 {
			return guideline.PartialKey{}, fmt.Errorf("--level must be >= 0")
		}
		p = p.WithLevel(guideline.Level(k.level))
	}
	if cmd.Flags().Changed("name") {
		p = p.WithName(k.name)
	}
	return p, nil
}

// openRegistry opens the store and rebuilds the in-memory catalog from it.
// The caller closes the returned store.
func openRegistry(ctx context.Context, opts *RootOptions) (*registry.Registry, *store.Store, error) {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, nil, &ExitError{Code: ExitCommandError, Message: "opening catalog database", Err: err}
	}

	entries, err := store.QueryGuidelines(ctx, s, nil, nil)
	if err != nil {
		s.Close()
		return nil, nil, &ExitError{Code: ExitCommandError, Message: "reading catalog database", Err: err}
	}

	cat, err := catalog.NewFromEntries(entries)
	if err != nil {
		s.Close()
		return nil, nil, &ExitError{Code: ExitFailure, Message: "catalog database violates key uniqueness", Err: err}
	}

	return registry.New(cat, s), s, nil
}

// parseOrder parses an --order-by value such as "level:desc,name" into
// order terms. A bare field name sorts ascending.
func parseOrder(spec string) ([]querysql.OrderTerm, error) {
	if spec == "" {
		return nil, nil
	}

	var terms []querysql.OrderTerm
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, dir, found := strings.Cut(part, ":")
		term := querysql.OrderTerm{Field: field, Direction: querysql.Ascending}
		if found {
			switch strings.ToLower(dir) {
			case "asc":
				term.Direction = querysql.Ascending
			case "desc":
				term.Direction = querysql.Descending
			default:
				return nil, fmt.Errorf("invalid order direction %q: must be asc or desc", dir)
			}
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// entryData is the JSON payload shape for a single entry.
type entryData struct {
	Form        string `json:"form"`
	Technique   string `json:"technique"`
	Level       int    `json:"level"`
	Generic     bool   `json:"generic"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// toEntryData converts an entry for JSON output.
func toEntryData(e guideline.Entry) entryData {
	return entryData{
		Form:        e.Key.Form,
		Technique:   e.Key.Technique,
		Level:       int(e.Key.Level),
		Generic:     e.Key.Level.Generic(),
		Name:        e.Key.Name,
		Description: e.Description,
	}
}

// formatEntry renders an entry as one text line.
func formatEntry(e guideline.Entry) string {
	if e.Description == "" {
		return e.Key.String()
	}
	return fmt.Sprintf("%s - %s", e.Key, e.Description)
}

// domainErrorCode maps a catalog error to a CLI error code string.
func domainErrorCode(err error) string {
	switch {
	case catalog.IsDuplicateKey(err):
		return string(catalog.ErrCodeDuplicateKey)
	case catalog.IsNotFound(err):
		return string(catalog.ErrCodeNotFound)
	case catalog.IsKeyMismatch(err):
		return string(catalog.ErrCodeKeyMismatch)
	case catalog.IsInvalidRange(err):
		return string(catalog.ErrCodeInvalidRange)
	case catalog.IsIncomparable(err):
		return string(catalog.ErrCodeIncomparableValue)
	default:
		return "STORE_ERROR"
	}
}
