package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mbellwood/arcanum/internal/guideline"
	"github.com/mbellwood/arcanum/internal/querysql"
)

// baseSelect is the fixed base query. It carries no fixed placeholders, so
// dynamic placeholders number from 1.
const baseSelect = "SELECT form, technique, level, name, description FROM guidelines"

// baseOrder is the fixed base ordering every query starts from; dynamic
// order fragments are appended after it. Grouping by the category pair is
// always preserved.
const baseOrder = "form ASC, technique ASC"

// defaultOrderTail completes the base ordering to the full key order when
// the caller supplies no ordering of its own. NULL levels sort first under
// level ASC, so the observable order equals the key comparator's.
const defaultOrderTail = "level ASC, name COLLATE BINARY ASC"

// GetGuideline returns the entry with the exact composite key, or nil if
// absent.
func (s *Store) GetGuideline(ctx context.Context, key guideline.Key) (*guideline.Entry, error) {
	rows, err := s.db.QueryContext(ctx, baseSelect+`
		WHERE form = ?1 AND technique = ?2 AND ifnull(level, -1) = ?3 AND name = ?4
	`,
		key.Form,
		key.Technique,
		levelKeyParam(key.Level),
		key.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("get guideline %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get guideline %s: %w", key, err)
		}
		return nil, nil
	}

	entry, err := scanGuideline(rows)
	if err != nil {
		return nil, fmt.Errorf("get guideline %s: %w", key, err)
	}
	return &entry, nil
}

// QueryGuidelines runs a compiled filter/order query against an executor
// and returns the resulting entries.
//
// The filter and order go through the querysql allow-list and placeholder
// deduplication; the base ordering is always applied first, the caller's
// fragments after it. With no caller ordering the default tail keeps the
// row order identical to the key comparator's.
func QueryGuidelines(ctx context.Context, exec Executor, filter []querysql.FilterTerm, order []querysql.OrderTerm) ([]guideline.Entry, error) {
	compiled := querysql.Compile(filter, order, querysql.Options{})

	sqlText := baseSelect
	if where := compiled.WhereSQL(); where != "" {
		sqlText += " WHERE " + where
	}
	sqlText += " ORDER BY " + baseOrder
	if dyn := compiled.OrderSQL(); dyn != "" {
		sqlText += ", " + dyn
	} else {
		sqlText += ", " + defaultOrderTail
	}

	rows, err := exec.Query(ctx, sqlText, compiled.Params...)
	if err != nil {
		return nil, fmt.Errorf("query guidelines: %w", err)
	}
	defer rows.Close()

	var entries []guideline.Entry
	for rows.Next() {
		entry, err := scanGuideline(rows)
		if err != nil {
			return nil, fmt.Errorf("query guidelines: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query guidelines: %w", err)
	}

	// Return empty slice instead of nil
	if entries == nil {
		entries = []guideline.Entry{}
	}

	return entries, nil
}

// FilterTerms maps a partial key to compiler filter terms. A generic level
// maps to the IS NULL predicate; absent fields contribute nothing.
func FilterTerms(p guideline.PartialKey) []querysql.FilterTerm {
	var terms []querysql.FilterTerm
	if p.Form != nil {
		terms = append(terms, querysql.FilterTerm{Field: "form", Value: *p.Form})
	}
	if p.Technique != nil {
		terms = append(terms, querysql.FilterTerm{Field: "technique", Value: *p.Technique})
	}
	if p.Level != nil {
		if p.Level.Generic() {
			terms = append(terms, querysql.FilterTerm{Field: "level", IsNull: true})
		} else {
			terms = append(terms, querysql.FilterTerm{Field: "level", Value: int64(*p.Level)})
		}
	}
	if p.Name != nil {
		terms = append(terms, querysql.FilterTerm{Field: "name", Value: *p.Name})
	}
	return terms
}

// scanGuideline reads one guideline row. NULL level maps back to the
// generic sentinel.
func scanGuideline(rows *sql.Rows) (guideline.Entry, error) {
	var (
		entry guideline.Entry
		level sql.NullInt64
	)
	if err := rows.Scan(
		&entry.Key.Form,
		&entry.Key.Technique,
		&level,
		&entry.Key.Name,
		&entry.Description,
	); err != nil {
		return guideline.Entry{}, fmt.Errorf("scan guideline: %w", err)
	}

	if level.Valid {
		entry.Key.Level = guideline.Level(level.Int64)
	} else {
		entry.Key.Level = guideline.LevelGeneric
	}

	return entry, nil
}
