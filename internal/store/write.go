package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbellwood/arcanum/internal/guideline"
)

// InsertGuideline inserts one guideline row. The row id is a fresh UUID;
// identity for callers is the composite key, which the unique index
// enforces. A colliding key surfaces as the constraint error, wrapped.
func (s *Store) InsertGuideline(ctx context.Context, entry guideline.Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guidelines (id, form, technique, level, name, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		uuid.NewString(),
		entry.Key.Form,
		entry.Key.Technique,
		levelParam(entry.Key.Level),
		entry.Key.Name,
		entry.Description,
	)
	if err != nil {
		return fmt.Errorf("insert guideline %s: %w", entry.Key, err)
	}

	return nil
}

// UpdateGuideline replaces the description of the row with the exact
// composite key. Replacements are key-preserving (the catalog enforces the
// policy); only the description can change here.
//
// Returns the number of rows updated: 0 means the key was absent.
func (s *Store) UpdateGuideline(ctx context.Context, key guideline.Key, entry guideline.Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE guidelines
		SET description = ?
		WHERE form = ? AND technique = ? AND ifnull(level, -1) = ? AND name = ?
	`,
		entry.Description,
		key.Form,
		key.Technique,
		levelKeyParam(key.Level),
		key.Name,
	)
	if err != nil {
		return 0, fmt.Errorf("update guideline %s: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update guideline %s: %w", key, err)
	}
	return n, nil
}

// DeleteGuideline removes the row with the exact composite key.
// Returns the number of rows deleted: 0 means the key was absent.
func (s *Store) DeleteGuideline(ctx context.Context, key guideline.Key) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM guidelines
		WHERE form = ? AND technique = ? AND ifnull(level, -1) = ? AND name = ?
	`,
		key.Form,
		key.Technique,
		levelKeyParam(key.Level),
		key.Name,
	)
	if err != nil {
		return 0, fmt.Errorf("delete guideline %s: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete guideline %s: %w", key, err)
	}
	return n, nil
}

// levelParam maps a level to its column value: NULL for generic, the
// integer otherwise.
func levelParam(l guideline.Level) any {
	if l.Generic() {
		return nil
	}
	return int64(l)
}

// levelKeyParam maps a level to the ifnull(level, -1) key expression used
// by exact-key lookups and the unique index.
func levelKeyParam(l guideline.Level) int64 {
	if l.Generic() {
		return -1
	}
	return int64(l)
}
