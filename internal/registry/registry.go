// Package registry is the facade callers (a CRUD layer, the CLI) talk to.
//
// A Registry owns one explicitly constructed catalog instance and,
// optionally, a SQLite store the catalog is projected onto. Mutations apply
// to the catalog first, which enforces the key contract, and are then
// written through to the store. A store failure undoes the catalog change
// and surfaces as one failed outcome wrapped with the logical operation
// name, so callers can tell a catalog contract violation from a store
// failure. Nothing is retried.
package registry

import (
	"context"
	"fmt"
	"iter"

	"github.com/mbellwood/arcanum/internal/catalog"
	"github.com/mbellwood/arcanum/internal/guideline"
	"github.com/mbellwood/arcanum/internal/querysql"
	"github.com/mbellwood/arcanum/internal/store"
)

// Registry exposes the catalog operations: point lookups, ordered
// insert/replace/remove, partial-key scans, and remote filtered queries.
type Registry struct {
	catalog *catalog.Catalog
	store   *store.Store
}

// New creates a registry over a catalog. The store may be nil, in which
// case mutations are in-memory only and Query fails.
func New(c *catalog.Catalog, s *store.Store) *Registry {
	return &Registry{catalog: c, store: s}
}

// Catalog returns the owned catalog instance.
func (r *Registry) Catalog() *catalog.Catalog {
	return r.catalog
}

// Lookup returns the entry with the exact composite key, or nil if absent.
func (r *Registry) Lookup(key guideline.Key) (*guideline.Entry, error) {
	entry, err := r.catalog.Get(key)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	return entry, nil
}

// Insert adds an entry to the catalog and writes it through to the store.
// Fails with a DUPLICATE_KEY error if the key already exists; a store
// failure undoes the catalog insert.
func (r *Registry) Insert(ctx context.Context, entry guideline.Entry) (guideline.Key, error) {
	key, err := r.catalog.Insert(entry)
	if err != nil {
		return guideline.Key{}, fmt.Errorf("insert: %w", err)
	}

	if r.store != nil {
		if err := r.store.InsertGuideline(ctx, entry); err != nil {
			r.catalog.Remove(entry.Key)
			return guideline.Key{}, fmt.Errorf("insert: %w", err)
		}
	}

	return key, nil
}

// Replace swaps the entry under key for a new, key-preserving one and
// returns the previous entry. Fails with NOT_FOUND if the key is absent and
// KEY_MISMATCH if the replacement changes the key; a store failure puts the
// previous entry back.
func (r *Registry) Replace(ctx context.Context, key guideline.Key, entry guideline.Entry) (guideline.Entry, error) {
	prev, err := r.catalog.Replace(key, entry)
	if err != nil {
		return guideline.Entry{}, fmt.Errorf("replace: %w", err)
	}

	if r.store != nil {
		if _, err := r.store.UpdateGuideline(ctx, key, entry); err != nil {
			r.catalog.Replace(key, prev)
			return guideline.Entry{}, fmt.Errorf("replace: %w", err)
		}
	}

	return prev, nil
}

// Remove deletes the entry with the exact key and returns it; nil if
// absent. A store failure puts the entry back.
func (r *Registry) Remove(ctx context.Context, key guideline.Key) (*guideline.Entry, error) {
	removed, err := r.catalog.Remove(key)
	if err != nil {
		return nil, fmt.Errorf("remove: %w", err)
	}
	if removed == nil {
		return nil, nil
	}

	if r.store != nil {
		if _, err := r.store.DeleteGuideline(ctx, key); err != nil {
			r.catalog.Insert(*removed)
			return nil, fmt.Errorf("remove: %w", err)
		}
	}

	return removed, nil
}

// RemoveByName deletes the first entry matching a bare name and returns it;
// nil if absent. Documented slow path: a linear scan over the catalog.
//
// Exactly one entry leaves both views: the store delete targets the removed
// entry's full composite key, so other entries sharing the name survive.
func (r *Registry) RemoveByName(ctx context.Context, name string) (*guideline.Entry, error) {
	removed := r.catalog.RemoveByName(name)
	if removed == nil {
		return nil, nil
	}

	if r.store != nil {
		if _, err := r.store.DeleteGuideline(ctx, removed.Key); err != nil {
			r.catalog.Insert(*removed)
			return nil, fmt.Errorf("remove by name: %w", err)
		}
	}

	return removed, nil
}

// Scan returns the catalog entries matching the partial key, lazily, in
// catalog order. The catalog's iteration lock rules apply: do not mutate
// from inside the loop.
func (r *Registry) Scan(filter guideline.PartialKey) iter.Seq[guideline.Entry] {
	return r.catalog.Scan(filter)
}

// Query projects the partial-key filter and per-field ordering onto the
// store through the query compiler and returns the resulting entries.
func (r *Registry) Query(ctx context.Context, filter guideline.PartialKey, order []querysql.OrderTerm) ([]guideline.Entry, error) {
	if r.store == nil {
		return nil, fmt.Errorf("query: no store attached")
	}
	entries, err := store.QueryGuidelines(ctx, r.store, store.FilterTerms(filter), order)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return entries, nil
}
