// Package catalog implements the ordered in-memory guideline index.
//
// The index holds one sequence of entries, always sorted ascending by
// guideline.Compare. Binary search is valid only while that invariant holds,
// so every mutation preserves it atomically from the caller's perspective:
// all operations are serialized behind one lock per Catalog instance, and
// readers always observe a fully-sorted snapshot.
//
// Catalogs are expected to be small (hundreds of entries); insert and remove
// pay an O(n) splice after an O(log n) search, and name-only removal is a
// documented linear scan.
package catalog

import (
	"iter"
	"sync"

	"github.com/mbellwood/arcanum/internal/guideline"
)

// Catalog is an ordered index of guideline entries. The zero value is not
// usable; construct with New. Each Catalog is an explicitly owned instance:
// there is no process-wide singleton.
type Catalog struct {
	mu      sync.RWMutex
	entries []guideline.Entry
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// NewFromEntries creates a catalog seeded with the given entries.
// Entries are inserted one by one; the first duplicate or malformed key
// fails the whole construction.
func NewFromEntries(entries []guideline.Entry) (*Catalog, error) {
	c := New()
	for _, e := range entries {
		if _, err := c.Insert(e); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Entries returns a copy of the sorted backing sequence.
func (c *Catalog) Entries() []guideline.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]guideline.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Find binary-searches the whole catalog for an exact key.
//
// A non-negative result is the position of the matching entry. A negative
// result -(i)-1 encodes the insertion point i that would keep the catalog
// sorted, so "found at 0" and "not found, insert at 0" stay distinct.
//
// Fails with an INCOMPARABLE_VALUE error if the comparator cannot order the
// key against an entry visited during the search: binary search cannot
// proceed without a total order on the probed range.
func (c *Catalog) Find(key guideline.Key) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.search(key, 0, len(c.entries))
}

// FindIn is Find restricted to the sub-range [start, end) of the catalog.
// Fails with an INVALID_RANGE error if the window is outside [0, Len] or
// start > end.
func (c *Catalog) FindIn(key guideline.Key, start, end int) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if start < 0 || end > len(c.entries) || start > end {
		return 0, newInvalidRangeError(start, end, len(c.entries))
	}
	return c.search(key, start, end)
}

// FindPartialIn binary-searches [start, end) with the partial-key
// comparator and returns the position of some matching entry (not
// necessarily the first) or an insertion point, encoded as in Find.
//
// Only meaningful when the supplied fields form a prefix of the key
// precedence (form, then technique, ...): a partial key with missing
// leading fields is non-monotonic over the sort order and must use Scan
// instead.
func (c *Catalog) FindPartialIn(filter guideline.PartialKey, start, end int) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if start < 0 || end > len(c.entries) || start > end {
		return 0, newInvalidRangeError(start, end, len(c.entries))
	}

	lo, hi := start, end
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch guideline.ComparePartial(filter, c.entries[mid].Key) {
		case guideline.Less:
			hi = mid
		case guideline.Greater:
			lo = mid + 1
		case guideline.Equal:
			return mid, nil
		default:
			return 0, newIncomparableError(c.entries[mid].Key)
		}
	}
	return -lo - 1, nil
}

// search runs the binary search over [start, end). Callers hold c.mu and
// have validated the window.
func (c *Catalog) search(key guideline.Key, start, end int) (int, error) {
	lo, hi := start, end
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch guideline.Compare(key, c.entries[mid].Key) {
		case guideline.Less:
			hi = mid
		case guideline.Greater:
			lo = mid + 1
		case guideline.Equal:
			return mid, nil
		default:
			return 0, newIncomparableError(key)
		}
	}
	return -lo - 1, nil
}

// Get returns a copy of the entry with the exact key, or nil if absent.
// Absence is a normal outcome; only a malformed key errors.
func (c *Catalog) Get(key guideline.Key) (*guideline.Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pos, err := c.search(key, 0, len(c.entries))
	if err != nil {
		return nil, err
	}
	if pos < 0 {
		return nil, nil
	}
	entry := c.entries[pos]
	return &entry, nil
}

// Insert splices a new entry in at its sorted position and returns its key.
// Fails with a DUPLICATE_KEY error, leaving the catalog unchanged, if an
// entry with an equal key already exists.
func (c *Catalog) Insert(entry guideline.Entry) (guideline.Key, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, err := c.search(entry.Key, 0, len(c.entries))
	if err != nil {
		return guideline.Key{}, err
	}
	if pos >= 0 {
		return guideline.Key{}, newDuplicateKeyError(entry.Key)
	}

	at := -pos - 1
	c.entries = append(c.entries, guideline.Entry{})
	copy(c.entries[at+1:], c.entries[at:])
	c.entries[at] = entry

	return entry.Key, nil
}

// Replace swaps the entry stored under key for a new one and returns the
// previous entry. Fails with a NOT_FOUND error if no entry has the key.
//
// Replacements must be key-preserving: a replacement whose key differs from
// the lookup key would silently break the sort invariant, so it is rejected
// with a KEY_MISMATCH error. Callers that want to change a key remove the
// old entry and insert the new one.
func (c *Catalog) Replace(key guideline.Key, entry guideline.Entry) (guideline.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch guideline.Compare(key, entry.Key) {
	case guideline.Equal:
	case guideline.Incomparable:
		return guideline.Entry{}, newIncomparableError(entry.Key)
	default:
		return guideline.Entry{}, newKeyMismatchError(entry.Key)
	}

	pos, err := c.search(key, 0, len(c.entries))
	if err != nil {
		return guideline.Entry{}, err
	}
	if pos < 0 {
		return guideline.Entry{}, newNotFoundError(key)
	}

	prev := c.entries[pos]
	c.entries[pos] = entry
	return prev, nil
}

// Remove deletes the entry with the exact key and returns it, or nil if no
// entry has the key. Absence is a normal outcome, not an error; only a
// malformed key (incomparable during search) errors.
func (c *Catalog) Remove(key guideline.Key) (*guideline.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, err := c.search(key, 0, len(c.entries))
	if err != nil {
		return nil, err
	}
	if pos < 0 {
		return nil, nil
	}
	return c.removeAt(pos), nil
}

// RemoveByName deletes the first entry whose name matches, ignoring the rest
// of the key, and returns it; nil if no entry matches.
//
// This is a linear scan, deliberately slower than Remove: names alone are
// not ordered in the catalog. Catalogs are small, so the cost is acceptable.
func (c *Catalog) RemoveByName(name string) *guideline.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.entries {
		if c.entries[i].Key.Name == name {
			return c.removeAt(i)
		}
	}
	return nil
}

// removeAt splices out the entry at pos and returns a copy. Callers hold c.mu.
func (c *Catalog) removeAt(pos int) *guideline.Entry {
	removed := c.entries[pos]
	c.entries = append(c.entries[:pos], c.entries[pos+1:]...)
	return &removed
}

// Scan returns a lazy, order-preserving sequence of entries whose keys match
// every supplied field of the filter; absent fields match unconditionally.
//
// This is a full linear scan: a partial key with missing leading fields does
// not bound a contiguous region of the sort order, so binary search cannot
// prune it in general. The catalog read lock is held for the duration of the
// iteration, so the caller observes one consistent snapshot; yielded entries
// are copies.
//
// Callers must not mutate the catalog from inside the loop body: the
// mutation blocks on the lock the iteration still holds. Collect keys first
// and mutate after the loop, or iterate over Entries instead.
func (c *Catalog) Scan(filter guideline.PartialKey) iter.Seq[guideline.Entry] {
	return func(yield func(guideline.Entry) bool) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		for _, e := range c.entries {
			if !filter.Matches(e.Key) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
