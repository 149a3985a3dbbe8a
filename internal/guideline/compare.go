package guideline

import "strings"

// fieldComparator orders one field of two keys.
type fieldComparator func(a, b Key) Outcome

// keyFields lists the per-field comparators in precedence order. Compare
// reduces this list left-to-right and short-circuits at the first non-Equal
// outcome, so precedence is the slice order, nothing else.
var keyFields = []fieldComparator{
	func(a, b Key) Outcome { return compareStrings(a.Form, b.Form) },
	func(a, b Key) Outcome { return compareStrings(a.Technique, b.Technique) },
	func(a, b Key) Outcome { return compareLevels(a.Level, b.Level) },
	func(a, b Key) Outcome { return compareStrings(a.Name, b.Name) },
}

// Compare establishes the catalog's total order over well-formed keys.
// Fields are evaluated in fixed precedence (form, technique, level, name);
// the first non-Equal field outcome wins, including Incomparable.
//
// Incomparable is never coerced to Equal: callers that need a total order
// must surface it as a contract violation.
func Compare(a, b Key) Outcome {
	for _, cmp := range keyFields {
		if o := cmp(a, b); o != Equal {
			return o
		}
	}
	return Equal
}

// compareStrings orders two strings by ordinal byte comparison.
func compareStrings(a, b string) Outcome {
	switch c := strings.Compare(a, b); {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

// ComparePartial orders a partial key against a full key with the same
// field precedence as Compare, except that an absent field contributes
// Equal (is skipped) instead of an order or Incomparable.
//
// This comparator only filters against an existing sorted order; it never
// establishes one. An empty partial key is Equal to every key.
func ComparePartial(p PartialKey, k Key) Outcome {
	if p.Form != nil {
		if o := compareStrings(*p.Form, k.Form); o != Equal {
			return o
		}
	}
	if p.Technique != nil {
		if o := compareStrings(*p.Technique, k.Technique); o != Equal {
			return o
		}
	}
	if p.Level != nil {
		if o := compareLevels(*p.Level, k.Level); o != Equal {
			return o
		}
	}
	if p.Name != nil {
		if o := compareStrings(*p.Name, k.Name); o != Equal {
			return o
		}
	}
	return Equal
}

// Matches reports whether every supplied field of the partial key matches
// the key. Absent fields match unconditionally.
func (p PartialKey) Matches(k Key) bool {
	return ComparePartial(p, k) == Equal
}
