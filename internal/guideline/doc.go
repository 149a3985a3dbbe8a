// Package guideline defines the composite key, entry, and comparator types
// for the arcanum guideline catalog.
//
// A guideline is identified by a four-field composite key:
// (form, technique, level, name), e.g. (Animal, Creo, 5, "Cure X").
// The key is ordered field-by-field in that fixed precedence, with a
// designated "generic" level that sorts before every numeric level.
//
// Two comparators operate on keys:
//
//   - Compare establishes a total order over well-formed keys. It is the
//     single source of truth for catalog ordering: the in-memory index, the
//     SQLite projection, and every scan must agree with it.
//   - ComparePartial tolerates absent fields and is used only for filtering
//     against an already-ordered catalog. A field absent on either side
//     contributes Equal (is skipped) rather than forcing an order.
//
// Comparisons yield a four-valued Outcome. Incomparable marks operands the
// comparator could not order (malformed level data); callers must treat it
// as a contract violation, never as a tie.
package guideline
