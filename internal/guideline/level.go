package guideline

import "strconv"

// Level is a guideline's magnitude. LevelGeneric is the sentinel for
// guidelines that apply at any level; it sorts before every concrete level.
// Concrete levels are positive integers ordered numerically. Negative values
// are malformed and compare Incomparable.
type Level int

// LevelGeneric marks a guideline that applies at any level ("Generic" in
// rulebook notation). It is distinct from every concrete level and always
// sorts first.
const LevelGeneric Level = 0

// Generic reports whether the level is the generic sentinel.
func (l Level) Generic() bool {
	return l == LevelGeneric
}

// Valid reports whether the level is either generic or a concrete level.
func (l Level) Valid() bool {
	return l >= LevelGeneric
}

// String renders the level for display: "Generic" for the sentinel,
// otherwise the decimal value.
func (l Level) String() string {
	if l.Generic() {
		return "Generic"
	}
	return strconv.Itoa(int(l))
}

// compareLevels orders two levels: generic before every concrete level,
// two generics equal, concrete levels numerically ascending.
// Malformed (negative) operands yield Incomparable.
func compareLevels(a, b Level) Outcome {
	if !a.Valid() || !b.Valid() {
		return Incomparable
	}
	switch {
	case a.Generic() && b.Generic():
		return Equal
	case a.Generic():
		return Less
	case b.Generic():
		return Greater
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}
