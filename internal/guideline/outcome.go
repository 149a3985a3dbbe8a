package guideline

// Outcome is the result of comparing two keys or key fields.
//
// Incomparable is a distinct tagged value, not a nullable integer: it must
// never be collapsed into Equal. It indicates the operands cannot be ordered
// at all (malformed key data) and is always surfaced as an error by callers
// that need a total order.
type Outcome int

const (
	// Less means the first operand orders before the second.
	Less Outcome = iota - 1
	// Equal means the operands order identically.
	Equal
	// Greater means the first operand orders after the second.
	Greater
	// Incomparable means no order could be established between the operands.
	Incomparable
)

// String returns the outcome name for diagnostics.
func (o Outcome) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	case Incomparable:
		return "incomparable"
	default:
		return "unknown"
	}
}
