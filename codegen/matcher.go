package codegen

import "github.com/ajroetker/go-mathgen/ir"

// FormatPredicate matches one position of a signature (the result
// format or one operand format).
type FormatPredicate func(f ir.Format) bool

// FSM (format strict match) accepts only formats descriptor-equal to
// want. Used for strict overload resolution over fixed-width formats.
func FSM(want ir.Format) FormatPredicate {
	return func(f ir.Format) bool {
		return f != nil && want.Equal(f)
	}
}

// TCM (type category match) accepts any format belonging to the named
// category, letting one rule cover a whole parametrized family such
// as "bit-vector of any width".
func TCM(cat ir.Category) FormatPredicate {
	return func(f ir.Format) bool {
		return f != nil && f.Category() == cat
	}
}

// Signature matches a node's type signature: position 0 is the result
// format, positions 1..n the operand formats in child order. Exact
// and category predicates mix freely within one signature; relative
// priority between signatures is solely their declared order in the
// rule list.
type Signature []FormatPredicate

// TypeStrictMatch builds a signature requiring descriptor equality at
// every position. The first format is the result, the rest the
// operands.
func TypeStrictMatch(formats ...ir.Format) Signature {
	sig := make(Signature, len(formats))
	for i, f := range formats {
		sig[i] = FSM(f)
	}
	return sig
}

// TypeCustomMatch builds a signature from explicit per-position
// predicates, mixing FSM and TCM as needed.
func TypeCustomMatch(preds ...FormatPredicate) Signature {
	return Signature(preds)
}

// Matches reports whether the node's result and operand formats
// satisfy the signature. A node with a different operand count never
// matches.
func (s Signature) Matches(n *ir.Node) bool {
	if len(s) != len(n.Children)+1 {
		return false
	}
	if !s[0](n.Format) {
		return false
	}
	for i, c := range n.Children {
		if !s[i+1](c.Format) {
			return false
		}
	}
	return true
}
