package codegen

import "github.com/ajroetker/go-mathgen/ir"

// Predicate filters whole rule groups before signature resolution,
// encoding coarse target-mode splits ("operand type is a hardware
// bit-vector" vs "plain scalar"). A nil predicate always applies.
type Predicate func(n *ir.Node) bool

// Rule pairs a type signature with the generator selected when the
// signature matches. Rules are tried in declared order; the first
// match wins, so order is a correctness invariant, not a tiebreak.
type Rule struct {
	Sig Signature
	Gen Generator
}

// RuleGroup is an ordered rule list guarded by an applicability
// predicate. Resolution commits to the first group whose predicate
// holds: when none of its rules match, later groups are not tried.
// Groups are meant to be mutually exclusive target-mode partitions.
type RuleGroup struct {
	When  Predicate
	Rules []Rule
}

// Table is one output language's code-generation table:
// kind → specifier → ordered rule groups. Kinds without sub-variants
// register their groups under ir.SpecNone.
type Table map[ir.Kind]map[ir.Specifier][]RuleGroup

// HasEntry reports whether the table carries any groups for the
// kind/specifier pair. Backend chains use it to decide whether a
// specialized table shadows its base for this entry.
func (t Table) HasEntry(kind ir.Kind, spec ir.Specifier) bool {
	bySpec, ok := t[kind]
	if !ok {
		return false
	}
	_, ok = bySpec[spec]
	return ok
}

// Resolve selects the generator for a node. Resolution is pure and
// idempotent: the same node against the same table always yields the
// same generator.
func (t Table) Resolve(n *ir.Node) (Generator, error) {
	bySpec, ok := t[n.Kind]
	if !ok {
		return nil, noMatch(n, "kind has no table entry")
	}
	groups, ok := bySpec[n.Spec]
	if !ok {
		return nil, noMatch(n, "specifier has no table entry")
	}
	for _, g := range groups {
		if g.When != nil && !g.When(n) {
			continue
		}
		for _, r := range g.Rules {
			if r.Sig.Matches(n) {
				return r.Gen, nil
			}
		}
		// The first applicable group is committed to; a signature
		// miss inside it is a hard failure, not a fallthrough.
		return nil, noMatch(n, "no signature matched in selected rule group")
	}
	return nil, noMatch(n, "no applicable rule group")
}

// HomogeneousRules expands one generator over a format list into
// strict-match rules with identical result and operand formats, one
// rule per format. This is the common shape for fixed-width integer
// arithmetic where every width gets its own exact overload.
func HomogeneousRules(formats []ir.Format, arity int, gen Generator) []Rule {
	rules := make([]Rule, 0, len(formats))
	for _, f := range formats {
		sig := make([]ir.Format, arity+1)
		for i := range sig {
			sig[i] = f
		}
		rules = append(rules, Rule{Sig: TypeStrictMatch(sig...), Gen: gen})
	}
	return rules
}
