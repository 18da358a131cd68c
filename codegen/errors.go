package codegen

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-mathgen/ir"
)

// Sentinel errors for the three failure classes of the backend. All
// are fatal: a failure means the IR and the backend table are out of
// sync, and the caller discards any partially generated text.
var (
	ErrNoMatchingRule = errors.New("no matching rule")
	ErrMalformedNode  = errors.New("malformed node")
	ErrNameCollision  = errors.New("name collision")
)

// NoMatchingRuleError reports a node the backend table could not
// resolve: either the kind/specifier has no entry, or the selected
// rule group contained no signature matching the node's formats.
type NoMatchingRuleError struct {
	Kind   ir.Kind
	Spec   ir.Specifier
	Tag    string
	Reason string
}

func (e *NoMatchingRuleError) Error() string {
	var where string
	if e.Tag != "" {
		where = fmt.Sprintf("%s/%s (tag %q)", e.Kind, e.Spec, e.Tag)
	} else {
		where = fmt.Sprintf("%s/%s", e.Kind, e.Spec)
	}
	return fmt.Sprintf("no matching rule for %s: %s", where, e.Reason)
}

func (e *NoMatchingRuleError) Unwrap() error { return ErrNoMatchingRule }

func noMatch(n *ir.Node, format string, args ...any) error {
	return &NoMatchingRuleError{
		Kind:   n.Kind,
		Spec:   n.Spec,
		Tag:    n.Tag,
		Reason: fmt.Sprintf(format, args...),
	}
}

// MalformedNodeError reports a structural precondition violated by a
// node handed to a generator: wrong arity, a missing attribute, or an
// attribute read that the node's format combination cannot satisfy.
type MalformedNodeError struct {
	Kind   ir.Kind
	Tag    string
	Reason string
}

func (e *MalformedNodeError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("malformed %s node (tag %q): %s", e.Kind, e.Tag, e.Reason)
	}
	return fmt.Sprintf("malformed %s node: %s", e.Kind, e.Reason)
}

func (e *MalformedNodeError) Unwrap() error { return ErrMalformedNode }

// Malformed wraps an attribute-access failure on a node into a
// MalformedNodeError. Target-specific dynamic generators use it so a
// missing attribute never surfaces as a panic.
func Malformed(n *ir.Node, err error) error {
	return &MalformedNodeError{Kind: n.Kind, Tag: n.Tag, Reason: err.Error()}
}

// Malformedf is Malformed with a formatted reason.
func Malformedf(n *ir.Node, format string, args ...any) error {
	return &MalformedNodeError{Kind: n.Kind, Tag: n.Tag, Reason: fmt.Sprintf(format, args...)}
}

// NameCollisionError reports a declaration under an already-taken
// name. Unreachable when names come from GetFreeName; observing it
// means a scope-sharing misconfiguration, so it is fatal and never
// auto-renamed.
type NameCollisionError struct {
	Name string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("name %q already declared in scope", e.Name)
}

func (e *NameCollisionError) Unwrap() error { return ErrNameCollision }
