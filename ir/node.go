// Copyright 2025 go-mathgen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ir

import "fmt"

// Kind is the discriminant of an operation node. The set is closed:
// backends dispatch on it and unknown kinds are a resolution failure,
// never a silent default.
type Kind int

const (
	KindInvalid Kind = iota

	// Leaf kinds handled directly by the expression driver.
	Constant
	Variable
	TableLoad

	// Arithmetic.
	Addition
	Subtraction
	Multiplication
	Division
	Negation

	// Boolean logic.
	Comparison
	LogicalAnd
	LogicalOr
	LogicalNot
	Select

	// Bit-level logic.
	BitLogicNegate
	BitLogicAnd
	BitLogicOr
	BitLogicXor
	BitLogicLeftShift
	BitLogicRightShift

	// Bit-vector structure.
	Concatenation
	VectorElementSelection
	SubSignalSelection
	Replication
	ZeroExt
	SignExt
	Truncate

	// Format handling.
	Conversion
	TypeCast
	SignCast

	// Floating-point field access.
	MantissaExtraction
	ExponentExtraction
	CopySign

	// Miscellaneous.
	CountLeadingZeros
	Event
	SpecificOperation
)

var kindNames = map[Kind]string{
	KindInvalid:            "Invalid",
	Constant:               "Constant",
	Variable:               "Variable",
	TableLoad:              "TableLoad",
	Addition:               "Addition",
	Subtraction:            "Subtraction",
	Multiplication:         "Multiplication",
	Division:               "Division",
	Negation:               "Negation",
	Comparison:             "Comparison",
	LogicalAnd:             "LogicalAnd",
	LogicalOr:              "LogicalOr",
	LogicalNot:             "LogicalNot",
	Select:                 "Select",
	BitLogicNegate:         "BitLogicNegate",
	BitLogicAnd:            "BitLogicAnd",
	BitLogicOr:             "BitLogicOr",
	BitLogicXor:            "BitLogicXor",
	BitLogicLeftShift:      "BitLogicLeftShift",
	BitLogicRightShift:     "BitLogicRightShift",
	Concatenation:          "Concatenation",
	VectorElementSelection: "VectorElementSelection",
	SubSignalSelection:     "SubSignalSelection",
	Replication:            "Replication",
	ZeroExt:                "ZeroExt",
	SignExt:                "SignExt",
	Truncate:               "Truncate",
	Conversion:             "Conversion",
	TypeCast:               "TypeCast",
	SignCast:               "SignCast",
	MantissaExtraction:     "MantissaExtraction",
	ExponentExtraction:     "ExponentExtraction",
	CopySign:               "CopySign",
	CountLeadingZeros:      "CountLeadingZeros",
	Event:                  "Event",
	SpecificOperation:      "SpecificOperation",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Specifier is the optional sub-discriminant of a kind. Kinds without
// sub-variants use SpecNone.
type Specifier int

const (
	SpecNone Specifier = iota

	CompEqual
	CompNotEqual
	CompLess
	CompLessOrEqual
	CompGreater
	CompGreaterOrEqual
	CompLessSigned
	CompLessOrEqualSigned
	CompGreaterSigned
	CompGreaterOrEqualSigned

	CastSigned
	CastUnsigned

	SpecCopySign
)

var specifierNames = map[Specifier]string{
	SpecNone:                 "None",
	CompEqual:                "Equal",
	CompNotEqual:             "NotEqual",
	CompLess:                 "Less",
	CompLessOrEqual:          "LessOrEqual",
	CompGreater:              "Greater",
	CompGreaterOrEqual:       "GreaterOrEqual",
	CompLessSigned:           "LessSigned",
	CompLessOrEqualSigned:    "LessOrEqualSigned",
	CompGreaterSigned:        "GreaterSigned",
	CompGreaterOrEqualSigned: "GreaterOrEqualSigned",
	CastSigned:               "Signed",
	CastUnsigned:             "Unsigned",
	SpecCopySign:             "CopySign",
}

func (s Specifier) String() string {
	if n, ok := specifierNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Specifier(%d)", int(s))
}

// ID is a stable identifier assigned by an Arena at construction.
// Entity deduplication in symbol tables keys on IDs, never on Go
// pointer identity.
type ID uint64

// Entity is anything declarable in a symbol table: nodes (constants,
// variables), lookup tables and functions.
type Entity interface {
	EntityID() ID
}

// DebugAttributes carries optional display metadata attached by the
// front end, surfaced in diagnostics only.
type DebugAttributes struct {
	SourceFile string
	SourceLine int
	Display    string
}

// Node is one element of the operation tree. Nodes are produced by
// the front end and read-only to the code-generation core; the same
// node may appear as a child of multiple parents.
type Node struct {
	Kind     Kind
	Spec     Specifier
	Format   Format
	Tag      string
	Children []*Node

	id    ID
	arena *Arena
	debug *DebugAttributes

	// Kind-specific attributes. Accessors below fail on absence so a
	// generator reading an attribute its node does not carry reports
	// a malformed node instead of a zero value.
	value      int64
	hasValue   bool
	varName    string
	table      *Table
	extSize    int
	hasExtSize bool
	loIndex    int
	hiIndex    int
	hasBounds  bool
}

// Arena constructs nodes and entities and assigns their stable IDs.
// Each compilation pass owns exactly one arena; arenas are never
// shared across concurrently generated functions.
type Arena struct {
	next ID
}

func NewArena() *Arena { return &Arena{} }

func (a *Arena) nextID() ID {
	a.next++
	return a.next
}

// NewNode builds an operation node with the given kind, specifier,
// result format and children.
func (a *Arena) NewNode(kind Kind, spec Specifier, format Format, children ...*Node) *Node {
	return &Node{
		Kind:     kind,
		Spec:     spec,
		Format:   format,
		Children: children,
		id:       a.nextID(),
		arena:    a,
	}
}

// NewConstant builds a constant leaf node.
func (a *Arena) NewConstant(value int64, format Format) *Node {
	n := a.NewNode(Constant, SpecNone, format)
	n.value = value
	n.hasValue = true
	return n
}

// NewVariable builds a variable leaf node referring to an
// already-declared name.
func (a *Arena) NewVariable(name string, format Format) *Node {
	n := a.NewNode(Variable, SpecNone, format)
	n.varName = name
	return n
}

// NewTableLoad builds a lookup into a declared table.
func (a *Arena) NewTableLoad(table *Table, index *Node, format Format) *Node {
	n := a.NewNode(TableLoad, SpecNone, format, index)
	n.table = table
	return n
}

func (n *Node) ID() ID        { return n.id }
func (n *Node) EntityID() ID  { return n.id }
func (n *Node) Arena() *Arena { return n.arena }

// SetTag attaches a human-readable tag and returns the node for
// chaining during tree construction.
func (n *Node) SetTag(tag string) *Node {
	n.Tag = tag
	return n
}

// SetDebug attaches debug-display metadata.
func (n *Node) SetDebug(d *DebugAttributes) *Node {
	n.debug = d
	return n
}

func (n *Node) Debug() *DebugAttributes { return n.debug }

// WithExtSize records the extension width of a ZeroExt/SignExt node.
func (n *Node) WithExtSize(bits int) *Node {
	n.extSize = bits
	n.hasExtSize = true
	return n
}

// WithSliceBounds records the inclusive bit range of a
// SubSignalSelection node.
func (n *Node) WithSliceBounds(lo, hi int) *Node {
	n.loIndex = lo
	n.hiIndex = hi
	n.hasBounds = true
	return n
}

// IntValue returns the value of a constant node.
func (n *Node) IntValue() (int64, error) {
	if !n.hasValue {
		return 0, fmt.Errorf("%s node has no constant value", n.Kind)
	}
	return n.value, nil
}

// VarName returns the declared name of a variable node.
func (n *Node) VarName() (string, error) {
	if n.Kind != Variable {
		return "", fmt.Errorf("%s node has no variable name", n.Kind)
	}
	return n.varName, nil
}

// TableRef returns the table referenced by a TableLoad node.
func (n *Node) TableRef() (*Table, error) {
	if n.table == nil {
		return nil, fmt.Errorf("%s node has no table reference", n.Kind)
	}
	return n.table, nil
}

// ExtSize returns the extension width of an extension node.
func (n *Node) ExtSize() (int, error) {
	if !n.hasExtSize {
		return 0, fmt.Errorf("%s node has no extension size", n.Kind)
	}
	return n.extSize, nil
}

// SliceBounds returns the inclusive bit range of a slice node.
func (n *Node) SliceBounds() (lo, hi int, err error) {
	if !n.hasBounds {
		return 0, 0, fmt.Errorf("%s node has no slice bounds", n.Kind)
	}
	return n.loIndex, n.hiIndex, nil
}

// FormatBitSize returns the node's result width in bits, failing when
// the format is absent or unsized (a category placeholder rather than
// a concrete width).
func (n *Node) FormatBitSize() (int, error) {
	if n.Format == nil {
		return 0, fmt.Errorf("%s node has no result format", n.Kind)
	}
	bits := n.Format.BitSize()
	if bits == 0 {
		return 0, fmt.Errorf("%s node format %s has no bit width", n.Kind, n.Format.Name(CCode))
	}
	return bits, nil
}

func (n *Node) String() string {
	if n.Tag != "" {
		return fmt.Sprintf("%s[%s]", n.Kind, n.Tag)
	}
	return n.Kind.String()
}
