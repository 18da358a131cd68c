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

package codegen

import "github.com/ajroetker/go-mathgen/ir"

// maxRewriteDepth bounds complex-operator rewrite chains. Every
// rewrite must strictly reduce toward primitive kinds; hitting the
// ceiling means a rewrite cycle in the backend table.
const maxRewriteDepth = 32

// ExprGenerator is the driver: it walks an operation tree, resolves
// each node through the backend's table for one output language,
// invokes the selected generator, and writes folded intermediates
// into the scope stack. One ExprGenerator (with its NestedCode and
// arena) belongs to exactly one synchronous generation pass.
type ExprGenerator struct {
	backend *Backend
	lang    Language
}

func NewExprGenerator(backend *Backend, lang Language) *ExprGenerator {
	return &ExprGenerator{backend: backend, lang: lang}
}

// Generate renders the tree rooted at n into buf's innermost scope
// and returns the root's operand. On error the buffer contents are
// unspecified and the caller must discard buf.
func (g *ExprGenerator) Generate(buf *NestedCode, n *ir.Node) (Operand, error) {
	return g.generate(buf, n, false, 0)
}

// GenerateFolded renders n and guarantees the result is a named
// binding, emitting an assignment when the root renders as a bare
// expression.
func (g *ExprGenerator) GenerateFolded(buf *NestedCode, n *ir.Node) (Operand, error) {
	return g.generate(buf, n, true, 0)
}

// EmitAssignment renders n and writes an assignment of its value to
// dst into the current scope.
func (g *ExprGenerator) EmitAssignment(buf *NestedCode, dst string, n *ir.Node) error {
	op, err := g.generate(buf, n, false, 0)
	if err != nil {
		return err
	}
	buf.Write(g.lang.Assignment(dst, op.Text))
	return nil
}

func (g *ExprGenerator) generate(buf *NestedCode, n *ir.Node, folded bool, rewriteDepth int) (Operand, error) {
	if rewriteDepth > maxRewriteDepth {
		return Operand{}, Malformedf(n, "complex-operator rewrite depth exceeded %d: rewrite cycle suspected", maxRewriteDepth)
	}

	// Leaf kinds the driver renders without consulting the table.
	switch n.Kind {
	case ir.Variable:
		name, err := n.VarName()
		if err != nil {
			return Operand{}, Malformed(n, err)
		}
		return Operand{Text: name, Format: n.Format, IsVar: true}, nil

	case ir.Constant:
		lit, err := g.lang.Literal(n)
		if err != nil {
			return Operand{}, Malformed(n, err)
		}
		return Operand{Text: lit, Format: n.Format, noParens: true}, nil

	case ir.TableLoad:
		return g.generateTableLoad(buf, n, folded, rewriteDepth)
	}

	gen, err := g.backend.Resolve(g.lang.ID(), n)
	if err != nil {
		return Operand{}, err
	}
	// Dynamic generators are built out here so the folding decision
	// below sees the concrete generator's folding requirement.
	if dyn, ok := gen.(*DynamicOperator); ok {
		if gen, err = dyn.Build(n); err != nil {
			return Operand{}, err
		}
	}

	ctx := &Context{
		Operand: func(child *ir.Node) (Operand, error) {
			return g.generate(buf, child, false, rewriteDepth)
		},
		Rewritten: func(repl *ir.Node) (Operand, error) {
			return g.generate(buf, repl, false, rewriteDepth+1)
		},
		AddHeader: buf.AddHeader,
	}

	op, err := gen.Render(n, ctx)
	if err != nil {
		return Operand{}, err
	}
	if folded || ForcesFolding(gen) {
		return g.fold(buf, n, op)
	}
	return op, nil
}

func (g *ExprGenerator) generateTableLoad(buf *NestedCode, n *ir.Node, folded bool, rewriteDepth int) (Operand, error) {
	table, err := n.TableRef()
	if err != nil {
		return Operand{}, Malformed(n, err)
	}
	if len(n.Children) != 1 {
		return Operand{}, Malformedf(n, "table load expects 1 index operand, node has %d", len(n.Children))
	}
	name, err := buf.DeclareTable(table, "table")
	if err != nil {
		return Operand{}, err
	}
	index, err := g.generate(buf, n.Children[0], false, rewriteDepth)
	if err != nil {
		return Operand{}, err
	}
	op := Operand{
		Text:     g.lang.TableAccess(name, index.Text),
		Format:   n.Format,
		noParens: true,
	}
	if folded {
		return g.fold(buf, n, op)
	}
	return op, nil
}

// fold binds an operand to a fresh named variable and emits the
// assignment. The node's tag seeds the name prefix so generated
// source stays readable.
func (g *ExprGenerator) fold(buf *NestedCode, n *ir.Node, op Operand) (Operand, error) {
	if op.IsVar {
		return op, nil
	}
	prefix := "tmp"
	if n.Tag != "" {
		prefix = n.Tag
	}
	name, err := buf.GetFreeVarName(n.Arena(), op.Format, prefix, true)
	if err != nil {
		return Operand{}, err
	}
	buf.Write(g.lang.Assignment(name, op.Text))
	return Operand{Text: name, Format: op.Format, IsVar: true}, nil
}
