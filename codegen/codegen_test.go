package codegen

import (
	"strconv"

	"github.com/ajroetker/go-mathgen/ir"
)

// testLang is a minimal statement renderer for exercising the buffer
// and driver without pulling in a real target syntax.
type testLang struct{}

func (testLang) ID() ir.Language { return ir.CCode }

func (testLang) Literal(n *ir.Node) (string, error) {
	v, err := n.IntValue()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}

func (testLang) Declaration(cat SymbolCategory, name string, ent ir.Entity) string {
	return cat.String() + " " + name + ";\n"
}

func (testLang) Assignment(dst, src string) string {
	return dst + " = " + src + ";\n"
}

func (testLang) TableAccess(name, index string) string {
	return name + "[" + index + "]"
}

func (testLang) Comment(text string) string { return "// " + text + "\n" }

func (testLang) Include(header string) string { return "#include <" + header + ">\n" }

func (testLang) BlockOpen() string  { return "{" }
func (testLang) BlockClose() string { return "}" }
