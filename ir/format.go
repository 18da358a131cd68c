package ir

import "fmt"

// Language identifies an output syntax. Formats carry one rendered
// name per language so the same abstract format can appear as
// "integer" in VHDL and "int" in C.
type Language string

const (
	CCode    Language = "c"
	VHDLCode Language = "vhdl"
)

// Category names a family of formats for category-based signature
// matching. A rule matching CategoryBitVector covers every bit-vector
// width with a single entry.
type Category string

const (
	CategoryAbstract  Category = "abstract"
	CategoryFixed     Category = "fixed"
	CategoryFloat     Category = "float"
	CategoryLogic     Category = "logic"
	CategoryBitVector Category = "bit-vector"
)

// Format describes the numeric or bit-vector type attached to a node.
type Format interface {
	// Name returns the format's type name in the given language.
	Name(lang Language) string
	// BitSize returns the storage width in bits, or 0 when the format
	// is abstract (unsized).
	BitSize() int
	// Category returns the format family used by category matchers.
	Category() Category
	// Equal reports descriptor equality. Two formats are equal only
	// when every field of their descriptors is identical; category
	// membership is not enough.
	Equal(other Format) bool
}

// ScalarFormat is a fixed, non-parametrized format descriptor. All
// predeclared formats (Int32, Binary64, StdLogic, ...) are scalar
// formats; they are compared by descriptor identity, not by width.
type ScalarFormat struct {
	name     string
	bits     int
	category Category
	signed   bool
	names    map[Language]string
}

func (f *ScalarFormat) Name(lang Language) string {
	if n, ok := f.names[lang]; ok {
		return n
	}
	return f.name
}

func (f *ScalarFormat) BitSize() int       { return f.bits }
func (f *ScalarFormat) Category() Category { return f.category }
func (f *ScalarFormat) Signed() bool       { return f.signed }

func (f *ScalarFormat) Equal(other Format) bool {
	o, ok := other.(*ScalarFormat)
	return ok && o.name == f.name && o.bits == f.bits && o.category == f.category
}

func (f *ScalarFormat) String() string { return f.name }

// BitVectorFormat is a parametrized bit-vector format of a fixed
// width. Two bit-vector formats are equal exactly when their widths
// are equal.
type BitVectorFormat struct {
	bits int
}

// BitVector returns the bit-vector format of the given width.
func BitVector(bits int) *BitVectorFormat {
	return &BitVectorFormat{bits: bits}
}

func (f *BitVectorFormat) Name(lang Language) string {
	switch lang {
	case VHDLCode:
		return fmt.Sprintf("std_logic_vector(%d downto 0)", f.bits-1)
	default:
		return fmt.Sprintf("uint%d_t", f.bits)
	}
}

func (f *BitVectorFormat) BitSize() int       { return f.bits }
func (f *BitVectorFormat) Category() Category { return CategoryBitVector }

func (f *BitVectorFormat) Equal(other Format) bool {
	o, ok := other.(*BitVectorFormat)
	return ok && o.bits == f.bits
}

func (f *BitVectorFormat) String() string {
	return fmt.Sprintf("bitvector<%d>", f.bits)
}

func fixed(name string, bits int, signed bool, cname string) *ScalarFormat {
	return &ScalarFormat{
		name:     name,
		bits:     bits,
		category: CategoryFixed,
		signed:   signed,
		names:    map[Language]string{CCode: cname},
	}
}

// Predeclared formats. Abstract formats (Integer, Bool) are unsized
// and resolve to whatever the output language considers natural.
var (
	Integer = &ScalarFormat{name: "ml_integer", category: CategoryAbstract, names: map[Language]string{
		CCode: "int", VHDLCode: "integer",
	}}
	Bool = &ScalarFormat{name: "ml_bool", category: CategoryAbstract, names: map[Language]string{
		CCode: "int", VHDLCode: "boolean",
	}}

	Int8    = fixed("ml_int8", 8, true, "int8_t")
	UInt8   = fixed("ml_uint8", 8, false, "uint8_t")
	Int16   = fixed("ml_int16", 16, true, "int16_t")
	UInt16  = fixed("ml_uint16", 16, false, "uint16_t")
	Int32   = fixed("ml_int32", 32, true, "int32_t")
	UInt32  = fixed("ml_uint32", 32, false, "uint32_t")
	Int64   = fixed("ml_int64", 64, true, "int64_t")
	UInt64  = fixed("ml_uint64", 64, false, "uint64_t")
	Int128  = fixed("ml_int128", 128, true, "__int128")
	UInt128 = fixed("ml_uint128", 128, false, "unsigned __int128")

	Binary16 = &ScalarFormat{name: "ml_binary16", bits: 16, category: CategoryFloat, names: map[Language]string{
		CCode: "_Float16", VHDLCode: "std_logic_vector(15 downto 0)",
	}}
	Binary32 = &ScalarFormat{name: "ml_binary32", bits: 32, category: CategoryFloat, names: map[Language]string{
		CCode: "float", VHDLCode: "std_logic_vector(31 downto 0)",
	}}
	Binary64 = &ScalarFormat{name: "ml_binary64", bits: 64, category: CategoryFloat, names: map[Language]string{
		CCode: "double", VHDLCode: "std_logic_vector(63 downto 0)",
	}}

	StdLogic = &ScalarFormat{name: "std_logic", bits: 1, category: CategoryLogic, names: map[Language]string{
		CCode: "uint8_t", VHDLCode: "std_logic",
	}}
)

// FixedFormats lists the predeclared fixed-width integer formats from
// narrowest to widest, signed before unsigned at each width.
var FixedFormats = []Format{
	Int8, UInt8, Int16, UInt16, Int32, UInt32, Int64, UInt64, Int128, UInt128,
}
