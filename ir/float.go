package ir

// FloatGeometry describes the bit layout of an IEEE-754 binary
// interchange format.
type FloatGeometry struct {
	ExponentBits int
	FieldBits    int // stored fraction, implicit digit excluded
}

// MantissaBits returns the mantissa width including the implicit
// digit.
func (g FloatGeometry) MantissaBits() int { return g.FieldBits + 1 }

var floatGeometries = map[*ScalarFormat]FloatGeometry{
	Binary16: {ExponentBits: 5, FieldBits: 10},
	Binary32: {ExponentBits: 8, FieldBits: 23},
	Binary64: {ExponentBits: 11, FieldBits: 52},
}

// Geometry returns the IEEE-754 layout of a floating-point format.
// The second result is false for non-float formats.
func Geometry(f Format) (FloatGeometry, bool) {
	sf, ok := f.(*ScalarFormat)
	if !ok {
		return FloatGeometry{}, false
	}
	g, ok := floatGeometries[sf]
	return g, ok
}
