package attribute

import "unicode"

// Value is the current value of an attribute. The set of implementations is
// closed; Unsupported stands in for host types with no rendering.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	Bool  bool
	Char  int8
	Byte  uint8
	Short int16
	Int   int32

	Short2 [2]int16
	Short3 [3]int16
	Int2   [2]int32
	Int3   [3]int32

	Float   float32
	Float2  [2]float32
	Float3  [3]float32
	Double  float64
	Double2 [2]float64
	Double3 [3]float64
	Double4 [4]float64

	// Angle is stored in radians.
	Angle float64
	// Distance is stored in centimetres.
	Distance float64
	// Time is stored in seconds.
	Time float64

	// Matrix is a row-major 4x4 matrix.
	Matrix [4][4]float64

	String      string
	StringArray []string
	DoubleArray []float64
	IntArray    []int32
	PointArray  [][3]float64
	VectorArray [][3]float64
)

// Enum holds the selected index and the field table of an enum attribute.
type Enum struct {
	Index  int16
	Fields map[int16]string
}

// FieldName returns the symbolic name of the selected field. Enum values
// render as bare names, so a field that is not an identifier, or is a
// keyword, has no usable name.
func (e Enum) FieldName() (string, bool) {
	name, ok := e.Fields[e.Index]
	return name, ok && isIdentifier(name)
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"load": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true,
	"yield": true,
}

func isIdentifier(name string) bool {
	if name == "" || keywords[name] {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// Source is a node feeding a message attribute.
type Source struct {
	// Name is the simple node name.
	Name string
	// Path is the full hierarchical path, set for hierarchical nodes only.
	Path string
}

// Hierarchical reports whether the source lives in the scene hierarchy.
func (s Source) Hierarchical() bool {
	return s.Path != ""
}

// Message lists the incoming connections of a message attribute.
type Message struct {
	Sources []Source
}

// Unsupported is any host type without a literal rendering.
type Unsupported struct {
	TypeName string
}

func (Bool) Kind() Kind        { return KindBool }
func (Char) Kind() Kind        { return KindChar }
func (Byte) Kind() Kind        { return KindByte }
func (Short) Kind() Kind       { return KindShort }
func (Int) Kind() Kind         { return KindInt }
func (Short2) Kind() Kind      { return KindShort2 }
func (Short3) Kind() Kind      { return KindShort3 }
func (Int2) Kind() Kind        { return KindInt2 }
func (Int3) Kind() Kind        { return KindInt3 }
func (Float) Kind() Kind       { return KindFloat }
func (Float2) Kind() Kind      { return KindFloat2 }
func (Float3) Kind() Kind      { return KindFloat3 }
func (Double) Kind() Kind      { return KindDouble }
func (Double2) Kind() Kind     { return KindDouble2 }
func (Double3) Kind() Kind     { return KindDouble3 }
func (Double4) Kind() Kind     { return KindDouble4 }
func (Angle) Kind() Kind       { return KindAngle }
func (Distance) Kind() Kind    { return KindDistance }
func (Time) Kind() Kind        { return KindTime }
func (Enum) Kind() Kind        { return KindEnum }
func (Matrix) Kind() Kind      { return KindMatrix }
func (String) Kind() Kind      { return KindString }
func (StringArray) Kind() Kind { return KindStringArray }
func (DoubleArray) Kind() Kind { return KindDoubleArray }
func (IntArray) Kind() Kind    { return KindIntArray }
func (PointArray) Kind() Kind  { return KindPointArray }
func (VectorArray) Kind() Kind { return KindVectorArray }
func (Message) Kind() Kind     { return KindMessage }
func (Unsupported) Kind() Kind { return KindUnsupported }

func (Bool) isValue()        {}
func (Char) isValue()        {}
func (Byte) isValue()        {}
func (Short) isValue()       {}
func (Int) isValue()         {}
func (Short2) isValue()      {}
func (Short3) isValue()      {}
func (Int2) isValue()        {}
func (Int3) isValue()        {}
func (Float) isValue()       {}
func (Float2) isValue()      {}
func (Float3) isValue()      {}
func (Double) isValue()      {}
func (Double2) isValue()     {}
func (Double3) isValue()     {}
func (Double4) isValue()     {}
func (Angle) isValue()       {}
func (Distance) isValue()    {}
func (Time) isValue()        {}
func (Enum) isValue()        {}
func (Matrix) isValue()      {}
func (String) isValue()      {}
func (StringArray) isValue() {}
func (DoubleArray) isValue() {}
func (IntArray) isValue()    {}
func (PointArray) isValue()  {}
func (VectorArray) isValue() {}
func (Message) isValue()     {}
func (Unsupported) isValue() {}

// Identity returns a 4x4 identity matrix.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}
