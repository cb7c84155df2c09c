package attribute

import (
	"fmt"
)

// Kind enumerates the attribute categories known to the serializer.
type Kind int

const (
	KindUnsupported Kind = iota
	KindBool
	KindChar
	KindByte
	KindShort
	KindInt
	KindShort2
	KindShort3
	KindInt2
	KindInt3
	KindFloat
	KindFloat2
	KindFloat3
	KindDouble
	KindDouble2
	KindDouble3
	KindDouble4
	KindAngle
	KindDistance
	KindTime
	KindEnum
	KindMatrix
	KindString
	KindStringArray
	KindDoubleArray
	KindIntArray
	KindPointArray
	KindVectorArray
	KindMessage
)

// kindNames uses the host's attribute type names.
var kindNames = map[Kind]string{
	KindUnsupported: "unsupported",
	KindBool:        "bool",
	KindChar:        "char",
	KindByte:        "byte",
	KindShort:       "short",
	KindInt:         "long",
	KindShort2:      "short2",
	KindShort3:      "short3",
	KindInt2:        "long2",
	KindInt3:        "long3",
	KindFloat:       "float",
	KindFloat2:      "float2",
	KindFloat3:      "float3",
	KindDouble:      "double",
	KindDouble2:     "double2",
	KindDouble3:     "double3",
	KindDouble4:     "double4",
	KindAngle:       "doubleAngle",
	KindDistance:    "doubleLinear",
	KindTime:        "time",
	KindEnum:        "enum",
	KindMatrix:      "matrix",
	KindString:      "string",
	KindStringArray: "stringArray",
	KindDoubleArray: "doubleArray",
	KindIntArray:    "Int32Array",
	KindPointArray:  "pointArray",
	KindVectorArray: "vectorArray",
	KindMessage:     "message",
}

// kindAliases are extra spellings accepted by ParseKind.
var kindAliases = map[string]Kind{
	"int":         KindInt,
	"int2":        KindInt2,
	"int3":        KindInt3,
	"angle":       KindAngle,
	"distance":    KindDistance,
	"intArray":    KindIntArray,
	"Int32Array":  KindIntArray,
	"int32Array":  KindIntArray,
	"connection":  KindMessage,
	"floatAngle":  KindAngle,
	"floatLinear": KindDistance,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a host type name to a Kind. Unknown names map to
// KindUnsupported with ok set to false.
func ParseKind(name string) (Kind, bool) {
	if k, ok := kindAliases[name]; ok {
		return k, true
	}
	for k, n := range kindNames {
		if n == name && k != KindUnsupported {
			return k, true
		}
	}
	return KindUnsupported, false
}
