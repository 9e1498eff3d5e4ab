// Package sqltype models the recursive, tagged-variant SQL type system
// (C2). Go has no sum types, so each case is a struct implementing the
// Type interface and a type switch stands in for the original's
// dynamic_cast-based dispatch (see sql_types.cpp / sql_catalog.h).
package sqltype

import "fmt"

// Kind tags which concrete Type a value holds, so callers that only need
// to branch on the shape (not the full struct) can switch on a plain enum
// instead of a type switch.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindDecimal
	KindString
	KindDate
	KindDateTime
	KindUUID
	KindIPv4
	KindIPv6
	KindEnum
	KindJSON
	KindDynamic
	KindNullable
	KindLowCardinality
	KindArray
	KindMap
	KindTuple
	KindVariant
	KindNested
	KindGeo
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindDecimal:
		return "Decimal"
	case KindString:
		return "String"
	case KindDate:
		return "Date"
	case KindDateTime:
		return "DateTime"
	case KindUUID:
		return "UUID"
	case KindIPv4:
		return "IPv4"
	case KindIPv6:
		return "IPv6"
	case KindEnum:
		return "Enum"
	case KindJSON:
		return "JSON"
	case KindDynamic:
		return "Dynamic"
	case KindNullable:
		return "Nullable"
	case KindLowCardinality:
		return "LowCardinality"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindTuple:
		return "Tuple"
	case KindVariant:
		return "Variant"
	case KindNested:
		return "Nested"
	case KindGeo:
		return "Geo"
	}
	return "Unknown"
}

// Capability is a bitmask describing what a surrounding context may do
// with a type: whether it may appear as a map key, inside an array, as a
// sort/partition key, and so on. Generators consult it before nesting a
// candidate subtype, mirroring the original's per-type support flags.
type Capability uint32

const (
	CapOrderable Capability = 1 << iota
	CapMapKey
	CapArrayElem
	CapNullable
	CapLowCardinality
	CapComparable
)

// Type is the tagged-variant interface every concrete SQL type implements.
type Type interface {
	Kind() Kind
	// String renders the type the way it appears in a CREATE TABLE column
	// definition (e.g. "Nullable(Array(Int32))").
	String() string
	// Capabilities reports what this concrete type supports.
	Capabilities() Capability
}

// --- scalar types ---

type BoolType struct{}

func (BoolType) Kind() Kind                 { return KindBool }
func (BoolType) String() string             { return "Bool" }
func (BoolType) Capabilities() Capability   { return CapOrderable | CapMapKey | CapArrayElem | CapNullable | CapLowCardinality | CapComparable }

// IntWidth enumerates the supported signed/unsigned integer widths.
type IntWidth int

const (
	Int8 IntWidth = iota
	Int16
	Int32
	Int64
	Int128
	Int256
	UInt8
	UInt16
	UInt32
	UInt64
	UInt128
	UInt256
)

func (w IntWidth) String() string {
	names := [...]string{"Int8", "Int16", "Int32", "Int64", "Int128", "Int256",
		"UInt8", "UInt16", "UInt32", "UInt64", "UInt128", "UInt256"}
	if int(w) < len(names) {
		return names[w]
	}
	return "Int32"
}

type IntType struct{ Width IntWidth }

func (t IntType) Kind() Kind               { return KindInt }
func (t IntType) String() string           { return t.Width.String() }
func (t IntType) Capabilities() Capability { return CapOrderable | CapMapKey | CapArrayElem | CapNullable | CapLowCardinality | CapComparable }

type FloatWidth int

const (
	Float32 FloatWidth = iota
	Float64W
)

type FloatType struct{ Width FloatWidth }

func (t FloatType) Kind() Kind { return KindFloat }
func (t FloatType) String() string {
	if t.Width == Float32 {
		return "Float32"
	}
	return "Float64"
}
func (t FloatType) Capabilities() Capability { return CapOrderable | CapArrayElem | CapNullable | CapComparable }

// DecimalType carries precision and scale, e.g. Decimal(18, 4).
type DecimalType struct {
	Precision int
	Scale     int
}

func (t DecimalType) Kind() Kind { return KindDecimal }
func (t DecimalType) String() string {
	return fmt.Sprintf("Decimal(%d, %d)", t.Precision, t.Scale)
}
func (t DecimalType) Capabilities() Capability {
	return CapOrderable | CapMapKey | CapArrayElem | CapNullable | CapLowCardinality | CapComparable
}

// StringType is unbounded String, or FixedString(N) when N > 0.
type StringType struct {
	FixedLen int
}

func (t StringType) Kind() Kind { return KindString }
func (t StringType) String() string {
	if t.FixedLen > 0 {
		return fmt.Sprintf("FixedString(%d)", t.FixedLen)
	}
	return "String"
}
func (t StringType) Capabilities() Capability {
	return CapOrderable | CapMapKey | CapArrayElem | CapNullable | CapLowCardinality | CapComparable
}

type DateType struct{ Is32Bit bool }

func (t DateType) Kind() Kind { return KindDate }
func (t DateType) String() string {
	if t.Is32Bit {
		return "Date32"
	}
	return "Date"
}
func (t DateType) Capabilities() Capability {
	return CapOrderable | CapMapKey | CapArrayElem | CapNullable | CapLowCardinality | CapComparable
}

// DateTimeType optionally carries sub-second precision (DateTime64) and a
// timezone name.
type DateTimeType struct {
	Precision int // -1 means plain DateTime, >=0 means DateTime64(Precision)
	Timezone  string
}

func (t DateTimeType) Kind() Kind { return KindDateTime }
func (t DateTimeType) String() string {
	if t.Precision < 0 {
		if t.Timezone != "" {
			return fmt.Sprintf("DateTime('%s')", t.Timezone)
		}
		return "DateTime"
	}
	if t.Timezone != "" {
		return fmt.Sprintf("DateTime64(%d, '%s')", t.Precision, t.Timezone)
	}
	return fmt.Sprintf("DateTime64(%d)", t.Precision)
}
func (t DateTimeType) Capabilities() Capability {
	return CapOrderable | CapMapKey | CapArrayElem | CapNullable | CapLowCardinality | CapComparable
}

type UUIDType struct{}

func (UUIDType) Kind() Kind             { return KindUUID }
func (UUIDType) String() string         { return "UUID" }
func (UUIDType) Capabilities() Capability {
	return CapOrderable | CapMapKey | CapArrayElem | CapNullable | CapLowCardinality | CapComparable
}

type IPv4Type struct{}

func (IPv4Type) Kind() Kind             { return KindIPv4 }
func (IPv4Type) String() string         { return "IPv4" }
func (IPv4Type) Capabilities() Capability {
	return CapOrderable | CapMapKey | CapArrayElem | CapNullable | CapLowCardinality | CapComparable
}

type IPv6Type struct{}

func (IPv6Type) Kind() Kind             { return KindIPv6 }
func (IPv6Type) String() string         { return "IPv6" }
func (IPv6Type) Capabilities() Capability {
	return CapOrderable | CapMapKey | CapArrayElem | CapNullable | CapLowCardinality | CapComparable
}

// EnumType carries the declared label set; Enum8 is picked over Enum16 when
// all labels fit in one byte's worth of values.
type EnumType struct {
	Labels  []string
	Is16Bit bool
}

func (t EnumType) Kind() Kind { return KindEnum }
func (t EnumType) String() string {
	name := "Enum8"
	if t.Is16Bit {
		name = "Enum16"
	}
	s := name + "("
	for i, l := range t.Labels {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("'%s' = %d", l, i+1)
	}
	return s + ")"
}
func (t EnumType) Capabilities() Capability {
	return CapOrderable | CapMapKey | CapArrayElem | CapNullable | CapLowCardinality | CapComparable
}

// JSONType carries the descriptor BuzzHouse allows on a JSON column:
// caps on how many distinct dynamic paths/types the server tracks before
// falling back to a shared string column. Typed subpath declarations and
// SKIP path declarations are not modelled (DESIGN.md's Open Question #2
// covers the SKIP case). Zero means
// unset — the column is rendered as bare "JSON" with no descriptor.
type JSONType struct {
	MaxDynamicPaths int
	MaxDynamicTypes int
}

func (JSONType) Kind() Kind { return KindJSON }
func (t JSONType) String() string {
	switch {
	case t.MaxDynamicPaths > 0 && t.MaxDynamicTypes > 0:
		return fmt.Sprintf("JSON(max_dynamic_paths=%d, max_dynamic_types=%d)", t.MaxDynamicPaths, t.MaxDynamicTypes)
	case t.MaxDynamicPaths > 0:
		return fmt.Sprintf("JSON(max_dynamic_paths=%d)", t.MaxDynamicPaths)
	case t.MaxDynamicTypes > 0:
		return fmt.Sprintf("JSON(max_dynamic_types=%d)", t.MaxDynamicTypes)
	default:
		return "JSON"
	}
}
func (JSONType) Capabilities() Capability { return CapArrayElem | CapNullable }

// DynamicType optionally bounds how many distinct concrete types the
// column tracks before spilling to String (max_types). Zero means unset.
type DynamicType struct {
	MaxTypes int
}

func (DynamicType) Kind() Kind { return KindDynamic }
func (t DynamicType) String() string {
	if t.MaxTypes <= 0 {
		return "Dynamic"
	}
	return fmt.Sprintf("Dynamic(max_types=%d)", t.MaxTypes)
}
func (DynamicType) Capabilities() Capability { return CapArrayElem | CapNullable }

// GeoKind enumerates the geo subtypes.
type GeoKind int

const (
	GeoPoint GeoKind = iota
	GeoRing
	GeoPolygon
	GeoMultiPolygon
)

type GeoType struct{ Sub GeoKind }

func (t GeoType) Kind() Kind { return KindGeo }
func (t GeoType) String() string {
	names := [...]string{"Point", "Ring", "Polygon", "MultiPolygon"}
	return names[t.Sub]
}
func (t GeoType) Capabilities() Capability { return CapArrayElem }

// --- composite types ---

type NullableType struct{ Inner Type }

func (t NullableType) Kind() Kind               { return KindNullable }
func (t NullableType) String() string           { return fmt.Sprintf("Nullable(%s)", t.Inner.String()) }
func (t NullableType) Capabilities() Capability { return CapArrayElem | CapComparable }

type LowCardinalityType struct{ Inner Type }

func (t LowCardinalityType) Kind() Kind { return KindLowCardinality }
func (t LowCardinalityType) String() string {
	return fmt.Sprintf("LowCardinality(%s)", t.Inner.String())
}
func (t LowCardinalityType) Capabilities() Capability { return CapArrayElem | CapOrderable | CapComparable }

type ArrayType struct{ Elem Type }

func (t ArrayType) Kind() Kind               { return KindArray }
func (t ArrayType) String() string           { return fmt.Sprintf("Array(%s)", t.Elem.String()) }
func (t ArrayType) Capabilities() Capability { return CapArrayElem }

type MapType struct {
	Key   Type
	Value Type
}

func (t MapType) Kind() Kind { return KindMap }
func (t MapType) String() string {
	return fmt.Sprintf("Map(%s, %s)", t.Key.String(), t.Value.String())
}
func (t MapType) Capabilities() Capability { return CapArrayElem }

// TupleType may carry named elements (NamedFields[i] non-empty) or be
// purely positional.
type TupleType struct {
	Elems       []Type
	NamedFields []string
}

func (t TupleType) Kind() Kind { return KindTuple }
func (t TupleType) String() string {
	s := "Tuple("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		if i < len(t.NamedFields) && t.NamedFields[i] != "" {
			s += t.NamedFields[i] + " "
		}
		s += e.String()
	}
	return s + ")"
}
func (t TupleType) Capabilities() Capability { return CapArrayElem }

type VariantType struct{ Alternatives []Type }

func (t VariantType) Kind() Kind { return KindVariant }
func (t VariantType) String() string {
	s := "Variant("
	for i, a := range t.Alternatives {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}
func (t VariantType) Capabilities() Capability { return CapArrayElem }

// NestedType expands to one array column per subtype at insert time;
// RealWidth accounts for that when a table's real column count is needed
// (mirrors SQLTable::RealNumberOfColumns in sql_catalog.h).
type NestedType struct {
	Names    []string
	Subtypes []Type
}

func (t NestedType) Kind() Kind { return KindNested }
func (t NestedType) String() string {
	s := "Nested("
	for i, n := range t.Names {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s %s", n, t.Subtypes[i].String())
	}
	return s + ")"
}
func (t NestedType) Capabilities() Capability { return 0 }

// RealWidth returns how many physical array columns this Nested type
// expands into.
func (t NestedType) RealWidth() int { return len(t.Subtypes) }

// Unwrap strips Nullable/LowCardinality wrappers and returns the innermost
// type, mirroring the original's repeated dynamic_cast unwrapping when a
// generator needs the base scalar kind regardless of modifiers.
func Unwrap(t Type) Type {
	for {
		switch v := t.(type) {
		case NullableType:
			t = v.Inner
		case LowCardinalityType:
			t = v.Inner
		default:
			return t
		}
	}
}

// IsComposite reports whether t is Array/Map/Tuple/Variant/Nested, i.e.
// whether recursive generation should consult depth/width budgets before
// descending further.
func IsComposite(t Type) bool {
	switch Unwrap(t).(type) {
	case ArrayType, MapType, TupleType, VariantType, NestedType:
		return true
	}
	return false
}
