// Package typegen builds random SQLType values within depth/width budgets
// (C3), grounded on RandomIntType/RandomFloatType/RandomDateType/
// GenerateArraytype/BottomType from the BuzzHouse statement generator.
package typegen

import (
	"fmt"

	"fuzzql/internal/randgen"
	"fuzzql/internal/sqltype"
)

// Budget bounds how deep and how wide a recursive type may grow. A Tuple
// with 5 elements consumes 5 units of width at its level; descending into
// any subtype consumes one unit of depth.
type Budget struct {
	MaxDepth int
	MaxWidth int
}

// DefaultBudget matches the modest defaults used throughout spec.md's
// examples: enough nesting to exercise composite types without the
// generator producing unreadable 10-level types every run.
var DefaultBudget = Budget{MaxDepth: 3, MaxWidth: 4}

// Capability is a bitmask of which type classes RandomNextType/BottomType
// may emit at a given call site, mirroring spec.md §4.3's allow_* flags
// (allow_json, allow_nested, allow_geo, allow_array, ...). A caller that
// wants the widest surface passes AllCapabilities; a caller restricted to
// a narrower context (e.g. a Map key, which may not itself be a
// composite) passes a narrower mask.
type Capability uint32

const (
	AllowBool Capability = 1 << iota
	AllowInt
	AllowFloat
	AllowDecimal
	AllowString
	AllowDate
	AllowDateTime
	AllowUUID
	AllowIPv4
	AllowIPv6
	AllowEnum
	AllowJSON
	AllowDynamic
	AllowGeo
	AllowNullable
	AllowLowCardinality
	AllowArray
	AllowMap
	AllowTuple
	AllowVariant
	AllowNested
)

// AllCapabilities permits every type class; the statement generator's
// ordinary column/value generation sites use this.
const AllCapabilities = AllowBool | AllowInt | AllowFloat | AllowDecimal | AllowString |
	AllowDate | AllowDateTime | AllowUUID | AllowIPv4 | AllowIPv6 | AllowEnum | AllowJSON |
	AllowDynamic | AllowGeo | AllowNullable | AllowLowCardinality | AllowArray | AllowMap |
	AllowTuple | AllowVariant | AllowNested

// ScalarCapabilities is AllCapabilities minus every composite/wrapper
// class, the mask a Map key or a Variant alternative must be generated
// under (I3: those positions can never hold a composite type).
const ScalarCapabilities = AllCapabilities &^ (AllowNullable | AllowLowCardinality | AllowArray | AllowMap | AllowTuple | AllowVariant | AllowNested)

// Generator produces random types against a fixed Budget and Capability
// mask.
type Generator struct {
	rng    *randgen.Source
	budget Budget
	caps   Capability
}

func New(rng *randgen.Source, budget Budget, caps Capability) *Generator {
	return &Generator{rng: rng, budget: budget, caps: caps}
}

// bottomWeights lists the scalar ("bottom") type constructors with their
// relative selection weight, mirroring BottomType's fixed preference for
// common scalar kinds over exotic ones (UUID/IP/Geo are rarer), gated by
// the generator's Capability mask so a disallowed class is never offered.
func (g *Generator) bottomWeights() []randgen.WeightedItem[func() sqltype.Type] {
	var items []randgen.WeightedItem[func() sqltype.Type]
	add := func(mask Capability, weight int, ctor func() sqltype.Type) {
		if g.caps&mask != 0 {
			items = append(items, randgen.WeightedItem[func() sqltype.Type]{Value: ctor, Weight: weight})
		}
	}
	add(AllowBool, 5, func() sqltype.Type { return sqltype.BoolType{} })
	add(AllowInt, 20, g.randomIntType)
	add(AllowFloat, 10, g.randomFloatType)
	add(AllowDecimal, 8, g.randomDecimalType)
	add(AllowString, 15, g.randomStringType)
	add(AllowDate, 8, g.randomDateType)
	add(AllowDateTime, 8, g.randomDateTimeType)
	add(AllowUUID, 4, func() sqltype.Type { return sqltype.UUIDType{} })
	add(AllowIPv4, 2, func() sqltype.Type { return sqltype.IPv4Type{} })
	add(AllowIPv6, 2, func() sqltype.Type { return sqltype.IPv6Type{} })
	add(AllowEnum, 6, g.randomEnumType)
	add(AllowJSON, 3, g.randomJSONType)
	add(AllowDynamic, 2, g.randomDynamicType)
	add(AllowGeo, 2, g.randomGeoType)
	if len(items) == 0 {
		// A pathologically narrow mask (or one that forgot int) must still
		// terminate recursion somewhere; Int32 is always available as the
		// last resort so BottomType never returns a zero value.
		items = append(items, randgen.WeightedItem[func() sqltype.Type]{
			Value: func() sqltype.Type { return sqltype.IntType{Width: sqltype.Int32} }, Weight: 1,
		})
	}
	return items
}

// BottomType picks a scalar (non-recursive) type, the leaf case every
// composite type eventually bottoms out to once depth is exhausted.
func (g *Generator) BottomType() sqltype.Type {
	ctor := randgen.WeightedPick(g.rng, g.bottomWeights())
	return ctor()
}

func (g *Generator) randomIntType() sqltype.Type {
	widths := []sqltype.IntWidth{
		sqltype.Int8, sqltype.Int16, sqltype.Int32, sqltype.Int64, sqltype.Int128, sqltype.Int256,
		sqltype.UInt8, sqltype.UInt16, sqltype.UInt32, sqltype.UInt64, sqltype.UInt128, sqltype.UInt256,
	}
	return sqltype.IntType{Width: randgen.Pick(g.rng, widths)}
}

func (g *Generator) randomFloatType() sqltype.Type {
	if g.rng.Bool(0.5) {
		return sqltype.FloatType{Width: sqltype.Float32}
	}
	return sqltype.FloatType{Width: sqltype.Float64W}
}

func (g *Generator) randomDecimalType() sqltype.Type {
	precision := g.rng.IntRange(1, 76)
	scale := g.rng.IntRange(0, precision)
	return sqltype.DecimalType{Precision: precision, Scale: scale}
}

func (g *Generator) randomStringType() sqltype.Type {
	if g.rng.Bool(0.3) {
		return sqltype.StringType{FixedLen: g.rng.IntRange(1, 64)}
	}
	return sqltype.StringType{}
}

func (g *Generator) randomDateType() sqltype.Type {
	return sqltype.DateType{Is32Bit: g.rng.Bool(0.4)}
}

var timezones = []string{"", "UTC", "Europe/Warsaw", "America/New_York", "Asia/Tokyo"}

func (g *Generator) randomDateTimeType() sqltype.Type {
	precision := -1
	if g.rng.Bool(0.5) {
		precision = g.rng.IntRange(0, 9)
	}
	return sqltype.DateTimeType{Precision: precision, Timezone: randgen.Pick(g.rng, timezones)}
}

func (g *Generator) randomEnumType() sqltype.Type {
	n := g.rng.IntRange(2, 6)
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("v%d", i+1)
	}
	return sqltype.EnumType{Labels: labels, Is16Bit: n > 200}
}

func (g *Generator) randomGeoType() sqltype.Type {
	kinds := []sqltype.GeoKind{sqltype.GeoPoint, sqltype.GeoRing, sqltype.GeoPolygon, sqltype.GeoMultiPolygon}
	return sqltype.GeoType{Sub: randgen.Pick(g.rng, kinds)}
}

func (g *Generator) randomJSONType() sqltype.Type {
	var t sqltype.JSONType
	if g.rng.Bool(0.5) {
		t.MaxDynamicPaths = g.rng.IntRange(1, 1024)
	}
	if g.rng.Bool(0.5) {
		t.MaxDynamicTypes = g.rng.IntRange(1, 32)
	}
	return t
}

func (g *Generator) randomDynamicType() sqltype.Type {
	if g.rng.Bool(0.5) {
		return sqltype.DynamicType{MaxTypes: g.rng.IntRange(1, 32)}
	}
	return sqltype.DynamicType{}
}

// RandomNextType is the top-level entry point: it picks between a scalar
// type and a composite wrapper/container, spending depth as it recurses.
// Once depth reaches the budget (or no composite class is in the
// Capability mask) it falls back to BottomType, guaranteeing termination.
func (g *Generator) RandomNextType(depth int) sqltype.Type {
	if depth >= g.budget.MaxDepth {
		return g.wrapNullableMaybe(g.BottomType())
	}

	choices := []randgen.WeightedItem[int]{
		{Value: 0, Weight: 40}, // scalar
	}
	if g.caps&AllowArray != 0 {
		choices = append(choices, randgen.WeightedItem[int]{Value: 1, Weight: 15})
	}
	if g.caps&AllowMap != 0 {
		choices = append(choices, randgen.WeightedItem[int]{Value: 2, Weight: 10})
	}
	if g.caps&AllowTuple != 0 {
		choices = append(choices, randgen.WeightedItem[int]{Value: 3, Weight: 10})
	}
	if g.caps&AllowVariant != 0 {
		choices = append(choices, randgen.WeightedItem[int]{Value: 4, Weight: 5})
	}
	if g.caps&AllowLowCardinality != 0 {
		choices = append(choices, randgen.WeightedItem[int]{Value: 5, Weight: 5})
	}
	switch randgen.WeightedPick(g.rng, choices) {
	case 1:
		return g.wrapNullableMaybe(sqltype.ArrayType{Elem: g.RandomNextType(depth + 1)})
	case 2:
		return g.wrapNullableMaybe(g.generateMapType(depth))
	case 3:
		return g.wrapNullableMaybe(g.generateTupleType(depth))
	case 4:
		return g.wrapNullableMaybe(g.generateVariantType(depth))
	case 5:
		inner := g.BottomType()
		if inner.Capabilities()&sqltype.CapLowCardinality != 0 {
			return g.wrapNullableMaybe(sqltype.LowCardinalityType{Inner: inner})
		}
		return g.wrapNullableMaybe(inner)
	default:
		return g.wrapNullableMaybe(g.BottomType())
	}
}

func (g *Generator) wrapNullableMaybe(t sqltype.Type) sqltype.Type {
	if g.caps&AllowNullable != 0 && t.Capabilities()&sqltype.CapNullable != 0 && g.rng.Bool(0.25) {
		return sqltype.NullableType{Inner: t}
	}
	return t
}

// GenerateArrayType builds Array(Elem), recursing one depth level deeper
// for the element type, matching GenerateArraytype's recursive shape.
func (g *Generator) GenerateArrayType(depth int) sqltype.ArrayType {
	return sqltype.ArrayType{Elem: g.RandomNextType(depth + 1)}
}

func (g *Generator) generateMapType(depth int) sqltype.MapType {
	key := g.BottomType()
	// Bounded retry: under a narrow mask (e.g. Geo-only) no bottom type may
	// ever satisfy CapMapKey, so fall back to a plain Int32 key rather than
	// spin forever.
	for i := 0; i < 8 && key.Capabilities()&sqltype.CapMapKey == 0; i++ {
		key = g.BottomType()
	}
	if key.Capabilities()&sqltype.CapMapKey == 0 {
		key = sqltype.IntType{Width: sqltype.Int32}
	}
	return sqltype.MapType{Key: key, Value: g.RandomNextType(depth + 1)}
}

func (g *Generator) generateTupleType(depth int) sqltype.TupleType {
	width := g.rng.IntRange(1, g.budget.MaxWidth)
	elems := make([]sqltype.Type, width)
	names := make([]string, width)
	named := g.rng.Bool(0.5)
	for i := range elems {
		elems[i] = g.RandomNextType(depth + 1)
		if named {
			names[i] = fmt.Sprintf("c%d", i+1)
		}
	}
	return sqltype.TupleType{Elems: elems, NamedFields: names}
}

func (g *Generator) generateVariantType(depth int) sqltype.VariantType {
	width := g.rng.IntRange(2, g.budget.MaxWidth)
	scalar := New(g.rng, g.budget, g.caps&ScalarCapabilities&^AllowDynamic)
	alts := make([]sqltype.Type, width)
	for i := range alts {
		alts[i] = scalar.BottomType()
	}
	return sqltype.VariantType{Alternatives: alts}
}

// GenerateNestedType builds a Nested(...) type with 1..MaxWidth subtypes,
// each a scalar bottom type (ClickHouse disallows Nested-of-Nested without
// explicit flattening, which this generator does not model).
func (g *Generator) GenerateNestedType() sqltype.NestedType {
	width := g.rng.IntRange(1, g.budget.MaxWidth)
	names := make([]string, width)
	subtypes := make([]sqltype.Type, width)
	for i := range subtypes {
		names[i] = fmt.Sprintf("n%d", i+1)
		subtypes[i] = g.BottomType()
	}
	return sqltype.NestedType{Names: names, Subtypes: subtypes}
}
