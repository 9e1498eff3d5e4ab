// Package valuegen renders random literal values for a given sqltype.Type
// (C4). Boundary strings are grounded on the BuzzHouse literal pool
// (statement_generator.h's enum_values): empty string, short
// numeric-looking strings, common English words, a bare comma, multi-
// codepoint emoji, CJK text, and a newline. The pool holds no
// whitespace-only string other than the newline, and no hex/binary string
// literals.
package valuegen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fuzzql/internal/randgen"
	"fuzzql/internal/sqltype"
)

// boundaryStrings is the literal pool lifted from the original generator's
// enum_values vector, used for String/FixedString literal generation (and
// its first five numeric-looking entries for integer literals), so
// edge-case strings (empty,
// multi-byte, control characters) show up with realistic frequency instead
// of only ASCII words.
var boundaryStrings = []string{
	"-1", "0", "1", "10", "1000",
	"is", "was", "are", "be", "have", "had", "were", "can", "said", "use",
	",", "😀", "😀😀😀😀", "名字", "兄弟姐妹", "", "\n",
}

// Generator produces literal values for rendering into generated SQL text.
type Generator struct {
	rng *randgen.Source
}

func New(rng *randgen.Source) *Generator {
	return &Generator{rng: rng}
}

// Literal renders a SQL literal for t. nullOk controls whether a Nullable
// wrapper is allowed to produce the NULL literal (expression synthesis
// passes false; INSERT values and ALTER ... UPDATE values pass true).
func (g *Generator) Literal(t sqltype.Type, nullOk bool) string {
	switch v := t.(type) {
	case sqltype.NullableType:
		if nullOk && g.rng.Bool(0.15) {
			return "NULL"
		}
		return g.Literal(v.Inner, nullOk)
	case sqltype.LowCardinalityType:
		return g.Literal(v.Inner, nullOk)
	case sqltype.BoolType:
		if g.rng.Bool(0.5) {
			return "true"
		}
		return "false"
	case sqltype.IntType:
		return g.intLiteral(v)
	case sqltype.FloatType:
		return g.floatLiteral()
	case sqltype.DecimalType:
		return g.decimalLiteral(v)
	case sqltype.StringType:
		return g.stringLiteral(v)
	case sqltype.DateType:
		return fmt.Sprintf("toDate('%s')", g.randomDateText())
	case sqltype.DateTimeType:
		return fmt.Sprintf("toDateTime('%s')", g.randomDateTimeText())
	case sqltype.UUIDType:
		return fmt.Sprintf("toUUID('%s')", uuid.New().String())
	case sqltype.IPv4Type:
		return fmt.Sprintf("toIPv4('%d.%d.%d.%d')", g.rng.IntRange(0, 255), g.rng.IntRange(0, 255), g.rng.IntRange(0, 255), g.rng.IntRange(0, 255))
	case sqltype.IPv6Type:
		return fmt.Sprintf("toIPv6('%s')", g.randomIPv6Text())
	case sqltype.EnumType:
		label := randgen.Pick(g.rng, v.Labels)
		return quoteString(label)
	case sqltype.JSONType:
		return g.jsonLiteral(v)
	case sqltype.DynamicType:
		return g.Literal(g.bottomForDynamic(v), nullOk)
	case sqltype.ArrayType:
		return g.arrayLiteral(v, nullOk)
	case sqltype.MapType:
		return g.mapLiteral(v, nullOk)
	case sqltype.TupleType:
		return g.tupleLiteral(v, nullOk)
	case sqltype.VariantType:
		if len(v.Alternatives) == 0 {
			return "NULL"
		}
		return g.Literal(randgen.Pick(g.rng, v.Alternatives), nullOk)
	case sqltype.GeoType:
		return g.geoLiteral(v)
	default:
		return "NULL"
	}
}

// bottomForDynamic picks one concrete scalar representation for a Dynamic
// column's value, since Dynamic itself carries no fixed underlying type.
// When t.MaxTypes is set, the candidate pool is truncated to that many
// entries so values never exceed what the column's own descriptor allows.
func (g *Generator) bottomForDynamic(t sqltype.DynamicType) sqltype.Type {
	pool := []sqltype.Type{
		sqltype.IntType{Width: sqltype.Int32},
		sqltype.StringType{},
		sqltype.FloatType{Width: sqltype.Float64W},
		sqltype.BoolType{},
	}
	if t.MaxTypes > 0 && t.MaxTypes < len(pool) {
		pool = pool[:t.MaxTypes]
	}
	return randgen.Pick(g.rng, pool)
}

// jsonLiteral renders a JSON object literal whose key count is bounded by
// the column's max_dynamic_paths descriptor, when set.
func (g *Generator) jsonLiteral(t sqltype.JSONType) string {
	maxKeys := 3
	if t.MaxDynamicPaths > 0 && t.MaxDynamicPaths < maxKeys {
		maxKeys = t.MaxDynamicPaths
	}
	n := g.rng.IntRange(1, maxKeys)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("\"k%d\": %d", i, g.rng.IntRange(0, 1000))
	}
	return "'{" + strings.Join(parts, ", ") + "}'"
}

func (g *Generator) intLiteral(t sqltype.IntType) string {
	if g.rng.Bool(0.2) {
		return randgen.Pick(g.rng, boundaryStrings[:5])
	}
	v := int64(g.rng.Uint64())
	if v < 0 {
		v = -v
	}
	switch t.Width {
	case sqltype.UInt8, sqltype.Int8:
		v %= 256
	case sqltype.UInt16, sqltype.Int16:
		v %= 65536
	}
	return fmt.Sprintf("%d", v)
}

// floatSpecials covers the boundary doubles BuzzHouse's float generator is
// required to surface with nontrivial probability: both NaN payloads, both
// infinities, and signed zero.
var floatSpecials = []string{"nan", "-nan", "inf", "-inf", "0.0", "-0.0"}

func (g *Generator) floatLiteral() string {
	if g.rng.Bool(0.08) {
		return randgen.Pick(g.rng, floatSpecials)
	}
	return fmt.Sprintf("%g", g.rng.Float64()*1e6-5e5)
}

func (g *Generator) decimalLiteral(t sqltype.DecimalType) string {
	scale := int32(t.Scale)
	whole := g.rng.IntRange(0, 1_000_000)
	d := decimal.New(int64(whole), -scale)
	return d.StringFixed(scale)
}

func (g *Generator) stringLiteral(t sqltype.StringType) string {
	var s string
	if g.rng.Bool(0.4) {
		s = randgen.Pick(g.rng, boundaryStrings)
	} else {
		s = fmt.Sprintf("str_%d", g.rng.IntRange(0, 100000))
	}
	if t.FixedLen > 0 {
		if len(s) > t.FixedLen {
			s = s[:t.FixedLen]
			for !utf8.ValidString(s) {
				s = s[:len(s)-1]
			}
		}
		s = s + strings.Repeat("\x00", t.FixedLen-len(s))
	}
	return quoteString(s)
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString("\\'")
		case '\\':
			b.WriteString("\\\\")
		case '\n':
			b.WriteString("\\n")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func (g *Generator) randomDateText() string {
	year := g.rng.IntRange(1970, 2149)
	month := g.rng.IntRange(1, 12)
	day := g.rng.IntRange(1, 28)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func (g *Generator) randomDateTimeText() string {
	return fmt.Sprintf("%s %02d:%02d:%02d", g.randomDateText(), g.rng.IntRange(0, 23), g.rng.IntRange(0, 59), g.rng.IntRange(0, 59))
}

func (g *Generator) randomIPv6Text() string {
	parts := make([]string, 8)
	for i := range parts {
		parts[i] = fmt.Sprintf("%x", g.rng.IntRange(0, 0xffff))
	}
	return strings.Join(parts, ":")
}

func (g *Generator) arrayLiteral(t sqltype.ArrayType, nullOk bool) string {
	n := g.rng.IntRange(0, 4)
	elems := make([]string, n)
	for i := range elems {
		elems[i] = g.Literal(t.Elem, nullOk)
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

func (g *Generator) mapLiteral(t sqltype.MapType, nullOk bool) string {
	n := g.rng.IntRange(0, 3)
	entries := make([]string, n)
	for i := range entries {
		entries[i] = fmt.Sprintf("%s, %s", g.Literal(t.Key, false), g.Literal(t.Value, nullOk))
	}
	return "map(" + strings.Join(entries, ", ") + ")"
}

func (g *Generator) tupleLiteral(t sqltype.TupleType, nullOk bool) string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = g.Literal(e, nullOk)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (g *Generator) geoLiteral(t sqltype.GeoType) string {
	point := func() string {
		return fmt.Sprintf("(%g, %g)", g.rng.Float64()*180-90, g.rng.Float64()*360-180)
	}
	switch t.Sub {
	case sqltype.GeoPoint:
		return point()
	case sqltype.GeoRing:
		n := g.rng.IntRange(3, 5)
		pts := make([]string, n)
		for i := range pts {
			pts[i] = point()
		}
		return "[" + strings.Join(pts, ", ") + "]"
	default:
		return "[]"
	}
}
