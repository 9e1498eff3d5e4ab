package valuegen

import (
	"strings"
	"testing"

	"fuzzql/internal/randgen"
	"fuzzql/internal/sqltype"
)

func TestLiteralBoolRendersSQLKeyword(t *testing.T) {
	g := New(randgen.New(1))
	for i := 0; i < 20; i++ {
		lit := g.Literal(sqltype.BoolType{}, false)
		if lit != "true" && lit != "false" {
			t.Fatalf("unexpected bool literal %q", lit)
		}
	}
}

func TestLiteralNullableWithoutNullOkNeverEmitsNull(t *testing.T) {
	g := New(randgen.New(2))
	typ := sqltype.NullableType{Inner: sqltype.IntType{Width: sqltype.Int32}}
	for i := 0; i < 200; i++ {
		if g.Literal(typ, false) == "NULL" {
			t.Fatal("nullOk=false produced NULL")
		}
	}
}

func TestLiteralNullableWithNullOkCanEmitNull(t *testing.T) {
	g := New(randgen.New(3))
	typ := sqltype.NullableType{Inner: sqltype.IntType{Width: sqltype.Int32}}
	sawNull := false
	for i := 0; i < 500; i++ {
		if g.Literal(typ, true) == "NULL" {
			sawNull = true
			break
		}
	}
	if !sawNull {
		t.Fatal("nullOk=true never produced NULL across 500 samples")
	}
}

func TestStringLiteralFixedLenPadsToExactByteLength(t *testing.T) {
	g := New(randgen.New(4))
	typ := sqltype.StringType{FixedLen: 8}
	for i := 0; i < 50; i++ {
		lit := g.Literal(typ, false)
		if !strings.HasPrefix(lit, "'") || !strings.HasSuffix(lit, "'") {
			t.Fatalf("literal not quoted: %q", lit)
		}
		unquoted := strings.TrimSuffix(strings.TrimPrefix(lit, "'"), "'")
		// quoteString escapes \0, \n, ' and \ as two-byte sequences, so
		// count each backslash escape as the single byte it stands for.
		n := 0
		for j := 0; j < len(unquoted); j++ {
			if unquoted[j] == '\\' {
				j++
			}
			n++
		}
		if n != 8 {
			t.Fatalf("literal %q holds %d bytes, want 8", lit, n)
		}
	}
}

func TestDecimalLiteralRespectsScale(t *testing.T) {
	g := New(randgen.New(5))
	typ := sqltype.DecimalType{Precision: 10, Scale: 3}
	lit := g.Literal(typ, false)
	parts := strings.Split(lit, ".")
	if len(parts) != 2 || len(parts[1]) != 3 {
		t.Fatalf("decimal literal %q does not have scale 3", lit)
	}
}

func TestArrayLiteralBracketsAndElementType(t *testing.T) {
	g := New(randgen.New(6))
	typ := sqltype.ArrayType{Elem: sqltype.BoolType{}}
	lit := g.Literal(typ, false)
	if !strings.HasPrefix(lit, "[") || !strings.HasSuffix(lit, "]") {
		t.Fatalf("array literal not bracketed: %q", lit)
	}
}

func TestFloatLiteralCanProduceSpecialValues(t *testing.T) {
	g := New(randgen.New(7))
	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		lit := g.Literal(sqltype.FloatType{Width: sqltype.Float64W}, false)
		for _, s := range floatSpecials {
			if lit == s {
				seen[s] = true
			}
		}
	}
	if len(seen) == 0 {
		t.Fatal("floatLiteral never produced a special value across 2000 samples")
	}
}

func TestJSONLiteralRespectsMaxDynamicPaths(t *testing.T) {
	g := New(randgen.New(8))
	typ := sqltype.JSONType{MaxDynamicPaths: 1}
	for i := 0; i < 50; i++ {
		lit := g.Literal(typ, false)
		if strings.Count(lit, ":") != 1 {
			t.Fatalf("JSON literal %q has more than 1 key with MaxDynamicPaths=1", lit)
		}
	}
}

func TestDynamicLiteralRespectsMaxTypes(t *testing.T) {
	g := New(randgen.New(9))
	typ := sqltype.DynamicType{MaxTypes: 1}
	for i := 0; i < 50; i++ {
		lit := g.Literal(typ, false)
		// With MaxTypes=1 the pool is truncated to IntType alone.
		if !isLikelyIntLiteral(lit) {
			t.Fatalf("Dynamic literal %q not an int literal with MaxTypes=1", lit)
		}
	}
}

func isLikelyIntLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func TestQuoteStringEscapesSpecialCharacters(t *testing.T) {
	got := quoteString("a'b\\c\nd")
	want := "'a\\'b\\\\c\\nd'"
	if got != want {
		t.Fatalf("quoteString = %q, want %q", got, want)
	}
}
