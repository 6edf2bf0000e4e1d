package managers

import (
	"testing"

	"github.com/bawdo/streamsql/ast"
	"github.com/bawdo/streamsql/internal/testutil"
)

// --- Literal ---

func TestLiteralMapsGoValues(t *testing.T) {
	t.Parallel()
	cases := []struct {
		val  any
		want string
	}{
		{"hello", "'hello'"},
		{"it's", "'it''s'"},
		{42, "42"},
		{int64(42), "42"},
		{int32(7), "7"},
		{uint(9), "9"},
		{uint32(9), "9"},
		{uint64(9), "9"},
		{2.5, "2.5"},
		{float32(0.5), "0.5"},
		{true, "true"},
		{false, "false"},
		{nil, "NULL"},
	}
	for _, tc := range cases {
		assertSQL(t, Literal(tc.val), tc.want)
	}
}

func TestLiteralNegativeIntegersBecomeUnaryMinus(t *testing.T) {
	t.Parallel()
	assertSQL(t, Literal(-5), "- 5")
	assertSQL(t, Literal(int64(-42)), "- 42")
}

func TestLiteralPassesExpressionsThrough(t *testing.T) {
	t.Parallel()
	e := ast.NewIdentifier("x")
	if Literal(e) != ast.Expr(e) {
		t.Error("expected the expression to pass through unchanged")
	}
}

func TestLiteralWrapsValues(t *testing.T) {
	t.Parallel()
	got := Literal(ast.Date("2024-01-01"))
	if !got.Equal(ast.NewLiteral(ast.Date("2024-01-01"))) {
		t.Error("expected the value to be wrapped in a literal expression")
	}
}

func TestLiteralRejectsUnsupportedTypes(t *testing.T) {
	t.Parallel()
	testutil.AssertPanics(t, "unsupported literal type", func() {
		Literal(struct{}{})
	})
}

// --- conjoin ---

func TestConjoinEmptyIsNil(t *testing.T) {
	t.Parallel()
	if conjoin(nil) != nil {
		t.Error("expected no conditions to fold to nil")
	}
}

func TestConjoinSingleIsUnchanged(t *testing.T) {
	t.Parallel()
	cond := ast.NewIsNull(ast.NewIdentifier("x"), false)
	if conjoin([]ast.Expr{cond}) != ast.Expr(cond) {
		t.Error("expected a single condition to pass through")
	}
}

func TestConjoinFoldsLeft(t *testing.T) {
	t.Parallel()
	a := ast.NewIdentifier("a")
	b := ast.NewIdentifier("b")
	c := ast.NewIdentifier("c")
	assertSQL(t, conjoin([]ast.Expr{a, b, c}), "a AND b AND c")
}
