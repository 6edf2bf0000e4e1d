package managers

import (
	"testing"

	"github.com/bawdo/streamsql/ast"
)

// --- Set / Where ---

func TestSetAppendsAssignments(t *testing.T) {
	t.Parallel()
	m := NewUpdateManager(ast.NewObjectName("users")).
		Set("name", "x").
		Set("age", 30)

	if len(m.assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(m.assignments))
	}
	// Each assignment renders with its own SET keyword, joined directly
	// onto the table name.
	assertSQL(t, m.Statement(), "UPDATE usersSET name = 'x', SET age = 30")
}

func TestUpdateWhereCombinesWithAnd(t *testing.T) {
	t.Parallel()
	m := NewUpdateManager(ast.NewObjectName("users")).
		Set("active", false).
		Where(ast.NewBinaryExpr(ident("id"), ast.OpEq, long(7))).
		Where(ast.NewIsNull(ident("deleted_at"), false))

	assertSQL(t, m.Statement(), "UPDATE usersSET active = false WHERE id = 7 AND deleted_at IS NULL")
}

func TestSetAcceptsExpressions(t *testing.T) {
	t.Parallel()
	m := NewUpdateManager(ast.NewObjectName("t")).
		Set("n", ast.NewBinaryExpr(ident("n"), ast.OpPlus, long(1)))

	assertSQL(t, m.Statement(), "UPDATE tSET n = n + 1")
}

// --- Assembly semantics ---

func TestUpdateStatementMatchesDirectConstruction(t *testing.T) {
	t.Parallel()
	m := NewUpdateManager(ast.NewObjectName("users")).
		Set("name", "x").
		Where(ast.NewBinaryExpr(ident("id"), ast.OpEq, long(7)))

	want := ast.NewUpdate(
		ast.NewObjectName("users"),
		[]*ast.Assignment{ast.NewAssignment("name", ast.NewLiteral(ast.SingleQuotedString("x")))},
		ast.NewBinaryExpr(ident("id"), ast.OpEq, long(7)),
	)
	if !m.Statement().Equal(want) {
		t.Error("expected the managed statement to equal direct construction")
	}
}

func TestUpdateStatementDoesNotAliasAssignments(t *testing.T) {
	t.Parallel()
	m := NewUpdateManager(ast.NewObjectName("t")).Set("a", 1)
	first := m.Statement()

	m.Set("b", 2)
	if len(first.Assignments) != 1 {
		t.Error("expected the first build to keep its single assignment")
	}
}
