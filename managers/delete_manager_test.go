package managers

import (
	"testing"

	"github.com/bawdo/streamsql/ast"
)

func TestDeleteWithoutWhere(t *testing.T) {
	t.Parallel()
	m := NewDeleteManager(ast.NewObjectName("users"))
	assertSQL(t, m.Statement(), "DELETE FROM users")
}

func TestDeleteWhereCombinesWithAnd(t *testing.T) {
	t.Parallel()
	m := NewDeleteManager(ast.NewObjectName("users")).
		Where(ast.NewBinaryExpr(ident("id"), ast.OpEq, long(7))).
		Where(ast.NewBinaryExpr(ident("active"), ast.OpEq, ast.NewLiteral(ast.Boolean(false))))

	assertSQL(t, m.Statement(), "DELETE FROM users WHERE id = 7 AND active = false")
}

func TestDeleteStatementMatchesDirectConstruction(t *testing.T) {
	t.Parallel()
	m := NewDeleteManager(ast.NewObjectName("users")).
		Where(ast.NewIsNull(ident("email"), true))

	want := ast.NewDelete(ast.NewObjectName("users"), ast.NewIsNull(ident("email"), true))
	if !m.Statement().Equal(want) {
		t.Error("expected the managed statement to equal direct construction")
	}
}
