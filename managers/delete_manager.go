package managers

import "github.com/bawdo/streamsql/ast"

// DeleteManager provides a fluent API for building DELETE statements.
type DeleteManager struct {
	name   ast.ObjectName
	wheres []ast.Expr
}

// NewDeleteManager creates a new DeleteManager targeting the given table.
func NewDeleteManager(from ast.ObjectName) *DeleteManager {
	return &DeleteManager{name: from}
}

// Where appends one or more conditions to the WHERE clause.
// Multiple conditions are combined with AND when the statement is built.
func (m *DeleteManager) Where(conditions ...ast.Expr) *DeleteManager {
	m.wheres = append(m.wheres, conditions...)
	return m
}

// Statement assembles the accumulated conditions into an *ast.Delete.
func (m *DeleteManager) Statement() *ast.Delete {
	return ast.NewDelete(m.name, conjoin(m.wheres))
}

// ToSQL assembles the statement and renders it with the given visitor.
func (m *DeleteManager) ToSQL(v ast.Visitor) string {
	return m.Statement().Accept(v)
}
