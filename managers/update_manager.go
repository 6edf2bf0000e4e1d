package managers

import "github.com/bawdo/streamsql/ast"

// UpdateManager provides a fluent API for building UPDATE statements.
type UpdateManager struct {
	name        ast.ObjectName
	assignments []*ast.Assignment
	wheres      []ast.Expr
}

// NewUpdateManager creates a new UpdateManager targeting the given table.
func NewUpdateManager(table ast.ObjectName) *UpdateManager {
	return &UpdateManager{name: table}
}

// Set adds a column assignment to the SET clause. Raw Go values are
// wrapped with Literal automatically.
func (m *UpdateManager) Set(col ast.Ident, val any) *UpdateManager {
	m.assignments = append(m.assignments, ast.NewAssignment(col, Literal(val)))
	return m
}

// Where appends one or more conditions to the WHERE clause.
// Multiple conditions are combined with AND when the statement is built.
func (m *UpdateManager) Where(conditions ...ast.Expr) *UpdateManager {
	m.wheres = append(m.wheres, conditions...)
	return m
}

// Statement assembles the accumulated assignments into an *ast.Update.
func (m *UpdateManager) Statement() *ast.Update {
	assignments := make([]*ast.Assignment, len(m.assignments))
	copy(assignments, m.assignments)

	return ast.NewUpdate(m.name, assignments, conjoin(m.wheres))
}

// ToSQL assembles the statement and renders it with the given visitor.
func (m *UpdateManager) ToSQL(v ast.Visitor) string {
	return m.Statement().Accept(v)
}
