package managers

import "github.com/bawdo/streamsql/ast"

// InsertManager provides a fluent API for building INSERT statements.
type InsertManager struct {
	name    ast.ObjectName
	columns []ast.Ident
	rows    [][]ast.Expr
}

// NewInsertManager creates a new InsertManager targeting the given table.
func NewInsertManager(into ast.ObjectName) *InsertManager {
	return &InsertManager{name: into}
}

// Columns sets the column list for the INSERT statement.
func (m *InsertManager) Columns(cols ...ast.Ident) *InsertManager {
	m.columns = cols
	return m
}

// Values appends a row of values to the INSERT statement. Each call
// adds one row. Raw Go values are wrapped with Literal automatically.
func (m *InsertManager) Values(vals ...any) *InsertManager {
	row := make([]ast.Expr, len(vals))
	for i, v := range vals {
		row[i] = Literal(v)
	}
	m.rows = append(m.rows, row)
	return m
}

// Statement assembles the accumulated rows into an *ast.Insert.
func (m *InsertManager) Statement() *ast.Insert {
	columns := make([]ast.Ident, len(m.columns))
	copy(columns, m.columns)

	rows := make([][]ast.Expr, len(m.rows))
	for i, row := range m.rows {
		r := make([]ast.Expr, len(row))
		copy(r, row)
		rows[i] = r
	}

	return ast.NewInsert(m.name, columns, rows)
}

// ToSQL assembles the statement and renders it with the given visitor.
func (m *InsertManager) ToSQL(v ast.Visitor) string {
	return m.Statement().Accept(v)
}
