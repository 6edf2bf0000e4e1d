// Package managers provides high-level fluent APIs for building SQL ASTs.
package managers

import "github.com/bawdo/streamsql/ast"

// SelectManager provides a fluent API for building SELECT queries.
// It accumulates clauses and assembles an *ast.Query on demand; the
// produced tree never aliases the manager's internal slices, so a
// manager can keep growing after a build.
type SelectManager struct {
	distinct   bool
	projection []*ast.SelectItem
	relation   ast.TableFactor
	joins      []*ast.Join
	wheres     []ast.Expr
	groups     []ast.Expr
	havings    []ast.Expr
	orders     []*ast.OrderByExpr
	limit      ast.Expr
	ctes       []*ast.Cte

	// body is set when the manager wraps a set operation; the clause
	// fields above except CTEs, ORDER BY, and LIMIT are then inert.
	body ast.SetExpr
}

// NewSelectManager creates a new SelectManager with the given relation
// as FROM. If from is nil, the FROM clause is left unset.
func NewSelectManager(from ast.TableFactor) *SelectManager {
	return &SelectManager{relation: from}
}

// Select sets the projection list, replacing any existing projections.
// Each expression becomes an unaliased select item.
func (m *SelectManager) Select(exprs ...ast.Expr) *SelectManager {
	m.projection = m.projection[:0]
	for _, e := range exprs {
		m.projection = append(m.projection, ast.NewSelectItem(e, ""))
	}
	return m
}

// SelectAs appends a single aliased select item to the projection.
func (m *SelectManager) SelectAs(expr ast.Expr, alias ast.Ident) *SelectManager {
	m.projection = append(m.projection, ast.NewSelectItem(expr, alias))
	return m
}

// Distinct enables or disables the DISTINCT modifier on the SELECT clause.
func (m *SelectManager) Distinct(on ...bool) *SelectManager {
	m.distinct = len(on) == 0 || on[0]
	return m
}

// From sets or changes the FROM relation.
func (m *SelectManager) From(relation ast.TableFactor) *SelectManager {
	m.relation = relation
	return m
}

// Where appends one or more conditions to the WHERE clause.
// Multiple conditions are combined with AND when the query is built.
func (m *SelectManager) Where(conditions ...ast.Expr) *SelectManager {
	m.wheres = append(m.wheres, conditions...)
	return m
}

// Join adds a join to the query and returns a JoinContext for
// specifying the ON condition or USING columns. The default join type
// is InnerJoin.
func (m *SelectManager) Join(relation ast.TableFactor, joinTypes ...ast.JoinType) *JoinContext {
	jt := ast.InnerJoin
	if len(joinTypes) > 0 {
		jt = joinTypes[0]
	}
	join := ast.NewJoin(jt, relation, nil, nil, false)
	m.joins = append(m.joins, join)
	return &JoinContext{manager: m, join: join}
}

// OuterJoin is a convenience for Join with LeftOuterJoin type.
func (m *SelectManager) OuterJoin(relation ast.TableFactor) *JoinContext {
	return m.Join(relation, ast.LeftOuterJoin)
}

// CrossJoin adds a cross join (no join condition).
func (m *SelectManager) CrossJoin(relation ast.TableFactor) *SelectManager {
	m.joins = append(m.joins, ast.NewJoin(ast.CrossJoin, relation, nil, nil, false))
	return m
}

// NaturalJoin adds a natural join (no join condition). The default
// join type is InnerJoin.
func (m *SelectManager) NaturalJoin(relation ast.TableFactor, joinTypes ...ast.JoinType) *SelectManager {
	jt := ast.InnerJoin
	if len(joinTypes) > 0 {
		jt = joinTypes[0]
	}
	m.joins = append(m.joins, ast.NewJoin(jt, relation, nil, nil, true))
	return m
}

// Group appends one or more expressions to the GROUP BY clause.
func (m *SelectManager) Group(exprs ...ast.Expr) *SelectManager {
	m.groups = append(m.groups, exprs...)
	return m
}

// Having appends one or more conditions to the HAVING clause.
// Multiple conditions are combined with AND when the query is built.
func (m *SelectManager) Having(conditions ...ast.Expr) *SelectManager {
	m.havings = append(m.havings, conditions...)
	return m
}

// Order appends one or more ORDER BY expressions.
func (m *SelectManager) Order(orderings ...*ast.OrderByExpr) *SelectManager {
	m.orders = append(m.orders, orderings...)
	return m
}

// OrderAsc appends an explicit ascending ORDER BY expression.
func (m *SelectManager) OrderAsc(expr ast.Expr) *SelectManager {
	return m.Order(ast.NewOrderByExpr(expr, ast.Bool(true)))
}

// OrderDesc appends a descending ORDER BY expression.
func (m *SelectManager) OrderDesc(expr ast.Expr) *SelectManager {
	return m.Order(ast.NewOrderByExpr(expr, ast.Bool(false)))
}

// Limit sets the LIMIT value.
func (m *SelectManager) Limit(n uint64) *SelectManager {
	m.limit = ast.NewLiteral(ast.Long(n))
	return m
}

// With adds a common table expression (WITH clause).
func (m *SelectManager) With(alias ast.Ident, query *ast.Query) *SelectManager {
	m.ctes = append(m.ctes, ast.NewCte(alias, query))
	return m
}

// Union combines this query and another with UNION. The result is a
// fresh manager that accepts With, Order, Limit, and further set
// operations; operands carrying their own ORDER BY, LIMIT, or CTEs are
// parenthesized.
func (m *SelectManager) Union(other *SelectManager) *SelectManager {
	return newSetManager(ast.Union, false, m, other)
}

// UnionAll combines this query and another with UNION ALL.
func (m *SelectManager) UnionAll(other *SelectManager) *SelectManager {
	return newSetManager(ast.Union, true, m, other)
}

// Except combines this query and another with EXCEPT.
func (m *SelectManager) Except(other *SelectManager) *SelectManager {
	return newSetManager(ast.Except, false, m, other)
}

// ExceptAll combines this query and another with EXCEPT ALL.
func (m *SelectManager) ExceptAll(other *SelectManager) *SelectManager {
	return newSetManager(ast.Except, true, m, other)
}

// Intersect combines this query and another with INTERSECT.
func (m *SelectManager) Intersect(other *SelectManager) *SelectManager {
	return newSetManager(ast.Intersect, false, m, other)
}

// IntersectAll combines this query and another with INTERSECT ALL.
func (m *SelectManager) IntersectAll(other *SelectManager) *SelectManager {
	return newSetManager(ast.Intersect, true, m, other)
}

func newSetManager(op ast.SetOperator, all bool, left, right *SelectManager) *SelectManager {
	return &SelectManager{body: ast.NewSetOperation(op, all, left.setExpr(), right.setExpr())}
}

// setExpr returns the manager's body as a set operand. Managers that
// carry outer clauses are wrapped in a parenthesized query so the
// clauses stay attached to their operand.
func (m *SelectManager) setExpr() ast.SetExpr {
	if len(m.ctes) == 0 && len(m.orders) == 0 && m.limit == nil {
		return m.bodyExpr()
	}
	return ast.NewNestedQuery(m.Query())
}

func (m *SelectManager) bodyExpr() ast.SetExpr {
	if m.body != nil {
		return m.body
	}
	return m.buildSelect()
}

func (m *SelectManager) buildSelect() *ast.Select {
	projection := make([]*ast.SelectItem, len(m.projection))
	copy(projection, m.projection)
	if len(projection) == 0 {
		projection = append(projection, ast.NewSelectItem(ast.NewWildcard(), ""))
	}

	joins := make([]*ast.Join, len(m.joins))
	copy(joins, m.joins)

	groups := make([]ast.Expr, len(m.groups))
	copy(groups, m.groups)

	return ast.NewSelect(m.distinct, projection, m.relation, joins, conjoin(m.wheres), groups, conjoin(m.havings))
}

// Query assembles the accumulated clauses into an *ast.Query.
// An empty projection list becomes SELECT *.
func (m *SelectManager) Query() *ast.Query {
	ctes := make([]*ast.Cte, len(m.ctes))
	copy(ctes, m.ctes)

	orders := make([]*ast.OrderByExpr, len(m.orders))
	copy(orders, m.orders)

	return ast.NewQuery(ctes, m.bodyExpr(), orders, m.limit)
}

// Statement wraps the assembled query in an *ast.QueryStatement.
func (m *SelectManager) Statement() *ast.QueryStatement {
	return ast.NewQueryStatement(m.Query())
}

// ToSQL assembles the query and renders it with the given visitor.
func (m *SelectManager) ToSQL(v ast.Visitor) string {
	return m.Query().Accept(v)
}

// As wraps the assembled query in a derived table, enabling it to be
// used as a named subquery in FROM or JOIN clauses.
func (m *SelectManager) As(alias ast.Ident) *ast.Derived {
	return ast.NewDerived(m.Query(), alias)
}

// Subquery wraps the assembled query in a subquery expression for use
// in scalar or IN (...) positions.
func (m *SelectManager) Subquery() *ast.Subquery {
	return ast.NewSubquery(m.Query())
}
