package ast

import "slices"

// SetOperator combines two query bodies.
type SetOperator int

const (
	Union SetOperator = iota
	Except
	Intersect
)

var setOperatorSQL = [...]string{
	Union:     "UNION",
	Except:    "EXCEPT",
	Intersect: "INTERSECT",
}

// String returns the operator's SQL keyword.
func (op SetOperator) String() string {
	if op < 0 || int(op) >= len(setOperatorSQL) {
		return "UNION"
	}
	return setOperatorSQL[op]
}

// JoinType represents the type of SQL JOIN.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	CrossJoin
	ImplicitJoin // comma-separated FROM item, no JOIN keyword
)

// String returns the join keyword. ImplicitJoin has none; the renderer
// emits a comma instead.
func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "JOIN"
	case LeftOuterJoin:
		return "LEFT JOIN"
	case RightOuterJoin:
		return "RIGHT JOIN"
	case FullOuterJoin:
		return "FULL JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	case ImplicitJoin:
		return "IMPLICIT JOIN"
	default:
		return "JOIN"
	}
}

// Query is a complete query: optional CTEs, a body, and optional
// ordering and limit.
type Query struct {
	CTEs    []*Cte
	Body    SetExpr
	OrderBy []*OrderByExpr
	Limit   Expr // nil means no LIMIT clause
}

// NewQuery creates a query.
func NewQuery(ctes []*Cte, body SetExpr, orderBy []*OrderByExpr, limit Expr) *Query {
	return &Query{CTEs: ctes, Body: body, OrderBy: orderBy, Limit: limit}
}

// Cte is a common table expression, rendered "<alias> AS (<query>)".
type Cte struct {
	Alias Ident
	Query *Query
}

// NewCte creates a common table expression.
func NewCte(alias Ident, query *Query) *Cte { return &Cte{Alias: alias, Query: query} }

// Select is a restricted SELECT statement: projection, relation, joins,
// filters, and grouping, without ORDER BY or LIMIT. Those belong to the
// enclosing Query.
type Select struct {
	Distinct   bool
	Projection []*SelectItem
	Relation   TableFactor // nil means no FROM clause
	Joins      []*Join
	Selection  Expr // nil means no WHERE clause
	GroupBy    []Expr
	Having     Expr // nil means no HAVING clause
}

// NewSelect creates a SELECT body.
func NewSelect(distinct bool, projection []*SelectItem, relation TableFactor, joins []*Join, selection Expr, groupBy []Expr, having Expr) *Select {
	return &Select{
		Distinct:   distinct,
		Projection: projection,
		Relation:   relation,
		Joins:      joins,
		Selection:  selection,
		GroupBy:    groupBy,
		Having:     having,
	}
}

// SetOperation combines two query bodies with UNION, EXCEPT, or
// INTERSECT, optionally ALL.
type SetOperation struct {
	Op    SetOperator
	All   bool
	Left  SetExpr
	Right SetExpr
}

// NewSetOperation creates a set operation body.
func NewSetOperation(op SetOperator, all bool, left, right SetExpr) *SetOperation {
	return &SetOperation{Op: op, All: all, Left: left, Right: right}
}

// NestedQuery is a parenthesized query in body position.
type NestedQuery struct {
	Query *Query
}

// NewNestedQuery wraps a query in parentheses as a body.
func NewNestedQuery(q *Query) *NestedQuery { return &NestedQuery{Query: q} }

// SelectItem is one projection entry, "<expr>[ AS <alias>]".
type SelectItem struct {
	Expr  Expr
	Alias Ident // empty means no alias
}

// NewSelectItem creates a projection entry.
func NewSelectItem(expr Expr, alias Ident) *SelectItem {
	return &SelectItem{Expr: expr, Alias: alias}
}

// Table is a named relation in FROM position.
type Table struct {
	Name  ObjectName
	Alias Ident // empty means no alias
}

// NewTable creates a named FROM relation.
func NewTable(name ObjectName, alias Ident) *Table { return &Table{Name: name, Alias: alias} }

// Derived is a subquery in FROM position, "(<query>)[ AS <alias>]".
type Derived struct {
	Subquery *Query
	Alias    Ident // empty means no alias
}

// NewDerived creates a derived FROM relation.
func NewDerived(subquery *Query, alias Ident) *Derived {
	return &Derived{Subquery: subquery, Alias: alias}
}

// Join attaches one relation to a SELECT. Each join renders its own
// leading separator: a space plus the join keyword, or a comma for
// ImplicitJoin. At most one of On, Using, and Natural applies.
type Join struct {
	Type     JoinType
	Relation TableFactor
	On       Expr    // join condition (nil if Using or Natural)
	Using    []Ident // USING column list (empty if On or Natural)
	Natural  bool
}

// NewJoin creates a join clause.
func NewJoin(typ JoinType, relation TableFactor, on Expr, using []Ident, natural bool) *Join {
	return &Join{Type: typ, Relation: relation, On: on, Using: using, Natural: natural}
}

// OrderByExpr is one ORDER BY entry; a nil Asc omits the direction
// keyword.
type OrderByExpr struct {
	Expr Expr
	Asc  *bool
}

// NewOrderByExpr creates an ORDER BY entry.
func NewOrderByExpr(expr Expr, asc *bool) *OrderByExpr {
	return &OrderByExpr{Expr: expr, Asc: asc}
}

func (n *Query) Accept(v Visitor) string        { return v.VisitQuery(n) }
func (n *Cte) Accept(v Visitor) string          { return v.VisitCte(n) }
func (n *Select) Accept(v Visitor) string       { return v.VisitSelect(n) }
func (n *SetOperation) Accept(v Visitor) string { return v.VisitSetOperation(n) }
func (n *NestedQuery) Accept(v Visitor) string  { return v.VisitNestedQuery(n) }
func (n *SelectItem) Accept(v Visitor) string   { return v.VisitSelectItem(n) }
func (n *Table) Accept(v Visitor) string        { return v.VisitTable(n) }
func (n *Derived) Accept(v Visitor) string      { return v.VisitDerived(n) }
func (n *Join) Accept(v Visitor) string         { return v.VisitJoin(n) }
func (n *OrderByExpr) Accept(v Visitor) string  { return v.VisitOrderByExpr(n) }

func (n *Query) Equal(other Node) bool {
	o, ok := other.(*Query)
	return ok && nodesEqual(n.CTEs, o.CTEs) &&
		nodeEqual(n.Body, o.Body) &&
		nodesEqual(n.OrderBy, o.OrderBy) &&
		nodeEqual(n.Limit, o.Limit)
}

func (n *Cte) Equal(other Node) bool {
	o, ok := other.(*Cte)
	return ok && n.Alias == o.Alias && queryEqual(n.Query, o.Query)
}

func (n *Select) Equal(other Node) bool {
	o, ok := other.(*Select)
	return ok && n.Distinct == o.Distinct &&
		nodesEqual(n.Projection, o.Projection) &&
		nodeEqual(n.Relation, o.Relation) &&
		nodesEqual(n.Joins, o.Joins) &&
		nodeEqual(n.Selection, o.Selection) &&
		nodesEqual(n.GroupBy, o.GroupBy) &&
		nodeEqual(n.Having, o.Having)
}

func (n *SetOperation) Equal(other Node) bool {
	o, ok := other.(*SetOperation)
	return ok && n.Op == o.Op && n.All == o.All &&
		nodeEqual(n.Left, o.Left) && nodeEqual(n.Right, o.Right)
}

func (n *NestedQuery) Equal(other Node) bool {
	o, ok := other.(*NestedQuery)
	return ok && queryEqual(n.Query, o.Query)
}

func (n *SelectItem) Equal(other Node) bool {
	o, ok := other.(*SelectItem)
	return ok && n.Alias == o.Alias && nodeEqual(n.Expr, o.Expr)
}

func (n *Table) Equal(other Node) bool {
	o, ok := other.(*Table)
	return ok && n.Alias == o.Alias && n.Name.Equal(o.Name)
}

func (n *Derived) Equal(other Node) bool {
	o, ok := other.(*Derived)
	return ok && n.Alias == o.Alias && queryEqual(n.Subquery, o.Subquery)
}

func (n *Join) Equal(other Node) bool {
	o, ok := other.(*Join)
	return ok && n.Type == o.Type && n.Natural == o.Natural &&
		nodeEqual(n.Relation, o.Relation) &&
		nodeEqual(n.On, o.On) &&
		slices.Equal(n.Using, o.Using)
}

func (n *OrderByExpr) Equal(other Node) bool {
	o, ok := other.(*OrderByExpr)
	return ok && nodeEqual(n.Expr, o.Expr) && boolPtrEqual(n.Asc, o.Asc)
}

func (n *Query) hashTo(h *hasher) {
	h.writeTag(tagQuery)
	hashNodes(h, n.CTEs)
	h.writeNode(n.Body)
	hashNodes(h, n.OrderBy)
	h.writeNode(n.Limit)
}

func (n *Cte) hashTo(h *hasher) {
	h.writeTag(tagCte)
	h.writeString(n.Alias)
	hashQuery(h, n.Query)
}

func (n *Select) hashTo(h *hasher) {
	h.writeTag(tagSelect)
	h.writeBool(n.Distinct)
	hashNodes(h, n.Projection)
	h.writeNode(n.Relation)
	hashNodes(h, n.Joins)
	h.writeNode(n.Selection)
	hashNodes(h, n.GroupBy)
	h.writeNode(n.Having)
}

func (n *SetOperation) hashTo(h *hasher) {
	h.writeTag(tagSetOperation)
	h.writeInt(int(n.Op))
	h.writeBool(n.All)
	h.writeNode(n.Left)
	h.writeNode(n.Right)
}

func (n *NestedQuery) hashTo(h *hasher) {
	h.writeTag(tagNestedQuery)
	hashQuery(h, n.Query)
}

func (n *SelectItem) hashTo(h *hasher) {
	h.writeTag(tagSelectItem)
	h.writeNode(n.Expr)
	h.writeString(n.Alias)
}

func (n *Table) hashTo(h *hasher) {
	h.writeTag(tagTable)
	n.Name.hashTo(h)
	h.writeString(n.Alias)
}

func (n *Derived) hashTo(h *hasher) {
	h.writeTag(tagDerived)
	hashQuery(h, n.Subquery)
	h.writeString(n.Alias)
}

func (n *Join) hashTo(h *hasher) {
	h.writeTag(tagJoin)
	h.writeInt(int(n.Type))
	h.writeNode(n.Relation)
	h.writeNode(n.On)
	h.writeStrings(n.Using)
	h.writeBool(n.Natural)
}

func (n *OrderByExpr) hashTo(h *hasher) {
	h.writeTag(tagOrderByExpr)
	h.writeNode(n.Expr)
	h.writeBoolPtr(n.Asc)
}

func (*Select) setExprNode()       {}
func (*SetOperation) setExprNode() {}
func (*NestedQuery) setExprNode()  {}

func (*Table) tableFactorNode()   {}
func (*Derived) tableFactorNode() {}

// queryEqual compares two possibly-nil queries.
func queryEqual(a, b *Query) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}

func hashQuery(h *hasher, q *Query) {
	if q == nil {
		h.writeTag(tagNil)
		return
	}
	q.hashTo(h)
}
