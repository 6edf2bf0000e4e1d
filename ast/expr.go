package ast

import "slices"

// Identifier is a bare name, e.g. a table or column name.
type Identifier struct {
	Name Ident
}

// NewIdentifier creates an identifier expression.
func NewIdentifier(name Ident) *Identifier { return &Identifier{Name: name} }

// Wildcard is an unqualified "*". SQL allows it only in limited
// contexts (select lists, COUNT(*)), but the tree does not police where
// it appears.
type Wildcard struct{}

// NewWildcard creates a "*" expression.
func NewWildcard() *Wildcard { return &Wildcard{} }

// QualifiedWildcard is a qualified "*", e.g. alias.* or schema.table.*.
type QualifiedWildcard struct {
	Parts []Ident
}

// NewQualifiedWildcard creates a qualified wildcard from the qualifier
// parts, without the trailing star.
func NewQualifiedWildcard(parts ...Ident) *QualifiedWildcard {
	return &QualifiedWildcard{Parts: parts}
}

// CompoundIdentifier is a multi-part name, e.g. table_alias.column.
type CompoundIdentifier struct {
	Parts []Ident
}

// NewCompoundIdentifier creates a dotted identifier from its parts.
func NewCompoundIdentifier(parts ...Ident) *CompoundIdentifier {
	return &CompoundIdentifier{Parts: parts}
}

// IsNull is an IS NULL test; Negated makes it IS NOT NULL.
type IsNull struct {
	Expr    Expr
	Negated bool
}

// NewIsNull creates a null test.
func NewIsNull(expr Expr, negated bool) *IsNull {
	return &IsNull{Expr: expr, Negated: negated}
}

// InList is "<expr> [NOT ]IN (v1, v2, ...)".
type InList struct {
	Expr    Expr
	List    []Expr
	Negated bool
}

// NewInList creates a list membership test.
func NewInList(expr Expr, list []Expr, negated bool) *InList {
	return &InList{Expr: expr, List: list, Negated: negated}
}

// InSubquery is "<expr> [NOT ]IN (SELECT ...)".
type InSubquery struct {
	Expr     Expr
	Subquery *Query
	Negated  bool
}

// NewInSubquery creates a subquery membership test.
func NewInSubquery(expr Expr, subquery *Query, negated bool) *InSubquery {
	return &InSubquery{Expr: expr, Subquery: subquery, Negated: negated}
}

// Between is "<expr> [NOT ]BETWEEN <low> AND <high>".
type Between struct {
	Expr    Expr
	Negated bool
	Low     Expr
	High    Expr
}

// NewBetween creates a range test.
func NewBetween(expr Expr, negated bool, low, high Expr) *Between {
	return &Between{Expr: expr, Negated: negated, Low: low, High: high}
}

// BinaryExpr applies a binary operator, e.g. 1 + 1 or foo > bar.
// Rendering never inserts parentheses; wrap operands in Nested to
// control precedence in the output text.
type BinaryExpr struct {
	Left  Expr
	Op    Operator
	Right Expr
}

// NewBinaryExpr creates a binary operator application.
func NewBinaryExpr(left Expr, op Operator, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: op, Right: right}
}

// UnaryExpr applies a unary operator, rendered "<op> <expr>".
type UnaryExpr struct {
	Op   Operator
	Expr Expr
}

// NewUnaryExpr creates a unary operator application.
func NewUnaryExpr(op Operator, expr Expr) *UnaryExpr {
	return &UnaryExpr{Op: op, Expr: expr}
}

// Cast is "CAST(<expr> AS <type>)".
type Cast struct {
	Expr Expr
	Type DataType
}

// NewCast creates a cast expression.
func NewCast(expr Expr, typ DataType) *Cast { return &Cast{Expr: expr, Type: typ} }

// Collate is "<expr> COLLATE <collation>".
type Collate struct {
	Expr      Expr
	Collation ObjectName
}

// NewCollate creates a collation expression.
func NewCollate(expr Expr, collation ObjectName) *Collate {
	return &Collate{Expr: expr, Collation: collation}
}

// Nested is a parenthesized expression, "(<expr>)".
type Nested struct {
	Expr Expr
}

// NewNested wraps an expression in parentheses.
func NewNested(expr Expr) *Nested { return &Nested{Expr: expr} }

// LiteralExpr lifts a literal value into expression position.
type LiteralExpr struct {
	Value Value
}

// NewLiteral creates a literal expression.
func NewLiteral(v Value) *LiteralExpr { return &LiteralExpr{Value: v} }

// FunctionCall is a scalar or aggregate function call, optionally with
// an OVER window and ALL/DISTINCT argument quantifiers. The flags are
// independent; the renderer does not enforce mutual exclusion.
type FunctionCall struct {
	Name     ObjectName
	Args     []Expr
	Over     *WindowSpec // nil means no OVER clause
	All      bool
	Distinct bool
}

// NewFunctionCall creates a function call.
func NewFunctionCall(name ObjectName, args []Expr, over *WindowSpec, all, distinct bool) *FunctionCall {
	return &FunctionCall{Name: name, Args: args, Over: over, All: all, Distinct: distinct}
}

// CaseExpr is "CASE [<operand>] WHEN ... THEN ... [ELSE <result>] END".
// Conditions and Results are paired positionally and must have equal
// length; the renderer zips them without checking.
type CaseExpr struct {
	Operand    Expr // nil means no operand
	Conditions []Expr
	Results    []Expr
	ElseResult Expr // nil means no ELSE branch
}

// NewCaseExpr creates a CASE expression. Conditions and results must
// have equal length.
func NewCaseExpr(operand Expr, conditions, results []Expr, elseResult Expr) *CaseExpr {
	return &CaseExpr{Operand: operand, Conditions: conditions, Results: results, ElseResult: elseResult}
}

// Subquery is a parenthesized subquery in expression position, e.g.
// SELECT (subquery) AS x.
type Subquery struct {
	Query *Query
}

// NewSubquery creates a subquery expression.
func NewSubquery(q *Query) *Subquery { return &Subquery{Query: q} }

func (n *Identifier) Accept(v Visitor) string         { return v.VisitIdentifier(n) }
func (n *Wildcard) Accept(v Visitor) string           { return v.VisitWildcard(n) }
func (n *QualifiedWildcard) Accept(v Visitor) string  { return v.VisitQualifiedWildcard(n) }
func (n *CompoundIdentifier) Accept(v Visitor) string { return v.VisitCompoundIdentifier(n) }
func (n *IsNull) Accept(v Visitor) string             { return v.VisitIsNull(n) }
func (n *InList) Accept(v Visitor) string             { return v.VisitInList(n) }
func (n *InSubquery) Accept(v Visitor) string         { return v.VisitInSubquery(n) }
func (n *Between) Accept(v Visitor) string            { return v.VisitBetween(n) }
func (n *BinaryExpr) Accept(v Visitor) string         { return v.VisitBinaryExpr(n) }
func (n *UnaryExpr) Accept(v Visitor) string          { return v.VisitUnaryExpr(n) }
func (n *Cast) Accept(v Visitor) string               { return v.VisitCast(n) }
func (n *Collate) Accept(v Visitor) string            { return v.VisitCollate(n) }
func (n *Nested) Accept(v Visitor) string             { return v.VisitNested(n) }
func (n *LiteralExpr) Accept(v Visitor) string        { return v.VisitLiteralExpr(n) }
func (n *FunctionCall) Accept(v Visitor) string       { return v.VisitFunctionCall(n) }
func (n *CaseExpr) Accept(v Visitor) string           { return v.VisitCaseExpr(n) }
func (n *Subquery) Accept(v Visitor) string           { return v.VisitSubquery(n) }

func (n *Identifier) Equal(other Node) bool {
	o, ok := other.(*Identifier)
	return ok && n.Name == o.Name
}

func (n *Wildcard) Equal(other Node) bool {
	_, ok := other.(*Wildcard)
	return ok
}

func (n *QualifiedWildcard) Equal(other Node) bool {
	o, ok := other.(*QualifiedWildcard)
	return ok && slices.Equal(n.Parts, o.Parts)
}

func (n *CompoundIdentifier) Equal(other Node) bool {
	o, ok := other.(*CompoundIdentifier)
	return ok && slices.Equal(n.Parts, o.Parts)
}

func (n *IsNull) Equal(other Node) bool {
	o, ok := other.(*IsNull)
	return ok && n.Negated == o.Negated && nodeEqual(n.Expr, o.Expr)
}

func (n *InList) Equal(other Node) bool {
	o, ok := other.(*InList)
	return ok && n.Negated == o.Negated && nodeEqual(n.Expr, o.Expr) && nodesEqual(n.List, o.List)
}

func (n *InSubquery) Equal(other Node) bool {
	o, ok := other.(*InSubquery)
	return ok && n.Negated == o.Negated && nodeEqual(n.Expr, o.Expr) && queryEqual(n.Subquery, o.Subquery)
}

func (n *Between) Equal(other Node) bool {
	o, ok := other.(*Between)
	return ok && n.Negated == o.Negated &&
		nodeEqual(n.Expr, o.Expr) && nodeEqual(n.Low, o.Low) && nodeEqual(n.High, o.High)
}

func (n *BinaryExpr) Equal(other Node) bool {
	o, ok := other.(*BinaryExpr)
	return ok && n.Op == o.Op && nodeEqual(n.Left, o.Left) && nodeEqual(n.Right, o.Right)
}

func (n *UnaryExpr) Equal(other Node) bool {
	o, ok := other.(*UnaryExpr)
	return ok && n.Op == o.Op && nodeEqual(n.Expr, o.Expr)
}

func (n *Cast) Equal(other Node) bool {
	o, ok := other.(*Cast)
	return ok && nodeEqual(n.Expr, o.Expr) && nodeEqual(n.Type, o.Type)
}

func (n *Collate) Equal(other Node) bool {
	o, ok := other.(*Collate)
	return ok && nodeEqual(n.Expr, o.Expr) && n.Collation.Equal(o.Collation)
}

func (n *Nested) Equal(other Node) bool {
	o, ok := other.(*Nested)
	return ok && nodeEqual(n.Expr, o.Expr)
}

func (n *LiteralExpr) Equal(other Node) bool {
	o, ok := other.(*LiteralExpr)
	return ok && nodeEqual(n.Value, o.Value)
}

func (n *FunctionCall) Equal(other Node) bool {
	o, ok := other.(*FunctionCall)
	if !ok || n.All != o.All || n.Distinct != o.Distinct {
		return false
	}
	if (n.Over == nil) != (o.Over == nil) {
		return false
	}
	if n.Over != nil && !n.Over.Equal(o.Over) {
		return false
	}
	return n.Name.Equal(o.Name) && nodesEqual(n.Args, o.Args)
}

func (n *CaseExpr) Equal(other Node) bool {
	o, ok := other.(*CaseExpr)
	return ok && nodeEqual(n.Operand, o.Operand) &&
		nodesEqual(n.Conditions, o.Conditions) &&
		nodesEqual(n.Results, o.Results) &&
		nodeEqual(n.ElseResult, o.ElseResult)
}

func (n *Subquery) Equal(other Node) bool {
	o, ok := other.(*Subquery)
	return ok && queryEqual(n.Query, o.Query)
}

func (n *Identifier) hashTo(h *hasher) {
	h.writeTag(tagIdentifier)
	h.writeString(n.Name)
}

func (n *Wildcard) hashTo(h *hasher) {
	h.writeTag(tagWildcard)
}

func (n *QualifiedWildcard) hashTo(h *hasher) {
	h.writeTag(tagQualifiedWildcard)
	h.writeStrings(n.Parts)
}

func (n *CompoundIdentifier) hashTo(h *hasher) {
	h.writeTag(tagCompoundIdentifier)
	h.writeStrings(n.Parts)
}

func (n *IsNull) hashTo(h *hasher) {
	h.writeTag(tagIsNull)
	h.writeNode(n.Expr)
	h.writeBool(n.Negated)
}

func (n *InList) hashTo(h *hasher) {
	h.writeTag(tagInList)
	h.writeNode(n.Expr)
	hashNodes(h, n.List)
	h.writeBool(n.Negated)
}

func (n *InSubquery) hashTo(h *hasher) {
	h.writeTag(tagInSubquery)
	h.writeNode(n.Expr)
	hashQuery(h, n.Subquery)
	h.writeBool(n.Negated)
}

func (n *Between) hashTo(h *hasher) {
	h.writeTag(tagBetween)
	h.writeNode(n.Expr)
	h.writeBool(n.Negated)
	h.writeNode(n.Low)
	h.writeNode(n.High)
}

func (n *BinaryExpr) hashTo(h *hasher) {
	h.writeTag(tagBinaryExpr)
	h.writeNode(n.Left)
	h.writeInt(int(n.Op))
	h.writeNode(n.Right)
}

func (n *UnaryExpr) hashTo(h *hasher) {
	h.writeTag(tagUnaryExpr)
	h.writeInt(int(n.Op))
	h.writeNode(n.Expr)
}

func (n *Cast) hashTo(h *hasher) {
	h.writeTag(tagCast)
	h.writeNode(n.Expr)
	h.writeNode(n.Type)
}

func (n *Collate) hashTo(h *hasher) {
	h.writeTag(tagCollate)
	h.writeNode(n.Expr)
	n.Collation.hashTo(h)
}

func (n *Nested) hashTo(h *hasher) {
	h.writeTag(tagNested)
	h.writeNode(n.Expr)
}

func (n *LiteralExpr) hashTo(h *hasher) {
	h.writeTag(tagLiteralExpr)
	h.writeNode(n.Value)
}

func (n *FunctionCall) hashTo(h *hasher) {
	h.writeTag(tagFunctionCall)
	n.Name.hashTo(h)
	hashNodes(h, n.Args)
	if n.Over == nil {
		h.writeTag(tagNil)
	} else {
		n.Over.hashTo(h)
	}
	h.writeBool(n.All)
	h.writeBool(n.Distinct)
}

func (n *CaseExpr) hashTo(h *hasher) {
	h.writeTag(tagCaseExpr)
	h.writeNode(n.Operand)
	hashNodes(h, n.Conditions)
	hashNodes(h, n.Results)
	h.writeNode(n.ElseResult)
}

func (n *Subquery) hashTo(h *hasher) {
	h.writeTag(tagSubquery)
	hashQuery(h, n.Query)
}

func (*Identifier) exprNode()         {}
func (*Wildcard) exprNode()           {}
func (*QualifiedWildcard) exprNode()  {}
func (*CompoundIdentifier) exprNode() {}
func (*IsNull) exprNode()             {}
func (*InList) exprNode()             {}
func (*InSubquery) exprNode()         {}
func (*Between) exprNode()            {}
func (*BinaryExpr) exprNode()         {}
func (*UnaryExpr) exprNode()          {}
func (*Cast) exprNode()               {}
func (*Collate) exprNode()            {}
func (*Nested) exprNode()             {}
func (*LiteralExpr) exprNode()        {}
func (*FunctionCall) exprNode()       {}
func (*CaseExpr) exprNode()           {}
func (*Subquery) exprNode()           {}
