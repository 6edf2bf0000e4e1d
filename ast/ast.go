// Package ast defines the syntax tree for a streaming SQL dialect: the
// expression and statement node sets, the type model, literal values,
// operators, window specifications, and the query sub-model, together with
// deterministic rendering via double dispatch, deep structural equality,
// and structural fingerprint hashing.
//
// Trees are plain data. Constructors perform no validation, so a tree
// that cannot be rendered (an external table without a file format, a
// decimal scale without a precision) is constructable; the renderer
// panics when it reaches one. Rendering is handled by implementations of
// Visitor, canonically visitors.SQLVisitor.
package ast

// Ident is a bare SQL identifier. Identifiers render verbatim; this
// dialect never quotes them.
type Ident = string

// Node is implemented by every AST entity. The unexported hashTo method
// seals the node set: variants can only be added inside this package,
// and each addition is a compile-time obligation on every Visitor.
type Node interface {
	// Accept dispatches to the Visitor method for the node's concrete
	// type and returns the rendered text.
	Accept(v Visitor) string

	// Equal reports whether other has the same shape and, recursively,
	// structurally identical children.
	Equal(other Node) bool

	hashTo(h *hasher)
}

// Expr is the expression union.
type Expr interface {
	Node
	exprNode()
}

// Statement is the top-level statement union.
type Statement interface {
	Node
	stmtNode()
}

// DataType is the SQL type union.
type DataType interface {
	Node
	typeNode()
}

// Value is the literal value union.
type Value interface {
	Node
	valueNode()
}

// SetExpr is the body of a query: a select, a set operation, or a
// parenthesized nested query.
type SetExpr interface {
	Node
	setExprNode()
}

// TableFactor is a FROM-position relation: a named table or a derived
// (subquery) table.
type TableFactor interface {
	Node
	tableFactorNode()
}

// DataSourceSchema says where a data source's schema definition lives:
// inline raw text or a schema registry URL.
type DataSourceSchema interface {
	Node
	schemaNode()
}

// AlterOperation is the operation payload of an ALTER TABLE statement.
type AlterOperation interface {
	Node
	alterOpNode()
}

// TableKey is a table constraint: primary, unique, plain, or foreign key.
type TableKey interface {
	Node
	tableKeyNode()
}

// Visitor renders nodes to text. One method per concrete node type;
// leaf unions with a shared textual family (values, data types, table
// keys) dispatch through a single method that switches internally.
type Visitor interface {
	// Expressions.
	VisitIdentifier(n *Identifier) string
	VisitWildcard(n *Wildcard) string
	VisitQualifiedWildcard(n *QualifiedWildcard) string
	VisitCompoundIdentifier(n *CompoundIdentifier) string
	VisitIsNull(n *IsNull) string
	VisitInList(n *InList) string
	VisitInSubquery(n *InSubquery) string
	VisitBetween(n *Between) string
	VisitBinaryExpr(n *BinaryExpr) string
	VisitUnaryExpr(n *UnaryExpr) string
	VisitCast(n *Cast) string
	VisitCollate(n *Collate) string
	VisitNested(n *Nested) string
	VisitLiteralExpr(n *LiteralExpr) string
	VisitFunctionCall(n *FunctionCall) string
	VisitCaseExpr(n *CaseExpr) string
	VisitSubquery(n *Subquery) string

	// Statements.
	VisitQueryStatement(n *QueryStatement) string
	VisitInsert(n *Insert) string
	VisitCopy(n *Copy) string
	VisitUpdate(n *Update) string
	VisitDelete(n *Delete) string
	VisitCreateDataSource(n *CreateDataSource) string
	VisitCreateDataSink(n *CreateDataSink) string
	VisitCreateView(n *CreateView) string
	VisitCreateTable(n *CreateTable) string
	VisitAlterTable(n *AlterTable) string
	VisitDropTable(n *DropTable) string
	VisitDropDataSource(n *DropDataSource) string
	VisitDropView(n *DropView) string
	VisitPeek(n *Peek) string
	VisitTail(n *Tail) string

	// Query sub-model.
	VisitQuery(n *Query) string
	VisitCte(n *Cte) string
	VisitSelect(n *Select) string
	VisitSetOperation(n *SetOperation) string
	VisitNestedQuery(n *NestedQuery) string
	VisitSelectItem(n *SelectItem) string
	VisitTable(n *Table) string
	VisitDerived(n *Derived) string
	VisitJoin(n *Join) string
	VisitOrderByExpr(n *OrderByExpr) string

	// Window specifications.
	VisitWindowSpec(n *WindowSpec) string
	VisitWindowFrame(n *WindowFrame) string
	VisitWindowFrameBound(n *WindowFrameBound) string

	// Auxiliary clauses.
	VisitObjectName(n ObjectName) string
	VisitColumnDef(n *ColumnDef) string
	VisitAssignment(n *Assignment) string
	VisitWithOption(n *WithOption) string
	VisitRawSchema(n *RawSchema) string
	VisitRegistrySchema(n *RegistrySchema) string
	VisitAddConstraint(n *AddConstraint) string
	VisitRemoveConstraint(n *RemoveConstraint) string

	// Leaf unions.
	VisitValue(n Value) string
	VisitDataType(n DataType) string
	VisitTableKey(n TableKey) string
}

// Uint64 returns a pointer to v. Convenience for the optional length,
// precision, scale, and offset fields.
func Uint64(v uint64) *uint64 { return &v }

// Bool returns a pointer to v. Convenience for OrderByExpr.Asc.
func Bool(v bool) *bool { return &v }

// nodeEqual compares two possibly-nil nodes.
func nodeEqual(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// nodesEqual compares two node slices element-wise.
func nodesEqual[T Node](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func uintPtrEqual(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
