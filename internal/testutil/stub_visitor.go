// Package testutil provides shared test helpers for the streamsql project.
package testutil

import "github.com/bawdo/streamsql/ast"

// StubVisitor implements ast.Visitor with minimal return values for testing.
// Methods return meaningful short strings to aid in test assertions.
type StubVisitor struct{}

var _ ast.Visitor = StubVisitor{}

func (sv StubVisitor) VisitIdentifier(n *ast.Identifier) string { return n.Name }
func (sv StubVisitor) VisitWildcard(n *ast.Wildcard) string     { return "*" }
func (sv StubVisitor) VisitQualifiedWildcard(n *ast.QualifiedWildcard) string {
	return "qualified_wildcard"
}
func (sv StubVisitor) VisitCompoundIdentifier(n *ast.CompoundIdentifier) string {
	return "compound_identifier"
}
func (sv StubVisitor) VisitIsNull(n *ast.IsNull) string           { return "is_null" }
func (sv StubVisitor) VisitInList(n *ast.InList) string           { return "in_list" }
func (sv StubVisitor) VisitInSubquery(n *ast.InSubquery) string   { return "in_subquery" }
func (sv StubVisitor) VisitBetween(n *ast.Between) string         { return "between" }
func (sv StubVisitor) VisitBinaryExpr(n *ast.BinaryExpr) string {
	return n.Left.Accept(sv) + "?" + n.Right.Accept(sv)
}
func (sv StubVisitor) VisitUnaryExpr(n *ast.UnaryExpr) string     { return "unary" }
func (sv StubVisitor) VisitCast(n *ast.Cast) string               { return "cast" }
func (sv StubVisitor) VisitCollate(n *ast.Collate) string         { return "collate" }
func (sv StubVisitor) VisitNested(n *ast.Nested) string           { return "nested" }
func (sv StubVisitor) VisitLiteralExpr(n *ast.LiteralExpr) string { return "literal" }
func (sv StubVisitor) VisitFunctionCall(n *ast.FunctionCall) string {
	return "function"
}
func (sv StubVisitor) VisitCaseExpr(n *ast.CaseExpr) string { return "case" }
func (sv StubVisitor) VisitSubquery(n *ast.Subquery) string { return "subquery" }

func (sv StubVisitor) VisitQueryStatement(n *ast.QueryStatement) string { return "query_stmt" }
func (sv StubVisitor) VisitInsert(n *ast.Insert) string                 { return "insert" }
func (sv StubVisitor) VisitCopy(n *ast.Copy) string                     { return "copy" }
func (sv StubVisitor) VisitUpdate(n *ast.Update) string                 { return "update" }
func (sv StubVisitor) VisitDelete(n *ast.Delete) string                 { return "delete" }
func (sv StubVisitor) VisitCreateDataSource(n *ast.CreateDataSource) string {
	return "create_source"
}
func (sv StubVisitor) VisitCreateDataSink(n *ast.CreateDataSink) string { return "create_sink" }
func (sv StubVisitor) VisitCreateView(n *ast.CreateView) string         { return "create_view" }
func (sv StubVisitor) VisitCreateTable(n *ast.CreateTable) string       { return "create_table" }
func (sv StubVisitor) VisitAlterTable(n *ast.AlterTable) string         { return "alter_table" }
func (sv StubVisitor) VisitDropTable(n *ast.DropTable) string           { return "drop_table" }
func (sv StubVisitor) VisitDropDataSource(n *ast.DropDataSource) string { return "drop_source" }
func (sv StubVisitor) VisitDropView(n *ast.DropView) string             { return "drop_view" }
func (sv StubVisitor) VisitPeek(n *ast.Peek) string                     { return "peek" }
func (sv StubVisitor) VisitTail(n *ast.Tail) string                     { return "tail" }

func (sv StubVisitor) VisitQuery(n *ast.Query) string               { return "query" }
func (sv StubVisitor) VisitCte(n *ast.Cte) string                   { return "cte" }
func (sv StubVisitor) VisitSelect(n *ast.Select) string             { return "select" }
func (sv StubVisitor) VisitSetOperation(n *ast.SetOperation) string { return "set_op" }
func (sv StubVisitor) VisitNestedQuery(n *ast.NestedQuery) string   { return "nested_query" }
func (sv StubVisitor) VisitSelectItem(n *ast.SelectItem) string     { return "select_item" }
func (sv StubVisitor) VisitTable(n *ast.Table) string               { return "table" }
func (sv StubVisitor) VisitDerived(n *ast.Derived) string           { return "derived" }
func (sv StubVisitor) VisitJoin(n *ast.Join) string                 { return "join" }
func (sv StubVisitor) VisitOrderByExpr(n *ast.OrderByExpr) string   { return "order_by" }

func (sv StubVisitor) VisitWindowSpec(n *ast.WindowSpec) string             { return "window_spec" }
func (sv StubVisitor) VisitWindowFrame(n *ast.WindowFrame) string           { return "window_frame" }
func (sv StubVisitor) VisitWindowFrameBound(n *ast.WindowFrameBound) string { return "frame_bound" }

func (sv StubVisitor) VisitObjectName(n ast.ObjectName) string { return "object_name" }
func (sv StubVisitor) VisitColumnDef(n *ast.ColumnDef) string  { return "column_def" }
func (sv StubVisitor) VisitAssignment(n *ast.Assignment) string {
	return "assign"
}
func (sv StubVisitor) VisitWithOption(n *ast.WithOption) string { return "with_option" }
func (sv StubVisitor) VisitRawSchema(n *ast.RawSchema) string   { return "raw_schema" }
func (sv StubVisitor) VisitRegistrySchema(n *ast.RegistrySchema) string {
	return "registry_schema"
}
func (sv StubVisitor) VisitAddConstraint(n *ast.AddConstraint) string { return "add_constraint" }
func (sv StubVisitor) VisitRemoveConstraint(n *ast.RemoveConstraint) string {
	return "remove_constraint"
}

func (sv StubVisitor) VisitValue(n ast.Value) string       { return "value" }
func (sv StubVisitor) VisitDataType(n ast.DataType) string { return "data_type" }
func (sv StubVisitor) VisitTableKey(n ast.TableKey) string { return "table_key" }
