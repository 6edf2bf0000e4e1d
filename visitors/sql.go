// Package visitors provides renderers that walk the AST: the canonical
// SQL text generator, a log-safe redacting variant, and Graphviz DOT
// export.
package visitors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/streamsql/ast"
	"github.com/bawdo/streamsql/internal/quoting"
)

// SQLVisitor renders the canonical SQL text for any node. It holds no
// per-render state, so a single instance may render many trees
// concurrently.
type SQLVisitor struct {
	// outer is the concrete visitor. All recursive Accept calls go
	// through outer so that overriding visitors are respected.
	outer ast.Visitor
}

var _ ast.Visitor = (*SQLVisitor)(nil)

// NewSQLVisitor creates a canonical SQL renderer.
func NewSQLVisitor() *SQLVisitor {
	v := &SQLVisitor{}
	v.outer = v
	return v
}

// Render returns the canonical SQL text for n.
func Render(n ast.Node) string {
	return n.Accept(NewSQLVisitor())
}

// commaSeparated renders nodes and joins them with ", ".
func commaSeparated[T ast.Node](v ast.Visitor, nodes []T) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.Accept(v)
	}
	return strings.Join(parts, ", ")
}

func negation(negated bool) string {
	if negated {
		return "NOT "
	}
	return ""
}

// withOptions renders " WITH (...)" or nothing when opts is empty.
func withOptions(v ast.Visitor, opts []*ast.WithOption) string {
	if len(opts) == 0 {
		return ""
	}
	return " WITH (" + commaSeparated(v, opts) + ")"
}

// typeWithOptionalLength renders "<keyword>" or "<keyword>(<n>)".
func typeWithOptionalLength(keyword string, length *uint64) string {
	if length == nil {
		return keyword
	}
	return keyword + "(" + strconv.FormatUint(*length, 10) + ")"
}

// --- Expressions ---

func (v *SQLVisitor) VisitIdentifier(n *ast.Identifier) string { return n.Name }

func (v *SQLVisitor) VisitWildcard(n *ast.Wildcard) string { return "*" }

func (v *SQLVisitor) VisitQualifiedWildcard(n *ast.QualifiedWildcard) string {
	return strings.Join(n.Parts, ".") + ".*"
}

func (v *SQLVisitor) VisitCompoundIdentifier(n *ast.CompoundIdentifier) string {
	return strings.Join(n.Parts, ".")
}

func (v *SQLVisitor) VisitIsNull(n *ast.IsNull) string {
	if n.Negated {
		return n.Expr.Accept(v.outer) + " IS NOT NULL"
	}
	return n.Expr.Accept(v.outer) + " IS NULL"
}

func (v *SQLVisitor) VisitInList(n *ast.InList) string {
	return n.Expr.Accept(v.outer) + " " + negation(n.Negated) +
		"IN (" + commaSeparated(v.outer, n.List) + ")"
}

func (v *SQLVisitor) VisitInSubquery(n *ast.InSubquery) string {
	return n.Expr.Accept(v.outer) + " " + negation(n.Negated) +
		"IN (" + n.Subquery.Accept(v.outer) + ")"
}

func (v *SQLVisitor) VisitBetween(n *ast.Between) string {
	return n.Expr.Accept(v.outer) + " " + negation(n.Negated) +
		"BETWEEN " + n.Low.Accept(v.outer) + " AND " + n.High.Accept(v.outer)
}

func (v *SQLVisitor) VisitBinaryExpr(n *ast.BinaryExpr) string {
	return n.Left.Accept(v.outer) + " " + n.Op.String() + " " + n.Right.Accept(v.outer)
}

func (v *SQLVisitor) VisitUnaryExpr(n *ast.UnaryExpr) string {
	return n.Op.String() + " " + n.Expr.Accept(v.outer)
}

func (v *SQLVisitor) VisitCast(n *ast.Cast) string {
	return "CAST(" + n.Expr.Accept(v.outer) + " AS " + n.Type.Accept(v.outer) + ")"
}

func (v *SQLVisitor) VisitCollate(n *ast.Collate) string {
	return n.Expr.Accept(v.outer) + " COLLATE " + n.Collation.Accept(v.outer)
}

func (v *SQLVisitor) VisitNested(n *ast.Nested) string {
	return "(" + n.Expr.Accept(v.outer) + ")"
}

func (v *SQLVisitor) VisitLiteralExpr(n *ast.LiteralExpr) string {
	return n.Value.Accept(v.outer)
}

func (v *SQLVisitor) VisitFunctionCall(n *ast.FunctionCall) string {
	var sb strings.Builder
	sb.WriteString(n.Name.Accept(v.outer))
	sb.WriteString("(")
	if n.All {
		sb.WriteString("ALL ")
	}
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(commaSeparated(v.outer, n.Args))
	sb.WriteString(")")
	if n.Over != nil {
		sb.WriteString(" OVER (")
		sb.WriteString(n.Over.Accept(v.outer))
		sb.WriteString(")")
	}
	return sb.String()
}

func (v *SQLVisitor) VisitCaseExpr(n *ast.CaseExpr) string {
	var sb strings.Builder
	sb.WriteString("CASE")
	if n.Operand != nil {
		sb.WriteString(" ")
		sb.WriteString(n.Operand.Accept(v.outer))
	}
	// Conditions zip with results; extra conditions are dropped.
	for i, c := range n.Conditions {
		if i >= len(n.Results) {
			break
		}
		sb.WriteString(" WHEN ")
		sb.WriteString(c.Accept(v.outer))
		sb.WriteString(" THEN ")
		sb.WriteString(n.Results[i].Accept(v.outer))
	}
	if n.ElseResult != nil {
		sb.WriteString(" ELSE ")
		sb.WriteString(n.ElseResult.Accept(v.outer))
	}
	sb.WriteString(" END")
	return sb.String()
}

func (v *SQLVisitor) VisitSubquery(n *ast.Subquery) string {
	return "(" + n.Query.Accept(v.outer) + ")"
}

// --- Statements ---

func (v *SQLVisitor) VisitQueryStatement(n *ast.QueryStatement) string {
	return n.Query.Accept(v.outer)
}

func (v *SQLVisitor) VisitInsert(n *ast.Insert) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(n.TableName.Accept(v.outer))
	if len(n.Columns) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(n.Columns, ", "))
		sb.WriteString(")")
	}
	if len(n.Values) > 0 {
		// All rows share a single VALUES group.
		rows := make([]string, len(n.Values))
		for i, row := range n.Values {
			rows[i] = commaSeparated(v.outer, row)
		}
		sb.WriteString(" VALUES(")
		sb.WriteString(strings.Join(rows, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

func (v *SQLVisitor) VisitCopy(n *ast.Copy) string {
	var sb strings.Builder
	sb.WriteString("COPY ")
	sb.WriteString(n.TableName.Accept(v.outer))
	if len(n.Columns) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(n.Columns, ", "))
		sb.WriteString(")")
	}
	sb.WriteString(" FROM stdin; ")
	if len(n.Values) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(copyValues(n.Values), "\t"))
	}
	sb.WriteString("\n\\.")
	return sb.String()
}

// copyValues maps COPY data scalars to their text, nil to the \N null
// marker.
func copyValues(values []*string) []string {
	out := make([]string, len(values))
	for i, val := range values {
		if val == nil {
			out[i] = "\\N"
		} else {
			out[i] = *val
		}
	}
	return out
}

func (v *SQLVisitor) VisitUpdate(n *ast.Update) string {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(n.TableName.Accept(v.outer))
	if len(n.Assignments) > 0 {
		// The assignment list joins directly onto the table name with
		// no separating space; each assignment carries its own SET.
		sb.WriteString(commaSeparated(v.outer, n.Assignments))
	}
	if n.Selection != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(n.Selection.Accept(v.outer))
	}
	return sb.String()
}

func (v *SQLVisitor) VisitDelete(n *ast.Delete) string {
	s := "DELETE FROM " + n.TableName.Accept(v.outer)
	if n.Selection != nil {
		s += " WHERE " + n.Selection.Accept(v.outer)
	}
	return s
}

func (v *SQLVisitor) VisitCreateDataSource(n *ast.CreateDataSource) string {
	return "CREATE DATA SOURCE " + n.Name.Accept(v.outer) +
		" FROM " + quoting.SingleQuote(n.URL) +
		" USING SCHEMA " + n.Schema.Accept(v.outer) +
		withOptions(v.outer, n.WithOptions)
}

func (v *SQLVisitor) VisitCreateDataSink(n *ast.CreateDataSink) string {
	return "CREATE DATA SINK " + n.Name.Accept(v.outer) +
		" FROM " + n.From.Accept(v.outer) +
		" INTO " + quoting.SingleQuote(n.URL) +
		withOptions(v.outer, n.WithOptions)
}

func (v *SQLVisitor) VisitCreateView(n *ast.CreateView) string {
	var sb strings.Builder
	sb.WriteString("CREATE")
	if n.Materialized {
		sb.WriteString(" MATERIALIZED")
	}
	sb.WriteString(" VIEW ")
	sb.WriteString(n.Name.Accept(v.outer))
	sb.WriteString(withOptions(v.outer, n.WithOptions))
	sb.WriteString(" AS ")
	sb.WriteString(n.Query.Accept(v.outer))
	return sb.String()
}

func (v *SQLVisitor) VisitCreateTable(n *ast.CreateTable) string {
	if n.External {
		if n.FileFormat == nil {
			panic("streamsql: external table requires a file format")
		}
		if n.Location == nil {
			panic("streamsql: external table requires a location")
		}
		// The external form drops any WITH options; the location is
		// spliced in verbatim, unescaped.
		return "CREATE EXTERNAL TABLE " + n.Name.Accept(v.outer) +
			" (" + commaSeparated(v.outer, n.Columns) + ")" +
			" STORED AS " + n.FileFormat.String() +
			" LOCATION '" + *n.Location + "'"
	}
	return "CREATE TABLE " + n.Name.Accept(v.outer) +
		" (" + commaSeparated(v.outer, n.Columns) + ")" +
		withOptions(v.outer, n.WithOptions)
}

func (v *SQLVisitor) VisitAlterTable(n *ast.AlterTable) string {
	return "ALTER TABLE " + n.Name.Accept(v.outer) + " " + n.Operation.Accept(v.outer)
}

// dropToSQL renders the shared DROP clause for a given object type
// keyword.
func (v *SQLVisitor) dropToSQL(objectType string, d ast.Drop) string {
	var sb strings.Builder
	sb.WriteString("DROP ")
	sb.WriteString(objectType)
	if d.IfExists {
		sb.WriteString(" IF EXISTS")
	}
	sb.WriteString(" ")
	sb.WriteString(commaSeparated(v.outer, d.Names))
	if d.Cascade {
		sb.WriteString(" CASCADE")
	}
	if d.Restrict {
		sb.WriteString(" RESTRICT")
	}
	return sb.String()
}

func (v *SQLVisitor) VisitDropTable(n *ast.DropTable) string {
	return v.dropToSQL("TABLE", n.Drop)
}

func (v *SQLVisitor) VisitDropDataSource(n *ast.DropDataSource) string {
	return v.dropToSQL("DATA SOURCE", n.Drop)
}

func (v *SQLVisitor) VisitDropView(n *ast.DropView) string {
	return v.dropToSQL("VIEW", n.Drop)
}

func (v *SQLVisitor) VisitPeek(n *ast.Peek) string {
	return "PEEK " + n.Name.Accept(v.outer)
}

func (v *SQLVisitor) VisitTail(n *ast.Tail) string {
	return "TAIL " + n.Name.Accept(v.outer)
}

// --- Query sub-model ---

func (v *SQLVisitor) VisitQuery(n *ast.Query) string {
	var sb strings.Builder
	if len(n.CTEs) > 0 {
		sb.WriteString("WITH ")
		sb.WriteString(commaSeparated(v.outer, n.CTEs))
		sb.WriteString(" ")
	}
	sb.WriteString(n.Body.Accept(v.outer))
	if len(n.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(commaSeparated(v.outer, n.OrderBy))
	}
	if n.Limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(n.Limit.Accept(v.outer))
	}
	return sb.String()
}

func (v *SQLVisitor) VisitCte(n *ast.Cte) string {
	return n.Alias + " AS (" + n.Query.Accept(v.outer) + ")"
}

func (v *SQLVisitor) VisitSelect(n *ast.Select) string {
	var sb strings.Builder
	sb.WriteString("SELECT")
	if n.Distinct {
		sb.WriteString(" DISTINCT")
	}
	sb.WriteString(" ")
	sb.WriteString(commaSeparated(v.outer, n.Projection))
	if n.Relation != nil {
		sb.WriteString(" FROM ")
		sb.WriteString(n.Relation.Accept(v.outer))
	}
	for _, join := range n.Joins {
		sb.WriteString(join.Accept(v.outer))
	}
	if n.Selection != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(n.Selection.Accept(v.outer))
	}
	if len(n.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(commaSeparated(v.outer, n.GroupBy))
	}
	if n.Having != nil {
		sb.WriteString(" HAVING ")
		sb.WriteString(n.Having.Accept(v.outer))
	}
	return sb.String()
}

func (v *SQLVisitor) VisitSetOperation(n *ast.SetOperation) string {
	s := n.Left.Accept(v.outer) + " " + n.Op.String()
	if n.All {
		s += " ALL"
	}
	return s + " " + n.Right.Accept(v.outer)
}

func (v *SQLVisitor) VisitNestedQuery(n *ast.NestedQuery) string {
	return "(" + n.Query.Accept(v.outer) + ")"
}

func (v *SQLVisitor) VisitSelectItem(n *ast.SelectItem) string {
	s := n.Expr.Accept(v.outer)
	if n.Alias != "" {
		s += " AS " + n.Alias
	}
	return s
}

func (v *SQLVisitor) VisitTable(n *ast.Table) string {
	s := n.Name.Accept(v.outer)
	if n.Alias != "" {
		s += " AS " + n.Alias
	}
	return s
}

func (v *SQLVisitor) VisitDerived(n *ast.Derived) string {
	s := "(" + n.Subquery.Accept(v.outer) + ")"
	if n.Alias != "" {
		s += " AS " + n.Alias
	}
	return s
}

// VisitJoin renders a join with its own leading separator so that joins
// concatenate directly onto the FROM clause.
func (v *SQLVisitor) VisitJoin(n *ast.Join) string {
	switch n.Type {
	case ast.ImplicitJoin:
		return ", " + n.Relation.Accept(v.outer)
	case ast.CrossJoin:
		return " CROSS JOIN " + n.Relation.Accept(v.outer)
	}
	var sb strings.Builder
	sb.WriteString(" ")
	if n.Natural {
		sb.WriteString("NATURAL ")
	}
	sb.WriteString(n.Type.String())
	sb.WriteString(" ")
	sb.WriteString(n.Relation.Accept(v.outer))
	if n.On != nil {
		sb.WriteString(" ON ")
		sb.WriteString(n.On.Accept(v.outer))
	} else if len(n.Using) > 0 {
		sb.WriteString(" USING(")
		sb.WriteString(strings.Join(n.Using, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

func (v *SQLVisitor) VisitOrderByExpr(n *ast.OrderByExpr) string {
	s := n.Expr.Accept(v.outer)
	switch {
	case n.Asc == nil:
		return s
	case *n.Asc:
		return s + " ASC"
	default:
		return s + " DESC"
	}
}

// --- Window specifications ---

func (v *SQLVisitor) VisitWindowSpec(n *ast.WindowSpec) string {
	var clauses []string
	if len(n.PartitionBy) > 0 {
		clauses = append(clauses, "PARTITION BY "+commaSeparated(v.outer, n.PartitionBy))
	}
	if len(n.OrderBy) > 0 {
		clauses = append(clauses, "ORDER BY "+commaSeparated(v.outer, n.OrderBy))
	}
	if n.Frame != nil {
		clauses = append(clauses, n.Frame.Accept(v.outer))
	}
	return strings.Join(clauses, " ")
}

func (v *SQLVisitor) VisitWindowFrame(n *ast.WindowFrame) string {
	if n.EndBound != nil {
		return n.Units.String() + " BETWEEN " + n.StartBound.Accept(v.outer) +
			" AND " + n.EndBound.Accept(v.outer)
	}
	return n.Units.String() + " " + n.StartBound.Accept(v.outer)
}

func (v *SQLVisitor) VisitWindowFrameBound(n *ast.WindowFrameBound) string {
	switch n.Type {
	case ast.BoundCurrentRow:
		return "CURRENT ROW"
	case ast.BoundPreceding:
		if n.Offset == nil {
			return "UNBOUNDED PRECEDING"
		}
		return strconv.FormatUint(*n.Offset, 10) + " PRECEDING"
	default:
		if n.Offset == nil {
			return "UNBOUNDED FOLLOWING"
		}
		return strconv.FormatUint(*n.Offset, 10) + " FOLLOWING"
	}
}

// --- Auxiliary clauses ---

func (v *SQLVisitor) VisitObjectName(n ast.ObjectName) string {
	return strings.Join(n, ".")
}

func (v *SQLVisitor) VisitColumnDef(n *ast.ColumnDef) string {
	var sb strings.Builder
	sb.WriteString(n.Name)
	sb.WriteString(" ")
	sb.WriteString(n.Type.Accept(v.outer))
	if n.Primary {
		sb.WriteString(" PRIMARY KEY")
	}
	if n.Unique {
		sb.WriteString(" UNIQUE")
	}
	if n.Default != nil {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(n.Default.Accept(v.outer))
	}
	if !n.AllowNull {
		sb.WriteString(" NOT NULL")
	}
	return sb.String()
}

func (v *SQLVisitor) VisitAssignment(n *ast.Assignment) string {
	return "SET " + n.ID + " = " + n.Value.Accept(v.outer)
}

func (v *SQLVisitor) VisitWithOption(n *ast.WithOption) string {
	return n.Name + " = " + n.Value.Accept(v.outer)
}

func (v *SQLVisitor) VisitRawSchema(n *ast.RawSchema) string {
	return quoting.SingleQuote(n.Schema)
}

func (v *SQLVisitor) VisitRegistrySchema(n *ast.RegistrySchema) string {
	return "REGISTRY " + quoting.SingleQuote(n.URL)
}

func (v *SQLVisitor) VisitAddConstraint(n *ast.AddConstraint) string {
	return "ADD CONSTRAINT " + n.Constraint.Accept(v.outer)
}

func (v *SQLVisitor) VisitRemoveConstraint(n *ast.RemoveConstraint) string {
	return "REMOVE CONSTRAINT " + n.Name
}

// --- Leaf unions ---

func (v *SQLVisitor) VisitValue(n ast.Value) string {
	switch n := n.(type) {
	case ast.Long:
		return strconv.FormatUint(uint64(n), 10)
	case ast.Double:
		return strconv.FormatFloat(float64(n), 'f', -1, 64)
	case ast.SingleQuotedString:
		return quoting.SingleQuote(string(n))
	case ast.NationalString:
		return "N'" + string(n) + "'"
	case ast.Boolean:
		if n {
			return "true"
		}
		return "false"
	case ast.Date:
		return string(n)
	case ast.Time:
		return string(n)
	case ast.Timestamp:
		return string(n)
	case ast.Null:
		return "NULL"
	}
	panic(fmt.Sprintf("streamsql: unhandled value type %T", n))
}

func (v *SQLVisitor) VisitDataType(n ast.DataType) string {
	switch n := n.(type) {
	case *ast.CharType:
		return typeWithOptionalLength("char", n.Length)
	case *ast.VarcharType:
		return typeWithOptionalLength("character varying", n.Length)
	case *ast.ClobType:
		return "clob(" + strconv.FormatUint(n.Length, 10) + ")"
	case *ast.BinaryType:
		return "binary(" + strconv.FormatUint(n.Length, 10) + ")"
	case *ast.VarbinaryType:
		return "varbinary(" + strconv.FormatUint(n.Length, 10) + ")"
	case *ast.BlobType:
		return "blob(" + strconv.FormatUint(n.Length, 10) + ")"
	case *ast.DecimalType:
		if n.Scale != nil {
			if n.Precision == nil {
				panic("streamsql: decimal scale requires a precision")
			}
			return "numeric(" + strconv.FormatUint(*n.Precision, 10) + "," +
				strconv.FormatUint(*n.Scale, 10) + ")"
		}
		return typeWithOptionalLength("numeric", n.Precision)
	case *ast.FloatType:
		return typeWithOptionalLength("float", n.Length)
	case *ast.SimpleType:
		return n.Kind.String()
	case *ast.CustomType:
		return n.Name.Accept(v.outer)
	case *ast.ArrayType:
		return n.Element.Accept(v.outer) + "[]"
	}
	panic(fmt.Sprintf("streamsql: unhandled data type %T", n))
}

// keyToSQL renders the shared "<name> <keyword> (<columns>)" form.
func keyToSQL(key ast.Key, keyword string) string {
	return key.Name + " " + keyword + " (" + strings.Join(key.Columns, ", ") + ")"
}

func (v *SQLVisitor) VisitTableKey(n ast.TableKey) string {
	switch n := n.(type) {
	case *ast.PrimaryKeyConstraint:
		return keyToSQL(n.Key, "PRIMARY KEY")
	case *ast.UniqueKeyConstraint:
		return keyToSQL(n.Key, "UNIQUE KEY")
	case *ast.KeyConstraint:
		return keyToSQL(n.Key, "KEY")
	case *ast.ForeignKeyConstraint:
		return keyToSQL(n.Key, "FOREIGN KEY") + " REFERENCES " +
			n.ForeignTable.Accept(v.outer) + "(" + strings.Join(n.ReferredColumns, ", ") + ")"
	}
	panic(fmt.Sprintf("streamsql: unhandled table key type %T", n))
}
