package visitors

import (
	"fmt"
	"strings"

	"github.com/bawdo/streamsql/ast"
)

// Color constants for DOT node categories.
const (
	colorRelation   = "#6CA6CD" // blue — statements, queries, relations
	colorIdentifier = "#B0D4E8" // light blue — identifiers, wildcards, names
	colorPredicate  = "#FFB347" // orange — comparisons, predicates
	colorLogical    = "#FFEB80" // yellow — logical operators, grouping, CASE
	colorLiteral    = "#D3D3D3" // grey — literal values, types, schemas
	colorJoin       = "#77DD77" // green — joins
	colorOrdering   = "#CDA0E0" // purple — ordering
	colorDML        = "#FF6961" // red — DML statements, assignments
	colorArithmetic = "#98FB98" // mint green — arithmetic operators
	colorFunction   = "#87CEEB" // sky blue — functions, windows, casts
)

// dotNode represents a single node in the DOT graph.
type dotNode struct {
	id    string
	label string
	color string
}

// dotEdge represents a directed edge between two nodes in the DOT graph.
type dotEdge struct {
	from string
	to   string
}

// DotExporter accumulates a Graphviz DOT rendering of one or more trees.
type DotExporter struct {
	nextID int
	nodes  []dotNode
	edges  []dotEdge
}

// NewDotExporter creates a DotExporter ready to walk a tree.
func NewDotExporter() *DotExporter {
	return &DotExporter{}
}

// Dot renders the tree rooted at n as a complete Graphviz DOT graph.
func Dot(n ast.Node) string {
	e := NewDotExporter()
	e.Add(n)
	return e.ToDot()
}

// Add walks the tree rooted at n, recording a graph node per AST node
// and an edge per ownership link. It returns the DOT id assigned to n.
func (e *DotExporter) Add(n ast.Node) string {
	label, color := describe(n)
	id := e.addNode(label, color)
	for _, child := range ast.Children(n) {
		e.edges = append(e.edges, dotEdge{from: id, to: e.Add(child)})
	}
	return id
}

// addNode creates a new DOT node with the given label and color, returning its ID.
func (e *DotExporter) addNode(label, color string) string {
	id := fmt.Sprintf("n%d", e.nextID)
	e.nextID++
	e.nodes = append(e.nodes, dotNode{id: id, label: label, color: color})
	return id
}

// ToDot generates the complete DOT graph text.
func (e *DotExporter) ToDot() string {
	var sb strings.Builder

	sb.WriteString("digraph AST {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")

	for _, n := range e.nodes {
		sb.WriteString(fmt.Sprintf("  %s [label=\"%s\", fillcolor=\"%s\"];\n",
			n.id, escapeLabel(n.label), n.color))
	}
	for _, edge := range e.edges {
		sb.WriteString(fmt.Sprintf("  %s -> %s;\n", edge.from, edge.to))
	}

	sb.WriteString("}\n")
	return sb.String()
}

// escapeLabel escapes double quotes in DOT labels.
// Backslash sequences like \n are intentional DOT line breaks and are preserved.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

func operatorColor(op ast.Operator) string {
	switch op {
	case ast.OpPlus, ast.OpMinus, ast.OpMultiply, ast.OpDivide, ast.OpModulus:
		return colorArithmetic
	case ast.OpAnd, ast.OpOr, ast.OpNot:
		return colorLogical
	default:
		return colorPredicate
	}
}

// describe maps a node to its DOT label and fill color. Container nodes
// carry bare kind labels and let their children supply the detail; leaf
// nodes carry their content in the label.
func describe(n ast.Node) (string, string) {
	switch n := n.(type) {
	case *ast.Identifier:
		return "Identifier\\n" + n.Name, colorIdentifier
	case *ast.Wildcard:
		return "Wildcard\\n*", colorIdentifier
	case *ast.QualifiedWildcard:
		return "Wildcard\\n" + strings.Join(n.Parts, ".") + ".*", colorIdentifier
	case *ast.CompoundIdentifier:
		return "Identifier\\n" + strings.Join(n.Parts, "."), colorIdentifier
	case *ast.IsNull:
		if n.Negated {
			return "IS NOT NULL", colorPredicate
		}
		return "IS NULL", colorPredicate
	case *ast.InList, *ast.InSubquery:
		if negatedIn(n) {
			return "NOT IN", colorPredicate
		}
		return "IN", colorPredicate
	case *ast.Between:
		if n.Negated {
			return "NOT BETWEEN", colorPredicate
		}
		return "BETWEEN", colorPredicate
	case *ast.BinaryExpr:
		return "Binary\\n" + n.Op.String(), operatorColor(n.Op)
	case *ast.UnaryExpr:
		return "Unary\\n" + n.Op.String(), operatorColor(n.Op)
	case *ast.Cast:
		return "CAST", colorFunction
	case *ast.Collate:
		return "COLLATE", colorFunction
	case *ast.Nested:
		return "Nested\\n( )", colorLogical
	case *ast.LiteralExpr:
		return "Literal", colorLiteral
	case *ast.FunctionCall:
		label := "Function\\n" + strings.Join(n.Name, ".")
		if n.Distinct {
			label += "\\nDISTINCT"
		}
		return label, colorFunction
	case *ast.CaseExpr:
		return "CASE", colorLogical
	case *ast.Subquery:
		return "Subquery", colorRelation

	case *ast.QueryStatement:
		return "QueryStatement", colorRelation
	case *ast.Insert:
		return "Insert", colorDML
	case *ast.Copy:
		return "Copy", colorDML
	case *ast.Update:
		return "Update", colorDML
	case *ast.Delete:
		return "Delete", colorDML
	case *ast.CreateDataSource:
		return "CreateDataSource", colorRelation
	case *ast.CreateDataSink:
		return "CreateDataSink", colorRelation
	case *ast.CreateView:
		if n.Materialized {
			return "CreateView\\n(MATERIALIZED)", colorRelation
		}
		return "CreateView", colorRelation
	case *ast.CreateTable:
		if n.External {
			return "CreateTable\\n(EXTERNAL)", colorRelation
		}
		return "CreateTable", colorRelation
	case *ast.AlterTable:
		return "AlterTable", colorRelation
	case *ast.DropTable:
		return dropLabel("DropTable", n.Drop), colorRelation
	case *ast.DropDataSource:
		return dropLabel("DropDataSource", n.Drop), colorRelation
	case *ast.DropView:
		return dropLabel("DropView", n.Drop), colorRelation
	case *ast.Peek:
		return "PEEK", colorRelation
	case *ast.Tail:
		return "TAIL", colorRelation

	case *ast.Query:
		return "Query", colorRelation
	case *ast.Cte:
		return "CTE\\n" + n.Alias, colorRelation
	case *ast.Select:
		if n.Distinct {
			return "Select\\nDISTINCT", colorRelation
		}
		return "Select", colorRelation
	case *ast.SetOperation:
		label := n.Op.String()
		if n.All {
			label += "\\nALL"
		}
		return label, colorLogical
	case *ast.NestedQuery:
		return "NestedQuery\\n( )", colorLogical
	case *ast.SelectItem:
		if n.Alias != "" {
			return "SelectItem\\nAS " + n.Alias, colorIdentifier
		}
		return "SelectItem", colorIdentifier
	case *ast.Table:
		if n.Alias != "" {
			return "Table\\nAS " + n.Alias, colorRelation
		}
		return "Table", colorRelation
	case *ast.Derived:
		if n.Alias != "" {
			return "Derived\\nAS " + n.Alias, colorRelation
		}
		return "Derived", colorRelation
	case *ast.Join:
		label := "Join\\n" + n.Type.String()
		if n.Natural {
			label += "\\nNATURAL"
		}
		if len(n.Using) > 0 {
			label += "\\nUSING(" + strings.Join(n.Using, ", ") + ")"
		}
		return label, colorJoin
	case *ast.OrderByExpr:
		switch {
		case n.Asc == nil:
			return "Order", colorOrdering
		case *n.Asc:
			return "Order\\nASC", colorOrdering
		default:
			return "Order\\nDESC", colorOrdering
		}

	case *ast.WindowSpec:
		return "Window", colorFunction
	case *ast.WindowFrame:
		return "Frame\\n" + n.Units.String(), colorFunction
	case *ast.WindowFrameBound:
		return "Bound\\n" + Render(n), colorFunction

	case ast.ObjectName:
		return "Name\\n" + strings.Join(n, "."), colorIdentifier
	case *ast.ColumnDef:
		return "Column\\n" + n.Name, colorIdentifier
	case *ast.Assignment:
		return "Assignment\\n" + n.ID, colorDML
	case *ast.WithOption:
		return "Option\\n" + n.Name, colorLiteral
	case *ast.RawSchema:
		return "RawSchema", colorLiteral
	case *ast.RegistrySchema:
		return "Registry\\n" + n.URL, colorLiteral
	case *ast.AddConstraint:
		return "ADD CONSTRAINT", colorRelation
	case *ast.RemoveConstraint:
		return "REMOVE CONSTRAINT\\n" + n.Name, colorRelation
	case *ast.PrimaryKeyConstraint:
		return "PRIMARY KEY\\n" + n.Name, colorRelation
	case *ast.UniqueKeyConstraint:
		return "UNIQUE KEY\\n" + n.Name, colorRelation
	case *ast.KeyConstraint:
		return "KEY\\n" + n.Name, colorRelation
	case *ast.ForeignKeyConstraint:
		return "FOREIGN KEY\\n" + n.Name, colorRelation

	case ast.Long, ast.Double, ast.SingleQuotedString, ast.NationalString,
		ast.Boolean, ast.Date, ast.Time, ast.Timestamp, ast.Null:
		return "Literal\\n" + Render(n), colorLiteral

	case ast.DataType:
		return "Type\\n" + Render(n), colorLiteral
	}
	panic(fmt.Sprintf("streamsql: unexpected node type %T", n))
}

func negatedIn(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.InList:
		return n.Negated
	case *ast.InSubquery:
		return n.Negated
	}
	return false
}

func dropLabel(kind string, d ast.Drop) string {
	if d.IfExists {
		return kind + "\\n(IF EXISTS)"
	}
	return kind
}
