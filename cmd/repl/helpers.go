package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bawdo/streamsql/ast"
)

// sortedTableNames returns registered relation names in sorted order.
func sortedTableNames(tables map[string][]*ast.ColumnDef) []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- AST display helpers ---

// printQuerySummary prints per-clause lines for a query.
func (s *Session) printQuerySummary(q *ast.Query) {
	for _, cte := range q.CTEs {
		_, _ = fmt.Fprintf(s.out, "  WITH:   %s\n", cte.Alias)
	}
	s.printBodySummary(q.Body)
	if len(q.OrderBy) > 0 {
		names := make([]string, len(q.OrderBy))
		for i, o := range q.OrderBy {
			label := nodeSummary(o.Expr)
			if o.Asc != nil {
				if *o.Asc {
					label += " ASC"
				} else {
					label += " DESC"
				}
			}
			names[i] = label
		}
		_, _ = fmt.Fprintf(s.out, "  ORDER:  %s\n", strings.Join(names, ", "))
	}
	if q.Limit != nil {
		_, _ = fmt.Fprintf(s.out, "  LIMIT:  %s\n", nodeSummary(q.Limit))
	}
}

// printBodySummary prints the body clauses, recursing through set operations.
func (s *Session) printBodySummary(body ast.SetExpr) {
	switch b := body.(type) {
	case *ast.Select:
		s.printSelectSummary(b)
	case *ast.SetOperation:
		s.printBodySummary(b.Left)
		label := b.Op.String()
		if b.All {
			label += " ALL"
		}
		_, _ = fmt.Fprintf(s.out, "  %s\n", label)
		s.printBodySummary(b.Right)
	case *ast.NestedQuery:
		s.printQuerySummary(b.Query)
	}
}

func (s *Session) printSelectSummary(sel *ast.Select) {
	if sel.Relation != nil {
		_, _ = fmt.Fprintf(s.out, "  FROM:   %s\n", nodeSummary(sel.Relation))
	}
	if sel.Distinct {
		_, _ = fmt.Fprintln(s.out, "  DISTINCT: true")
	}
	if len(sel.Projection) > 0 {
		names := make([]string, len(sel.Projection))
		for i, p := range sel.Projection {
			names[i] = nodeSummary(p)
		}
		_, _ = fmt.Fprintf(s.out, "  SELECT: %s\n", strings.Join(names, ", "))
	} else {
		_, _ = fmt.Fprintln(s.out, "  SELECT: *")
	}
	for i, j := range sel.Joins {
		label := j.Type.String()
		if j.Natural {
			label = "NATURAL " + label
		}
		_, _ = fmt.Fprintf(s.out, "  JOIN[%d]: %s %s\n", i, label, nodeSummary(j.Relation))
	}
	if sel.Selection != nil {
		_, _ = fmt.Fprintf(s.out, "  WHERE:  %s\n", sel.Selection.Accept(s.render))
	}
	if len(sel.GroupBy) > 0 {
		names := make([]string, len(sel.GroupBy))
		for i, g := range sel.GroupBy {
			names[i] = nodeSummary(g)
		}
		_, _ = fmt.Fprintf(s.out, "  GROUP:  %s\n", strings.Join(names, ", "))
	}
	if sel.Having != nil {
		_, _ = fmt.Fprintf(s.out, "  HAVING: %s\n", sel.Having.Accept(s.render))
	}
}

// printTree writes an indented node tree rooted at n.
func printTree(w io.Writer, n ast.Node, indent string) {
	_, _ = fmt.Fprintf(w, "%s%s\n", indent, treeLabel(n))
	for _, child := range ast.Children(n) {
		printTree(w, child, indent+"  ")
	}
}

// treeLabel returns the node's type name plus a short detail where one helps.
func treeLabel(n ast.Node) string {
	name := typeName(n)
	switch v := n.(type) {
	case *ast.Identifier:
		return name + " " + v.Name
	case *ast.CompoundIdentifier:
		return name + " " + strings.Join(v.Parts, ".")
	case ast.ObjectName:
		return name + " " + strings.Join(v, ".")
	case *ast.ColumnDef:
		return name + " " + v.Name
	case *ast.WithOption:
		return name + " " + v.Name
	case *ast.Cte:
		return name + " " + v.Alias
	case *ast.Table:
		return name + " " + nodeSummary(v)
	case *ast.BinaryExpr:
		return name + " " + v.Op.String()
	case *ast.UnaryExpr:
		return name + " " + v.Op.String()
	case ast.Null:
		return name
	case ast.Value:
		return name + " " + fmt.Sprintf("%v", v)
	}
	return name
}

// typeName strips the pointer and package prefix from a node's type.
func typeName(n ast.Node) string {
	return strings.TrimPrefix(strings.TrimPrefix(fmt.Sprintf("%T", n), "*"), "ast.")
}

// --- Node summary helpers ---

// nodeSummary returns a concise human-readable label for a node.
func nodeSummary(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Table:
		label := strings.Join(v.Name, ".")
		if v.Alias != "" {
			label += " AS " + v.Alias
		}
		return label
	case *ast.Derived:
		if v.Alias != "" {
			return "(subquery) AS " + v.Alias
		}
		return "(subquery)"
	case *ast.Identifier:
		return v.Name
	case *ast.CompoundIdentifier:
		return strings.Join(v.Parts, ".")
	case *ast.Wildcard:
		return "*"
	case *ast.QualifiedWildcard:
		return strings.Join(v.Parts, ".") + ".*"
	case *ast.LiteralExpr:
		if _, ok := v.Value.(ast.Null); ok {
			return "NULL"
		}
		return fmt.Sprintf("%v", v.Value)
	case *ast.FunctionCall:
		return strings.Join(v.Name, ".") + "(...)"
	case *ast.CaseExpr:
		return "CASE...END"
	case *ast.Cast:
		return "CAST(...)"
	case *ast.Nested:
		return "(" + nodeSummary(v.Expr) + ")"
	case *ast.BinaryExpr:
		return nodeSummary(v.Left) + " " + v.Op.String() + " " + nodeSummary(v.Right)
	case *ast.UnaryExpr:
		return v.Op.String() + " " + nodeSummary(v.Expr)
	case *ast.SelectItem:
		if v.Alias != "" {
			return nodeSummary(v.Expr) + " AS " + v.Alias
		}
		return nodeSummary(v.Expr)
	default:
		return typeName(n)
	}
}
