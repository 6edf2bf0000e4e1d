// Package streamsql builds, compares, and renders streaming SQL
// syntax trees.
//
// This package re-exports commonly used types and functions from
// subpackages for convenience. Advanced users can import subpackages
// directly:
//   - github.com/bawdo/streamsql/ast (syntax tree nodes)
//   - github.com/bawdo/streamsql/managers (statement builders)
//   - github.com/bawdo/streamsql/visitors (rendering and export)
//   - github.com/bawdo/streamsql/registry (schema registry client)
package streamsql

import (
	"github.com/bawdo/streamsql/ast"
	"github.com/bawdo/streamsql/managers"
	"github.com/bawdo/streamsql/visitors"
)

// --- Manager Types ---

// SelectManager provides a fluent API for building SELECT queries.
type SelectManager = managers.SelectManager

// InsertManager provides a fluent API for building INSERT statements.
type InsertManager = managers.InsertManager

// UpdateManager provides a fluent API for building UPDATE statements.
type UpdateManager = managers.UpdateManager

// DeleteManager provides a fluent API for building DELETE statements.
type DeleteManager = managers.DeleteManager

// --- Manager Constructors ---

// NewSelect creates a new SelectManager with the given relation as FROM.
func NewSelect(from ast.TableFactor) *managers.SelectManager {
	return managers.NewSelectManager(from)
}

// NewInsert creates a new InsertManager targeting the given table.
func NewInsert(into ast.ObjectName) *managers.InsertManager {
	return managers.NewInsertManager(into)
}

// NewUpdate creates a new UpdateManager targeting the given table.
func NewUpdate(table ast.ObjectName) *managers.UpdateManager {
	return managers.NewUpdateManager(table)
}

// NewDelete creates a new DeleteManager targeting the given table.
func NewDelete(from ast.ObjectName) *managers.DeleteManager {
	return managers.NewDeleteManager(from)
}

// --- Core Node Types ---

// Node is the base interface all AST nodes implement.
type Node = ast.Node

// Expr is the expression union.
type Expr = ast.Expr

// Statement is the top-level statement union.
type Statement = ast.Statement

// Query is a complete query: optional CTEs, a body, ORDER BY, and LIMIT.
type Query = ast.Query

// Table is a named relation reference for FROM and JOIN clauses.
type Table = ast.Table

// ObjectName is a possibly qualified name such as db.schema.obj.
type ObjectName = ast.ObjectName

// Visitor is the double-dispatch interface covering every node variant.
type Visitor = ast.Visitor

// --- Common Node Constructors ---

// NewTable creates an unaliased table reference.
func NewTable(name string) *ast.Table {
	return ast.NewTable(ast.NewObjectName(name), "")
}

// Name builds a possibly qualified object name from its parts.
func Name(parts ...string) ast.ObjectName {
	return ast.NewObjectName(parts...)
}

// Column creates a column reference: a single part becomes a bare
// identifier, several parts a compound one (e.g. table.column).
func Column(parts ...string) ast.Expr {
	if len(parts) == 1 {
		return ast.NewIdentifier(parts[0])
	}
	return ast.NewCompoundIdentifier(parts...)
}

// Literal wraps a Go value in the matching literal expression. It
// panics on unsupported types; see managers.Literal.
func Literal(value any) ast.Expr {
	return managers.Literal(value)
}

// Star creates an unqualified star (*) for SELECT *.
func Star() *ast.Wildcard {
	return ast.NewWildcard()
}

// --- Visitor Types ---

// SQLVisitor renders nodes as canonical SQL text.
type SQLVisitor = visitors.SQLVisitor

// RedactingVisitor renders SQL with every literal value masked.
type RedactingVisitor = visitors.RedactingVisitor

// --- Visitor Constructors ---

// NewSQLVisitor creates a canonical SQL renderer.
func NewSQLVisitor() *visitors.SQLVisitor {
	return visitors.NewSQLVisitor()
}

// NewRedactingVisitor creates a log-safe SQL renderer.
func NewRedactingVisitor() *visitors.RedactingVisitor {
	return visitors.NewRedactingVisitor()
}

// --- Rendering and Hashing ---

// Render returns the canonical SQL text for n.
func Render(n ast.Node) string {
	return visitors.Render(n)
}

// RenderRedacted returns the SQL text for n with literal values
// masked, safe for logs and error reports.
func RenderRedacted(n ast.Node) string {
	return visitors.RenderRedacted(n)
}

// Fingerprint returns a 64-bit structural hash of the tree rooted at
// n. Structurally equal trees produce equal fingerprints.
func Fingerprint(n ast.Node) uint64 {
	return ast.Fingerprint(n)
}

// Dot renders the tree rooted at n as a Graphviz DOT graph.
func Dot(n ast.Node) string {
	return visitors.Dot(n)
}
