package streamsql_test

import (
	"strings"
	"testing"

	"github.com/bawdo/streamsql"
	"github.com/bawdo/streamsql/ast"
)

// TestSimpleImportStyle demonstrates using the convenience package
func TestSimpleImportStyle(t *testing.T) {
	users := streamsql.NewTable("users")

	query := streamsql.NewSelect(users).
		Select(streamsql.Column("users", "id"), streamsql.Column("users", "name")).
		Where(ast.NewBinaryExpr(streamsql.Column("users", "active"), ast.OpEq, streamsql.Literal(true))).
		OrderAsc(streamsql.Column("users", "name")).
		Limit(10)

	sql := query.ToSQL(streamsql.NewSQLVisitor())

	expected := `SELECT users.id, users.name FROM users WHERE users.active = true ORDER BY users.name ASC LIMIT 10`
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
}

// TestAggregateFunctions demonstrates aggregates with GROUP BY
func TestAggregateFunctions(t *testing.T) {
	count := ast.NewFunctionCall(streamsql.Name("count"), []ast.Expr{streamsql.Star()}, nil, false, false)
	avg := ast.NewFunctionCall(streamsql.Name("avg"), []ast.Expr{streamsql.Column("reading")}, nil, false, false)

	query := streamsql.NewSelect(streamsql.NewTable("readings")).
		Select(streamsql.Column("region")).
		SelectAs(count, "total").
		SelectAs(avg, "avg_reading").
		Group(streamsql.Column("region"))

	sql := streamsql.Render(query.Query())

	if !strings.Contains(sql, "count(*)") {
		t.Errorf("Expected count(*), got: %s", sql)
	}
	if !strings.Contains(sql, "avg(reading)") {
		t.Errorf("Expected avg(reading), got: %s", sql)
	}
	if !strings.Contains(sql, "GROUP BY region") {
		t.Errorf("Expected GROUP BY region, got: %s", sql)
	}
}

// TestStreamingPipeline demonstrates the source, view, and read
// statements a streaming deployment is built from
func TestStreamingPipeline(t *testing.T) {
	source := ast.NewCreateDataSource(
		streamsql.Name("readings"),
		"kafka://broker:9092/readings",
		ast.NewRegistrySchema("http://registry:8081"),
		nil,
	)
	sql := streamsql.Render(source)
	expected := `CREATE DATA SOURCE readings FROM 'kafka://broker:9092/readings' USING SCHEMA REGISTRY 'http://registry:8081'`
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}

	avg := ast.NewFunctionCall(streamsql.Name("avg"), []ast.Expr{streamsql.Column("reading")}, nil, false, false)
	query := streamsql.NewSelect(streamsql.NewTable("readings")).
		Select(streamsql.Column("region")).
		SelectAs(avg, "avg_reading").
		Group(streamsql.Column("region")).
		Having(ast.NewBinaryExpr(avg, ast.OpGt, streamsql.Literal(20.0)))

	view := ast.NewCreateView(streamsql.Name("hot_regions"), query.Query(), true, nil)
	sql = streamsql.Render(view)
	expected = `CREATE MATERIALIZED VIEW hot_regions AS SELECT region, avg(reading) AS avg_reading FROM readings GROUP BY region HAVING avg(reading) > 20`
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}

	if got := streamsql.Render(ast.NewPeek(streamsql.Name("hot_regions"))); got != "PEEK hot_regions" {
		t.Errorf("Expected PEEK hot_regions, got: %s", got)
	}
	if got := streamsql.Render(ast.NewTail(streamsql.Name("hot_regions"))); got != "TAIL hot_regions" {
		t.Errorf("Expected TAIL hot_regions, got: %s", got)
	}
}

// TestRedactionAndFingerprint demonstrates log-safe rendering and
// structural hashing working together: statements that differ only in
// literal values redact to the same text but hash differently
func TestRedactionAndFingerprint(t *testing.T) {
	build := func(region string) streamsql.Statement {
		return streamsql.NewSelect(streamsql.NewTable("events")).
			Select(streamsql.Star()).
			Where(ast.NewBinaryExpr(streamsql.Column("region"), ast.OpEq, streamsql.Literal(region))).
			Statement()
	}

	eu := build("eu-west-1")
	us := build("us-east-1")

	expected := `SELECT * FROM events WHERE region = '[REDACTED]'`
	if got := streamsql.RenderRedacted(eu); got != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, got)
	}
	if streamsql.RenderRedacted(eu) != streamsql.RenderRedacted(us) {
		t.Error("Expected identical redacted text for same-shape statements")
	}

	if streamsql.Fingerprint(eu) == streamsql.Fingerprint(us) {
		t.Error("Expected different fingerprints for different literal values")
	}
	rebuilt := build("eu-west-1")
	if streamsql.Fingerprint(eu) != streamsql.Fingerprint(rebuilt) {
		t.Error("Expected equal fingerprints for structurally equal statements")
	}
	if !eu.Equal(rebuilt) {
		t.Error("Expected structurally equal statements to compare equal")
	}
}

// TestDMLOperations demonstrates INSERT, UPDATE, DELETE
func TestDMLOperations(t *testing.T) {
	visitor := streamsql.NewSQLVisitor()

	insertQuery := streamsql.NewInsert(streamsql.Name("users")).
		Columns("name", "email").
		Values("Alice", "alice@example.com")

	sql := insertQuery.ToSQL(visitor)
	expected := `INSERT INTO users (name, email) VALUES('Alice', 'alice@example.com')`
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}

	updateQuery := streamsql.NewUpdate(streamsql.Name("users")).
		Set("status", "inactive").
		Where(ast.NewBinaryExpr(streamsql.Column("id"), ast.OpEq, streamsql.Literal(1)))

	sql = updateQuery.ToSQL(visitor)
	expected = `UPDATE usersSET status = 'inactive' WHERE id = 1`
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}

	deleteQuery := streamsql.NewDelete(streamsql.Name("users")).
		Where(ast.NewBinaryExpr(streamsql.Column("status"), ast.OpEq, streamsql.Literal("deleted")))

	sql = deleteQuery.ToSQL(visitor)
	expected = `DELETE FROM users WHERE status = 'deleted'`
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
}

// TestDotExport demonstrates Graphviz export of a statement tree
func TestDotExport(t *testing.T) {
	stmt := streamsql.NewSelect(streamsql.NewTable("events")).
		Select(streamsql.Star()).
		Statement()

	dot := streamsql.Dot(stmt)
	if !strings.HasPrefix(dot, "digraph AST {") {
		t.Errorf("Expected a digraph header, got: %s", dot)
	}
	if !strings.Contains(dot, "QueryStatement") {
		t.Errorf("Expected a QueryStatement node, got: %s", dot)
	}
}
