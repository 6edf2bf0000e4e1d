package visitors

import (
	"testing"

	"github.com/bawdo/streamsql/ast"
	"github.com/bawdo/streamsql/internal/testutil"
)

func assertSQL(t *testing.T, n ast.Node, want string) {
	t.Helper()
	testutil.AssertSQL(t, NewSQLVisitor(), n, want)
}

func ident(s string) *ast.Identifier { return ast.NewIdentifier(s) }

func long(v uint64) *ast.LiteralExpr { return ast.NewLiteral(ast.Long(v)) }

func str(s string) *ast.LiteralExpr { return ast.NewLiteral(ast.SingleQuotedString(s)) }

func name(parts ...string) ast.ObjectName { return ast.NewObjectName(parts...) }

// selectFrom builds SELECT <cols> FROM <table>.
func selectFrom(table string, cols ...string) *ast.Query {
	items := make([]*ast.SelectItem, len(cols))
	for i, c := range cols {
		items[i] = ast.NewSelectItem(ident(c), "")
	}
	return ast.NewQuery(nil, ast.NewSelect(false, items, ast.NewTable(name(table), ""), nil, nil, nil, nil), nil, nil)
}

// selectStar builds SELECT * FROM <table>.
func selectStar(table string) *ast.Query {
	items := []*ast.SelectItem{ast.NewSelectItem(ast.NewWildcard(), "")}
	return ast.NewQuery(nil, ast.NewSelect(false, items, ast.NewTable(name(table), ""), nil, nil, nil, nil), nil, nil)
}

// --- Identifiers ---

func TestVisitIdentifier(t *testing.T) {
	t.Parallel()
	assertSQL(t, ident("name"), "name")
}

func TestVisitWildcard(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewWildcard(), "*")
}

func TestVisitQualifiedWildcard(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewQualifiedWildcard("users"), "users.*")
	assertSQL(t, ast.NewQualifiedWildcard("db", "users"), "db.users.*")
}

func TestVisitCompoundIdentifier(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewCompoundIdentifier("users", "id"), "users.id")
	assertSQL(t, ast.NewCompoundIdentifier("db", "users", "id"), "db.users.id")
}

// --- Predicates ---

func TestVisitIsNull(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewIsNull(ident("email"), false), "email IS NULL")
	assertSQL(t, ast.NewIsNull(ident("email"), true), "email IS NOT NULL")
}

func TestVisitInList(t *testing.T) {
	t.Parallel()
	list := []ast.Expr{str("admin"), str("editor")}
	assertSQL(t, ast.NewInList(ident("role"), list, false), "role IN ('admin', 'editor')")
	assertSQL(t, ast.NewInList(ident("role"), list, true), "role NOT IN ('admin', 'editor')")
}

func TestVisitInSubquery(t *testing.T) {
	t.Parallel()
	sub := selectFrom("admins", "id")
	assertSQL(t, ast.NewInSubquery(ident("id"), sub, false), "id IN (SELECT id FROM admins)")
	assertSQL(t, ast.NewInSubquery(ident("id"), sub, true), "id NOT IN (SELECT id FROM admins)")
}

func TestVisitBetween(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewBetween(ident("age"), false, long(18), long(65)), "age BETWEEN 18 AND 65")
	assertSQL(t, ast.NewBetween(ident("age"), true, long(18), long(65)), "age NOT BETWEEN 18 AND 65")
}

// --- Operators ---

func TestVisitBinaryExpr(t *testing.T) {
	t.Parallel()
	tests := []struct {
		op   ast.Operator
		want string
	}{
		{ast.OpPlus, "a + b"},
		{ast.OpMinus, "a - b"},
		{ast.OpMultiply, "a * b"},
		{ast.OpDivide, "a / b"},
		{ast.OpModulus, "a % b"},
		{ast.OpGt, "a > b"},
		{ast.OpLt, "a < b"},
		{ast.OpGtEq, "a >= b"},
		{ast.OpLtEq, "a <= b"},
		{ast.OpEq, "a = b"},
		{ast.OpNotEq, "a != b"},
		{ast.OpAnd, "a AND b"},
		{ast.OpOr, "a OR b"},
		{ast.OpLike, "a LIKE b"},
		{ast.OpNotLike, "a NOT LIKE b"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assertSQL(t, ast.NewBinaryExpr(ident("a"), tt.op, ident("b")), tt.want)
		})
	}
}

func TestVisitUnaryExpr(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewUnaryExpr(ast.OpNot, ident("active")), "NOT active")
	assertSQL(t, ast.NewUnaryExpr(ast.OpMinus, ident("x")), "- x")
}

// --- Casts, collation, grouping ---

func TestVisitCast(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewCast(ident("id"), ast.NewSimpleType(ast.TypeBigInt)), "CAST(id AS bigint)")
}

func TestVisitCollate(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewCollate(ident("name"), name("de_DE")), "name COLLATE de_DE")
}

func TestVisitNested(t *testing.T) {
	t.Parallel()
	inner := ast.NewBinaryExpr(ident("a"), ast.OpOr, ident("b"))
	assertSQL(t, ast.NewNested(inner), "(a OR b)")
}

// --- Function calls ---

func TestVisitFunctionCall(t *testing.T) {
	t.Parallel()
	count := ast.NewFunctionCall(name("COUNT"), []ast.Expr{ast.NewWildcard()}, nil, false, false)
	assertSQL(t, count, "COUNT(*)")
}

func TestVisitFunctionCallNoArgs(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewFunctionCall(name("now"), nil, nil, false, false), "now()")
}

func TestVisitFunctionCallDistinct(t *testing.T) {
	t.Parallel()
	fc := ast.NewFunctionCall(name("COUNT"), []ast.Expr{ident("id")}, nil, false, true)
	assertSQL(t, fc, "COUNT(DISTINCT id)")
}

func TestVisitFunctionCallAll(t *testing.T) {
	t.Parallel()
	fc := ast.NewFunctionCall(name("SUM"), []ast.Expr{ident("x")}, nil, true, false)
	assertSQL(t, fc, "SUM(ALL x)")
}

func TestVisitFunctionCallOver(t *testing.T) {
	t.Parallel()
	over := ast.NewWindowSpec(nil, []*ast.OrderByExpr{ast.NewOrderByExpr(ident("ts"), nil)}, nil)
	fc := ast.NewFunctionCall(name("row_number"), nil, over, false, false)
	assertSQL(t, fc, "row_number() OVER (ORDER BY ts)")
}

func TestVisitFunctionCallQualifiedName(t *testing.T) {
	t.Parallel()
	fc := ast.NewFunctionCall(name("pg_catalog", "lower"), []ast.Expr{ident("s")}, nil, false, false)
	assertSQL(t, fc, "pg_catalog.lower(s)")
}

// --- CASE ---

func TestVisitCaseSearched(t *testing.T) {
	t.Parallel()
	cond := ast.NewBinaryExpr(ident("n"), ast.OpGt, long(1))
	c := ast.NewCaseExpr(nil, []ast.Expr{cond}, []ast.Expr{str("big")}, nil)
	assertSQL(t, c, "CASE WHEN n > 1 THEN 'big' END")
}

func TestVisitCaseWithOperand(t *testing.T) {
	t.Parallel()
	c := ast.NewCaseExpr(ident("x"),
		[]ast.Expr{long(1), long(2)},
		[]ast.Expr{str("one"), str("two")},
		str("many"))
	assertSQL(t, c, "CASE x WHEN 1 THEN 'one' WHEN 2 THEN 'two' ELSE 'many' END")
}

func TestVisitCasePairsStopAtShorterList(t *testing.T) {
	t.Parallel()
	c := ast.NewCaseExpr(nil,
		[]ast.Expr{ident("a"), ident("b")},
		[]ast.Expr{long(1)},
		nil)
	assertSQL(t, c, "CASE WHEN a THEN 1 END")
}

func TestVisitSubquery(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewSubquery(selectFrom("t", "id")), "(SELECT id FROM t)")
}

// --- Values ---

func TestVisitLong(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.Long(42), "42")
	assertSQL(t, ast.Long(0), "0")
}

func TestVisitDouble(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.Double(3.14), "3.14")
	assertSQL(t, ast.Double(2), "2")
	assertSQL(t, ast.Double(0.5), "0.5")
}

func TestVisitSingleQuotedString(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.SingleQuotedString("Alice"), "'Alice'")
}

func TestVisitSingleQuotedStringEscapesQuotes(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.SingleQuotedString("O'Brien"), "'O''Brien'")
}

func TestVisitNationalString(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NationalString("foo"), "N'foo'")
}

func TestVisitNationalStringIsNotEscaped(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NationalString("O'Brien"), "N'O'Brien'")
}

func TestVisitBoolean(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.Boolean(true), "true")
	assertSQL(t, ast.Boolean(false), "false")
}

func TestVisitDateTimeTimestamp(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.Date("2024-01-15"), "2024-01-15")
	assertSQL(t, ast.Time("12:34:56"), "12:34:56")
	assertSQL(t, ast.Timestamp("2024-01-15 12:34:56"), "2024-01-15 12:34:56")
}

func TestVisitNull(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.Null{}, "NULL")
}

// --- Data types ---

func TestVisitDataTypes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		typ  ast.DataType
		want string
	}{
		{"char bare", ast.NewCharType(nil), "char"},
		{"char sized", ast.NewCharType(ast.Uint64(10)), "char(10)"},
		{"varchar", ast.NewVarcharType(ast.Uint64(255)), "character varying(255)"},
		{"varchar bare", ast.NewVarcharType(nil), "character varying"},
		{"clob", ast.NewClobType(1024), "clob(1024)"},
		{"binary", ast.NewBinaryType(16), "binary(16)"},
		{"varbinary", ast.NewVarbinaryType(32), "varbinary(32)"},
		{"blob", ast.NewBlobType(4096), "blob(4096)"},
		{"numeric bare", ast.NewDecimalType(nil, nil), "numeric"},
		{"numeric precision", ast.NewDecimalType(ast.Uint64(10), nil), "numeric(10)"},
		{"numeric precision scale", ast.NewDecimalType(ast.Uint64(10), ast.Uint64(2)), "numeric(10,2)"},
		{"float bare", ast.NewFloatType(nil), "float"},
		{"float sized", ast.NewFloatType(ast.Uint64(24)), "float(24)"},
		{"uuid", ast.NewSimpleType(ast.TypeUUID), "uuid"},
		{"smallint", ast.NewSimpleType(ast.TypeSmallInt), "smallint"},
		{"int", ast.NewSimpleType(ast.TypeInt), "int"},
		{"bigint", ast.NewSimpleType(ast.TypeBigInt), "bigint"},
		{"real", ast.NewSimpleType(ast.TypeReal), "real"},
		{"double", ast.NewSimpleType(ast.TypeDouble), "double"},
		{"boolean", ast.NewSimpleType(ast.TypeBoolean), "boolean"},
		{"date", ast.NewSimpleType(ast.TypeDate), "date"},
		{"time", ast.NewSimpleType(ast.TypeTime), "time"},
		{"timestamp", ast.NewSimpleType(ast.TypeTimestamp), "timestamp"},
		{"regclass", ast.NewSimpleType(ast.TypeRegclass), "regclass"},
		{"text", ast.NewSimpleType(ast.TypeText), "text"},
		{"bytea", ast.NewSimpleType(ast.TypeBytea), "bytea"},
		{"custom", ast.NewCustomType(name("geo", "point")), "geo.point"},
		{"array", ast.NewArrayType(ast.NewSimpleType(ast.TypeInt)), "int[]"},
		{"nested array", ast.NewArrayType(ast.NewArrayType(ast.NewSimpleType(ast.TypeText))), "text[][]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSQL(t, tt.typ, tt.want)
		})
	}
}

func TestVisitDecimalScaleWithoutPrecisionPanics(t *testing.T) {
	t.Parallel()
	typ := ast.NewDecimalType(nil, ast.Uint64(2))
	testutil.AssertPanics(t, "decimal scale requires a precision", func() {
		Render(typ)
	})
}

// --- Query ---

func TestVisitQueryStatement(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewQueryStatement(selectStar("t")), "SELECT * FROM t")
}

func TestVisitQueryOrderByLimit(t *testing.T) {
	t.Parallel()
	body := ast.NewSelect(false, []*ast.SelectItem{ast.NewSelectItem(ast.NewWildcard(), "")},
		ast.NewTable(name("t"), ""), nil, nil, nil, nil)
	q := ast.NewQuery(nil,
		body,
		[]*ast.OrderByExpr{
			ast.NewOrderByExpr(ident("a"), ast.Bool(true)),
			ast.NewOrderByExpr(ident("b"), ast.Bool(false)),
		},
		long(10))
	assertSQL(t, q, "SELECT * FROM t ORDER BY a ASC, b DESC LIMIT 10")
}

func TestVisitQueryWithCte(t *testing.T) {
	t.Parallel()
	cte := ast.NewCte("recent", selectStar("events"))
	q := ast.NewQuery([]*ast.Cte{cte},
		ast.NewSelect(false, []*ast.SelectItem{ast.NewSelectItem(ast.NewWildcard(), "")},
			ast.NewTable(name("recent"), ""), nil, nil, nil, nil),
		nil, nil)
	assertSQL(t, q, "WITH recent AS (SELECT * FROM events) SELECT * FROM recent")
}

func TestVisitQueryWithMultipleCtes(t *testing.T) {
	t.Parallel()
	q := ast.NewQuery(
		[]*ast.Cte{ast.NewCte("a", selectStar("t1")), ast.NewCte("b", selectStar("t2"))},
		ast.NewSelect(false, []*ast.SelectItem{ast.NewSelectItem(ast.NewWildcard(), "")},
			ast.NewTable(name("a"), ""), nil, nil, nil, nil),
		nil, nil)
	assertSQL(t, q, "WITH a AS (SELECT * FROM t1), b AS (SELECT * FROM t2) SELECT * FROM a")
}

func TestVisitSelectAllClauses(t *testing.T) {
	t.Parallel()
	sel := ast.NewSelect(false,
		[]*ast.SelectItem{
			ast.NewSelectItem(ident("region"), ""),
			ast.NewSelectItem(ast.NewFunctionCall(name("COUNT"), []ast.Expr{ast.NewWildcard()}, nil, false, false), "total"),
		},
		ast.NewTable(name("orders"), ""),
		nil,
		ast.NewBinaryExpr(ident("active"), ast.OpEq, ast.NewLiteral(ast.Boolean(true))),
		[]ast.Expr{ident("region")},
		ast.NewBinaryExpr(
			ast.NewFunctionCall(name("COUNT"), []ast.Expr{ast.NewWildcard()}, nil, false, false),
			ast.OpGt, long(5)))
	assertSQL(t, sel,
		"SELECT region, COUNT(*) AS total FROM orders WHERE active = true GROUP BY region HAVING COUNT(*) > 5")
}

func TestVisitSelectDistinct(t *testing.T) {
	t.Parallel()
	sel := ast.NewSelect(true, []*ast.SelectItem{ast.NewSelectItem(ident("region"), "")},
		ast.NewTable(name("orders"), ""), nil, nil, nil, nil)
	assertSQL(t, sel, "SELECT DISTINCT region FROM orders")
}

func TestVisitSelectWithoutRelation(t *testing.T) {
	t.Parallel()
	sel := ast.NewSelect(false, []*ast.SelectItem{ast.NewSelectItem(long(1), "")}, nil, nil, nil, nil, nil)
	assertSQL(t, sel, "SELECT 1")
}

func TestVisitSetOperation(t *testing.T) {
	t.Parallel()
	left := selectFrom("t1", "a").Body
	right := selectFrom("t2", "a").Body
	assertSQL(t, ast.NewSetOperation(ast.Union, false, left, right), "SELECT a FROM t1 UNION SELECT a FROM t2")
	assertSQL(t, ast.NewSetOperation(ast.Union, true, left, right), "SELECT a FROM t1 UNION ALL SELECT a FROM t2")
	assertSQL(t, ast.NewSetOperation(ast.Except, false, left, right), "SELECT a FROM t1 EXCEPT SELECT a FROM t2")
	assertSQL(t, ast.NewSetOperation(ast.Intersect, false, left, right), "SELECT a FROM t1 INTERSECT SELECT a FROM t2")
}

func TestVisitNestedQuery(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewNestedQuery(selectStar("t")), "(SELECT * FROM t)")
}

func TestVisitSelectItemAlias(t *testing.T) {
	t.Parallel()
	fc := ast.NewFunctionCall(name("COUNT"), []ast.Expr{ast.NewWildcard()}, nil, false, false)
	assertSQL(t, ast.NewSelectItem(fc, "total"), "COUNT(*) AS total")
}

func TestVisitTableAlias(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewTable(name("users"), ""), "users")
	assertSQL(t, ast.NewTable(name("users"), "u"), "users AS u")
}

func TestVisitDerived(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewDerived(selectStar("t"), "sub"), "(SELECT * FROM t) AS sub")
	assertSQL(t, ast.NewDerived(selectStar("t"), ""), "(SELECT * FROM t)")
}

// --- Joins ---

func joinedSelect(joins ...*ast.Join) *ast.Select {
	return ast.NewSelect(false, []*ast.SelectItem{ast.NewSelectItem(ast.NewWildcard(), "")},
		ast.NewTable(name("users"), ""), joins, nil, nil, nil)
}

func TestVisitInnerJoinOn(t *testing.T) {
	t.Parallel()
	on := ast.NewBinaryExpr(ast.NewCompoundIdentifier("users", "id"), ast.OpEq,
		ast.NewCompoundIdentifier("posts", "user_id"))
	j := ast.NewJoin(ast.InnerJoin, ast.NewTable(name("posts"), ""), on, nil, false)
	assertSQL(t, joinedSelect(j), "SELECT * FROM users JOIN posts ON users.id = posts.user_id")
}

func TestVisitLeftJoin(t *testing.T) {
	t.Parallel()
	on := ast.NewBinaryExpr(ident("a"), ast.OpEq, ident("b"))
	j := ast.NewJoin(ast.LeftOuterJoin, ast.NewTable(name("posts"), ""), on, nil, false)
	assertSQL(t, joinedSelect(j), "SELECT * FROM users LEFT JOIN posts ON a = b")
}

func TestVisitRightJoin(t *testing.T) {
	t.Parallel()
	on := ast.NewBinaryExpr(ident("a"), ast.OpEq, ident("b"))
	j := ast.NewJoin(ast.RightOuterJoin, ast.NewTable(name("posts"), ""), on, nil, false)
	assertSQL(t, joinedSelect(j), "SELECT * FROM users RIGHT JOIN posts ON a = b")
}

func TestVisitFullJoin(t *testing.T) {
	t.Parallel()
	on := ast.NewBinaryExpr(ident("a"), ast.OpEq, ident("b"))
	j := ast.NewJoin(ast.FullOuterJoin, ast.NewTable(name("posts"), ""), on, nil, false)
	assertSQL(t, joinedSelect(j), "SELECT * FROM users FULL JOIN posts ON a = b")
}

func TestVisitCrossJoin(t *testing.T) {
	t.Parallel()
	j := ast.NewJoin(ast.CrossJoin, ast.NewTable(name("colors"), ""), nil, nil, false)
	assertSQL(t, joinedSelect(j), "SELECT * FROM users CROSS JOIN colors")
}

func TestVisitImplicitJoin(t *testing.T) {
	t.Parallel()
	j := ast.NewJoin(ast.ImplicitJoin, ast.NewTable(name("orders"), ""), nil, nil, false)
	assertSQL(t, joinedSelect(j), "SELECT * FROM users, orders")
}

func TestVisitNaturalJoin(t *testing.T) {
	t.Parallel()
	j := ast.NewJoin(ast.InnerJoin, ast.NewTable(name("posts"), ""), nil, nil, true)
	assertSQL(t, joinedSelect(j), "SELECT * FROM users NATURAL JOIN posts")
}

func TestVisitJoinUsing(t *testing.T) {
	t.Parallel()
	j := ast.NewJoin(ast.InnerJoin, ast.NewTable(name("posts"), ""), nil, []ast.Ident{"user_id", "org_id"}, false)
	assertSQL(t, joinedSelect(j), "SELECT * FROM users JOIN posts USING(user_id, org_id)")
}

func TestVisitOrderByExpr(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewOrderByExpr(ident("a"), nil), "a")
	assertSQL(t, ast.NewOrderByExpr(ident("a"), ast.Bool(true)), "a ASC")
	assertSQL(t, ast.NewOrderByExpr(ident("a"), ast.Bool(false)), "a DESC")
}

// --- Window specifications ---

func TestVisitWindowSpecFull(t *testing.T) {
	t.Parallel()
	frame := ast.NewWindowFrame(ast.FrameRows, ast.Preceding(ast.Uint64(5)), ast.CurrentRow())
	spec := ast.NewWindowSpec([]ast.Expr{ident("region")},
		[]*ast.OrderByExpr{ast.NewOrderByExpr(ident("day"), nil)}, frame)
	assertSQL(t, spec, "PARTITION BY region ORDER BY day ROWS BETWEEN 5 PRECEDING AND CURRENT ROW")
}

func TestVisitWindowSpecPartitionOnly(t *testing.T) {
	t.Parallel()
	spec := ast.NewWindowSpec([]ast.Expr{ident("a"), ident("b")}, nil, nil)
	assertSQL(t, spec, "PARTITION BY a, b")
}

func TestVisitWindowSpecEmpty(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewWindowSpec(nil, nil, nil), "")
}

func TestVisitWindowFrameStartOnly(t *testing.T) {
	t.Parallel()
	frame := ast.NewWindowFrame(ast.FrameRange, ast.Preceding(ast.Uint64(3)), nil)
	assertSQL(t, frame, "RANGE 3 PRECEDING")
}

func TestVisitWindowFrameGroups(t *testing.T) {
	t.Parallel()
	frame := ast.NewWindowFrame(ast.FrameGroups, ast.UnboundedPreceding(), ast.UnboundedFollowing())
	assertSQL(t, frame, "GROUPS BETWEEN UNBOUNDED PRECEDING AND UNBOUNDED FOLLOWING")
}

func TestVisitWindowFrameBound(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.CurrentRow(), "CURRENT ROW")
	assertSQL(t, ast.UnboundedPreceding(), "UNBOUNDED PRECEDING")
	assertSQL(t, ast.UnboundedFollowing(), "UNBOUNDED FOLLOWING")
	assertSQL(t, ast.Preceding(ast.Uint64(5)), "5 PRECEDING")
	assertSQL(t, ast.Following(ast.Uint64(2)), "2 FOLLOWING")
}

// --- DML ---

func TestVisitInsert(t *testing.T) {
	t.Parallel()
	ins := ast.NewInsert(name("users"), []ast.Ident{"name", "age"},
		[][]ast.Expr{{str("Alice"), long(30)}})
	assertSQL(t, ins, "INSERT INTO users (name, age) VALUES('Alice', 30)")
}

func TestVisitInsertWithoutColumns(t *testing.T) {
	t.Parallel()
	ins := ast.NewInsert(name("users"), nil, [][]ast.Expr{{str("Alice"), long(30)}})
	assertSQL(t, ins, "INSERT INTO users VALUES('Alice', 30)")
}

func TestVisitInsertFlattensRows(t *testing.T) {
	t.Parallel()
	ins := ast.NewInsert(name("users"), []ast.Ident{"name", "age"},
		[][]ast.Expr{{str("Alice"), long(30)}, {str("Bob"), long(25)}})
	assertSQL(t, ins, "INSERT INTO users (name, age) VALUES('Alice', 30, 'Bob', 25)")
}

func TestVisitInsertWithoutValues(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewInsert(name("users"), nil, nil), "INSERT INTO users")
}

func TestVisitCopy(t *testing.T) {
	t.Parallel()
	c := ast.NewCopy(name("users"), []ast.Ident{"id", "name"},
		[]*string{ast.String("1"), ast.String("Alice")})
	assertSQL(t, c, "COPY users (id, name) FROM stdin; \n1\tAlice\n\\.")
}

func TestVisitCopyNullMarker(t *testing.T) {
	t.Parallel()
	c := ast.NewCopy(name("users"), []ast.Ident{"id", "name"},
		[]*string{ast.String("1"), nil})
	assertSQL(t, c, "COPY users (id, name) FROM stdin; \n1\t\\N\n\\.")
}

func TestVisitCopyWithoutValues(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewCopy(name("users"), nil, nil), "COPY users FROM stdin; \n\\.")
}

func TestVisitUpdate(t *testing.T) {
	t.Parallel()
	upd := ast.NewUpdate(name("users"),
		[]*ast.Assignment{ast.NewAssignment("a", long(1)), ast.NewAssignment("b", long(2))},
		nil)
	assertSQL(t, upd, "UPDATE usersSET a = 1, SET b = 2")
}

func TestVisitUpdateWithSelection(t *testing.T) {
	t.Parallel()
	upd := ast.NewUpdate(name("users"),
		[]*ast.Assignment{ast.NewAssignment("age", long(31))},
		ast.NewBinaryExpr(ident("id"), ast.OpEq, long(7)))
	assertSQL(t, upd, "UPDATE usersSET age = 31 WHERE id = 7")
}

func TestVisitDelete(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewDelete(name("users"), nil), "DELETE FROM users")
	del := ast.NewDelete(name("users"), ast.NewBinaryExpr(ident("id"), ast.OpEq, long(7)))
	assertSQL(t, del, "DELETE FROM users WHERE id = 7")
}

// --- Streaming DDL ---

func TestVisitCreateDataSourceRawSchema(t *testing.T) {
	t.Parallel()
	src := ast.NewCreateDataSource(name("clicks"), "kafka://broker:9092/clicks",
		ast.NewRawSchema(`{"type": "record"}`), nil)
	assertSQL(t, src,
		`CREATE DATA SOURCE clicks FROM 'kafka://broker:9092/clicks' USING SCHEMA '{"type": "record"}'`)
}

func TestVisitCreateDataSourceRegistrySchema(t *testing.T) {
	t.Parallel()
	src := ast.NewCreateDataSource(name("clicks"), "kafka://broker:9092/clicks",
		ast.NewRegistrySchema("http://registry:8081"),
		[]*ast.WithOption{ast.NewWithOption("format", ast.SingleQuotedString("avro"))})
	assertSQL(t, src,
		"CREATE DATA SOURCE clicks FROM 'kafka://broker:9092/clicks' USING SCHEMA REGISTRY 'http://registry:8081' WITH (format = 'avro')")
}

func TestVisitCreateDataSink(t *testing.T) {
	t.Parallel()
	sink := ast.NewCreateDataSink(name("archive"), name("clicks"), "kafka://broker:9092/archive", nil)
	assertSQL(t, sink, "CREATE DATA SINK archive FROM clicks INTO 'kafka://broker:9092/archive'")
}

func TestVisitCreateDataSinkWithOptions(t *testing.T) {
	t.Parallel()
	sink := ast.NewCreateDataSink(name("archive"), name("clicks"), "kafka://broker:9092/archive",
		[]*ast.WithOption{ast.NewWithOption("partitions", ast.Long(4))})
	assertSQL(t, sink,
		"CREATE DATA SINK archive FROM clicks INTO 'kafka://broker:9092/archive' WITH (partitions = 4)")
}

func TestVisitCreateView(t *testing.T) {
	t.Parallel()
	v := ast.NewCreateView(name("v"), selectStar("t"), false, nil)
	assertSQL(t, v, "CREATE VIEW v AS SELECT * FROM t")
}

func TestVisitCreateMaterializedView(t *testing.T) {
	t.Parallel()
	v := ast.NewCreateView(name("v"), selectStar("t"), true, nil)
	assertSQL(t, v, "CREATE MATERIALIZED VIEW v AS SELECT * FROM t")
}

func TestVisitCreateViewWithOptions(t *testing.T) {
	t.Parallel()
	v := ast.NewCreateView(name("v"), selectStar("t"), false,
		[]*ast.WithOption{ast.NewWithOption("retention", ast.SingleQuotedString("7d"))})
	assertSQL(t, v, "CREATE VIEW v WITH (retention = '7d') AS SELECT * FROM t")
}

// --- Tables ---

func TestVisitColumnDef(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewColumnDef("id", ast.NewSimpleType(ast.TypeInt), true, false, nil, true),
		"id int PRIMARY KEY")
	assertSQL(t, ast.NewColumnDef("email", ast.NewVarcharType(ast.Uint64(255)), false, true, nil, false),
		"email character varying(255) UNIQUE NOT NULL")
	assertSQL(t, ast.NewColumnDef("age", ast.NewSimpleType(ast.TypeInt), false, false, long(0), true),
		"age int DEFAULT 0")
}

func TestVisitCreateTable(t *testing.T) {
	t.Parallel()
	cols := []*ast.ColumnDef{
		ast.NewColumnDef("id", ast.NewSimpleType(ast.TypeInt), true, false, nil, true),
		ast.NewColumnDef("name", ast.NewVarcharType(ast.Uint64(255)), false, false, nil, true),
	}
	ct := ast.NewCreateTable(name("users"), cols, nil, false, nil, nil)
	assertSQL(t, ct, "CREATE TABLE users (id int PRIMARY KEY, name character varying(255))")
}

func TestVisitCreateTableWithOptions(t *testing.T) {
	t.Parallel()
	cols := []*ast.ColumnDef{ast.NewColumnDef("id", ast.NewSimpleType(ast.TypeInt), false, false, nil, true)}
	ct := ast.NewCreateTable(name("t"), cols,
		[]*ast.WithOption{ast.NewWithOption("compression", ast.SingleQuotedString("lz4"))},
		false, nil, nil)
	assertSQL(t, ct, "CREATE TABLE t (id int) WITH (compression = 'lz4')")
}

func TestVisitCreateExternalTable(t *testing.T) {
	t.Parallel()
	cols := []*ast.ColumnDef{ast.NewColumnDef("id", ast.NewSimpleType(ast.TypeInt), false, false, nil, true)}
	ct := ast.NewCreateTable(name("t"), cols, nil, true,
		ast.FileFormatPtr(ast.FormatParquet), ast.String("/data/t"))
	assertSQL(t, ct, "CREATE EXTERNAL TABLE t (id int) STORED AS PARQUET LOCATION '/data/t'")
}

func TestVisitCreateExternalTableDropsWithOptions(t *testing.T) {
	t.Parallel()
	cols := []*ast.ColumnDef{ast.NewColumnDef("id", ast.NewSimpleType(ast.TypeInt), false, false, nil, true)}
	ct := ast.NewCreateTable(name("t"), cols,
		[]*ast.WithOption{ast.NewWithOption("compression", ast.SingleQuotedString("lz4"))},
		true, ast.FileFormatPtr(ast.FormatORC), ast.String("/data/t"))
	assertSQL(t, ct, "CREATE EXTERNAL TABLE t (id int) STORED AS ORC LOCATION '/data/t'")
}

func TestVisitCreateExternalTableJsonfileRendersTextfile(t *testing.T) {
	t.Parallel()
	cols := []*ast.ColumnDef{ast.NewColumnDef("id", ast.NewSimpleType(ast.TypeInt), false, false, nil, true)}
	ct := ast.NewCreateTable(name("t"), cols, nil, true,
		ast.FileFormatPtr(ast.FormatJsonfile), ast.String("/data/t"))
	assertSQL(t, ct, "CREATE EXTERNAL TABLE t (id int) STORED AS TEXTFILE LOCATION '/data/t'")
}

func TestVisitCreateExternalTableLocationIsNotEscaped(t *testing.T) {
	t.Parallel()
	cols := []*ast.ColumnDef{ast.NewColumnDef("id", ast.NewSimpleType(ast.TypeInt), false, false, nil, true)}
	ct := ast.NewCreateTable(name("t"), cols, nil, true,
		ast.FileFormatPtr(ast.FormatAvro), ast.String("/data/it's"))
	assertSQL(t, ct, "CREATE EXTERNAL TABLE t (id int) STORED AS AVRO LOCATION '/data/it's'")
}

func TestVisitCreateExternalTableWithoutFormatPanics(t *testing.T) {
	t.Parallel()
	cols := []*ast.ColumnDef{ast.NewColumnDef("id", ast.NewSimpleType(ast.TypeInt), false, false, nil, true)}
	ct := ast.NewCreateTable(name("t"), cols, nil, true, nil, ast.String("/data/t"))
	testutil.AssertPanics(t, "external table requires a file format", func() {
		Render(ct)
	})
}

func TestVisitCreateExternalTableWithoutLocationPanics(t *testing.T) {
	t.Parallel()
	cols := []*ast.ColumnDef{ast.NewColumnDef("id", ast.NewSimpleType(ast.TypeInt), false, false, nil, true)}
	ct := ast.NewCreateTable(name("t"), cols, nil, true, ast.FileFormatPtr(ast.FormatParquet), nil)
	testutil.AssertPanics(t, "external table requires a location", func() {
		Render(ct)
	})
}

// --- ALTER TABLE ---

func TestVisitAlterTableAddPrimaryKey(t *testing.T) {
	t.Parallel()
	op := ast.NewAddConstraint(ast.NewPrimaryKeyConstraint(ast.NewKey("pk", "id")))
	assertSQL(t, ast.NewAlterTable(name("users"), op), "ALTER TABLE users ADD CONSTRAINT pk PRIMARY KEY (id)")
}

func TestVisitAlterTableAddUniqueKey(t *testing.T) {
	t.Parallel()
	op := ast.NewAddConstraint(ast.NewUniqueKeyConstraint(ast.NewKey("uk", "email")))
	assertSQL(t, ast.NewAlterTable(name("users"), op), "ALTER TABLE users ADD CONSTRAINT uk UNIQUE KEY (email)")
}

func TestVisitAlterTableAddPlainKey(t *testing.T) {
	t.Parallel()
	op := ast.NewAddConstraint(ast.NewKeyConstraint(ast.NewKey("k", "a", "b")))
	assertSQL(t, ast.NewAlterTable(name("t"), op), "ALTER TABLE t ADD CONSTRAINT k KEY (a, b)")
}

func TestVisitAlterTableAddForeignKey(t *testing.T) {
	t.Parallel()
	op := ast.NewAddConstraint(ast.NewForeignKeyConstraint(
		ast.NewKey("fk", "user_id"), name("users"), []ast.Ident{"id"}))
	assertSQL(t, ast.NewAlterTable(name("orders"), op),
		"ALTER TABLE orders ADD CONSTRAINT fk FOREIGN KEY (user_id) REFERENCES users(id)")
}

func TestVisitAlterTableRemoveConstraint(t *testing.T) {
	t.Parallel()
	op := ast.NewRemoveConstraint("pk")
	assertSQL(t, ast.NewAlterTable(name("users"), op), "ALTER TABLE users REMOVE CONSTRAINT pk")
}

// --- DROP ---

func TestVisitDropTable(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewDropTable(false, []ast.ObjectName{name("t")}, false, false), "DROP TABLE t")
}

func TestVisitDropTableIfExists(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewDropTable(true, []ast.ObjectName{name("t")}, false, false), "DROP TABLE IF EXISTS t")
}

func TestVisitDropTableMultipleNames(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewDropTable(false, []ast.ObjectName{name("t1"), name("t2")}, false, false),
		"DROP TABLE t1, t2")
}

func TestVisitDropTableCascade(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewDropTable(false, []ast.ObjectName{name("t")}, true, false), "DROP TABLE t CASCADE")
}

func TestVisitDropTableRestrict(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewDropTable(false, []ast.ObjectName{name("t")}, false, true), "DROP TABLE t RESTRICT")
}

func TestVisitDropTableCascadeAndRestrict(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewDropTable(true, []ast.ObjectName{name("t")}, true, true),
		"DROP TABLE IF EXISTS t CASCADE RESTRICT")
}

func TestVisitDropDataSource(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewDropDataSource(false, []ast.ObjectName{name("clicks")}, false, false),
		"DROP DATA SOURCE clicks")
}

func TestVisitDropView(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewDropView(true, []ast.ObjectName{name("v")}, false, false), "DROP VIEW IF EXISTS v")
}

// --- Streaming reads ---

func TestVisitPeek(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewPeek(name("clicks")), "PEEK clicks")
}

func TestVisitTail(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewTail(name("clicks")), "TAIL clicks")
}

// --- Auxiliary clauses ---

func TestVisitObjectName(t *testing.T) {
	t.Parallel()
	assertSQL(t, name("users"), "users")
	assertSQL(t, name("db", "public", "users"), "db.public.users")
}

func TestVisitAssignment(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewAssignment("age", long(31)), "SET age = 31")
}

func TestVisitWithOption(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewWithOption("format", ast.SingleQuotedString("avro")), "format = 'avro'")
}

func TestVisitRawSchemaEscapesQuotes(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewRawSchema("it's"), "'it''s'")
}

func TestVisitRegistrySchema(t *testing.T) {
	t.Parallel()
	assertSQL(t, ast.NewRegistrySchema("http://registry:8081"), "REGISTRY 'http://registry:8081'")
}

// --- Determinism ---

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()
	q := ast.NewQueryStatement(ast.NewQuery(nil,
		ast.NewSelect(true,
			[]*ast.SelectItem{ast.NewSelectItem(ident("region"), "r")},
			ast.NewTable(name("orders"), "o"),
			[]*ast.Join{ast.NewJoin(ast.LeftOuterJoin, ast.NewTable(name("users"), ""),
				ast.NewBinaryExpr(ident("a"), ast.OpEq, ident("b")), nil, false)},
			ast.NewIsNull(ident("deleted_at"), false),
			[]ast.Expr{ident("region")},
			nil),
		[]*ast.OrderByExpr{ast.NewOrderByExpr(ident("region"), ast.Bool(true))},
		long(100)))
	first := Render(q)
	for i := 0; i < 10; i++ {
		testutil.AssertEqual(t, Render(q), first)
	}
}
