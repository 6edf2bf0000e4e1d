package main

import (
	"testing"
)

func newTestCompleter(tables ...string) *replCompleter {
	sess := newTestSession()
	for _, t := range tables {
		_ = sess.Execute("table " + t)
	}
	return &replCompleter{sess: sess}
}

// --- Command completion ---

func TestCompleteCommandsEmpty(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	candidates := c.completeCommands("")
	names := c.sess.commandNames()
	if len(candidates) != len(names) {
		t.Errorf("expected %d commands, got %d", len(names), len(candidates))
	}
}

func TestCompleteCommandsPrefix(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	candidates := c.completeCommands("sel")
	if len(candidates) != 1 || candidates[0] != "select" {
		t.Errorf("expected [select], got %v", candidates)
	}
}

func TestCompleteCommandsIncludesStreaming(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	found := map[string]bool{}
	for _, cand := range c.completeCommands("") {
		found[cand] = true
	}
	for _, want := range []string{"peek", "tail", "source", "sink", "materialized view", "exit", "quit"} {
		if !found[want] {
			t.Errorf("expected %q in candidates", want)
		}
	}
	for _, hidden := range []string{"t", "take", "project", "outer join"} {
		if found[hidden] {
			t.Errorf("hidden command %q should not be offered", hidden)
		}
	}
}

// --- Table name completion ---

func TestCompleteTableNames(t *testing.T) {
	t.Parallel()
	c := newTestCompleter("users", "posts", "comments")
	candidates := c.completeTableNames("u")
	if len(candidates) != 1 || candidates[0] != "users" {
		t.Errorf("expected [users], got %v", candidates)
	}
}

func TestCompleteTableNamesSorted(t *testing.T) {
	t.Parallel()
	c := newTestCompleter("users", "posts", "comments")
	candidates := c.completeTableNames("")
	want := []string{"comments", "posts", "users"}
	if len(candidates) != len(want) {
		t.Fatalf("expected %v, got %v", want, candidates)
	}
	for i := range want {
		if candidates[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], candidates[i])
		}
	}
}

// --- Column ref completion ---

func TestCompleteColumnRefBeforeDot(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	_ = c.sess.Execute("table users id:int name:text")
	candidates := c.completeColumnRef("us")
	if len(candidates) != 1 || candidates[0] != "users" {
		t.Errorf("expected [users], got %v", candidates)
	}
}

func TestCompleteColumnRefBareIncludesColumnsAndFunctions(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	_ = c.sess.Execute("table users id:int name:text")
	found := map[string]bool{}
	for _, cand := range c.completeColumnRef("") {
		found[cand] = true
	}
	for _, want := range []string{"users", "id", "name", "AVG(", "COUNT(DISTINCT "} {
		if !found[want] {
			t.Errorf("expected %q in candidates", want)
		}
	}
}

func TestCompleteColumnRefAfterDot(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	_ = c.sess.Execute("table users id:int name:text")
	candidates := c.completeColumnRef("users.")
	want := []string{"users.*", "users.id", "users.name"}
	if len(candidates) != len(want) {
		t.Fatalf("expected %v, got %v", want, candidates)
	}
	for i := range want {
		if candidates[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], candidates[i])
		}
	}
}

func TestCompleteColumnRefAfterDotPartial(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	_ = c.sess.Execute("table users id:int name:text")
	candidates := c.completeColumnRef("users.n")
	if len(candidates) != 1 || candidates[0] != "users.name" {
		t.Errorf("expected [users.name], got %v", candidates)
	}
}

// --- Engine and drop-kind completion ---

func TestCompleteEngines(t *testing.T) {
	t.Parallel()
	candidates := filterPrefix(engineNames, "p")
	if len(candidates) != 1 || candidates[0] != "postgres" {
		t.Errorf("expected [postgres], got %v", candidates)
	}
}

func TestCompleteEnginesAll(t *testing.T) {
	t.Parallel()
	if candidates := filterPrefix(engineNames, ""); len(candidates) != 3 {
		t.Errorf("expected 3 engines, got %d", len(candidates))
	}
}

func TestCompleteDropKinds(t *testing.T) {
	t.Parallel()
	candidates := filterPrefix(dropKinds, "t")
	if len(candidates) != 1 || candidates[0] != "table" {
		t.Errorf("expected [table], got %v", candidates)
	}
	if all := filterPrefix(dropKinds, ""); len(all) != 4 {
		t.Errorf("expected 4 drop kinds, got %v", all)
	}
}

// --- parseContext ---

func TestParseContextCommandEmpty(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("")
	if ctx != contextCommand || prefix != "" {
		t.Errorf("expected contextCommand/'', got %v/%q", ctx, prefix)
	}
}

func TestParseContextCommandPartial(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("sel")
	if ctx != contextCommand || prefix != "sel" {
		t.Errorf("expected contextCommand/'sel', got %v/%q", ctx, prefix)
	}
}

func TestParseContextTableNameFrom(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("from ")
	if ctx != contextTableName || prefix != "" {
		t.Errorf("expected contextTableName/'', got %v/%q", ctx, prefix)
	}
}

func TestParseContextTableNameFromPartial(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("from us")
	if ctx != contextTableName || prefix != "us" {
		t.Errorf("expected contextTableName/'us', got %v/%q", ctx, prefix)
	}
}

func TestParseContextTableNameJoins(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	for _, line := range []string{"join ", "left join ", "natural join ", "cross join ", "peek ", "tail "} {
		ctx, prefix := c.parseContext(line)
		if ctx != contextTableName || prefix != "" {
			t.Errorf("%q: expected contextTableName/'', got %v/%q", line, ctx, prefix)
		}
	}
}

func TestParseContextJoinCondition(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("join posts on users.")
	if ctx != contextColumnRef || prefix != "users." {
		t.Errorf("expected contextColumnRef/'users.', got %v/%q", ctx, prefix)
	}
}

func TestParseContextColumnRefWhere(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("where ")
	if ctx != contextColumnRef || prefix != "" {
		t.Errorf("expected contextColumnRef/'', got %v/%q", ctx, prefix)
	}
}

func TestParseContextColumnRefWherePartial(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("where users.")
	if ctx != contextColumnRef || prefix != "users." {
		t.Errorf("expected contextColumnRef/'users.', got %v/%q", ctx, prefix)
	}
}

func TestParseContextOperatorAfterColumnRef(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("where users.age ")
	if ctx != contextOperator || prefix != "" {
		t.Errorf("expected contextOperator/'', got %v/%q", ctx, prefix)
	}
}

func TestParseContextEngine(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("engine my")
	if ctx != contextEngine || prefix != "my" {
		t.Errorf("expected contextEngine/'my', got %v/%q", ctx, prefix)
	}
}

func TestParseContextOrderDirection(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("order users.name ")
	if ctx != contextOrderDir || prefix != "" {
		t.Errorf("expected contextOrderDir/'', got %v/%q", ctx, prefix)
	}

	ctx, prefix = c.parseContext("order users.name a")
	if ctx != contextOrderDir || prefix != "a" {
		t.Errorf("expected contextOrderDir/'a', got %v/%q", ctx, prefix)
	}
}

func TestParseContextDropKind(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	ctx, prefix := c.parseContext("drop ")
	if ctx != contextDropKind || prefix != "" {
		t.Errorf("expected contextDropKind/'', got %v/%q", ctx, prefix)
	}

	ctx, prefix = c.parseContext("drop table ol")
	if ctx != contextTableName || prefix != "ol" {
		t.Errorf("expected contextTableName/'ol', got %v/%q", ctx, prefix)
	}
}

// --- Do() integration ---

func TestDoReturnsCompletions(t *testing.T) {
	t.Parallel()
	c := newTestCompleter("users")
	line := []rune("from u")
	newLine, length := c.Do(line, len(line))
	if length != 1 {
		t.Errorf("expected length 1, got %d", length)
	}
	if len(newLine) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(newLine))
	}
	if got := string(newLine[0]); got != "sers " {
		t.Errorf("expected suffix 'sers ', got %q", got)
	}
}

func TestDoEmptyLine(t *testing.T) {
	t.Parallel()
	c := newTestCompleter()
	newLine, length := c.Do([]rune(""), 0)
	if length != 0 {
		t.Errorf("expected length 0, got %d", length)
	}
	names := c.sess.commandNames()
	if len(newLine) != len(names) {
		t.Errorf("expected %d commands, got %d", len(names), len(newLine))
	}
}

func TestDoCompletesUpToCursor(t *testing.T) {
	t.Parallel()
	c := newTestCompleter("users")
	// Cursor in the middle of the line: only "from u" is considered.
	line := []rune("from users")
	newLine, length := c.Do(line, 6)
	if length != 1 {
		t.Errorf("expected length 1, got %d", length)
	}
	if len(newLine) != 1 || string(newLine[0]) != "sers " {
		t.Errorf("expected [sers ], got %v", newLine)
	}
}

// --- Helpers ---

func TestFilterPrefixCaseInsensitive(t *testing.T) {
	t.Parallel()
	items := []string{"Select", "SQL", "select"}
	result := filterPrefix(items, "sel")
	if len(result) != 2 {
		t.Errorf("expected 2 matches, got %d: %v", len(result), result)
	}
}

func TestFilterPrefixEmptyCopies(t *testing.T) {
	t.Parallel()
	items := []string{"a", "b", "c"}
	result := filterPrefix(items, "")
	if len(result) != 3 {
		t.Errorf("expected 3 items, got %d", len(result))
	}
	result[0] = "z"
	if items[0] != "a" {
		t.Error("filterPrefix should copy, not alias, the input")
	}
}

func TestDedupPreservesOrder(t *testing.T) {
	t.Parallel()
	result := dedup([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(result) != len(want) {
		t.Fatalf("expected %v, got %v", want, result)
	}
	for i := range want {
		if result[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], result[i])
		}
	}
}

func TestLastToken(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"users.name, posts.", "posts."},
		{"a b\tc", "c"},
		{"abc", "abc"},
		{"", ""},
		{"trailing ", ""},
	}
	for _, tc := range cases {
		if got := lastToken(tc.in); got != tc.want {
			t.Errorf("lastToken(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
