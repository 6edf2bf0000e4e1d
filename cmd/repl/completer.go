package main

import (
	"sort"
	"strings"
)

// completionContext describes what kind of completion is appropriate.
type completionContext int

const (
	contextCommand   completionContext = iota // start of line or partial command
	contextTableName                          // after from/join/peek/tail/etc
	contextColumnRef                          // after select/where/having/group/expr
	contextEngine                             // after engine
	contextOrderDir                           // after a column ref in order context
	contextOperator                           // after a column ref in condition context
	contextDropKind                           // first argument of drop
)

var engineNames = []string{"mysql", "postgres", "sqlite"}
var orderDirs = []string{"asc", "desc"}
var dropKinds = []string{"if exists", "source", "table", "view"}
var operators = []string{
	"!=", "%", "*", "+", "-", "/", "<", "<=", "<>", "=", ">", ">=",
	"and", "between", "in", "is", "like", "not", "or",
}

var functionNames = []string{
	"AVG(", "CASE ", "CAST(", "COALESCE(", "COUNT(", "COUNT(DISTINCT ",
	"DENSE_RANK(", "FIRST_VALUE(", "LAG(", "LAST_VALUE(", "LEAD(",
	"LOWER(", "MAX(", "MIN(", "NTILE(", "RANK(", "ROW_NUMBER(",
	"SUM(", "UPPER(",
}

// replCompleter implements readline's AutoCompleter interface.
type replCompleter struct {
	sess *Session
}

// Do returns completion candidates for the current line/cursor position.
// length is the number of chars from end of line[:pos] that form the
// prefix being completed; newLine holds the suffixes to append.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	ctx, prefix := c.parseContext(lineStr)

	var candidates []string
	switch ctx {
	case contextCommand:
		candidates = c.completeCommands(prefix)
	case contextTableName:
		candidates = c.completeTableNames(prefix)
	case contextColumnRef:
		candidates = c.completeColumnRef(prefix)
	case contextEngine:
		candidates = filterPrefix(engineNames, prefix)
	case contextOrderDir:
		candidates = filterPrefix(orderDirs, prefix)
	case contextOperator:
		candidates = filterPrefix(operators, prefix)
	case contextDropKind:
		candidates = filterPrefix(dropKinds, prefix)
	}

	for _, cand := range candidates {
		suffix := cand[len(prefix):]
		// Add trailing space for convenience.
		newLine = append(newLine, []rune(suffix+" "))
	}
	length = len([]rune(prefix))
	return
}

// parseContext examines the line up to the cursor and determines what kind
// of completion is needed and the current prefix being typed.
func (c *replCompleter) parseContext(line string) (completionContext, string) {
	lower := strings.ToLower(line)

	for _, cmd := range c.sess.commands {
		if !strings.HasSuffix(cmd.prefix, " ") {
			continue // exact-match commands have no arg completion
		}
		if strings.HasPrefix(lower, cmd.prefix) && cmd.completer != nil {
			return cmd.completer(line[len(cmd.prefix):])
		}
	}

	return contextCommand, strings.TrimSpace(line)
}

// completeCommands returns command names matching the prefix.
func (c *replCompleter) completeCommands(prefix string) []string {
	return filterPrefix(c.sess.commandNames(), prefix)
}

// completeTableNames returns registered + DB relation names matching prefix.
func (c *replCompleter) completeTableNames(prefix string) []string {
	var names []string
	for name := range c.sess.tables {
		names = append(names, name)
	}
	if c.sess.conn != nil {
		names = append(names, c.sess.conn.schemaTables()...)
	}
	names = dedup(names)
	sort.Strings(names)
	return filterPrefix(names, prefix)
}

// columnsFor collects column names for a relation from the session's
// registered column specs and, when connected, the database schema.
func (c *replCompleter) columnsFor(table string) []string {
	var cols []string
	for _, def := range c.sess.tables[table] {
		cols = append(cols, def.Name)
	}
	if c.sess.conn != nil {
		cols = append(cols, c.sess.conn.schemaColumns(table)...)
	}
	return dedup(cols)
}

// completeColumnRef handles both relation-name and table.column completion.
func (c *replCompleter) completeColumnRef(prefix string) []string {
	if strings.Contains(prefix, ".") {
		parts := strings.SplitN(prefix, ".", 2)
		tableName := parts[0]

		candidates := []string{tableName + ".*"}
		for _, col := range c.columnsFor(tableName) {
			candidates = append(candidates, tableName+"."+col)
		}
		return filterPrefix(candidates, prefix)
	}

	// Before the dot: complete relation names, bare columns, and functions.
	candidates := c.completeTableNames(prefix)
	for table := range c.sess.tables {
		candidates = append(candidates, c.columnsFor(table)...)
	}
	candidates = dedup(candidates)
	sort.Strings(candidates)
	candidates = filterPrefix(candidates, prefix)
	candidates = append(candidates, filterPrefix(functionNames, prefix)...)
	return candidates
}

// filterPrefix returns items that start with prefix (case-insensitive).
func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		result := make([]string, len(items))
		copy(result, items)
		return result
	}
	lowerPrefix := strings.ToLower(prefix)
	var result []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lowerPrefix) {
			result = append(result, item)
		}
	}
	return result
}

// dedup removes duplicate strings.
func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	var result []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

// lastToken returns the last whitespace- or comma-separated token.
func lastToken(s string) string {
	lastSep := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' || s[i] == ',' || s[i] == '\t' {
			lastSep = i
			break
		}
	}
	if lastSep >= 0 {
		return s[lastSep+1:]
	}
	return s
}
