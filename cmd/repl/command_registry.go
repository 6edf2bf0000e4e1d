package main

import (
	"errors"
	"sort"
	"strings"

	"github.com/bawdo/streamsql/ast"
)

// commandEntry maps a REPL prefix to its handler and optional tab-completer.
type commandEntry struct {
	prefix    string
	handler   func(args string) error
	completer func(args string) (completionContext, string) // nil = no arg completion
	hidden    bool                                          // excluded from commandNames()
}

// initCommands builds the command registry and sorts by prefix length descending.
func (s *Session) initCommands() {
	s.commands = []commandEntry{
		// --- output commands ---
		{prefix: "sql", handler: func(_ string) error { return s.cmdSQL() }},
		{prefix: "redacted", handler: func(_ string) error { return s.cmdRedacted() }},
		{prefix: "fingerprint", handler: func(_ string) error { return s.cmdFingerprint() }},
		{prefix: "ast", handler: func(_ string) error { return s.cmdAST() }},
		{prefix: "dot ", handler: func(a string) error { return s.cmdDot(a) }},
		{prefix: "dot", handler: func(_ string) error { return errors.New("usage: dot <filepath>") }},
		{prefix: "expr ", handler: func(a string) error { return s.cmdExpr(a) }, completer: completeColumnArgs},
		{prefix: "reset", handler: func(_ string) error { return s.cmdReset() }},
		{prefix: "tables", handler: func(_ string) error { return s.cmdTables() }},
		{prefix: "help", handler: func(_ string) error { s.cmdHelp(); return nil }},

		// --- streaming DDL ---
		{prefix: "external table ", handler: func(a string) error { return s.cmdExternalTable(a) }},
		{prefix: "table ", handler: func(a string) error { return s.cmdTable(a) }},
		{prefix: "t ", handler: func(a string) error { return s.cmdTable(a) }, hidden: true},
		{prefix: "source ", handler: func(a string) error { return s.cmdSource(a) }},
		{prefix: "sink ", handler: func(a string) error { return s.cmdSink(a) }},
		{prefix: "materialized view ", handler: func(a string) error { return s.cmdView(a, true) }},
		{prefix: "view ", handler: func(a string) error { return s.cmdView(a, false) }},
		{prefix: "drop ", handler: func(a string) error { return s.cmdDrop(a) }, completer: completeDropArgs},
		{prefix: "peek ", handler: func(a string) error { return s.cmdPeek(a) }, completer: completeTableArgs},
		{prefix: "tail ", handler: func(a string) error { return s.cmdTail(a) }, completer: completeTableArgs},

		// --- query building ---
		{prefix: "from ", handler: func(a string) error { return s.cmdFrom(a) }, completer: completeTableArgs},
		{prefix: "select ", handler: func(a string) error { return s.cmdSelect(a) }, completer: completeColumnArgs},
		{prefix: "project ", handler: func(a string) error { return s.cmdSelect(a) }, completer: completeColumnArgs, hidden: true},
		{prefix: "distinct", handler: func(_ string) error { return s.cmdDistinct() }},
		{prefix: "where ", handler: func(a string) error { return s.cmdWhere(a) }, completer: completeColumnArgs},
		{prefix: "group ", handler: func(a string) error { return s.cmdGroup(a) }, completer: completeColumnArgs},
		{prefix: "having ", handler: func(a string) error { return s.cmdHaving(a) }, completer: completeColumnArgs},
		{prefix: "order ", handler: func(a string) error { return s.cmdOrder(a) }, completer: completeOrderArgs},
		{prefix: "limit ", handler: func(a string) error { return s.cmdLimit(a) }},
		{prefix: "take ", handler: func(a string) error { return s.cmdLimit(a) }, hidden: true},

		// --- joins (multi-word prefixes) ---
		{prefix: "natural left join ", handler: func(a string) error { return s.cmdNaturalJoin(a, ast.LeftOuterJoin) }, completer: completeTableArgs},
		{prefix: "natural right join ", handler: func(a string) error { return s.cmdNaturalJoin(a, ast.RightOuterJoin) }, completer: completeTableArgs},
		{prefix: "natural full join ", handler: func(a string) error { return s.cmdNaturalJoin(a, ast.FullOuterJoin) }, completer: completeTableArgs},
		{prefix: "natural join ", handler: func(a string) error { return s.cmdNaturalJoin(a, ast.InnerJoin) }, completer: completeTableArgs},
		{prefix: "outer join ", handler: func(a string) error { return s.cmdJoin(a, ast.LeftOuterJoin) }, completer: completeJoinArgs, hidden: true},
		{prefix: "right join ", handler: func(a string) error { return s.cmdJoin(a, ast.RightOuterJoin) }, completer: completeJoinArgs},
		{prefix: "cross join ", handler: func(a string) error { return s.cmdCrossJoin(a) }, completer: completeTableArgs},
		{prefix: "left join ", handler: func(a string) error { return s.cmdJoin(a, ast.LeftOuterJoin) }, completer: completeJoinArgs},
		{prefix: "full join ", handler: func(a string) error { return s.cmdJoin(a, ast.FullOuterJoin) }, completer: completeJoinArgs},
		{prefix: "join ", handler: func(a string) error { return s.cmdJoin(a, ast.InnerJoin) }, completer: completeJoinArgs},

		// --- set operations ---
		{prefix: "union all", handler: func(_ string) error { return s.cmdSetOp(ast.Union, true) }},
		{prefix: "intersect all", handler: func(_ string) error { return s.cmdSetOp(ast.Intersect, true) }},
		{prefix: "except all", handler: func(_ string) error { return s.cmdSetOp(ast.Except, true) }},
		{prefix: "union", handler: func(_ string) error { return s.cmdSetOp(ast.Union, false) }},
		{prefix: "intersect", handler: func(_ string) error { return s.cmdSetOp(ast.Intersect, false) }},
		{prefix: "except", handler: func(_ string) error { return s.cmdSetOp(ast.Except, false) }},

		// --- CTEs ---
		{prefix: "with ", handler: func(a string) error { return s.cmdWith(a) }},

		// --- DML builders ---
		{prefix: "insert into ", handler: func(a string) error { return s.cmdInsertInto(a) }, completer: completeTableArgs},
		{prefix: "delete from ", handler: func(a string) error { return s.cmdDeleteFrom(a) }, completer: completeTableArgs},
		{prefix: "columns ", handler: func(a string) error { return s.cmdColumns(a) }, completer: completeColumnArgs},
		{prefix: "values ", handler: func(a string) error { return s.cmdValues(a) }},
		{prefix: "update ", handler: func(a string) error { return s.cmdUpdate(a) }, completer: completeTableArgs},
		{prefix: "set ", handler: func(a string) error { return s.cmdSet(a) }, completer: completeColumnArgs},
		{prefix: "copy ", handler: func(a string) error { return s.cmdCopy(a) }, completer: completeTableArgs},
		{prefix: "row ", handler: func(a string) error { return s.cmdRow(a) }},
		{prefix: "row", handler: func(_ string) error { return errors.New("usage: row <val1>, <val2>, ...") }, hidden: true},

		// --- schema registry ---
		{prefix: "registry ", handler: func(a string) error { return s.cmdRegistry(a) }},
		{prefix: "registry", handler: func(_ string) error { return s.cmdRegistry("") }},
		{prefix: "schema fetch ", handler: func(a string) error { return s.cmdSchemaFetch(a) }},
		{prefix: "resolve ", handler: func(a string) error { return s.cmdResolve(a) }},
		{prefix: "resolve", handler: func(_ string) error { return s.cmdResolve("") }},

		// --- database connectivity ---
		{prefix: "connect ", handler: func(a string) error { return s.cmdConnect(a) }},
		{prefix: "connect", handler: func(_ string) error { return s.cmdConnect("") }},
		{prefix: "disconnect", handler: func(_ string) error { return s.cmdDisconnect() }},
		{prefix: "exec", handler: func(_ string) error { return s.cmdExec() }},
		{prefix: "run", handler: func(_ string) error { return s.cmdExec() }, hidden: true},

		// --- engine ---
		{prefix: "engine ", handler: func(a string) error { return s.cmdEngine(a) }, completer: completeEngineArgs},
	}

	// Sort by prefix length descending so longest prefixes match first.
	sort.Slice(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

// commandNames derives the command name list from the registry for tab completion.
func (s *Session) commandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range s.commands {
		if cmd.hidden {
			continue
		}
		name := strings.TrimRight(cmd.prefix, " ")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	// exit/quit are handled by the REPL loop, not Execute().
	for _, extra := range []string{"exit", "quit"} {
		if !seen[extra] {
			names = append(names, extra)
		}
	}
	sort.Strings(names)
	return names
}

// --- Shared completion helpers ---

// completeJoinArgs handles completion for join prefixes:
// table name → ON clause → column ref → operator.
func completeJoinArgs(args string) (completionContext, string) {
	words := strings.Fields(args)
	if len(words) == 0 {
		return contextTableName, ""
	}
	if strings.Contains(args, " ") {
		last := words[len(words)-1]
		if strings.HasSuffix(args, " ") {
			return contextOperator, ""
		}
		return contextColumnRef, last
	}
	return contextTableName, args
}

// completeTableArgs handles completion for single-word table commands
// (from, peek, tail, insert into, update, delete from, copy).
func completeTableArgs(args string) (completionContext, string) {
	arg := strings.TrimSpace(args)
	if !strings.Contains(arg, " ") {
		return contextTableName, arg
	}
	parts := strings.Fields(arg)
	last := parts[len(parts)-1]
	if strings.HasSuffix(args, " ") {
		return contextOperator, ""
	}
	return contextColumnRef, last
}

// completeColumnArgs handles completion for column-ref commands
// (select, where, having, group, expr, columns, set).
func completeColumnArgs(args string) (completionContext, string) {
	last := lastToken(args)
	if strings.HasSuffix(args, " ") {
		prevTokens := strings.Fields(args)
		if len(prevTokens) > 0 {
			prev := strings.ToLower(prevTokens[len(prevTokens)-1])
			if strings.Contains(prev, ".") {
				return contextOperator, ""
			}
		}
		return contextColumnRef, ""
	}
	return contextColumnRef, last
}

// completeOrderArgs handles completion for the order command:
// column refs, then direction (asc/desc) after a column.
func completeOrderArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") {
		parts := strings.Fields(args)
		if len(parts) > 0 {
			last := strings.ToLower(parts[len(parts)-1])
			if strings.Contains(last, ".") {
				return contextOrderDir, ""
			}
		}
		return contextColumnRef, ""
	}
	last := lastToken(args)
	lowerLast := strings.ToLower(last)
	if lowerLast == "a" || lowerLast == "as" || lowerLast == "d" || lowerLast == "de" || lowerLast == "des" {
		return contextOrderDir, last
	}
	return contextColumnRef, last
}

// completeEngineArgs handles completion for the engine command.
func completeEngineArgs(args string) (completionContext, string) {
	return contextEngine, strings.TrimSpace(args)
}

// completeDropArgs handles completion for the drop command: first the
// object kind, then relation names.
func completeDropArgs(args string) (completionContext, string) {
	arg := strings.TrimSpace(args)
	if !strings.Contains(arg, " ") && !strings.HasSuffix(args, " ") {
		return contextDropKind, arg
	}
	return contextTableName, lastToken(args)
}
