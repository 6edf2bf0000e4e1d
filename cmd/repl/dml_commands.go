package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bawdo/streamsql/ast"
	"github.com/bawdo/streamsql/managers"
)

// --- DML command handlers ---

func (s *Session) cmdInsertInto(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return errors.New("usage: insert into <table>")
	}
	s.registerTable(name, nil)
	s.setMode(modeInsert)
	s.insertQuery = managers.NewInsertManager(objectName(name))
	_, _ = fmt.Fprintf(s.out, "  INSERT INTO %q\n", name)
	return nil
}

func (s *Session) cmdColumns(args string) error {
	if s.mode != modeInsert || s.insertQuery == nil {
		return errors.New("columns requires an active INSERT (use 'insert into <table>' first)")
	}
	var cols []ast.Ident
	for _, p := range splitTopLevelCommas(args) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !isIdentToken(p) {
			return fmt.Errorf("invalid column name %q", p)
		}
		cols = append(cols, p)
	}
	s.insertQuery.Columns(cols...)
	_, _ = fmt.Fprintf(s.out, "  Columns set (%d)\n", len(cols))
	return nil
}

func (s *Session) cmdValues(args string) error {
	if s.mode != modeInsert || s.insertQuery == nil {
		return errors.New("values requires an active INSERT (use 'insert into <table>' first)")
	}
	var vals []any
	for _, p := range splitTopLevelCommas(args) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		expr, err := s.parseScalar(p)
		if err != nil {
			return fmt.Errorf("values: %w", err)
		}
		vals = append(vals, expr)
	}
	s.insertQuery.Values(vals...)
	_, _ = fmt.Fprintf(s.out, "  Values row added (%d values)\n", len(vals))
	return nil
}

func (s *Session) cmdUpdate(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return errors.New("usage: update <table>")
	}
	s.registerTable(name, nil)
	s.setMode(modeUpdate)
	s.updateQuery = managers.NewUpdateManager(objectName(name))
	_, _ = fmt.Fprintf(s.out, "  UPDATE %q\n", name)
	return nil
}

func (s *Session) cmdSet(args string) error {
	if s.mode != modeUpdate || s.updateQuery == nil {
		return errors.New("set requires an active UPDATE (use 'update <table>' first)")
	}
	tokens := tokenize(args)
	if len(tokens) < 3 || tokens[1] != "=" {
		return errors.New("usage: set <col> = <value>")
	}
	col := tokens[0]
	if !isIdentToken(col) {
		return fmt.Errorf("invalid column name %q", col)
	}
	value, pos, err := s.parseOperand(tokens, 2)
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	if pos != len(tokens) {
		return fmt.Errorf("unexpected token %q after SET value", tokens[pos])
	}
	s.updateQuery.Set(col, value)
	_, _ = fmt.Fprintf(s.out, "  SET %s added\n", col)
	return nil
}

func (s *Session) cmdDeleteFrom(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return errors.New("usage: delete from <table>")
	}
	s.registerTable(name, nil)
	s.setMode(modeDelete)
	s.deleteQuery = managers.NewDeleteManager(objectName(name))
	_, _ = fmt.Fprintf(s.out, "  DELETE FROM %q\n", name)
	return nil
}

// cmdCopy starts a COPY ... FROM stdin statement:
// copy <table> [col, col, ...]
func (s *Session) cmdCopy(args string) error {
	name, tail := nextToken(args)
	if name == "" {
		return errors.New("usage: copy <table> [cols]")
	}
	var cols []ast.Ident
	for _, c := range strings.Split(tail, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !isIdentToken(c) {
			return fmt.Errorf("invalid column name %q", c)
		}
		cols = append(cols, c)
	}
	s.registerTable(name, nil)
	s.setMode(modeCopy)
	s.copyStmt = ast.NewCopy(objectName(name), cols, nil)
	_, _ = fmt.Fprintf(s.out, "  COPY %q FROM stdin — append values with 'row'\n", name)
	return nil
}

// cmdRow appends data values to the active COPY statement. The token
// \N stands for a null cell.
func (s *Session) cmdRow(args string) error {
	if s.mode != modeCopy || s.copyStmt == nil {
		return errors.New("row requires an active COPY (use 'copy <table>' first)")
	}
	count := 0
	for _, p := range splitTopLevelCommas(args) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if p == `\N` {
			s.copyStmt.Values = append(s.copyStmt.Values, nil)
		} else {
			s.copyStmt.Values = append(s.copyStmt.Values, ast.String(unquote(p)))
		}
		count++
	}
	_, _ = fmt.Fprintf(s.out, "  Appended %d values\n", count)
	return nil
}
