package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bawdo/streamsql/ast"
	"github.com/bawdo/streamsql/registry"
)

// --- Streaming DDL command handlers ---

// cmdTable registers a relation and, when column specs are given, builds
// a CREATE TABLE statement from them.
func (s *Session) cmdTable(args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return errors.New("usage: table <name> [<col>:<type>[:pk][:uniq][:null] ...]")
	}
	name := fields[0]
	if len(fields) == 1 {
		s.registerTable(name, nil)
		_, _ = fmt.Fprintf(s.out, "  Registered relation %q\n", name)
		return nil
	}

	cols, err := parseColumnSpecs(fields[1:])
	if err != nil {
		return err
	}
	s.registerTable(name, cols)
	s.setStatement(ast.NewCreateTable(objectName(name), cols, nil, false, nil, nil))
	_, _ = fmt.Fprintf(s.out, "  CREATE TABLE %q (%d columns)\n", name, len(cols))
	return nil
}

// cmdExternalTable builds a CREATE EXTERNAL TABLE statement:
// external table <name> <colspecs> format <fmt> location <path>.
func (s *Session) cmdExternalTable(args string) error {
	usage := errors.New("usage: external table <name> <colspecs> format <fmt> location <path>")

	lower := strings.ToLower(args)
	fmtIdx := strings.Index(lower, " format ")
	locIdx := strings.Index(lower, " location ")
	if fmtIdx < 0 || locIdx < 0 || locIdx < fmtIdx {
		return usage
	}

	head := strings.Fields(args[:fmtIdx])
	if len(head) < 2 {
		return usage
	}
	name := head[0]
	cols, err := parseColumnSpecs(head[1:])
	if err != nil {
		return err
	}

	formatTok := strings.TrimSpace(args[fmtIdx+len(" format ") : locIdx])
	format, err := ast.ParseFileFormat(strings.ToUpper(formatTok))
	if err != nil {
		return err
	}

	location := strings.TrimSpace(args[locIdx+len(" location "):])
	if location == "" {
		return usage
	}

	s.registerTable(name, cols)
	s.setStatement(ast.NewCreateTable(objectName(name), cols, nil, true, ast.FileFormatPtr(format), ast.String(location)))
	_, _ = fmt.Fprintf(s.out, "  CREATE EXTERNAL TABLE %q STORED AS %s\n", name, format)
	return nil
}

// cmdSource builds a CREATE DATA SOURCE statement:
// source <name> from <url> schema raw <text>
// source <name> from <url> schema registry <url> [with k=v, ...]
func (s *Session) cmdSource(args string) error {
	usage := errors.New("usage: source <name> from <url> schema raw <text> | schema registry <url> [with k=v, ...]")

	name, rest := nextToken(args)
	kw, rest := nextToken(rest)
	if name == "" || !strings.EqualFold(kw, "from") {
		return usage
	}
	url, rest := nextToken(rest)
	kw, rest = nextToken(rest)
	if url == "" || !strings.EqualFold(kw, "schema") {
		return usage
	}
	kind, rest := nextToken(rest)

	var schema ast.DataSourceSchema
	var opts []*ast.WithOption
	switch strings.ToLower(kind) {
	case "raw":
		if rest == "" {
			return errors.New("schema raw requires the schema text")
		}
		schema = ast.NewRawSchema(unquote(rest))
	case "registry":
		regURL, tail := nextToken(rest)
		if regURL == "" {
			return errors.New("schema registry requires a registry URL")
		}
		schema = ast.NewRegistrySchema(unquote(regURL))
		var err error
		opts, err = parseWithOptions(tail)
		if err != nil {
			return err
		}
	default:
		return usage
	}

	s.registerTable(name, nil)
	s.setStatement(ast.NewCreateDataSource(objectName(name), unquote(url), schema, opts))
	_, _ = fmt.Fprintf(s.out, "  CREATE DATA SOURCE %q FROM %s\n", name, unquote(url))
	return nil
}

// cmdSink builds a CREATE DATA SINK statement:
// sink <name> from <obj> into <url> [with k=v, ...]
func (s *Session) cmdSink(args string) error {
	usage := errors.New("usage: sink <name> from <obj> into <url> [with k=v, ...]")

	name, rest := nextToken(args)
	kw, rest := nextToken(rest)
	if name == "" || !strings.EqualFold(kw, "from") {
		return usage
	}
	from, rest := nextToken(rest)
	kw, rest = nextToken(rest)
	if from == "" || !strings.EqualFold(kw, "into") {
		return usage
	}
	url, tail := nextToken(rest)
	if url == "" {
		return usage
	}
	opts, err := parseWithOptions(tail)
	if err != nil {
		return err
	}

	s.setStatement(ast.NewCreateDataSink(objectName(name), objectName(from), unquote(url), opts))
	_, _ = fmt.Fprintf(s.out, "  CREATE DATA SINK %q FROM %q\n", name, from)
	return nil
}

// cmdView wraps the current query in a CREATE VIEW statement:
// view <name> [with k=v, ...]
func (s *Session) cmdView(args string, materialized bool) error {
	name, tail := nextToken(args)
	if name == "" {
		if materialized {
			return errors.New("usage: materialized view <name> [with k=v, ...]")
		}
		return errors.New("usage: view <name> [with k=v, ...]")
	}
	opts, err := parseWithOptions(tail)
	if err != nil {
		return err
	}
	q, err := s.buildQuery()
	if err != nil {
		return err
	}

	s.registerTable(name, nil)
	s.setOps = nil
	s.ctes = nil
	s.setStatement(ast.NewCreateView(objectName(name), q, materialized, opts))
	kind := "VIEW"
	if materialized {
		kind = "MATERIALIZED VIEW"
	}
	_, _ = fmt.Fprintf(s.out, "  CREATE %s %q\n", kind, name)
	return nil
}

// cmdDrop builds a DROP statement:
// drop table|source|view [if exists] <names> [cascade|restrict]
func (s *Session) cmdDrop(args string) error {
	usage := errors.New("usage: drop table|source|view [if exists] <names> [cascade|restrict]")

	fields := strings.Fields(args)
	if len(fields) < 2 {
		return usage
	}
	kind := strings.ToLower(fields[0])
	rest := fields[1:]

	ifExists := false
	if len(rest) >= 2 && strings.EqualFold(rest[0], "if") && strings.EqualFold(rest[1], "exists") {
		ifExists = true
		rest = rest[2:]
	}

	cascade, restrict := false, false
	if len(rest) > 0 {
		switch strings.ToLower(rest[len(rest)-1]) {
		case "cascade":
			cascade = true
			rest = rest[:len(rest)-1]
		case "restrict":
			restrict = true
			rest = rest[:len(rest)-1]
		}
	}

	var names []ast.ObjectName
	for _, n := range strings.Split(strings.Join(rest, " "), ",") {
		n = strings.TrimSpace(n)
		if n != "" {
			names = append(names, objectName(n))
		}
	}
	if len(names) == 0 {
		return errors.New("drop requires at least one name")
	}

	var stmt ast.Statement
	switch kind {
	case "table":
		stmt = ast.NewDropTable(ifExists, names, cascade, restrict)
	case "source":
		stmt = ast.NewDropDataSource(ifExists, names, cascade, restrict)
	case "view":
		stmt = ast.NewDropView(ifExists, names, cascade, restrict)
	default:
		return fmt.Errorf("drop target must be table, source, or view, got %q", fields[0])
	}
	s.setStatement(stmt)
	_, _ = fmt.Fprintf(s.out, "  DROP %s (%d names)\n", strings.ToUpper(kind), len(names))
	return nil
}

func (s *Session) cmdPeek(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return errors.New("usage: peek <name>")
	}
	s.setStatement(ast.NewPeek(objectName(name)))
	_, _ = fmt.Fprintf(s.out, "  PEEK %q\n", name)
	return nil
}

func (s *Session) cmdTail(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return errors.New("usage: tail <name>")
	}
	s.setStatement(ast.NewTail(objectName(name)))
	_, _ = fmt.Fprintf(s.out, "  TAIL %q\n", name)
	return nil
}

// --- Schema registry command handlers ---

func (s *Session) cmdRegistry(args string) error {
	url := strings.TrimSpace(args)
	if url == "" {
		if s.registryURL == "" {
			_, _ = fmt.Fprintln(s.out, "  No registry configured (use 'registry <url>')")
		} else {
			_, _ = fmt.Fprintf(s.out, "  Registry: %s\n", s.registryURL)
		}
		return nil
	}
	s.registryURL = url
	_, _ = fmt.Fprintf(s.out, "  Registry set to %s\n", url)
	return nil
}

// cmdSchemaFetch fetches a subject's latest schema from the configured
// registry and prints it.
func (s *Session) cmdSchemaFetch(args string) error {
	subject := strings.TrimSpace(args)
	if subject == "" {
		return errors.New("usage: schema fetch <subject>")
	}
	if s.registryURL == "" {
		return errors.New("no registry configured (use 'registry <url>' first)")
	}
	client := registry.NewClient(s.registryURL)
	schema, err := client.Latest(subject)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  Subject %s version %d (id %d):\n", schema.Subject, schema.Version, schema.ID)
	_, _ = fmt.Fprintf(s.out, "  %s\n", schema.Schema)
	return nil
}

// cmdResolve replaces the current data source's registry schema with the
// raw schema text fetched for the subject. Without an argument the
// subject defaults to "<source>-value", the registry's topic naming
// convention.
func (s *Session) cmdResolve(args string) error {
	src, ok := s.stmt.(*ast.CreateDataSource)
	if !ok {
		return errors.New("resolve requires a current 'source ... schema registry <url>' statement")
	}
	reg, ok := src.Schema.(*ast.RegistrySchema)
	if !ok {
		return errors.New("current source already carries a raw schema")
	}

	subject := strings.TrimSpace(args)
	if subject == "" {
		subject = src.Name[len(src.Name)-1] + "-value"
	}

	client := registry.NewClient(reg.URL)
	raw, err := client.Resolve(subject)
	if err != nil {
		return err
	}
	s.stmt = ast.NewCreateDataSource(src.Name, src.URL, raw, src.WithOptions)
	_, _ = fmt.Fprintf(s.out, "  Resolved subject %q (%d bytes of schema)\n", subject, len(raw.Schema))
	return nil
}
