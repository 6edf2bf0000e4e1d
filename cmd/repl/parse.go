package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/streamsql/ast"
	"github.com/bawdo/streamsql/managers"
)

// tokenize splits input into tokens, respecting single-quoted strings
// and recognising multi-char operators (!=, <>, >=, <=) and punctuation.
func tokenize(input string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if inQuote {
			cur.WriteByte(ch)
			if ch == '\'' {
				if i+1 < len(input) && input[i+1] == '\'' {
					cur.WriteByte('\'')
					i++
				} else {
					inQuote = false
					flush()
				}
			}
			continue
		}

		switch {
		case ch == '\'':
			flush()
			cur.WriteByte(ch)
			inQuote = true

		case ch == '(' || ch == ')' || ch == ',':
			flush()
			tokens = append(tokens, string(ch))

		case ch == '!' && i+1 < len(input) && input[i+1] == '=':
			flush()
			tokens = append(tokens, "!=")
			i++
		case ch == '<' && i+1 < len(input) && input[i+1] == '>':
			flush()
			tokens = append(tokens, "<>")
			i++
		case ch == '<' && i+1 < len(input) && input[i+1] == '=':
			flush()
			tokens = append(tokens, "<=")
			i++
		case ch == '>' && i+1 < len(input) && input[i+1] == '=':
			flush()
			tokens = append(tokens, ">=")
			i++
		case ch == '=' || ch == '>' || ch == '<':
			flush()
			tokens = append(tokens, string(ch))
		case ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '%':
			flush()
			tokens = append(tokens, string(ch))

		case ch == ' ' || ch == '\t':
			flush()

		default:
			cur.WriteByte(ch)
		}
	}
	flush()
	return tokens
}

// parseValue converts a token string to a Go value suitable for Literal().
func parseValue(token string) (any, error) {
	lower := strings.ToLower(token)
	if lower == "true" {
		return true, nil
	}
	if lower == "false" {
		return false, nil
	}
	if lower == "null" {
		return nil, nil
	}
	if strings.HasPrefix(token, "'") && strings.HasSuffix(token, "'") && len(token) >= 2 {
		inner := token[1 : len(token)-1]
		return strings.ReplaceAll(inner, "''", "'"), nil
	}
	if i, err := strconv.Atoi(token); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse value: %s", token)
}

// splitTopLevelCommas splits input on commas outside parentheses and quotes.
func splitTopLevelCommas(input string) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	inQuote := false

	for i := 0; i < len(input); i++ {
		ch := input[i]
		if inQuote {
			cur.WriteByte(ch)
			if ch == '\'' {
				if i+1 < len(input) && input[i+1] == '\'' {
					cur.WriteByte('\'')
					i++
				} else {
					inQuote = false
				}
			}
			continue
		}
		switch ch {
		case '\'':
			inQuote = true
			cur.WriteByte(ch)
		case '(':
			depth++
			cur.WriteByte(ch)
		case ')':
			depth--
			cur.WriteByte(ch)
		case ',':
			if depth == 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			} else {
				cur.WriteByte(ch)
			}
		default:
			cur.WriteByte(ch)
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		parts = append(parts, cur.String())
	}
	return parts
}

// nextToken splits off the first whitespace-delimited token. Quoted
// tokens keep their quotes; the remainder comes back trimmed.
func nextToken(s string) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	if s[0] == '\'' {
		for i := 1; i < len(s); i++ {
			if s[i] == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					i++
					continue
				}
				return s[:i+1], strings.TrimSpace(s[i+1:])
			}
		}
		return s, ""
	}
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			return s[:i], strings.TrimSpace(s[i:])
		}
	}
	return s, ""
}

// unquote strips surrounding single quotes and unescapes doubled quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

// isIdentToken reports whether the token is a plain SQL identifier.
func isIdentToken(token string) bool {
	if len(token) == 0 {
		return false
	}
	for i := 0; i < len(token); i++ {
		ch := token[i]
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch == '_':
		case ch >= '0' && ch <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// identParts splits a possibly-dotted name into its identifier parts.
func identParts(name string) []ast.Ident {
	return strings.Split(name, ".")
}

// objectName converts a possibly-dotted name string to an ObjectName.
func objectName(name string) ast.ObjectName {
	return ast.NewObjectName(identParts(name)...)
}

// tableFactor parses "table" or "table alias" into a relation plus the
// name to register for completion.
func tableFactor(arg string) (ast.TableFactor, string, error) {
	fields := strings.Fields(arg)
	switch len(fields) {
	case 1:
		return ast.NewTable(objectName(fields[0]), ""), fields[0], nil
	case 2:
		if !isIdentToken(fields[1]) {
			return nil, "", fmt.Errorf("invalid alias %q", fields[1])
		}
		return ast.NewTable(objectName(fields[0]), fields[1]), fields[0], nil
	default:
		return nil, "", fmt.Errorf("expected <table> [alias], got %q", arg)
	}
}

// parseColumnSpecs parses a list of col:type[:flag...] specs.
func parseColumnSpecs(specs []string) ([]*ast.ColumnDef, error) {
	var cols []*ast.ColumnDef
	for _, spec := range specs {
		col, err := parseColumnSpec(spec)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return nil, errors.New("at least one column spec is required (name:type)")
	}
	return cols, nil
}

// parseColumnSpec parses a single "name:type[:pk][:uniq][:null]" spec.
// Columns are NOT NULL unless the null flag is given.
func parseColumnSpec(spec string) (*ast.ColumnDef, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid column spec %q (want name:type[:pk][:uniq][:null])", spec)
	}
	name := parts[0]
	if !isIdentToken(name) {
		return nil, fmt.Errorf("invalid column name %q", name)
	}
	typ, err := parseTypeToken(parts[1])
	if err != nil {
		return nil, err
	}

	primary, unique, allowNull := false, false, false
	for _, flag := range parts[2:] {
		switch strings.ToLower(flag) {
		case "pk", "primary":
			primary = true
		case "uniq", "unique":
			unique = true
		case "null":
			allowNull = true
		default:
			return nil, fmt.Errorf("unknown column flag %q (want pk, uniq, or null)", flag)
		}
	}
	return ast.NewColumnDef(name, typ, primary, unique, nil, allowNull), nil
}

// parseTypeToken parses a type token such as "bigint", "varchar(64)",
// "decimal(10,2)", or "int[]" into a DataType.
func parseTypeToken(token string) (ast.DataType, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("empty type")
	}

	if strings.HasSuffix(token, "[]") {
		elem, err := parseTypeToken(strings.TrimSuffix(token, "[]"))
		if err != nil {
			return nil, err
		}
		return ast.NewArrayType(elem), nil
	}

	base := token
	var params []uint64
	if open := strings.IndexByte(token, '('); open >= 0 {
		if !strings.HasSuffix(token, ")") {
			return nil, fmt.Errorf("unbalanced parentheses in type %q", token)
		}
		base = token[:open]
		inner := token[open+1 : len(token)-1]
		for _, p := range strings.Split(inner, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			n, err := strconv.ParseUint(p, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid type parameter %q in %q", p, token)
			}
			params = append(params, n)
		}
	}

	requireOne := func(kind string) (uint64, error) {
		if len(params) != 1 {
			return 0, fmt.Errorf("%s requires a length, e.g. %s(32)", kind, kind)
		}
		return params[0], nil
	}
	atMostOne := func(kind string) (*uint64, error) {
		switch len(params) {
		case 0:
			return nil, nil
		case 1:
			return ast.Uint64(params[0]), nil
		default:
			return nil, fmt.Errorf("%s takes at most one length parameter", kind)
		}
	}

	switch strings.ToLower(base) {
	case "uuid":
		return ast.NewSimpleType(ast.TypeUUID), nil
	case "smallint":
		return ast.NewSimpleType(ast.TypeSmallInt), nil
	case "int", "integer":
		return ast.NewSimpleType(ast.TypeInt), nil
	case "bigint":
		return ast.NewSimpleType(ast.TypeBigInt), nil
	case "real":
		return ast.NewSimpleType(ast.TypeReal), nil
	case "double":
		return ast.NewSimpleType(ast.TypeDouble), nil
	case "boolean", "bool":
		return ast.NewSimpleType(ast.TypeBoolean), nil
	case "date":
		return ast.NewSimpleType(ast.TypeDate), nil
	case "time":
		return ast.NewSimpleType(ast.TypeTime), nil
	case "timestamp":
		return ast.NewSimpleType(ast.TypeTimestamp), nil
	case "regclass":
		return ast.NewSimpleType(ast.TypeRegclass), nil
	case "text", "string":
		return ast.NewSimpleType(ast.TypeText), nil
	case "bytea":
		return ast.NewSimpleType(ast.TypeBytea), nil
	case "char":
		length, err := atMostOne("char")
		if err != nil {
			return nil, err
		}
		return ast.NewCharType(length), nil
	case "varchar":
		length, err := atMostOne("varchar")
		if err != nil {
			return nil, err
		}
		return ast.NewVarcharType(length), nil
	case "clob":
		length, err := requireOne("clob")
		if err != nil {
			return nil, err
		}
		return ast.NewClobType(length), nil
	case "binary":
		length, err := requireOne("binary")
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryType(length), nil
	case "varbinary":
		length, err := requireOne("varbinary")
		if err != nil {
			return nil, err
		}
		return ast.NewVarbinaryType(length), nil
	case "blob":
		length, err := requireOne("blob")
		if err != nil {
			return nil, err
		}
		return ast.NewBlobType(length), nil
	case "decimal", "numeric":
		switch len(params) {
		case 0:
			return ast.NewDecimalType(nil, nil), nil
		case 1:
			return ast.NewDecimalType(ast.Uint64(params[0]), nil), nil
		case 2:
			return ast.NewDecimalType(ast.Uint64(params[0]), ast.Uint64(params[1])), nil
		default:
			return nil, errors.New("decimal takes at most precision and scale")
		}
	case "float":
		length, err := atMostOne("float")
		if err != nil {
			return nil, err
		}
		return ast.NewFloatType(length), nil
	}

	if len(params) > 0 {
		return nil, fmt.Errorf("type %q does not take parameters", base)
	}
	for _, part := range identParts(base) {
		if !isIdentToken(part) {
			return nil, fmt.Errorf("invalid type %q", token)
		}
	}
	return ast.NewCustomType(objectName(base)), nil
}

// parseWithOptions parses an optional "[with] k=v, k=v" tail, with or
// without surrounding parentheses, into WITH options.
func parseWithOptions(tail string) ([]*ast.WithOption, error) {
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return nil, nil
	}
	if kw, rest := nextToken(tail); strings.EqualFold(kw, "with") {
		tail = rest
	}
	if strings.HasPrefix(tail, "(") && strings.HasSuffix(tail, ")") {
		tail = tail[1 : len(tail)-1]
	}

	var opts []*ast.WithOption
	for _, part := range splitTopLevelCommas(tail) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid option %q (want key=value)", part)
		}
		key := strings.TrimSpace(kv[0])
		if !isIdentToken(key) {
			return nil, fmt.Errorf("invalid option name %q", key)
		}
		val, err := parseOptionValue(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, err
		}
		opts = append(opts, ast.NewWithOption(key, val))
	}
	if len(opts) == 0 {
		return nil, errors.New("expected at least one key=value option")
	}
	return opts, nil
}

// parseOptionValue converts a raw option value string to an ast.Value.
func parseOptionValue(raw string) (ast.Value, error) {
	switch strings.ToLower(raw) {
	case "true":
		return ast.Boolean(true), nil
	case "false":
		return ast.Boolean(false), nil
	case "null":
		return ast.Null{}, nil
	}
	if strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") && len(raw) >= 2 {
		return ast.SingleQuotedString(strings.ReplaceAll(raw[1:len(raw)-1], "''", "'")), nil
	}
	if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return ast.Long(u), nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return ast.Double(f), nil
	}
	return nil, fmt.Errorf("cannot parse option value: %s", raw)
}

// --- Condition parsing (AND/OR combinators over comparisons) ---

// exprPart holds a segment of tokens forming a single condition, plus the
// combinator keyword ("and" or "or") that follows it. The last part has
// an empty combinator.
type exprPart struct {
	tokens     []string
	combinator string
}

// splitExpressionParts splits tokens on top-level AND/OR keywords, respecting
// parenthesised groups and BETWEEN ... AND ... ranges.
func splitExpressionParts(tokens []string) []exprPart {
	var parts []exprPart
	var cur []string
	depth := 0
	inBetween := false

	for i := 0; i < len(tokens); i++ {
		lower := strings.ToLower(tokens[i])

		if lower == "(" {
			depth++
			cur = append(cur, tokens[i])
			continue
		}
		if lower == ")" {
			depth--
			cur = append(cur, tokens[i])
			continue
		}

		if depth > 0 {
			cur = append(cur, tokens[i])
			continue
		}

		if lower == "between" {
			inBetween = true
			cur = append(cur, tokens[i])
			continue
		}

		// "NOT BETWEEN" also has a BETWEEN-style AND that should not split.
		if lower == "not" && i+1 < len(tokens) && strings.ToLower(tokens[i+1]) == "between" {
			cur = append(cur, tokens[i])
			i++
			inBetween = true
			cur = append(cur, tokens[i])
			continue
		}

		if lower == "and" && inBetween {
			inBetween = false
			cur = append(cur, tokens[i])
			continue
		}

		if lower == "and" || lower == "or" {
			parts = append(parts, exprPart{tokens: cur, combinator: lower})
			cur = nil
			continue
		}

		cur = append(cur, tokens[i])
	}

	if len(cur) > 0 {
		parts = append(parts, exprPart{tokens: cur})
	}
	return parts
}

// parseCondition parses a condition string like "region = 'eu'" or
// "reading > 20 and sensors.active = true" into an expression.
func (s *Session) parseCondition(input string) (ast.Expr, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("empty expression")
	}
	return s.parseBooleanTokens(tokenize(input))
}

// parseBooleanTokens parses pre-tokenized input with AND/OR combinators.
// AND binds tighter than OR (standard SQL precedence).
func (s *Session) parseBooleanTokens(tokens []string) (ast.Expr, error) {
	parts := splitExpressionParts(tokens)
	if len(parts) == 0 {
		return nil, errors.New("empty expression")
	}

	// Group runs of AND-connected parts, then OR the groups together.
	var orExprs []ast.Expr
	var andExpr ast.Expr
	for _, p := range parts {
		cond, err := s.parseSingleCondition(p.tokens)
		if err != nil {
			return nil, err
		}
		if andExpr == nil {
			andExpr = cond
		} else {
			andExpr = ast.NewBinaryExpr(andExpr, ast.OpAnd, cond)
		}
		if p.combinator == "or" || p.combinator == "" {
			orExprs = append(orExprs, andExpr)
			andExpr = nil
		}
	}
	if andExpr != nil {
		return nil, errors.New("trailing AND without right-hand condition")
	}

	result := orExprs[0]
	for _, e := range orExprs[1:] {
		result = ast.NewBinaryExpr(result, ast.OpOr, e)
	}
	return result, nil
}

// parseSingleCondition handles an optional NOT prefix and fully
// parenthesised groups, then delegates to parseComparison.
func (s *Session) parseSingleCondition(tokens []string) (ast.Expr, error) {
	if len(tokens) == 0 {
		return nil, errors.New("empty condition")
	}

	if strings.ToLower(tokens[0]) == "not" {
		inner, err := s.parseSingleCondition(tokens[1:])
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(ast.OpNot, inner), nil
	}

	if tokens[0] == "(" && closesAtEnd(tokens) {
		inner, err := s.parseBooleanTokens(tokens[1 : len(tokens)-1])
		if err != nil {
			return nil, err
		}
		return ast.NewNested(inner), nil
	}

	return s.parseComparison(tokens)
}

// closesAtEnd reports whether the opening paren at tokens[0] matches the
// final token, i.e. the whole slice is one parenthesised group.
func closesAtEnd(tokens []string) bool {
	depth := 0
	for i, t := range tokens {
		switch t {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return i == len(tokens)-1
			}
		}
	}
	return false
}

// comparisonOp maps a comparison operator token to an ast.Operator.
func comparisonOp(token string) (ast.Operator, bool) {
	switch token {
	case "=":
		return ast.OpEq, true
	case "!=", "<>":
		return ast.OpNotEq, true
	case ">":
		return ast.OpGt, true
	case ">=":
		return ast.OpGtEq, true
	case "<":
		return ast.OpLt, true
	case "<=":
		return ast.OpLtEq, true
	default:
		return 0, false
	}
}

// parseComparison parses one condition: an operand optionally followed by
// a comparison operator and right side, IS [NOT] NULL, [NOT] IN, [NOT]
// BETWEEN, or [NOT] LIKE. A bare operand is returned unchanged.
func (s *Session) parseComparison(tokens []string) (ast.Expr, error) {
	left, pos, err := s.parseOperand(tokens, 0)
	if err != nil {
		return nil, err
	}
	if pos >= len(tokens) {
		return left, nil
	}

	op := strings.ToLower(tokens[pos])

	if cmpOp, ok := comparisonOp(op); ok {
		right, nextPos, err := s.parseOperand(tokens, pos+1)
		if err != nil {
			return nil, err
		}
		if nextPos < len(tokens) {
			return nil, fmt.Errorf("unexpected token %q after comparison", tokens[nextPos])
		}
		return ast.NewBinaryExpr(left, cmpOp, right), nil
	}

	switch op {
	case "is":
		return parseIsCondition(left, tokens[pos+1:])
	case "like":
		right, nextPos, err := s.parseOperand(tokens, pos+1)
		if err != nil {
			return nil, err
		}
		if nextPos < len(tokens) {
			return nil, fmt.Errorf("unexpected token %q after LIKE pattern", tokens[nextPos])
		}
		return ast.NewBinaryExpr(left, ast.OpLike, right), nil
	case "in":
		list, err := s.parseInList(tokens[pos+1:])
		if err != nil {
			return nil, err
		}
		return ast.NewInList(left, list, false), nil
	case "between":
		low, high, err := s.parseBetweenBounds(tokens[pos+1:])
		if err != nil {
			return nil, err
		}
		return ast.NewBetween(left, false, low, high), nil
	case "not":
		rest := tokens[pos+1:]
		if len(rest) == 0 {
			return nil, errors.New("expected IN, LIKE, or BETWEEN after NOT")
		}
		switch strings.ToLower(rest[0]) {
		case "in":
			list, err := s.parseInList(rest[1:])
			if err != nil {
				return nil, err
			}
			return ast.NewInList(left, list, true), nil
		case "like":
			right, nextPos, err := s.parseOperand(rest, 1)
			if err != nil {
				return nil, err
			}
			if nextPos < len(rest) {
				return nil, fmt.Errorf("unexpected token %q after NOT LIKE pattern", rest[nextPos])
			}
			return ast.NewBinaryExpr(left, ast.OpNotLike, right), nil
		case "between":
			low, high, err := s.parseBetweenBounds(rest[1:])
			if err != nil {
				return nil, err
			}
			return ast.NewBetween(left, true, low, high), nil
		default:
			return nil, fmt.Errorf("expected IN, LIKE, or BETWEEN after NOT, got %s", rest[0])
		}
	default:
		return nil, fmt.Errorf("unknown operator: %s", op)
	}
}

// parseIsCondition handles IS NULL and IS NOT NULL.
func parseIsCondition(left ast.Expr, tokens []string) (ast.Expr, error) {
	if len(tokens) == 1 && strings.ToLower(tokens[0]) == "null" {
		return ast.NewIsNull(left, false), nil
	}
	if len(tokens) == 2 && strings.ToLower(tokens[0]) == "not" && strings.ToLower(tokens[1]) == "null" {
		return ast.NewIsNull(left, true), nil
	}
	return nil, errors.New("expected NULL or NOT NULL after IS")
}

// parseInList parses "( item, item, ... )" into a list of expressions.
func (s *Session) parseInList(tokens []string) ([]ast.Expr, error) {
	if len(tokens) == 0 || tokens[0] != "(" {
		return nil, errors.New("expected ( after IN")
	}
	pos := 1
	var list []ast.Expr
	for pos < len(tokens) && tokens[pos] != ")" {
		if tokens[pos] == "," {
			pos++
			continue
		}
		item, nextPos, err := s.parseOperand(tokens, pos)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
		pos = nextPos
	}
	if pos >= len(tokens) {
		return nil, errors.New("expected ) to close IN list")
	}
	if len(list) == 0 {
		return nil, errors.New("IN requires at least one value")
	}
	if pos+1 < len(tokens) {
		return nil, fmt.Errorf("unexpected token %q after IN list", tokens[pos+1])
	}
	return list, nil
}

// parseBetweenBounds parses "<low> AND <high>".
func (s *Session) parseBetweenBounds(tokens []string) (low, high ast.Expr, err error) {
	low, pos, err := s.parseOperand(tokens, 0)
	if err != nil {
		return nil, nil, err
	}
	if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "and" {
		return nil, nil, errors.New("expected AND between BETWEEN bounds")
	}
	high, nextPos, err := s.parseOperand(tokens, pos+1)
	if err != nil {
		return nil, nil, err
	}
	if nextPos < len(tokens) {
		return nil, nil, fmt.Errorf("unexpected token %q after BETWEEN bounds", tokens[nextPos])
	}
	return low, high, nil
}

// --- Operand parsing (arithmetic over atoms) ---

// parseOperand parses an arithmetic expression from tokens starting at pos.
// Returns the expression, the next position, and any error.
func (s *Session) parseOperand(tokens []string, pos int) (ast.Expr, int, error) {
	return s.parseAddSub(tokens, pos)
}

// operandFromTokens parses an operand and requires full consumption.
func (s *Session) operandFromTokens(tokens []string) (ast.Expr, error) {
	expr, pos, err := s.parseOperand(tokens, 0)
	if err != nil {
		return nil, err
	}
	if pos < len(tokens) {
		return nil, fmt.Errorf("unexpected token %q in expression", tokens[pos])
	}
	return expr, nil
}

// parseScalar parses a complete scalar expression string.
func (s *Session) parseScalar(input string) (ast.Expr, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("empty expression")
	}
	return s.operandFromTokens(tokenize(input))
}

func (s *Session) parseAddSub(tokens []string, pos int) (ast.Expr, int, error) {
	left, pos, err := s.parseMulDiv(tokens, pos)
	if err != nil {
		return nil, pos, err
	}
	for pos < len(tokens) {
		var op ast.Operator
		switch tokens[pos] {
		case "+":
			op = ast.OpPlus
		case "-":
			op = ast.OpMinus
		default:
			return left, pos, nil
		}
		right, nextPos, err := s.parseMulDiv(tokens, pos+1)
		if err != nil {
			return nil, pos, err
		}
		left = ast.NewBinaryExpr(left, op, right)
		pos = nextPos
	}
	return left, pos, nil
}

func (s *Session) parseMulDiv(tokens []string, pos int) (ast.Expr, int, error) {
	left, pos, err := s.parseAtom(tokens, pos)
	if err != nil {
		return nil, pos, err
	}
	for pos < len(tokens) {
		var op ast.Operator
		switch tokens[pos] {
		case "*":
			op = ast.OpMultiply
		case "/":
			op = ast.OpDivide
		case "%":
			op = ast.OpModulus
		default:
			return left, pos, nil
		}
		right, nextPos, err := s.parseAtom(tokens, pos+1)
		if err != nil {
			return nil, pos, err
		}
		left = ast.NewBinaryExpr(left, op, right)
		pos = nextPos
	}
	return left, pos, nil
}

// parseAtom parses a single atom: parenthesised group, CASE expression,
// function call, column reference, or literal value.
func (s *Session) parseAtom(tokens []string, pos int) (ast.Expr, int, error) {
	if pos >= len(tokens) {
		return nil, pos, errors.New("expected expression")
	}

	token := tokens[pos]
	lower := strings.ToLower(token)

	if token == "-" {
		atom, nextPos, err := s.parseAtom(tokens, pos+1)
		if err != nil {
			return nil, pos, err
		}
		return ast.NewUnaryExpr(ast.OpMinus, atom), nextPos, nil
	}

	if token == "(" {
		end, err := matchingParen(tokens, pos)
		if err != nil {
			return nil, pos, err
		}
		inner, err := s.parseBooleanTokens(tokens[pos+1 : end])
		if err != nil {
			return nil, pos, err
		}
		return ast.NewNested(inner), end + 1, nil
	}

	if lower == "case" {
		return s.parseCaseTokens(tokens, pos)
	}

	if lower == "cast" && pos+1 < len(tokens) && tokens[pos+1] == "(" {
		return s.parseCastCall(tokens, pos)
	}

	if pos+1 < len(tokens) && tokens[pos+1] == "(" && isFunctionName(token) {
		return s.parseFunctionCall(tokens, pos)
	}

	// Identifier or compound identifier.
	if isIdentStart(token) && lower != "true" && lower != "false" && lower != "null" {
		parts := identParts(token)
		for _, part := range parts {
			if !isIdentToken(part) {
				return nil, pos, fmt.Errorf("invalid identifier %q", token)
			}
		}
		if len(parts) > 1 {
			return ast.NewCompoundIdentifier(parts...), pos + 1, nil
		}
		return ast.NewIdentifier(parts[0]), pos + 1, nil
	}

	val, err := parseValue(token)
	if err != nil {
		return nil, pos, err
	}
	return managers.Literal(val), pos + 1, nil
}

// isIdentStart reports whether the token begins like an identifier.
func isIdentStart(token string) bool {
	if len(token) == 0 {
		return false
	}
	ch := token[0]
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

// isFunctionName reports whether the token can name a function, allowing
// dotted names like pg_catalog.now.
func isFunctionName(token string) bool {
	for _, part := range identParts(token) {
		if !isIdentToken(part) {
			return false
		}
	}
	return true
}

// matchingParen returns the index of the ) matching the ( at open.
func matchingParen(tokens []string, open int) (int, error) {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i] {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, errors.New("unbalanced parentheses")
}

// parseFunctionCall parses NAME([ALL|DISTINCT] args...) with an optional
// OVER ( window ) clause, including count(*).
func (s *Session) parseFunctionCall(tokens []string, pos int) (ast.Expr, int, error) {
	funcName := tokens[pos]
	pos += 2 // skip name and (

	all, distinct := false, false
	if pos < len(tokens) {
		switch strings.ToLower(tokens[pos]) {
		case "all":
			all = true
			pos++
		case "distinct":
			distinct = true
			pos++
		}
	}

	var args []ast.Expr
	if pos < len(tokens) && tokens[pos] == "*" {
		args = append(args, ast.NewWildcard())
		pos++
	} else {
		for pos < len(tokens) && tokens[pos] != ")" {
			if tokens[pos] == "," {
				pos++
				continue
			}
			arg, nextPos, err := s.parseOperand(tokens, pos)
			if err != nil {
				return nil, pos, err
			}
			args = append(args, arg)
			pos = nextPos
		}
	}

	if pos >= len(tokens) || tokens[pos] != ")" {
		return nil, pos, fmt.Errorf("expected ) after %s arguments", funcName)
	}
	pos++ // skip )

	var over *ast.WindowSpec
	if pos < len(tokens) && strings.ToLower(tokens[pos]) == "over" {
		pos++
		if pos >= len(tokens) || tokens[pos] != "(" {
			return nil, pos, errors.New("expected ( after OVER")
		}
		pos++ // skip (
		spec, nextPos, err := s.parseWindowSpec(tokens, pos)
		if err != nil {
			return nil, pos, err
		}
		pos = nextPos
		if pos >= len(tokens) || tokens[pos] != ")" {
			return nil, pos, errors.New("expected ) after OVER clause")
		}
		pos++ // skip )
		over = spec
	}

	return ast.NewFunctionCall(objectName(funcName), args, over, all, distinct), pos, nil
}

// parseCastCall parses CAST(expr AS type).
func (s *Session) parseCastCall(tokens []string, pos int) (ast.Expr, int, error) {
	pos += 2 // skip cast and (

	expr, nextPos, err := s.parseOperand(tokens, pos)
	if err != nil {
		return nil, pos, err
	}
	pos = nextPos
	if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "as" {
		return nil, pos, errors.New("expected AS in CAST expression")
	}
	pos++ // skip AS

	var typeParts []string
	depth := 0
TypeLoop:
	for pos < len(tokens) {
		switch tokens[pos] {
		case "(":
			depth++
		case ")":
			if depth == 0 {
				break TypeLoop
			}
			depth--
		}
		typeParts = append(typeParts, tokens[pos])
		pos++
	}
	if pos >= len(tokens) || tokens[pos] != ")" {
		return nil, pos, errors.New("expected ) after CAST type")
	}
	pos++ // skip )

	typ, err := parseTypeToken(strings.Join(typeParts, ""))
	if err != nil {
		return nil, pos, err
	}
	return ast.NewCast(expr, typ), pos, nil
}

// scanUntilKeyword scans tokens from pos, tracking parenthesis depth, and
// returns the collected tokens plus the position of the first top-level
// keyword match. If no keyword is found, pos ends at len(tokens).
func scanUntilKeyword(tokens []string, pos int, keywords ...string) ([]string, int) {
	start := pos
	depth := 0
	for pos < len(tokens) {
		switch {
		case tokens[pos] == "(":
			depth++
		case tokens[pos] == ")":
			depth--
		case depth == 0:
			lower := strings.ToLower(tokens[pos])
			for _, kw := range keywords {
				if lower == kw {
					return tokens[start:pos], pos
				}
			}
		}
		pos++
	}
	return tokens[start:pos], pos
}

// parseCaseTokens parses CASE [operand] WHEN cond THEN result ...
// [ELSE result] END.
func (s *Session) parseCaseTokens(tokens []string, pos int) (ast.Expr, int, error) {
	pos++ // skip CASE
	if pos >= len(tokens) {
		return nil, pos, errors.New("expected WHEN or operand after CASE")
	}

	var operand ast.Expr
	if strings.ToLower(tokens[pos]) != "when" {
		operandTokens, nextPos := scanUntilKeyword(tokens, pos, "when")
		op, err := s.operandFromTokens(operandTokens)
		if err != nil {
			return nil, pos, fmt.Errorf("CASE operand: %w", err)
		}
		operand = op
		pos = nextPos
	}

	var conditions, results []ast.Expr
	for pos < len(tokens) && strings.ToLower(tokens[pos]) == "when" {
		pos++ // skip WHEN
		condTokens, nextPos := scanUntilKeyword(tokens, pos, "then")
		if nextPos >= len(tokens) {
			return nil, nextPos, errors.New("expected THEN in CASE expression")
		}
		pos = nextPos + 1 // skip THEN

		resultTokens, nextPos := scanUntilKeyword(tokens, pos, "when", "else", "end")
		pos = nextPos

		cond, err := s.parseBooleanTokens(condTokens)
		if err != nil {
			return nil, pos, fmt.Errorf("CASE WHEN condition: %w", err)
		}
		result, err := s.operandFromTokens(resultTokens)
		if err != nil {
			return nil, pos, fmt.Errorf("CASE THEN result: %w", err)
		}
		conditions = append(conditions, cond)
		results = append(results, result)
	}
	if len(conditions) == 0 {
		return nil, pos, errors.New("CASE requires at least one WHEN clause")
	}

	var elseResult ast.Expr
	if pos < len(tokens) && strings.ToLower(tokens[pos]) == "else" {
		pos++ // skip ELSE
		elseTokens, nextPos := scanUntilKeyword(tokens, pos, "end")
		pos = nextPos
		e, err := s.operandFromTokens(elseTokens)
		if err != nil {
			return nil, pos, fmt.Errorf("CASE ELSE: %w", err)
		}
		elseResult = e
	}

	if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "end" {
		return nil, pos, errors.New("expected END in CASE expression")
	}
	pos++ // skip END

	return ast.NewCaseExpr(operand, conditions, results, elseResult), pos, nil
}

// --- Projections ---

// parseProjection parses "expr [[AS] alias]" for the select command.
func (s *Session) parseProjection(input string) (ast.Expr, ast.Ident, error) {
	tokens := tokenize(input)
	expr, pos, err := s.parseOperand(tokens, 0)
	if err != nil {
		return nil, "", err
	}
	if pos >= len(tokens) {
		return expr, "", nil
	}
	if strings.ToLower(tokens[pos]) == "as" {
		pos++
	}
	if pos >= len(tokens) || !isIdentToken(tokens[pos]) {
		return nil, "", fmt.Errorf("expected alias identifier, got %q", strings.Join(tokens[pos:], " "))
	}
	alias := tokens[pos]
	if pos+1 < len(tokens) {
		return nil, "", fmt.Errorf("unexpected token %q after alias", tokens[pos+1])
	}
	return expr, alias, nil
}

// --- Window specifications ---

// parseWindowSpec parses the contents of OVER ( ... ):
// [PARTITION BY exprs] [ORDER BY exprs [ASC|DESC]] [frame]. It stops at
// the closing ) and leaves it for the caller.
func (s *Session) parseWindowSpec(tokens []string, pos int) (*ast.WindowSpec, int, error) {
	var partitionBy []ast.Expr
	var orderBy []*ast.OrderByExpr
	var frame *ast.WindowFrame

	if pos < len(tokens) && strings.ToLower(tokens[pos]) == "partition" {
		pos++
		if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "by" {
			return nil, pos, errors.New("expected BY after PARTITION")
		}
		pos++ // skip BY
		for pos < len(tokens) && tokens[pos] != ")" {
			lower := strings.ToLower(tokens[pos])
			if lower == "order" || lower == "rows" || lower == "range" || lower == "groups" {
				break
			}
			if tokens[pos] == "," {
				pos++
				continue
			}
			expr, nextPos, err := s.parseOperand(tokens, pos)
			if err != nil {
				return nil, pos, err
			}
			partitionBy = append(partitionBy, expr)
			pos = nextPos
		}
	}

	if pos < len(tokens) && strings.ToLower(tokens[pos]) == "order" {
		pos++
		if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "by" {
			return nil, pos, errors.New("expected BY after ORDER")
		}
		pos++ // skip BY
		for pos < len(tokens) && tokens[pos] != ")" {
			lower := strings.ToLower(tokens[pos])
			if lower == "rows" || lower == "range" || lower == "groups" {
				break
			}
			if tokens[pos] == "," {
				pos++
				continue
			}
			expr, nextPos, err := s.parseOperand(tokens, pos)
			if err != nil {
				return nil, pos, err
			}
			pos = nextPos

			var asc *bool
			if pos < len(tokens) {
				switch strings.ToLower(tokens[pos]) {
				case "asc":
					asc = ast.Bool(true)
					pos++
				case "desc":
					asc = ast.Bool(false)
					pos++
				}
			}
			orderBy = append(orderBy, ast.NewOrderByExpr(expr, asc))
		}
	}

	if pos < len(tokens) && tokens[pos] != ")" {
		lower := strings.ToLower(tokens[pos])
		if lower == "rows" || lower == "range" || lower == "groups" {
			f, nextPos, err := s.parseWindowFrame(tokens, pos)
			if err != nil {
				return nil, pos, err
			}
			frame = f
			pos = nextPos
		} else {
			return nil, pos, fmt.Errorf("unexpected token %q in window specification", tokens[pos])
		}
	}

	return ast.NewWindowSpec(partitionBy, orderBy, frame), pos, nil
}

// parseWindowFrame parses ROWS|RANGE|GROUPS [BETWEEN bound AND bound | bound].
func (s *Session) parseWindowFrame(tokens []string, pos int) (*ast.WindowFrame, int, error) {
	units, err := ast.ParseWindowFrameUnits(strings.ToUpper(tokens[pos]))
	if err != nil {
		return nil, pos, err
	}
	pos++ // skip units

	if pos >= len(tokens) {
		return nil, pos, errors.New("expected frame bound after frame units")
	}

	if strings.ToLower(tokens[pos]) == "between" {
		pos++ // skip BETWEEN
		start, nextPos, err := parseFrameBound(tokens, pos)
		if err != nil {
			return nil, pos, err
		}
		pos = nextPos
		if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "and" {
			return nil, pos, errors.New("expected AND in frame BETWEEN clause")
		}
		pos++ // skip AND
		end, nextPos, err := parseFrameBound(tokens, pos)
		if err != nil {
			return nil, pos, err
		}
		return ast.NewWindowFrame(units, start, end), nextPos, nil
	}

	start, nextPos, err := parseFrameBound(tokens, pos)
	if err != nil {
		return nil, pos, err
	}
	return ast.NewWindowFrame(units, start, nil), nextPos, nil
}

// parseFrameBound parses a single frame bound: UNBOUNDED PRECEDING,
// N PRECEDING, CURRENT ROW, N FOLLOWING, or UNBOUNDED FOLLOWING.
func parseFrameBound(tokens []string, pos int) (*ast.WindowFrameBound, int, error) {
	if pos >= len(tokens) {
		return nil, pos, errors.New("expected frame bound")
	}

	lower := strings.ToLower(tokens[pos])

	if lower == "unbounded" {
		pos++
		if pos >= len(tokens) {
			return nil, pos, errors.New("expected PRECEDING or FOLLOWING after UNBOUNDED")
		}
		dir := strings.ToLower(tokens[pos])
		pos++
		switch dir {
		case "preceding":
			return ast.UnboundedPreceding(), pos, nil
		case "following":
			return ast.UnboundedFollowing(), pos, nil
		}
		return nil, pos, fmt.Errorf("expected PRECEDING or FOLLOWING after UNBOUNDED, got %s", dir)
	}

	if lower == "current" {
		pos++
		if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "row" {
			return nil, pos, errors.New("expected ROW after CURRENT")
		}
		pos++ // skip ROW
		return ast.CurrentRow(), pos, nil
	}

	n, err := strconv.ParseUint(tokens[pos], 10, 64)
	if err != nil {
		return nil, pos, fmt.Errorf("expected frame bound offset, got %q", tokens[pos])
	}
	pos++
	if pos >= len(tokens) {
		return nil, pos, errors.New("expected PRECEDING or FOLLOWING after offset")
	}
	dir := strings.ToLower(tokens[pos])
	pos++
	switch dir {
	case "preceding":
		return ast.Preceding(ast.Uint64(n)), pos, nil
	case "following":
		return ast.Following(ast.Uint64(n)), pos, nil
	}
	return nil, pos, fmt.Errorf("expected PRECEDING or FOLLOWING after offset, got %s", dir)
}
