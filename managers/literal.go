package managers

import (
	"fmt"

	"github.com/bawdo/streamsql/ast"
)

// Literal converts a raw Go value to a literal expression. Expressions
// pass through unchanged and ast.Value leaves are wrapped; negative
// integers become unary minus over the unsigned literal, matching how
// the AST models signed numbers.
func Literal(val any) ast.Expr {
	switch v := val.(type) {
	case ast.Expr:
		return v
	case ast.Value:
		return ast.NewLiteral(v)
	case string:
		return ast.NewLiteral(ast.SingleQuotedString(v))
	case bool:
		return ast.NewLiteral(ast.Boolean(v))
	case int:
		return longLiteral(int64(v))
	case int32:
		return longLiteral(int64(v))
	case int64:
		return longLiteral(v)
	case uint:
		return ast.NewLiteral(ast.Long(v))
	case uint32:
		return ast.NewLiteral(ast.Long(v))
	case uint64:
		return ast.NewLiteral(ast.Long(v))
	case float32:
		return ast.NewLiteral(ast.Double(v))
	case float64:
		return ast.NewLiteral(ast.Double(v))
	case nil:
		return ast.NewLiteral(ast.Null{})
	}
	panic(fmt.Sprintf("streamsql: unsupported literal type %T", val))
}

func longLiteral(v int64) ast.Expr {
	if v < 0 {
		return ast.NewUnaryExpr(ast.OpMinus, ast.NewLiteral(ast.Long(uint64(-v))))
	}
	return ast.NewLiteral(ast.Long(uint64(v)))
}

// conjoin folds conditions into a single expression, combining with AND.
func conjoin(conditions []ast.Expr) ast.Expr {
	if len(conditions) == 0 {
		return nil
	}
	combined := conditions[0]
	for _, c := range conditions[1:] {
		combined = ast.NewBinaryExpr(combined, ast.OpAnd, c)
	}
	return combined
}
