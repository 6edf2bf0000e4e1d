package ast

import "fmt"

// Operator is a binary or unary operator token.
type Operator int

const (
	OpPlus Operator = iota
	OpMinus
	OpMultiply
	OpDivide
	OpModulus
	OpGt
	OpLt
	OpGtEq
	OpLtEq
	OpEq
	OpNotEq
	OpAnd
	OpOr
	OpNot
	OpLike
	OpNotLike
)

var operatorSQL = [...]string{
	OpPlus:     "+",
	OpMinus:    "-",
	OpMultiply: "*",
	OpDivide:   "/",
	OpModulus:  "%",
	OpGt:       ">",
	OpLt:       "<",
	OpGtEq:     ">=",
	OpLtEq:     "<=",
	OpEq:       "=",
	OpNotEq:    "!=",
	OpAnd:      "AND",
	OpOr:       "OR",
	OpNot:      "NOT",
	OpLike:     "LIKE",
	OpNotLike:  "NOT LIKE",
}

// String returns the operator's canonical SQL symbol.
func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorSQL) {
		return fmt.Sprintf("Operator(%d)", int(op))
	}
	return operatorSQL[op]
}
