package managers

import "github.com/bawdo/streamsql/ast"

// JoinContext is returned by SelectManager.Join() and enforces that a
// join condition is provided via On() or Using() before continuing to
// build the query. This prevents incomplete JOINs in the AST.
type JoinContext struct {
	manager *SelectManager
	join    *ast.Join
}

// On sets the join condition and returns the SelectManager for
// continued method chaining.
func (jc *JoinContext) On(condition ast.Expr) *SelectManager {
	jc.join.On = condition
	return jc.manager
}

// Using sets the USING column list and returns the SelectManager for
// continued method chaining.
func (jc *JoinContext) Using(columns ...ast.Ident) *SelectManager {
	jc.join.Using = columns
	return jc.manager
}
