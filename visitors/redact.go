package visitors

import "github.com/bawdo/streamsql/ast"

// RedactingVisitor renders SQL with every literal value replaced by
// '[REDACTED]', making statements safe to log. COPY data cells are
// masked the same way; the \N null marker is kept so the line shape
// survives.
type RedactingVisitor struct {
	*SQLVisitor
}

var _ ast.Visitor = (*RedactingVisitor)(nil)

// NewRedactingVisitor creates a log-safe SQL renderer.
func NewRedactingVisitor() *RedactingVisitor {
	v := &RedactingVisitor{SQLVisitor: &SQLVisitor{}}
	v.outer = v
	return v
}

// RenderRedacted returns the log-safe SQL text for n.
func RenderRedacted(n ast.Node) string {
	return n.Accept(NewRedactingVisitor())
}

func (v *RedactingVisitor) VisitValue(n ast.Value) string {
	return "'[REDACTED]'"
}

func (v *RedactingVisitor) VisitCopy(n *ast.Copy) string {
	masked := make([]*string, len(n.Values))
	for i, val := range n.Values {
		if val != nil {
			masked[i] = ast.String("[REDACTED]")
		}
	}
	return v.SQLVisitor.VisitCopy(&ast.Copy{
		TableName: n.TableName,
		Columns:   n.Columns,
		Values:    masked,
	})
}
