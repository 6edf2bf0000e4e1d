package ast

import "fmt"

// WindowFrameUnits specifies ROWS, RANGE, or GROUPS for a window frame.
type WindowFrameUnits int

const (
	FrameRows WindowFrameUnits = iota
	FrameRange
	FrameGroups
)

var frameUnitsSQL = [...]string{
	FrameRows:   "ROWS",
	FrameRange:  "RANGE",
	FrameGroups: "GROUPS",
}

// String returns the units' SQL keyword.
func (u WindowFrameUnits) String() string {
	if u < 0 || int(u) >= len(frameUnitsSQL) {
		return fmt.Sprintf("WindowFrameUnits(%d)", int(u))
	}
	return frameUnitsSQL[u]
}

var frameUnits = map[string]WindowFrameUnits{
	"ROWS":   FrameRows,
	"RANGE":  FrameRange,
	"GROUPS": FrameGroups,
}

// ParseWindowFrameUnits converts an uppercase keyword token to its
// WindowFrameUnits. Unrecognized tokens produce a *ParseError naming
// the token.
func ParseWindowFrameUnits(s string) (WindowFrameUnits, error) {
	u, ok := frameUnits[s]
	if !ok {
		return 0, &ParseError{Message: fmt.Sprintf("Expected ROWS, RANGE, or GROUPS, found: %s", s)}
	}
	return u, nil
}

// BoundType specifies a window frame boundary kind.
type BoundType int

const (
	BoundCurrentRow BoundType = iota
	BoundPreceding
	BoundFollowing
)

// WindowSpec is a window specification, the body of an OVER (...)
// clause: partitioning, ordering, and an optional frame.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []*OrderByExpr
	Frame       *WindowFrame
}

// NewWindowSpec creates a window specification.
func NewWindowSpec(partitionBy []Expr, orderBy []*OrderByExpr, frame *WindowFrame) *WindowSpec {
	return &WindowSpec{PartitionBy: partitionBy, OrderBy: orderBy, Frame: frame}
}

func (n *WindowSpec) Accept(v Visitor) string { return v.VisitWindowSpec(n) }

func (n *WindowSpec) Equal(other Node) bool {
	o, ok := other.(*WindowSpec)
	if !ok {
		return false
	}
	if (n.Frame == nil) != (o.Frame == nil) {
		return false
	}
	if n.Frame != nil && !n.Frame.Equal(o.Frame) {
		return false
	}
	return nodesEqual(n.PartitionBy, o.PartitionBy) && nodesEqual(n.OrderBy, o.OrderBy)
}

func (n *WindowSpec) hashTo(h *hasher) {
	h.writeTag(tagWindowSpec)
	hashNodes(h, n.PartitionBy)
	hashNodes(h, n.OrderBy)
	if n.Frame == nil {
		h.writeTag(tagNil)
	} else {
		n.Frame.hashTo(h)
	}
}

// WindowFrame is the frame clause of a window specification, e.g.
// ROWS BETWEEN 5 PRECEDING AND CURRENT ROW.
type WindowFrame struct {
	Units      WindowFrameUnits
	StartBound *WindowFrameBound
	EndBound   *WindowFrameBound // nil means no BETWEEN (just the start bound)
}

// NewWindowFrame creates a window frame clause.
func NewWindowFrame(units WindowFrameUnits, start, end *WindowFrameBound) *WindowFrame {
	return &WindowFrame{Units: units, StartBound: start, EndBound: end}
}

func (n *WindowFrame) Accept(v Visitor) string { return v.VisitWindowFrame(n) }

func (n *WindowFrame) Equal(other Node) bool {
	o, ok := other.(*WindowFrame)
	if !ok || n.Units != o.Units {
		return false
	}
	if (n.StartBound == nil) != (o.StartBound == nil) {
		return false
	}
	if n.StartBound != nil && !n.StartBound.Equal(o.StartBound) {
		return false
	}
	if (n.EndBound == nil) != (o.EndBound == nil) {
		return false
	}
	return n.EndBound == nil || n.EndBound.Equal(o.EndBound)
}

func (n *WindowFrame) hashTo(h *hasher) {
	h.writeTag(tagWindowFrame)
	h.writeInt(int(n.Units))
	if n.StartBound == nil {
		h.writeTag(tagNil)
	} else {
		n.StartBound.hashTo(h)
	}
	if n.EndBound == nil {
		h.writeTag(tagNil)
	} else {
		n.EndBound.hashTo(h)
	}
}

// WindowFrameBound is a single frame boundary. A nil Offset on a
// preceding or following bound means UNBOUNDED.
type WindowFrameBound struct {
	Type   BoundType
	Offset *uint64
}

// CurrentRow returns a CURRENT ROW frame bound.
func CurrentRow() *WindowFrameBound {
	return &WindowFrameBound{Type: BoundCurrentRow}
}

// Preceding returns an N PRECEDING frame bound; a nil offset means
// UNBOUNDED PRECEDING.
func Preceding(offset *uint64) *WindowFrameBound {
	return &WindowFrameBound{Type: BoundPreceding, Offset: offset}
}

// Following returns an N FOLLOWING frame bound; a nil offset means
// UNBOUNDED FOLLOWING.
func Following(offset *uint64) *WindowFrameBound {
	return &WindowFrameBound{Type: BoundFollowing, Offset: offset}
}

// UnboundedPreceding returns an UNBOUNDED PRECEDING frame bound.
func UnboundedPreceding() *WindowFrameBound { return Preceding(nil) }

// UnboundedFollowing returns an UNBOUNDED FOLLOWING frame bound.
func UnboundedFollowing() *WindowFrameBound { return Following(nil) }

func (n *WindowFrameBound) Accept(v Visitor) string { return v.VisitWindowFrameBound(n) }

func (n *WindowFrameBound) Equal(other Node) bool {
	o, ok := other.(*WindowFrameBound)
	return ok && n.Type == o.Type && uintPtrEqual(n.Offset, o.Offset)
}

func (n *WindowFrameBound) hashTo(h *hasher) {
	h.writeTag(tagWindowFrameBound)
	h.writeInt(int(n.Type))
	h.writeUintPtr(n.Offset)
}
