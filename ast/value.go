package ast

import "math"

// The literal value model. Values are leaves: they render through a
// single Visitor method and never own children. Date, Time, and
// Timestamp carry the literal text exactly as a parser captured it and
// render it verbatim.

// Long is an unsigned integer literal. Negative numbers are expressed as
// a UnaryExpr with OpMinus around a Long, never as a negative value.
type Long uint64

// Double is a floating-point literal.
type Double float64

// SingleQuotedString renders single-quoted with embedded quotes doubled.
type SingleQuotedString string

// NationalString renders as N'...' with the text verbatim, unescaped.
type NationalString string

// Boolean renders as true or false.
type Boolean bool

// Date is a date literal's text, rendered verbatim.
type Date string

// Time is a time literal's text, rendered verbatim.
type Time string

// Timestamp is a timestamp literal's text, rendered verbatim.
type Timestamp string

// Null renders as NULL.
type Null struct{}

func (v Long) Accept(vis Visitor) string               { return vis.VisitValue(v) }
func (v Double) Accept(vis Visitor) string             { return vis.VisitValue(v) }
func (v SingleQuotedString) Accept(vis Visitor) string { return vis.VisitValue(v) }
func (v NationalString) Accept(vis Visitor) string     { return vis.VisitValue(v) }
func (v Boolean) Accept(vis Visitor) string            { return vis.VisitValue(v) }
func (v Date) Accept(vis Visitor) string               { return vis.VisitValue(v) }
func (v Time) Accept(vis Visitor) string               { return vis.VisitValue(v) }
func (v Timestamp) Accept(vis Visitor) string          { return vis.VisitValue(v) }
func (v Null) Accept(vis Visitor) string               { return vis.VisitValue(v) }

func (v Long) Equal(other Node) bool {
	o, ok := other.(Long)
	return ok && v == o
}

func (v Double) Equal(other Node) bool {
	o, ok := other.(Double)
	return ok && v == o
}

func (v SingleQuotedString) Equal(other Node) bool {
	o, ok := other.(SingleQuotedString)
	return ok && v == o
}

func (v NationalString) Equal(other Node) bool {
	o, ok := other.(NationalString)
	return ok && v == o
}

func (v Boolean) Equal(other Node) bool {
	o, ok := other.(Boolean)
	return ok && v == o
}

func (v Date) Equal(other Node) bool {
	o, ok := other.(Date)
	return ok && v == o
}

func (v Time) Equal(other Node) bool {
	o, ok := other.(Time)
	return ok && v == o
}

func (v Timestamp) Equal(other Node) bool {
	o, ok := other.(Timestamp)
	return ok && v == o
}

func (v Null) Equal(other Node) bool {
	_, ok := other.(Null)
	return ok
}

func (v Long) hashTo(h *hasher) {
	h.writeTag(tagLong)
	h.writeUint64(uint64(v))
}

func (v Double) hashTo(h *hasher) {
	h.writeTag(tagDouble)
	h.writeUint64(math.Float64bits(float64(v)))
}

func (v SingleQuotedString) hashTo(h *hasher) {
	h.writeTag(tagSingleQuotedString)
	h.writeString(string(v))
}

func (v NationalString) hashTo(h *hasher) {
	h.writeTag(tagNationalString)
	h.writeString(string(v))
}

func (v Boolean) hashTo(h *hasher) {
	h.writeTag(tagBoolean)
	h.writeBool(bool(v))
}

func (v Date) hashTo(h *hasher) {
	h.writeTag(tagDate)
	h.writeString(string(v))
}

func (v Time) hashTo(h *hasher) {
	h.writeTag(tagTime)
	h.writeString(string(v))
}

func (v Timestamp) hashTo(h *hasher) {
	h.writeTag(tagTimestamp)
	h.writeString(string(v))
}

func (v Null) hashTo(h *hasher) {
	h.writeTag(tagNullValue)
}

func (Long) valueNode()               {}
func (Double) valueNode()             {}
func (SingleQuotedString) valueNode() {}
func (NationalString) valueNode()     {}
func (Boolean) valueNode()            {}
func (Date) valueNode()               {}
func (Time) valueNode()               {}
func (Timestamp) valueNode()          {}
func (Null) valueNode()               {}
