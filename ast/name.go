package ast

import (
	"fmt"
	"slices"
)

// ObjectName is a possibly qualified name such as db.schema.obj. It
// renders by joining its parts with ".".
type ObjectName []Ident

// NewObjectName builds an ObjectName from its parts.
func NewObjectName(parts ...Ident) ObjectName { return ObjectName(parts) }

func (n ObjectName) Accept(v Visitor) string { return v.VisitObjectName(n) }

func (n ObjectName) Equal(other Node) bool {
	o, ok := other.(ObjectName)
	return ok && slices.Equal(n, o)
}

func (n ObjectName) hashTo(h *hasher) {
	h.writeTag(tagObjectName)
	h.writeStrings(n)
}

// Assignment is a single column assignment in an UPDATE statement. Each
// assignment renders with its own SET keyword, "SET <id> = <value>".
type Assignment struct {
	ID    Ident
	Value Expr
}

// NewAssignment creates an UPDATE column assignment.
func NewAssignment(id Ident, value Expr) *Assignment {
	return &Assignment{ID: id, Value: value}
}

func (n *Assignment) Accept(v Visitor) string { return v.VisitAssignment(n) }

func (n *Assignment) Equal(other Node) bool {
	o, ok := other.(*Assignment)
	return ok && n.ID == o.ID && nodeEqual(n.Value, o.Value)
}

func (n *Assignment) hashTo(h *hasher) {
	h.writeTag(tagAssignment)
	h.writeString(n.ID)
	h.writeNode(n.Value)
}

// WithOption is a name-value pair inside a WITH (...) clause.
type WithOption struct {
	Name  Ident
	Value Value
}

// NewWithOption creates a WITH clause option.
func NewWithOption(name Ident, value Value) *WithOption {
	return &WithOption{Name: name, Value: value}
}

func (n *WithOption) Accept(v Visitor) string { return v.VisitWithOption(n) }

func (n *WithOption) Equal(other Node) bool {
	o, ok := other.(*WithOption)
	return ok && n.Name == o.Name && nodeEqual(n.Value, o.Value)
}

func (n *WithOption) hashTo(h *hasher) {
	h.writeTag(tagWithOption)
	h.writeString(n.Name)
	h.writeNode(n.Value)
}

// ColumnDef is a column definition inside CREATE TABLE. The NOT NULL
// marker is emitted when AllowNull is false, so the zero value of the
// flag renders the stricter form.
type ColumnDef struct {
	Name      Ident
	Type      DataType
	Primary   bool
	Unique    bool
	Default   Expr // nil means no DEFAULT clause
	AllowNull bool
}

// NewColumnDef creates a column definition.
func NewColumnDef(name Ident, typ DataType, primary, unique bool, def Expr, allowNull bool) *ColumnDef {
	return &ColumnDef{Name: name, Type: typ, Primary: primary, Unique: unique, Default: def, AllowNull: allowNull}
}

func (n *ColumnDef) Accept(v Visitor) string { return v.VisitColumnDef(n) }

func (n *ColumnDef) Equal(other Node) bool {
	o, ok := other.(*ColumnDef)
	return ok &&
		n.Name == o.Name &&
		nodeEqual(n.Type, o.Type) &&
		n.Primary == o.Primary &&
		n.Unique == o.Unique &&
		nodeEqual(n.Default, o.Default) &&
		n.AllowNull == o.AllowNull
}

func (n *ColumnDef) hashTo(h *hasher) {
	h.writeTag(tagColumnDef)
	h.writeString(n.Name)
	h.writeNode(n.Type)
	h.writeBool(n.Primary)
	h.writeBool(n.Unique)
	h.writeNode(n.Default)
	h.writeBool(n.AllowNull)
}

// RawSchema carries a data source's schema definition inline.
type RawSchema struct {
	Schema string
}

// NewRawSchema creates an inline schema definition.
func NewRawSchema(schema string) *RawSchema { return &RawSchema{Schema: schema} }

func (n *RawSchema) Accept(v Visitor) string { return v.VisitRawSchema(n) }

func (n *RawSchema) Equal(other Node) bool {
	o, ok := other.(*RawSchema)
	return ok && n.Schema == o.Schema
}

func (n *RawSchema) hashTo(h *hasher) {
	h.writeTag(tagRawSchema)
	h.writeString(n.Schema)
}

// RegistrySchema points at a Confluent-compatible schema registry that
// serves the data source's schema.
type RegistrySchema struct {
	URL string
}

// NewRegistrySchema creates a schema registry reference.
func NewRegistrySchema(url string) *RegistrySchema { return &RegistrySchema{URL: url} }

func (n *RegistrySchema) Accept(v Visitor) string { return v.VisitRegistrySchema(n) }

func (n *RegistrySchema) Equal(other Node) bool {
	o, ok := other.(*RegistrySchema)
	return ok && n.URL == o.URL
}

func (n *RegistrySchema) hashTo(h *hasher) {
	h.writeTag(tagRegistrySchema)
	h.writeString(n.URL)
}

func (*RawSchema) schemaNode()      {}
func (*RegistrySchema) schemaNode() {}

// FileFormat is an external table's storage format.
type FileFormat int

const (
	FormatTextfile FileFormat = iota
	FormatSequencefile
	FormatORC
	FormatParquet
	FormatAvro
	FormatRcfile
	FormatJsonfile
)

var fileFormatSQL = [...]string{
	FormatTextfile:     "TEXTFILE",
	FormatSequencefile: "SEQUENCEFILE",
	FormatORC:          "ORC",
	FormatParquet:      "PARQUET",
	FormatAvro:         "AVRO",
	FormatRcfile:       "RCFILE",
	// JSONFILE keeps the TEXTFILE keyword on output.
	FormatJsonfile: "TEXTFILE",
}

// String returns the format's SQL keyword. FormatJsonfile renders as
// TEXTFILE.
func (f FileFormat) String() string {
	if f < 0 || int(f) >= len(fileFormatSQL) {
		return fmt.Sprintf("FileFormat(%d)", int(f))
	}
	return fileFormatSQL[f]
}

var fileFormats = map[string]FileFormat{
	"TEXTFILE":     FormatTextfile,
	"SEQUENCEFILE": FormatSequencefile,
	"ORC":          FormatORC,
	"PARQUET":      FormatParquet,
	"AVRO":         FormatAvro,
	"RCFILE":       FormatRcfile,
	"JSONFILE":     FormatJsonfile,
}

// ParseFileFormat converts an uppercase keyword token to its FileFormat.
// Unrecognized tokens produce a *ParseError naming the token.
func ParseFileFormat(s string) (FileFormat, error) {
	f, ok := fileFormats[s]
	if !ok {
		return 0, &ParseError{Message: fmt.Sprintf("Unexpected file format: %s", s)}
	}
	return f, nil
}

func fileFormatPtrEqual(a, b *FileFormat) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// FileFormatPtr returns a pointer to f. Convenience for the optional
// CreateTable field.
func FileFormatPtr(f FileFormat) *FileFormat { return &f }

// String returns a pointer to s. Convenience for the optional location
// and copy-row fields.
func String(s string) *string { return &s }
