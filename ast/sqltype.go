package ast

import "fmt"

// The SQL type model. Variants are grouped by payload shape: optional
// length (char, character varying, float), required length (clob,
// binary, varbinary, blob), precision/scale (numeric), bare keywords,
// custom named types, and arrays. A nil Length means the bare keyword
// renders without a parenthesized argument.

// CharType is char with an optional length.
type CharType struct {
	Length *uint64
}

// VarcharType renders as "character varying" with an optional length.
type VarcharType struct {
	Length *uint64
}

// ClobType is a character large object with a required length.
type ClobType struct {
	Length uint64
}

// BinaryType is fixed-length binary data.
type BinaryType struct {
	Length uint64
}

// VarbinaryType is variable-length binary data with a required length.
type VarbinaryType struct {
	Length uint64
}

// BlobType is a binary large object with a required length.
type BlobType struct {
	Length uint64
}

// DecimalType renders as "numeric". A scale without a precision is
// constructable but not renderable; the renderer panics on it.
type DecimalType struct {
	Precision *uint64
	Scale     *uint64
}

// FloatType is float with an optional length.
type FloatType struct {
	Length *uint64
}

// SimpleTypeKind enumerates the parameterless keyword types.
type SimpleTypeKind int

const (
	TypeUUID SimpleTypeKind = iota
	TypeSmallInt
	TypeInt
	TypeBigInt
	TypeReal
	TypeDouble
	TypeBoolean
	TypeDate
	TypeTime
	TypeTimestamp
	TypeRegclass
	TypeText
	TypeBytea
)

var simpleTypeSQL = [...]string{
	TypeUUID:      "uuid",
	TypeSmallInt:  "smallint",
	TypeInt:       "int",
	TypeBigInt:    "bigint",
	TypeReal:      "real",
	TypeDouble:    "double",
	TypeBoolean:   "boolean",
	TypeDate:      "date",
	TypeTime:      "time",
	TypeTimestamp: "timestamp",
	TypeRegclass:  "regclass",
	TypeText:      "text",
	TypeBytea:     "bytea",
}

// String returns the lower-case SQL keyword for the kind.
func (k SimpleTypeKind) String() string {
	if k < 0 || int(k) >= len(simpleTypeSQL) {
		return fmt.Sprintf("SimpleTypeKind(%d)", int(k))
	}
	return simpleTypeSQL[k]
}

// SimpleType is a parameterless keyword type such as int or timestamp.
type SimpleType struct {
	Kind SimpleTypeKind
}

// CustomType is a type referenced by name, such as a user-defined type.
type CustomType struct {
	Name ObjectName
}

// ArrayType is an array of an element type, rendered as "<element>[]".
type ArrayType struct {
	Element DataType
}

// NewCharType returns a char type; length may be nil.
func NewCharType(length *uint64) *CharType { return &CharType{Length: length} }

// NewVarcharType returns a character varying type; length may be nil.
func NewVarcharType(length *uint64) *VarcharType { return &VarcharType{Length: length} }

// NewClobType returns a clob type of the given length.
func NewClobType(length uint64) *ClobType { return &ClobType{Length: length} }

// NewBinaryType returns a binary type of the given length.
func NewBinaryType(length uint64) *BinaryType { return &BinaryType{Length: length} }

// NewVarbinaryType returns a varbinary type of the given length.
func NewVarbinaryType(length uint64) *VarbinaryType { return &VarbinaryType{Length: length} }

// NewBlobType returns a blob type of the given length.
func NewBlobType(length uint64) *BlobType { return &BlobType{Length: length} }

// NewDecimalType returns a numeric type; precision and scale may be nil.
// No validation happens here: a scale without a precision only fails at
// render time.
func NewDecimalType(precision, scale *uint64) *DecimalType {
	return &DecimalType{Precision: precision, Scale: scale}
}

// NewFloatType returns a float type; length may be nil.
func NewFloatType(length *uint64) *FloatType { return &FloatType{Length: length} }

// NewSimpleType returns a parameterless keyword type.
func NewSimpleType(kind SimpleTypeKind) *SimpleType { return &SimpleType{Kind: kind} }

// NewCustomType returns a type referenced by name.
func NewCustomType(name ObjectName) *CustomType { return &CustomType{Name: name} }

// NewArrayType returns an array of element.
func NewArrayType(element DataType) *ArrayType { return &ArrayType{Element: element} }

func (t *CharType) Accept(v Visitor) string      { return v.VisitDataType(t) }
func (t *VarcharType) Accept(v Visitor) string   { return v.VisitDataType(t) }
func (t *ClobType) Accept(v Visitor) string      { return v.VisitDataType(t) }
func (t *BinaryType) Accept(v Visitor) string    { return v.VisitDataType(t) }
func (t *VarbinaryType) Accept(v Visitor) string { return v.VisitDataType(t) }
func (t *BlobType) Accept(v Visitor) string      { return v.VisitDataType(t) }
func (t *DecimalType) Accept(v Visitor) string   { return v.VisitDataType(t) }
func (t *FloatType) Accept(v Visitor) string     { return v.VisitDataType(t) }
func (t *SimpleType) Accept(v Visitor) string    { return v.VisitDataType(t) }
func (t *CustomType) Accept(v Visitor) string    { return v.VisitDataType(t) }
func (t *ArrayType) Accept(v Visitor) string     { return v.VisitDataType(t) }

func (t *CharType) Equal(other Node) bool {
	o, ok := other.(*CharType)
	return ok && uintPtrEqual(t.Length, o.Length)
}

func (t *VarcharType) Equal(other Node) bool {
	o, ok := other.(*VarcharType)
	return ok && uintPtrEqual(t.Length, o.Length)
}

func (t *ClobType) Equal(other Node) bool {
	o, ok := other.(*ClobType)
	return ok && t.Length == o.Length
}

func (t *BinaryType) Equal(other Node) bool {
	o, ok := other.(*BinaryType)
	return ok && t.Length == o.Length
}

func (t *VarbinaryType) Equal(other Node) bool {
	o, ok := other.(*VarbinaryType)
	return ok && t.Length == o.Length
}

func (t *BlobType) Equal(other Node) bool {
	o, ok := other.(*BlobType)
	return ok && t.Length == o.Length
}

func (t *DecimalType) Equal(other Node) bool {
	o, ok := other.(*DecimalType)
	return ok && uintPtrEqual(t.Precision, o.Precision) && uintPtrEqual(t.Scale, o.Scale)
}

func (t *FloatType) Equal(other Node) bool {
	o, ok := other.(*FloatType)
	return ok && uintPtrEqual(t.Length, o.Length)
}

func (t *SimpleType) Equal(other Node) bool {
	o, ok := other.(*SimpleType)
	return ok && t.Kind == o.Kind
}

func (t *CustomType) Equal(other Node) bool {
	o, ok := other.(*CustomType)
	return ok && t.Name.Equal(o.Name)
}

func (t *ArrayType) Equal(other Node) bool {
	o, ok := other.(*ArrayType)
	return ok && nodeEqual(t.Element, o.Element)
}

func (t *CharType) hashTo(h *hasher) {
	h.writeTag(tagCharType)
	h.writeUintPtr(t.Length)
}

func (t *VarcharType) hashTo(h *hasher) {
	h.writeTag(tagVarcharType)
	h.writeUintPtr(t.Length)
}

func (t *ClobType) hashTo(h *hasher) {
	h.writeTag(tagClobType)
	h.writeUint64(t.Length)
}

func (t *BinaryType) hashTo(h *hasher) {
	h.writeTag(tagBinaryType)
	h.writeUint64(t.Length)
}

func (t *VarbinaryType) hashTo(h *hasher) {
	h.writeTag(tagVarbinaryType)
	h.writeUint64(t.Length)
}

func (t *BlobType) hashTo(h *hasher) {
	h.writeTag(tagBlobType)
	h.writeUint64(t.Length)
}

func (t *DecimalType) hashTo(h *hasher) {
	h.writeTag(tagDecimalType)
	h.writeUintPtr(t.Precision)
	h.writeUintPtr(t.Scale)
}

func (t *FloatType) hashTo(h *hasher) {
	h.writeTag(tagFloatType)
	h.writeUintPtr(t.Length)
}

func (t *SimpleType) hashTo(h *hasher) {
	h.writeTag(tagSimpleType)
	h.writeInt(int(t.Kind))
}

func (t *CustomType) hashTo(h *hasher) {
	h.writeTag(tagCustomType)
	t.Name.hashTo(h)
}

func (t *ArrayType) hashTo(h *hasher) {
	h.writeTag(tagArrayType)
	h.writeNode(t.Element)
}

func (*CharType) typeNode()      {}
func (*VarcharType) typeNode()   {}
func (*ClobType) typeNode()      {}
func (*BinaryType) typeNode()    {}
func (*VarbinaryType) typeNode() {}
func (*BlobType) typeNode()      {}
func (*DecimalType) typeNode()   {}
func (*FloatType) typeNode()     {}
func (*SimpleType) typeNode()    {}
func (*CustomType) typeNode()    {}
func (*ArrayType) typeNode()     {}
