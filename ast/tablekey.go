package ast

import "slices"

// Key is the named column-list payload shared by table constraints.
type Key struct {
	Name    Ident
	Columns []Ident
}

// NewKey creates a constraint key.
func NewKey(name Ident, columns ...Ident) Key {
	return Key{Name: name, Columns: columns}
}

func (k Key) equal(o Key) bool {
	return k.Name == o.Name && slices.Equal(k.Columns, o.Columns)
}

func (k Key) hashInto(h *hasher) {
	h.writeString(k.Name)
	h.writeStrings(k.Columns)
}

// PrimaryKeyConstraint renders "<name> PRIMARY KEY (<columns>)".
type PrimaryKeyConstraint struct {
	Key
}

// NewPrimaryKeyConstraint creates a primary key constraint.
func NewPrimaryKeyConstraint(key Key) *PrimaryKeyConstraint {
	return &PrimaryKeyConstraint{Key: key}
}

// UniqueKeyConstraint renders "<name> UNIQUE KEY (<columns>)".
type UniqueKeyConstraint struct {
	Key
}

// NewUniqueKeyConstraint creates a unique key constraint.
func NewUniqueKeyConstraint(key Key) *UniqueKeyConstraint {
	return &UniqueKeyConstraint{Key: key}
}

// KeyConstraint renders "<name> KEY (<columns>)".
type KeyConstraint struct {
	Key
}

// NewKeyConstraint creates a plain key constraint.
func NewKeyConstraint(key Key) *KeyConstraint {
	return &KeyConstraint{Key: key}
}

// ForeignKeyConstraint renders
// "<name> FOREIGN KEY (<columns>) REFERENCES <table>(<referred>)".
type ForeignKeyConstraint struct {
	Key
	ForeignTable    ObjectName
	ReferredColumns []Ident
}

// NewForeignKeyConstraint creates a foreign key constraint.
func NewForeignKeyConstraint(key Key, foreignTable ObjectName, referredColumns []Ident) *ForeignKeyConstraint {
	return &ForeignKeyConstraint{Key: key, ForeignTable: foreignTable, ReferredColumns: referredColumns}
}

func (n *PrimaryKeyConstraint) Accept(v Visitor) string { return v.VisitTableKey(n) }
func (n *UniqueKeyConstraint) Accept(v Visitor) string  { return v.VisitTableKey(n) }
func (n *KeyConstraint) Accept(v Visitor) string        { return v.VisitTableKey(n) }
func (n *ForeignKeyConstraint) Accept(v Visitor) string { return v.VisitTableKey(n) }

func (n *PrimaryKeyConstraint) Equal(other Node) bool {
	o, ok := other.(*PrimaryKeyConstraint)
	return ok && n.Key.equal(o.Key)
}

func (n *UniqueKeyConstraint) Equal(other Node) bool {
	o, ok := other.(*UniqueKeyConstraint)
	return ok && n.Key.equal(o.Key)
}

func (n *KeyConstraint) Equal(other Node) bool {
	o, ok := other.(*KeyConstraint)
	return ok && n.Key.equal(o.Key)
}

func (n *ForeignKeyConstraint) Equal(other Node) bool {
	o, ok := other.(*ForeignKeyConstraint)
	return ok && n.Key.equal(o.Key) &&
		n.ForeignTable.Equal(o.ForeignTable) &&
		slices.Equal(n.ReferredColumns, o.ReferredColumns)
}

func (n *PrimaryKeyConstraint) hashTo(h *hasher) {
	h.writeTag(tagPrimaryKey)
	n.Key.hashInto(h)
}

func (n *UniqueKeyConstraint) hashTo(h *hasher) {
	h.writeTag(tagUniqueKey)
	n.Key.hashInto(h)
}

func (n *KeyConstraint) hashTo(h *hasher) {
	h.writeTag(tagPlainKey)
	n.Key.hashInto(h)
}

func (n *ForeignKeyConstraint) hashTo(h *hasher) {
	h.writeTag(tagForeignKey)
	n.Key.hashInto(h)
	n.ForeignTable.hashTo(h)
	h.writeStrings(n.ReferredColumns)
}

func (*PrimaryKeyConstraint) tableKeyNode() {}
func (*UniqueKeyConstraint) tableKeyNode()  {}
func (*KeyConstraint) tableKeyNode()        {}
func (*ForeignKeyConstraint) tableKeyNode() {}

// AddConstraint is the ALTER TABLE operation "ADD CONSTRAINT <key>".
type AddConstraint struct {
	Constraint TableKey
}

// NewAddConstraint creates an add-constraint operation.
func NewAddConstraint(constraint TableKey) *AddConstraint {
	return &AddConstraint{Constraint: constraint}
}

// RemoveConstraint is the ALTER TABLE operation
// "REMOVE CONSTRAINT <name>".
type RemoveConstraint struct {
	Name Ident
}

// NewRemoveConstraint creates a remove-constraint operation.
func NewRemoveConstraint(name Ident) *RemoveConstraint {
	return &RemoveConstraint{Name: name}
}

func (n *AddConstraint) Accept(v Visitor) string    { return v.VisitAddConstraint(n) }
func (n *RemoveConstraint) Accept(v Visitor) string { return v.VisitRemoveConstraint(n) }

func (n *AddConstraint) Equal(other Node) bool {
	o, ok := other.(*AddConstraint)
	return ok && nodeEqual(n.Constraint, o.Constraint)
}

func (n *RemoveConstraint) Equal(other Node) bool {
	o, ok := other.(*RemoveConstraint)
	return ok && n.Name == o.Name
}

func (n *AddConstraint) hashTo(h *hasher) {
	h.writeTag(tagAddConstraint)
	h.writeNode(n.Constraint)
}

func (n *RemoveConstraint) hashTo(h *hasher) {
	h.writeTag(tagRemoveConstraint)
	h.writeString(n.Name)
}

func (*AddConstraint) alterOpNode()    {}
func (*RemoveConstraint) alterOpNode() {}
