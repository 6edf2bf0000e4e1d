package ast

import "slices"

// QueryStatement lifts a query into statement position.
type QueryStatement struct {
	Query *Query
}

// NewQueryStatement creates a query statement.
func NewQueryStatement(q *Query) *QueryStatement { return &QueryStatement{Query: q} }

// Insert is an INSERT statement. All rows render inside a single
// VALUES(...) group, comma-joined in row order.
type Insert struct {
	TableName ObjectName
	Columns   []Ident
	Values    [][]Expr
}

// NewInsert creates an INSERT statement.
func NewInsert(tableName ObjectName, columns []Ident, values [][]Expr) *Insert {
	return &Insert{TableName: tableName, Columns: columns, Values: values}
}

// Copy is a bulk COPY ... FROM stdin statement. Values are the data
// scalars in order; a nil entry renders as the \N null marker.
type Copy struct {
	TableName ObjectName
	Columns   []Ident
	Values    []*string
}

// NewCopy creates a COPY statement.
func NewCopy(tableName ObjectName, columns []Ident, values []*string) *Copy {
	return &Copy{TableName: tableName, Columns: columns, Values: values}
}

// Update is an UPDATE statement.
type Update struct {
	TableName   ObjectName
	Assignments []*Assignment
	Selection   Expr // nil means no WHERE clause
}

// NewUpdate creates an UPDATE statement.
func NewUpdate(tableName ObjectName, assignments []*Assignment, selection Expr) *Update {
	return &Update{TableName: tableName, Assignments: assignments, Selection: selection}
}

// Delete is a DELETE statement.
type Delete struct {
	TableName ObjectName
	Selection Expr // nil means no WHERE clause
}

// NewDelete creates a DELETE statement.
func NewDelete(tableName ObjectName, selection Expr) *Delete {
	return &Delete{TableName: tableName, Selection: selection}
}

// CreateDataSource is a CREATE DATA SOURCE statement: a named external
// stream at a URL, with its schema inline or in a registry.
type CreateDataSource struct {
	Name        ObjectName
	URL         string
	Schema      DataSourceSchema
	WithOptions []*WithOption
}

// NewCreateDataSource creates a CREATE DATA SOURCE statement.
func NewCreateDataSource(name ObjectName, url string, schema DataSourceSchema, withOptions []*WithOption) *CreateDataSource {
	return &CreateDataSource{Name: name, URL: url, Schema: schema, WithOptions: withOptions}
}

// CreateDataSink is a CREATE DATA SINK statement: a named output that
// writes a relation's changes to a URL.
type CreateDataSink struct {
	Name        ObjectName
	From        ObjectName
	URL         string
	WithOptions []*WithOption
}

// NewCreateDataSink creates a CREATE DATA SINK statement.
func NewCreateDataSink(name, from ObjectName, url string, withOptions []*WithOption) *CreateDataSink {
	return &CreateDataSink{Name: name, From: from, URL: url, WithOptions: withOptions}
}

// CreateView is a CREATE VIEW statement. WITH options render between
// the name and AS.
type CreateView struct {
	Name         ObjectName
	Query        *Query
	Materialized bool
	WithOptions  []*WithOption
}

// NewCreateView creates a CREATE VIEW statement.
func NewCreateView(name ObjectName, query *Query, materialized bool, withOptions []*WithOption) *CreateView {
	return &CreateView{Name: name, Query: query, Materialized: materialized, WithOptions: withOptions}
}

// CreateTable is a CREATE TABLE statement. When External is set,
// FileFormat and Location are logically required: the renderer unwraps
// both and panics if either is nil. The external form ignores
// WithOptions; the plain form ignores FileFormat and Location.
type CreateTable struct {
	Name        ObjectName
	Columns     []*ColumnDef
	WithOptions []*WithOption
	External    bool
	FileFormat  *FileFormat
	Location    *string
}

// NewCreateTable creates a CREATE TABLE statement.
func NewCreateTable(name ObjectName, columns []*ColumnDef, withOptions []*WithOption, external bool, fileFormat *FileFormat, location *string) *CreateTable {
	return &CreateTable{
		Name:        name,
		Columns:     columns,
		WithOptions: withOptions,
		External:    external,
		FileFormat:  fileFormat,
		Location:    location,
	}
}

// AlterTable is an ALTER TABLE statement.
type AlterTable struct {
	Name      ObjectName
	Operation AlterOperation
}

// NewAlterTable creates an ALTER TABLE statement.
func NewAlterTable(name ObjectName, operation AlterOperation) *AlterTable {
	return &AlterTable{Name: name, Operation: operation}
}

// Drop is the shared payload of the DROP statements. Cascade and
// Restrict may independently both be set; they render in that order.
type Drop struct {
	IfExists bool
	Names    []ObjectName
	Cascade  bool
	Restrict bool
}

func (d Drop) equal(o Drop) bool {
	return d.IfExists == o.IfExists &&
		d.Cascade == o.Cascade &&
		d.Restrict == o.Restrict &&
		nodesEqual(d.Names, o.Names)
}

func (d Drop) hashInto(h *hasher) {
	h.writeBool(d.IfExists)
	hashNodes(h, d.Names)
	h.writeBool(d.Cascade)
	h.writeBool(d.Restrict)
}

// DropTable is a DROP TABLE statement.
type DropTable struct {
	Drop
}

// NewDropTable creates a DROP TABLE statement.
func NewDropTable(ifExists bool, names []ObjectName, cascade, restrict bool) *DropTable {
	return &DropTable{Drop{IfExists: ifExists, Names: names, Cascade: cascade, Restrict: restrict}}
}

// DropDataSource is a DROP DATA SOURCE statement.
type DropDataSource struct {
	Drop
}

// NewDropDataSource creates a DROP DATA SOURCE statement.
func NewDropDataSource(ifExists bool, names []ObjectName, cascade, restrict bool) *DropDataSource {
	return &DropDataSource{Drop{IfExists: ifExists, Names: names, Cascade: cascade, Restrict: restrict}}
}

// DropView is a DROP VIEW statement.
type DropView struct {
	Drop
}

// NewDropView creates a DROP VIEW statement.
func NewDropView(ifExists bool, names []ObjectName, cascade, restrict bool) *DropView {
	return &DropView{Drop{IfExists: ifExists, Names: names, Cascade: cascade, Restrict: restrict}}
}

// Peek is a PEEK statement: a point-in-time snapshot of a relation.
type Peek struct {
	Name ObjectName
}

// NewPeek creates a PEEK statement.
func NewPeek(name ObjectName) *Peek { return &Peek{Name: name} }

// Tail is a TAIL statement: a continuous change feed of a relation.
type Tail struct {
	Name ObjectName
}

// NewTail creates a TAIL statement.
func NewTail(name ObjectName) *Tail { return &Tail{Name: name} }

func (n *QueryStatement) Accept(v Visitor) string   { return v.VisitQueryStatement(n) }
func (n *Insert) Accept(v Visitor) string           { return v.VisitInsert(n) }
func (n *Copy) Accept(v Visitor) string             { return v.VisitCopy(n) }
func (n *Update) Accept(v Visitor) string           { return v.VisitUpdate(n) }
func (n *Delete) Accept(v Visitor) string           { return v.VisitDelete(n) }
func (n *CreateDataSource) Accept(v Visitor) string { return v.VisitCreateDataSource(n) }
func (n *CreateDataSink) Accept(v Visitor) string   { return v.VisitCreateDataSink(n) }
func (n *CreateView) Accept(v Visitor) string       { return v.VisitCreateView(n) }
func (n *CreateTable) Accept(v Visitor) string      { return v.VisitCreateTable(n) }
func (n *AlterTable) Accept(v Visitor) string       { return v.VisitAlterTable(n) }
func (n *DropTable) Accept(v Visitor) string        { return v.VisitDropTable(n) }
func (n *DropDataSource) Accept(v Visitor) string   { return v.VisitDropDataSource(n) }
func (n *DropView) Accept(v Visitor) string         { return v.VisitDropView(n) }
func (n *Peek) Accept(v Visitor) string             { return v.VisitPeek(n) }
func (n *Tail) Accept(v Visitor) string             { return v.VisitTail(n) }

func (n *QueryStatement) Equal(other Node) bool {
	o, ok := other.(*QueryStatement)
	return ok && queryEqual(n.Query, o.Query)
}

func (n *Insert) Equal(other Node) bool {
	o, ok := other.(*Insert)
	if !ok || !n.TableName.Equal(o.TableName) || !slices.Equal(n.Columns, o.Columns) {
		return false
	}
	if len(n.Values) != len(o.Values) {
		return false
	}
	for i := range n.Values {
		if !nodesEqual(n.Values[i], o.Values[i]) {
			return false
		}
	}
	return true
}

func (n *Copy) Equal(other Node) bool {
	o, ok := other.(*Copy)
	if !ok || !n.TableName.Equal(o.TableName) || !slices.Equal(n.Columns, o.Columns) {
		return false
	}
	if len(n.Values) != len(o.Values) {
		return false
	}
	for i := range n.Values {
		if !strPtrEqual(n.Values[i], o.Values[i]) {
			return false
		}
	}
	return true
}

func (n *Update) Equal(other Node) bool {
	o, ok := other.(*Update)
	return ok && n.TableName.Equal(o.TableName) &&
		nodesEqual(n.Assignments, o.Assignments) &&
		nodeEqual(n.Selection, o.Selection)
}

func (n *Delete) Equal(other Node) bool {
	o, ok := other.(*Delete)
	return ok && n.TableName.Equal(o.TableName) && nodeEqual(n.Selection, o.Selection)
}

func (n *CreateDataSource) Equal(other Node) bool {
	o, ok := other.(*CreateDataSource)
	return ok && n.Name.Equal(o.Name) && n.URL == o.URL &&
		nodeEqual(n.Schema, o.Schema) &&
		nodesEqual(n.WithOptions, o.WithOptions)
}

func (n *CreateDataSink) Equal(other Node) bool {
	o, ok := other.(*CreateDataSink)
	return ok && n.Name.Equal(o.Name) && n.From.Equal(o.From) && n.URL == o.URL &&
		nodesEqual(n.WithOptions, o.WithOptions)
}

func (n *CreateView) Equal(other Node) bool {
	o, ok := other.(*CreateView)
	return ok && n.Materialized == o.Materialized &&
		n.Name.Equal(o.Name) &&
		queryEqual(n.Query, o.Query) &&
		nodesEqual(n.WithOptions, o.WithOptions)
}

func (n *CreateTable) Equal(other Node) bool {
	o, ok := other.(*CreateTable)
	return ok && n.External == o.External &&
		n.Name.Equal(o.Name) &&
		nodesEqual(n.Columns, o.Columns) &&
		nodesEqual(n.WithOptions, o.WithOptions) &&
		fileFormatPtrEqual(n.FileFormat, o.FileFormat) &&
		strPtrEqual(n.Location, o.Location)
}

func (n *AlterTable) Equal(other Node) bool {
	o, ok := other.(*AlterTable)
	return ok && n.Name.Equal(o.Name) && nodeEqual(n.Operation, o.Operation)
}

func (n *DropTable) Equal(other Node) bool {
	o, ok := other.(*DropTable)
	return ok && n.Drop.equal(o.Drop)
}

func (n *DropDataSource) Equal(other Node) bool {
	o, ok := other.(*DropDataSource)
	return ok && n.Drop.equal(o.Drop)
}

func (n *DropView) Equal(other Node) bool {
	o, ok := other.(*DropView)
	return ok && n.Drop.equal(o.Drop)
}

func (n *Peek) Equal(other Node) bool {
	o, ok := other.(*Peek)
	return ok && n.Name.Equal(o.Name)
}

func (n *Tail) Equal(other Node) bool {
	o, ok := other.(*Tail)
	return ok && n.Name.Equal(o.Name)
}

func (n *QueryStatement) hashTo(h *hasher) {
	h.writeTag(tagQueryStatement)
	hashQuery(h, n.Query)
}

func (n *Insert) hashTo(h *hasher) {
	h.writeTag(tagInsert)
	n.TableName.hashTo(h)
	h.writeStrings(n.Columns)
	h.writeInt(len(n.Values))
	for _, row := range n.Values {
		hashNodes(h, row)
	}
}

func (n *Copy) hashTo(h *hasher) {
	h.writeTag(tagCopy)
	n.TableName.hashTo(h)
	h.writeStrings(n.Columns)
	h.writeInt(len(n.Values))
	for _, v := range n.Values {
		h.writeStrPtr(v)
	}
}

func (n *Update) hashTo(h *hasher) {
	h.writeTag(tagUpdate)
	n.TableName.hashTo(h)
	hashNodes(h, n.Assignments)
	h.writeNode(n.Selection)
}

func (n *Delete) hashTo(h *hasher) {
	h.writeTag(tagDelete)
	n.TableName.hashTo(h)
	h.writeNode(n.Selection)
}

func (n *CreateDataSource) hashTo(h *hasher) {
	h.writeTag(tagCreateDataSource)
	n.Name.hashTo(h)
	h.writeString(n.URL)
	h.writeNode(n.Schema)
	hashNodes(h, n.WithOptions)
}

func (n *CreateDataSink) hashTo(h *hasher) {
	h.writeTag(tagCreateDataSink)
	n.Name.hashTo(h)
	n.From.hashTo(h)
	h.writeString(n.URL)
	hashNodes(h, n.WithOptions)
}

func (n *CreateView) hashTo(h *hasher) {
	h.writeTag(tagCreateView)
	n.Name.hashTo(h)
	hashQuery(h, n.Query)
	h.writeBool(n.Materialized)
	hashNodes(h, n.WithOptions)
}

func (n *CreateTable) hashTo(h *hasher) {
	h.writeTag(tagCreateTable)
	n.Name.hashTo(h)
	hashNodes(h, n.Columns)
	hashNodes(h, n.WithOptions)
	h.writeBool(n.External)
	if n.FileFormat == nil {
		h.writeTag(tagNil)
	} else {
		h.writeTag(1)
		h.writeInt(int(*n.FileFormat))
	}
	h.writeStrPtr(n.Location)
}

func (n *AlterTable) hashTo(h *hasher) {
	h.writeTag(tagAlterTable)
	n.Name.hashTo(h)
	h.writeNode(n.Operation)
}

func (n *DropTable) hashTo(h *hasher) {
	h.writeTag(tagDropTable)
	n.Drop.hashInto(h)
}

func (n *DropDataSource) hashTo(h *hasher) {
	h.writeTag(tagDropDataSource)
	n.Drop.hashInto(h)
}

func (n *DropView) hashTo(h *hasher) {
	h.writeTag(tagDropView)
	n.Drop.hashInto(h)
}

func (n *Peek) hashTo(h *hasher) {
	h.writeTag(tagPeek)
	n.Name.hashTo(h)
}

func (n *Tail) hashTo(h *hasher) {
	h.writeTag(tagTail)
	n.Name.hashTo(h)
}

func (*QueryStatement) stmtNode()   {}
func (*Insert) stmtNode()           {}
func (*Copy) stmtNode()             {}
func (*Update) stmtNode()           {}
func (*Delete) stmtNode()           {}
func (*CreateDataSource) stmtNode() {}
func (*CreateDataSink) stmtNode()   {}
func (*CreateView) stmtNode()       {}
func (*CreateTable) stmtNode()      {}
func (*AlterTable) stmtNode()       {}
func (*DropTable) stmtNode()        {}
func (*DropDataSource) stmtNode()   {}
func (*DropView) stmtNode()         {}
func (*Peek) stmtNode()             {}
func (*Tail) stmtNode()             {}
