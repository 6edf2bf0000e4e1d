package ast

import "fmt"

// Children returns n's immediate owned children in grammatical order.
// Leaf nodes return nil. Identifier parts, flags, and plain strings are
// not children; only owned Node values appear.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Identifier, *Wildcard, *QualifiedWildcard, *CompoundIdentifier:
		return nil
	case *IsNull:
		return appendNode(nil, n.Expr)
	case *InList:
		return appendNodes(appendNode(nil, n.Expr), n.List)
	case *InSubquery:
		children := appendNode(nil, n.Expr)
		if n.Subquery != nil {
			children = append(children, n.Subquery)
		}
		return children
	case *Between:
		return appendNode(appendNode(appendNode(nil, n.Expr), n.Low), n.High)
	case *BinaryExpr:
		return appendNode(appendNode(nil, n.Left), n.Right)
	case *UnaryExpr:
		return appendNode(nil, n.Expr)
	case *Cast:
		return appendNode(appendNode(nil, n.Expr), n.Type)
	case *Collate:
		return append(appendNode(nil, n.Expr), n.Collation)
	case *Nested:
		return appendNode(nil, n.Expr)
	case *LiteralExpr:
		return appendNode(nil, n.Value)
	case *FunctionCall:
		children := appendNodes([]Node{n.Name}, n.Args)
		if n.Over != nil {
			children = append(children, n.Over)
		}
		return children
	case *CaseExpr:
		children := appendNode(nil, n.Operand)
		for i := range n.Conditions {
			children = appendNode(children, n.Conditions[i])
			if i < len(n.Results) {
				children = appendNode(children, n.Results[i])
			}
		}
		return appendNode(children, n.ElseResult)
	case *Subquery:
		if n.Query == nil {
			return nil
		}
		return []Node{n.Query}

	case *QueryStatement:
		if n.Query == nil {
			return nil
		}
		return []Node{n.Query}
	case *Insert:
		children := []Node{n.TableName}
		for _, row := range n.Values {
			children = appendNodes(children, row)
		}
		return children
	case *Copy:
		return []Node{n.TableName}
	case *Update:
		return appendNode(appendNodes([]Node{n.TableName}, n.Assignments), n.Selection)
	case *Delete:
		return appendNode([]Node{n.TableName}, n.Selection)
	case *CreateDataSource:
		return appendNodes(appendNode([]Node{n.Name}, n.Schema), n.WithOptions)
	case *CreateDataSink:
		return appendNodes([]Node{n.Name, n.From}, n.WithOptions)
	case *CreateView:
		children := []Node{n.Name}
		if n.Query != nil {
			children = append(children, n.Query)
		}
		return appendNodes(children, n.WithOptions)
	case *CreateTable:
		return appendNodes(appendNodes([]Node{n.Name}, n.Columns), n.WithOptions)
	case *AlterTable:
		return appendNode([]Node{n.Name}, n.Operation)
	case *DropTable:
		return appendNodes(nil, n.Names)
	case *DropDataSource:
		return appendNodes(nil, n.Names)
	case *DropView:
		return appendNodes(nil, n.Names)
	case *Peek:
		return []Node{n.Name}
	case *Tail:
		return []Node{n.Name}

	case *Query:
		children := appendNodes(nil, n.CTEs)
		children = appendNode(children, n.Body)
		children = appendNodes(children, n.OrderBy)
		return appendNode(children, n.Limit)
	case *Cte:
		if n.Query == nil {
			return nil
		}
		return []Node{n.Query}
	case *Select:
		children := appendNodes(nil, n.Projection)
		children = appendNode(children, n.Relation)
		children = appendNodes(children, n.Joins)
		children = appendNode(children, n.Selection)
		children = appendNodes(children, n.GroupBy)
		return appendNode(children, n.Having)
	case *SetOperation:
		return appendNode(appendNode(nil, n.Left), n.Right)
	case *NestedQuery:
		if n.Query == nil {
			return nil
		}
		return []Node{n.Query}
	case *SelectItem:
		return appendNode(nil, n.Expr)
	case *Table:
		return []Node{n.Name}
	case *Derived:
		if n.Subquery == nil {
			return nil
		}
		return []Node{n.Subquery}
	case *Join:
		return appendNode(appendNode(nil, n.Relation), n.On)
	case *OrderByExpr:
		return appendNode(nil, n.Expr)

	case *WindowSpec:
		children := appendNodes(nil, n.PartitionBy)
		children = appendNodes(children, n.OrderBy)
		if n.Frame != nil {
			children = append(children, n.Frame)
		}
		return children
	case *WindowFrame:
		var children []Node
		if n.StartBound != nil {
			children = append(children, n.StartBound)
		}
		if n.EndBound != nil {
			children = append(children, n.EndBound)
		}
		return children
	case *WindowFrameBound:
		return nil

	case ObjectName:
		return nil
	case *ColumnDef:
		return appendNode(appendNode(nil, n.Type), n.Default)
	case *Assignment:
		return appendNode(nil, n.Value)
	case *WithOption:
		return appendNode(nil, n.Value)
	case *RawSchema, *RegistrySchema:
		return nil
	case *AddConstraint:
		return appendNode(nil, n.Constraint)
	case *RemoveConstraint:
		return nil
	case *PrimaryKeyConstraint, *UniqueKeyConstraint, *KeyConstraint:
		return nil
	case *ForeignKeyConstraint:
		return []Node{n.ForeignTable}

	case Long, Double, SingleQuotedString, NationalString, Boolean, Date, Time, Timestamp, Null:
		return nil

	case *CharType, *VarcharType, *ClobType, *BinaryType, *VarbinaryType, *BlobType,
		*DecimalType, *FloatType, *SimpleType:
		return nil
	case *CustomType:
		return []Node{n.Name}
	case *ArrayType:
		return appendNode(nil, n.Element)
	}
	panic(fmt.Sprintf("streamsql: unexpected node type %T", n))
}

// Inspect traverses the tree rooted at n in depth-first pre-order,
// calling f for each node. If f returns false, the node's children are
// skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil {
		return
	}
	if !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

func appendNode(dst []Node, n Node) []Node {
	if n == nil {
		return dst
	}
	return append(dst, n)
}

func appendNodes[T Node](dst []Node, nodes []T) []Node {
	for _, n := range nodes {
		dst = append(dst, n)
	}
	return dst
}
