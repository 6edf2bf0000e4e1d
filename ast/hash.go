package ast

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
)

// Fingerprint returns a 64-bit structural hash of a tree: FNV-1a over a
// tag-prefixed encoding of every node and field. Structurally equal trees
// produce equal fingerprints. The fingerprint of a nil node is zero.
func Fingerprint(n Node) uint64 {
	if n == nil {
		return 0
	}
	h := newHasher()
	n.hashTo(h)
	return h.sum()
}

// Per-variant tag bytes keep the structural encoding injective across
// shapes: a node's fields always follow its tag, and absent optionals
// are marked so adjacent fields cannot bleed into each other.
const (
	tagNil byte = iota
	tagIdentifier
	tagWildcard
	tagQualifiedWildcard
	tagCompoundIdentifier
	tagIsNull
	tagInList
	tagInSubquery
	tagBetween
	tagBinaryExpr
	tagUnaryExpr
	tagCast
	tagCollate
	tagNested
	tagLiteralExpr
	tagFunctionCall
	tagCaseExpr
	tagSubquery

	tagQueryStatement
	tagInsert
	tagCopy
	tagUpdate
	tagDelete
	tagCreateDataSource
	tagCreateDataSink
	tagCreateView
	tagCreateTable
	tagAlterTable
	tagDropTable
	tagDropDataSource
	tagDropView
	tagPeek
	tagTail

	tagQuery
	tagCte
	tagSelect
	tagSetOperation
	tagNestedQuery
	tagSelectItem
	tagTable
	tagDerived
	tagJoin
	tagOrderByExpr

	tagWindowSpec
	tagWindowFrame
	tagWindowFrameBound

	tagObjectName
	tagColumnDef
	tagAssignment
	tagWithOption
	tagRawSchema
	tagRegistrySchema
	tagAddConstraint
	tagRemoveConstraint
	tagPrimaryKey
	tagUniqueKey
	tagPlainKey
	tagForeignKey

	tagLong
	tagDouble
	tagSingleQuotedString
	tagNationalString
	tagBoolean
	tagDate
	tagTime
	tagTimestamp
	tagNullValue

	tagCharType
	tagVarcharType
	tagClobType
	tagBinaryType
	tagVarbinaryType
	tagBlobType
	tagDecimalType
	tagFloatType
	tagSimpleType
	tagCustomType
	tagArrayType
)

type hasher struct {
	h   hash.Hash64
	buf [8]byte
}

func newHasher() *hasher {
	return &hasher{h: fnv.New64a()}
}

func (h *hasher) sum() uint64 { return h.h.Sum64() }

func (h *hasher) writeTag(t byte) {
	_, _ = h.h.Write([]byte{t})
}

func (h *hasher) writeBool(b bool) {
	if b {
		h.writeTag(1)
	} else {
		h.writeTag(0)
	}
}

func (h *hasher) writeUint64(v uint64) {
	binary.BigEndian.PutUint64(h.buf[:], v)
	_, _ = h.h.Write(h.buf[:])
}

func (h *hasher) writeInt(v int) {
	h.writeUint64(uint64(v))
}

// writeString length-prefixes the bytes so "ab"+"c" and "a"+"bc" hash
// differently.
func (h *hasher) writeString(s string) {
	h.writeUint64(uint64(len(s)))
	_, _ = h.h.Write([]byte(s))
}

func (h *hasher) writeNode(n Node) {
	if n == nil {
		h.writeTag(tagNil)
		return
	}
	n.hashTo(h)
}

func (h *hasher) writeUintPtr(v *uint64) {
	if v == nil {
		h.writeTag(tagNil)
		return
	}
	h.writeTag(1)
	h.writeUint64(*v)
}

func (h *hasher) writeBoolPtr(v *bool) {
	if v == nil {
		h.writeTag(tagNil)
		return
	}
	h.writeTag(1)
	h.writeBool(*v)
}

func (h *hasher) writeStrPtr(v *string) {
	if v == nil {
		h.writeTag(tagNil)
		return
	}
	h.writeTag(1)
	h.writeString(*v)
}

func (h *hasher) writeStrings(ss []string) {
	h.writeInt(len(ss))
	for _, s := range ss {
		h.writeString(s)
	}
}

// hashNodes mixes a node slice with its length prefix.
func hashNodes[T Node](h *hasher, nodes []T) {
	h.writeInt(len(nodes))
	for _, n := range nodes {
		h.writeNode(n)
	}
}
