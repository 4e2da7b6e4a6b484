package graph

import "fmt"

// TagKind discriminates the three disjoint constructor-tag families
// (arithmetic/helper/IO), plus the byte-array family.
type TagKind uint8

const (
	TagArithmetic TagKind = iota
	TagMatch
	TagConstructorMeta
	TagCustom
	TagIO
	TagBytes
)

func (k TagKind) String() string {
	switch k {
	case TagArithmetic:
		return "Arithmetic"
	case TagMatch:
		return "Match"
	case TagConstructorMeta:
		return "ConstructorMeta"
	case TagCustom:
		return "Custom"
	case TagIO:
		return "IO"
	case TagBytes:
		return "Bytes"
	default:
		return "Unknown"
	}
}

// ArithOp enumerates the arithmetic tags.
type ArithOp uint8

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithPow
	ArithEq
)

func (o ArithOp) String() string {
	switch o {
	case ArithAdd:
		return "+"
	case ArithSub:
		return "-"
	case ArithMul:
		return "*"
	case ArithDiv:
		return "/"
	case ArithPow:
		return "^"
	case ArithEq:
		return "="
	default:
		return "?"
	}
}

// IOOp enumerates the I/O tags the driver interprets after reduction.
type IOOp uint8

const (
	IOReadLine IOOp = iota
	IOPrint
	IOFlatmap
)

func (o IOOp) String() string {
	switch o {
	case IOReadLine:
		return "read-line"
	case IOPrint:
		return "print"
	case IOFlatmap:
		return "flatmap"
	default:
		return "?"
	}
}

// BytesOp enumerates the byte-array builtins.
type BytesOp uint8

const (
	BytesNew BytesOp = iota
	BytesGet
	BytesSet
	BytesLength
	BytesPush
	BytesPop
)

func (o BytesOp) String() string {
	switch o {
	case BytesNew:
		return "bytes-new"
	case BytesGet:
		return "bytes-get"
	case BytesSet:
		return "bytes-set"
	case BytesLength:
		return "bytes-length"
	case BytesPush:
		return "bytes-push"
	case BytesPop:
		return "bytes-pop"
	default:
		return "?"
	}
}

// CustomTag identifies a user-defined constructor minted at runtime by
// the `constructor` meta-builtin. uid is process-unique.
type CustomTag struct {
	UID   uint64
	Arity int
}

// Tag is the discriminator carried by a Data node.
type Tag struct {
	Kind   TagKind
	Arith  ArithOp
	IO     IOOp
	Bytes  BytesOp
	Custom CustomTag
}

// Arity returns the number of Binder(i) edges a Data node of this tag
// must carry once saturated.
func (t Tag) Arity() int {
	switch t.Kind {
	case TagArithmetic:
		return 2
	case TagMatch:
		return 4
	case TagConstructorMeta:
		return 1
	case TagCustom:
		return t.Custom.Arity
	case TagIO:
		switch t.IO {
		case IOReadLine:
			return 0
		case IOPrint:
			return 1
		case IOFlatmap:
			return 2
		}
	case TagBytes:
		switch t.Bytes {
		case BytesNew, BytesLength, BytesPop:
			return 1
		case BytesGet, BytesPush:
			return 2
		case BytesSet:
			return 3
		}
	}
	return 0
}

func (t Tag) String() string {
	switch t.Kind {
	case TagArithmetic:
		return t.Arith.String()
	case TagMatch:
		return "match"
	case TagConstructorMeta:
		return "constructor"
	case TagCustom:
		return fmt.Sprintf("#%d/%d", t.Custom.UID, t.Custom.Arity)
	case TagIO:
		return t.IO.String()
	case TagBytes:
		return t.Bytes.String()
	default:
		return "?"
	}
}

// Inert reports whether a Data node of this tag is a value on its own
// (never rewritten by Evaluate once saturated) rather than an active
// computation. IO tags are inert during pure reduction; the driver
// interprets them afterwards.
func (t Tag) Inert() bool {
	return t.Kind == TagIO || t.Kind == TagCustom
}

// ArithTag, MatchTag, ConstructorMetaTag, IOTag and BytesTag build the
// corresponding Tag values; small helpers so callers never hand-assemble
// a zero-valued Tag for the wrong family.
func ArithTag(op ArithOp) Tag { return Tag{Kind: TagArithmetic, Arith: op} }
func MatchTag() Tag           { return Tag{Kind: TagMatch} }
func ConstructorMetaTag() Tag { return Tag{Kind: TagConstructorMeta} }
func CustomDataTag(uid uint64, arity int) Tag {
	return Tag{Kind: TagCustom, Custom: CustomTag{UID: uid, Arity: arity}}
}
func IOTag(op IOOp) Tag     { return Tag{Kind: TagIO, IO: op} }
func BytesTag(op BytesOp) Tag { return Tag{Kind: TagBytes, Bytes: op} }
