package graph

import "strconv"

// PrimKind distinguishes the two immediate value shapes.
type PrimKind uint8

const (
	PrimNumber PrimKind = iota
	PrimBytes
)

// Primitive is an immediate value: a natural number or a byte sequence.
// Numbers are unbounded in contract; this implementation uses a
// fixed-width uint64 to keep the node payload a plain Go value rather
// than an arbitrary-precision type.
type Primitive struct {
	Kind   PrimKind
	Number uint64
	Bytes  []byte
}

func Number(n uint64) Primitive { return Primitive{Kind: PrimNumber, Number: n} }
func Bytes(b []byte) Primitive  { return Primitive{Kind: PrimBytes, Bytes: b} }

func (p Primitive) String() string {
	switch p.Kind {
	case PrimNumber:
		return strconv.FormatUint(p.Number, 10)
	case PrimBytes:
		return string(p.Bytes)
	default:
		return "?"
	}
}
