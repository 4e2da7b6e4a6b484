package builtins

import (
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

// BytesOp implements the byte-array builtins: New, Get, Set, Length,
// Push, and Pop. Every Data node — and by extension every Primitive a
// builtin hands back — is treated as an immutable value: Set returns a
// fresh array with one element replaced, and Pop returns a fresh array
// with its last element removed (mirroring Push's shape: one byte array
// in, one byte array out).
func BytesOp(ev *reduce.Evaluator, data graph.NodeID) (graph.NodeID, error) {
	g := ev.G
	switch g.TagOf(data).Bytes {

	case graph.BytesNew:
		p, dangling, err := forceArg(ev, data, 0)
		if err != nil {
			return 0, err
		}
		n, err := asNumber(g, data, p)
		if err != nil {
			return 0, err
		}
		if err := disposeIfDangling(g, p, dangling); err != nil {
			return 0, err
		}
		return finish(g, data, g.NewBytes(make([]byte, n)))

	case graph.BytesGet:
		bp, bDangling, b, err := forceBytes(ev, data, 0)
		if err != nil {
			return 0, err
		}
		ip, iDangling, idx, err := forceIndex(ev, data, 1, len(b))
		if err != nil {
			return 0, err
		}
		val := b[idx]
		if err := disposeIfDangling(g, bp, bDangling); err != nil {
			return 0, err
		}
		if err := disposeIfDangling(g, ip, iDangling); err != nil {
			return 0, err
		}
		return finish(g, data, g.NewNumber(uint64(val)))

	case graph.BytesSet:
		bp, bDangling, b, err := forceBytes(ev, data, 0)
		if err != nil {
			return 0, err
		}
		ip, iDangling, idx, err := forceIndex(ev, data, 1, len(b))
		if err != nil {
			return 0, err
		}
		vp, vDangling, err := forceArg(ev, data, 2)
		if err != nil {
			return 0, err
		}
		val, err := asNumber(g, data, vp)
		if err != nil {
			return 0, err
		}
		if val > 255 {
			return 0, reduce.NewCustomError(data, "bytes-set: value %d out of range for a byte", val)
		}
		out := append([]byte(nil), b...)
		out[idx] = byte(val)
		if err := disposeIfDangling(g, bp, bDangling); err != nil {
			return 0, err
		}
		if err := disposeIfDangling(g, ip, iDangling); err != nil {
			return 0, err
		}
		if err := disposeIfDangling(g, vp, vDangling); err != nil {
			return 0, err
		}
		return finish(g, data, g.NewBytes(out))

	case graph.BytesLength:
		bp, bDangling, b, err := forceBytes(ev, data, 0)
		if err != nil {
			return 0, err
		}
		length := len(b)
		if err := disposeIfDangling(g, bp, bDangling); err != nil {
			return 0, err
		}
		return finish(g, data, g.NewNumber(uint64(length)))

	case graph.BytesPush:
		bp, bDangling, b, err := forceBytes(ev, data, 0)
		if err != nil {
			return 0, err
		}
		vp, vDangling, err := forceArg(ev, data, 1)
		if err != nil {
			return 0, err
		}
		val, err := asNumber(g, data, vp)
		if err != nil {
			return 0, err
		}
		if val > 255 {
			return 0, reduce.NewCustomError(data, "bytes-push: value %d out of range for a byte", val)
		}
		out := append(append([]byte(nil), b...), byte(val))
		if err := disposeIfDangling(g, bp, bDangling); err != nil {
			return 0, err
		}
		if err := disposeIfDangling(g, vp, vDangling); err != nil {
			return 0, err
		}
		return finish(g, data, g.NewBytes(out))

	case graph.BytesPop:
		bp, bDangling, b, err := forceBytes(ev, data, 0)
		if err != nil {
			return 0, err
		}
		if len(b) == 0 {
			return 0, reduce.NewCustomError(data, "bytes-pop: array is empty")
		}
		out := append([]byte(nil), b[:len(b)-1]...)
		if err := disposeIfDangling(g, bp, bDangling); err != nil {
			return 0, err
		}
		return finish(g, data, g.NewBytes(out))

	default:
		return 0, reduce.NewCustomError(data, "unknown bytes tag")
	}
}

func forceBytes(ev *reduce.Evaluator, data graph.NodeID, index int) (graph.NodeID, bool, []byte, error) {
	p, dangling, err := forceArg(ev, data, index)
	if err != nil {
		return 0, false, nil, err
	}
	b, err := asBytes(ev.G, data, p)
	if err != nil {
		return 0, false, nil, err
	}
	return p, dangling, b, nil
}

func forceIndex(ev *reduce.Evaluator, data graph.NodeID, index, length int) (graph.NodeID, bool, int, error) {
	p, dangling, err := forceArg(ev, data, index)
	if err != nil {
		return 0, false, 0, err
	}
	n, err := asNumber(ev.G, data, p)
	if err != nil {
		return 0, false, 0, err
	}
	if n >= uint64(length) {
		return 0, false, 0, reduce.NewCustomError(data, "index %d out of range for length %d", n, length)
	}
	return p, dangling, int(n), nil
}
