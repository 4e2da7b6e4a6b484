package graph

import "strconv"

// NodeID is a stable handle into a Graph. Handles remain valid across
// deletions of other nodes; the zero value never denotes a live node.
type NodeID uint64

// edgeRef names the single ownership edge that reaches a node: the
// parent that owns it and the label of the edge from parent to child.
// Every node has at most one such edge: the graph is structurally a
// tree modulo Binder back-edges.
type edgeRef struct {
	node  NodeID
	label Label
}

// Node is the tagged-sum expression node. Only the fields relevant to
// its Kind are meaningful; the rest are zero.
type Node struct {
	id   NodeID
	kind Kind

	name string // Lambda/Closure: the bound name
	body NodeID // Lambda/Closure: Body edge

	function  NodeID // Application: Function edge
	parameter NodeID // Application/Closure: Parameter edge

	varKind VarKind // Variable: Free or Bound
	free    string  // Variable(Free): interned name
	binder  NodeID  // Variable(Bound): Binder(0) target

	tag     Tag      // Data: constructor tag
	binders []NodeID // Data: Binder(i) targets, i = 0..arity-1

	prim Primitive // Primitive: the immediate value

	parent *edgeRef   // the one ownership edge pointing at this node, nil if root/detached
	refs   []refEntry // incoming Binder edges referencing this node
	debug  []string   // Debug edge annotations; carry no semantics
}

// refEntry names one incoming Binder edge: the Variable or Data node that
// holds it, and (for Data) which Binder(i) slot. RewireBinder walks this
// list to relocate every reference in one pass — the indirection
// shortcut's "rewire every reference of the lambda's binder".
type refEntry struct {
	from  NodeID
	index int
}

func (n *Node) ID() NodeID { return n.id }
func (n *Node) Kind() Kind { return n.kind }

// Graph is the mutable expression DAG the reducer rewrites in place.
type Graph struct {
	nodes   map[NodeID]*Node
	nextID  NodeID
	nextUID uint64 // fresh-uid counter for the constructor meta-builtin
	root    NodeID
}

// New returns an empty graph. Node id 0 is reserved and never assigned,
// so the zero value of NodeID can serve as "no node".
func New() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node), nextID: 1}
}

func (g *Graph) alloc(kind Kind) *Node {
	n := &Node{id: g.nextID, kind: kind}
	g.nodes[n.id] = n
	g.nextID++
	return n
}

// Root returns the graph's designated root node.
func (g *Graph) Root() NodeID { return g.root }

// SetRoot designates n as the graph's root (used once, by the builder
// that produced the initial graph from parsed source).
func (g *Graph) SetRoot(n NodeID) { g.root = n }

// NextUID returns a fresh, process-unique identifier and advances the
// counter. Used by the `constructor` meta-builtin.
func (g *Graph) NextUID() uint64 {
	g.nextUID++
	return g.nextUID
}

// Has reports whether id still denotes a live node.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) get(id NodeID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, parentError("node %d does not exist", id)
	}
	return n, nil
}

// Kind returns the kind of node id.
func (g *Graph) Kind(id NodeID) Kind {
	n, err := g.get(id)
	if err != nil {
		return KindPrimitive
	}
	return n.kind
}

// --- constructors -----------------------------------------------------

func (g *Graph) NewLambda(name string) NodeID {
	n := g.alloc(KindLambda)
	n.name = name
	return n.id
}

func (g *Graph) NewApplication() NodeID {
	return g.alloc(KindApplication).id
}

// NewClosure allocates a Closure node directly, for surface forms (the
// `with` binding) whose graph shape is a closure from the start rather
// than a Lambda later rewritten in place by a firing Application.
func (g *Graph) NewClosure(name string) NodeID {
	n := g.alloc(KindClosure)
	n.name = name
	return n.id
}

func (g *Graph) NewBoundVariable() NodeID {
	n := g.alloc(KindVariable)
	n.varKind = VarBound
	return n.id
}

func (g *Graph) NewFreeVariable(name string) NodeID {
	n := g.alloc(KindVariable)
	n.varKind = VarFree
	n.free = name
	return n.id
}

func (g *Graph) NewData(tag Tag) NodeID {
	n := g.alloc(KindData)
	n.tag = tag
	n.binders = make([]NodeID, tag.Arity())
	return n.id
}

func (g *Graph) NewNumber(v uint64) NodeID {
	n := g.alloc(KindPrimitive)
	n.prim = Number(v)
	return n.id
}

func (g *Graph) NewBytes(b []byte) NodeID {
	n := g.alloc(KindPrimitive)
	n.prim = Bytes(b)
	return n.id
}

// NewSaturatingChain builds `λa0. λa1. ... λak-1. Data{tag}`, the
// parser-produced shape every builtin needs: a chain of single-parameter
// lambdas collecting tag's k arguments into the Data node's Binder(i)
// edges. The Binder targets are the lambda nodes themselves; when an
// application later fires against one of them, the in-place
// Lambda→Closure rewrite means those same ids become the closures a
// saturated Data node's binders are required to target, without any
// edge needing to move. Returns the outermost lambda (or the Data node
// itself if arity is 0, e.g. read-line).
func (g *Graph) NewSaturatingChain(tag Tag) NodeID {
	arity := tag.Arity()
	data := g.NewData(tag)
	lambdas := make([]NodeID, arity)
	for i := 0; i < arity; i++ {
		lambdas[i] = g.NewLambda(argName(i))
		if err := g.AddEdge(data, LabelBinder, lambdas[i], i); err != nil {
			panic(err) // construction invariant violated; programmer error
		}
	}
	if arity == 0 {
		return data
	}
	cur := data
	for i := arity - 1; i >= 0; i-- {
		if err := g.AddEdge(lambdas[i], LabelBody, cur, 0); err != nil {
			panic(err)
		}
		cur = lambdas[i]
	}
	return cur
}

func argName(i int) string {
	return "$arg" + strconv.Itoa(i)
}
