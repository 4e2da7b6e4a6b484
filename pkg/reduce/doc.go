// Package reduce implements the weak-head normal-form evaluator: the
// mutually recursive rules for applications, variable dereference, and
// data-constructor dispatch, plus the lift rewrite and the last-reference
// shortcut that together realise call-by-need over the graph package's
// mutable expression DAG.
//
// Reduce knows nothing about what a Data node's tag actually computes; it
// dispatches to a registry of builtin functions supplied by whoever wires
// it up (see package builtins), so that reduce never imports builtins and
// the two packages avoid a circular dependency.
package reduce
