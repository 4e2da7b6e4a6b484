// Package graph implements the mutable expression DAG that the reducer
// rewrites in place: nodes with stable handles, ownership edges that form
// a tree, and Binder reference edges that let variables and data
// constructors share a single binding without copying it.
package graph
