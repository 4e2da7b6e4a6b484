// Package term holds the surface-syntax AST, its recursive-descent
// parser, and the two graph boundary
// crossings: Build turns a parsed Term into the node/edge graph the
// reducer operates on, and Read turns a reduced graph back into a Term
// for printing.
package term

// Term is the surface AST, a tagged sum extended with a numeric
// literal alongside the usual variable, abstraction, and application
// forms.
type Term interface{ isTerm() }

// Var is either a bound occurrence (resolved against an enclosing Abs or
// With during Build) or a reference to an intrinsic name (+, -, match,
// constructor, ...).
type Var struct{ Name string }

// Abs is a single-parameter abstraction, λArg.Body.
type Abs struct {
	Arg  string
	Body Term
}

// App is function application, Fun applied to Arg.
type App struct {
	Fun, Arg Term
}

// With is `with Name Val in Body`, the let-binding surface form.
// Build materialises it directly as a Closure rather than desugaring
// through App+Abs, since that is the shape the graph needs regardless.
type With struct {
	Name     string
	Val, Body Term
}

// Num is a numeric literal.
type Num struct{ Value uint64 }

func (Var) isTerm()  {}
func (Abs) isTerm()  {}
func (App) isTerm()  {}
func (With) isTerm() {}
func (Num) isTerm()  {}
