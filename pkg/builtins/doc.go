// Package builtins supplies the active-form computations for every Data
// tag the reducer does not already treat as inert: arithmetic, the match
// branch helper, the constructor meta-builtin, and the byte-array
// operations. It imports package reduce and registers itself against a
// reduce.Evaluator; reduce never imports builtins, so the registration
// is the only coupling between the two (see Register).
package builtins
