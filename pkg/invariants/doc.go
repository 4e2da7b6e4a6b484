// Package invariants checks the structural properties that must hold
// before and after every public reducer call: binder uniqueness, data
// arity, and root reachability. Violations are
// aggregated with github.com/hashicorp/go-multierror so a single check
// reports every offending node instead of stopping at the first.
package invariants
