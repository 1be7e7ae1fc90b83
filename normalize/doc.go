// Package normalize provides typed value wrappers that canonicalize raw agent
// output before comparison. Each wrapper parses the loosely formatted values a
// web-navigation agent may return (mixed case, currency symbols, unit suffixes,
// regional date formats) into a canonical form, and matches values of the same
// kind under domain-specific equivalence rules.
//
// A wrapper can hold multiple alternatives: a value constructed from a list of
// two or more scalars matches another value when any pair of their alternatives
// matches. This is how task expectations express "any of these answers is
// acceptable".
//
// All wrappers are immutable after construction and safe for concurrent use.
package normalize
