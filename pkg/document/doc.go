// Package document defines the schemaless document representation shared by
// index templates and ISM policies, and a deep, order-insensitive diff engine
// over it.
//
// The diff treats sequences as multisets: reordering the elements of a list
// (for example the states of an ISM policy) is not a semantic change. Mapping
// key order never matters. Numeric scalars are compared by value so that a
// YAML-decoded int and a JSON-decoded float64 holding the same number are
// equal.
package document
