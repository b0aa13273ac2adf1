// Package expression tokenizes, parses and evaluates arithmetic
// expressions over numeric literals and identifiers bound in a symbol
// table. Evaluation decorates every node with its computed value.
//
// Parsing and evaluation recurse over the tree, so call stack depth
// grows with parenthesis nesting and operator chain length. There is
// no internal depth limit; callers feeding untrusted input should
// bound its size themselves.
package expression
