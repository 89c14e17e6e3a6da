// Package eval is a tree-walking interpreter over the resolved AST.
//
// Every resolver scope except the prelude owns exactly one runtime frame,
// so an identifier binding (depth, slot) is followed with plain parent
// hops. break, continue and return unwind as *jump values on the error
// channel; only *Fault reaches the caller of Run.
package eval
