// Package ast holds the syntax tree in typed arenas.
//
// Every node lives in an Arena and is addressed by a 1-based ID; the zero
// ID means "absent". A node header (Expr, Stmt, Item, Pat) carries the kind
// and span; kind-specific data sits in a payload arena reached through the
// typed accessors (Exprs.Binary, Stmts.Let, ...). Nodes are never mutated
// after the parser returns; later passes keep their results in side tables
// keyed by ID.
package ast
