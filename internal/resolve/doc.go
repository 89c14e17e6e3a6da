// Package resolve binds identifiers to frame slots, hoists items, computes
// closure captures and checks match exhaustiveness.
//
// The walk mirrors the evaluator exactly: every scope with a frame
// (program root, fn parameters, closure parameters, block, for-loop
// variable, match arm) becomes one runtime frame, so a Binding's Depth is
// the number of parent links to follow at run time.
package resolve
