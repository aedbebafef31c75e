// Package router compiles a declarative route-definition tree into a flat,
// priority-ordered list of matchable branches and resolves locations against
// it.
//
// A Definition tree is expanded depth-first into Branches: one per leaf,
// each holding the root-to-leaf chain of compiled Routes, a composite
// matcher, and a priority score. The branch list is sorted once, at build
// time; matching walks it in order and returns the first hit.
//
// Pattern grammar: "/" separates segments; ":name" binds one non-empty path
// segment (append "?" to make it optional); a final "*" or "*name" captures
// the remainder of the path.
package router
