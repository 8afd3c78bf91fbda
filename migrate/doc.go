// Package migrate turns parsed yarn.lock v1 entries into a linked
// dependency graph and translates that graph into other lockfile formats.
//
// Resolve indexes every selector of every block and points each
// dependency edge at the block satisfying it; ConvertNPM renders the
// result as an npm package-lock.json (lockfileVersion 1) document. The
// package consumes the typed entries produced by the yarnlock package
// only — it never looks at lockfile text and never talks to a registry.
package migrate
