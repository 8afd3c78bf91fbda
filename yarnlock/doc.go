// Package yarnlock implements a parser for the yarn.lock v1 text format.
//
// The v1 format predates JSON-based lockfiles: a file is a sequence of
// top-level comment lines and dependency blocks, where a block is a
// comma-separated selector list terminated by ':' followed by
// indentation-scoped key/value lines. Indentation width is not fixed,
// only consistent and strictly increasing for nested content.
//
// The package is structured as a hand-rolled recursive-descent parser
// with three layers:
//
//   - Scanner: a resumable, single-token-lookahead tokenizer. Infallible;
//     anything unrecognized falls through to the literal token class.
//   - Parser: consumes tokens and produces one Entry per top-level item.
//   - Entry types: the output data structures (Entry, Block, PackageRef).
//
// All text in tokens and entries is borrowed from the source string, never
// copied. Unknown body keys are tolerated and skipped so that lockfile
// variants carrying extra metadata keep parsing.
//
// Usage:
//
//	entries, err := yarnlock.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range entries {
//	    if e.Kind == yarnlock.EntryBlock {
//	        fmt.Println(e.Block.Packages[0], e.Block.Version)
//	    }
//	}
//
// Resolving selectors across blocks into a dependency graph is the
// migrate package's job, not this one's.
package yarnlock
