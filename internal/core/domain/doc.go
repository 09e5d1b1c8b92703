// Package domain defines the core entities for flamesearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Frame: One occurrence of a call-stack entry in a flamegraph
//   - Flamegraph: The frames of one profile laid out as a call tree
//   - Corpus: The flat, ordered frames searched together
//   - MatchResult: Matched frames keyed by search identity
//   - SessionState: Query, results and navigation cursor
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
