// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The frame search pipeline flows one way:
//
//	profile set -> CorpusBuilder -> MatchEngine -> Ordering -> SearchSession
//
// Only SearchSession holds state. The other stages are pure and
// memoized on the identity of their input.
//
// Services are pure Go with no CGO or external dependencies.
package services
