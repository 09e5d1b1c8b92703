// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FuzzyIndexFactory: Builds approximate-match indexes over frame names
//   - Reporter: Receives diagnostics such as malformed queries
//   - ProfileReader: Detects formats and decodes profile files
//   - ProfileStore: Profile library persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FrameFocuser: Brings the selected frame into view. Without it, navigation only moves the cursor.
//   - ProfileWatcher: Reloads profiles on change. Without it, watch mode is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or decoder package
package driven
