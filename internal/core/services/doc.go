// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The interactive query session lives here: QueryController enforces
// single-flight submission, MergeHistory projects the transcript,
// Navigator derives the active session from the location, and
// SessionRegistry lists sessions. Workspace composes them for the shells.
//
// Services are pure Go with no CGO.
package services
