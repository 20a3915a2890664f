// Package domain defines the core business entities for docchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document the backend can answer questions about
//   - Session: A conversation opened against one document
//   - QuestionAnswerPair: A server-confirmed exchange belonging to a session
//   - LiveExchange: A client-local exchange that has not been re-read from the server
//   - RemoteError: A backend failure mapped onto a closed set of kinds
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
