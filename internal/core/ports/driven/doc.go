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
//   - DocumentStore: Lists, uploads, imports, initialises and deletes documents
//   - SessionStore: Creates, lists and deletes sessions scoped to a document
//   - HistoryStore: Reads the server-confirmed exchanges of a session
//   - Answerer: Answers a question within a session, honouring cancellation
//   - ConfigStore: Application configuration
//   - Notifier: Surfaces notices to the user
//
// # Optional Interfaces
//
// These are discovered by type assertion:
//
//   - HistoryInvalidator: Drops cached history so the next read hits the backend.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
