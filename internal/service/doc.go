// Package service implements the task board workflows: registration and
// login, role checks, task assignment and status updates, and user lookup.
//
// Services depend on the store interfaces and on small collaborator
// interfaces (password hashing, tokens, notifications), never on concrete
// infrastructure. Every failure a caller is expected to handle wraps one of
// the sentinels in errors.go so the HTTP layer can map it with errors.Is.
package service
