// Package domain contains the core business entities of the task board:
// users with their roles, tasks with their statuses, and the partial update
// representation used when modifying tasks. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
