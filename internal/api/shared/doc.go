// Package shared holds request context helpers and response writers used by
// both the api handlers and their middleware.
package shared
