// Package api translates HTTP requests into service calls and service
// results into JSON responses.
package api
