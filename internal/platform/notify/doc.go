// Package notify delivers task assignment notifications by email.
package notify
