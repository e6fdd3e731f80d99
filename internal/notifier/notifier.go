// Package notifier delivers account verification mail. Call sites treat
// delivery as fire-and-forget: a failed send is logged and never rolls back
// the state change that triggered it.
package notifier

// Notifier sends a verification link for the given token to email.
type Notifier interface {
	SendVerification(email, token string) error
}
