// Package activity persists the user activity trail. The Repository is both
// the write-side sink used by commands and the read side behind the activity
// feed. Payloads are masked with go-masker before they are stored.
package activity
