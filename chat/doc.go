// Package chat keeps the assistant conversation log. Each user has at most one
// active conversation; resetting closes it so the next message opens a new one.
package chat
