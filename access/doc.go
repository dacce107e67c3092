// Package access authorizes actors against the user a request targets.
package access
