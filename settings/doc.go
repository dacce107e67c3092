// Package settings stores per-user settings and resolves them on top of the
// system defaults.
package settings
