// Package query exposes go-command compatible read handlers for profiles,
// macro targets, catalogs, daily summaries, chat, settings and activity.
package query
