// Package command exposes go-command compatible command handlers implementing
// macromate business logic (registration, profile edits, macro calculation,
// diary logging, recipes, chat and settings). Commands are wired by the
// service layer and can be invoked by any transport.
package command
