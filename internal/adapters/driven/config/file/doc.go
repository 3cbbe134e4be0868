// Package file provides a TOML file-backed implementation of the
// driven.ConfigStore port, stored under ~/.lexdraft. A watcher can
// reload the file when it changes on disk so long-running TUI sessions
// pick up edits without a restart.
package file
