// Package driving defines the driving (inbound) port interfaces of the
// lexdraft core. The CLI, TUI, and MCP adapters consume these.
package driving
