// Package driven defines the driven (outbound) port interfaces of the
// lexdraft core: the backend API client, session persistence, and
// configuration. Adapters under internal/adapters/driven implement them.
package driven
