// Package services contains the core application services implementing
// the driving ports. Services orchestrate domain logic and delegate
// I/O to the driven ports (backend client, session store, config
// store). They hold no transport or storage detail themselves.
package services
