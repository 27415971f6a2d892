// Package state persists which environment of each integration is active.
//
// Every integration has at most one record, stored as JSON in the envs
// directory of the vdev state root:
//
//	<state dir>/envs/kafka.json
//	{"integration": "kafka", "active": "3.5", "activatedAt": "2026-01-02T15:04:05Z"}
//
// A missing record means no environment is active; that is a normal result,
// not an error. A record that exists but cannot be read or decoded is
// reported as a StateReadError.
//
// Reads never depend on the integration's configuration, so stale or broken
// state can always be inspected. Writes replace the record atomically
// (temporary file + rename), so a concurrent reader sees either the old or
// the new selection.
package state
