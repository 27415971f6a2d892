// Package envvars implements the ordered environment-variable map used by
// integration test configuration.
//
// A variable either carries a value or is a passthrough: its value is taken
// from the caller's process environment when tests run. Passthrough is
// represented by a nil value, which is distinct from an explicit empty
// string:
//
//	env:
//	  LOG_LEVEL: debug   # fixed value
//	  EMPTY: ""          # fixed empty value
//	  AWS_PROFILE:       # passthrough
//
// Declaration order is kept for display and JSON output. An Environment is
// immutable once built.
package envvars
