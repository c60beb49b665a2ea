// Package config loads, normalizes, and validates hexfsm tool configuration.
//
// Settings come from hexfsm.toml (in the working directory) or
// ~/.config/hexfsm/config.toml, layered over repository defaults. The
// HEXFSM_REDIS_PASSWORD environment variable fills the redis password when the
// file leaves it empty. Command-line flags are applied on top by cmd/hexfsm.
package config
