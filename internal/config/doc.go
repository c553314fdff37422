// Package config loads and merges the sync server configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Sources are merged in that order with dario.cat/mergo (a later source
// never overwrites a value an earlier source already set); defaults are
// applied last, and the final configuration is validated before use.
package config
