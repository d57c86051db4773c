// Package config handles configuration management for pbxpatch.
// It layers embedded defaults, a project config file (TOML or YAML),
// PBXPATCH_ environment variables and command-line overrides, and decodes
// the result into a Config.
package config
