// Package config handles configuration management for conductor.
// It loads configuration from embedded defaults, the user's XDG config
// file, the project's conductor.toml, CONDUCTOR_* environment variables
// and command-line flags, each layer overriding the previous one.
package config
