// Package config loads and validates the trailhead application
// configuration.
//
// Values are collected from environment variables, command-line flags, and
// an optional JSON file, merged in that priority order, and backed by
// built-in defaults. The merged result is validated before the application
// is allowed to start.
package config
