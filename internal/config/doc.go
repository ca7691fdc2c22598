// Package config loads and validates the application configuration.
//
// Configuration is assembled from three layers, lowest precedence first:
// built-in defaults, an optional YAML file next to the executable, and
// environment variables with the AADHAAR_ prefix. Paths are always resolved
// relative to the executable directory so the tool behaves the same no matter
// where it is launched from.
package config
