// Package config loads application configuration from environment
// variables (CLIMA_ prefix) layered over an optional YAML file, with
// validated defaults for logging, paths, and the comfort-engine
// parameters shared across invocations.
package config
