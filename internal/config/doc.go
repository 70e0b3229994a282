// Package config handles configuration loading, parsing, and validation
// from environment variables (prefixed JUICEBOX_) and an optional
// config.yaml file. Environment variables take precedence over the file.
package config
