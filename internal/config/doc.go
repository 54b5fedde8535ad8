// Package config handles configuration loading, parsing, and validation
// from various sources (a .env file, config.yaml, environment variables with the
// CROCODILE_ prefix). It provides type-safe access to the settings of the word
// pool, the refill workers and each generation backend.
package config
