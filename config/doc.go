// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the application configuration structure
// including server settings, the consumer and consumer admin domains used for
// routing, logging and metrics buffering.
package config
