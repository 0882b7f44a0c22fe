// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file, overridden from MVT_* environment
// variables and validated using struct tags. Every field has a default, so
// running without a config file is valid.
package config
