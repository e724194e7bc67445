// Package config provides configuration structures and utilities for
// mailscout: extraction run options, validation, and the optional
// .mailscout YAML file with site-independent overrides.
package config
