// Package config defines the ntver settings file and provides helpers to
// load, validate and save it in YAML format.
package config
