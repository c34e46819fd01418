// Package config loads nps-sites settings from a YAML file and applies
// defaults based on the XDG base directories.
package config
