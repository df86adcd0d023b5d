// Package config loads editor settings from a TOML file.
//
// A missing file is not an error; callers get the built-in defaults.
// Values present in the file override defaults field by field, and the
// merged result is validated before use.
package config
