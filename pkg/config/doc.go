// Package config loads scirnap's configuration. Sources are layered, later
// ones winning: the embedded defaults, an optional scirnap.toml or
// scirnap.yaml, SCIRNAP_ environment variables and finally flags set on
// the command line.
package config
