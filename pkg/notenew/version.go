// Package notenew exposes build-level metadata about the module.
package notenew

// Version is the module version reported by the CLI.
const Version = "v0.3.0"
