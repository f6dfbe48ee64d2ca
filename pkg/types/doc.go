// Package types defines the values shared across conductor's packages:
// pods, overrides, the materialization Operation and the FS abstraction
// every filesystem access goes through.
package types
