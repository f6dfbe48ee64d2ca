// Package filesystem provides the types.FS implementations used by conductor.
//
// Both the real filesystem and the in-memory test filesystem go through
// afero, so project fixtures in tests behave like projects on disk.
package filesystem
