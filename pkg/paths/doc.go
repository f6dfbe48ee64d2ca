// Package paths knows where things live in a conductor project.
//
// A project is any directory containing a pods/ directory:
//
//	<root>/conductor.toml                  optional project configuration
//	<root>/pods/<pod>.yml                  base pod definitions
//	<root>/pods/<pod>.config.yml           optional per-pod settings
//	<root>/pods/overrides/<ovr>/<pod>.yml  per-override layers
//	<root>/src/<alias>                     local clones of source repos
//	<root>/config/hooks/<event>.d/*.hook   lifecycle hooks
//	<root>/.conductor/pods/<pod>.yml       materialized output
//
// FindProject locates the root by walking upward from a start directory.
// Layout turns a root into concrete paths. User-level configuration and
// state follow the XDG Base Directory specification.
package paths
