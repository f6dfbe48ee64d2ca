// Package testutil builds conductor projects for tests.
//
// Key components:
//   - TestProject: a project tree on an in-memory or temporary filesystem
//   - HelloProject / RailsHelloProject: the two reference fixtures used
//     across package tests
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated only when a real process must see the files
//   - All test data is defined inline, not in external files
package testutil
