// Package runner abstracts process execution for git, docker-compose and
// hook scripts.
//
// Callers build a Command from a CommandRunner, add arguments and
// environment, and Exec it. Only success or failure is observed; output
// streams straight through to the user. TestRunner records commands instead
// of running them.
package runner
