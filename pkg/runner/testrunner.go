package runner

import (
	"github.com/arthur-debert/conductor/pkg/errors"
)

// Invocation is one command seen by a TestRunner.
type Invocation struct {
	Program string
	Args    []string
	Env     map[string]string
	Dir     string
}

// Argv returns the program followed by its arguments.
func (i Invocation) Argv() []string {
	return append([]string{i.Program}, i.Args...)
}

// TestRunner records commands instead of running them.
type TestRunner struct {
	Invocations []Invocation

	// Handler, if set, is called for every Exec. A non-nil error is
	// returned wrapped as an external command failure.
	Handler func(Invocation) error
}

// NewTestRunner returns an empty recording runner.
func NewTestRunner() *TestRunner {
	return &TestRunner{}
}

// Build implements CommandRunner.
func (r *TestRunner) Build(program string) Command {
	return &testCommand{runner: r, inv: Invocation{Program: program, Env: map[string]string{}}}
}

// Ran returns the argv of every recorded command, in order.
func (r *TestRunner) Ran() [][]string {
	out := make([][]string, 0, len(r.Invocations))
	for _, inv := range r.Invocations {
		out = append(out, inv.Argv())
	}
	return out
}

type testCommand struct {
	runner *TestRunner
	inv    Invocation
}

func (c *testCommand) Arg(arg string) Command {
	c.inv.Args = append(c.inv.Args, arg)
	return c
}

func (c *testCommand) Args(args ...string) Command {
	c.inv.Args = append(c.inv.Args, args...)
	return c
}

func (c *testCommand) Env(name, value string) Command {
	c.inv.Env[name] = value
	return c
}

func (c *testCommand) Dir(dir string) Command {
	c.inv.Dir = dir
	return c
}

func (c *testCommand) Exec() error {
	c.runner.Invocations = append(c.runner.Invocations, c.inv)
	if c.runner.Handler == nil {
		return nil
	}
	if err := c.runner.Handler(c.inv); err != nil {
		return errors.Wrapf(err, errors.ErrExternalCommand, "error running %s", c.inv.Program)
	}
	return nil
}
