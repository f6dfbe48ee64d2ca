package runner

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/rs/zerolog"
)

// CommandRunner creates commands for a program.
type CommandRunner interface {
	Build(program string) Command
}

// Command is a process invocation under construction.
type Command interface {
	Arg(arg string) Command
	Args(args ...string) Command
	Env(name, value string) Command
	Dir(dir string) Command
	Exec() error
}

// OSRunner runs commands as child processes.
type OSRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	logger zerolog.Logger
}

// NewOS returns a runner wired to the process's standard streams.
func NewOS() *OSRunner {
	return &OSRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logging.GetLogger("runner"),
	}
}

// Build implements CommandRunner.
func (r *OSRunner) Build(program string) Command {
	return &osCommand{runner: r, program: program, env: map[string]string{}}
}

type osCommand struct {
	runner  *OSRunner
	program string
	args    []string
	env     map[string]string
	dir     string
}

func (c *osCommand) Arg(arg string) Command {
	c.args = append(c.args, arg)
	return c
}

func (c *osCommand) Args(args ...string) Command {
	c.args = append(c.args, args...)
	return c
}

func (c *osCommand) Env(name, value string) Command {
	c.env[name] = value
	return c
}

func (c *osCommand) Dir(dir string) Command {
	c.dir = dir
	return c
}

func (c *osCommand) Exec() error {
	logging.LogCommand(c.program, c.args)

	cmd := exec.Command(c.program, c.args...)
	cmd.Dir = c.dir
	cmd.Stdin = c.runner.Stdin
	cmd.Stdout = c.runner.Stdout
	cmd.Stderr = c.runner.Stderr
	cmd.Env = os.Environ()
	for _, name := range sortedKeys(c.env) {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", name, c.env[name]))
	}

	if err := cmd.Run(); err != nil {
		c.runner.logger.Debug().Err(err).Str("program", c.program).Msg("Command failed")
		return errors.Wrapf(err, errors.ErrExternalCommand, "error running %s", c.program).
			WithDetail("program", c.program).
			WithDetail("args", c.args)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
