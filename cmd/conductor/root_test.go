package conductor

import (
	"bytes"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/conductor/pkg/executor"
	"github.com/arthur-debert/conductor/pkg/filesystem"
	"github.com/arthur-debert/conductor/pkg/paths"
	"github.com/arthur-debert/conductor/pkg/runner"
	"github.com/arthur-debert/conductor/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	stdout string
	stderr string
	runner *runner.TestRunner
}

// runCLI runs conductor against tp with a recording runner.
func runCLI(t *testing.T, tp *testutil.TestProject, args ...string) (cliResult, error) {
	t.Helper()

	t.Cleanup(xdg.Reload)
	t.Setenv(paths.EnvProjectDir, tp.Root)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()

	r := runner.NewTestRunner()
	cmd := newRootCmd(&app{fs: filesystem.NewOS(), exec: executor.NewSynthfs(), runner: r})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), runner: r}, err
}

func TestVersionCmd(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvIsolated)
	res, err := runCLI(t, tp, "version")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "conductor version dev")
}

func TestOutputCmd(t *testing.T) {
	tp := testutil.RailsHelloProject(t, testutil.EnvIsolated)
	res, err := runCLI(t, tp, "output")
	require.NoError(t, err)

	assert.Contains(t, res.stdout, "Wrote 3 pods")
	for _, pod := range []string{"frontend", "db", "migrate"} {
		assert.FileExists(t, tp.Path(".conductor", "pods", pod+".yml"))
	}
	assert.Empty(t, res.runner.Invocations)
}

func TestOutputCmdUnknownTarget(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvIsolated)
	_, err := runCLI(t, tp, "output", "--target", "staging")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staging")
}

func TestExportCmd(t *testing.T) {
	tp := testutil.RailsHelloProject(t, testutil.EnvIsolated)
	dest := tp.Path("exported")

	res, err := runCLI(t, tp, "export", "--target", "production", dest)
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Exported 3 pods")
	assert.Contains(t, res.stdout, dest)
	assert.Contains(t, res.stderr, "No --default-tags given")
	assert.FileExists(t, tp.Path("exported", "frontend.yml"))
	assert.FileExists(t, tp.Path("exported", "tasks", "migrate.yml"))

	_, err = runCLI(t, tp, "export", dest)
	require.Error(t, err)
}

func TestLsCmd(t *testing.T) {
	tp := testutil.RailsHelloProject(t, testutil.EnvIsolated)

	res, err := runCLI(t, tp, "ls")
	require.NoError(t, err)
	for _, want := range []string{"frontend", "web", "db", "migrate", "rake"} {
		assert.Contains(t, res.stdout, want)
	}

	res, err = runCLI(t, tp, "ls", "rake", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 target(s)")
	assert.Contains(t, res.stdout, "migrate")
	assert.Contains(t, res.stderr, "nope")
}

func TestComposeCmd(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvIsolated)

	res, err := runCLI(t, tp, "compose", "up", "web")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"docker-compose", "-p", "hello", "-f", tp.Path(".conductor", "pods", "frontend.yml"), "up", "web"},
		{tp.Path("config", "hooks", "up.d", "hello.hook")},
	}, res.runner.Ran())
	assert.FileExists(t, tp.Path(".conductor", "pods", "frontend.yml"))

	hook := res.runner.Invocations[1]
	assert.Equal(t, "hello", hook.Env["COMPOSE_PROJECT_NAME"])
	assert.Equal(t, "development", hook.Env["PROJECT_OVERRIDE"])
}

func TestComposeCmdProjectName(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvIsolated)

	res, err := runCLI(t, tp, "compose", "-p", "greeting", "stop")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"docker-compose", "-p", "greeting", "-f", tp.Path(".conductor", "pods", "frontend.yml"), "stop"},
	}, res.runner.Ran())
}

func TestComposeCmdPassesOptions(t *testing.T) {
	tp := testutil.RailsHelloProject(t, testutil.EnvIsolated)

	res, err := runCLI(t, tp, "--target", "production", "compose", "up", "-d", "--no-deps", "db")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"docker-compose", "-p", "rails_hello", "-f", tp.Path(".conductor", "pods", "db.yml"), "up", "-d", "--no-deps"},
	}, res.runner.Ran())
}

func TestSplitComposeArgs(t *testing.T) {
	command, names := splitComposeArgs([]string{"logs", "-f", "web", "--tail=10", "db"})
	assert.Equal(t, []string{"logs", "-f", "--tail=10"}, command)
	assert.Equal(t, []string{"web", "db"}, names)

	command, names = splitComposeArgs([]string{"ps"})
	assert.Equal(t, []string{"ps"}, command)
	assert.Empty(t, names)
}

func TestHookCmd(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvIsolated)

	res, err := runCLI(t, tp, "hook", "up")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{tp.Path("config", "hooks", "up.d", "hello.hook")}}, res.runner.Ran())

	res, err = runCLI(t, tp, "hook", "down")
	require.NoError(t, err)
	assert.Empty(t, res.runner.Invocations)
}

func TestSourceCmds(t *testing.T) {
	tp := testutil.RailsHelloProject(t, testutil.EnvIsolated)

	res, err := runCLI(t, tp, "source", "ls")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "rails_hello")
	assert.Contains(t, res.stdout, "coffee-rails")
	assert.Contains(t, res.stdout, "coffee_rails")

	res, err = runCLI(t, tp, "source", "clone", "rails_hello")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"git", "clone", testutil.RailsHelloRepoURL, tp.Path("src", "rails_hello")},
	}, res.runner.Ran())
	assert.Contains(t, res.stdout, "Cloned rails_hello")
	assert.FileExists(t, tp.Path(".conductor", "pods", "frontend.yml"))

	_, err = runCLI(t, tp, "source", "mount", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestConfigInitCmd(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvIsolated)

	res, err := runCLI(t, tp, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, tp.Path(paths.ProjectConfigFile))
	assert.FileExists(t, tp.Path(paths.ProjectConfigFile))

	_, err = runCLI(t, tp, "config", "init")
	require.Error(t, err)
}

func TestSysinfoCmd(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvIsolated)

	res, err := runCLI(t, tp, "sysinfo")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "conductor version")
	assert.Contains(t, res.stdout, "docker-compose")
	assert.Equal(t, [][]string{
		{"docker", "--version"},
		{"docker-compose", "--version"},
		{"git", "--version"},
	}, res.runner.Ran())
}

func TestCompletionCmd(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvIsolated)

	res, err := runCLI(t, tp, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "conductor")

	_, err = runCLI(t, tp, "completion", "tcsh")
	require.Error(t, err)
}

func TestNoSubcommand(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvIsolated)
	_, err := runCLI(t, tp)
	require.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvIsolated)

	res, err := runCLI(t, tp, "help", "topics")
	require.NoError(t, err)
	for _, want := range []string{"pods", "overrides", "sources", "hooks", "configuration", "--target"} {
		assert.Contains(t, res.stdout, want)
	}

	res, err = runCLI(t, tp, "help", "sources")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "io.conductor.srcdir")
}
