package hooks_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/hooks"
	"github.com/arthur-debert/conductor/pkg/runner"
	"github.com/arthur-debert/conductor/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHooks(t *testing.T) (*testutil.TestProject, *hooks.Manager) {
	t.Helper()
	tp := testutil.NewTestProject(t, "hooks", testutil.EnvMemoryOnly)
	return tp, hooks.New(tp.FS, tp.Path("config", "hooks"))
}

func TestInvokeWithoutHooksDir(t *testing.T) {
	_, m := newHooks(t)
	r := runner.NewTestRunner()

	require.NoError(t, m.Invoke(r, "up", nil))
	assert.Empty(t, r.Invocations)
}

func TestInvokeRunsMatchingScriptsInOrder(t *testing.T) {
	tp, m := newHooks(t)
	tp.AddHook("up", "b.hook", "#!/bin/sh\n")
	tp.AddHook("up", "a.hook", "#!/bin/sh\n")
	tp.AddHook("up", ".hidden.hook", "#!/bin/sh\n")
	tp.AddHook("up", "c.txt", "not a hook\n")
	tp.AddDir("config/hooks/up.d/dir.hook")
	tp.AddHook("down", "z.hook", "#!/bin/sh\n")

	r := runner.NewTestRunner()
	require.NoError(t, m.Invoke(r, "up", map[string]string{"POD": "frontend", "OVERRIDE": "development"}))

	dir := m.EventDir("up")
	assert.Equal(t, [][]string{
		{filepath.Join(dir, "a.hook")},
		{filepath.Join(dir, "b.hook")},
	}, r.Ran())
	for _, inv := range r.Invocations {
		assert.Equal(t, map[string]string{"POD": "frontend", "OVERRIDE": "development"}, inv.Env)
	}
}

func TestInvokeStopsAtFirstFailure(t *testing.T) {
	tp, m := newHooks(t)
	tp.AddHook("up", "a.hook", "#!/bin/sh\nexit 1\n")
	tp.AddHook("up", "b.hook", "#!/bin/sh\n")

	r := runner.NewTestRunner()
	r.Handler = func(inv runner.Invocation) error {
		return fmt.Errorf("exit status 1")
	}

	err := m.Invoke(r, "up", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExternalCommand))
	assert.Equal(t, filepath.Join(m.EventDir("up"), "a.hook"), errors.GetErrorDetails(err)["script"])
	assert.Len(t, r.Invocations, 1)
}

func TestScriptsForHelloProject(t *testing.T) {
	tp := testutil.HelloProject(t, testutil.EnvMemoryOnly)
	m := hooks.New(tp.FS, tp.Path("config", "hooks"))

	scripts, err := m.Scripts("up")
	require.NoError(t, err)
	assert.Equal(t, []string{tp.Path("config", "hooks", "up.d", "hello.hook")}, scripts)

	scripts, err = m.Scripts("down")
	require.NoError(t, err)
	assert.Empty(t, scripts)
}
