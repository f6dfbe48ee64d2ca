package args_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/conductor/pkg/args"
	"github.com/arthur-debert/conductor/pkg/config"
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/paths"
	"github.com/arthur-debert/conductor/pkg/project"
	"github.com/arthur-debert/conductor/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadProject(t *testing.T, tp *testutil.TestProject) *project.Project {
	t.Helper()
	t.Setenv(paths.EnvProjectDir, "")
	cfg, err := config.Defaults()
	require.NoError(t, err)
	p, err := project.Load(context.Background(), tp.FS, tp.Root, project.Options{Config: cfg, Env: map[string]string{}})
	require.NoError(t, err)
	return p
}

type result struct {
	target string
	err    error
}

func collect(a args.ActOn, p *project.Project) []result {
	var out []result
	for ps, err := range a.PodsOrServices(p) {
		if err != nil {
			out = append(out, result{err: err})
			continue
		}
		out = append(out, result{target: ps.String()})
	}
	return out
}

func TestAllYieldsEveryPod(t *testing.T) {
	p := loadProject(t, testutil.RailsHelloProject(t, testutil.EnvMemoryOnly))

	got := collect(args.All(), p)
	assert.Equal(t, []result{{target: "db"}, {target: "frontend"}, {target: "migrate"}}, got)

	for ps, err := range args.All().PodsOrServices(p) {
		require.NoError(t, err)
		assert.False(t, ps.IsService())
	}
}

func TestNamedKeepsOrderDuplicatesAndErrors(t *testing.T) {
	p := loadProject(t, testutil.RailsHelloProject(t, testutil.EnvMemoryOnly))

	got := collect(args.Named("web", "nope", "frontend", "web", "migrate/rake"), p)
	require.Len(t, got, 5)

	assert.Equal(t, "frontend/web", got[0].target)
	require.Error(t, got[1].err)
	assert.True(t, errors.IsErrorCode(got[1].err, errors.ErrNameResolution))
	assert.Contains(t, got[1].err.Error(), "nope")
	assert.Equal(t, "frontend", got[2].target)
	assert.Equal(t, "frontend/web", got[3].target)
	assert.Equal(t, "migrate/rake", got[4].target)
}

func TestPodsOrServicesIsRestartable(t *testing.T) {
	p := loadProject(t, testutil.RailsHelloProject(t, testutil.EnvMemoryOnly))
	a := args.Named("db", "rake")

	seq := a.PodsOrServices(p)
	first := []string{}
	for ps, err := range seq {
		require.NoError(t, err)
		first = append(first, ps.String())
	}
	second := []string{}
	for ps, err := range seq {
		require.NoError(t, err)
		second = append(second, ps.String())
	}
	assert.Equal(t, []string{"db", "migrate/rake"}, first)
	assert.Equal(t, first, second)
}

func TestPodsOrServicesStopsEarly(t *testing.T) {
	p := loadProject(t, testutil.RailsHelloProject(t, testutil.EnvMemoryOnly))

	count := 0
	for range args.All().PodsOrServices(p) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestAmbiguousServiceName(t *testing.T) {
	tp := testutil.NewTestProject(t, "ambiguous", testutil.EnvMemoryOnly)
	tp.AddPod("one", "services:\n  worker:\n    image: busybox\n")
	tp.AddPod("two", "services:\n  worker:\n    image: busybox\n")
	p := loadProject(t, tp)

	got := collect(args.Named("worker", "two/worker", "one/nothing"), p)
	require.Len(t, got, 3)
	require.Error(t, got[0].err)
	assert.True(t, errors.IsErrorCode(got[0].err, errors.ErrNameResolution))
	assert.Equal(t, "two/worker", got[1].target)
	require.Error(t, got[2].err)
}

func TestFromArgs(t *testing.T) {
	assert.True(t, args.FromArgs(nil).IsAll())
	a := args.FromArgs([]string{"web", "db"})
	assert.False(t, a.IsAll())
	assert.Equal(t, []string{"web", "db"}, a.Names())
}
