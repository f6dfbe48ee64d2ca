package repos_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/repos"
	"github.com/arthur-debert/conductor/pkg/runner"
	"github.com/arthur-debert/conductor/pkg/testutil"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadRepos(t *testing.T, p *testutil.TestProject, pods ...*types.Pod) *repos.Repos {
	t.Helper()
	loader := compose.NewLoader(p.FS, map[string]string{})
	rs, err := repos.New(context.Background(), p.FS, loader, p.Path("src"), pods, repos.DefaultLabels())
	require.NoError(t, err)
	return rs
}

func railsPods(p *testutil.TestProject) []*types.Pod {
	return []*types.Pod{
		{Name: "db", BasePath: p.Path("pods", "db.yml"), OverridePaths: map[string]string{
			"production": p.Path("pods", "overrides", "production", "db.yml"),
		}},
		{Name: "frontend", BasePath: p.Path("pods", "frontend.yml"), OverridePaths: map[string]string{
			"development": p.Path("pods", "overrides", "development", "frontend.yml"),
		}},
	}
}

func TestNewDiscoversSourcesAndLibs(t *testing.T) {
	p := testutil.RailsHelloProject(t, testutil.EnvMemoryOnly)
	rs := loadRepos(t, p, railsPods(p)...)

	require.Equal(t, 2, rs.Len())

	src := rs.FindByAlias("rails_hello")
	require.NotNil(t, src)
	assert.Equal(t, testutil.RailsHelloRepoURL, src.Context)
	assert.Equal(t, "/usr/src/app", src.MountPath)
	assert.False(t, src.IsLib())
	assert.Equal(t, p.Path("src", "rails_hello"), src.Path())

	lib := rs.FindByLibKey("coffee_rails")
	require.NotNil(t, lib)
	assert.Equal(t, "coffee-rails", lib.Alias)
	assert.Equal(t, "/usr/src/app/vendor/coffee-rails", lib.MountPath)
	assert.Same(t, lib, rs.FindByAlias("coffee-rails"))
	assert.Same(t, src, rs.FindByContext(testutil.RailsHelloRepoURL))

	assert.Nil(t, rs.FindByAlias("missing"))
	assert.Nil(t, rs.FindByLibKey("missing"))
}

func TestNewDefaultsMountPathAndScansOverrides(t *testing.T) {
	p := testutil.NewTestProject(t, "multi", testutil.EnvMemoryOnly)
	p.AddPod("app", "services:\n  app:\n    build:\n      context: https://example.com/org/app.git\n  local:\n    build:\n      context: ../src/local\n")
	p.AddOverride("staging", "app", "services:\n  app:\n    build:\n      context: https://example.com/org/app.git#staging\n")

	rs := loadRepos(t, p, &types.Pod{
		Name:          "app",
		BasePath:      p.Path("pods", "app.yml"),
		OverridePaths: map[string]string{"staging": p.Path("pods", "overrides", "staging", "app.yml")},
	})

	var aliases []string
	for _, r := range rs.All() {
		aliases = append(aliases, r.Alias)
	}
	assert.Equal(t, []string{"app", "app_staging"}, aliases, "local contexts declare no repo")
	assert.Equal(t, repos.DefaultMountPath, rs.FindByAlias("app").MountPath)
	assert.Equal(t, "staging", rs.FindByAlias("app_staging").Ref())
	assert.Equal(t, "https://example.com/org/app.git", rs.FindByAlias("app_staging").URL())
}

func TestAliasCollisionKeepsFirst(t *testing.T) {
	p := testutil.NewTestProject(t, "collide", testutil.EnvMemoryOnly)
	p.AddPod("a", "services:\n  a:\n    build:\n      context: https://one.example.com/x/tool.git\n")
	p.AddPod("b", "services:\n  b:\n    build:\n      context: https://two.example.com/y/tool.git\n")

	rs := loadRepos(t, p,
		&types.Pod{Name: "a", BasePath: p.Path("pods", "a.yml")},
		&types.Pod{Name: "b", BasePath: p.Path("pods", "b.yml")},
	)

	require.Equal(t, 1, rs.Len())
	assert.Equal(t, "https://one.example.com/x/tool.git", rs.FindByAlias("tool").Context)
	assert.Nil(t, rs.FindByContext("https://two.example.com/y/tool.git"))
}

func TestBadAliasFailsDiscovery(t *testing.T) {
	p := testutil.NewTestProject(t, "bad", testutil.EnvMemoryOnly)
	p.AddPod("a", "services:\n  a:\n    image: x\n    build:\n      context: https://example.com/\n")

	loader := compose.NewLoader(p.FS, map[string]string{})
	_, err := repos.New(context.Background(), p.FS, loader, p.Path("src"),
		[]*types.Pod{{Name: "a", BasePath: p.Path("pods", "a.yml")}}, repos.DefaultLabels())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAliasDerivation))
}

func TestMountState(t *testing.T) {
	p := testutil.HelloProject(t, testutil.EnvMemoryOnly)
	rs := loadRepos(t, p, &types.Pod{Name: "frontend", BasePath: p.Path("pods", "frontend.yml")})

	repo := rs.FindByAlias("dockercloud-hello-world")
	require.NotNil(t, repo)

	mounted, err := repo.IsMounted()
	require.NoError(t, err)
	assert.False(t, mounted, "not cloned yet")

	require.NoError(t, repo.FakeCloneSource())
	mounted, err = repo.IsMounted()
	require.NoError(t, err)
	assert.True(t, mounted)

	require.NoError(t, repo.SetMounted(false))
	mounted, err = repo.IsMounted()
	require.NoError(t, err)
	assert.False(t, mounted)
	assert.True(t, repo.IsCloned())

	require.NoError(t, repo.SetMounted(true))
	mounted, err = repo.IsMounted()
	require.NoError(t, err)
	assert.True(t, mounted)

	require.NoError(t, repo.SetMounted(true), "mounting twice is fine")
}

func TestClone(t *testing.T) {
	p := testutil.NewTestProject(t, "clone", testutil.EnvMemoryOnly)
	p.AddPod("a", "services:\n  a:\n    build:\n      context: https://example.com/org/api.git#v2\n")
	rs := loadRepos(t, p, &types.Pod{Name: "a", BasePath: p.Path("pods", "a.yml")})
	repo := rs.FindByAlias("api_v2")
	require.NotNil(t, repo)

	r := runner.NewTestRunner()
	require.NoError(t, repo.Clone(r))
	assert.Equal(t, [][]string{
		{"git", "clone", "-b", "v2", "https://example.com/org/api.git", filepath.Join(p.Path("src"), "api_v2")},
	}, r.Ran())

	require.NoError(t, repo.FakeCloneSource())
	err := repo.Clone(r)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDestinationExists))
}

func TestCloneFailure(t *testing.T) {
	p := testutil.HelloProject(t, testutil.EnvMemoryOnly)
	rs := loadRepos(t, p, &types.Pod{Name: "frontend", BasePath: p.Path("pods", "frontend.yml")})

	r := runner.NewTestRunner()
	r.Handler = func(runner.Invocation) error { return fmt.Errorf("network down") }

	err := rs.FindByAlias("dockercloud-hello-world").Clone(r)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExternalCommand))
	assert.Equal(t, [][]string{{"git", "clone", testutil.HelloRepoURL, p.Path("src", "dockercloud-hello-world")}}, r.Ran())
}
