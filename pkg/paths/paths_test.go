package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/filesystem"
	"github.com/arthur-debert/conductor/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProject(t *testing.T) {
	t.Setenv(paths.EnvProjectDir, "")

	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/work/hello/pods/overrides/development", 0755))
	require.NoError(t, fsys.MkdirAll("/work/hello/src/app/lib", 0755))
	require.NoError(t, fsys.MkdirAll("/work/other", 0755))

	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"at root", "/work/hello", "/work/hello"},
		{"from pods dir", "/work/hello/pods", "/work/hello"},
		{"from nested override", "/work/hello/pods/overrides/development", "/work/hello"},
		{"from deep source dir", "/work/hello/src/app/lib", "/work/hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paths.FindProject(fsys, tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindProjectNotFound(t *testing.T) {
	t.Setenv(paths.EnvProjectDir, "")

	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/work/other", 0755))

	_, err := paths.FindProject(fsys, "/work/other")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProjectNotFound))
}

func TestFindProjectFromEnv(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/work/hello/pods", 0755))
	t.Setenv(paths.EnvProjectDir, "/work/hello")

	got, err := paths.FindProject(fsys, "/somewhere/else")
	require.NoError(t, err)
	assert.Equal(t, "/work/hello", got)
}

func TestLayout(t *testing.T) {
	l := paths.NewLayout("/work/hello")

	assert.Equal(t, "/work/hello/pods", l.PodsDir())
	assert.Equal(t, "/work/hello/pods/overrides", l.OverridesDir())
	assert.Equal(t, "/work/hello/pods/frontend.yml", l.PodPath("frontend"))
	assert.Equal(t, "/work/hello/pods/migrate.config.yml", l.PodConfigPath("migrate"))
	assert.Equal(t, "/work/hello/pods/overrides/test/db.yml", l.OverridePodPath("test", "db"))
	assert.Equal(t, "/work/hello/conductor.toml", l.ConfigPath())
}

func TestLayoutResolve(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	l := paths.NewLayout("/work/hello")
	assert.Equal(t, "/work/hello/src", l.Resolve("src"))
	assert.Equal(t, "/work/hello/.conductor", l.Resolve(".conductor"))
	assert.Equal(t, "/var/out", l.Resolve("/var/out"))
	assert.Equal(t, filepath.Join(home, "clones"), l.Resolve("~/clones"))
	assert.Equal(t, "", l.Resolve(""))
}

func TestIsPodFile(t *testing.T) {
	tests := []struct {
		entry string
		pod   string
		ok    bool
	}{
		{"frontend.yml", "frontend", true},
		{"db.yml", "db", true},
		{"migrate.config.yml", "", false},
		{"README.md", "", false},
		{".hidden.yml", "", false},
		{".yml", "", false},
		{"frontend.yaml", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			pod, ok := paths.IsPodFile(tt.entry)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.pod, pod)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", paths.ExpandHome(""))
	assert.Equal(t, home, paths.ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "x/y"), paths.ExpandHome("~/x/y"))
	assert.Equal(t, "~bob/x", paths.ExpandHome("~bob/x"))
	assert.Equal(t, "/abs", paths.ExpandHome("/abs"))
}

func TestUserConfigPath(t *testing.T) {
	p := paths.UserConfigPath()
	assert.Equal(t, "config.toml", filepath.Base(p))
	assert.Equal(t, "conductor", filepath.Base(filepath.Dir(p)))
}
