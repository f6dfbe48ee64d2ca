package testutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/conductor/pkg/filesystem"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// memoryBase is the parent of every in-memory project root.
const memoryBase = "/work"

// TestProject is a project tree under construction.
type TestProject struct {
	Root string
	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestProject creates an empty project directory named name.
func NewTestProject(t *testing.T, name string, envType EnvType) *TestProject {
	t.Helper()

	p := &TestProject{Type: envType, t: t}
	switch envType {
	case EnvIsolated:
		p.FS = filesystem.NewOS()
		p.Root = filepath.Join(t.TempDir(), name)
	default:
		p.FS = filesystem.NewMemory()
		p.Root = filepath.Join(memoryBase, name)
	}
	require.NoError(t, p.FS.MkdirAll(filepath.Join(p.Root, "pods"), 0755))
	return p
}

// Path joins rel onto the project root.
func (p *TestProject) Path(rel ...string) string {
	return filepath.Join(append([]string{p.Root}, rel...)...)
}

// AddFile writes a file relative to the project root and returns its path.
func (p *TestProject) AddFile(rel, content string) string {
	p.t.Helper()
	return p.write(rel, content, 0644)
}

// AddExecutable writes an executable file relative to the project root.
func (p *TestProject) AddExecutable(rel, content string) string {
	p.t.Helper()
	return p.write(rel, content, 0755)
}

// AddDir creates a directory relative to the project root.
func (p *TestProject) AddDir(rel string) string {
	p.t.Helper()
	path := p.Path(rel)
	require.NoError(p.t, p.FS.MkdirAll(path, 0755))
	return path
}

// AddPod writes pods/<name>.yml.
func (p *TestProject) AddPod(name, content string) string {
	p.t.Helper()
	return p.AddFile(filepath.Join("pods", name+".yml"), content)
}

// AddPodConfig writes pods/<name>.config.yml.
func (p *TestProject) AddPodConfig(name, content string) string {
	p.t.Helper()
	return p.AddFile(filepath.Join("pods", name+".config.yml"), content)
}

// AddOverride creates pods/overrides/<ovr>/ and, when content is not empty,
// the pod layer inside it.
func (p *TestProject) AddOverride(ovr, pod, content string) {
	p.t.Helper()
	p.AddDir(filepath.Join("pods", "overrides", ovr))
	if pod != "" {
		p.AddFile(filepath.Join("pods", "overrides", ovr, pod+".yml"), content)
	}
}

// AddHook writes config/hooks/<event>.d/<name>.
func (p *TestProject) AddHook(event, name, content string) string {
	p.t.Helper()
	return p.AddExecutable(filepath.Join("config", "hooks", event+".d", name), content)
}

func (p *TestProject) write(rel, content string, perm fs.FileMode) string {
	path := p.Path(rel)
	require.NoError(p.t, p.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(p.t, p.FS.WriteFile(path, []byte(content), perm))
	return path
}
