package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/filesystem"
	"github.com/arthur-debert/conductor/pkg/types"
)

// Environment variable names
const (
	// EnvProjectDir points at the project root, skipping the upward search
	EnvProjectDir = "CONDUCTOR_PROJECT_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Project layout. These names are part of the on-disk contract with
// existing projects and are not configurable; directories that are
// configurable (src, output, hooks) only have defaults here.
const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "conductor"

	// PodsDirName holds the base pod definitions
	PodsDirName = "pods"

	// OverridesDirName holds one directory per override, under pods/
	OverridesDirName = "overrides"

	// PodExt is the extension of every pod file
	PodExt = ".yml"

	// PodConfigSuffix marks per-pod settings files (<pod>.config.yml)
	PodConfigSuffix = ".config"

	// TasksDirName is where exports place task pods
	TasksDirName = "tasks"

	// DefaultSrcDirName is the default clone directory
	DefaultSrcDirName = "src"

	// DefaultOutputDirName is the default materialization directory
	DefaultOutputDirName = ".conductor"

	// DefaultHooksDir is the default hooks directory, relative to the root
	DefaultHooksDir = "config/hooks"

	// ProjectConfigFile is the per-project configuration file
	ProjectConfigFile = "conductor.toml"

	// UserConfigFile is the user configuration file under the XDG config dir
	UserConfigFile = "config.toml"
)

// FindProject returns the first directory, starting at startDir and moving
// up toward the filesystem root, that contains a pods/ directory.
func FindProject(fsys types.FS, startDir string) (string, error) {
	if root := os.Getenv(EnvProjectDir); root != "" {
		startDir = ExpandHome(root)
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrProjectNotFound, "cannot resolve %s", startDir)
	}

	for {
		if filesystem.IsDir(fsys, filepath.Join(dir, PodsDirName)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.Newf(errors.ErrProjectNotFound,
		"no %s directory found in %s or any parent directory", PodsDirName, startDir).
		WithDetail("start", startDir)
}

// Layout maps a project root to the paths conductor reads and writes.
type Layout struct {
	Root string
}

// NewLayout returns the layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// PodsDir returns <root>/pods.
func (l Layout) PodsDir() string {
	return filepath.Join(l.Root, PodsDirName)
}

// OverridesDir returns <root>/pods/overrides.
func (l Layout) OverridesDir() string {
	return filepath.Join(l.PodsDir(), OverridesDirName)
}

// PodPath returns the base file for pod.
func (l Layout) PodPath(pod string) string {
	return filepath.Join(l.PodsDir(), pod+PodExt)
}

// PodConfigPath returns the optional settings file for pod.
func (l Layout) PodConfigPath(pod string) string {
	return filepath.Join(l.PodsDir(), pod+PodConfigSuffix+PodExt)
}

// OverridePodPath returns pod's layer file for override ovr.
func (l Layout) OverridePodPath(ovr, pod string) string {
	return filepath.Join(l.OverridesDir(), ovr, pod+PodExt)
}

func (l Layout) ConfigPath() string {
	return filepath.Join(l.Root, ProjectConfigFile)
}

// Resolve makes p absolute: ~ expands to the home directory and relative
// paths are taken from the project root.
func (l Layout) Resolve(p string) string {
	p = ExpandHome(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.Root, p)
}

// IsPodFile reports whether a pods/ entry name is a base pod definition,
// and returns the pod name.
func IsPodFile(name string) (string, bool) {
	stem, ok := strings.CutSuffix(name, PodExt)
	if !ok || stem == "" || strings.HasPrefix(stem, ".") {
		return "", false
	}
	if strings.HasSuffix(stem, PodConfigSuffix) {
		return "", false
	}
	return stem, true
}

// UserConfigPath returns $XDG_CONFIG_HOME/conductor/config.toml.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, UserConfigFile)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// ~user is left alone
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
