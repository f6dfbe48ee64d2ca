// Package hooks runs user scripts at lifecycle events.
//
// Scripts for an event live in <hooks_dir>/<event>.d/. Every regular file
// there whose name ends in .hook and does not start with a dot is run, in
// path order, with the caller's variables added to its environment.
package hooks

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/arthur-debert/conductor/pkg/runner"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/rs/zerolog"
)

// Extension marks a file in an event directory as a hook script.
const Extension = ".hook"

// Manager finds and runs hook scripts.
type Manager struct {
	fs     types.FS
	dir    string
	logger zerolog.Logger
}

// New returns a manager for the hooks under dir.
func New(fsys types.FS, dir string) *Manager {
	return &Manager{
		fs:     fsys,
		dir:    dir,
		logger: logging.GetLogger("hooks"),
	}
}

// Dir returns the hooks directory.
func (m *Manager) Dir() string {
	return m.dir
}

// EventDir returns <hooks_dir>/<event>.d.
func (m *Manager) EventDir(event string) string {
	return filepath.Join(m.dir, event+".d")
}

// Scripts lists the hook scripts for event in the order they run. A
// missing event directory yields no scripts.
func (m *Manager) Scripts(event string) ([]string, error) {
	dir := m.EventDir(event)
	if _, err := m.fs.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug().
				Str("event", event).
				Str("dir", dir).
				Msg("No hooks directory")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrDirRead, "cannot read %s", dir).
			WithDetail("path", dir)
	}

	entries, err := m.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirRead, "cannot read %s", dir).
			WithDetail("path", dir)
	}

	var scripts []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", path).
				WithDetail("path", path)
		}
		name := entry.Name()
		if !info.Mode().IsRegular() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, Extension) {
			m.logger.Trace().Str("path", path).Msg("Skipping non-hook")
			continue
		}
		scripts = append(scripts, path)
	}
	sort.Strings(scripts)
	return scripts, nil
}

// Invoke runs every script for event with env added to its environment.
// The first failing script stops the rest.
func (m *Manager) Invoke(cr runner.CommandRunner, event string, env map[string]string) error {
	scripts, err := m.Scripts(event)
	if err != nil {
		return err
	}

	for _, script := range scripts {
		m.logger.Info().Str("event", event).Str("script", script).Msg("Running hook")
		cmd := cr.Build(script)
		for _, k := range sortedKeys(env) {
			cmd = cmd.Env(k, env[k])
		}
		if err := cmd.Exec(); err != nil {
			return errors.Wrapf(err, errors.ErrExternalCommand, "%s hook %s failed", event, filepath.Base(script)).
				WithDetail("script", script)
		}
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
