// Package plugins holds the fixed, ordered set of transforms applied to
// every merged pod before it is written.
//
// Transforms run in this order, and later ones see earlier mutations:
//
//	sources       point builds at mounted local clones (output only)
//	libs          mount cloned libraries into services (output only)
//	env_file      inline env files into environment (export only)
//	default_tags  tag untagged images from the default tags policy
//
// The set is closed. Each transform decides from the Operation and the
// Context whether it applies.
package plugins

import (
	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/defaulttags"
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/arthur-debert/conductor/pkg/repos"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/rs/zerolog"
)

// Project is the view of a project that transforms need.
type Project interface {
	Name() string
	FS() types.FS
	PodsDir() string
	Repos() *repos.Repos
	DefaultTags() *defaulttags.DefaultTags
}

// Context is the read-only bundle passed to each transform call.
type Context struct {
	Project  Project
	Override *types.Override
	Pod      *types.Pod
}

// Plugin is one transform.
type Plugin interface {
	Name() string
	Enabled(op types.Operation, ctx *Context) bool
	Transform(op types.Operation, ctx *Context, doc *compose.Document) error
}

// Manager runs the transforms in order.
type Manager struct {
	plugins []Plugin
	logger  zerolog.Logger
}

// New wires the transform list for a project.
func New(project Project) (*Manager, error) {
	if project == nil {
		return nil, errors.New(errors.ErrInvalidInput, "plugin manager needs a project")
	}
	return &Manager{
		plugins: []Plugin{
			&sourcesPlugin{},
			&libsPlugin{},
			&envFilePlugin{},
			&defaultTagsPlugin{},
		},
		logger: logging.GetLogger("plugins"),
	}, nil
}

// Names returns the transform names in execution order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.plugins))
	for _, p := range m.plugins {
		names = append(names, p.Name())
	}
	return names
}

// Transform applies every enabled transform to doc. The first failure
// aborts the rest.
func (m *Manager) Transform(op types.Operation, ctx *Context, doc *compose.Document) error {
	for _, p := range m.plugins {
		if !p.Enabled(op, ctx) {
			m.logger.Trace().
				Str("plugin", p.Name()).
				Str("pod", ctx.Pod.Name).
				Str("operation", op.String()).
				Msg("Plugin disabled")
			continue
		}

		m.logger.Debug().
			Str("plugin", p.Name()).
			Str("pod", ctx.Pod.Name).
			Str("operation", op.String()).
			Msg("Applying plugin")

		if err := p.Transform(op, ctx, doc); err != nil {
			return errors.Wrapf(err, errors.ErrTransform, "plugin %s failed on pod %s", p.Name(), ctx.Pod.Name).
				WithDetail("plugin", p.Name()).
				WithDetail("pod", ctx.Pod.Name)
		}
	}
	return nil
}
