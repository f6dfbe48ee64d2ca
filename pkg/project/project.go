// Package project loads a conductor project and materializes its pods.
//
// Load reads the pods directory once. After that, Output regenerates the
// flattened compose files under the output directory and Export writes a
// self-contained copy for deployment. Both run every pod through the same
// merge, standalone and transform steps, and differ only in the operation
// the transforms see.
package project

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/config"
	"github.com/arthur-debert/conductor/pkg/defaulttags"
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/executor"
	"github.com/arthur-debert/conductor/pkg/filesystem"
	"github.com/arthur-debert/conductor/pkg/hooks"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/arthur-debert/conductor/pkg/paths"
	"github.com/arthur-debert/conductor/pkg/plugins"
	"github.com/arthur-debert/conductor/pkg/repos"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Options adjusts how a project is loaded.
type Options struct {
	// Config replaces configuration loading entirely when set.
	Config *config.Config

	// ConfigOverrides are flag values applied on top of every other
	// configuration layer, keyed by dotted path.
	ConfigOverrides map[string]interface{}

	// Env is used for ${VAR} interpolation in pod files. Nil means the
	// process environment.
	Env map[string]string

	// Executor writes materialized pods. Nil means writing straight to
	// the project's filesystem.
	Executor executor.Executor
}

// Project is a loaded project. Only the name and the default tags may
// change after Load, and only before the first materialization.
type Project struct {
	name   string
	fs     types.FS
	layout paths.Layout
	cfg    *config.Config

	srcDir    string
	outputDir string

	pods      []*types.Pod
	overrides []*types.Override

	loader      *compose.Loader
	repos       *repos.Repos
	defaultTags *defaulttags.DefaultTags
	plugins     *plugins.Manager
	hooks       *hooks.Manager
	exec        executor.Executor

	logger zerolog.Logger
}

// Load finds the project containing startDir and reads its pods,
// overrides and repos.
func Load(ctx context.Context, fsys types.FS, startDir string, opts Options) (*Project, error) {
	logger := logging.GetLogger("project")
	done := logging.LogOperationStart(logger, "load project")
	defer done()

	root, err := paths.FindProject(fsys, startDir)
	if err != nil {
		return nil, err
	}

	cfg := opts.Config
	if cfg == nil {
		cfg, err = config.NewLoader(fsys).Load(root, opts.ConfigOverrides)
		if err != nil {
			return nil, err
		}
	}

	layout := paths.NewLayout(root)
	p := &Project{
		name:      cfg.Project.Name,
		fs:        fsys,
		layout:    layout,
		cfg:       cfg,
		srcDir:    layout.Resolve(cfg.Project.SrcDir),
		outputDir: layout.Resolve(cfg.Project.OutputDir),
		loader:    compose.NewLoader(fsys, opts.Env),
		hooks:     hooks.New(fsys, layout.Resolve(cfg.Project.HooksDir)),
		exec:      opts.Executor,
		logger:    logger,
	}
	if p.exec == nil {
		p.exec = executor.NewDirect(fsys)
	}
	if p.name == "" {
		p.name = filepath.Base(root)
	}

	if p.overrides, err = p.findOverrides(); err != nil {
		return nil, err
	}
	if p.pods, err = p.findPods(ctx); err != nil {
		return nil, err
	}
	if p.repos, err = repos.New(ctx, fsys, p.loader, p.srcDir, p.pods, cfg.Labels()); err != nil {
		return nil, err
	}
	if cfg.Export.DefaultTags != "" {
		if err := p.LoadDefaultTags(layout.Resolve(cfg.Export.DefaultTags)); err != nil {
			return nil, err
		}
	}
	if p.plugins, err = plugins.New(p); err != nil {
		return nil, err
	}

	logger.Info().
		Str("root", root).
		Int("pods", len(p.pods)).
		Int("overrides", len(p.overrides)).
		Int("repos", p.repos.Len()).
		Msg("Project loaded")
	return p, nil
}

func (p *Project) findOverrides() ([]*types.Override, error) {
	dir := p.layout.OverridesDir()
	if !filesystem.IsDir(p.fs, dir) {
		return nil, nil
	}

	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirRead, "cannot read %s", dir).
			WithDetail("path", dir)
	}

	var overrides []*types.Override
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		overrides = append(overrides, &types.Override{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	return overrides, nil
}

func (p *Project) findPods(ctx context.Context) ([]*types.Pod, error) {
	dir := p.layout.PodsDir()
	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirRead, "cannot read %s", dir).
			WithDetail("path", dir)
	}

	var pods []*types.Pod
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := paths.IsPodFile(entry.Name())
		if !ok {
			continue
		}
		pod, err := p.loadPod(ctx, name)
		if err != nil {
			return nil, err
		}
		pods = append(pods, pod)
	}
	return pods, nil
}

func (p *Project) loadPod(ctx context.Context, name string) (*types.Pod, error) {
	pod := &types.Pod{
		Name:          name,
		Type:          types.PodTypeService,
		BasePath:      p.layout.PodPath(name),
		OverridePaths: map[string]string{},
	}

	configPath := p.layout.PodConfigPath(name)
	data, err := p.fs.ReadFile(configPath)
	switch {
	case err == nil:
		var podConfig types.PodConfig
		if err := yaml.Unmarshal(data, &podConfig); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid pod config %s", configPath).
				WithDetail("pod", name).
				WithDetail("path", configPath)
		}
		pod.Type = podConfig.PodType
	case !os.IsNotExist(err):
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", configPath).
			WithDetail("path", configPath)
	}

	for _, ovr := range p.overrides {
		layer := p.layout.OverridePodPath(ovr.Name, name)
		exists, err := filesystem.Exists(p.fs, layer)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", layer).
				WithDetail("path", layer)
		}
		if exists {
			pod.OverridePaths[ovr.Name] = layer
		}
	}

	doc, err := p.loader.Scan(ctx, pod.BasePath)
	if err != nil {
		return nil, err
	}
	pod.Services = compose.ServiceNames(doc)

	for ovr, layer := range pod.OverridePaths {
		doc, err := p.loader.Scan(ctx, layer)
		if err != nil {
			return nil, err
		}
		var extra []string
		for _, svc := range compose.ServiceNames(doc) {
			if !slices.Contains(pod.Services, svc) {
				extra = append(extra, svc)
			}
		}
		if len(extra) > 0 {
			if pod.LayerServices == nil {
				pod.LayerServices = map[string][]string{}
			}
			pod.LayerServices[ovr] = extra
		}
	}

	p.logger.Debug().
		Str("pod", name).
		Str("type", pod.Type.String()).
		Strs("services", pod.Services).
		Msg("Found pod")
	return pod, nil
}

// Name is the project name passed to docker-compose.
func (p *Project) Name() string {
	return p.name
}

// SetName changes the project name.
func (p *Project) SetName(name string) {
	p.name = name
}

// FS implements plugins.Project.
func (p *Project) FS() types.FS {
	return p.fs
}

func (p *Project) Config() *config.Config {
	return p.cfg
}

// RootDir is the directory containing pods/.
func (p *Project) RootDir() string {
	return p.layout.Root
}

// SrcDir is where source repos are cloned.
func (p *Project) SrcDir() string {
	return p.srcDir
}

// OutputDir is where Output writes.
func (p *Project) OutputDir() string {
	return p.outputDir
}

// PodsDir is the directory relative paths in pod files are taken from.
func (p *Project) PodsDir() string {
	return p.layout.PodsDir()
}

// OutputPodsDir is <output_dir>/pods.
func (p *Project) OutputPodsDir() string {
	return filepath.Join(p.outputDir, paths.PodsDirName)
}

// OutputPodPath is the file Output writes for pod.
func (p *Project) OutputPodPath(pod string) string {
	return filepath.Join(p.OutputPodsDir(), pod+paths.PodExt)
}

// Pods returns every pod, sorted by name.
func (p *Project) Pods() []*types.Pod {
	return p.pods
}

// Overrides returns every override, sorted by name.
func (p *Project) Overrides() []*types.Override {
	return p.overrides
}

// Repos implements plugins.Project.
func (p *Project) Repos() *repos.Repos {
	return p.repos
}

// DefaultTags returns the image tag policy, or nil when none is set.
func (p *Project) DefaultTags() *defaulttags.DefaultTags {
	return p.defaultTags
}

// SetDefaultTags replaces the image tag policy.
func (p *Project) SetDefaultTags(tags *defaulttags.DefaultTags) {
	p.defaultTags = tags
}

// LoadDefaultTags reads the image tag policy from path.
func (p *Project) LoadDefaultTags(path string) error {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot read default tags %s", path).
			WithDetail("path", path)
	}
	tags, err := defaulttags.Read(bytes.NewReader(data))
	if err != nil {
		return errors.Wrapf(err, errors.GetErrorCode(err), "in %s", path).
			WithDetail("path", path)
	}
	p.defaultTags = tags
	return nil
}

// Plugins returns the transform pipeline.
func (p *Project) Plugins() *plugins.Manager {
	return p.plugins
}

// Hooks returns the hook manager.
func (p *Project) Hooks() *hooks.Manager {
	return p.hooks
}

// Pod looks up a pod by name.
func (p *Project) Pod(name string) *types.Pod {
	for _, pod := range p.pods {
		if pod.Name == name {
			return pod
		}
	}
	return nil
}

// Override looks up an override by name.
func (p *Project) Override(name string) *types.Override {
	for _, ovr := range p.overrides {
		if ovr.Name == name {
			return ovr
		}
	}
	return nil
}

// OverrideOrErr is Override with a NOT_FOUND error naming the choices.
func (p *Project) OverrideOrErr(name string) (*types.Override, error) {
	if ovr := p.Override(name); ovr != nil {
		return ovr, nil
	}
	names := make([]string, 0, len(p.overrides))
	for _, ovr := range p.overrides {
		names = append(names, ovr.Name)
	}
	return nil, errors.Newf(errors.ErrNotFound, "no override named %q", name).
		WithDetail("override", name).
		WithDetail("available", names)
}
