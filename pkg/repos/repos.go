// Package repos catalogs the external git sources a project's services
// build from or mount as libraries.
//
// A repo is declared by a pod file in one of two ways: a service whose
// build context is a remote git reference, or a service label of the form
// io.conductor.lib.<key>: <git url>. Each repo has a deterministic alias
// (see HumanAlias) which names both its command-line handle and its clone
// directory under the project's source directory.
package repos

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/filesystem"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/arthur-debert/conductor/pkg/runner"
	"github.com/arthur-debert/conductor/pkg/types"
	composetypes "github.com/compose-spec/compose-go/v2/types"
	"github.com/rs/zerolog"
)

const (
	// DefaultSrcdirLabel names the label holding a service's source mount path.
	DefaultSrcdirLabel = "io.conductor.srcdir"

	// DefaultLibLabelPrefix prefixes labels declaring library repos.
	DefaultLibLabelPrefix = "io.conductor.lib."

	// DefaultMountPath is where sources are mounted when no label says otherwise.
	DefaultMountPath = "/app"

	// unmountedDir holds one marker file per unmounted repo.
	unmountedDir = ".unmounted"
)

// Labels configures which service labels declare repos.
type Labels struct {
	Srcdir    string
	LibPrefix string
}

// DefaultLabels returns the stock label names.
func DefaultLabels() Labels {
	return Labels{Srcdir: DefaultSrcdirLabel, LibPrefix: DefaultLibLabelPrefix}
}

// Repo is one external source.
type Repo struct {
	// Alias is the repo's handle and clone directory name.
	Alias string

	// LibKey is set for library repos declared through a lib label.
	LibKey string

	// Context is the git reference, including any #ref fragment.
	Context string

	// MountPath is the absolute path inside the container.
	MountPath string

	fs     types.FS
	srcDir string
}

// IsLib reports whether the repo was declared as a library.
func (r *Repo) IsLib() bool {
	return r.LibKey != ""
}

// URL returns the git URL without its ref.
func (r *Repo) URL() string {
	u, _ := SplitRef(r.Context)
	return u
}

// Ref returns the branch or tag named by the context fragment, if any.
func (r *Repo) Ref() string {
	_, ref := SplitRef(r.Context)
	return ref
}

// Path returns the local clone location.
func (r *Repo) Path() string {
	return filepath.Join(r.srcDir, r.Alias)
}

func (r *Repo) markerPath() string {
	return filepath.Join(r.srcDir, unmountedDir, r.Alias)
}

// IsCloned reports whether the clone directory exists.
func (r *Repo) IsCloned() bool {
	return filesystem.IsDir(r.fs, r.Path())
}

// IsMounted is derived from disk on every call: the clone must exist and no
// unmount marker may be present.
func (r *Repo) IsMounted() (bool, error) {
	if !r.IsCloned() {
		return false, nil
	}
	marked, err := filesystem.Exists(r.fs, r.markerPath())
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileRead, "cannot check mount state of %s", r.Alias).
			WithDetail("path", r.markerPath())
	}
	return !marked, nil
}

// SetMounted records whether the clone should be mounted into containers.
func (r *Repo) SetMounted(mounted bool) error {
	marker := r.markerPath()
	if mounted {
		if err := r.fs.Remove(marker); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot mount %s", r.Alias).
				WithDetail("path", marker)
		}
		return nil
	}

	if err := r.fs.MkdirAll(filepath.Dir(marker), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot unmount %s", r.Alias).
			WithDetail("path", marker)
	}
	if err := r.fs.WriteFile(marker, []byte(r.Context+"\n"), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot unmount %s", r.Alias).
			WithDetail("path", marker)
	}
	return nil
}

// Clone runs git clone into Path, checking out the context's ref if it
// names one.
func (r *Repo) Clone(cr runner.CommandRunner) error {
	dest := r.Path()
	if r.IsCloned() {
		return errors.Newf(errors.ErrDestinationExists, "%s is already cloned at %s", r.Alias, dest).
			WithDetail("path", dest)
	}
	if err := r.fs.MkdirAll(r.srcDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", r.srcDir)
	}

	cmd := cr.Build("git").Arg("clone")
	if ref := r.Ref(); ref != "" {
		cmd.Args("-b", ref)
	}
	cmd.Args(r.URL(), dest)
	if err := cmd.Exec(); err != nil {
		return errors.Wrapf(err, errors.ErrExternalCommand, "cannot clone %s", r.Alias).
			WithDetail("url", r.URL())
	}
	return nil
}

// FakeCloneSource creates an empty clone directory, which is enough for
// the repo to count as mounted.
func (r *Repo) FakeCloneSource() error {
	if err := r.fs.MkdirAll(r.Path(), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", r.Path())
	}
	return nil
}

// Repos indexes a project's repos.
type Repos struct {
	labels    Labels
	repos     []*Repo
	byAlias   map[string]*Repo
	byLibKey  map[string]*Repo
	byContext map[string]*Repo
	logger    zerolog.Logger
}

// New scans every pod's base file and override layers, in pod order and
// then override order, and collects the repos they declare.
func New(ctx context.Context, fsys types.FS, loader *compose.Loader, srcDir string, pods []*types.Pod, labels Labels) (*Repos, error) {
	rs := &Repos{
		labels:    labels,
		byAlias:   map[string]*Repo{},
		byLibKey:  map[string]*Repo{},
		byContext: map[string]*Repo{},
		logger:    logging.GetLogger("repos"),
	}

	for _, pod := range pods {
		for _, file := range podFiles(pod) {
			doc, err := loader.Scan(ctx, file)
			if err != nil {
				return nil, err
			}
			for _, name := range compose.ServiceNames(doc) {
				if err := rs.scanService(fsys, srcDir, doc.Services[name]); err != nil {
					return nil, errors.Wrapf(err, errors.ErrAliasDerivation, "in service %s of %s", name, file).
						WithDetail("pod", pod.Name)
				}
			}
		}
	}

	rs.logger.Debug().Int("count", len(rs.repos)).Msg("Discovered repos")
	return rs, nil
}

func podFiles(pod *types.Pod) []string {
	files := []string{pod.BasePath}
	overrides := make([]string, 0, len(pod.OverridePaths))
	for name := range pod.OverridePaths {
		overrides = append(overrides, name)
	}
	sort.Strings(overrides)
	for _, name := range overrides {
		files = append(files, pod.OverridePaths[name])
	}
	return files
}

func (rs *Repos) scanService(fsys types.FS, srcDir string, svc composetypes.ServiceConfig) error {
	mountPath := rs.SourceMountPath(svc.Labels)

	if svc.Build != nil && IsGitContext(svc.Build.Context) {
		alias, err := HumanAlias(svc.Build.Context)
		if err != nil {
			return err
		}
		rs.add(&Repo{
			Alias:     alias,
			Context:   svc.Build.Context,
			MountPath: mountPath,
			fs:        fsys,
			srcDir:    srcDir,
		})
	}

	for _, libKey := range rs.LibKeys(svc.Labels) {
		label := rs.labels.LibPrefix + libKey
		gitURL := svc.Labels[label]
		if !IsGitContext(gitURL) {
			rs.logger.Warn().Str("label", label).Str("value", gitURL).Msg("Ignoring malformed library label")
			continue
		}
		alias, err := HumanAlias(gitURL)
		if err != nil {
			return err
		}
		rs.add(&Repo{
			Alias:     alias,
			LibKey:    libKey,
			Context:   gitURL,
			MountPath: LibMountPath(mountPath, alias),
			fs:        fsys,
			srcDir:    srcDir,
		})
	}
	return nil
}

// add keeps the first declaration of an alias. A second, different source
// with the same alias is reported and ignored.
func (rs *Repos) add(repo *Repo) {
	if existing, ok := rs.byAlias[repo.Alias]; ok {
		if existing.Context != repo.Context {
			rs.logger.Warn().
				Str("alias", repo.Alias).
				Str("kept", existing.Context).
				Str("ignored", repo.Context).
				Msg("Two sources share an alias; keeping the first")
		}
		if repo.LibKey != "" && existing.LibKey == "" && existing.Context == repo.Context {
			existing.LibKey = repo.LibKey
			rs.byLibKey[repo.LibKey] = existing
		}
		return
	}

	rs.repos = append(rs.repos, repo)
	rs.byAlias[repo.Alias] = repo
	rs.byContext[repo.Context] = repo
	if repo.LibKey != "" {
		if _, taken := rs.byLibKey[repo.LibKey]; !taken {
			rs.byLibKey[repo.LibKey] = repo
		}
	}
}

// Labels returns the label names repos were discovered with.
func (rs *Repos) Labels() Labels {
	return rs.labels
}

// SourceMountPath returns where a service mounts its source, taken from
// the srcdir label or DefaultMountPath.
func (rs *Repos) SourceMountPath(serviceLabels map[string]string) string {
	if dir := serviceLabels[rs.labels.Srcdir]; dir != "" {
		return dir
	}
	return DefaultMountPath
}

// LibKeys returns the library keys declared by a service's labels, sorted.
func (rs *Repos) LibKeys(serviceLabels map[string]string) []string {
	var keys []string
	for label := range serviceLabels {
		if key, ok := strings.CutPrefix(label, rs.labels.LibPrefix); ok && key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// LibMountPath places a library under the service's vendor directory.
func LibMountPath(sourceMount, alias string) string {
	return path.Join(sourceMount, "vendor", alias)
}

// All returns every repo in declaration order.
func (rs *Repos) All() []*Repo {
	return rs.repos
}

// Len returns the number of repos.
func (rs *Repos) Len() int {
	return len(rs.repos)
}

// FindByAlias returns the repo with the given alias, or nil.
func (rs *Repos) FindByAlias(alias string) *Repo {
	return rs.byAlias[alias]
}

// FindByLibKey returns the library repo with the given key, or nil.
func (rs *Repos) FindByLibKey(key string) *Repo {
	return rs.byLibKey[key]
}

// FindByContext returns the repo declared by exactly this git reference, or
// nil. A context that lost an alias collision has no repo.
func (rs *Repos) FindByContext(ref string) *Repo {
	return rs.byContext[ref]
}
