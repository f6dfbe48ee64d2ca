// Package compose loads, merges and renders pod documents.
//
// The Compose document model itself comes from compose-go. This package
// decides which files are combined, in what order, and relative to which
// directory, and reads everything through types.FS so in-memory projects
// load exactly like projects on disk.
package compose

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/compose-spec/compose-go/v2/loader"
	composetypes "github.com/compose-spec/compose-go/v2/types"
	"github.com/rs/zerolog"
)

// Document is one materialized pod: a Compose project whose services may be
// mutated by transforms before it is written.
type Document = composetypes.Project

// fallbackProjectName is used when a name normalizes to nothing.
const fallbackProjectName = "conductor"

// Loader reads pod files through a types.FS.
type Loader struct {
	fs     types.FS
	env    composetypes.Mapping
	logger zerolog.Logger
}

// NewLoader creates a loader. env is used for ${VAR} interpolation; pass nil
// to use the process environment.
func NewLoader(fsys types.FS, env map[string]string) *Loader {
	mapping := composetypes.Mapping{}
	if env == nil {
		mapping = composetypes.NewMapping(os.Environ())
	} else {
		for k, v := range env {
			mapping[k] = v
		}
	}
	return &Loader{
		fs:     fsys,
		env:    mapping,
		logger: logging.GetLogger("compose"),
	}
}

// Merge loads files in order, later files overriding earlier ones with
// Compose's own override semantics, and resolves every relative path
// against workingDir so the result no longer depends on where the files
// live. Remote build contexts are left untouched.
func (l *Loader) Merge(ctx context.Context, projectName, workingDir string, files []string) (*Document, error) {
	if len(files) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no compose files to merge")
	}

	configFiles, err := l.readAll(files)
	if err != nil {
		return nil, err
	}

	name := ProjectName(projectName)
	l.logger.Debug().
		Str("project", name).
		Strs("files", files).
		Msg("Merging pod layers")

	doc, err := loader.LoadWithContext(ctx, composetypes.ConfigDetails{
		WorkingDir:  workingDir,
		ConfigFiles: configFiles,
		Environment: l.env,
	}, func(o *loader.Options) {
		o.SetProjectName(name, true)
		o.ResolvePaths = true
		o.SkipConsistencyCheck = true
		o.SkipNormalization = true
		o.SkipResolveEnvironment = true
		o.SkipInclude = true
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrComposeLoad, "cannot load %s", strings.Join(files, ", ")).
			WithDetail("files", files)
	}
	return doc, nil
}

// Scan loads a single pod file without validation or path resolution. It is
// used to discover services, labels and build contexts, including in
// override layers that are not complete documents on their own.
func (l *Loader) Scan(ctx context.Context, path string) (*Document, error) {
	configFiles, err := l.readAll([]string{path})
	if err != nil {
		return nil, err
	}

	doc, err := loader.LoadWithContext(ctx, composetypes.ConfigDetails{
		WorkingDir:  filepath.Dir(path),
		ConfigFiles: configFiles,
		Environment: l.env,
	}, func(o *loader.Options) {
		o.SetProjectName(ProjectName(stem(path)), true)
		o.ResolvePaths = false
		o.SkipValidation = true
		o.SkipConsistencyCheck = true
		o.SkipNormalization = true
		o.SkipResolveEnvironment = true
		o.SkipInclude = true
		o.SkipExtends = true
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrComposeLoad, "cannot scan %s", path).
			WithDetail("path", path)
	}
	return doc, nil
}

func (l *Loader) readAll(files []string) ([]composetypes.ConfigFile, error) {
	configFiles := make([]composetypes.ConfigFile, 0, len(files))
	for _, path := range files {
		data, err := l.fs.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", path).
				WithDetail("path", path)
		}
		configFiles = append(configFiles, composetypes.ConfigFile{Filename: path, Content: data})
	}
	return configFiles, nil
}

// ProjectName normalizes name the way docker-compose does, falling back to
// a fixed name when nothing usable is left.
func ProjectName(name string) string {
	normalized := loader.NormalizeProjectName(name)
	if normalized == "" {
		return fallbackProjectName
	}
	return normalized
}

// ServiceNames returns the document's service names in sorted order.
func ServiceNames(doc *Document) []string {
	return doc.ServiceNames()
}

// Marshal renders a document as YAML. Map keys are emitted in sorted order,
// so identical documents always render to identical bytes.
func Marshal(doc *Document) ([]byte, error) {
	return doc.MarshalYAML()
}

func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
