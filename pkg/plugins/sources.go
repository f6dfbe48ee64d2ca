package plugins

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/repos"
	"github.com/arthur-debert/conductor/pkg/types"
	composetypes "github.com/compose-spec/compose-go/v2/types"
)

// sourcesPlugin points git build contexts at local clones when they are
// mounted, and mounts the clone into the container. On export the remote
// context is kept and nothing local is referenced.
type sourcesPlugin struct{}

func (p *sourcesPlugin) Name() string { return "sources" }

func (p *sourcesPlugin) Enabled(op types.Operation, ctx *Context) bool {
	return op == types.OperationOutput && ctx.Project.Repos().Len() > 0
}

func (p *sourcesPlugin) Transform(op types.Operation, ctx *Context, doc *compose.Document) error {
	rs := ctx.Project.Repos()
	for _, name := range compose.ServiceNames(doc) {
		svc := doc.Services[name]
		if svc.Build == nil || !repos.IsGitContext(svc.Build.Context) {
			continue
		}
		repo := rs.FindByContext(svc.Build.Context)
		if repo == nil {
			continue
		}

		mounted, err := repo.IsMounted()
		if err != nil {
			return err
		}
		if !mounted {
			continue
		}

		mountPath := rs.SourceMountPath(svc.Labels)
		if !path.IsAbs(mountPath) {
			return fmt.Errorf("service %s: source mount path %q is not absolute", name, mountPath)
		}

		local := absoluteClonePath(repo)
		svc.Build.Context = local
		svc.Volumes = append(svc.Volumes, bindVolume(local, mountPath))
		doc.Services[name] = svc
	}
	return nil
}

// absoluteClonePath panics on a relative clone path: projects always
// resolve their source directory to an absolute path at load time.
func absoluteClonePath(repo *repos.Repo) string {
	local := repo.Path()
	if !filepath.IsAbs(local) {
		panic(fmt.Sprintf("clone path for %s is not absolute: %s", repo.Alias, local))
	}
	return local
}

func bindVolume(source, target string) composetypes.ServiceVolumeConfig {
	return composetypes.ServiceVolumeConfig{
		Type:   composetypes.VolumeTypeBind,
		Source: source,
		Target: target,
	}
}
