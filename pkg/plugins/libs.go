package plugins

import (
	"fmt"
	"path"

	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/repos"
	"github.com/arthur-debert/conductor/pkg/types"
)

// libsPlugin mounts cloned library repos into the services that declare
// them, under <source mount>/vendor/<alias>.
type libsPlugin struct{}

func (p *libsPlugin) Name() string { return "libs" }

func (p *libsPlugin) Enabled(op types.Operation, ctx *Context) bool {
	return op == types.OperationOutput && ctx.Project.Repos().Len() > 0
}

func (p *libsPlugin) Transform(op types.Operation, ctx *Context, doc *compose.Document) error {
	rs := ctx.Project.Repos()
	for _, name := range compose.ServiceNames(doc) {
		svc := doc.Services[name]
		changed := false

		for _, key := range rs.LibKeys(svc.Labels) {
			repo := rs.FindByLibKey(key)
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

			target := repos.LibMountPath(mountPath, repo.Alias)
			svc.Volumes = append(svc.Volumes, bindVolume(absoluteClonePath(repo), target))
			changed = true
		}

		if changed {
			doc.Services[name] = svc
		}
	}
	return nil
}
