package project

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/executor"
	"github.com/arthur-debert/conductor/pkg/filesystem"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/arthur-debert/conductor/pkg/paths"
	"github.com/arthur-debert/conductor/pkg/plugins"
	"github.com/arthur-debert/conductor/pkg/types"
)

// Output deletes <output_dir>/pods and regenerates it for ovr: one
// flattened, transformed compose file per pod.
func (p *Project) Output(ctx context.Context, ovr *types.Override) error {
	done := logging.LogOperationStart(p.logger, "output "+ovr.Name)
	defer done()

	outPods := p.OutputPodsDir()
	return p.materialize(ctx, ovr, types.OperationOutput, outPods, executor.RemoveAll(outPods))
}

// Export writes a deployable copy of every pod for ovr into dir, which
// must not exist yet. Task pods go under dir/tasks.
func (p *Project) Export(ctx context.Context, ovr *types.Override, dir string) error {
	done := logging.LogOperationStart(p.logger, "export "+ovr.Name)
	defer done()

	exists, err := filesystem.Exists(p.fs, dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot check %s", dir).
			WithDetail("path", dir)
	}
	if exists {
		return errors.Newf(errors.ErrDestinationExists, "the directory %s already exists", dir).
			WithDetail("path", dir)
	}

	if p.defaultTags == nil {
		p.logger.Warn().Msg("Exporting project without --default-tags")
	}

	return p.materialize(ctx, ovr, types.OperationExport, dir)
}

// ExportPath is where Export places pod relative to the export root.
func ExportPath(pod *types.Pod) string {
	name := pod.Name + paths.PodExt
	if pod.Type == types.PodTypeTask {
		return filepath.Join(paths.TasksDirName, name)
	}
	return name
}

// materialize renders every pod for op and hands the resulting writes,
// after any leading ops, to the project's executor in one batch. Nothing
// is written when a pod fails to render.
func (p *Project) materialize(ctx context.Context, ovr *types.Override, op types.Operation, dir string, ops ...executor.Operation) error {
	ops = append(ops, executor.CreateDir(dir))
	dirs := map[string]bool{dir: true}
	for _, pod := range p.pods {
		rel := pod.Name + paths.PodExt
		if op == types.OperationExport {
			rel = ExportPath(pod)
		}
		out := filepath.Join(dir, rel)

		doc, err := p.MergedPod(ctx, ovr, op, pod)
		if err != nil {
			return err
		}
		data, err := compose.Marshal(doc)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "cannot render %s", out)
		}

		if parent := filepath.Dir(out); !dirs[parent] {
			dirs[parent] = true
			ops = append(ops, executor.CreateDir(parent))
		}
		p.logger.Debug().
			Str("pod", pod.Name).
			Str("operation", op.String()).
			Str("path", out).
			Msg("Writing pod")
		ops = append(ops, executor.WriteFile(out, data))
	}
	return p.exec.Execute(ctx, ops)
}

// MergedPod returns pod's base file merged with ovr's layer, made
// standalone and transformed for op.
func (p *Project) MergedPod(ctx context.Context, ovr *types.Override, op types.Operation, pod *types.Pod) (*compose.Document, error) {
	doc, err := p.loader.Merge(ctx, compose.ProjectName(p.name), p.PodsDir(), pod.LayerPaths(ovr.Name))
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "pod %s", pod.Name).
			WithDetail("pod", pod.Name)
	}

	pctx := &plugins.Context{Project: p, Override: ovr, Pod: pod}
	if err := p.plugins.Transform(op, pctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
