package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// Synthfs runs operations as a single synthfs pipeline on the real
// filesystem, rolling back what it created when a later step fails.
type Synthfs struct {
	logger     zerolog.Logger
	filesystem filesystem.FullFileSystem
	rollback   bool
}

// NewSynthfs returns an executor over the OS root filesystem.
func NewSynthfs() *Synthfs {
	osfs := filesystem.NewOSFileSystem("/")
	return &Synthfs{
		logger:     logging.GetLogger("executor.synthfs"),
		filesystem: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
		rollback:   true,
	}
}

func (e *Synthfs) Execute(ctx context.Context, ops []Operation) error {
	if len(ops) == 0 {
		return nil
	}

	sfs := synthfs.New()
	synthOps := make([]synthfs.Operation, 0, len(ops))
	for i, op := range ops {
		if err := validate(op); err != nil {
			return err
		}
		synthOps = append(synthOps, e.convert(sfs, i, op))
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = e.rollback

	e.logger.Debug().
		Int("operationCount", len(synthOps)).
		Bool("rollbackEnabled", e.rollback).
		Msg("Executing synthfs operations")

	if _, err := synthfs.RunWithOptions(ctx, e.filesystem, options, synthOps...); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write pods")
	}
	return nil
}

func (e *Synthfs) convert(sfs *synthfs.SynthFS, i int, op Operation) synthfs.Operation {
	id := fmt.Sprintf("%s_%03d_%s", op.Type, i, filepath.Base(op.Target))
	switch op.Type {
	case OperationCreateDir:
		return sfs.CreateDirWithID(id, op.Target, op.Mode)
	case OperationWriteFile:
		return sfs.CreateFileWithID(id, op.Target, op.Content, op.Mode)
	default:
		// synthfs deletes single entries; pod directories go as a whole.
		target := op.Target
		return sfs.CustomOperationWithID(id, func(ctx context.Context, _ filesystem.FileSystem) error {
			return os.RemoveAll(target)
		})
	}
}
