package executor

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/rs/zerolog"
)

// Direct applies operations one by one to a types.FS.
type Direct struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewDirect returns an executor writing to fsys.
func NewDirect(fsys types.FS) *Direct {
	return &Direct{fs: fsys, logger: logging.GetLogger("executor.direct")}
}

func (d *Direct) Execute(ctx context.Context, ops []Operation) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := validate(op); err != nil {
			return err
		}

		d.logger.Trace().
			Str("type", string(op.Type)).
			Str("target", op.Target).
			Msg("Applying operation")

		var err error
		switch op.Type {
		case OperationRemoveAll:
			err = d.fs.RemoveAll(op.Target)
		case OperationCreateDir:
			err = d.fs.MkdirAll(op.Target, op.Mode)
		case OperationWriteFile:
			if err = d.fs.MkdirAll(filepath.Dir(op.Target), 0755); err == nil {
				err = d.fs.WriteFile(op.Target, op.Content, op.Mode)
			}
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot %s %s", op.Type, op.Target).
				WithDetail("path", op.Target)
		}
	}
	return nil
}

func validate(op Operation) error {
	if !filepath.IsAbs(op.Target) {
		return errors.Newf(errors.ErrInvalidInput, "%s operation needs an absolute target, got %q", op.Type, op.Target)
	}
	switch op.Type {
	case OperationRemoveAll, OperationCreateDir, OperationWriteFile:
		return nil
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported operation type: %s", op.Type)
	}
}
