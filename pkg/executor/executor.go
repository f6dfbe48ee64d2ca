// Package executor applies the filesystem changes that materialize a
// project's pods. Callers describe the changes as a list of Operations
// and pick an Executor: Synthfs runs them as a synthfs pipeline against
// the real filesystem, Direct applies them to any types.FS.
package executor

import (
	"context"
	"io/fs"
)

// OperationType identifies a filesystem change.
type OperationType string

const (
	OperationRemoveAll OperationType = "remove_all"
	OperationCreateDir OperationType = "create_dir"
	OperationWriteFile OperationType = "write_file"
)

// Operation is one filesystem change. Target is always absolute.
type Operation struct {
	Type    OperationType
	Target  string
	Content []byte
	Mode    fs.FileMode
}

// Executor applies operations in order, stopping at the first failure.
type Executor interface {
	Execute(ctx context.Context, ops []Operation) error
}

// RemoveAll deletes target and everything below it. A missing target
// is not an error.
func RemoveAll(target string) Operation {
	return Operation{Type: OperationRemoveAll, Target: target}
}

// CreateDir creates target and any missing parents.
func CreateDir(target string) Operation {
	return Operation{Type: OperationCreateDir, Target: target, Mode: 0755}
}

// WriteFile writes content to target, replacing any previous file.
func WriteFile(target string, content []byte) Operation {
	return Operation{Type: OperationWriteFile, Target: target, Content: content, Mode: 0644}
}
