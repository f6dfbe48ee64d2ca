package repos

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/conductor/pkg/errors"
	giturls "github.com/chainguard-dev/git-urls"
)

var gitPrefixes = []string{"https://", "http://", "git://", "ssh://", "github.com/", "git@"}

// IsGitContext reports whether a build context refers to a remote git
// repository rather than a local directory.
func IsGitContext(context string) bool {
	for _, prefix := range gitPrefixes {
		if strings.HasPrefix(context, prefix) {
			return true
		}
	}
	return false
}

// SplitRef separates a git context into its URL and the ref named by its
// fragment, if any.
func SplitRef(context string) (string, string) {
	base, ref, _ := strings.Cut(context, "#")
	return base, ref
}

// HumanAlias derives a short identifier for a source, suitable both as a
// command-line argument and as a directory name. The same input always
// yields the same alias.
func HumanAlias(context string) (string, error) {
	if IsGitContext(context) {
		return gitAlias(context)
	}
	return localAlias(context)
}

func gitAlias(context string) (string, error) {
	raw, ref := SplitRef(context)

	repoPath, err := gitPath(raw)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrAliasDerivation, "can't get repo name from %s", context)
	}
	repoPath = strings.TrimRight(repoPath, "/")
	if repoPath == "" {
		return "", errors.Newf(errors.ErrAliasDerivation, "can't get repo name from %s", context)
	}

	base := fileStem(path.Base(repoPath))
	if base == "" {
		return "", errors.Newf(errors.ErrAliasDerivation, "can't get repo name from %s", context)
	}

	if ref == "" {
		return base, nil
	}
	return base + "_" + sanitizeRef(ref), nil
}

// gitPath extracts the repository path from a git URL, accepting the
// transport, scp-like and bare "host/org/repo" shapes.
func gitPath(raw string) (string, error) {
	u, err := giturls.Parse(raw)
	if err != nil {
		return "", err
	}
	// giturls falls back to a local path for anything it can't read as
	// a URL; only the bare github.com shape is meaningful there.
	if u.Scheme == "file" && !strings.HasPrefix(raw, "github.com/") {
		return "", nil
	}
	return strings.TrimPrefix(u.Path, "github.com"), nil
}

func localAlias(context string) (string, error) {
	if context == "" {
		return "", errors.New(errors.ErrAliasDerivation, "can't get repo name from an empty path")
	}
	base := filepath.Base(filepath.Clean(context))
	switch base {
	case ".", "..", string(filepath.Separator):
		return "", errors.Newf(errors.ErrAliasDerivation, "can't get repo name from %s", context)
	}
	stem := fileStem(base)
	if stem == "" {
		return "", errors.Newf(errors.ErrAliasDerivation, "can't get repo name from %s", context)
	}
	return stem, nil
}

// fileStem strips the final extension. A leading dot does not start an
// extension, so ".dotfiles" keeps its name.
func fileStem(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name
	}
	return name[:i]
}

func sanitizeRef(ref string) string {
	return strings.NewReplacer("/", "_", ":", "_", "\\", "_").Replace(ref)
}
