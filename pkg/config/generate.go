package config

import (
	"strings"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/filesystem"
	"github.com/arthur-debert/conductor/pkg/paths"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

const templateHeader = `# conductor project configuration.
# Uncomment and edit any setting to override the built-in default.

`

// Defaults returns the configuration with no user, project, environment
// or flag layers applied.
func Defaults() (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(defaultConfig, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse defaults")
	}
	return &cfg, nil
}

// GenerateConfigContent renders the defaults as a conductor.toml with
// every value commented out.
func GenerateConfigContent() (string, error) {
	cfg, err := Defaults()
	if err != nil {
		return "", err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration template")
	}
	return templateHeader + commentOutConfigValues(string(data)), nil
}

// WriteTemplate writes a starter conductor.toml into root. An existing
// file is never overwritten.
func WriteTemplate(fsys types.FS, root string) (string, error) {
	path := paths.NewLayout(root).ConfigPath()
	exists, err := filesystem.Exists(fsys, path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileRead, "cannot check %s", path)
	}
	if exists {
		return "", errors.Newf(errors.ErrDestinationExists, "%s already exists", path).
			WithDetail("path", path)
	}

	content, err := GenerateConfigContent()
	if err != nil {
		return "", err
	}
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).
			WithDetail("path", path)
	}
	return path, nil
}

// commentOutConfigValues comments out every assignment, keeping section
// headers, comments and blank lines as they are.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
