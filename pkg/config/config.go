package config

import (
	"strings"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/repos"
)

// Config is the merged configuration for one project.
type Config struct {
	Project ProjectConfig `koanf:"project" toml:"project"`
	Export  ExportConfig  `koanf:"export" toml:"export"`
	Sources SourcesConfig `koanf:"sources" toml:"sources"`
}

// ProjectConfig holds the project's identity and directories. Relative
// directories are taken from the project root.
type ProjectConfig struct {
	Name            string `koanf:"name" toml:"name"`
	SrcDir          string `koanf:"src_dir" toml:"src_dir"`
	OutputDir       string `koanf:"output_dir" toml:"output_dir"`
	HooksDir        string `koanf:"hooks_dir" toml:"hooks_dir"`
	DefaultOverride string `koanf:"default_override" toml:"default_override"`
}

type ExportConfig struct {
	DefaultTags string `koanf:"default_tags" toml:"default_tags"`
}

// SourcesConfig names the service labels that declare repositories.
type SourcesConfig struct {
	SrcdirLabel    string `koanf:"srcdir_label" toml:"srcdir_label"`
	LibLabelPrefix string `koanf:"lib_label_prefix" toml:"lib_label_prefix"`
}

// Labels returns the label names repository discovery should use.
func (c *Config) Labels() repos.Labels {
	return repos.Labels{
		Srcdir:    c.Sources.SrcdirLabel,
		LibPrefix: c.Sources.LibLabelPrefix,
	}
}

// validate rejects settings no project can work with.
func (c *Config) validate() error {
	required := []struct {
		key, value string
	}{
		{"project.src_dir", c.Project.SrcDir},
		{"project.output_dir", c.Project.OutputDir},
		{"project.hooks_dir", c.Project.HooksDir},
		{"sources.srcdir_label", c.Sources.SrcdirLabel},
		{"sources.lib_label_prefix", c.Sources.LibLabelPrefix},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Newf(errors.ErrConfigParse, "%s must not be empty", r.key).
				WithDetail("key", r.key)
		}
	}
	return nil
}
