package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/arthur-debert/conductor/pkg/paths"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable. A double
// underscore separates sections: CONDUCTOR_PROJECT__SRC_DIR sets
// project.src_dir.
const EnvPrefix = "CONDUCTOR_"

// Loader reads configuration for a project.
type Loader struct {
	fs types.FS

	// UserConfigPath is read from the real filesystem when it exists.
	UserConfigPath string
}

// NewLoader returns a loader reading project files through fsys.
func NewLoader(fsys types.FS) *Loader {
	return &Loader{
		fs:             fsys,
		UserConfigPath: paths.UserConfigPath(),
	}
}

// Load merges every configuration layer for the project at root.
// overrides holds flag values keyed by dotted path ("project.name") and
// wins over everything else.
func (l *Loader) Load(root string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	if l.UserConfigPath != "" {
		if _, err := os.Stat(l.UserConfigPath); err == nil {
			logger.Debug().Str("path", l.UserConfigPath).Msg("Loading user config")
			if err := k.Load(file.Provider(l.UserConfigPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load user config from %s", l.UserConfigPath).
					WithDetail("path", l.UserConfigPath)
			}
		}
	}

	// 3. Project config
	if root != "" {
		projectPath := paths.NewLayout(root).ConfigPath()
		data, err := l.fs.ReadFile(projectPath)
		switch {
		case err == nil:
			logger.Debug().Str("path", projectPath).Msg("Loading project config")
			if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load project config from %s", projectPath).
					WithDetail("path", projectPath)
			}
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", projectPath).
				WithDetail("path", projectPath)
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Flags
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps CONDUCTOR_PROJECT__SRC_DIR to project.src_dir.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
