package plugins

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/compose-spec/compose-go/v2/dotenv"
	composetypes "github.com/compose-spec/compose-go/v2/types"
)

// envFilePlugin copies env_file contents into each service's environment
// on export, so exported pods carry no file dependencies. Variables set
// explicitly in environment win over env files, and later env files win
// over earlier ones.
type envFilePlugin struct{}

func (p *envFilePlugin) Name() string { return "env_file" }

func (p *envFilePlugin) Enabled(op types.Operation, ctx *Context) bool {
	return op == types.OperationExport
}

func (p *envFilePlugin) Transform(op types.Operation, ctx *Context, doc *compose.Document) error {
	fsys := ctx.Project.FS()
	for _, name := range compose.ServiceNames(doc) {
		svc := doc.Services[name]
		if len(svc.EnvFiles) == 0 {
			continue
		}

		vars := map[string]string{}
		for _, envFile := range svc.EnvFiles {
			envPath := envFile.Path
			if !filepath.IsAbs(envPath) {
				envPath = filepath.Join(ctx.Project.PodsDir(), envPath)
			}

			data, err := fsys.ReadFile(envPath)
			if err != nil {
				if os.IsNotExist(err) && !envFile.Required {
					continue
				}
				return errors.Wrapf(err, errors.ErrFileRead, "service %s: cannot read env file %s", name, envPath).
					WithDetail("path", envPath)
			}

			parsed, err := dotenv.UnmarshalBytesWithLookup(data, nil)
			if err != nil {
				return errors.Wrapf(err, errors.ErrConfigParse, "service %s: cannot parse env file %s", name, envPath).
					WithDetail("path", envPath)
			}
			for k, v := range parsed {
				vars[k] = v
			}
		}

		if svc.Environment == nil {
			svc.Environment = composetypes.MappingWithEquals{}
		}
		for k, v := range vars {
			if _, explicit := svc.Environment[k]; explicit {
				continue
			}
			svc.Environment[k] = &v
		}

		svc.EnvFiles = nil
		doc.Services[name] = svc
	}
	return nil
}
