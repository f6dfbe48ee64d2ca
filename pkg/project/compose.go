package project

import (
	"iter"

	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/runner"
	"github.com/arthur-debert/conductor/pkg/types"
)

// ComposeProgram is the tool Compose runs.
const ComposeProgram = "docker-compose"

// Compose runs docker-compose once per target, against the pod files
// Output wrote. command is the subcommand followed by its options. A
// target that failed to resolve stops the run with its error. Output must
// have been called for ovr first.
func (p *Project) Compose(cr runner.CommandRunner, ovr *types.Override, command []string, targets iter.Seq2[PodOrService, error]) error {
	for target, err := range targets {
		if err != nil {
			return err
		}

		cmd := cr.Build(ComposeProgram).
			Args("-p", compose.ProjectName(p.name), "-f", p.OutputPodPath(target.Pod.Name)).
			Args(command...).
			Dir(p.RootDir())
		if target.IsService() {
			cmd = cmd.Arg(target.Service)
		}

		p.logger.Debug().
			Str("override", ovr.Name).
			Str("target", target.String()).
			Strs("command", command).
			Msg("Running compose")
		if err := cmd.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// HookEnv is the environment passed to hook scripts for ovr.
func (p *Project) HookEnv(ovr *types.Override) map[string]string {
	return map[string]string{
		"COMPOSE_PROJECT_NAME": compose.ProjectName(p.name),
		"PROJECT_ROOT":         p.RootDir(),
		"PROJECT_OVERRIDE":     ovr.Name,
		"PROJECT_OUTPUT_DIR":   p.outputDir,
	}
}
