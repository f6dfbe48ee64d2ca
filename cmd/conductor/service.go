package conductor

import (
	"fmt"

	"github.com/arthur-debert/conductor/pkg/args"
	"github.com/arthur-debert/conductor/pkg/project"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/spf13/cobra"
)

// testOverride is the target the test command uses unless --target is given.
const testOverride = "test"

// processOptions are the docker-compose run/exec options conductor exposes.
type processOptions struct {
	detached bool
	user     string
	noTTY    bool
}

func (o *processOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.detached, "detach", "d", false, MsgFlagDetach)
	cmd.Flags().StringVarP(&o.user, "user", "u", "", MsgFlagUser)
	cmd.Flags().BoolVarP(&o.noTTY, "no-tty", "T", false, MsgFlagNoTTY)
	// Everything after the target is the container command.
	cmd.Flags().SetInterspersed(false)
}

func (o *processOptions) args() []string {
	var out []string
	if o.detached {
		out = append(out, "-d")
	}
	if o.user != "" {
		out = append(out, "--user", o.user)
	}
	if o.noTTY {
		out = append(out, "-T")
	}
	return out
}

// loadTarget loads the project, regenerates its pods and resolves name.
func (a *app) loadTarget(cmd *cobra.Command, name string) (*project.Project, *types.Override, project.PodOrService, error) {
	p, ovr, err := a.loadProject(cmd)
	if err != nil {
		return nil, nil, project.PodOrService{}, err
	}
	if err := p.Output(cmd.Context(), ovr); err != nil {
		return nil, nil, project.PodOrService{}, fmt.Errorf(MsgErrOutput, err)
	}
	target, err := p.PodOrServiceOrErr(name)
	if err != nil {
		return nil, nil, project.PodOrService{}, err
	}
	return p, ovr, target, nil
}

func (a *app) newRunCmd() *cobra.Command {
	var opts processOptions
	cmd := &cobra.Command{
		Use:               "run POD_OR_SERVICE [COMMAND...]",
		Short:             MsgRunShort,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: a.targetCompletion,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			p, ovr, target, err := a.loadTarget(cmd, cmdArgs[0])
			if err != nil {
				return err
			}
			if err := p.Run(a.runner, ovr, target, opts.args(), cmdArgs[1:]); err != nil {
				return fmt.Errorf(MsgErrCompose, err)
			}
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) newExecCmd() *cobra.Command {
	var opts processOptions
	cmd := &cobra.Command{
		Use:               "exec SERVICE COMMAND...",
		Short:             MsgExecShort,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: a.targetCompletion,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			p, ovr, target, err := a.loadTarget(cmd, cmdArgs[0])
			if err != nil {
				return err
			}
			if err := p.Exec(a.runner, ovr, target, opts.args(), cmdArgs[1:]); err != nil {
				return fmt.Errorf(MsgErrCompose, err)
			}
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) newShellCmd() *cobra.Command {
	var opts processOptions
	cmd := &cobra.Command{
		Use:               "shell SERVICE",
		Short:             MsgShellShort,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.targetCompletion,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			p, ovr, target, err := a.loadTarget(cmd, cmdArgs[0])
			if err != nil {
				return err
			}
			if err := p.Exec(a.runner, ovr, target, opts.args(), []string{"sh"}); err != nil {
				return fmt.Errorf(MsgErrCompose, err)
			}
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "test SERVICE [COMMAND...]",
		Short:             MsgTestShort,
		Long:              MsgTestLong,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: a.targetCompletion,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			if a.target == "" {
				a.target = testOverride
			}
			p, ovr, target, err := a.loadTarget(cmd, cmdArgs[0])
			if err != nil {
				return err
			}

			command := cmdArgs[1:]
			if len(command) == 0 {
				if command, err = p.TestCommand(cmd.Context(), ovr, target); err != nil {
					return err
				}
			}
			if err := p.Run(a.runner, ovr, target, []string{"--rm"}, command); err != nil {
				return fmt.Errorf(MsgErrCompose, err)
			}
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "status [POD_OR_SERVICE...]",
		Short:             MsgStatusShort,
		GroupID:           "core",
		ValidArgsFunction: a.targetCompletion,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			p, ovr, err := a.loadProject(cmd)
			if err != nil {
				return err
			}
			if err := p.Output(cmd.Context(), ovr); err != nil {
				return fmt.Errorf(MsgErrOutput, err)
			}
			if err := p.Compose(a.runner, ovr, []string{"ps"}, args.FromArgs(cmdArgs).PodsOrServices(p)); err != nil {
				return fmt.Errorf(MsgErrCompose, err)
			}
			return nil
		},
	}
}
