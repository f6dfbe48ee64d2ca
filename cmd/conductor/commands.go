package conductor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/conductor/pkg/args"
	"github.com/arthur-debert/conductor/pkg/style"
	"github.com/spf13/cobra"
)

func (a *app) newOutputCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "output",
		Short:   MsgOutputShort,
		Long:    MsgOutputLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, ovr, err := a.loadProject(cmd)
			if err != nil {
				return err
			}
			if err := p.Output(cmd.Context(), ovr); err != nil {
				return fmt.Errorf(MsgErrOutput, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgOutputDone, style.SuccessIndicator, len(p.Pods()), style.Path(p.OutputPodsDir()))
			return nil
		},
	}
}

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "export DIR",
		Short:   MsgExportShort,
		Long:    MsgExportLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			dir, err := filepath.Abs(cmdArgs[0])
			if err != nil {
				return fmt.Errorf(MsgErrAbsolutePath, cmdArgs[0], err)
			}
			p, ovr, err := a.loadProject(cmd)
			if err != nil {
				return err
			}
			if err := p.Export(cmd.Context(), ovr, dir); err != nil {
				return fmt.Errorf(MsgErrExport, err)
			}
			if p.DefaultTags() == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), style.Warning(MsgExportNoTags))
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgExportDone, style.SuccessIndicator, len(p.Pods()), style.Path(dir))
			return nil
		},
	}
}

func (a *app) newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "ls [POD_OR_SERVICE...]",
		Short:             MsgLsShort,
		GroupID:           "core",
		ValidArgsFunction: a.targetCompletion,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			p, ovr, err := a.loadProject(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(p.Pods()) == 0 {
				fmt.Fprintln(out, MsgNoPods)
				return nil
			}

			var rows [][]string
			failed := 0
			for target, err := range args.FromArgs(cmdArgs).PodsOrServices(p) {
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), MsgTargetNotFound, style.ErrorIndicator, err)
					continue
				}
				services := target.Pod.ServicesFor(ovr.Name)
				if target.IsService() {
					services = []string{target.Service}
				}
				rows = append(rows, []string{
					style.Bold(target.Pod.Name),
					style.PodType(target.Pod.Type.String()),
					strings.Join(services, ", "),
				})
			}

			if len(rows) > 0 {
				table, err := style.Table([]string{"POD", "TYPE", "SERVICES"}, rows)
				if err != nil {
					return err
				}
				fmt.Fprint(out, table)
			}
			if failed > 0 {
				return fmt.Errorf(MsgErrTargets, failed)
			}
			return nil
		},
	}
}

func (a *app) newComposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "compose SUBCOMMAND [POD_OR_SERVICE...]",
		Short:             MsgComposeShort,
		Long:              MsgComposeLong,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: a.targetCompletion,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			p, ovr, err := a.loadProject(cmd)
			if err != nil {
				return err
			}
			if err := p.Output(cmd.Context(), ovr); err != nil {
				return fmt.Errorf(MsgErrOutput, err)
			}

			command, names := splitComposeArgs(cmdArgs)
			targets := args.FromArgs(names).PodsOrServices(p)
			if err := p.Compose(a.runner, ovr, command, targets); err != nil {
				return fmt.Errorf(MsgErrCompose, err)
			}

			if command[0] == "up" {
				if err := p.Hooks().Invoke(a.runner, "up", p.HookEnv(ovr)); err != nil {
					return fmt.Errorf(MsgErrHook, "up", err)
				}
			}
			return nil
		},
	}
	// Everything after the subcommand belongs to docker-compose.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// splitComposeArgs separates the subcommand and its dash-prefixed options
// from the target names that follow.
func splitComposeArgs(cmdArgs []string) (command, names []string) {
	command = []string{cmdArgs[0]}
	for _, arg := range cmdArgs[1:] {
		if strings.HasPrefix(arg, "-") {
			command = append(command, arg)
		} else {
			names = append(names, arg)
		}
	}
	return command, names
}

func (a *app) newHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "hook EVENT",
		Short:   MsgHookShort,
		GroupID: "misc",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			p, ovr, err := a.loadProject(cmd)
			if err != nil {
				return err
			}
			event := cmdArgs[0]
			if err := p.Hooks().Invoke(a.runner, event, p.HookEnv(ovr)); err != nil {
				return fmt.Errorf(MsgErrHook, event, err)
			}
			return nil
		},
	}
}
