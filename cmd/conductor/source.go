package conductor

import (
	"fmt"

	"github.com/arthur-debert/conductor/pkg/project"
	"github.com/arthur-debert/conductor/pkg/style"
	"github.com/spf13/cobra"
)

func (a *app) newSourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "source",
		Short:   MsgSourceShort,
		Long:    MsgSourceLong,
		GroupID: "core",
	}
	cmd.AddCommand(a.newSourceLsCmd())
	cmd.AddCommand(a.newSourceChangeCmd("clone ALIAS", MsgSourceCloneShort, func(p *project.Project, alias string) (string, error) {
		if err := p.SourceClone(a.runner, alias); err != nil {
			return "", err
		}
		return fmt.Sprintf(MsgSourceCloned, style.SuccessIndicator, alias, style.Path(p.Repos().FindByAlias(alias).Path())), nil
	}))
	cmd.AddCommand(a.newSourceChangeCmd("mount ALIAS", MsgSourceMountShort, func(p *project.Project, alias string) (string, error) {
		if err := p.SourceSetMounted(a.runner, alias, true); err != nil {
			return "", err
		}
		return fmt.Sprintf(MsgSourceMounted, style.SuccessIndicator, alias, style.Path(p.Repos().FindByAlias(alias).Path())), nil
	}))
	cmd.AddCommand(a.newSourceChangeCmd("unmount ALIAS", MsgSourceUnmountShort, func(p *project.Project, alias string) (string, error) {
		if err := p.SourceSetMounted(a.runner, alias, false); err != nil {
			return "", err
		}
		return fmt.Sprintf(MsgSourceUnmount, style.PendingIndicator, alias), nil
	}))
	return cmd
}

func (a *app) newSourceLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: MsgSourceLsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := a.loadProject(cmd)
			if err != nil {
				return err
			}
			sources, err := p.SourceList()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sources) == 0 {
				fmt.Fprintln(out, MsgNoSources)
				return nil
			}

			rows := make([][]string, 0, len(sources))
			for _, s := range sources {
				rows = append(rows, []string{
					style.Bold(s.Alias),
					style.RenderState(style.StateOf(s.Cloned, s.Mounted)),
					s.LibKey,
					s.Context,
				})
			}
			table, err := style.Table([]string{"ALIAS", "STATE", "LIB", "CONTEXT"}, rows)
			if err != nil {
				return fmt.Errorf(MsgErrRenderSources, err)
			}
			fmt.Fprint(out, table)
			return nil
		},
	}
}

// newSourceChangeCmd builds a command that changes one repo and then
// regenerates the pods so they reflect the change.
func (a *app) newSourceChangeCmd(use, short string, change func(*project.Project, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			p, _, err := a.loadProject(cmd)
			if err != nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var aliases []string
			for _, r := range p.Repos().All() {
				aliases = append(aliases, r.Alias)
			}
			return aliases, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			p, ovr, err := a.loadProject(cmd)
			if err != nil {
				return err
			}
			alias := cmdArgs[0]
			msg, err := change(p, alias)
			if err != nil {
				return fmt.Errorf(MsgErrSource, alias, err)
			}
			if err := p.Output(cmd.Context(), ovr); err != nil {
				return fmt.Errorf(MsgErrOutput, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
