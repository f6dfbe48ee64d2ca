package conductor

import (
	"fmt"
	"os"

	"github.com/arthur-debert/conductor/internal/version"
	"github.com/arthur-debert/conductor/pkg/config"
	"github.com/arthur-debert/conductor/pkg/paths"
	"github.com/arthur-debert/conductor/pkg/style"
	"github.com/spf13/cobra"
)

// sysinfoTools are reported by sysinfo, in order.
var sysinfoTools = []string{"docker", "docker-compose", "git"}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf(MsgErrWorkingDir, err)
			}
			root, err := paths.FindProject(a.fs, wd)
			if err != nil {
				return fmt.Errorf(MsgErrLoadProject, err)
			}
			path, err := config.WriteTemplate(a.fs, root)
			if err != nil {
				return fmt.Errorf(MsgErrConfigInit, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, style.SuccessIndicator, style.Path(path))
			return nil
		},
	})
	return cmd
}

func (a *app) newSysinfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sysinfo",
		Short:   MsgSysinfoShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printVersion(cmd)
			for _, tool := range sysinfoTools {
				fmt.Fprintln(cmd.OutOrStdout(), style.Title(tool))
				if err := a.runner.Build(tool).Arg("--version").Exec(); err != nil {
					return fmt.Errorf(MsgErrToolVersion, tool, err)
				}
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd)
		},
	}
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, MsgVersionFormat, version.Version)
	if version.Commit != "unknown" {
		fmt.Fprintln(out, style.ListItem(fmt.Sprintf(MsgVersionCommit, version.Commit)))
	}
	if version.Date != "unknown" {
		fmt.Fprintln(out, style.ListItem(fmt.Sprintf(MsgVersionBuilt, version.Date)))
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
