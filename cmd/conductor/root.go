// Package conductor is the conductor command line.
package conductor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/conductor/internal/version"
	"github.com/arthur-debert/conductor/pkg/executor"
	"github.com/arthur-debert/conductor/pkg/filesystem"
	"github.com/arthur-debert/conductor/pkg/logging"
	"github.com/arthur-debert/conductor/pkg/project"
	"github.com/arthur-debert/conductor/pkg/runner"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app carries the global flags and the collaborators every command uses.
type app struct {
	verbosity   int
	projectName string
	target      string
	defaultTags string

	fs     types.FS
	exec   executor.Executor
	runner runner.CommandRunner
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{fs: filesystem.NewOS(), exec: executor.NewSynthfs(), runner: runner.NewOS()})
}

func newRootCmd(a *app) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "conductor",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoSubcommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.projectName, "project-name", "p", "", MsgFlagProjectName)
	rootCmd.PersistentFlags().StringVarP(&a.target, "target", "t", "", MsgFlagTarget)
	rootCmd.PersistentFlags().StringVar(&a.defaultTags, "default-tags", "", MsgFlagDefaultTags)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newOutputCmd())
	rootCmd.AddCommand(a.newExportCmd())
	rootCmd.AddCommand(a.newLsCmd())
	rootCmd.AddCommand(a.newComposeCmd())
	rootCmd.AddCommand(a.newRunCmd())
	rootCmd.AddCommand(a.newExecCmd())
	rootCmd.AddCommand(a.newShellCmd())
	rootCmd.AddCommand(a.newTestCmd())
	rootCmd.AddCommand(a.newStatusCmd())
	rootCmd.AddCommand(a.newSourceCmd())
	rootCmd.AddCommand(a.newHookCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(a.newSysinfoCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	installHelpTopics(rootCmd)

	return rootCmd
}

// loadProject loads the project around the working directory and resolves
// the selected override.
func (a *app) loadProject(cmd *cobra.Command) (*project.Project, *types.Override, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrWorkingDir, err)
	}

	overrides := map[string]interface{}{}
	if a.projectName != "" {
		overrides["project.name"] = a.projectName
	}
	if a.defaultTags != "" {
		tags, err := filepath.Abs(a.defaultTags)
		if err != nil {
			return nil, nil, fmt.Errorf(MsgErrAbsolutePath, a.defaultTags, err)
		}
		overrides["export.default_tags"] = tags
	}

	p, err := project.Load(cmd.Context(), a.fs, wd, project.Options{ConfigOverrides: overrides, Executor: a.exec})
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadProject, err)
	}

	target := a.target
	if target == "" {
		target = p.Config().Project.DefaultOverride
	}
	ovr, err := p.OverrideOrErr(target)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadProject, err)
	}

	log.Info().
		Str("root", p.RootDir()).
		Str("project", p.Name()).
		Str("target", ovr.Name).
		Msg("Using project")
	return p, ovr, nil
}

// targetCompletion completes pod and service names.
func (a *app) targetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	p, _, err := a.loadProject(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, pod := range p.Pods() {
		names = append(names, pod.Name)
		for _, svc := range pod.Services {
			names = append(names, pod.Name+"/"+svc)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
