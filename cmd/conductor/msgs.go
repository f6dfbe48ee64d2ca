package conductor

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Flatten docker-compose pods for a target"
	MsgOutputShort        = "Regenerate the materialized pods"
	MsgExportShort        = "Export standalone pods into a new directory"
	MsgLsShort            = "List pods and their services"
	MsgComposeShort       = "Run docker-compose against pods or services"
	MsgRunShort           = "Run a one-off command in a new container"
	MsgExecShort          = "Run a command in a running service container"
	MsgShellShort         = "Open a shell in a running service container"
	MsgTestShort          = "Run a service's tests in a new container"
	MsgStatusShort        = "Show the containers of pods or services"
	MsgSourceShort        = "Manage source repositories"
	MsgSourceLsShort      = "List source repositories"
	MsgSourceCloneShort   = "Clone a source repository"
	MsgSourceMountShort   = "Build and mount from the local clone"
	MsgSourceUnmountShort = "Build from the remote repository again"
	MsgHookShort          = "Run the hooks for an event"
	MsgConfigShort        = "Manage configuration"
	MsgConfigInitShort    = "Write a starter conductor.toml"
	MsgSysinfoShort       = "Show versions of conductor and the tools it runs"
	MsgVersionShort       = "Print version information"
	MsgCompletionShort    = "Generate shell completion script"

	// Status messages
	MsgOutputDone     = "%s Wrote %d pods to %s\n"
	MsgExportDone     = "%s Exported %d pods to %s\n"
	MsgExportNoTags   = "No --default-tags given: untagged images are exported as-is"
	MsgConfigWritten  = "%s Created %s\n"
	MsgNoSources      = "No source repositories."
	MsgNoPods         = "No pods."
	MsgSourceMounted  = "%s Mounted %s from %s\n"
	MsgSourceUnmount  = "%s Unmounted %s\n"
	MsgSourceCloned   = "%s Cloned %s into %s\n"
	MsgVersionFormat  = "conductor version %s\n"
	MsgVersionCommit  = "commit: %s"
	MsgVersionBuilt   = "built:  %s"
	MsgTargetNotFound = "%s %s\n"

	// Error messages
	MsgErrLoadProject   = "failed to load project: %w"
	MsgErrOutput        = "failed to output pods: %w"
	MsgErrExport        = "failed to export pods: %w"
	MsgErrCompose       = "failed to run docker-compose: %w"
	MsgErrSource        = "failed to update source %s: %w"
	MsgErrHook          = "failed to run %s hooks: %w"
	MsgErrConfigInit    = "failed to write configuration: %w"
	MsgErrTargets       = "%d target(s) could not be resolved"
	MsgErrWorkingDir    = "failed to get working directory: %w"
	MsgErrNoSubcommand  = "no command specified"
	MsgErrToolVersion   = "failed to get %s version: %w"
	MsgErrAbsolutePath  = "failed to resolve %s: %w"
	MsgErrRenderSources = "failed to render sources: %w"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagProjectName = "Project name passed to docker-compose (default: the project directory name)"
	MsgFlagTarget      = "Override to apply, such as development or production"
	MsgFlagDefaultTags = "File of image:tag lines used to tag untagged images"
	MsgFlagDetach      = "Run the container in the background"
	MsgFlagUser        = "Run the command as this user"
	MsgFlagNoTTY       = "Do not allocate a pseudo-TTY"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/output-long.txt
	msgOutputLongRaw string
	MsgOutputLong    = strings.TrimSpace(msgOutputLongRaw)

	//go:embed msgs/export-long.txt
	msgExportLongRaw string
	MsgExportLong    = strings.TrimSpace(msgExportLongRaw)

	//go:embed msgs/compose-long.txt
	msgComposeLongRaw string
	MsgComposeLong    = strings.TrimSpace(msgComposeLongRaw)

	//go:embed msgs/test-long.txt
	msgTestLongRaw string
	MsgTestLong    = strings.TrimSpace(msgTestLongRaw)

	//go:embed msgs/source-long.txt
	msgSourceLongRaw string
	MsgSourceLong    = strings.TrimSpace(msgSourceLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
