package project

import (
	"context"

	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/runner"
	"github.com/arthur-debert/conductor/pkg/types"
	"github.com/mattn/go-shellwords"
)

// TestLabel holds the command Test runs when none is given.
const TestLabel = "io.conductor.test"

// Run starts a one-off container for target's service with
// "docker-compose run", passing options before the service and command
// after it. A pod target must have exactly one service under ovr.
func (p *Project) Run(cr runner.CommandRunner, ovr *types.Override, target PodOrService, options, command []string) error {
	return p.composeService(cr, ovr, "run", target, options, command)
}

// Exec runs command inside the running container of target's service.
func (p *Project) Exec(cr runner.CommandRunner, ovr *types.Override, target PodOrService, options, command []string) error {
	if len(command) == 0 {
		return errors.Newf(errors.ErrInvalidInput, "no command to run in %s", target)
	}
	return p.composeService(cr, ovr, "exec", target, options, command)
}

// TestCommand returns the command declared by the TestLabel of target's
// service, as materialized for ovr.
func (p *Project) TestCommand(ctx context.Context, ovr *types.Override, target PodOrService) ([]string, error) {
	service, err := p.singleService(ovr, target)
	if err != nil {
		return nil, err
	}
	doc, err := p.MergedPod(ctx, ovr, types.OperationOutput, target.Pod)
	if err != nil {
		return nil, err
	}

	line := doc.Services[service].Labels[TestLabel]
	if line == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "service %s has no %s label", service, TestLabel).
			WithDetail("service", service)
	}
	command, err := shellwords.Parse(line)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid %s label on %s", TestLabel, service).
			WithDetail("service", service)
	}
	return command, nil
}

func (p *Project) composeService(cr runner.CommandRunner, ovr *types.Override, sub string, target PodOrService, options, command []string) error {
	service, err := p.singleService(ovr, target)
	if err != nil {
		return err
	}

	p.logger.Debug().
		Str("override", ovr.Name).
		Str("target", target.String()).
		Str("subcommand", sub).
		Strs("command", command).
		Msg("Running compose")
	return cr.Build(ComposeProgram).
		Args("-p", compose.ProjectName(p.name), "-f", p.OutputPodPath(target.Pod.Name), sub).
		Args(options...).
		Arg(service).
		Args(command...).
		Dir(p.RootDir()).
		Exec()
}

// singleService names the service target stands for under ovr.
func (p *Project) singleService(ovr *types.Override, target PodOrService) (string, error) {
	if target.IsService() {
		return target.Service, nil
	}
	services := target.Pod.ServicesFor(ovr.Name)
	if len(services) != 1 {
		return "", errors.Newf(errors.ErrNameResolution,
			"pod %s has %d services; name one as %s/<service>", target.Pod.Name, len(services), target.Pod.Name).
			WithDetail("pod", target.Pod.Name).
			WithDetail("services", services)
	}
	return services[0], nil
}
