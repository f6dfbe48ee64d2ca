package project

import (
	"strings"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/types"
)

// PodOrService is a resolved command target: a whole pod, or one service
// inside it.
type PodOrService struct {
	Pod *types.Pod

	// Service is empty when the target is the whole pod.
	Service string
}

// IsService reports whether the target is a single service.
func (ps PodOrService) IsService() bool {
	return ps.Service != ""
}

// String returns "pod" or "pod/service".
func (ps PodOrService) String() string {
	if ps.IsService() {
		return ps.Pod.Name + "/" + ps.Service
	}
	return ps.Pod.Name
}

// PodOrServiceOrErr resolves name. Pod names win. Otherwise name may be
// "pod/service" or a bare service name declared by exactly one pod.
func (p *Project) PodOrServiceOrErr(name string) (PodOrService, error) {
	if pod := p.Pod(name); pod != nil {
		return PodOrService{Pod: pod}, nil
	}

	if podName, service, ok := strings.Cut(name, "/"); ok {
		if pod := p.Pod(podName); pod != nil && pod.HasService(service) {
			return PodOrService{Pod: pod, Service: service}, nil
		}
		return PodOrService{}, noSuchTarget(name)
	}

	var matches []*types.Pod
	for _, pod := range p.pods {
		if pod.HasService(name) {
			matches = append(matches, pod)
		}
	}

	switch len(matches) {
	case 0:
		return PodOrService{}, noSuchTarget(name)
	case 1:
		return PodOrService{Pod: matches[0], Service: name}, nil
	default:
		pods := make([]string, 0, len(matches))
		for _, pod := range matches {
			pods = append(pods, pod.Name)
		}
		return PodOrService{}, errors.Newf(errors.ErrNameResolution,
			"service %s is defined in pods %s; use pod/service", name, strings.Join(pods, ", ")).
			WithDetail("name", name).
			WithDetail("pods", pods)
	}
}

func noSuchTarget(name string) error {
	return errors.Newf(errors.ErrNameResolution, "no such pod or service: %s", name).
		WithDetail("name", name)
}
