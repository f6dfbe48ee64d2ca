package types

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// PodType decides where an exported pod is placed.
type PodType int

const (
	PodTypeService PodType = iota
	PodTypeTask
)

func (t PodType) String() string {
	if t == PodTypeTask {
		return "task"
	}
	return "service"
}

// ParsePodType accepts "service" or "task", case-insensitively. An empty
// string is a service.
func ParsePodType(s string) (PodType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "service":
		return PodTypeService, nil
	case "task":
		return PodTypeTask, nil
	default:
		return PodTypeService, fmt.Errorf("unknown pod type %q (expected service or task)", s)
	}
}

// UnmarshalYAML lets pod config files spell the type as a plain string.
func (t *PodType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePodType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// PodConfig is the optional pods/<pod>.config.yml file.
type PodConfig struct {
	PodType PodType `yaml:"pod_type"`
}

// Pod is a group of services materialized together into one compose file.
type Pod struct {
	Name string
	Type PodType

	// BasePath is pods/<name>.yml.
	BasePath string

	// OverridePaths maps override names to pods/overrides/<ovr>/<name>.yml
	// for the overrides that carry a layer for this pod.
	OverridePaths map[string]string

	// Services declared by the base file, sorted.
	Services []string

	// LayerServices maps override names to the services their layer
	// declares that the base file does not, sorted.
	LayerServices map[string][]string
}

// LayerPaths returns the files to merge for the given override, base first.
func (p *Pod) LayerPaths(override string) []string {
	layers := []string{p.BasePath}
	if path, ok := p.OverridePaths[override]; ok {
		layers = append(layers, path)
	}
	return layers
}

// HasService reports whether the base file or any override layer declares
// the named service.
func (p *Pod) HasService(name string) bool {
	if slices.Contains(p.Services, name) {
		return true
	}
	for _, extra := range p.LayerServices {
		if slices.Contains(extra, name) {
			return true
		}
	}
	return false
}

// ServicesFor returns the services the pod has under override, sorted.
func (p *Pod) ServicesFor(override string) []string {
	extra := p.LayerServices[override]
	if len(extra) == 0 {
		return p.Services
	}
	services := slices.Concat(p.Services, extra)
	slices.Sort(services)
	return services
}

// Override is a deployment target such as development or production.
type Override struct {
	Name string
	Path string
}
