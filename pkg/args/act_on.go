// Package args turns command operands into project targets.
package args

import (
	"iter"

	"github.com/arthur-debert/conductor/pkg/project"
)

// ActOn names the pods or services a command applies to. The zero value
// means all pods.
type ActOn struct {
	names []string
}

// All acts on every pod in the project.
func All() ActOn {
	return ActOn{}
}

// Named acts on the given pods or services, in order. Duplicates are kept.
func Named(names ...string) ActOn {
	return ActOn{names: append([]string(nil), names...)}
}

// FromArgs is All for no operands and Named otherwise.
func FromArgs(operands []string) ActOn {
	if len(operands) == 0 {
		return All()
	}
	return Named(operands...)
}

// IsAll reports whether every pod is targeted.
func (a ActOn) IsAll() bool {
	return len(a.names) == 0
}

// Names returns the named operands, or nil for All.
func (a ActOn) Names() []string {
	return a.names
}

// PodsOrServices resolves the targets against p each time the sequence is
// iterated. A name that does not resolve yields its error in place and
// enumeration continues with the next name.
func (a ActOn) PodsOrServices(p *project.Project) iter.Seq2[project.PodOrService, error] {
	return func(yield func(project.PodOrService, error) bool) {
		if a.IsAll() {
			for _, pod := range p.Pods() {
				if !yield(project.PodOrService{Pod: pod}, nil) {
					return
				}
			}
			return
		}

		for _, name := range a.names {
			if !yield(p.PodOrServiceOrErr(name)) {
				return
			}
		}
	}
}
