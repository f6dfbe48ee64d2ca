package project

import (
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/arthur-debert/conductor/pkg/repos"
	"github.com/arthur-debert/conductor/pkg/runner"
)

// SourceStatus describes one repo for listing.
type SourceStatus struct {
	Alias   string
	LibKey  string
	Context string
	Path    string
	Cloned  bool
	Mounted bool
}

// SourceList reports every repo's clone and mount state, in discovery
// order.
func (p *Project) SourceList() ([]SourceStatus, error) {
	all := p.repos.All()
	out := make([]SourceStatus, 0, len(all))
	for _, repo := range all {
		mounted, err := repo.IsMounted()
		if err != nil {
			return nil, err
		}
		out = append(out, SourceStatus{
			Alias:   repo.Alias,
			LibKey:  repo.LibKey,
			Context: repo.Context,
			Path:    repo.Path(),
			Cloned:  repo.IsCloned(),
			Mounted: mounted,
		})
	}
	return out, nil
}

func (p *Project) repoOrErr(alias string) (*repos.Repo, error) {
	repo := p.repos.FindByAlias(alias)
	if repo == nil {
		return nil, errors.Newf(errors.ErrNotFound, "no source repo with alias %s", alias).
			WithDetail("alias", alias)
	}
	return repo, nil
}

// SourceClone clones the repo with the given alias into the src dir.
func (p *Project) SourceClone(cr runner.CommandRunner, alias string) error {
	repo, err := p.repoOrErr(alias)
	if err != nil {
		return err
	}
	return repo.Clone(cr)
}

// SourceSetMounted mounts or unmounts a repo. Mounting a repo that has
// not been cloned clones it first.
func (p *Project) SourceSetMounted(cr runner.CommandRunner, alias string, mounted bool) error {
	repo, err := p.repoOrErr(alias)
	if err != nil {
		return err
	}
	if mounted && !repo.IsCloned() {
		if err := repo.Clone(cr); err != nil {
			return err
		}
	}
	if err := repo.SetMounted(mounted); err != nil {
		return err
	}
	p.logger.Info().Str("alias", alias).Bool("mounted", mounted).Msg("Source mount changed")
	return nil
}
