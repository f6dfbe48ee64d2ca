package plugins

import (
	"github.com/arthur-debert/conductor/pkg/compose"
	"github.com/arthur-debert/conductor/pkg/types"
)

// defaultTagsPlugin tags untagged images from the project's default tags,
// identically for both operations.
type defaultTagsPlugin struct{}

func (p *defaultTagsPlugin) Name() string { return "default_tags" }

func (p *defaultTagsPlugin) Enabled(op types.Operation, ctx *Context) bool {
	return ctx.Project.DefaultTags() != nil
}

func (p *defaultTagsPlugin) Transform(op types.Operation, ctx *Context, doc *compose.Document) error {
	tags := ctx.Project.DefaultTags()
	for _, name := range compose.ServiceNames(doc) {
		svc := doc.Services[name]
		if tagged, ok := tags.Lookup(svc.Image); ok {
			svc.Image = tagged
			doc.Services[name] = svc
		}
	}
	return nil
}
