// Package defaulttags supplies image tags for images that are referenced
// without one.
//
// The policy is read from a line-oriented file, typically produced by CI,
// with one fully tagged image reference per line:
//
//	# comments and blank lines are ignored
//	dockercloud/hello-world:staging
//	registry.example.com/team/api:1.4.2
package defaulttags

import (
	"bufio"
	"io"
	"strings"

	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/distribution/reference"
)

// DefaultTags maps image names to the tag to use when none is given.
type DefaultTags struct {
	tags map[string]reference.NamedTagged
}

// Read parses a default tags file.
func Read(r io.Reader) (*DefaultTags, error) {
	dt := &DefaultTags{tags: map[string]reference.NamedTagged{}}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		named, err := reference.ParseNormalizedNamed(line)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid image on line %d: %q", lineNo, line).
				WithDetail("line", lineNo)
		}
		tagged, ok := named.(reference.NamedTagged)
		if !ok {
			return nil, errors.Newf(errors.ErrConfigParse, "image on line %d has no tag: %q", lineNo, line).
				WithDetail("line", lineNo)
		}
		dt.tags[named.Name()] = tagged
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileRead, "cannot read default tags")
	}
	return dt, nil
}

// Len returns the number of images with a default tag.
func (dt *DefaultTags) Len() int {
	return len(dt.tags)
}

// Lookup returns image with its default tag applied. Images that already
// carry a tag or digest, unknown images, and unparseable references are
// returned unchanged with ok set to false.
func (dt *DefaultTags) Lookup(image string) (string, bool) {
	if dt == nil || image == "" {
		return image, false
	}
	named, err := reference.ParseNormalizedNamed(image)
	if err != nil || !reference.IsNameOnly(named) {
		return image, false
	}
	tagged, ok := dt.tags[named.Name()]
	if !ok {
		return image, false
	}
	withTag, err := reference.WithTag(named, tagged.Tag())
	if err != nil {
		return image, false
	}
	return reference.FamiliarString(withTag), true
}
