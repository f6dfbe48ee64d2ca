package defaulttags_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/conductor/pkg/defaulttags"
	"github.com/arthur-debert/conductor/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tagsFile = `# pinned by CI
dockercloud/hello-world:staging

postgres:16
registry.example.com:5000/team/api:1.4.2
`

func TestRead(t *testing.T) {
	dt, err := defaulttags.Read(strings.NewReader(tagsFile))
	require.NoError(t, err)
	assert.Equal(t, 3, dt.Len())
}

func TestLookup(t *testing.T) {
	dt, err := defaulttags.Read(strings.NewReader(tagsFile))
	require.NoError(t, err)

	tests := []struct {
		image  string
		want   string
		wantOK bool
	}{
		{"dockercloud/hello-world", "dockercloud/hello-world:staging", true},
		{"postgres", "postgres:16", true},
		{"docker.io/library/postgres", "postgres:16", true},
		{"registry.example.com:5000/team/api", "registry.example.com:5000/team/api:1.4.2", true},
		{"postgres:15", "postgres:15", false},
		{"redis", "redis", false},
		{"postgres@sha256:0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", "postgres@sha256:0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", false},
		{"Not A Reference", "Not A Reference", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			got, ok := dt.Lookup(tt.image)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupOnNil(t *testing.T) {
	var dt *defaulttags.DefaultTags
	got, ok := dt.Lookup("postgres")
	assert.False(t, ok)
	assert.Equal(t, "postgres", got)
}

func TestReadRejectsUntaggedAndInvalid(t *testing.T) {
	_, err := defaulttags.Read(strings.NewReader("postgres\n"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	_, err = defaulttags.Read(strings.NewReader("not a reference:tag\n"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}
