package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/boilrkit/cli/internal/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		partial Partial
		want    TemplateSource
	}{
		{
			name:    "all defaults",
			partial: Partial{},
			want: TemplateSource{
				Repository:     DefaultRepository,
				Branch:         DefaultBranch,
				LocalCachePath: filepath.Join(os.TempDir(), "boilrkit-templates"),
			},
		},
		{
			name: "explicit values win",
			partial: Partial{
				Repository:     "acme/templates",
				Branch:         "next",
				LocalCachePath: "/var/cache/boilrkit",
			},
			want: TemplateSource{
				Repository:     "acme/templates",
				Branch:         "next",
				LocalCachePath: "/var/cache/boilrkit",
			},
		},
		{
			name:    "whitespace counts as unset",
			partial: Partial{Repository: "  ", Branch: "\t"},
			want: TemplateSource{
				Repository:     DefaultRepository,
				Branch:         DefaultBranch,
				LocalCachePath: DefaultCachePath(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.partial))
		})
	}
}

func TestResolve_IsPure(t *testing.T) {
	p := Partial{Branch: "dev"}
	assert.Equal(t, Resolve(p), Resolve(p))
}

func TestRepoURL(t *testing.T) {
	tests := []struct {
		repo   string
		want   string
		browse string
	}{
		{"jjwprotozoa/boilrkit-templates", "https://github.com/jjwprotozoa/boilrkit-templates.git", "https://github.com/jjwprotozoa/boilrkit-templates"},
		{"https://gitlab.com/acme/tpl.git", "https://gitlab.com/acme/tpl.git", "https://gitlab.com/acme/tpl.git"},
		{"git@github.com:acme/tpl.git", "git@github.com:acme/tpl.git", "git@github.com:acme/tpl.git"},
		{"/srv/git/templates", "/srv/git/templates", "/srv/git/templates"},
	}

	for _, tt := range tests {
		t.Run(tt.repo, func(t *testing.T) {
			src := Resolve(Partial{Repository: tt.repo})
			assert.Equal(t, tt.want, src.RepoURL())
			assert.Equal(t, tt.browse, src.BrowseURL())
		})
	}
}

func TestValidate(t *testing.T) {
	abs := t.TempDir()

	tests := []struct {
		name    string
		src     TemplateSource
		wantErr bool
	}{
		{"valid slug", TemplateSource{Repository: "acme/tpl", Branch: "main", LocalCachePath: abs}, false},
		{"valid url", TemplateSource{Repository: "https://example.com/tpl.git", Branch: "main", LocalCachePath: abs}, false},
		{"malformed slug", TemplateSource{Repository: "not a slug", Branch: "main", LocalCachePath: abs}, true},
		{"slug without owner", TemplateSource{Repository: "templates", Branch: "main", LocalCachePath: abs}, true},
		{"branch with spaces", TemplateSource{Repository: "acme/tpl", Branch: "my branch", LocalCachePath: abs}, true},
		{"branch looks like flag", TemplateSource{Repository: "acme/tpl", Branch: "--upload-pack", LocalCachePath: abs}, true},
		{"relative cache path", TemplateSource{Repository: "acme/tpl", Branch: "main", LocalCachePath: "tmp/cache"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.src.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrSourceConfig))
		})
	}
}

func TestString(t *testing.T) {
	src := Resolve(Partial{Repository: "acme/tpl", Branch: "next"})
	assert.Equal(t, "acme/tpl@next", src.String())
}
