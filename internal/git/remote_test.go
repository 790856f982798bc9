package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		host  string
		owner string
		repo  string
	}{
		{
			name:  "scp-like ssh",
			url:   "git@github.com:rhiza-project/demo.git",
			host:  "github.com",
			owner: "rhiza-project",
			repo:  "demo",
		},
		{
			name:  "ssh scheme",
			url:   "ssh://git@github.com/rhiza-project/demo.git",
			host:  "github.com",
			owner: "rhiza-project",
			repo:  "demo",
		},
		{
			name:  "https",
			url:   "https://github.com/rhiza-project/demo.git",
			host:  "github.com",
			owner: "rhiza-project",
			repo:  "demo",
		},
		{
			name:  "https without .git",
			url:   "https://github.com/rhiza-project/demo",
			host:  "github.com",
			owner: "rhiza-project",
			repo:  "demo",
		},
		{
			name:  "ssh scheme with port",
			url:   "ssh://git@git.example.org:2222/rhiza-project/demo.git",
			host:  "git.example.org",
			owner: "rhiza-project",
			repo:  "demo",
		},
		{
			name:  "https with port",
			url:   "https://git.example.org:8443/rhiza-project/demo.git",
			host:  "git.example.org",
			owner: "rhiza-project",
			repo:  "demo",
		},
		{
			name:  "self-hosted",
			url:   "git@git.example.org:tools/release-kit.git",
			host:  "git.example.org",
			owner: "tools",
			repo:  "release-kit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, err := ParseRemoteURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.host, remote.Host)
			assert.Equal(t, tt.owner, remote.Owner)
			assert.Equal(t, tt.repo, remote.Repo)
		})
	}
}

func TestParseRemoteURLInvalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "no path", url: "https://github.com"},
		{name: "local path", url: "/srv/git/demo.git"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRemoteURL(tt.url)
			require.Error(t, err)
		})
	}
}

func TestActionsURL(t *testing.T) {
	remote := &Remote{Host: "github.com", Owner: "rhiza-project", Repo: "demo"}
	assert.Equal(t, "https://github.com/rhiza-project/demo/actions", remote.ActionsURL())
	assert.Equal(t, "rhiza-project/demo", remote.String())
}
