package git

import (
	"fmt"
	"strings"
)

// Remote identifies the hosting location a remote URL points at.
type Remote struct {
	Host  string // e.g. "github.com"
	Owner string // organization or user
	Repo  string // repository name, without .git
}

// ParseRemoteURL parses the common git remote URL forms:
//
//	git@github.com:owner/repo.git
//	ssh://git@github.com/owner/repo.git
//	https://github.com/owner/repo.git
func ParseRemoteURL(raw string) (*Remote, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty remote URL")
	}

	var hostPath string
	switch {
	case strings.HasPrefix(raw, "ssh://"):
		hostPath = stripPort(trimUser(strings.TrimPrefix(raw, "ssh://")))
	case strings.HasPrefix(raw, "https://"):
		hostPath = stripPort(strings.TrimPrefix(raw, "https://"))
	case strings.HasPrefix(raw, "http://"):
		hostPath = stripPort(strings.TrimPrefix(raw, "http://"))
	case strings.Contains(raw, "@") && strings.Contains(raw, ":"):
		// scp-like syntax: git@host:owner/repo.git (colon separates
		// the path, never a port)
		hostPath = trimUser(raw)
		hostPath = strings.Replace(hostPath, ":", "/", 1)
	default:
		return nil, fmt.Errorf("unrecognized remote URL %q", raw)
	}

	hostPath = strings.TrimSuffix(hostPath, ".git")
	hostPath = strings.TrimSuffix(hostPath, "/")

	parts := strings.Split(hostPath, "/")
	if len(parts) < 3 {
		return nil, fmt.Errorf("remote URL %q has no owner/repository path", raw)
	}

	return &Remote{
		Host:  parts[0],
		Owner: parts[1],
		Repo:  parts[len(parts)-1],
	}, nil
}

// ActionsURL returns the CI monitoring URL for the repository.
func (r *Remote) ActionsURL() string {
	return fmt.Sprintf("https://%s/%s/%s/actions", r.Host, r.Owner, r.Repo)
}

// String returns the owner/repo slug.
func (r *Remote) String() string {
	return r.Owner + "/" + r.Repo
}

func trimUser(s string) string {
	if i := strings.Index(s, "@"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// stripPort removes a :<port> suffix from the host part of "host/path",
// so the port never leaks into the owner segment.
func stripPort(s string) string {
	host, path, found := strings.Cut(s, "/")
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	if !found {
		return host
	}
	return host + "/" + path
}
