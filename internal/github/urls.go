package github

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedRepoURL is returned when a repository URL has no owner/name path
var ErrMalformedRepoURL = errors.New("malformed repository URL")

const (
	publicHost    = "github.com"
	publicAPIBase = "https://api.github.com/repos/"
)

var schemeRe = regexp.MustCompile(`^https?://`)

// APIURL converts a repository web URL into the REST API base for that
// repository. github.com maps to api.github.com; any other host is treated
// as a GitHub Enterprise Server instance.
//
//	https://github.com/owner/name      -> https://api.github.com/repos/owner/name
//	https://ghe.example.com/owner/name -> https://ghe.example.com/api/v3/repos/owner/name
func APIURL(repoURL string) (string, error) {
	trimmed := strings.TrimSuffix(schemeRe.ReplaceAllString(repoURL, ""), "/")

	host, path, found := strings.Cut(trimmed, "/")
	if !found || host == "" || path == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedRepoURL, repoURL)
	}

	if host == publicHost {
		return publicAPIBase + path, nil
	}
	return fmt.Sprintf("https://%s/api/v3/repos/%s", host, path), nil
}

// RepoName returns the display name of a repository: the last path segment
// of its URL
func RepoName(repoURL string) string {
	trimmed := strings.TrimSuffix(repoURL, "/")
	return trimmed[strings.LastIndex(trimmed, "/")+1:]
}
