package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"pr-review-reminder/internal/config"
	"pr-review-reminder/pkg/models"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// Client fetches pull requests from GitHub or GitHub Enterprise Server
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub client. A non-empty token is sent as a
// bearer credential on every request. An *http.Client stored in ctx under
// oauth2.HTTPClient is used as the base transport.
func NewClient(ctx context.Context, cfg *config.Config) *Client {
	httpClient := &http.Client{Timeout: cfg.GitHub.Timeout}
	if base, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && base != nil {
		httpClient.Transport = base.Transport
	}
	if cfg.GitHub.Token != "" {
		httpClient.Transport = &oauth2.Transport{
			Base:   httpClient.Transport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHub.Token}),
		}
	}

	return &Client{client: github.NewClient(httpClient)}
}

// ListOpenPulls fetches the first page of open pull requests for the
// repository whose API base is apiBase (see APIURL)
func (c *Client) ListOpenPulls(ctx context.Context, apiBase string) ([]models.PullRequest, error) {
	url := strings.TrimSuffix(apiBase, "/") + "/pulls"

	req, err := c.client.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	var prs []models.PullRequest
	resp, err := c.client.Do(ctx, req, &prs)
	if err != nil {
		return nil, fmt.Errorf("error fetching PRs (URL: %s): %w", url, err)
	}
	slog.Debug("Fetched pull requests", "url", url, "status", resp.StatusCode, "total", len(prs))

	return prs, nil
}
