package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pr-review-reminder/internal/github"
	"pr-review-reminder/internal/message"
	"pr-review-reminder/internal/notifier"
	"pr-review-reminder/pkg/models"
)

var (
	// ErrConfig marks a run aborted before any fetch because of bad input
	ErrConfig = errors.New("configuration error")
	// ErrDelivery marks a failure to post the reminder
	ErrDelivery = errors.New("delivery error")
)

// Fetcher lists the open pull requests of one repository
type Fetcher interface {
	ListOpenPulls(ctx context.Context, apiBase string) ([]models.PullRequest, error)
}

// Summary reports what a run did
type Summary struct {
	Repositories int
	Failed       int
	PullRequests int
	Sent         bool
}

// Runner collects open pull requests across repositories and posts a single
// reminder to every notifier
type Runner struct {
	repoURLs  []string
	fetcher   Fetcher
	builder   *message.Builder
	notifiers []notifier.Notifier
}

func NewRunner(repoURLs []string, fetcher Fetcher, builder *message.Builder, notifiers ...notifier.Notifier) *Runner {
	return &Runner{
		repoURLs:  repoURLs,
		fetcher:   fetcher,
		builder:   builder,
		notifiers: notifiers,
	}
}

type repository struct {
	name    string
	apiBase string
}

// Run executes one reminder cycle. Repositories that fail to fetch are
// skipped; when nothing is left to report no message is sent.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	repos, err := r.resolve()
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Repositories: len(repos)}
	var all []models.PullRequest

	for _, repo := range repos {
		slog.Info("Fetching open PRs for repository", "repo", repo.name)
		prs, err := r.fetcher.ListOpenPulls(ctx, repo.apiBase)
		if err != nil {
			slog.Warn("Failed to fetch PRs for repository", "repo", repo.name, "error", err)
			summary.Failed++
			continue
		}
		slog.Info("Total open PRs", "repo", repo.name, "total", len(prs))

		for _, pr := range prs {
			pr.Repo = repo.name
			slog.Debug("Open PR", "repo", repo.name, "title", pr.Title, "labels", pr.LabelNames())
			all = append(all, pr)
		}
	}
	summary.PullRequests = len(all)

	if len(all) == 0 {
		slog.Info("No PRs found for review.")
		return summary, nil
	}

	msg := r.builder.Build(all)
	slog.Info("Sending review reminder", "prs", len(all), "summary", msg.Summary)

	for _, n := range r.notifiers {
		if err := n.Notify(ctx, msg); err != nil {
			return summary, fmt.Errorf("%w: %w", ErrDelivery, err)
		}
	}
	summary.Sent = true

	return summary, nil
}

func (r *Runner) resolve() ([]repository, error) {
	repos := make([]repository, 0, len(r.repoURLs))
	for _, u := range r.repoURLs {
		apiBase, err := github.APIURL(u)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		repos = append(repos, repository{name: github.RepoName(u), apiBase: apiBase})
	}
	return repos, nil
}
