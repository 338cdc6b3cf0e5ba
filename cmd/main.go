package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"pr-review-reminder/internal/config"
	"pr-review-reminder/internal/github"
	"pr-review-reminder/internal/i18n"
	"pr-review-reminder/internal/logger"
	"pr-review-reminder/internal/message"
	"pr-review-reminder/internal/notifier"
	"pr-review-reminder/internal/reminder"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

var Version = "dev"

type options struct {
	configPath string
	dryRun     bool
}

func main() {
	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())

	// Handle graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		<-sigs
		slog.Info("Shutting down gracefully...")
		cancel()
	}()

	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute runs the root command and logs any failure through the logger the
// command installed. It returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		slog.Error("Application error", "error", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pr-review-reminder",
		Short: "Post a reminder of open pull requests to Slack",
		Long: `pr-review-reminder collects the open pull requests of one or more GitHub repositories,
groups them by repository and posts a single reminder to a Slack channel, flagging
pull requests that carry urgency labels.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if !cmd.Flags().Changed("config") {
				if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
					path = ""
				}
			}

			cfg, err := config.Load(path)
			if err != nil {
				initLogger(config.LogOnly(), stdout, stderr)
				return err
			}
			if opts.dryRun {
				cfg.DryRun = true
			}

			initLogger(cfg, stdout, stderr)
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", defaultConfigPath, "Path to the YAML configuration file")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the Slack payload instead of posting it")

	return cmd
}

func initLogger(cfg *config.Config, stdout, stderr io.Writer) {
	// Keep stdout clean for the payload on dry runs
	if cfg.DryRun {
		logger.Init(cfg, stderr)
		return
	}
	logger.Init(cfg, stdout)
}

// run performs one reminder cycle
func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	repoURLs := cfg.RepositoryURLs()
	slog.Info("PR review reminder started",
		"version", Version,
		"repositories", len(repoURLs),
		"channel", cfg.Slack.Channel,
		"language", cfg.Message.Language,
		"badge_mode", cfg.Message.BadgeMode,
		"dry_run", cfg.DryRun)

	translations, err := i18n.NewTranslations(cfg.Message.Language)
	if err != nil {
		return fmt.Errorf("%w: %w", reminder.ErrConfig, err)
	}
	if err := translations.SetLanguage(cfg.Message.Language); err != nil {
		slog.Warn("No bundled messages for language, falling back to English",
			"language", cfg.Message.Language,
			"available", translations.Languages())
	}

	builder := message.NewBuilder(
		translations,
		message.NewTiers(cfg.Message.UrgencyLabels, cfg.Message.UrgentLabels),
		message.BadgeMode(cfg.Message.BadgeMode),
	)

	// Initialize notifiers
	var notifiers []notifier.Notifier
	if cfg.DryRun {
		notifiers = append(notifiers, notifier.NewWriterNotifier(stdout, cfg.Slack.Channel))
	} else {
		notifiers = append(notifiers, notifier.NewSlackNotifier(cfg))
		if cfg.Notifiers.Teams.WebhookURL != "" {
			notifiers = append(notifiers, notifier.NewTeamsNotifier(cfg))
		}
	}

	runner := reminder.NewRunner(repoURLs, github.NewClient(ctx, cfg), builder, notifiers...)
	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("PR review reminder finished",
		"repositories", summary.Repositories,
		"failed", summary.Failed,
		"pull_requests", summary.PullRequests,
		"sent", summary.Sent)
	return nil
}
