package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"pr-review-reminder/internal/config"
	"pr-review-reminder/internal/message"

	"github.com/slack-go/slack"
)

const postMessagePath = "/chat.postMessage"

// SlackNotifier posts the reminder to a channel through the Slack Web API
type SlackNotifier struct {
	apiURL   string
	botToken string
	channel  string
	client   *http.Client
}

type postMessageRequest struct {
	Channel string        `json:"channel"`
	Text    string        `json:"text"`
	Blocks  []slack.Block `json:"blocks"`
}

// NewSlackNotifier creates a new Slack notifier
func NewSlackNotifier(cfg *config.Config) *SlackNotifier {
	return &SlackNotifier{
		apiURL:   cfg.Slack.APIURL,
		botToken: cfg.Slack.BotToken,
		channel:  cfg.Slack.Channel,
		client:   &http.Client{Timeout: cfg.Slack.Timeout},
	}
}

// Notify sends the message with chat.postMessage
func (s *SlackNotifier) Notify(ctx context.Context, msg *message.ChatMessage) error {
	payload, err := generateSlackPayload(s.channel, msg, false)
	if err != nil {
		return fmt.Errorf("error generating Slack payload: %w", err)
	}

	return s.sendSlackMessage(ctx, payload)
}

// generateSlackPayload encodes the chat.postMessage body. HTML escaping is
// off so mrkdwn link delimiters reach Slack untouched.
func generateSlackPayload(channel string, msg *message.ChatMessage, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}

	err := enc.Encode(postMessageRequest{
		Channel: channel,
		Text:    msg.Text,
		Blocks:  msg.Blocks,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *SlackNotifier) sendSlackMessage(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+postMessagePath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create Slack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.botToken)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("Failed to send Slack notification", "error", err)
		return fmt.Errorf("failed to send Slack notification: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Slack response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("Slack notification failed", "status", resp.StatusCode)
		return fmt.Errorf("Slack notification failed with status: %d", resp.StatusCode)
	}

	var result slack.SlackResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode Slack response: %w", err)
	}
	if !result.Ok {
		slog.Error("Slack API rejected the message", "error", result.Error, "channel", s.channel)
		return fmt.Errorf("Slack API error: %s", result.Error)
	}

	slog.Info("Slack notification sent successfully", "channel", s.channel)
	return nil
}
