package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pr-review-reminder/internal/config"
	"pr-review-reminder/internal/message"
)

const (
	teamsColorDefault = "0076D7"
	teamsColorUrgent  = "FF0000"
	teamsTimeout      = 15 * time.Second
)

// TeamsNotifier mirrors the reminder to a Microsoft Teams incoming webhook
type TeamsNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewTeamsNotifier creates a new Teams notifier
func NewTeamsNotifier(cfg *config.Config) *TeamsNotifier {
	return &TeamsNotifier{
		webhookURL: cfg.Notifiers.Teams.WebhookURL,
		client:     &http.Client{Timeout: teamsTimeout},
	}
}

// Notify sends the reminder as a MessageCard
func (t *TeamsNotifier) Notify(ctx context.Context, msg *message.ChatMessage) error {
	if len(msg.Sections) == 0 {
		return nil
	}

	payload, err := t.generateTeamsPayload(msg)
	if err != nil {
		return fmt.Errorf("error generating Teams payload: %w", err)
	}

	return t.sendTeamsNotification(ctx, payload)
}

// generateTeamsPayload creates the Teams message payload
func (t *TeamsNotifier) generateTeamsPayload(msg *message.ChatMessage) ([]byte, error) {
	sections := []map[string]interface{}{
		{
			"activityTitle": msg.Summary,
			"text":          strings.ReplaceAll(msg.Text, "\n", "<br>"),
		},
	}

	for _, section := range msg.Sections {
		var facts []map[string]interface{}
		for _, item := range section.Items {
			facts = append(facts, map[string]interface{}{
				"name":  strings.Join(item.Badges, " "),
				"value": teamsItemText(item),
			})
		}

		sections = append(sections, map[string]interface{}{
			"activityTitle": "📌 " + section.Repo,
			"facts":         facts,
		})
	}

	color := teamsColorDefault
	if msg.Urgent() {
		color = teamsColorUrgent
	}

	payload := map[string]interface{}{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": color,
		"summary":    msg.Summary,
		"sections":   sections,
	}

	return json.Marshal(payload)
}

func teamsItemText(item message.Item) string {
	text := fmt.Sprintf("[%s](%s)", item.Title, item.URL)
	if item.CallToAction != "" {
		text += "<br>" + item.CallToAction
	}
	return text
}

// sendTeamsNotification sends the notification to Microsoft Teams
func (t *TeamsNotifier) sendTeamsNotification(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create Teams request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		slog.Error("Failed to send Teams notification", "error", err)
		return fmt.Errorf("failed to send Teams notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Teams notification failed", "status", resp.StatusCode)
		return fmt.Errorf("Teams notification failed with status: %d", resp.StatusCode)
	}

	slog.Info("Teams notification sent successfully")
	return nil
}
