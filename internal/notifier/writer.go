package notifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"pr-review-reminder/internal/message"
)

// WriterNotifier prints the Slack payload instead of posting it. Used for
// dry runs.
type WriterNotifier struct {
	w       io.Writer
	channel string
}

func NewWriterNotifier(w io.Writer, channel string) *WriterNotifier {
	return &WriterNotifier{w: w, channel: channel}
}

func (n *WriterNotifier) Notify(_ context.Context, msg *message.ChatMessage) error {
	payload, err := generateSlackPayload(n.channel, msg, true)
	if err != nil {
		return fmt.Errorf("error generating Slack payload: %w", err)
	}

	if _, err := n.w.Write(payload); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}

	slog.Info("Dry run, message not sent", "channel", n.channel)
	return nil
}
