package notifier

import (
	"context"

	"pr-review-reminder/internal/message"
)

// Notifier interface defines the contract for notification services
type Notifier interface {
	Notify(ctx context.Context, msg *message.ChatMessage) error
}
