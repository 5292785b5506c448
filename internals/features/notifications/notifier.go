// Package notifications delivers best-effort user notifications.
// Delivery failures never fail the request that triggered them.
package notifications

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	UserID  uuid.UUID
	Title   string
	Message string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Dispatch sends in the background, detached from the request context.
// Errors are logged and dropped.
func Dispatch(n Notifier, notif Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.Notify(ctx, notif); err != nil {
			log.Printf("[WARN] notification to %s failed: %v", notif.UserID, err)
		}
	}()
}

/* =========================
   Log-based implementation
========================= */

type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (LogNotifier) Notify(_ context.Context, n Notification) error {
	log.Printf("[NOTIFY] user=%s title=%q message=%q", n.UserID, n.Title, n.Message)
	return nil
}
