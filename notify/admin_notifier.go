package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	bk "github.com/hanksha/pitch-booking-bot/booking"
)

// AdminNotifier alerts every configured admin chat. One unreachable admin does
// not keep the others from being alerted.
type AdminNotifier struct {
	sender   TextSender
	adminIDs []string
	logger   *slog.Logger
}

func NewAdminNotifier(sender TextSender, adminIDs []string) *AdminNotifier {
	return &AdminNotifier{
		sender:   sender,
		adminIDs: adminIDs,
		logger:   slog.Default().With("component", "admin-notifier"),
	}
}

func (n *AdminNotifier) Name() string {
	return "admin"
}

func (n *AdminNotifier) Receive(ctx context.Context, event bk.Event) error {
	text := fmt.Sprintf("🔔 New Booking Alert!\n\nUser: %v (ID: %v)\nPhone: %v\nBooked: %v at %v\nTime: %v",
		event.RequesterName, event.RequesterID, event.Phone, event.ResourceName, event.Location, event.TimeSlot)

	var errs []error

	for _, adminID := range n.adminIDs {
		if err := n.sender.SendText(ctx, adminID, text); err != nil {
			n.logger.Warn("failed to alert admin", "admin", adminID, "err", err)
			errs = append(errs, fmt.Errorf("admin %v: %w", adminID, err))
		}
	}

	return errors.Join(errs...)
}
