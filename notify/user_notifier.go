package notify

import (
	"context"
	"fmt"

	bk "github.com/hanksha/pitch-booking-bot/booking"
)

// UserNotifier confirms the booking to the person who made it. In private
// chats the requester ID is also the conversation ID.
type UserNotifier struct {
	sender TextSender
}

func NewUserNotifier(sender TextSender) *UserNotifier {
	return &UserNotifier{sender: sender}
}

func (n *UserNotifier) Name() string {
	return "user"
}

func (n *UserNotifier) Receive(ctx context.Context, event bk.Event) error {
	if len(event.RequesterID) == 0 {
		return fmt.Errorf("event %v has no requester", event.ID)
	}

	text := fmt.Sprintf("✅ Your booking is confirmed!\n\nYou've booked %v at %v (%v).\n\nSend /start to make another booking.",
		event.TimeSlot, event.ResourceName, event.Location)

	if err := n.sender.SendText(ctx, event.RequesterID, text); err != nil {
		return fmt.Errorf("failed to confirm booking to %v: %w", event.RequesterID, err)
	}

	return nil
}
