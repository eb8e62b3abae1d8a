// Package notify fans a committed booking out to every registered recipient.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	bk "github.com/hanksha/pitch-booking-bot/booking"
	"github.com/hanksha/pitch-booking-bot/discord"
	"github.com/patrickmn/go-cache"
)

//go:generate mockgen -source=notify.go -destination=mocks/notify_mocks.go -package=mocks

type Recipient interface {
	Name() string
	Receive(ctx context.Context, event bk.Event) error
}

// TextSender delivers plain text to a chat.
type TextSender interface {
	SendText(ctx context.Context, conversationID, text string) error
}

type MessageSender interface {
	SendMessage(ctx context.Context, channelID string, message discord.Message) error
}

type Publisher interface {
	Publish(subject string, data []byte) error
}

// Dispatcher delivers each booking event once to every recipient. Recipients
// are registered while wiring the process and never change afterwards.
type Dispatcher struct {
	recipients []Recipient
	dispatched *cache.Cache
	logger     *slog.Logger
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		dispatched: cache.New(24*time.Hour, time.Hour),
		logger:     slog.Default().With("component", "notify"),
	}
}

func (d *Dispatcher) Register(recipient Recipient) {
	d.recipients = append(d.recipients, recipient)
}

func (d *Dispatcher) Recipients() []string {
	names := make([]string, 0, len(d.recipients))

	for _, recipient := range d.recipients {
		names = append(names, recipient.Name())
	}

	return names
}

// Notify attempts every recipient even when some fail and returns the joined
// failures. An event ID that was already dispatched is ignored.
func (d *Dispatcher) Notify(ctx context.Context, event bk.Event) error {
	if len(event.ID) != 0 {
		if err := d.dispatched.Add(event.ID, struct{}{}, cache.DefaultExpiration); err != nil {
			d.logger.Debug("event already dispatched", "event", event.ID)
			return nil
		}
	}

	var errs []error

	for _, recipient := range d.recipients {
		if err := recipient.Receive(ctx, event); err != nil {
			d.logger.Warn("recipient failed", "recipient", recipient.Name(), "event", event.ID, "err", err)
			errs = append(errs, fmt.Errorf("%v: %w", recipient.Name(), err))
		}
	}

	return errors.Join(errs...)
}

var (
	_ Recipient = (*UserNotifier)(nil)
	_ Recipient = (*AdminNotifier)(nil)
	_ Recipient = (*DiscordNotifier)(nil)
	_ Recipient = (*EventPublisher)(nil)
)
