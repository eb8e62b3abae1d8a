// Package api exposes the HTTP surface of the bot: health checks, the
// Telegram webhook and a read-only admin view of the inventory.
package api

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	bk "github.com/hanksha/pitch-booking-bot/booking"
)

//go:generate mockgen -source=api.go -destination=mocks/api_mocks.go -package=mocks

type BookingService interface {
	Locations(ctx context.Context) ([]string, error)
	Availability(ctx context.Context, location string) ([]bk.Availability, error)
	FindBookings(ctx context.Context, filter bk.BookingFilter) ([]bk.Booking, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// UpdateDispatcher takes ownership of a webhook update. Dispatch must not
// block on handling it.
type UpdateDispatcher interface {
	Dispatch(ctx context.Context, update tgbotapi.Update)
}
