package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	bk "github.com/hanksha/pitch-booking-bot/booking"
	"github.com/nats-io/nats.go"
)

const (
	DefaultSubject        = "booking.created"
	eventTypeBookingAdded = "booking.created"
)

type BookingCreatedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	RequesterID   string    `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	Phone         string    `json:"phone"`
	ResourceName  string    `json:"resource_name"`
	Location      string    `json:"location"`
	TimeSlot      string    `json:"time_slot"`
	CreatedAt     time.Time `json:"created_at"`
}

// EventPublisher publishes every booking on a NATS subject for downstream
// consumers such as reporting or payment services.
type EventPublisher struct {
	conn    Publisher
	subject string
	logger  *slog.Logger
}

func NewEventPublisher(conn Publisher, subject string) *EventPublisher {
	if len(subject) == 0 {
		subject = DefaultSubject
	}

	return &EventPublisher{
		conn:    conn,
		subject: subject,
		logger:  slog.Default().With("component", "event-publisher"),
	}
}

// ConnectNATS dials natsURL and keeps reconnecting for the life of the process.
func ConnectNATS(natsURL string) (*nats.Conn, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("pitch-booking-bot"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return nc, nil
}

func (p *EventPublisher) Name() string {
	return "nats"
}

func (p *EventPublisher) Receive(_ context.Context, event bk.Event) error {
	payload, err := json.Marshal(BookingCreatedEvent{
		EventType:     eventTypeBookingAdded,
		EventID:       event.ID,
		RequesterID:   event.RequesterID,
		RequesterName: event.RequesterName,
		Phone:         event.Phone,
		ResourceName:  event.ResourceName,
		Location:      event.Location,
		TimeSlot:      event.TimeSlot,
		CreatedAt:     event.CreatedAt,
	})

	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("failed to publish to %v: %w", p.subject, err)
	}

	p.logger.Debug("published booking event", "subject", p.subject, "event", event.ID)

	return nil
}

var _ Publisher = (*nats.Conn)(nil)
