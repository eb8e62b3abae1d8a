// Package conversation drives one booking dialogue per chat: location, pitch,
// time slot, confirmation, name and phone, then a single append to the store.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	bk "github.com/hanksha/pitch-booking-bot/booking"
)

//go:generate mockgen -source=machine.go -destination=mocks/machine_mocks.go -package=mocks

// Store is the part of booking.Store the dialogue reads and writes.
type Store interface {
	ListResources(ctx context.Context) ([]bk.Resource, error)
	ListBookings(ctx context.Context) ([]bk.Booking, error)
	AppendBooking(ctx context.Context, booking bk.Booking) error
}

type Gateway interface {
	SendMenu(ctx context.Context, conversationID, text string, options []Option) error
	SendText(ctx context.Context, conversationID, text string) error
	// EditLastMenu replaces the last menu shown in the conversation. A nil
	// options slice removes the buttons.
	EditLastMenu(ctx context.Context, conversationID, text string, options []Option) error
}

type Notifier interface {
	Notify(ctx context.Context, event bk.Event) error
}

type stateHandler func(ctx context.Context, session *Session, event Event) (State, error)

type Machine struct {
	store    Store
	gateway  Gateway
	notifier Notifier
	sessions *SessionStore
	handlers map[State]stateHandler
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

func NewMachine(store Store, gateway Gateway, notifier Notifier, sessions *SessionStore) *Machine {
	m := &Machine{
		store:    store,
		gateway:  gateway,
		notifier: notifier,
		sessions: sessions,
		logger:   slog.Default().With("component", "conversation"),
		now:      time.Now,
		newID:    uuid.NewString,
	}

	m.handlers = map[State]stateHandler{
		StateEntry:           m.handleStart,
		AwaitingLocation:     m.handleLocation,
		AwaitingResource:     m.handleResource,
		AwaitingTimeSlot:     m.handleTimeSlot,
		AwaitingConfirmation: m.handleConfirmation,
		AwaitingName:         m.handleName,
		AwaitingPhone:        m.handlePhone,
	}

	return m
}

// Handle applies one event to the session of its sender in its conversation.
// Events of a single conversation must not be handled concurrently; distinct
// conversations may.
//
// Failures are reported to the user and end the conversation; the returned
// error is the classified cause, for logging at the boundary. A slot taken by
// someone else meanwhile ends the conversation cleanly with ErrValidation.
func (m *Machine) Handle(ctx context.Context, event Event) error {
	if event.isStart() {
		session := m.sessions.Create(event.ConversationID, event.UserID)
		session.UserName = event.UserName

		return m.dispatch(ctx, session, event)
	}

	if event.isCancel() {
		return m.cancel(ctx, event)
	}

	session, ok := m.sessions.Get(event.ConversationID, event.UserID)

	if !ok {
		return m.text(ctx, event.ConversationID, msgNoSession)
	}

	return m.dispatch(ctx, session, event)
}

func (m *Machine) dispatch(ctx context.Context, session *Session, event Event) error {
	handler, ok := m.handlers[session.State]

	if !ok {
		return m.abort(ctx, session, fmt.Errorf("%w: no handler for state %v", ErrInvariantViolation, session.State))
	}

	from := session.State
	next, err := handler(ctx, session, event)

	switch {
	case err == nil:
	case errors.Is(err, ErrValidation):
		// the user has been told; the conversation just ends
		m.logger.Warn("selection no longer valid", "conversation", session.ConversationID, "state", from, "err", err)
		next = Terminated
	default:
		return m.abort(ctx, session, err)
	}

	if next == Terminated {
		m.sessions.Clear(session.ConversationID, session.UserID)
	} else {
		session.State = next
		m.sessions.Save(session)
	}

	if next != from {
		m.logger.Debug("transition", "conversation", session.ConversationID, "from", from, "to", next)
	}

	return err
}

func (m *Machine) cancel(ctx context.Context, event Event) error {
	_, ok := m.sessions.Get(event.ConversationID, event.UserID)
	m.sessions.Clear(event.ConversationID, event.UserID)

	if !ok {
		return m.text(ctx, event.ConversationID, msgNothingToCancel)
	}

	m.logger.Info("booking cancelled", "conversation", event.ConversationID)

	if event.Kind == ButtonTapped {
		return m.edit(ctx, event.ConversationID, msgCancelled, nil)
	}

	return m.text(ctx, event.ConversationID, msgCancelled)
}

// abort discards the session and tells the user something went wrong.
func (m *Machine) abort(ctx context.Context, session *Session, cause error) error {
	m.sessions.Clear(session.ConversationID, session.UserID)

	attrs := []any{"conversation", session.ConversationID, "state", session.State, "err", cause}

	switch {
	case errors.Is(cause, ErrInvariantViolation):
		m.logger.Error("conversation reached an inconsistent state", attrs...)
	case errors.Is(cause, bk.ErrStoreUnavailable):
		m.logger.Error("store failure during conversation", attrs...)
	case errors.Is(cause, ErrGateway):
		m.logger.Warn("messaging failure during conversation", attrs...)
	default:
		m.logger.Error("conversation failed", attrs...)
	}

	message := msgGenericError

	if errors.Is(cause, errCommitFailed) {
		message = msgCommitFailed
	}

	if err := m.text(ctx, session.ConversationID, message); err != nil {
		return errors.Join(cause, err)
	}

	return cause
}

func (m *Machine) menu(ctx context.Context, conversationID, text string, options []Option) error {
	if err := m.gateway.SendMenu(ctx, conversationID, text, options); err != nil {
		return fmt.Errorf("%w: failed to send menu: %w", ErrGateway, err)
	}

	return nil
}

func (m *Machine) edit(ctx context.Context, conversationID, text string, options []Option) error {
	if err := m.gateway.EditLastMenu(ctx, conversationID, text, options); err != nil {
		return fmt.Errorf("%w: failed to edit menu: %w", ErrGateway, err)
	}

	return nil
}

func (m *Machine) text(ctx context.Context, conversationID, text string) error {
	if err := m.gateway.SendText(ctx, conversationID, text); err != nil {
		return fmt.Errorf("%w: failed to send text: %w", ErrGateway, err)
	}

	return nil
}

// withCancel appends the cancel button to a menu.
func withCancel(options []Option) []Option {
	return append(options, Option{Label: labelCancel, Token: TokenCancel})
}
