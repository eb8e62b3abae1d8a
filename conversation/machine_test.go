package conversation_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	bk "github.com/hanksha/pitch-booking-bot/booking"
	"github.com/hanksha/pitch-booking-bot/conversation"
	cv_mocks "github.com/hanksha/pitch-booking-bot/conversation/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var inventory = []bk.Resource{
	{Location: "Downtown", Name: "FieldA", TimeSlots: []string{"18:00", "19:00"}},
	{Location: "Downtown", Name: "FieldB", TimeSlots: []string{"20:00"}},
	{Location: "Uptown", Name: "FieldC", TimeSlots: []string{"18:00"}},
}

type testDeps struct {
	store    *cv_mocks.MockStore
	gateway  *cv_mocks.MockGateway
	notifier *cv_mocks.MockNotifier
	sessions *conversation.SessionStore
	machine  *conversation.Machine
	ctx      context.Context
}

func newTestDeps(t *testing.T) (*gomock.Controller, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	store := cv_mocks.NewMockStore(ctrl)
	gateway := cv_mocks.NewMockGateway(ctrl)
	notifier := cv_mocks.NewMockNotifier(ctrl)
	sessions := conversation.NewSessionStore(time.Minute)

	return ctrl, testDeps{
		store:    store,
		gateway:  gateway,
		notifier: notifier,
		sessions: sessions,
		machine:  conversation.NewMachine(store, gateway, notifier, sessions),
		ctx:      context.Background(),
	}
}

// seed puts a session for "c1" in state with every field a later state needs.
func (d testDeps) seed(state conversation.State) *conversation.Session {
	session := d.sessions.Create("c1", "42")
	session.UserID = "42"
	session.UserName = "omar"
	session.State = state
	session.Location = "Downtown"
	session.ResourceName = "FieldA"
	session.OfferedSlots = []string{"18:00", "19:00"}
	session.TimeSlot = "19:00"
	session.Name = "Omar"
	d.sessions.Save(session)

	return session
}

func (d testDeps) state(t *testing.T) (conversation.State, bool) {
	t.Helper()
	session, ok := d.sessions.Get("c1", "42")

	if !ok {
		return conversation.Terminated, false
	}

	return session.State, true
}

type containsMatcher string

func (m containsMatcher) Matches(x any) bool {
	text, ok := x.(string)
	return ok && strings.Contains(text, string(m))
}

func (m containsMatcher) String() string {
	return fmt.Sprintf("contains %q", string(m))
}

func contains(substr string) gomock.Matcher {
	return containsMatcher(substr)
}

func command(name string) conversation.Event {
	return conversation.Event{Kind: conversation.CommandReceived, ConversationID: "c1", UserID: "42", UserName: "omar", Command: name}
}

func tap(token string) conversation.Event {
	return conversation.Event{Kind: conversation.ButtonTapped, ConversationID: "c1", UserID: "42", UserName: "omar", Token: token}
}

func text(value string) conversation.Event {
	return conversation.Event{Kind: conversation.TextReceived, ConversationID: "c1", UserID: "42", UserName: "omar", Text: value}
}

var errStoreDown = fmt.Errorf("%w: connection refused", bk.ErrStoreUnavailable)

func TestStart(t *testing.T) {

	t.Run("success", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		want := []conversation.Option{
			{Label: "Downtown", Token: "location:Downtown"},
			{Label: "Uptown", Token: "location:Uptown"},
			{Label: "Cancel", Token: conversation.TokenCancel},
		}

		deps.store.EXPECT().ListResources(deps.ctx).Return(inventory, nil).Times(1)
		deps.gateway.EXPECT().SendMenu(deps.ctx, "c1", contains("omar"), want).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, command(conversation.CommandStart))

		require.NoError(t, err)

		state, ok := deps.state(t)
		require.True(t, ok)
		require.Equal(t, conversation.AwaitingLocation, state)

		session, _ := deps.sessions.Get("c1", "42")
		require.Equal(t, "42", session.UserID)
	})

	t.Run("no locations", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.store.EXPECT().ListResources(deps.ctx).Return([]bk.Resource{}, nil).Times(1)
		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("No locations")).Return(nil).Times(1)
		deps.gateway.EXPECT().SendMenu(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := deps.machine.Handle(deps.ctx, command(conversation.CommandStart))

		require.NoError(t, err)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("store error", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.store.EXPECT().ListResources(deps.ctx).Return(nil, errStoreDown).Times(1)
		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("error occurred")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, command(conversation.CommandStart))

		require.ErrorIs(t, err, bk.ErrStoreUnavailable)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("book alias replaces a session in progress", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingPhone)

		deps.store.EXPECT().ListResources(deps.ctx).Return(inventory, nil).Times(1)
		deps.gateway.EXPECT().SendMenu(deps.ctx, "c1", gomock.Any(), gomock.Any()).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, command(conversation.CommandBook))

		require.NoError(t, err)

		session, ok := deps.sessions.Get("c1", "42")
		require.True(t, ok)
		require.Equal(t, conversation.AwaitingLocation, session.State)
		require.Empty(t, session.ResourceName)
		require.Empty(t, session.TimeSlot)
		require.Empty(t, session.Name)
	})

	t.Run("gateway error", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.store.EXPECT().ListResources(deps.ctx).Return(inventory, nil).Times(1)
		deps.gateway.EXPECT().SendMenu(deps.ctx, "c1", gomock.Any(), gomock.Any()).Return(errors.New("bad request")).Times(1)
		deps.gateway.EXPECT().SendText(deps.ctx, "c1", gomock.Any()).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, command(conversation.CommandStart))

		require.ErrorIs(t, err, conversation.ErrGateway)

		_, ok := deps.state(t)
		require.False(t, ok)
	})
}

func TestLocationSelection(t *testing.T) {

	t.Run("success", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingLocation)

		want := []conversation.Option{
			{Label: "FieldA", Token: "resource:FieldA"},
			{Label: "FieldB", Token: "resource:FieldB"},
			{Label: "Cancel", Token: conversation.TokenCancel},
		}

		deps.store.EXPECT().ListResources(deps.ctx).Return(inventory, nil).Times(1)
		deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("Downtown"), want).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.LocationToken("Downtown")))

		require.NoError(t, err)

		state, _ := deps.state(t)
		require.Equal(t, conversation.AwaitingResource, state)
	})

	t.Run("location emptied meanwhile", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingLocation)

		deps.store.EXPECT().ListResources(deps.ctx).Return(inventory[2:], nil).Times(1)
		deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("No pitches available in Downtown"), nil).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.LocationToken("Downtown")))

		require.NoError(t, err)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("text instead of a button", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingLocation)

		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("choose one of the options")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, text("Downtown"))

		require.NoError(t, err)

		state, _ := deps.state(t)
		require.Equal(t, conversation.AwaitingLocation, state)
	})

	t.Run("stale button from another step", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingLocation)

		deps.gateway.EXPECT().SendText(deps.ctx, "c1", gomock.Any()).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.SlotToken("18:00")))

		require.NoError(t, err)

		state, _ := deps.state(t)
		require.Equal(t, conversation.AwaitingLocation, state)
	})
}

func TestResourceSelection(t *testing.T) {

	t.Run("offers free slots only", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingResource)

		booked := []bk.Booking{{ResourceName: "FieldA", TimeSlot: "18:00", Status: bk.StatusBooked}}
		want := []conversation.Option{
			{Label: "19:00", Token: "slot:19:00"},
			{Label: "Cancel", Token: conversation.TokenCancel},
		}

		deps.store.EXPECT().ListResources(deps.ctx).Return(inventory, nil).Times(1)
		deps.store.EXPECT().ListBookings(deps.ctx).Return(booked, nil).Times(1)
		deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("FieldA"), want).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.ResourceToken("FieldA")))

		require.NoError(t, err)

		session, ok := deps.sessions.Get("c1", "42")
		require.True(t, ok)
		require.Equal(t, conversation.AwaitingTimeSlot, session.State)
		require.Equal(t, []string{"19:00"}, session.OfferedSlots)
	})

	t.Run("fully booked", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingResource)

		booked := []bk.Booking{{ResourceName: "FieldB", TimeSlot: "20:00", Status: bk.StatusBooked}}

		deps.store.EXPECT().ListResources(deps.ctx).Return(inventory, nil).Times(1)
		deps.store.EXPECT().ListBookings(deps.ctx).Return(booked, nil).Times(1)
		deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("No available time slots for FieldB"), nil).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.ResourceToken("FieldB")))

		require.NoError(t, err)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("resource from another location", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingResource)

		deps.store.EXPECT().ListResources(deps.ctx).Return(inventory, nil).Times(1)
		deps.store.EXPECT().ListBookings(gomock.Any()).Times(0)
		deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("FieldC"), nil).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.ResourceToken("FieldC")))

		require.NoError(t, err)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("missing location", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		session := deps.seed(conversation.AwaitingResource)
		session.Location = ""

		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("error occurred")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.ResourceToken("FieldA")))

		require.ErrorIs(t, err, conversation.ErrInvariantViolation)

		_, ok := deps.state(t)
		require.False(t, ok)
	})
}

func TestTimeSlotSelection(t *testing.T) {

	t.Run("success", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		session := deps.seed(conversation.AwaitingTimeSlot)
		session.TimeSlot = ""

		want := []conversation.Option{
			{Label: "Confirm Booking", Token: conversation.ConfirmToken(true)},
			{Label: "Cancel", Token: conversation.TokenCancel},
		}

		deps.store.EXPECT().ListBookings(deps.ctx).Return([]bk.Booking{}, nil).Times(1)
		deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("18:00 at FieldA in Downtown"), want).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.SlotToken("18:00")))

		require.NoError(t, err)

		session, ok := deps.sessions.Get("c1", "42")
		require.True(t, ok)
		require.Equal(t, conversation.AwaitingConfirmation, session.State)
		require.Equal(t, "18:00", session.TimeSlot)
	})

	t.Run("taken since the menu was shown", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingTimeSlot)

		booked := []bk.Booking{{RequesterID: "7", ResourceName: "FieldA", TimeSlot: "19:00", Status: bk.StatusBooked}}

		deps.store.EXPECT().ListBookings(deps.ctx).Return(booked, nil).Times(1)
		deps.store.EXPECT().AppendBooking(gomock.Any(), gomock.Any()).Times(0)
		deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("no longer available"), nil).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.SlotToken("19:00")))

		require.ErrorIs(t, err, conversation.ErrValidation)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("slot never offered", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingTimeSlot)

		deps.store.EXPECT().ListBookings(gomock.Any()).Times(0)
		deps.gateway.EXPECT().SendText(deps.ctx, "c1", gomock.Any()).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.SlotToken("23:00")))

		require.NoError(t, err)

		state, _ := deps.state(t)
		require.Equal(t, conversation.AwaitingTimeSlot, state)
	})
}

func TestConfirmation(t *testing.T) {

	t.Run("confirm prompts for name", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingConfirmation)

		deps.store.EXPECT().ListBookings(deps.ctx).Return([]bk.Booking{}, nil).Times(1)
		deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("enter your name"), nil).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.ConfirmToken(true)))

		require.NoError(t, err)

		state, _ := deps.state(t)
		require.Equal(t, conversation.AwaitingName, state)
	})

	t.Run("declined", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingConfirmation)

		deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("cancelled"), nil).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.ConfirmToken(false)))

		require.NoError(t, err)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("taken before confirming", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingConfirmation)

		booked := []bk.Booking{{ResourceName: "FieldA", TimeSlot: "19:00", Status: bk.StatusBooked}}

		deps.store.EXPECT().ListBookings(deps.ctx).Return(booked, nil).Times(1)
		deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("no longer available"), nil).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.ConfirmToken(true)))

		require.ErrorIs(t, err, conversation.ErrValidation)

		_, ok := deps.state(t)
		require.False(t, ok)
	})
}

func TestNameEntry(t *testing.T) {

	t.Run("success", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		session := deps.seed(conversation.AwaitingName)
		session.Name = ""

		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("Thank you, Omar")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, text("  Omar "))

		require.NoError(t, err)

		session, _ = deps.sessions.Get("c1", "42")
		require.Equal(t, conversation.AwaitingPhone, session.State)
		require.Equal(t, "Omar", session.Name)
	})

	t.Run("blank name re-prompts", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingName)

		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("enter your name")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, text("   "))

		require.NoError(t, err)

		state, _ := deps.state(t)
		require.Equal(t, conversation.AwaitingName, state)
	})

	t.Run("button instead of text", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingName)

		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("enter your name")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, tap(conversation.ConfirmToken(true)))

		require.NoError(t, err)

		state, _ := deps.state(t)
		require.Equal(t, conversation.AwaitingName, state)
	})
}

func TestPhoneEntry(t *testing.T) {

	want := bk.Booking{
		RequesterID:   "42",
		RequesterName: "Omar",
		Phone:         "0100000000",
		ResourceName:  "FieldA",
		TimeSlot:      "19:00",
		Status:        bk.StatusBooked,
	}

	t.Run("success", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingPhone)

		deps.store.EXPECT().ListBookings(deps.ctx).Return([]bk.Booking{}, nil).Times(1)
		deps.store.EXPECT().AppendBooking(deps.ctx, want).Return(nil).Times(1)
		deps.notifier.EXPECT().Notify(deps.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, event bk.Event) error {
			require.NotEmpty(t, event.ID)
			require.Equal(t, "42", event.RequesterID)
			require.Equal(t, "Omar", event.RequesterName)
			require.Equal(t, "0100000000", event.Phone)
			require.Equal(t, "FieldA", event.ResourceName)
			require.Equal(t, "19:00", event.TimeSlot)
			require.Equal(t, "Downtown", event.Location)
			return nil
		}).Times(1)
		deps.gateway.EXPECT().SendText(deps.ctx, "c1", gomock.All(contains("saved"), gomock.Not(contains("/start")))).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, text("0100000000"))

		require.NoError(t, err)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("taken before commit", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingPhone)

		booked := []bk.Booking{{ResourceName: "FieldA", TimeSlot: "19:00", Status: bk.StatusBooked}}

		deps.store.EXPECT().ListBookings(deps.ctx).Return(booked, nil).Times(1)
		deps.store.EXPECT().AppendBooking(gomock.Any(), gomock.Any()).Times(0)
		deps.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("no longer available")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, text("0100000000"))

		require.ErrorIs(t, err, conversation.ErrValidation)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("conflict notice undelivered", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingPhone)

		booked := []bk.Booking{{ResourceName: "FieldA", TimeSlot: "19:00", Status: bk.StatusBooked}}

		deps.store.EXPECT().ListBookings(deps.ctx).Return(booked, nil).Times(1)
		deps.store.EXPECT().AppendBooking(gomock.Any(), gomock.Any()).Times(0)
		gomock.InOrder(
			deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("no longer available")).Return(errors.New("blocked")).Times(1),
			deps.gateway.EXPECT().SendText(deps.ctx, "c1", gomock.Any()).Return(nil).Times(1),
		)

		err := deps.machine.Handle(deps.ctx, text("0100000000"))

		require.ErrorIs(t, err, conversation.ErrGateway)
		require.NotErrorIs(t, err, conversation.ErrValidation)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("append error", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingPhone)

		deps.store.EXPECT().ListBookings(deps.ctx).Return([]bk.Booking{}, nil).Times(1)
		deps.store.EXPECT().AppendBooking(deps.ctx, want).Return(errStoreDown).Times(1)
		deps.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("error saving your booking")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, text("0100000000"))

		require.ErrorIs(t, err, bk.ErrStoreUnavailable)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("notification error keeps the booking", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingPhone)

		deps.store.EXPECT().ListBookings(deps.ctx).Return([]bk.Booking{}, nil).Times(1)
		deps.store.EXPECT().AppendBooking(deps.ctx, want).Return(nil).Times(1)
		deps.notifier.EXPECT().Notify(deps.ctx, gomock.Any()).Return(errors.New("admin unreachable")).Times(1)
		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("saved")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, text("0100000000"))

		require.NoError(t, err)
	})

	t.Run("blank phone re-prompts", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingPhone)

		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("phone number")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, text(""))

		require.NoError(t, err)

		state, _ := deps.state(t)
		require.Equal(t, conversation.AwaitingPhone, state)
	})

	t.Run("missing slot", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		session := deps.seed(conversation.AwaitingPhone)
		session.TimeSlot = ""

		deps.store.EXPECT().AppendBooking(gomock.Any(), gomock.Any()).Times(0)
		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("error occurred")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, text("0100000000"))

		require.ErrorIs(t, err, conversation.ErrInvariantViolation)

		_, ok := deps.state(t)
		require.False(t, ok)
	})

	t.Run("store error on recheck", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.seed(conversation.AwaitingPhone)

		deps.store.EXPECT().ListBookings(deps.ctx).Return(nil, errStoreDown).Times(1)
		deps.store.EXPECT().AppendBooking(gomock.Any(), gomock.Any()).Times(0)
		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("error occurred")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, text("0100000000"))

		require.ErrorIs(t, err, bk.ErrStoreUnavailable)
	})
}

func TestCancel(t *testing.T) {
	states := []conversation.State{
		conversation.AwaitingLocation,
		conversation.AwaitingResource,
		conversation.AwaitingTimeSlot,
		conversation.AwaitingConfirmation,
		conversation.AwaitingName,
		conversation.AwaitingPhone,
	}

	for _, state := range states {
		t.Run("command from "+state.String(), func(t *testing.T) {
			ctrl, deps := newTestDeps(t)
			defer ctrl.Finish()

			deps.seed(state)

			deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("cancelled")).Return(nil).Times(1)

			err := deps.machine.Handle(deps.ctx, command(conversation.CommandCancel))

			require.NoError(t, err)

			_, ok := deps.state(t)
			require.False(t, ok)
		})

		t.Run("button from "+state.String(), func(t *testing.T) {
			ctrl, deps := newTestDeps(t)
			defer ctrl.Finish()

			deps.seed(state)

			deps.gateway.EXPECT().EditLastMenu(deps.ctx, "c1", contains("cancelled"), nil).Return(nil).Times(1)

			err := deps.machine.Handle(deps.ctx, tap(conversation.TokenCancel))

			require.NoError(t, err)

			_, ok := deps.state(t)
			require.False(t, ok)
		})
	}

	t.Run("nothing to cancel", func(t *testing.T) {
		ctrl, deps := newTestDeps(t)
		defer ctrl.Finish()

		deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("no booking in progress")).Return(nil).Times(1)

		err := deps.machine.Handle(deps.ctx, command(conversation.CommandCancel))

		require.NoError(t, err)
	})
}

func TestNoSession(t *testing.T) {
	events := map[string]conversation.Event{
		"text":            text("hello"),
		"button":          tap(conversation.SlotToken("18:00")),
		"unknown command": command("help"),
	}

	for name, event := range events {
		t.Run(name, func(t *testing.T) {
			ctrl, deps := newTestDeps(t)
			defer ctrl.Finish()

			deps.gateway.EXPECT().SendText(deps.ctx, "c1", contains("/start")).Return(nil).Times(1)

			err := deps.machine.Handle(deps.ctx, event)

			require.NoError(t, err)

			_, ok := deps.state(t)
			require.False(t, ok)
		})
	}
}
