package conversation

import (
	"context"
	"fmt"
	"slices"

	bk "github.com/hanksha/pitch-booking-bot/booking"
)

func (m *Machine) handleStart(ctx context.Context, session *Session, _ Event) (State, error) {
	resources, err := m.store.ListResources(ctx)

	if err != nil {
		return Terminated, err
	}

	locations := bk.UniqueLocations(resources)

	if len(locations) == 0 {
		return Terminated, m.text(ctx, session.ConversationID, msgNoLocations)
	}

	options := make([]Option, 0, len(locations)+1)

	for _, location := range locations {
		options = append(options, Option{Label: location, Token: LocationToken(location)})
	}

	if err := m.menu(ctx, session.ConversationID, welcomeText(session.UserName), withCancel(options)); err != nil {
		return Terminated, err
	}

	return AwaitingLocation, nil
}

func (m *Machine) handleLocation(ctx context.Context, session *Session, event Event) (State, error) {
	location, ok := event.button(prefixLocation)

	if !ok {
		return session.State, m.text(ctx, session.ConversationID, msgPickAnOption)
	}

	resources, err := m.store.ListResources(ctx)

	if err != nil {
		return Terminated, err
	}

	available := bk.ResourcesAt(resources, location)

	if len(available) == 0 {
		return Terminated, m.edit(ctx, session.ConversationID, noResourcesText(location), nil)
	}

	session.Location = location

	options := make([]Option, 0, len(available)+1)

	for _, resource := range available {
		options = append(options, Option{Label: resource.Name, Token: ResourceToken(resource.Name)})
	}

	if err := m.edit(ctx, session.ConversationID, resourceMenuText(location), withCancel(options)); err != nil {
		return Terminated, err
	}

	return AwaitingResource, nil
}

func (m *Machine) handleResource(ctx context.Context, session *Session, event Event) (State, error) {
	name, ok := event.button(prefixResource)

	if !ok {
		return session.State, m.text(ctx, session.ConversationID, msgPickAnOption)
	}

	if len(session.Location) == 0 {
		return Terminated, fmt.Errorf("%w: resource chosen without a location", ErrInvariantViolation)
	}

	resources, err := m.store.ListResources(ctx)

	if err != nil {
		return Terminated, err
	}

	resource, found := bk.FindResource(resources, session.Location, name)

	if !found {
		return Terminated, m.edit(ctx, session.ConversationID, noSlotsText(name), nil)
	}

	bookings, err := m.store.ListBookings(ctx)

	if err != nil {
		return Terminated, err
	}

	free := bk.FreeSlotsFor(resource, bookings)

	if len(free) == 0 {
		return Terminated, m.edit(ctx, session.ConversationID, noSlotsText(name), nil)
	}

	session.ResourceName = name
	session.OfferedSlots = free

	options := make([]Option, 0, len(free)+1)

	for _, slot := range free {
		options = append(options, Option{Label: slot, Token: SlotToken(slot)})
	}

	if err := m.edit(ctx, session.ConversationID, slotMenuText(name, session.Location), withCancel(options)); err != nil {
		return Terminated, err
	}

	return AwaitingTimeSlot, nil
}

func (m *Machine) handleTimeSlot(ctx context.Context, session *Session, event Event) (State, error) {
	slot, ok := event.button(prefixSlot)

	if !ok {
		return session.State, m.text(ctx, session.ConversationID, msgPickAnOption)
	}

	if len(session.ResourceName) == 0 {
		return Terminated, fmt.Errorf("%w: slot chosen without a pitch", ErrInvariantViolation)
	}

	if !slices.Contains(session.OfferedSlots, slot) {
		return session.State, m.text(ctx, session.ConversationID, msgPickAnOption)
	}

	free, err := m.recheck(ctx, session.ResourceName, slot)

	if err != nil {
		return Terminated, err
	}

	if !free {
		return Terminated, m.conflict(ctx, session, slot, true)
	}

	session.TimeSlot = slot

	options := withCancel([]Option{{Label: labelConfirm, Token: ConfirmToken(true)}})

	if err := m.edit(ctx, session.ConversationID, confirmText(slot, session.ResourceName, session.Location), options); err != nil {
		return Terminated, err
	}

	return AwaitingConfirmation, nil
}

func (m *Machine) handleConfirmation(ctx context.Context, session *Session, event Event) (State, error) {
	answer, ok := event.button(prefixConfirm)

	if !ok {
		return session.State, m.text(ctx, session.ConversationID, msgPickAnOption)
	}

	if answer != confirmYes {
		m.logger.Info("booking declined", "conversation", session.ConversationID)
		return Terminated, m.edit(ctx, session.ConversationID, msgCancelled, nil)
	}

	if len(session.ResourceName) == 0 || len(session.TimeSlot) == 0 {
		return Terminated, fmt.Errorf("%w: confirmation without a pitch and slot", ErrInvariantViolation)
	}

	free, err := m.recheck(ctx, session.ResourceName, session.TimeSlot)

	if err != nil {
		return Terminated, err
	}

	if !free {
		return Terminated, m.conflict(ctx, session, session.TimeSlot, true)
	}

	if err := m.edit(ctx, session.ConversationID, namePromptText(session.TimeSlot, session.ResourceName, session.Location), nil); err != nil {
		return Terminated, err
	}

	return AwaitingName, nil
}

func (m *Machine) handleName(ctx context.Context, session *Session, event Event) (State, error) {
	name, ok := event.text()

	if !ok || len(name) == 0 {
		return session.State, m.text(ctx, session.ConversationID, msgNameRequired)
	}

	session.Name = name

	if err := m.text(ctx, session.ConversationID, phonePromptText(name)); err != nil {
		return Terminated, err
	}

	return AwaitingPhone, nil
}

func (m *Machine) handlePhone(ctx context.Context, session *Session, event Event) (State, error) {
	phone, ok := event.text()

	if !ok || len(phone) == 0 {
		return session.State, m.text(ctx, session.ConversationID, msgPhoneRequired)
	}

	if len(session.ResourceName) == 0 || len(session.TimeSlot) == 0 || len(session.Name) == 0 {
		return Terminated, fmt.Errorf("%w: phone received before pitch, slot and name", ErrInvariantViolation)
	}

	session.Phone = phone
	session.Pending = &bk.Booking{
		RequesterID:   session.UserID,
		RequesterName: session.Name,
		Phone:         phone,
		ResourceName:  session.ResourceName,
		TimeSlot:      session.TimeSlot,
		Status:        bk.StatusBooked,
	}

	free, err := m.recheck(ctx, session.ResourceName, session.TimeSlot)

	if err != nil {
		return Terminated, err
	}

	if !free {
		return Terminated, m.conflict(ctx, session, session.TimeSlot, false)
	}

	if err := m.store.AppendBooking(ctx, *session.Pending); err != nil {
		return Terminated, fmt.Errorf("%w: %w", errCommitFailed, err)
	}

	m.logger.Info("booking saved",
		"conversation", session.ConversationID,
		"resource", session.ResourceName,
		"slot", session.TimeSlot)

	created := bk.Event{
		ID:            m.newID(),
		RequesterID:   session.UserID,
		RequesterName: session.Name,
		Phone:         phone,
		ResourceName:  session.ResourceName,
		TimeSlot:      session.TimeSlot,
		Location:      session.Location,
		CreatedAt:     m.now(),
	}

	// the booking is committed; delivery problems only get logged from here on
	if err := m.notifier.Notify(ctx, created); err != nil {
		m.logger.Warn("failed to deliver booking notifications", "event", created.ID, "err", err)
	}

	if err := m.text(ctx, session.ConversationID, msgBookingSaved); err != nil {
		m.logger.Warn("failed to confirm saved booking", "conversation", session.ConversationID, "err", err)
	}

	return Terminated, nil
}

// recheck reads a fresh bookings snapshot and reports whether slot is still
// free on resourceName.
func (m *Machine) recheck(ctx context.Context, resourceName, slot string) (bool, error) {
	bookings, err := m.store.ListBookings(ctx)

	if err != nil {
		return false, err
	}

	return bk.IsSlotFree(bookings, resourceName, slot), nil
}

// conflict tells the user that slot was taken meanwhile, editing the menu in
// place or sending a new message. The returned error wraps ErrValidation
// unless the message itself could not be delivered.
func (m *Machine) conflict(ctx context.Context, session *Session, slot string, inPlace bool) error {
	text := conflictText(slot, session.ResourceName)

	var err error

	if inPlace {
		err = m.edit(ctx, session.ConversationID, text, nil)
	} else {
		err = m.text(ctx, session.ConversationID, text)
	}

	if err != nil {
		return err
	}

	return fmt.Errorf("%w: %v on %v was taken", ErrValidation, slot, session.ResourceName)
}
