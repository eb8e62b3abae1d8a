package conversation

import "strings"

type EventKind int

const (
	ButtonTapped EventKind = iota + 1
	TextReceived
	CommandReceived
)

// Event is an inbound interaction bound to a conversation. UserID and
// UserName identify the person behind it and are copied into the session
// when a booking starts.
type Event struct {
	Kind           EventKind
	ConversationID string
	UserID         string
	UserName       string
	Token          string
	Text           string
	Command        string
	Args           []string
}

const (
	CommandStart  = "start"
	CommandBook   = "book"
	CommandCancel = "cancel"
)

// Option is one button of a menu. Token comes back in a ButtonTapped event.
type Option struct {
	Label string
	Token string
}

const (
	TokenCancel = "cancel"

	prefixLocation = "location"
	prefixResource = "resource"
	prefixSlot     = "slot"
	prefixConfirm  = "confirm"

	confirmYes = "yes"
	confirmNo  = "no"
)

func LocationToken(location string) string {
	return prefixLocation + ":" + location
}

func ResourceToken(name string) string {
	return prefixResource + ":" + name
}

func SlotToken(slot string) string {
	return prefixSlot + ":" + slot
}

func ConfirmToken(yes bool) string {
	if yes {
		return prefixConfirm + ":" + confirmYes
	}

	return prefixConfirm + ":" + confirmNo
}

// splitToken cuts at the first colon only; slot labels such as "18:00"
// contain colons themselves.
func splitToken(token string) (string, string) {
	prefix, value, _ := strings.Cut(token, ":")
	return prefix, value
}

func (e Event) isCancel() bool {
	switch e.Kind {
	case CommandReceived:
		return e.Command == CommandCancel
	case ButtonTapped:
		return e.Token == TokenCancel
	}

	return false
}

func (e Event) isStart() bool {
	return e.Kind == CommandReceived && (e.Command == CommandStart || e.Command == CommandBook)
}

// button returns the value of a tapped token carrying prefix.
func (e Event) button(prefix string) (string, bool) {
	if e.Kind != ButtonTapped {
		return "", false
	}

	got, value := splitToken(e.Token)

	if got != prefix || len(value) == 0 {
		return "", false
	}

	return value, true
}

func (e Event) text() (string, bool) {
	if e.Kind != TextReceived {
		return "", false
	}

	return strings.TrimSpace(e.Text), true
}
