package conversation

import "fmt"

// State is the step a conversation is waiting on.
type State int

const (
	StateEntry State = iota
	AwaitingLocation
	AwaitingResource
	AwaitingTimeSlot
	AwaitingConfirmation
	AwaitingName
	AwaitingPhone
	Terminated
)

var stateNames = map[State]string{
	StateEntry:           "Entry",
	AwaitingLocation:     "AwaitingLocation",
	AwaitingResource:     "AwaitingResource",
	AwaitingTimeSlot:     "AwaitingTimeSlot",
	AwaitingConfirmation: "AwaitingConfirmation",
	AwaitingName:         "AwaitingName",
	AwaitingPhone:        "AwaitingPhone",
	Terminated:           "Terminated",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return fmt.Sprintf("State(%d)", int(s))
}
