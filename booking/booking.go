package booking

import (
	"strings"
	"time"
)

type Status string

const (
	StatusBooked Status = "Booked"
)

// Resource is a bookable pitch. Name is unique within a location.
type Resource struct {
	Location     string   `json:"location"`
	Name         string   `json:"name"`
	TimeSlots    []string `json:"timeSlots"`
	OwnerContact string   `json:"ownerContact"`
}

type Booking struct {
	RequesterID   string `json:"requesterId"`
	RequesterName string `json:"requesterName"`
	Phone         string `json:"phone"`
	ResourceName  string `json:"resourceName"`
	TimeSlot      string `json:"timeSlot"`
	Status        Status `json:"status"`
}

// Event describes a committed booking handed to notification recipients.
type Event struct {
	ID            string    `json:"id"`
	RequesterID   string    `json:"requesterId"`
	RequesterName string    `json:"requesterName"`
	Phone         string    `json:"phone"`
	ResourceName  string    `json:"resourceName"`
	TimeSlot      string    `json:"timeSlot"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ParseSlots splits a comma separated slot cell. Labels are trimmed and empty
// labels dropped; order and duplicates are kept as written.
func ParseSlots(raw string) []string {
	slots := []string{}

	for _, slot := range strings.Split(raw, ",") {
		slot = strings.TrimSpace(slot)

		if len(slot) != 0 {
			slots = append(slots, slot)
		}
	}

	return slots
}

// FormatSlots is the inverse of ParseSlots.
func FormatSlots(slots []string) string {
	return strings.Join(slots, ",")
}
