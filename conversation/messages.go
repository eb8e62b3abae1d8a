package conversation

import "fmt"

const (
	msgNoLocations     = "No locations are currently available. Please try again later."
	msgCancelled       = "Booking cancelled. Send /start to begin again."
	msgNothingToCancel = "There is no booking in progress. Send /start to begin."
	msgNoSession       = "Your booking session has expired or was not started. Send /start to begin a new booking."
	msgPickAnOption    = "Please choose one of the options above, or send /cancel to stop."
	msgNameRequired    = "Please enter your name:"
	msgPhoneRequired   = "Please enter your phone number:"
	msgGenericError    = "An error occurred while processing your request. Send /start to try again."
	msgCommitFailed    = "Sorry, there was an error saving your booking. Please try again later."
	msgBookingSaved    = "Thanks, your contact details are saved."

	labelCancel  = "Cancel"
	labelConfirm = "Confirm Booking"
)

func welcomeText(userName string) string {
	if len(userName) == 0 {
		return "Welcome to the pitch booking bot!\n\nPlease select a location to book a football pitch:"
	}

	return fmt.Sprintf("Hello %v! Welcome to the pitch booking bot.\n\nPlease select a location to book a football pitch:", userName)
}

func noResourcesText(location string) string {
	return fmt.Sprintf("No pitches available in %v. Send /start to try another location.", location)
}

func resourceMenuText(location string) string {
	return fmt.Sprintf("You selected %v. Please choose a pitch:", location)
}

func noSlotsText(resource string) string {
	return fmt.Sprintf("No available time slots for %v. Send /start to try another pitch.", resource)
}

func slotMenuText(resource, location string) string {
	return fmt.Sprintf("You selected %v in %v. Please choose a time slot:", resource, location)
}

func conflictText(slot, resource string) string {
	return fmt.Sprintf("Sorry, the time slot %v for %v is no longer available. Send /start to pick another time slot.", slot, resource)
}

func confirmText(slot, resource, location string) string {
	return fmt.Sprintf("You selected %v at %v in %v.\n\nPlease confirm your booking:", slot, resource, location)
}

func namePromptText(slot, resource, location string) string {
	return fmt.Sprintf("Great! You're booking %v at %v in %v.\n\nPlease enter your name:", slot, resource, location)
}

func phonePromptText(name string) string {
	return fmt.Sprintf("Thank you, %v. Now please enter your phone number:", name)
}
