package booking

import (
	"slices"
	"sort"
)

// UniqueLocations returns the distinct non-empty locations in lexicographic order.
func UniqueLocations(resources []Resource) []string {
	seen := map[string]struct{}{}
	locations := []string{}

	for _, resource := range resources {
		if len(resource.Location) == 0 {
			continue
		}

		if _, ok := seen[resource.Location]; ok {
			continue
		}

		seen[resource.Location] = struct{}{}
		locations = append(locations, resource.Location)
	}

	sort.Strings(locations)

	return locations
}

// ResourcesAt returns the resources at location sorted by name.
func ResourcesAt(resources []Resource, location string) []Resource {
	atLocation := []Resource{}

	for _, resource := range resources {
		if resource.Location == location {
			atLocation = append(atLocation, resource)
		}
	}

	sort.SliceStable(atLocation, func(i, j int) bool {
		return atLocation[i].Name < atLocation[j].Name
	})

	return atLocation
}

func FindResource(resources []Resource, location, name string) (Resource, bool) {
	for _, resource := range resources {
		if resource.Location == location && resource.Name == name {
			return resource, true
		}
	}

	return Resource{}, false
}

// FreeSlotsFor returns the declared slots of resource that have no Booked
// record, deduplicated and sorted lexicographically.
func FreeSlotsFor(resource Resource, bookings []Booking) []string {
	taken := map[string]struct{}{}

	for _, booking := range bookings {
		if booking.Status == StatusBooked && booking.ResourceName == resource.Name {
			taken[booking.TimeSlot] = struct{}{}
		}
	}

	free := []string{}

	for _, slot := range resource.TimeSlots {
		if _, ok := taken[slot]; ok {
			continue
		}

		if slices.Contains(free, slot) {
			continue
		}

		free = append(free, slot)
	}

	sort.Strings(free)

	return free
}

// IsSlotFree reports whether no Booked record matches resourceName and slot
// exactly. There is no normalization: "FieldA" and "fielda" are distinct.
func IsSlotFree(bookings []Booking, resourceName, slot string) bool {
	for _, booking := range bookings {
		if booking.Status == StatusBooked && booking.ResourceName == resourceName && booking.TimeSlot == slot {
			return false
		}
	}

	return true
}
