package booking

import (
	"context"
	"fmt"
	"strings"
)

//go:generate mockgen -source=booking_service.go -destination=mocks/booking_mocks.go -package=mocks

// BookingRepository is the read side of Store.
type BookingRepository interface {
	ListResources(ctx context.Context) ([]Resource, error)
	ListBookings(ctx context.Context) ([]Booking, error)
}

// Availability is a resource together with the slots still open.
type Availability struct {
	Resource
	FreeSlots []string `json:"freeSlots"`
}

// BookingFilter narrows FindBookings. Empty fields match everything.
type BookingFilter struct {
	ResourceName string
	RequesterID  string
	Status       Status
}

func (f BookingFilter) matches(booking Booking) bool {
	if len(f.ResourceName) != 0 && booking.ResourceName != f.ResourceName {
		return false
	}

	if len(f.RequesterID) != 0 && booking.RequesterID != f.RequesterID {
		return false
	}

	if len(f.Status) != 0 && !strings.EqualFold(string(booking.Status), string(f.Status)) {
		return false
	}

	return true
}

// Service answers inventory questions for operators. Every call reads the
// store afresh.
type Service struct {
	repo BookingRepository
}

func NewService(repo BookingRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Locations(ctx context.Context) ([]string, error) {
	resources, err := s.repo.ListResources(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	return UniqueLocations(resources), nil
}

// Availability lists resources in menu order, by location then name, with
// their free slots. A non-empty location restricts the result to it.
func (s *Service) Availability(ctx context.Context, location string) ([]Availability, error) {
	resources, err := s.repo.ListResources(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	bookings, err := s.repo.ListBookings(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	locations := UniqueLocations(resources)

	if len(location) != 0 {
		locations = []string{location}
	}

	availability := []Availability{}

	for _, loc := range locations {
		for _, resource := range ResourcesAt(resources, loc) {
			availability = append(availability, Availability{
				Resource:  resource,
				FreeSlots: FreeSlotsFor(resource, bookings),
			})
		}
	}

	return availability, nil
}

func (s *Service) FindBookings(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	bookings, err := s.repo.ListBookings(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	found := []Booking{}

	for _, booking := range bookings {
		if filter.matches(booking) {
			found = append(found, booking)
		}
	}

	return found, nil
}
