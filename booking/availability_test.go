package booking_test

import (
	"testing"

	bk "github.com/hanksha/pitch-booking-bot/booking"
	"github.com/stretchr/testify/require"
)

var inventory = []bk.Resource{
	{Location: "Uptown", Name: "FieldC", TimeSlots: []string{"20:00"}},
	{Location: "Downtown", Name: "FieldB", TimeSlots: []string{"17:00", "18:00"}},
	{Location: "Downtown", Name: "FieldA", TimeSlots: []string{"19:00", "18:00", "19:00"}},
	{Location: "", Name: "Orphan", TimeSlots: []string{"10:00"}},
}

func TestUniqueLocations(t *testing.T) {
	t.Run("sorted and distinct", func(t *testing.T) {
		require.Equal(t, []string{"Downtown", "Uptown"}, bk.UniqueLocations(inventory))
	})

	t.Run("empty inventory", func(t *testing.T) {
		require.Empty(t, bk.UniqueLocations(nil))
	})
}

func TestResourcesAt(t *testing.T) {
	t.Run("only resources at location sorted by name", func(t *testing.T) {
		got := bk.ResourcesAt(inventory, "Downtown")

		require.Len(t, got, 2)
		require.Equal(t, "FieldA", got[0].Name)
		require.Equal(t, "FieldB", got[1].Name)

		for _, resource := range got {
			require.Equal(t, "Downtown", resource.Location)
		}
	})

	t.Run("unknown location", func(t *testing.T) {
		require.Empty(t, bk.ResourcesAt(inventory, "Midtown"))
	})

	t.Run("location match is exact", func(t *testing.T) {
		require.Empty(t, bk.ResourcesAt(inventory, "downtown"))
	})
}

func TestFindResource(t *testing.T) {
	resource, ok := bk.FindResource(inventory, "Downtown", "FieldB")
	require.True(t, ok)
	require.Equal(t, []string{"17:00", "18:00"}, resource.TimeSlots)

	_, ok = bk.FindResource(inventory, "Uptown", "FieldB")
	require.False(t, ok)
}

func TestFreeSlotsFor(t *testing.T) {
	fieldA := inventory[2]

	t.Run("excludes booked slots", func(t *testing.T) {
		bookings := []bk.Booking{{ResourceName: "FieldA", TimeSlot: "18:00", Status: bk.StatusBooked}}

		require.Equal(t, []string{"19:00"}, bk.FreeSlotsFor(fieldA, bookings))
	})

	t.Run("deduplicated and sorted", func(t *testing.T) {
		require.Equal(t, []string{"18:00", "19:00"}, bk.FreeSlotsFor(fieldA, nil))
	})

	t.Run("ignores other resources and other statuses", func(t *testing.T) {
		bookings := []bk.Booking{
			{ResourceName: "FieldB", TimeSlot: "18:00", Status: bk.StatusBooked},
			{ResourceName: "FieldA", TimeSlot: "19:00", Status: "Cancelled"},
		}

		require.Equal(t, []string{"18:00", "19:00"}, bk.FreeSlotsFor(fieldA, bookings))
	})

	t.Run("fully booked", func(t *testing.T) {
		bookings := []bk.Booking{
			{ResourceName: "FieldA", TimeSlot: "18:00", Status: bk.StatusBooked},
			{ResourceName: "FieldA", TimeSlot: "19:00", Status: bk.StatusBooked},
		}

		require.Empty(t, bk.FreeSlotsFor(fieldA, bookings))
	})

	t.Run("same snapshot same answer", func(t *testing.T) {
		bookings := []bk.Booking{{ResourceName: "FieldB", TimeSlot: "17:00", Status: bk.StatusBooked}}
		resource := bk.Resource{Name: "FieldB", TimeSlots: []string{"21:00", "17:00", "09:00", "18:00"}}

		first := bk.FreeSlotsFor(resource, bookings)
		second := bk.FreeSlotsFor(resource, bookings)

		require.Equal(t, first, second)
		require.Equal(t, []string{"09:00", "18:00", "21:00"}, first)
	})

	t.Run("subset of declared slots without booked ones", func(t *testing.T) {
		resource := bk.Resource{Name: "FieldX", TimeSlots: []string{"a", "b", "c", "d"}}
		bookings := []bk.Booking{
			{ResourceName: "FieldX", TimeSlot: "b", Status: bk.StatusBooked},
			{ResourceName: "FieldX", TimeSlot: "z", Status: bk.StatusBooked},
		}

		free := bk.FreeSlotsFor(resource, bookings)

		for _, slot := range free {
			require.Contains(t, resource.TimeSlots, slot)
			require.True(t, bk.IsSlotFree(bookings, "FieldX", slot))
		}
		require.NotContains(t, free, "b")
	})
}

func TestIsSlotFree(t *testing.T) {
	bookings := []bk.Booking{{ResourceName: "FieldA", TimeSlot: "18:00", Status: bk.StatusBooked}}

	require.False(t, bk.IsSlotFree(bookings, "FieldA", "18:00"))
	require.True(t, bk.IsSlotFree(bookings, "FieldA", "19:00"))
	require.True(t, bk.IsSlotFree(bookings, "fielda", "18:00"))
	require.True(t, bk.IsSlotFree(bookings, "FieldA", "18:00 "))
	require.True(t, bk.IsSlotFree(nil, "FieldA", "18:00"))
}

func TestParseSlots(t *testing.T) {
	require.Equal(t, []string{"18:00", "19:00"}, bk.ParseSlots(" 18:00, 19:00 ,"))
	require.Empty(t, bk.ParseSlots(""))
	require.Equal(t, "18:00,19:00", bk.FormatSlots([]string{"18:00", "19:00"}))
}
