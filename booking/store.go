package booking

import "context"

// Store is the persistence boundary for inventory and bookings. Reads are
// never cached: each call reflects the backing store at that moment.
//
// AppendBooking failures must not be read as "not written"; callers report
// the failure instead of retrying.
type Store interface {
	Init(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
	ListResources(ctx context.Context) ([]Resource, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	AppendBooking(ctx context.Context, booking Booking) error
}

var (
	_ Store = (*Repository)(nil)
	_ Store = (*SQLiteRepository)(nil)
)
