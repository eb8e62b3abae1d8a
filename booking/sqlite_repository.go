package booking

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed sql/sqlite_setup.sql
var sqliteSetupSQL string

// SQLiteRepository is a file backed Store meant for local runs and tests.
type SQLiteRepository struct {
	db        *sql.DB
	logger    *slog.Logger
	resources tableLayout
	bookings  tableLayout
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)

	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %v: %w", ErrStoreUnavailable, path, err)
	}

	// a single connection keeps ":memory:" databases shared and serializes writes
	db.SetMaxOpenConns(1)

	return &SQLiteRepository{
		db:     db,
		logger: slog.Default().With("component", "sqlite-store"),
	}, nil
}

func (r *SQLiteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSetupSQL); err != nil {
		return fmt.Errorf("%w: create tables: %w", ErrStoreUnavailable, err)
	}

	var err error

	r.resources, err = r.inspect(ctx, SQLResourceSchema)

	if err != nil {
		return err
	}

	r.bookings, err = r.inspect(ctx, SQLBookingSchema)

	if err != nil {
		return err
	}

	r.logger.Info("initialized sqlite tables")

	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) ListResources(ctx context.Context) ([]Resource, error) {
	rows, err := r.selectRows(ctx, r.resources, SQLResourceSchema.Name)

	if err != nil {
		return nil, fmt.Errorf("%w: list resources: %w", ErrStoreUnavailable, err)
	}

	return r.resources.layout.ResourcesFromRows(rows), nil
}

func (r *SQLiteRepository) ListBookings(ctx context.Context) ([]Booking, error) {
	rows, err := r.selectRows(ctx, r.bookings, SQLBookingSchema.Name)

	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %w", ErrStoreUnavailable, err)
	}

	bookings := make([]Booking, 0, len(rows))

	for _, row := range rows {
		bookings = append(bookings, r.bookings.layout.BookingFromRow(row))
	}

	return bookings, nil
}

func (r *SQLiteRepository) AppendBooking(ctx context.Context, booking Booking) error {
	if !r.bookings.ready() {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, errNotInitialized)
	}

	row := r.bookings.layout.BookingRow(booking)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(row)), ", ")
	args := make([]any, 0, len(row))

	for _, value := range row {
		args = append(args, value)
	}

	query := fmt.Sprintf("INSERT INTO bookings (%s) VALUES (%s);", strings.Join(r.bookings.names(), ", "), placeholders)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: add booking: %w", ErrStoreUnavailable, err)
	}

	return nil
}

// AddResource inserts an inventory row. Inventory is managed outside the bot;
// this exists for seeding local databases.
func (r *SQLiteRepository) AddResource(ctx context.Context, resource Resource) error {
	if !r.resources.ready() {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, errNotInitialized)
	}

	row := r.resources.layout.Row(map[string]string{
		KeyLocation:     resource.Location,
		KeyResourceName: resource.Name,
		KeyTimeSlots:    FormatSlots(resource.TimeSlots),
		KeyOwnerContact: resource.OwnerContact,
	})
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(row)), ", ")
	args := make([]any, 0, len(row))

	for _, value := range row {
		args = append(args, value)
	}

	query := fmt.Sprintf("INSERT INTO resources (%s) VALUES (%s);", strings.Join(r.resources.names(), ", "), placeholders)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: add resource: %w", ErrStoreUnavailable, err)
	}

	return nil
}

func (r *SQLiteRepository) inspect(ctx context.Context, schema Schema) (tableLayout, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s);", schema.Name))

	if err != nil {
		return tableLayout{}, fmt.Errorf("%w: inspect %s table: %w", ErrStoreUnavailable, schema.Name, err)
	}

	defer rows.Close()

	var names []string

	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt sql.NullString
		var pk int

		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return tableLayout{}, fmt.Errorf("%w: inspect %s columns: %w", ErrStoreUnavailable, schema.Name, err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return tableLayout{}, fmt.Errorf("%w: inspect %s columns: %w", ErrStoreUnavailable, schema.Name, err)
	}

	table, err := resolveTable(schema, names)

	if err != nil {
		return tableLayout{}, err
	}

	table.orderBy = "rowid"

	return table, nil
}

func (r *SQLiteRepository) selectRows(ctx context.Context, table tableLayout, name string) ([][]string, error) {
	if !table.ready() {
		return nil, errNotInitialized
	}

	selects := make([]string, 0, len(table.columns))

	for _, column := range table.columns {
		selects = append(selects, fmt.Sprintf("COALESCE(CAST(%s AS TEXT), '')", column.Header))
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s;", strings.Join(selects, ", "), name, table.orderBy)

	rows, err := r.db.QueryContext(ctx, query)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var result [][]string

	for rows.Next() {
		row := make([]string, len(table.columns))
		dest := make([]any, len(row))

		for i := range row {
			dest[i] = &row[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", name, err)
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", name, err)
	}

	return result, nil
}
