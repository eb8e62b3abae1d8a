// Package sheets stores inventory and bookings in a Google Sheets workbook.
//
// The workbook holds two worksheets, Pitches and Bookings. Each worksheet's
// first row is its header and columns are found by header text, so columns
// may be reordered or extended by hand without breaking the bot.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	bk "github.com/hanksha/pitch-booking-bot/booking"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

var ResourceSchema = bk.Schema{
	Name: "Pitches",
	Columns: []bk.Column{
		{Key: bk.KeyLocation, Header: "Location", Required: true},
		{Key: bk.KeyResourceName, Header: "Pitch Name", Required: true},
		{Key: bk.KeyTimeSlots, Header: "Time Slots", Required: true},
		{Key: bk.KeyOwnerContact, Header: "Owner Phone"},
	},
}

var BookingSchema = bk.Schema{
	Name: "Bookings",
	Columns: []bk.Column{
		{Key: bk.KeyRequesterID, Header: "User ID", Required: true},
		{Key: bk.KeyRequesterName, Header: "User Name"},
		{Key: bk.KeyPhone, Header: "Phone Number"},
		{Key: bk.KeyResourceName, Header: "Pitch Name", Required: true},
		{Key: bk.KeyTimeSlot, Header: "Date/Time", Required: true},
		{Key: bk.KeyStatus, Header: "Status", Required: true},
	},
}

// Values is the slice of the Sheets API the store needs.
type Values interface {
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	AddSheet(ctx context.Context, spreadsheetID, title string) error
	Get(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
	Append(ctx context.Context, spreadsheetID, sheetRange string, row []string) error
}

type Store struct {
	values        Values
	spreadsheetID string
	logger        *slog.Logger
}

func NewStore(values Values, spreadsheetID string) *Store {
	return &Store{
		values:        values,
		spreadsheetID: spreadsheetID,
		logger:        slog.Default().With("component", "sheets-store"),
	}
}

// Open authenticates with a service account key file.
func Open(ctx context.Context, credentialsFile, spreadsheetID string) (*Store, error) {
	srv, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)

	if err != nil {
		return nil, fmt.Errorf("%w: failed to create sheets client: %w", bk.ErrStoreUnavailable, err)
	}

	return NewStore(&apiValues{srv: srv}, spreadsheetID), nil
}

// Init creates missing worksheets with their headers and validates the
// headers of existing ones.
func (s *Store) Init(ctx context.Context) error {
	titles, err := s.values.SheetTitles(ctx, s.spreadsheetID)

	if err != nil {
		return fmt.Errorf("%w: failed to open workbook %v: %w", bk.ErrStoreUnavailable, s.spreadsheetID, err)
	}

	for _, schema := range []bk.Schema{ResourceSchema, BookingSchema} {
		if slices.Contains(titles, schema.Name) {
			if _, err := s.layout(ctx, schema); err != nil {
				return err
			}

			s.logger.Info("accessed worksheet", "sheet", schema.Name)
			continue
		}

		if err := s.values.AddSheet(ctx, s.spreadsheetID, schema.Name); err != nil {
			return fmt.Errorf("%w: failed to create worksheet %v: %w", bk.ErrStoreUnavailable, schema.Name, err)
		}

		if err := s.values.Append(ctx, s.spreadsheetID, sheetRange(schema.Name), schema.Headers()); err != nil {
			return fmt.Errorf("%w: failed to write %v headers: %w", bk.ErrStoreUnavailable, schema.Name, err)
		}

		s.logger.Info("created worksheet", "sheet", schema.Name)
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.values.SheetTitles(ctx, s.spreadsheetID); err != nil {
		return fmt.Errorf("%w: %w", bk.ErrStoreUnavailable, err)
	}

	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) ListResources(ctx context.Context) ([]bk.Resource, error) {
	rows, err := s.values.Get(ctx, s.spreadsheetID, sheetRange(ResourceSchema.Name))

	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %v: %w", bk.ErrStoreUnavailable, ResourceSchema.Name, err)
	}

	if len(rows) == 0 {
		return []bk.Resource{}, nil
	}

	layout, err := ResourceSchema.Resolve(rows[0])

	if err != nil {
		return nil, fmt.Errorf("%w: %w", bk.ErrStoreUnavailable, err)
	}

	return layout.ResourcesFromRows(rows[1:]), nil
}

func (s *Store) ListBookings(ctx context.Context) ([]bk.Booking, error) {
	rows, err := s.values.Get(ctx, s.spreadsheetID, sheetRange(BookingSchema.Name))

	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %v: %w", bk.ErrStoreUnavailable, BookingSchema.Name, err)
	}

	if len(rows) == 0 {
		return []bk.Booking{}, nil
	}

	layout, err := BookingSchema.Resolve(rows[0])

	if err != nil {
		return nil, fmt.Errorf("%w: %w", bk.ErrStoreUnavailable, err)
	}

	bookings := make([]bk.Booking, 0, len(rows)-1)

	for _, row := range rows[1:] {
		bookings = append(bookings, layout.BookingFromRow(row))
	}

	return bookings, nil
}

func (s *Store) AppendBooking(ctx context.Context, booking bk.Booking) error {
	layout, err := s.layout(ctx, BookingSchema)

	if err != nil {
		return fmt.Errorf("%w: %w", bk.ErrStoreUnavailable, err)
	}

	if err := s.values.Append(ctx, s.spreadsheetID, sheetRange(BookingSchema.Name), layout.BookingRow(booking)); err != nil {
		return fmt.Errorf("%w: failed to append booking: %w", bk.ErrStoreUnavailable, err)
	}

	return nil
}

func (s *Store) layout(ctx context.Context, schema bk.Schema) (bk.Layout, error) {
	rows, err := s.values.Get(ctx, s.spreadsheetID, fmt.Sprintf("%v!1:1", sheetRange(schema.Name)))

	if err != nil {
		return bk.Layout{}, fmt.Errorf("%w: failed to read %v header: %w", bk.ErrStoreUnavailable, schema.Name, err)
	}

	var header []string

	if len(rows) != 0 {
		header = rows[0]
	}

	return schema.Resolve(header)
}

func sheetRange(title string) string {
	return fmt.Sprintf("'%v'", title)
}

var _ bk.Store = (*Store)(nil)

type apiValues struct {
	srv *gsheets.Service
}

func (a *apiValues) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	spreadsheet, err := a.srv.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()

	if err != nil {
		return nil, err
	}

	titles := []string{}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}

	return titles, nil
}

func (a *apiValues) AddSheet(ctx context.Context, spreadsheetID, title string) error {
	request := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{Title: title},
			},
		}},
	}

	_, err := a.srv.Spreadsheets.BatchUpdate(spreadsheetID, request).Context(ctx).Do()

	return err
}

func (a *apiValues) Get(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	valueRange, err := a.srv.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()

	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(valueRange.Values))

	for _, values := range valueRange.Values {
		row := make([]string, len(values))

		for i, value := range values {
			row[i] = fmt.Sprint(value)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (a *apiValues) Append(ctx context.Context, spreadsheetID, sheetRange string, row []string) error {
	values := make([]interface{}, len(row))

	for i, value := range row {
		values[i] = value
	}

	_, err := a.srv.Spreadsheets.Values.Append(spreadsheetID, sheetRange, &gsheets.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()

	return err
}
