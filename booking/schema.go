package booking

import (
	"fmt"
	"strings"
)

// Logical column keys shared by every store backend.
const (
	KeyLocation      = "location"
	KeyResourceName  = "resource_name"
	KeyTimeSlots     = "time_slots"
	KeyOwnerContact  = "owner_contact"
	KeyRequesterID   = "requester_id"
	KeyRequesterName = "requester_name"
	KeyPhone         = "phone"
	KeyTimeSlot      = "time_slot"
	KeyStatus        = "status"
)

type Column struct {
	Key      string
	Header   string
	Required bool
}

// Schema describes a collection whose columns are looked up by name, never
// by position.
type Schema struct {
	Name    string
	Columns []Column
}

func (s Schema) Headers() []string {
	headers := make([]string, 0, len(s.Columns))

	for _, column := range s.Columns {
		headers = append(headers, column.Header)
	}

	return headers
}

// Layout is a Schema resolved against an actual header row.
type Layout struct {
	width int
	index map[string]int
}

// Resolve matches the header against the schema. A missing required column
// is an ErrMissingColumn; a missing optional column reads as empty.
func (s Schema) Resolve(header []string) (Layout, error) {
	positions := map[string]int{}

	for i, name := range header {
		name = strings.TrimSpace(name)

		if _, ok := positions[name]; !ok {
			positions[name] = i
		}
	}

	layout := Layout{width: len(header), index: map[string]int{}}
	missing := []string{}

	for _, column := range s.Columns {
		if i, ok := positions[column.Header]; ok {
			layout.index[column.Key] = i
			continue
		}

		if column.Required {
			missing = append(missing, column.Header)
		}
	}

	if len(missing) != 0 {
		return Layout{}, fmt.Errorf("%w: %v is missing %v", ErrMissingColumn, s.Name, strings.Join(missing, ", "))
	}

	return layout, nil
}

func (l Layout) Has(key string) bool {
	_, ok := l.index[key]
	return ok
}

func (l Layout) Width() int {
	return l.width
}

func (l Layout) Value(row []string, key string) string {
	i, ok := l.index[key]

	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

// Row places values into a row as wide as the resolved header. Keys without
// a column are dropped.
func (l Layout) Row(values map[string]string) []string {
	row := make([]string, l.width)

	for key, value := range values {
		if i, ok := l.index[key]; ok {
			row[i] = value
		}
	}

	return row
}

func (l Layout) ResourceFromRow(row []string) Resource {
	return Resource{
		Location:     l.Value(row, KeyLocation),
		Name:         l.Value(row, KeyResourceName),
		TimeSlots:    ParseSlots(l.Value(row, KeyTimeSlots)),
		OwnerContact: l.Value(row, KeyOwnerContact),
	}
}

// ResourcesFromRows maps data rows onto resources. Rows without a resource
// name are not bookable and are skipped.
func (l Layout) ResourcesFromRows(rows [][]string) []Resource {
	resources := make([]Resource, 0, len(rows))

	for _, row := range rows {
		resource := l.ResourceFromRow(row)

		if len(resource.Name) == 0 {
			continue
		}

		resources = append(resources, resource)
	}

	return resources
}

func (l Layout) BookingFromRow(row []string) Booking {
	return Booking{
		RequesterID:   l.Value(row, KeyRequesterID),
		RequesterName: l.Value(row, KeyRequesterName),
		Phone:         l.Value(row, KeyPhone),
		ResourceName:  l.Value(row, KeyResourceName),
		TimeSlot:      l.Value(row, KeyTimeSlot),
		Status:        Status(l.Value(row, KeyStatus)),
	}
}

func (l Layout) BookingRow(booking Booking) []string {
	return l.Row(map[string]string{
		KeyRequesterID:   booking.RequesterID,
		KeyRequesterName: booking.RequesterName,
		KeyPhone:         booking.Phone,
		KeyResourceName:  booking.ResourceName,
		KeyTimeSlot:      booking.TimeSlot,
		KeyStatus:        string(booking.Status),
	})
}

// SQL table layouts used by the postgres and sqlite backends.
var (
	SQLResourceSchema = Schema{
		Name: "resources",
		Columns: []Column{
			{Key: KeyLocation, Header: "location", Required: true},
			{Key: KeyResourceName, Header: "resource_name", Required: true},
			{Key: KeyTimeSlots, Header: "time_slots", Required: true},
			{Key: KeyOwnerContact, Header: "owner_contact"},
		},
	}

	SQLBookingSchema = Schema{
		Name: "bookings",
		Columns: []Column{
			{Key: KeyRequesterID, Header: "requester_id", Required: true},
			{Key: KeyRequesterName, Header: "requester_name"},
			{Key: KeyPhone, Header: "phone"},
			{Key: KeyResourceName, Header: "resource_name", Required: true},
			{Key: KeyTimeSlot, Header: "time_slot", Required: true},
			{Key: KeyStatus, Header: "status", Required: true},
		},
	}
)

// tableLayout is what the SQL backends keep per table after Init: the schema
// columns that exist, in schema order, and a layout indexing rows read in
// that order.
type tableLayout struct {
	columns []Column
	layout  Layout
	orderBy string
}

func (t tableLayout) ready() bool {
	return len(t.columns) != 0
}

func resolveTable(schema Schema, header []string) (tableLayout, error) {
	layout, err := schema.Resolve(header)

	if err != nil {
		return tableLayout{}, err
	}

	columns := presentColumns(schema, layout)
	names := make([]string, 0, len(columns))

	for _, column := range columns {
		names = append(names, column.Header)
	}

	compact, err := schema.Resolve(names)

	if err != nil {
		return tableLayout{}, err
	}

	return tableLayout{columns: columns, layout: compact}, nil
}

func (t tableLayout) names() []string {
	names := make([]string, 0, len(t.columns))

	for _, column := range t.columns {
		names = append(names, column.Header)
	}

	return names
}

func presentColumns(schema Schema, layout Layout) []Column {
	present := []Column{}

	for _, column := range schema.Columns {
		if layout.Has(column.Key) {
			present = append(present, column)
		}
	}

	return present
}
