package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	bk "github.com/hanksha/pitch-booking-bot/booking"
	"github.com/spf13/cobra"
)

type inventoryRow struct {
	Location  string   `json:"location"`
	Name      string   `json:"name"`
	Slots     int      `json:"slots"`
	FreeSlots []string `json:"freeSlots"`
}

func checkCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the booking store and print its inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig()

			if err != nil {
				return err
			}

			if err := cfg.Store.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStore(ctx, cfg.Store)

			if err != nil {
				return err
			}

			defer store.Close()

			if err := store.Ping(ctx); err != nil {
				return err
			}

			availability, err := bk.NewService(store).Availability(ctx, "")

			if err != nil {
				return err
			}

			bookings, err := store.ListBookings(ctx)

			if err != nil {
				return err
			}

			rows := inventory(availability)

			if outputJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(rows)
			}

			fmt.Printf("%v backend OK: %d resources, %d bookings\n", cfg.Store.Backend, len(availability), len(bookings))

			if len(rows) == 0 {
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
			fmt.Fprintln(writer, "LOCATION\tPITCH\tSLOTS\tFREE")

			for _, row := range rows {
				fmt.Fprintf(writer, "%s\t%s\t%d\t%s\n", row.Location, row.Name, row.Slots, strings.Join(row.FreeSlots, ", "))
			}

			return writer.Flush()
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output JSON")

	return cmd
}

func inventory(availability []bk.Availability) []inventoryRow {
	rows := []inventoryRow{}

	for _, entry := range availability {
		rows = append(rows, inventoryRow{
			Location:  entry.Location,
			Name:      entry.Name,
			Slots:     len(entry.TimeSlots),
			FreeSlots: entry.FreeSlots,
		})
	}

	return rows
}
