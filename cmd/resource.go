package cmd

import (
	"errors"
	"fmt"
	"strings"

	bk "github.com/hanksha/pitch-booking-bot/booking"
	"github.com/hanksha/pitch-booking-bot/config"
	"github.com/spf13/cobra"
)

func resourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage the inventory of a local SQLite store",
	}

	cmd.AddCommand(resourceAddCmd())

	return cmd
}

func resourceAddCmd() *cobra.Command {
	var location string
	var name string
	var slots string
	var contact string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a bookable pitch",
		RunE: func(cmd *cobra.Command, args []string) error {
			resource := bk.Resource{
				Location:     strings.TrimSpace(location),
				Name:         strings.TrimSpace(name),
				TimeSlots:    bk.ParseSlots(slots),
				OwnerContact: strings.TrimSpace(contact),
			}

			if len(resource.Location) == 0 || len(resource.Name) == 0 || len(resource.TimeSlots) == 0 {
				return errors.New("--location, --name and --slots are required")
			}

			cfg, err := readConfig()

			if err != nil {
				return err
			}

			if cfg.Store.Backend != config.BackendSQLite {
				return fmt.Errorf("inventory of the %v backend is managed outside the bot", cfg.Store.Backend)
			}

			if err := cfg.Store.Validate(); err != nil {
				return err
			}

			store, err := bk.OpenSQLite(cfg.Store.SQLitePath)

			if err != nil {
				return err
			}

			defer store.Close()

			ctx := cmd.Context()

			if err := store.Init(ctx); err != nil {
				return err
			}

			if err := store.AddResource(ctx, resource); err != nil {
				return err
			}

			fmt.Printf("Added %v at %v (%v)\n", resource.Name, resource.Location, bk.FormatSlots(resource.TimeSlots))

			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Location of the pitch")
	cmd.Flags().StringVar(&name, "name", "", "Pitch name, unique within its location")
	cmd.Flags().StringVar(&slots, "slots", "", "Comma separated time slot labels")
	cmd.Flags().StringVar(&contact, "contact", "", "Owner phone number")

	return cmd
}
