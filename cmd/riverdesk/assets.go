package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"riverdesk/internal/desk"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Manage SIM cards",
}

var simListCmd = &cobra.Command{
	Use:   "list",
	Short: "List SIM cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "SimList")
		if err != nil {
			return err
		}
		defer a.Close()

		cards, err := a.ListSimCards(cmdContext(cmd))
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			fmt.Println("No SIM cards.")
			return nil
		}
		for _, c := range cards {
			fmt.Printf("%-14s  %-12s  %-7s  %s\n", c.ID, c.PhoneNumber, c.Status, c.Location)
		}
		return nil
	},
}

var simAddCmd = &cobra.Command{
	Use:   "add PHONE",
	Short: "Register a SIM card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		location, _ := cmd.Flags().GetString("location")
		notes, _ := cmd.Flags().GetString("notes")

		a, err := newApp(cmd, "SimAdd")
		if err != nil {
			return err
		}
		defer a.Close()

		card, err := a.AddSimCard(cmdContext(cmd), desk.SimCard{
			PhoneNumber: args[0],
			Location:    location,
			Notes:       notes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added SIM %s (%s)\n", card.ID, card.PhoneNumber)
		return nil
	},
}

var simStatusCmd = &cobra.Command{
	Use:   "status ID STATUS",
	Short: "Set the status of a SIM card (ACTIVE, BROKEN, LOST)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "SimStatus")
		if err != nil {
			return err
		}
		defer a.Close()

		card, err := a.SetSimStatus(cmdContext(cmd), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("SIM %s is now %s\n", card.ID, card.Status)
		return nil
	},
}

var spotCmd = &cobra.Command{
	Use:   "spot",
	Short: "Inspect advertising spots",
}

var spotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List advertising spots",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "SpotList")
		if err != nil {
			return err
		}
		defer a.Close()

		spots, err := a.ListSpots(cmdContext(cmd))
		if err != nil {
			return err
		}
		for _, s := range spots {
			where := "-"
			if p, ok := s.Coordinates(); ok {
				where = fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lng)
			}
			route := ""
			if s.IsBoat {
				route = fmt.Sprintf("  route:%d", len(s.Route))
			}
			fmt.Printf("%-20s  %-15s  %-22s  %s%s\n", s.ID, s.Type, where, s.Name, route)
		}
		return nil
	},
}

var geocodeCmd = &cobra.Command{
	Use:   "geocode QUERY",
	Short: "Look up coordinates for a place name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd, "Geocode")
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.Geocode(cmdContext(cmd), args[0], limit)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("%.6f,%.6f  %s\n", r.Position.Lat, r.Position.Lng, r.Name)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the registry",
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx FILE",
	Short: "Write the inventory and warranty alerts to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ExportXLSX")
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating %s: %w", args[0], err)
		}
		if err := a.ExportXLSX(cmdContext(cmd), f); err != nil {
			f.Close()
			return fmt.Errorf("exporting: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", args[0], err)
		}
		fmt.Printf("Wrote %s\n", args[0])
		return nil
	},
}

func init() {
	simCmd.AddCommand(simListCmd)
	simCmd.AddCommand(simAddCmd)
	simCmd.AddCommand(simStatusCmd)
	simAddCmd.Flags().StringP("location", "l", "", "Where the SIM card is installed")
	simAddCmd.Flags().String("notes", "", "Free-form notes")

	spotCmd.AddCommand(spotListCmd)

	geocodeCmd.Flags().IntP("limit", "n", 5, "Maximum number of results")

	exportCmd.AddCommand(exportXLSXCmd)

	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(spotCmd)
	rootCmd.AddCommand(geocodeCmd)
	rootCmd.AddCommand(exportCmd)
}
