package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"riverdesk/internal/desk"
)

var equipmentCmd = &cobra.Command{
	Use:     "equipment",
	Aliases: []string{"eq"},
	Short:   "Manage equipment",
}

var equipmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List equipment",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "EquipmentList")
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.ListEquipment(cmdContext(cmd))
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No equipment.")
			return nil
		}

		for _, e := range items {
			online := " "
			if e.IsOnline {
				online = "*"
			}
			fmt.Printf("%s %-24s  %-12s  %-16s  %-20s  %s\n",
				online, e.ID, e.Type, e.Status, e.FolderName(), e.Name)
		}
		return nil
	},
}

var equipmentAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Register a new item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		rawType, _ := flags.GetString("type")
		rawStatus, _ := flags.GetString("status")
		serial, _ := flags.GetString("serial")
		purchase, _ := flags.GetString("purchase")
		warranty, _ := flags.GetString("warranty")
		noWarranty, _ := flags.GetBool("no-warranty")
		location, _ := flags.GetString("location")
		notes, _ := flags.GetString("notes")

		t, err := desk.ParseEquipmentType(rawType)
		if err != nil {
			return err
		}
		s, err := desk.ParseEquipmentStatus(rawStatus)
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "EquipmentAdd")
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.AddEquipment(cmdContext(cmd), desk.Equipment{
			Name:               args[0],
			SerialNumber:       serial,
			Type:               t,
			Status:             s,
			PurchaseDate:       purchase,
			WarrantyExpireDate: warranty,
			NoWarranty:         noWarranty,
			Location:           location,
			Notes:              notes,
		})
		if err != nil {
			return fmt.Errorf("adding equipment: %w", err)
		}

		fmt.Printf("Added %s (%s)\n", created.ID, created.Name)
		return nil
	},
}

var equipmentStatusCmd = &cobra.Command{
	Use:   "status ID STATUS",
	Short: "Set the lifecycle status of an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "EquipmentStatus")
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.SetStatus(cmdContext(cmd), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s (%s)\n", e.ID, e.Status, e.Status.Label())
		return nil
	},
}

var equipmentOnlineCmd = &cobra.Command{
	Use:   "online ID",
	Short: "Toggle the online flag of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "EquipmentOnline")
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.ToggleOnline(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}
		state := "offline"
		if e.IsOnline {
			state = "online"
		}
		fmt.Printf("%s is now %s\n", e.ID, state)
		return nil
	},
}

var equipmentMoveCmd = &cobra.Command{
	Use:   "move ID LOCATION",
	Short: "Relocate an item, optionally with coordinates",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pos *desk.LatLng
		if raw, _ := cmd.Flags().GetString("at"); raw != "" {
			p, err := parseLatLng(raw)
			if err != nil {
				return err
			}
			pos = &p
		}

		a, err := newApp(cmd, "EquipmentMove")
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.Relocate(cmdContext(cmd), args[0], args[1], pos)
		if err != nil {
			return err
		}
		fmt.Printf("%s moved to %s\n", e.ID, e.FolderName())
		return nil
	},
}

var equipmentDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "EquipmentDelete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteEquipment(cmdContext(cmd), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

// parseLatLng reads "lat,lng".
func parseLatLng(raw string) (desk.LatLng, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return desk.LatLng{}, fmt.Errorf("coordinates must be LAT,LNG: %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return desk.LatLng{}, fmt.Errorf("parsing latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return desk.LatLng{}, fmt.Errorf("parsing longitude: %w", err)
	}
	p := desk.LatLng{Lat: lat, Lng: lng}
	if !p.Valid() {
		return desk.LatLng{}, fmt.Errorf("coordinates out of range: %q", raw)
	}
	return p, nil
}

func init() {
	equipmentCmd.AddCommand(equipmentListCmd)
	equipmentCmd.AddCommand(equipmentAddCmd)
	equipmentCmd.AddCommand(equipmentStatusCmd)
	equipmentCmd.AddCommand(equipmentOnlineCmd)
	equipmentCmd.AddCommand(equipmentMoveCmd)
	equipmentCmd.AddCommand(equipmentDeleteCmd)

	add := equipmentAddCmd.Flags()
	add.StringP("type", "t", string(desk.TypeOther), "Equipment type ("+typeNames()+")")
	add.StringP("status", "s", string(desk.StatusAvailable), "Lifecycle status")
	add.String("serial", "", "Serial number")
	add.String("purchase", "", "Purchase date (YYYY-MM-DD)")
	add.String("warranty", "", "Warranty expiry date (YYYY-MM-DD)")
	add.Bool("no-warranty", false, "Item has no warranty")
	add.StringP("location", "l", "", "Folder the item lives in")
	add.String("notes", "", "Free-form notes")
	equipmentAddCmd.MarkFlagRequired("purchase")

	equipmentMoveCmd.Flags().String("at", "", "Coordinates as LAT,LNG")

	rootCmd.AddCommand(equipmentCmd)
}

func typeNames() string {
	var names []string
	for _, t := range desk.EquipmentTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
