package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"riverdesk/internal/desk"
	"riverdesk/internal/mapsync"
	"riverdesk/internal/qrcode"
)

var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Print QR codes for labels",
}

var qrItemCmd = &cobra.Command{
	Use:   "item ID",
	Short: "QR code for one item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "QRItem")
		if err != nil {
			return err
		}
		defer a.Close()

		payload, err := a.ItemQR(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}
		return emitQR(cmd, payload)
	},
}

var qrFolderCmd = &cobra.Command{
	Use:   "folder NAME",
	Short: "QR code listing a folder's contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "QRFolder")
		if err != nil {
			return err
		}
		defer a.Close()

		payload, err := a.FolderQR(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}
		return emitQR(cmd, payload)
	},
}

var qrReadCmd = &cobra.Command{
	Use:   "read PAYLOAD",
	Short: "Decode a scanned item label and show the item's current record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, err := desk.ParseItemPayload(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "QRRead")
		if err != nil {
			return err
		}
		defer a.Close()

		item, err := a.GetEquipment(cmdContext(cmd), label.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n", item.ID, item.Name)
		fmt.Printf("  status:   %s\n", item.Status.Label())
		fmt.Printf("  location: %s\n", item.Location)
		current := desk.NewItemPayload(item)
		if current != label {
			fmt.Println("  label is out of date; reprint with: riverdesk qr item " + item.ID)
		}
		return nil
	},
}

// emitQR writes a PNG when --png is given, otherwise prints the payload and
// a terminal rendering of the code.
func emitQR(cmd *cobra.Command, payload string) error {
	if path, _ := cmd.Flags().GetString("png"); path != "" {
		size, _ := cmd.Flags().GetInt("size")
		data, err := qrcode.RenderPNG(payload, size)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	art, err := qrcode.RenderTerminal(payload)
	if err != nil {
		return err
	}
	fmt.Println(payload)
	fmt.Print(art)
	return nil
}

var warrantyCmd = &cobra.Command{
	Use:   "warranty",
	Short: "List items whose warranty expires soon or has expired",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "WarrantyAlerts")
		if err != nil {
			return err
		}
		defer a.Close()

		alerts, err := a.WarrantyAlerts(cmdContext(cmd))
		if err != nil {
			return err
		}
		if len(alerts) == 0 {
			fmt.Println("All warranties OK.")
			return nil
		}

		for _, al := range alerts {
			var when string
			switch {
			case al.State.Status == desk.WarrantyExpired:
				when = fmt.Sprintf("expired %d day(s) ago", al.State.Days)
			case al.State.Days == 0:
				when = "expires today"
			default:
				when = fmt.Sprintf("expires in %d day(s)", al.State.Days)
			}
			fmt.Printf("%-8s  %-24s  %s  %s  %s\n",
				al.State.Status, al.Equipment.ID, al.Equipment.WarrantyExpireDate, when, al.Equipment.Name)
		}
		return nil
	},
}

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Print the map overlay for the current data",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter mapsync.Filter
		if raw, _ := cmd.Flags().GetString("types"); raw != "" {
			for _, t := range strings.Split(raw, ",") {
				filter.Types = append(filter.Types, desk.AdSpotType(strings.ToUpper(strings.TrimSpace(t))))
			}
		}
		filter.BoatsOnly, _ = cmd.Flags().GetBool("boats")
		filter.HideEquipment, _ = cmd.Flags().GetBool("hide-equipment")

		a, err := newApp(cmd, "Markers")
		if err != nil {
			return err
		}
		defer a.Close()

		plan, err := a.Markers(cmdContext(cmd), filter)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(plan.Markers))
		for id := range plan.Markers {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			m := plan.Markers[id]
			fmt.Printf("%-10s  %-28s  %9.5f,%10.5f  %s  %s\n",
				m.Kind, m.ID, m.Position.Lat, m.Position.Lng, m.Color, m.Label)
		}
		for _, s := range plan.Animated {
			fmt.Printf("%-10s  %-28s  %d waypoint(s)  %s\n", mapsync.KindAnimation, s.ID, len(s.Route), s.Name)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recorded operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd, "History")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(cmdContext(cmd), limit)
		if err != nil {
			return err
		}
		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			fmt.Printf("#%d  %-16s  %s  %-7s  %-8s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				op.Status,
				op.FinishedAt.Sub(op.StartedAt).Round(time.Millisecond),
				op.Parameters,
			)
		}
		return nil
	},
}

func init() {
	qrCmd.AddCommand(qrItemCmd)
	qrCmd.AddCommand(qrFolderCmd)
	qrCmd.AddCommand(qrReadCmd)
	qrCmd.PersistentFlags().String("png", "", "Write a PNG to this path instead of printing")
	qrCmd.PersistentFlags().Int("size", qrcode.DefaultSize, "PNG edge length in pixels")

	markersCmd.Flags().String("types", "", "Comma-separated ad spot types to show")
	markersCmd.Flags().Bool("boats", false, "Show only boats")
	markersCmd.Flags().Bool("hide-equipment", false, "Hide equipment markers")

	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")

	rootCmd.AddCommand(qrCmd)
	rootCmd.AddCommand(warrantyCmd)
	rootCmd.AddCommand(markersCmd)
	rootCmd.AddCommand(historyCmd)
}
