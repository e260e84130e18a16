package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"riverdesk/internal/desk"
)

const (
	EquipmentSheet = "Equipment"
	AlertsSheet    = "Warranty"
)

// EquipmentHeaders are the column titles of the equipment sheet.
var EquipmentHeaders = []string{
	"ID", "Name", "Serial", "Type", "Status", "Folder",
	"Purchase Date", "Warranty Expire", "Warranty Status", "Days", "Installed", "Online", "Notes",
}

// EquipmentRows renders items as sheet rows, grouped by folder in folder
// order and sorted within each folder the same way the QR export is.
func EquipmentRows(items []desk.Equipment, today time.Time) [][]string {
	groups := desk.GroupByFolder(items, nil)

	var rows [][]string
	for _, folder := range desk.FolderNames(groups) {
		for _, e := range desk.SortFolderContents(groups[folder], today) {
			status, days := warrantyColumns(e, today)
			online := "no"
			if e.IsOnline {
				online = "yes"
			}
			warranty := e.WarrantyExpireDate
			if e.NoWarranty {
				warranty = desk.NoWarrantyMarker
			}
			rows = append(rows, []string{
				e.ID, e.Name, e.SerialNumber, e.Type.Label(), e.Status.Label(), folder,
				e.PurchaseDate, warranty, status, days, e.InstallationDate, online, e.Notes,
			})
		}
	}
	return rows
}

func warrantyColumns(e desk.Equipment, today time.Time) (string, string) {
	expiry, ok, err := e.Warranty()
	if err != nil || !ok {
		return "", ""
	}
	state := desk.EvaluateWarranty(expiry, today)
	return string(state.Status), fmt.Sprint(state.Remaining)
}

// WriteEquipment writes an xlsx workbook with the equipment sheet and a
// sheet of warranty alerts.
func WriteEquipment(w io.Writer, items []desk.Equipment, alerts []desk.WarrantyAlert, today time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeSheet(f, EquipmentSheet, EquipmentHeaders, EquipmentRows(items, today), headerStyle); err != nil {
		return err
	}

	alertRows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		alertRows = append(alertRows, []string{
			a.Equipment.ID, a.Equipment.Name, a.Equipment.FolderName(),
			a.Equipment.WarrantyExpireDate, string(a.State.Status), fmt.Sprint(a.State.Days),
		})
	}
	alertHeaders := []string{"ID", "Name", "Folder", "Warranty Expire", "Status", "Days"}
	if err := writeSheet(f, AlertsSheet, alertHeaders, alertRows, headerStyle); err != nil {
		return err
	}

	index, err := f.GetSheetIndex(EquipmentSheet)
	if err != nil {
		return fmt.Errorf("locating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]string, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return fmt.Errorf("writing %s: %w", cell, err)
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(name, "A", last, 18); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	return nil
}
