package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"teamop.dk/bosted/model"
	"teamop.dk/bosted/utils"
)

const shiftPlanSheet = "Vagtplan"

var shiftPlanHeader = []string{"ID", "Start", "Slut", "Afdeling", "Beskrivelse", "Personale"}

func cells(row []string) []any {
	return utils.Map(row, func(v string) any { return v })
}

// ShiftPlanRows flattens shifts into the columns of the exported plan.
func ShiftPlanRows(shifts []model.Shift) [][]string {
	rows := make([][]string, 0, len(shifts))
	for _, shift := range shifts {
		names := utils.Map(shift.AssignedUsers, model.User.DisplayName)
		rows = append(rows, []string{
			fmt.Sprintf("%d", shift.ID),
			shift.StartDateTime,
			shift.EndDateTime,
			utils.Format(shift.SubLocationName),
			utils.Format(shift.TaskDescription),
			strings.Join(names, ", "),
		})
	}
	return rows
}

// ExportShiftPlan writes shifts as an xlsx workbook with a single sheet.
func ExportShiftPlan(shifts []model.Shift, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), shiftPlanSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := cells(shiftPlanHeader)
	if err := f.SetSheetRow(shiftPlanSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range ShiftPlanRows(shifts) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := cells(row)
		if err := f.SetSheetRow(shiftPlanSheet, cell, &values); err != nil {
			return fmt.Errorf("write shift %s: %w", row[0], err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportShiftPlanCSV writes the same columns as ExportShiftPlan as CSV.
func ExportShiftPlanCSV(shifts []model.Shift, w io.Writer) error {
	records := append([][]string{shiftPlanHeader}, ShiftPlanRows(shifts)...)
	return utils.WriteCSV(w, records)
}
