// Package export writes packing results to files the cutting crew works from.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FilmCut/internal/model"
)

// Sheet names used in the cut list workbook.
const (
	SheetCutList  = "Cut List"
	SheetSummary  = "Summary"
	SheetRemnants = "Remnants"
)

var cutListHeader = []string{"Bin", "Piece", "Label", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)", "Rotated", "Pinned"}

// WriteCutListXLSX writes the result as a workbook with one row per
// placement, a summary sheet and the reusable remnants.
func WriteCutListXLSX(path string, result model.PackingResult, opts model.PackingOptions) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCutList); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeCutList(f, result, bold); err != nil {
		return fmt.Errorf("write cut list: %w", err)
	}
	if err := writeSummary(f, result, opts, bold); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := writeRemnants(f, model.DetectAllRemnants(result, opts), bold); err != nil {
		return fmt.Errorf("write remnants: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeHeader(f *excelize.File, sheet string, header []string, style int) error {
	values := make([]interface{}, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeCutList(f *excelize.File, result model.PackingResult, bold int) error {
	if err := writeHeader(f, SheetCutList, cutListHeader, bold); err != nil {
		return err
	}
	for i, p := range result.Placements {
		row := []interface{}{
			p.BinIndex + 1, p.InstanceID, p.Label,
			p.X, p.Y, p.Width, p.Height,
			yesNo(p.Rotated), yesNo(p.Pinned),
		}
		if err := writeRow(f, SheetCutList, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetCutList, "B", "C", 18)
}

func writeSummary(f *excelize.File, result model.PackingResult, opts model.PackingOptions, bold int) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Strip width (mm)", opts.StripWidth},
		{"Max strip length (mm)", opts.MaxStripLength},
		{"Padding (mm)", opts.Padding},
		{"Rotation allowed", yesNo(opts.AllowRotation)},
		{"Bins", len(result.Bins)},
		{"Pieces", len(result.Placements)},
		{"Used length (mm)", result.UsedLength},
		{"Used area (mm²)", result.TotalUsedArea},
		{"Piece area (mm²)", result.TotalPieceArea},
		{"Waste area (mm²)", result.TotalWasteArea},
		{"Waste (%)", result.WastePercentage},
	}
	for i, r := range rows {
		if err := writeRow(f, SheetSummary, i+1, r); err != nil {
			return err
		}
	}
	last := fmt.Sprintf("A%d", len(rows))
	if err := f.SetCellStyle(SheetSummary, "A1", last, bold); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "A", 24)
}

func writeRemnants(f *excelize.File, remnants []model.Remnant, bold int) error {
	if len(remnants) == 0 {
		return nil
	}
	if _, err := f.NewSheet(SheetRemnants); err != nil {
		return err
	}
	header := []string{"Bin", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)", "Tail"}
	if err := writeHeader(f, SheetRemnants, header, bold); err != nil {
		return err
	}
	for i, r := range remnants {
		row := []interface{}{r.BinIndex + 1, r.X, r.Y, r.Width, r.Height, yesNo(r.Tail)}
		if err := writeRow(f, SheetRemnants, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
