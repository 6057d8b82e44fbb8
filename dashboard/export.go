package dashboard

import (
	"encoding/csv"
	"io"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/Nebras-project/nebras-dashboard/core"
)

// utf8BOM makes spreadsheet apps read Arabic CSV text as UTF-8.
const utf8BOM = "\ufeff"

func exportHeader(trans ut.Translator, cols []Column) []string {
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Header(trans)
	}
	return header
}

func exportRow(trans ut.Translator, cols []Column, rec Record) []string {
	row := make([]string, len(cols))
	for i, col := range cols {
		row[i] = col.Cell(trans, rec)
	}
	return row
}

// ExportCSV writes translated headers followed by one line per record.
func ExportCSV(w io.Writer, trans ut.Translator, cols []Column, rows []Record) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return errors.Wrap(err, "writing BOM")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader(trans, cols)); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, rec := range rows {
		if err := cw.Write(exportRow(trans, cols, rec)); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

// ExportXLSX writes the records to a single sheet workbook. The sheet is
// right-to-left when the translator's language is.
func ExportXLSX(w io.Writer, trans ut.Translator, sheet string, cols []Column, rows []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	if trans != nil && core.IsRTL(trans.Locale()) {
		rtl := true
		if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return errors.Wrap(err, "setting sheet direction")
		}
	}

	header := exportHeader(trans, cols)
	for i, text := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, text); err != nil {
			return errors.Wrapf(err, "setting header %s", cell)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}
	if err = f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return errors.Wrap(err, "styling header")
	}

	for r, rec := range rows {
		for c, text := range exportRow(trans, cols, rec) {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err = f.SetCellValue(sheet, cell, text); err != nil {
				return errors.Wrapf(err, "setting cell %s", cell)
			}
		}
	}

	return errors.Wrap(f.Write(w), "writing workbook")
}
