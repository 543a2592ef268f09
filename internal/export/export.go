// Package export writes assessment history to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/moodcheck/internal/assessment"
)

// SheetName is the worksheet holding one row per assessment.
const SheetName = "Assessments"

// fixedHeaders precede one column per feature.
var fixedHeaders = []string{"ID", "Timestamp", "Label", "Classifier", "Warnings"}

// WriteWorkbook writes results as an .xlsx workbook to w. Feature columns
// follow columns; a result lacking a column gets 0.
func WriteWorkbook(w io.Writer, results []*assessment.Result, columns []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, 0, len(fixedHeaders)+len(columns))
	for _, h := range fixedHeaders {
		header = append(header, h)
	}
	for _, c := range columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	for i, r := range results {
		row := make([]any, 0, len(header))
		row = append(row,
			r.ID,
			r.Timestamp.UTC().Format(time.RFC3339),
			r.Label,
			r.Classifier,
			joinWarnings(r),
		)
		for _, c := range columns {
			v, _ := r.Features.Value(c)
			row = append(row, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "B", 38); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func joinWarnings(r *assessment.Result) string {
	msgs := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}
