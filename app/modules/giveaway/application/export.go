package giveawayservice

import (
	"fmt"

	giveawaydb "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/repositories"
	"github.com/xuri/excelize/v2"
)

const entriesSheet = "Entries"

var entriesHeader = []any{"BC Username", "BC User ID", "Email", "Deposit Amount", "Prize", "Entered At"}

// EntriesWorkbook renders entries as a single-sheet XLSX file.
func EntriesWorkbook(entries []giveawaydb.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", entriesSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(entriesSheet, "A1", &entriesHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range entries {
		prize := ""
		if e.Prize != nil {
			prize = *e.Prize
		}
		row := []any{
			e.BCUsername,
			e.BCUserID,
			e.Email,
			e.DepositAmount.InexactFloat64(),
			prize,
			e.EnteredAt.UTC().Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(entriesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(entriesSheet, "A", "F", 22); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
