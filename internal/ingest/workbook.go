package ingest

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one raw worksheet: its name plus the formatted cell grid.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook holds every sheet of the source document in workbook order.
type Workbook struct {
	Sheets []Sheet
}

// ParseWorkbook opens XLSX bytes and extracts every sheet. Cell values come
// back formatted as strings; normalization does all further parsing.
func ParseWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}
	return wb, nil
}
