package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is used when the sheet name is empty or invalid.
const DefaultSheet = "Sheet1"

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

// CSVToXLSX reads CSV from r and writes a single-sheet workbook to w.
// A leading UTF-8 byte order mark is ignored. Cells that hold plain
// decimal numbers are stored as numbers, everything else as text.
func CSVToXLSX(w io.Writer, r io.Reader, sheet string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Join(ErrReadCSV, err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return errors.Join(ErrReadCSV, err)
	}
	return WriteXLSX(w, records, sheet)
}

// WriteXLSX writes rows to a single-sheet workbook.
func WriteXLSX(w io.Writer, rows [][]string, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	name := SheetName(sheet)
	if name != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, name); err != nil {
			return errors.Join(ErrWriteXLSX, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Join(ErrWriteXLSX, err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return errors.Join(ErrWriteXLSX, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Join(ErrWriteXLSX, err)
	}
	return nil
}

// SheetName returns s cleaned up to a valid sheet name.
func SheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.Trim(s, "'"))
	if len([]rune(s)) > maxSheetName {
		s = string([]rune(s)[:maxSheetName])
	}
	if strings.TrimSpace(s) == "" {
		return DefaultSheet
	}
	return s
}

func cellValue(v string) any {
	if v == "" || (len(v) > 1 && v[0] == '0' && v[1] != '.') {
		return v
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil && !strings.ContainsAny(v, "eEnN") {
		return n
	}
	return v
}
