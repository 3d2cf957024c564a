package export

import "errors"

var (
	ErrReadCSV   = errors.New("export: failed to read csv")
	ErrWriteXLSX = errors.New("export: failed to write xlsx")
)
