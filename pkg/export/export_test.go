package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dmitrymomot/mvc/pkg/export"
)

func TestCSVToXLSX(t *testing.T) {
	t.Parallel()

	in := "\xEF\xBB\xBFid,name,zip\n1,\"Doe, Jane\",01234\n2,Bob\n"
	var buf bytes.Buffer
	require.NoError(t, export.CSVToXLSX(&buf, strings.NewReader(in), "users/list"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	require.Equal(t, []string{"users_list"}, f.GetSheetList())

	rows, err := f.GetRows("users_list")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"id", "name", "zip"},
		{"1", "Doe, Jane", "01234"},
		{"2", "Bob"},
	}, rows)

	typ, err := f.GetCellType("users_list", "A2")
	require.NoError(t, err)
	require.NotEqual(t, excelize.CellTypeSharedString, typ)
}

func TestSheetName(t *testing.T) {
	t.Parallel()

	require.Equal(t, export.DefaultSheet, export.SheetName(""))
	require.Equal(t, "a_b", export.SheetName("a:b"))
	require.Len(t, []rune(export.SheetName(strings.Repeat("x", 40))), 31)
}

func TestCSVToXLSX_BadInput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := export.CSVToXLSX(&buf, strings.NewReader("a,\"b\n"), "x")
	require.ErrorIs(t, err, export.ErrReadCSV)
}
