// Package export converts tabular data into Excel workbooks.
//
// The dispatcher uses it for format=xlsx: the action's "<action>_csv" view
// is rendered as usual and the CSV output is converted into a single sheet.
//
//	var buf bytes.Buffer
//	if err := export.CSVToXLSX(&buf, strings.NewReader("id,name\n1,Ann\n"), "users"); err != nil {
//	    return err
//	}
package export
