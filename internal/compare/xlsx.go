package compare

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

func (t *Tray) workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, 0, len(t.elements)+1)
	for _, h := range t.Header() {
		header = append(header, h)
	}
	if err := sw.SetRow("A1", header); err != nil {
		f.Close()
		return nil, err
	}

	for i, fd := range fields() {
		row := []interface{}{fd.label}
		for _, e := range t.elements {
			if fd.value != nil {
				row = append(row, fd.value(e))
			} else {
				row = append(row, fd.text(e))
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteXLSX saves the comparison as a spreadsheet with one column per element.
func (t *Tray) WriteXLSX(path string) error {
	f, err := t.workbook()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// EncodeXLSX writes the spreadsheet to w.
func (t *Tray) EncodeXLSX(w io.Writer) error {
	f, err := t.workbook()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}
