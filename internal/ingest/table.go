package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var ErrEmptyFile = errors.New("file is empty or contains only headers")

// Row is one data line; Line is its 1-based position in the source including the header.
type Row struct {
	Line  int
	Cells []string
}

type Table struct {
	Header []string
	Rows   []Row
}

// ParseText splits comma-delimited text. Quoting is not supported: a comma always separates fields.
func ParseText(data []byte) (*Table, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.TrimRight(text, " \t\n")

	lines := strings.Split(text, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) == "" {
		return nil, ErrEmptyFile
	}

	t := &Table{Header: splitLine(lines[0])}
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t.Rows = append(t.Rows, Row{Line: i + 2, Cells: splitLine(line)})
	}
	return t, nil
}

func splitLine(line string) []string {
	cells := strings.Split(line, ",")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// ParseXLSX reads the first sheet of a workbook. Cells formatted as dates are read from their serial
// value, so they come out in the same layouts a text upload uses.
func ParseXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("can't open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("can't read sheet %q: %w", sheet, err)
	}

	dates := newDateCells(f, sheet)
	for i := 1; i < len(rows); i++ {
		for j, c := range rows[i] {
			if strings.TrimSpace(c) == "" {
				continue
			}
			if v, ok := dates.value(j+1, i+1); ok {
				rows[i][j] = v
			}
		}
	}

	for len(rows) > 0 && blank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if len(rows) < 2 || blank(rows[0]) {
		return nil, ErrEmptyFile
	}

	t := &Table{Header: trimCells(rows[0])}
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		t.Rows = append(t.Rows, Row{Line: i + 2, Cells: trimCells(cells)})
	}
	return t, nil
}

// dateCells rewrites date-formatted cells, whose display text depends on the workbook's number
// format, into ISO dates.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateCells) value(col, row int) (string, bool) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", false
	}
	idx, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil || !d.dateStyle(idx) {
		return "", false
	}
	raw, err := d.f.GetCellValue(d.sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", false
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	t = t.UTC().Round(time.Second)
	if t.Equal(t.Truncate(24 * time.Hour)) {
		return t.Format("2006-01-02"), true
	}
	return t.Format("2006-01-02T15:04:05"), true
}

func (d *dateCells) dateStyle(idx int) bool {
	if v, ok := d.styles[idx]; ok {
		return v
	}
	style, err := d.f.GetStyle(idx)
	v := err == nil && style != nil && dateFormat(style)
	d.styles[idx] = v
	return v
}

var (
	quotedRe  = regexp.MustCompile(`"[^"]*"|\\.|\[[^\]]*\]`)
	dateTokRe = regexp.MustCompile(`[dy]`)
)

// dateFormat reports whether a cell style renders its number as a calendar date.
func dateFormat(s *excelize.Style) bool {
	if s.CustomNumFmt != nil {
		code := quotedRe.ReplaceAllString(strings.ToLower(*s.CustomNumFmt), "")
		return dateTokRe.MatchString(code)
	}
	switch id := s.NumFmt; {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 31, id == 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ParseUpload picks a parser by file extension; anything that is not a workbook is read as text.
func ParseUpload(fileName string, data []byte) (*Table, error) {
	if strings.EqualFold(filepath.Ext(fileName), ".xlsx") {
		return ParseXLSX(bytes.NewReader(data))
	}
	return ParseText(data)
}
