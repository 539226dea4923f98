// Package opendata reads the municipal tourist-facility CSV (kankoushisetsu)
// published on the prefectural open-data portal.
//
// The file is UTF-8 with a leading BOM and a header row of Japanese column
// names. Column order is not stable between dataset releases, so rows are
// addressed by header name rather than position. Values are surrounded by
// stray whitespace often enough that every field access trims it.
package opendata

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Column names used by the tourist-facility dataset.
const (
	ColName        = "名称"
	ColLatitude    = "緯度"
	ColLongitude   = "経度"
	ColDescription = "説明"
	ColStartTime   = "開始時間"
	ColEndTime     = "終了時間"
	ColTimeNote    = "利用可能日時特記事項"
	ColPriceBasic  = "料金（基本）"
	ColPriceDetail = "料金（詳細）"
)

// Row is a single data row. Fields are resolved through the header, so a
// column missing from a particular release simply reads as empty.
type Row struct {
	columns map[string]int
	fields  []string
}

// Field returns the trimmed value of the named column. Absent columns and
// short rows read as "".
func (r Row) Field(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

type Scanner struct {
	csvReader *csv.Reader
	columns   map[string]int
	nextRow   Row
	err       error
}

// NewScanner reads the header row and prepares to scan data rows.
func NewScanner(r io.Reader) (*Scanner, error) {
	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return nil, err
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading header row: %v", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return &Scanner{csvReader: cr, columns: columns}, nil
}

var BOM = [3]byte{0xef, 0xbb, 0xbf}

func skipBOM(br *bufio.Reader) error {
	xs, err := br.Peek(3)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if xs[0] == BOM[0] && xs[1] == BOM[1] && xs[2] == BOM[2] {
		br.Discard(3)
	}
	return nil
}

func (s *Scanner) Scan() bool {
	fields, err := s.csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false
		}
		s.err = err
		return false
	}
	s.nextRow = Row{columns: s.columns, fields: fields}
	return true
}

func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) Row() Row {
	return s.nextRow
}
