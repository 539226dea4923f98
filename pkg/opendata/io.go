package opendata

import (
	"fmt"
	"io"
	"strings"
)

type Handler func(Row) error

type Filter func(Row) bool

func (f Filter) Complement() Filter {
	return func(r Row) bool {
		return !f(r)
	}
}

// FilterNameContains matches rows whose name contains any of the keywords.
// Combine with Complement to drop them.
func FilterNameContains(keywords ...string) Filter {
	return func(r Row) bool {
		name := r.Field(ColName)
		for _, k := range keywords {
			if strings.Contains(name, k) {
				return true
			}
		}
		return false
	}
}

func FilterHasName() Filter {
	return func(r Row) bool {
		return r.Field(ColName) != ""
	}
}

func FilterHasCoordinates() Filter {
	return func(r Row) bool {
		return r.Field(ColLatitude) != "" && r.Field(ColLongitude) != ""
	}
}

// Process scans the dataset and calls the handler for each row passing all filters.
func Process(r io.Reader, handler Handler, filters ...Filter) error {
	s, err := NewScanner(r)
	if err != nil {
		return err
	}
	for s.Scan() {
		row := s.Row()
		if wanted := applyFilters(row, filters); !wanted {
			continue
		}
		if err := handler(row); err != nil {
			return err
		}
	}
	return s.Err()
}

// ProcessSource is Process over a local path or portal URL.
func ProcessSource(src string, handler Handler, filters ...Filter) error {
	r, err := Open(src)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := Process(r, handler, filters...); err != nil {
		return fmt.Errorf("error processing %s: %v", src, err)
	}
	return nil
}

func applyFilters(r Row, filters []Filter) bool {
	for _, f := range filters {
		if !f(r) {
			return false
		}
	}
	return true
}
