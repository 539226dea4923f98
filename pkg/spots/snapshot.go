package spots

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
)

// Save writes the collection as a stream of gob-encoded Spots.
func Save(w io.Writer, all []Spot) error {
	enc := gob.NewEncoder(w)
	for i := range all {
		if err := enc.Encode(all[i]); err != nil {
			return fmt.Errorf("error encoding %s: %v", all[i].ID, err)
		}
	}
	return nil
}

// Load reads a snapshot written by Save.
func Load(r io.Reader) ([]Spot, error) {
	dec := gob.NewDecoder(r)
	var all []Spot
	for {
		var s Spot
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		all = append(all, s)
	}
	return all, nil
}

func SaveFile(filename string, all []Spot) error {
	w, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating %s: %v", filename, err)
	}
	if err := Save(w, all); err != nil {
		w.Close()
		return fmt.Errorf("error writing %s: %v", filename, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("error closing %s: %v", filename, err)
	}
	return nil
}

func LoadFile(filename string) ([]Spot, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening %s for reading: %v", filename, err)
	}
	defer r.Close()
	all, err := Load(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %v", filename, err)
	}
	return all, nil
}
