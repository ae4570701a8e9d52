// Package trackers implements Trackers, which track and save data
// generated by experiments
package trackers

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	ts "github.com/samuelfneumann/pharmsim/timestep"
)

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// Zstd is the filename suffix that makes Trackers compress saved data
const Zstd = ".zst"

// save gob-encodes data into filename, zstd compressed if filename
// ends in Zstd
func save(filename string, data []float64) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not open save file: %v", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.Writer = file
	if strings.HasSuffix(filename, Zstd) {
		enc, zerr := zstd.NewWriter(file)
		if zerr != nil {
			return fmt.Errorf("could not create compressor: %v", zerr)
		}
		defer func() {
			if cerr := enc.Close(); err == nil {
				err = cerr
			}
		}()
		w = enc
	}

	if err := gob.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("could not encode data: %v", err)
	}
	return nil
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %v", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(filename, Zstd) {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("loadData: could not create "+
				"decompressor: %v", err)
		}
		defer dec.Close()
		r = dec
	}

	var data []float64
	if err := gob.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %v", err)
	}
	return data, nil
}
