package table

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/athapong/graphload/pkg/load"
)

// ReadCSV builds a table from CSV input. The first row names the columns;
// cell values stay strings.
func ReadCSV(r io.Reader) (*Mem, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return NewMem(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading csv header")
	}

	t := NewMem(header...)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading csv row")
		}
		rec := make(load.Record, len(header))
		for i, col := range header {
			rec[col] = row[i]
		}
		t.Append(rec)
	}
	return t, nil
}
