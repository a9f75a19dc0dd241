package table

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/athapong/graphload/pkg/load"
)

// ReadJSONL builds a table from JSON-lines input, one object per line.
// Columns keep the order of their first appearance; later lines may add
// columns that earlier records then simply lack.
func ReadJSONL(r io.Reader) (*Mem, error) {
	t := NewMem()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		parsed := gjson.Parse(text)
		if !gjson.Valid(text) || !parsed.IsObject() {
			return nil, errors.Errorf("invalid JSON object on line %d", line)
		}

		rec := load.Record{}
		parsed.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			t.AddColumn(name)
			rec[name] = value.Value()
			return true
		})
		t.Append(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning jsonl input")
	}
	return t, nil
}
