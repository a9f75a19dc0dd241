// Package table provides tabular-data sources for the loader: an in-memory
// table plus CSV and JSON-lines readers.
package table

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/athapong/graphload/pkg/load"
)

// Mem is an in-memory table. Columns keep first-seen order.
type Mem struct {
	columns []string
	known   mapset.Set[string]
	records []load.Record
}

// NewMem creates a table with the given columns.
func NewMem(columns ...string) *Mem {
	m := &Mem{known: mapset.NewSet[string]()}
	for _, col := range columns {
		m.AddColumn(col)
	}
	return m
}

// AddColumn registers a column; already-known names are ignored.
func (m *Mem) AddColumn(name string) {
	if m.known.Add(name) {
		m.columns = append(m.columns, name)
	}
}

// Append adds one record. The record's keys are not inspected; columns are
// whatever has been registered.
func (m *Mem) Append(rec load.Record) {
	m.records = append(m.records, rec)
}

// Columns implements load.Table.
func (m *Mem) Columns() []string {
	return m.columns
}

// Records implements load.Table.
func (m *Mem) Records() []load.Record {
	return m.records
}
