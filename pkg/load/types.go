// Package load synthesizes idempotent Cypher upsert statements and drives
// them across tabular record sets in bounded-size chunks.
package load

import "context"

// Record is one row of tabular input, keyed by column name.
type Record map[string]interface{}

// Table is the tabular collaborator: a fixed column set plus the row records
// derived from it. Implementations live outside this package.
type Table interface {
	Columns() []string
	Records() []Record
}

// Executor runs a single Cypher statement and returns its result rows.
// Implementations own connection management, timeouts and cancellation.
type Executor interface {
	Run(ctx context.Context, cypher string, params map[string]interface{}) ([]map[string]interface{}, error)
}

// KeyMapping ties a key property on a node to the record column holding its
// value. The property and column names are often identical but need not be.
type KeyMapping struct {
	Property string
	Column   string
}

// Key maps a key property to the column of the same name.
func Key(name string) KeyMapping {
	return KeyMapping{Property: name, Column: name}
}

// KeyAs maps a key property to a differently named column.
func KeyAs(property, column string) KeyMapping {
	return KeyMapping{Property: property, Column: column}
}

// LabelPair names the labels of a relationship's endpoints.
type LabelPair struct {
	Source string
	Target string
}

// Label is shorthand for both endpoints carrying the same label.
func Label(label string) LabelPair {
	return LabelPair{Source: label, Target: label}
}

// Labels names the source and target endpoint labels separately.
func Labels(source, target string) LabelPair {
	return LabelPair{Source: source, Target: target}
}

// NodeSpec describes one node upsert load.
type NodeSpec struct {
	Key   KeyMapping
	Label string
	// Columns is the full column set of the input. The loader fills it from
	// the table; every non-key column becomes a node property.
	Columns []string
}

// RelSpec describes one relationship upsert load. Endpoint nodes must already
// exist; records whose endpoints are missing are skipped by the database.
type RelSpec struct {
	Labels    LabelPair
	SourceKey KeyMapping
	TargetKey KeyMapping
	Type      string
	// RelKey distinguishes parallel relationships of the same type between
	// the same two endpoints. When empty, at most one relationship of the
	// type exists per endpoint pair and a repeat load overwrites it.
	RelKey  string
	Columns []string
}
