// Package executor provides the Neo4j implementation of the load.Executor
// capability.
package executor

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"
	"github.com/pkg/errors"
)

// Neo4j runs Cypher statements against a Neo4j database. Each Run opens its
// own session and executes one auto-commit statement, which is what the
// server-side `IN TRANSACTIONS` batching of the maintenance queries requires.
type Neo4j struct {
	driver neo4j.Driver
}

// New creates an executor for the database at uri.
func New(uri, username, password string) (*Neo4j, error) {
	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, errors.Wrap(err, "creating Neo4j driver")
	}
	return &Neo4j{driver: driver}, nil
}

// Verify checks connectivity to the database.
func (e *Neo4j) Verify(ctx context.Context) error {
	return errors.Wrap(e.driver.VerifyConnectivity(), "verifying Neo4j connectivity")
}

// Close tears down the underlying driver.
func (e *Neo4j) Close() error {
	return e.driver.Close()
}

// Run implements load.Executor. Result rows are folded into maps keyed by
// their return column names.
func (e *Neo4j) Run(ctx context.Context, cypher string, params map[string]interface{}) ([]map[string]interface{}, error) {
	session := e.driver.NewSession(neo4j.SessionConfig{})
	defer session.Close()

	result, err := session.Run(cypher, params)
	if err != nil {
		return nil, errors.Wrap(err, "running cypher statement")
	}

	var rows []map[string]interface{}
	for result.Next() {
		record := result.Record()
		row := make(map[string]interface{}, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = record.Values[i]
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, errors.Wrap(err, "consuming cypher result")
	}

	return rows, nil
}
