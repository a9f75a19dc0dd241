package load

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// DefaultBatchSize is the server-side sub-transaction size for bulk deletes.
const DefaultBatchSize = 1000

// DropAllGraphs drops every in-memory graph projection known to the GDS
// catalog, in listing order. An empty catalog is a no-op. Drops are not
// transactional across the set: a failure partway leaves the earlier graphs
// dropped, and a retry resumes with whatever remains.
func DropAllGraphs(ctx context.Context, exec Executor) error {
	rows, err := exec.Run(ctx, "CALL gds.graph.list() YIELD graphName RETURN graphName", nil)
	if err != nil {
		return errors.Wrap(err, "listing graph projections")
	}
	for _, row := range rows {
		name, _ := row["graphName"].(string)
		if name == "" {
			continue
		}
		_, err := exec.Run(ctx, "CALL gds.graph.drop($graphName)",
			map[string]interface{}{"graphName": name})
		if err != nil {
			return errors.Wrapf(err, "dropping graph projection %q", name)
		}
	}
	return nil
}

// DeleteRelationships deletes every relationship of the given type, optionally
// restricted to those leaving a source node with the given label. The delete
// runs as one statement batched into server-managed sub-transactions of
// batchSize rows; a size below one falls back to DefaultBatchSize.
func DeleteRelationships(ctx context.Context, exec Executor, relType string, batchSize int, sourceLabel string) error {
	if !validToken(relType) {
		return errors.Wrapf(ErrInvalidRelType, "relationship type %q", relType)
	}
	sourceFilter := ""
	if sourceLabel != "" {
		if err := validateLabel(sourceLabel); err != nil {
			return err
		}
		sourceFilter = ":" + sourceLabel
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	query := fmt.Sprintf(
		"MATCH(%s)-[r:%s]->()\nCALL {\n    WITH r\n    DELETE r\n} IN TRANSACTIONS OF %d ROWS",
		sourceFilter, relType, batchSize)
	_, err := exec.Run(ctx, query, nil)
	return errors.Wrapf(err, "deleting %s relationships", relType)
}

// DeleteNodes detach-deletes every node of the given label together with all
// of its relationships, batched server-side like DeleteRelationships.
func DeleteNodes(ctx context.Context, exec Executor, label string, batchSize int) error {
	if err := validateLabel(label); err != nil {
		return err
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	query := fmt.Sprintf(
		"MATCH(n:%s)\nCALL {\n    WITH n\n    DETACH DELETE n\n} IN TRANSACTIONS OF %d ROWS",
		label, batchSize)
	_, err := exec.Run(ctx, query, nil)
	return errors.Wrapf(err, "deleting %s nodes", label)
}
