package load

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropAllGraphs(t *testing.T) {
	exec := &stubExecutor{
		run: func(call int, _ string, _ map[string]interface{}) ([]map[string]interface{}, error) {
			if call == 1 {
				return []map[string]interface{}{
					{"graphName": "people"},
					{"graphName": "movies"},
				}, nil
			}
			return nil, nil
		},
	}

	require.NoError(t, DropAllGraphs(context.Background(), exec))

	require.Len(t, exec.calls, 3)
	assert.Equal(t, "CALL gds.graph.list() YIELD graphName RETURN graphName", exec.calls[0].query)
	assert.Equal(t, "CALL gds.graph.drop($graphName)", exec.calls[1].query)
	assert.Equal(t, "people", exec.calls[1].params["graphName"])
	assert.Equal(t, "movies", exec.calls[2].params["graphName"])
}

func TestDropAllGraphsEmptyCatalog(t *testing.T) {
	exec := &stubExecutor{
		run: func(int, string, map[string]interface{}) ([]map[string]interface{}, error) {
			return nil, nil
		},
	}

	require.NoError(t, DropAllGraphs(context.Background(), exec))
	assert.Len(t, exec.calls, 1, "nothing to drop")
}

func TestDropAllGraphsStopsOnFailure(t *testing.T) {
	boom := errors.New("graph busy")
	exec := &stubExecutor{
		run: func(call int, _ string, _ map[string]interface{}) ([]map[string]interface{}, error) {
			switch call {
			case 1:
				return []map[string]interface{}{
					{"graphName": "a"}, {"graphName": "b"}, {"graphName": "c"},
				}, nil
			case 3:
				return nil, boom
			default:
				return nil, nil
			}
		},
	}

	err := DropAllGraphs(context.Background(), exec)
	assert.ErrorIs(t, err, boom)
	// "a" was dropped before the failure; "c" never attempted
	assert.Len(t, exec.calls, 3)
}

func TestDeleteRelationships(t *testing.T) {
	exec := &stubExecutor{
		run: func(int, string, map[string]interface{}) ([]map[string]interface{}, error) {
			return nil, nil
		},
	}

	require.NoError(t, DeleteRelationships(context.Background(), exec, "KNOWS", 500, ""))

	want := "MATCH()-[r:KNOWS]->()\n" +
		"CALL {\n" +
		"    WITH r\n" +
		"    DELETE r\n" +
		"} IN TRANSACTIONS OF 500 ROWS"
	require.Len(t, exec.calls, 1)
	assert.Equal(t, want, exec.calls[0].query)
}

func TestDeleteRelationshipsSourceLabelFilter(t *testing.T) {
	exec := &stubExecutor{
		run: func(int, string, map[string]interface{}) ([]map[string]interface{}, error) {
			return nil, nil
		},
	}

	require.NoError(t, DeleteRelationships(context.Background(), exec, "KNOWS", 0, "Person"))

	require.Len(t, exec.calls, 1)
	assert.Contains(t, exec.calls[0].query, "MATCH(:Person)-[r:KNOWS]->()")
	assert.Contains(t, exec.calls[0].query, "IN TRANSACTIONS OF 1000 ROWS")
}

func TestDeleteNodes(t *testing.T) {
	exec := &stubExecutor{
		run: func(int, string, map[string]interface{}) ([]map[string]interface{}, error) {
			return nil, nil
		},
	}

	require.NoError(t, DeleteNodes(context.Background(), exec, "Person", 250))

	want := "MATCH(n:Person)\n" +
		"CALL {\n" +
		"    WITH n\n" +
		"    DETACH DELETE n\n" +
		"} IN TRANSACTIONS OF 250 ROWS"
	require.Len(t, exec.calls, 1)
	assert.Equal(t, want, exec.calls[0].query)
}

func TestMaintenanceInvalidInput(t *testing.T) {
	exec := &stubExecutor{
		run: func(int, string, map[string]interface{}) ([]map[string]interface{}, error) {
			return nil, nil
		},
	}

	assert.ErrorIs(t, DeleteRelationships(context.Background(), exec, "", 100, ""), ErrInvalidRelType)
	assert.ErrorIs(t, DeleteRelationships(context.Background(), exec, "KNOWS", 100, "Bad Label"), ErrInvalidLabel)
	assert.ErrorIs(t, DeleteNodes(context.Background(), exec, "", 100), ErrInvalidLabel)
	assert.Empty(t, exec.calls)
}
