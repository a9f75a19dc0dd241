package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/graphload/pkg/load"
)

func TestMemColumnsKeepFirstSeenOrder(t *testing.T) {
	m := NewMem("id", "name")
	m.AddColumn("age")
	m.AddColumn("name") // duplicate, ignored
	assert.Equal(t, []string{"id", "name", "age"}, m.Columns())

	m.Append(load.Record{"id": 1, "name": "a"})
	require.Len(t, m.Records(), 1)
}

func TestReadCSV(t *testing.T) {
	in := "id,name,age\n1,alice,30\n2,bob,41\n"

	tab, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "age"}, tab.Columns())
	require.Len(t, tab.Records(), 2)
	assert.Equal(t, load.Record{"id": "1", "name": "alice", "age": "30"}, tab.Records()[0])
	assert.Equal(t, load.Record{"id": "2", "name": "bob", "age": "41"}, tab.Records()[1])
}

func TestReadCSVEmptyInput(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tab.Columns())
	assert.Empty(t, tab.Records())
}

func TestReadCSVRaggedRow(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("id,name\n1\n"))
	assert.Error(t, err)
}

func TestReadJSONL(t *testing.T) {
	in := `{"id": 1, "name": "alice"}
{"id": 2, "name": "bob", "age": 41}

{"id": 3, "name": "carol"}`

	tab, err := ReadJSONL(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "age"}, tab.Columns())
	require.Len(t, tab.Records(), 3)
	assert.Equal(t, load.Record{"id": float64(1), "name": "alice"}, tab.Records()[0])
	assert.Equal(t, load.Record{"id": float64(2), "name": "bob", "age": float64(41)}, tab.Records()[1])
}

func TestReadJSONLInvalidLine(t *testing.T) {
	_, err := ReadJSONL(strings.NewReader(`{"id": 1}` + "\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
