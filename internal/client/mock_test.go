package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClientAcceptsByDefault(t *testing.T) {
	m := NewMock()
	err := m.Exec(context.Background(), "CREATE TABLE t (x Int32) ENGINE = MergeTree")
	require.NoError(t, err)
	assert.Equal(t, []string{"CREATE TABLE t (x Int32) ENGINE = MergeTree"}, m.ExecLog())
}

func TestMockClientRejectsConfiguredSubstring(t *testing.T) {
	m := NewMock()
	m.RejectContaining("DROP")
	err := m.Exec(context.Background(), "DROP TABLE t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")
}

func TestMockClientQueryReturnsFixedResult(t *testing.T) {
	m := NewMock()
	want := Rows{Columns: []string{"c"}, Values: [][]string{{"1"}, {"2"}}}
	m.SetQueryResult(want)

	got, err := m.Query(context.Background(), "SELECT c FROM t")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRowsLinesJoinsColumns(t *testing.T) {
	r := Rows{Values: [][]string{{"a", "b"}, {"1", "2"}}}
	assert.Equal(t, []string{"a,b", "1,2"}, r.Lines())
}
