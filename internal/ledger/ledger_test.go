// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chatset/pkg/types"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "runs.db")
	l, err := Open(types.LedgerConfig{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func sampleRun(input string, records int, status types.RunStatus) types.RunRecord {
	return types.RunRecord{
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Input:     input,
		Output:    input + ".out",
		Records:   records,
		Status:    status,
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(types.LedgerConfig{})
	assert.Error(t, err)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	l, err := Open(types.LedgerConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, l.Record(ctx, sampleRun("train.jsonl", 3, types.RunConverted)))
	require.NoError(t, l.Close())

	l, err = Open(types.LedgerConfig{Path: path})
	require.NoError(t, err)
	defer l.Close()

	runs, err := l.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecordAndList(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	failed := sampleRun("valid.jsonl", 1, types.RunFailed)
	failed.Error = `valid.jsonl:2: invalid JSON`

	require.NoError(t, l.Record(ctx, sampleRun("train.jsonl", 10, types.RunConverted)))
	require.NoError(t, l.Record(ctx, failed))

	runs, err := l.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "valid.jsonl", runs[0].Input)
	assert.Equal(t, types.RunFailed, runs[0].Status)
	assert.Equal(t, failed.Error, runs[0].Error)
	assert.Equal(t, 1, runs[0].Records)

	assert.Equal(t, "train.jsonl", runs[1].Input)
	assert.Equal(t, "train.jsonl.out", runs[1].Output)
	assert.Equal(t, types.RunConverted, runs[1].Status)
	assert.Empty(t, runs[1].Error)
	assert.Equal(t, 1500*time.Millisecond, runs[1].Duration)
	assert.True(t, runs[1].StartedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.Less(t, runs[1].ID, runs[0].ID)
}

func TestList_Limit(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Record(ctx, sampleRun("train.jsonl", i, types.RunConverted)))
	}

	runs, err := l.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 4, runs[0].Records)
	assert.Equal(t, 3, runs[1].Records)
}

func TestExport(t *testing.T) {
	runs := []types.RunRecord{sampleRun("train.jsonl", 2, types.RunConverted)}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ExportYAML(&buf, runs))

		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "train.jsonl", got[0]["input"])
		assert.Equal(t, "converted", got[0]["status"])
		assert.NotContains(t, got[0], "error")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ExportJSON(&buf, runs))

		var got []types.RunRecord
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].Records)
	})

	t.Run("json empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ExportJSON(&buf, nil))
		assert.Equal(t, "[]\n", buf.String())
	})
}
