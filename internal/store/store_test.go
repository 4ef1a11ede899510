package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/whence/internal/llm"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "whence.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListRuns(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, RunRecord{
		Target:        "internal/llm",
		Check:         "line-to-function",
		Backend:       "mock",
		Model:         "mock",
		Items:         12,
		Failed:        1,
		RawScore:      0.75,
		AdjustedScore: 0.5,
		ChanceLevel:   0.5,
		NumCategories: 4,
		Weight:        240,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = s.SaveRun(ctx, RunRecord{
		Target: "cmd", Check: "name-to-file", Backend: "mock", Model: "mock",
	})
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	var rec RunRecord
	for _, r := range runs {
		if r.ID == id {
			rec = r
		}
	}
	assert.Equal(t, "internal/llm", rec.Target)
	assert.Equal(t, "line-to-function", rec.Check)
	assert.Equal(t, 12, rec.Items)
	assert.Equal(t, 1, rec.Failed)
	assert.Equal(t, 0.5, rec.AdjustedScore)
	assert.Equal(t, 4, rec.NumCategories)
	assert.Equal(t, 240, rec.Weight)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestListRuns_Limit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.SaveRun(ctx, RunRecord{
			Target: "t", Check: "c", Backend: "mock", Model: "mock",
		})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestAppendAndListCalls(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendCall(ctx, llm.CallRecord{
		Backend:   "mock",
		Model:     "mock",
		Prompt:    "which function?",
		Response:  `{"guess":"Load"}`,
		LatencyMs: 42,
		Success:   true,
	}))
	require.NoError(t, s.AppendCall(ctx, llm.CallRecord{
		Backend:      "mock",
		Model:        "mock",
		Prompt:       "which file?",
		Success:      false,
		ErrorMessage: "backend unavailable",
	}))

	calls, err := s.ListCalls(ctx, 10)
	require.NoError(t, err)
	require.Len(t, calls, 2)

	// Newest first.
	assert.Equal(t, "which file?", calls[0].Prompt)
	assert.False(t, calls[0].Success)
	assert.Equal(t, "backend unavailable", calls[0].ErrorMessage)

	assert.Equal(t, "which function?", calls[1].Prompt)
	assert.True(t, calls[1].Success)
	assert.Equal(t, int64(42), calls[1].LatencyMs)
}

func TestGetCall(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendCall(ctx, llm.CallRecord{
		Backend: "mock", Model: "mock", Prompt: "p", Response: "r", Success: true,
	}))

	calls, err := s.ListCalls(ctx, 1)
	require.NoError(t, err)
	require.Len(t, calls, 1)

	c, err := s.GetCall(ctx, calls[0].ID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "p", c.Prompt)
	assert.Equal(t, "r", c.Response)

	missing, err := s.GetCall(ctx, 99999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
