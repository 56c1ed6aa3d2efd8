package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAppendClauses_EmptyFilter(t *testing.T) {
	t.Parallel()

	where, args := []string{"conversation_id = $1"}, []any{"c1"}
	where, args = MessageFilter{}.appendClauses(where, args)

	require.Equal(t, []string{"conversation_id = $1"}, where, "empty filter must add no clauses")
	require.Len(t, args, 1)
}

func TestAppendClauses_TimeBounds(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	where, args := MessageFilter{Start: &start, End: &end}.appendClauses(
		[]string{"user_id = $1"}, []any{"u1"},
	)

	require.Equal(t, []string{
		"user_id = $1",
		`"timestamp" >= $2`,
		`"timestamp" <= $3`,
	}, where)
	require.Equal(t, []any{"u1", start, end}, args)
}

func TestAppendClauses_StartOnly(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	where, args := MessageFilter{Start: &start}.appendClauses(
		[]string{"conversation_id = $1"}, []any{"c1"},
	)

	require.Equal(t, []string{"conversation_id = $1", `"timestamp" >= $2`}, where)
	require.Equal(t, []any{"c1", start}, args)
}

func TestAppendClauses_KeywordsOrGroup(t *testing.T) {
	t.Parallel()

	where, args := MessageFilter{Keywords: []string{"urgent", "bug"}}.appendClauses(
		[]string{"conversation_id = $1"}, []any{"c1"},
	)

	require.Equal(t, []string{
		"conversation_id = $1",
		"(message ILIKE $2 OR message ILIKE $3)",
	}, where)
	require.Equal(t, []any{"c1", "%urgent%", "%bug%"}, args)
}

func TestAppendClauses_KeywordsAfterTimeBound(t *testing.T) {
	t.Parallel()

	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	where, args := MessageFilter{End: &end, Keywords: []string{"hello"}}.appendClauses(
		[]string{"user_id = $1"}, []any{"u1"},
	)

	// Placeholder numbering must keep counting across clause groups.
	require.Equal(t, []string{
		"user_id = $1",
		`"timestamp" <= $2`,
		"(message ILIKE $3)",
	}, where)
	require.Equal(t, []any{"u1", end, "%hello%"}, args)
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	require.Equal(t, `100\%`, escapeLike("100%"))
	require.Equal(t, `a\_b`, escapeLike("a_b"))
	require.Equal(t, `c:\\temp`, escapeLike(`c:\temp`))
	require.Equal(t, "plain", escapeLike("plain"))
}
