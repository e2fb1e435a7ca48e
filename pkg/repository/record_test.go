package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/inteldash/pkg/domain"
)

func setupTestRepo(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	return repos
}

func TestNewRepositories(t *testing.T) {
	repos := setupTestRepo(t)
	require.NotNil(t, repos.Record)
	assert.NoError(t, repos.Ping(context.Background()))
}

func TestRecordRepository_AddRecords(t *testing.T) {
	repos := setupTestRepo(t)
	ctx := context.Background()

	records := []domain.Record{
		{Headline: "first headline", Type: "high priority", Category: "Geopolitical Instability", Country: "UA", Date: "2024-11-18", Body: "body one"},
		{Headline: "second headline", Type: "strategic watch", Category: "Security & Technology Threat", Country: "US", Date: "2024-11-10", Body: "body two"},
	}

	n, err := repos.Record.AddRecords(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	t.Run("duplicates ignored", func(t *testing.T) {
		n, err := repos.Record.AddRecords(ctx, records)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		count, err := repos.Record.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("empty input", func(t *testing.T) {
		n, err := repos.Record.AddRecords(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}

func TestRecordRepository_List(t *testing.T) {
	repos := setupTestRepo(t)
	ctx := context.Background()

	var records []domain.Record
	for i := 0; i < 5; i++ {
		records = append(records, domain.Record{
			Headline: fmt.Sprintf("headline %d", i),
			Type:     "medium priority",
			Date:     fmt.Sprintf("2024-11-%02d", 10+i),
			Body:     fmt.Sprintf("body %d", i),
		})
	}
	_, err := repos.Record.AddRecords(ctx, records)
	require.NoError(t, err)

	t.Run("ordered by date desc", func(t *testing.T) {
		got, err := repos.Record.List(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Equal(t, "headline 4", got[0].Headline)
		assert.Equal(t, "headline 0", got[4].Headline)
	})

	t.Run("limit and offset", func(t *testing.T) {
		got, err := repos.Record.List(ctx, 2, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "headline 3", got[0].Headline)
		assert.Equal(t, "headline 2", got[1].Headline)
	})

	t.Run("empty archive", func(t *testing.T) {
		other := setupTestRepo(t)
		got, err := other.Record.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRecordRepository_Search(t *testing.T) {
	repos := setupTestRepo(t)
	ctx := context.Background()

	_, err := repos.Record.AddRecords(ctx, []domain.Record{
		{Headline: "New sanctions on semiconductor exports", Date: "2024-11-15", Body: "export controls tightened"},
		{Headline: "Port congestion eases", Date: "2024-11-14", Body: "shipping lanes recovering"},
		{Headline: "Labor strike at key terminal", Date: "2024-11-13", Body: "semiconductor supply at risk"},
	})
	require.NoError(t, err)

	t.Run("match in headline", func(t *testing.T) {
		got, err := repos.Record.Search(ctx, "sanctions", 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "New sanctions on semiconductor exports", got[0].Headline)
	})

	t.Run("match in body too", func(t *testing.T) {
		got, err := repos.Record.Search(ctx, "semiconductor", 10, 0)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := repos.Record.Search(ctx, "nothing-here", 10, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
