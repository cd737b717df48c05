package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
}

func TestHistoryCmd_Short(t *testing.T) {
	assert.Equal(t, "Show recent searches", historyCmd.Short)
}

func TestHistoryCmd_EmptyHistory(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No search history.")
}

func TestHistoryCmd_ListsNewestFirst(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ctx := context.Background()
	historyService.Record(ctx, "older query", 1)
	historyService.Record(ctx, "newer query", 2)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "newer query (2 results)")
	assert.Contains(t, out, "older query (1 results)")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("newer query")),
		bytes.Index(buf.Bytes(), []byte("older query")))
}

func TestHistoryClearCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ctx := context.Background()
	historyService.Record(ctx, "some query", 1)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Search history cleared.")
	assert.Empty(t, historyService.History())
}

func TestHistoryRemoveCmd_RequiresQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history", "remove"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestHistoryRemoveCmd_RemovesEntry(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ctx := context.Background()
	historyService.Record(ctx, "keep me", 1)
	historyService.Record(ctx, "drop me", 1)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "remove", "drop me"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	entries := historyService.History()
	require.Len(t, entries, 1)
	assert.Equal(t, "keep me", entries[0].Query)
}

func TestHistoryPopularCmd_RanksByHits(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ctx := context.Background()
	historyService.Record(ctx, "frequent", 1)
	historyService.Record(ctx, "frequent", 1)
	historyService.Record(ctx, "rare", 1)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "popular"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "[1] frequent (2)")
	assert.Contains(t, out, "[2] rare (1)")
}

func TestHistoryPopularCmd_HasLimitFlag(t *testing.T) {
	flag := historyPopularCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)
}
