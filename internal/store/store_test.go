package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/store"
	"github.com/footprint-tools/unilang/internal/testutil"
)

func entry(session, cmd string, status domain.ExecStatus, ts time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		SessionID: session,
		Command:   cmd,
		Input:     cmd + " a::1",
		Status:    status,
		Duration:  1500 * time.Microsecond,
		Timestamp: ts,
	}
}

func TestStore_RecordAndList(t *testing.T) {
	s := testutil.NewTestStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	failed := entry("s1", ".math.div", domain.StatusFailed, now.Add(time.Second))
	failed.ErrorCode = "DIVISION_BY_ZERO"

	testutil.SeedHistory(t, s, []domain.HistoryEntry{
		entry("s1", ".math.add", domain.StatusOK, now),
		failed,
	})

	entries, err := s.List(domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	newest := entries[0]
	require.Equal(t, ".math.div", newest.Command)
	require.Equal(t, domain.StatusFailed, newest.Status)
	require.Equal(t, "DIVISION_BY_ZERO", newest.ErrorCode)
	require.Equal(t, 1500*time.Microsecond, newest.Duration)
	require.True(t, now.Add(time.Second).Equal(newest.Timestamp))
	require.NotZero(t, newest.ID)
}

func TestStore_ListFilters(t *testing.T) {
	s := testutil.NewTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	testutil.SeedHistory(t, s, []domain.HistoryEntry{
		entry("s1", ".math.add", domain.StatusOK, base),
		entry("s1", ".math.div", domain.StatusFailed, base.Add(time.Minute)),
		entry("s2", ".math.add", domain.StatusOK, base.Add(2*time.Minute)),
		entry("s2", ".greet", domain.StatusHelp, base.Add(3*time.Minute)),
	})

	failed := domain.StatusFailed
	since := base.Add(90 * time.Second)

	tests := []struct {
		name   string
		filter domain.HistoryFilter
		want   int
	}{
		{"all", domain.HistoryFilter{}, 4},
		{"session", domain.HistoryFilter{SessionID: "s2"}, 2},
		{"command", domain.HistoryFilter{Command: ".math.add"}, 2},
		{"status", domain.HistoryFilter{Status: &failed}, 1},
		{"since", domain.HistoryFilter{Since: &since}, 2},
		{"limit", domain.HistoryFilter{Limit: 3}, 3},
		{"combined", domain.HistoryFilter{SessionID: "s1", Command: ".math.add"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := s.List(tt.filter)
			require.NoError(t, err)
			require.Len(t, entries, tt.want)
		})
	}
}

func TestStore_ClearAndCount(t *testing.T) {
	s := testutil.NewTestStore(t)
	now := time.Now()

	testutil.SeedHistory(t, s, []domain.HistoryEntry{
		entry("s1", ".a", domain.StatusOK, now),
		entry("s1", ".b", domain.StatusOK, now),
		entry("s2", ".c", domain.StatusOK, now),
	})

	n, err := s.Count()
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	deleted, err := s.Clear("s1")
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)

	deleted, err = s.Clear("")
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	n, err = s.Count()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestStore_RecordFillsTimestamp(t *testing.T) {
	s := testutil.NewTestStore(t)
	before := time.Now().Add(-time.Second)

	require.NoError(t, s.Record(domain.HistoryEntry{SessionID: "s", Command: ".x", Input: ".x"}))

	entries, err := s.List(domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, entries[0].Timestamp.After(before))
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := store.New(path)
	require.NoError(t, err)
	require.Equal(t, path, s.Path())
	require.NoError(t, s.Record(domain.HistoryEntry{SessionID: "s", Command: ".x", Input: ".x"}))
	require.NoError(t, s.Close())

	reopened, err := store.New(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	n, err := reopened.Count()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestNew_Memory(t *testing.T) {
	s, err := store.New(store.MemoryPath)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	n, err := s.Count()
	require.NoError(t, err)
	require.Zero(t, n)
}
