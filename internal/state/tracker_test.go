package state_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/persist"
	"github.com/leighmacdonald/hosp-tui/internal/state"
	"github.com/leighmacdonald/hosp-tui/internal/store"
	"github.com/leighmacdonald/hosp-tui/internal/torn"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu      sync.Mutex
	players map[uint32]torn.PlayerSnapshot
	errs    map[uint32]error
	calls   []uint32
	// during runs inside the request, before it returns.
	during func(playerID uint32)
}

func (f *stubFetcher) Player(_ context.Context, _ string, playerID uint32) (torn.PlayerSnapshot, error) {
	f.mu.Lock()
	f.calls = append(f.calls, playerID)
	f.mu.Unlock()

	if f.during != nil {
		f.during(playerID)
	}

	if err, found := f.errs[playerID]; found {
		return torn.PlayerSnapshot{}, err
	}

	return f.players[playerID], nil
}

type memRecorder struct {
	refreshes []store.Refresh
}

func (r *memRecorder) RecordRefresh(_ context.Context, refresh store.Refresh) (int64, error) {
	r.refreshes = append(r.refreshes, refresh)

	return int64(len(r.refreshes)), nil
}

type editSurface struct {
	value string
}

func (s editSurface) Label(_ string, _ string) {}

func (s editSurface) TextInput(_ string, _ string, _ bool) string {
	return s.value
}

func TestInitMissingFile(t *testing.T) {
	tracker := state.NewTracker(filepath.Join(t.TempDir(), "missing.json"), &stubFetcher{}, nil)
	tracker.Init()

	require.Empty(t, tracker.Credential())
	require.Zero(t, tracker.Len())
}

func TestInitMalformedQuarantines(t *testing.T) {
	path := filepath.Join(t.TempDir(), persist.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	tracker := state.NewTracker(path, &stubFetcher{}, nil)
	tracker.Init()
	require.Zero(t, tracker.Len())

	_, errStat := os.Stat(path + ".bak")
	require.NoError(t, errStat)

	tracker.SetCredential("NEW")
	require.NoError(t, tracker.Teardown())

	body, errRead := os.ReadFile(path + ".bak")
	require.NoError(t, errRead)
	require.Equal(t, "{not json", string(body))
}

func TestTeardownInitRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), persist.DefaultFileName)

	tracker := state.NewTracker(path, &stubFetcher{}, nil)
	tracker.SetCredential("KEY")
	first := tracker.Add(monitor.KindSimple)
	tracker.Render(first, editSurface{value: "1234"})
	tracker.Add(monitor.KindNone)
	require.NoError(t, tracker.Teardown())

	restored := state.NewTracker(path, &stubFetcher{}, nil)
	restored.Init()
	require.Equal(t, "KEY", restored.Credential())

	rows := restored.Rows(time.Now())
	require.Len(t, rows, 2)
	require.Equal(t, monitor.KindSimple, rows[0].Kind)
	require.Equal(t, uint32(1234), rows[0].PlayerID)
	require.Equal(t, monitor.KindNone, rows[1].Kind)
}

func TestMutations(t *testing.T) {
	tracker := state.NewTracker(filepath.Join(t.TempDir(), "state.json"), &stubFetcher{}, nil)

	idx := tracker.Add(monitor.KindNone)
	require.Equal(t, monitor.KindSimple, tracker.CycleKind(idx))
	require.Equal(t, monitor.KindNone, tracker.CycleKind(idx))
	require.Equal(t, monitor.KindNone, tracker.CycleKind(42))

	tracker.Add(monitor.KindSimple)
	tracker.Remove(0)
	tracker.Remove(9)
	require.Equal(t, 1, tracker.Len())
	require.Equal(t, monitor.KindSimple, tracker.Rows(time.Now())[0].Kind)
}

func TestRefreshAllRecordsHistory(t *testing.T) {
	release := time.Now().Add(time.Hour).Truncate(time.Second)
	fetcher := &stubFetcher{
		players: map[uint32]torn.PlayerSnapshot{
			1: {Name: "One", States: map[string]int64{torn.HospitalTimestampKey: release.Unix()}},
		},
		errs: map[uint32]error{2: torn.APIError{Kind: torn.InvalidIdentifier, Code: 6, Message: "Incorrect ID"}},
	}
	recorder := &memRecorder{}

	tracker := state.NewTracker(filepath.Join(t.TempDir(), "state.json"), fetcher, recorder)
	tracker.SetCredential("KEY")
	for _, playerID := range []string{"1", "2"} {
		tracker.Render(tracker.Add(monitor.KindSimple), editSurface{value: playerID})
	}
	tracker.Add(monitor.KindNone)

	report, err := tracker.RefreshAll(t.Context())
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed())
	require.False(t, tracker.Refreshing())

	rows := tracker.Rows(time.Now())
	require.Equal(t, "One", rows[0].Name)
	require.True(t, release.Equal(rows[0].ReleaseAt))
	require.True(t, rows[1].IDError)

	require.Len(t, recorder.refreshes, 2)
	require.Equal(t, "One", recorder.refreshes[0].Name)
	require.False(t, recorder.refreshes[0].Failed())
	require.Equal(t, "invalid_id", recorder.refreshes[1].ErrorKind)
	require.Equal(t, int64(6), recorder.refreshes[1].ErrorCode)

	completed, last := tracker.LastRefresh()
	require.False(t, completed.IsZero())
	require.Len(t, last.Results, 3)
}

func TestRefreshAllDropsStaleResults(t *testing.T) {
	fetcher := &stubFetcher{
		players: map[uint32]torn.PlayerSnapshot{
			1: {Name: "One", States: map[string]int64{}},
		},
	}

	tracker := state.NewTracker(filepath.Join(t.TempDir(), "state.json"), fetcher, nil)
	idx := tracker.Add(monitor.KindSimple)
	tracker.Render(idx, editSurface{value: "1"})

	fetcher.during = func(_ uint32) {
		tracker.Render(idx, editSurface{value: "2"})
	}

	_, err := tracker.RefreshAll(t.Context())
	require.NoError(t, err)

	row := tracker.Rows(time.Now())[0]
	require.Equal(t, uint32(2), row.PlayerID)
	require.Empty(t, row.Name)
}

func TestRefreshAllSingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fetcher := &stubFetcher{
		players: map[uint32]torn.PlayerSnapshot{1: {Name: "One", States: map[string]int64{}}},
		during: func(_ uint32) {
			close(started)
			<-release
		},
	}

	tracker := state.NewTracker(filepath.Join(t.TempDir(), "state.json"), fetcher, nil)
	tracker.Render(tracker.Add(monitor.KindSimple), editSurface{value: "1"})

	done := make(chan error, 1)
	go func() {
		_, err := tracker.RefreshAll(t.Context())
		done <- err
	}()

	<-started
	require.True(t, tracker.Refreshing())
	_, errSecond := tracker.RefreshAll(t.Context())
	require.ErrorIs(t, errSecond, state.ErrRefreshInProgress)

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, "One", tracker.Rows(time.Now())[0].Name)
}
