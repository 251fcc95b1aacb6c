package persist_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/persist"
	"github.com/leighmacdonald/hosp-tui/internal/torn"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct{}

func (stubFetcher) Player(_ context.Context, _ string, playerID uint32) (torn.PlayerSnapshot, error) {
	return torn.PlayerSnapshot{
		Name:   "Player",
		States: map[string]int64{torn.HospitalTimestampKey: 1700000000 + int64(playerID)},
	}, nil
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), persist.DefaultFileName)

	ids := []uint32{12345, 1, 99999999, 42}
	state := persist.State{APIKey: "abcdEFGH1234"}
	for _, playerID := range ids {
		simple := monitor.NewSimple(playerID)
		require.NoError(t, simple.Refresh(t.Context(), stubFetcher{}, state.APIKey))
		state.Monitors = append(state.Monitors, monitor.NewSlot(simple))
	}
	state.Monitors = append(state.Monitors, monitor.Slot{})

	require.NoError(t, persist.Save(state, path))

	loaded, err := persist.Load(path)
	require.NoError(t, err)
	require.Equal(t, state.APIKey, loaded.APIKey)
	require.Len(t, loaded.Monitors, len(ids)+1)
	require.Equal(t, ids, loaded.Monitors.PlayerIDs())
	require.Equal(t, monitor.KindNone, loaded.Monitors[len(ids)].Kind())

	for _, slot := range loaded.Monitors[:len(ids)] {
		simple, ok := slot.Simple()
		require.True(t, ok)
		require.Equal(t, "", simple.Name())
		require.Equal(t, "", simple.Credential())
		require.False(t, simple.IDError())
		require.WithinDuration(t, time.Now(), simple.ReleaseAt(), time.Minute)
	}
}

func TestSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	require.NoError(t, persist.Save(persist.State{
		APIKey:   "one",
		Monitors: monitor.List{monitor.NewSlot(monitor.NewSimple(1)), monitor.NewSlot(monitor.NewSimple(2))},
	}, path))
	require.NoError(t, persist.Save(persist.State{APIKey: "two"}, path))

	loaded, err := persist.Load(path)
	require.NoError(t, err)
	require.Equal(t, "two", loaded.APIKey)
	require.Empty(t, loaded.Monitors)

	entries, errDir := os.ReadDir(filepath.Dir(path))
	require.NoError(t, errDir)
	require.Len(t, entries, 1, "no temp files left behind")

	info, errStat := os.Stat(path)
	require.NoError(t, errStat)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadNotFound(t *testing.T) {
	_, err := persist.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, persist.ErrNotFound)
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	for idx, body := range []string{
		`{"api_key": `,
		`not json`,
		`{"api_key":"k","monitors":[{"kind":"fancy"}]}`,
		`{"api_key":5}`,
	} {
		path := filepath.Join(dir, filepath.Base(t.Name())+string(rune('a'+idx)))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		_, err := persist.Load(path)
		require.ErrorIs(t, err, persist.ErrMalformed, body)
	}
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"version":3,"api_key":"k","theme":"dark","monitors":[{"kind":"simple","data":{"id":8,"alias":"x"}}]}`), 0o600))

	loaded, err := persist.Load(path)
	require.NoError(t, err)
	require.Equal(t, "k", loaded.APIKey)
	require.Equal(t, []uint32{8}, loaded.Monitors.PlayerIDs())
}

func TestLoadLegacy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persistence.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tracked_player_list":[3,1,2],"api_key":"legacy"}`), 0o600))

	loaded, err := persist.Load(path)
	require.NoError(t, err)
	require.Equal(t, "legacy", loaded.APIKey)
	require.Equal(t, []uint32{3, 1, 2}, loaded.Monitors.PlayerIDs())
	for _, slot := range loaded.Monitors {
		require.Equal(t, monitor.KindSimple, slot.Kind())
	}

	require.NoError(t, persist.Save(loaded, path))
	body, errRead := os.ReadFile(path)
	require.NoError(t, errRead)
	require.NotContains(t, string(body), "tracked_player_list")
}

func TestQuarantine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`broken`), 0o600))

	moved, err := persist.Quarantine(path)
	require.NoError(t, err)
	require.Equal(t, path+".bak", moved)

	_, errLoad := persist.Load(path)
	require.ErrorIs(t, errLoad, persist.ErrNotFound)
}
