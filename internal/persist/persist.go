// Package persist reads and writes the durable part of the app state: the api key and the
// ordered monitor list.
package persist

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/network/encoding"
)

const (
	DefaultFileName = "persistence.json"
	filePerms       = 0o600
)

var (
	ErrNotFound  = errors.New("state file not found")
	ErrMalformed = errors.New("state file malformed")
	ErrIO        = errors.New("state file io error")
)

// State is the persisted subset of the application state.
type State struct {
	APIKey   string
	Monitors monitor.List
}

type fileRecord struct {
	APIKey   string       `json:"api_key"`
	Monitors monitor.List `json:"monitors"`
	// TrackedPlayerList is only read. Files written before monitors existed stored plain ids.
	TrackedPlayerList []uint32 `json:"tracked_player_list,omitempty"`
}

// Save writes state to path, replacing any existing file. The content is written to a temporary
// file in the same directory first and renamed into place.
func Save(state State, path string) error {
	monitors := state.Monitors
	if monitors == nil {
		monitors = monitor.List{}
	}

	body, errBody := encoding.MarshalJSON(fileRecord{APIKey: state.APIKey, Monitors: monitors})
	if errBody != nil {
		return errors.Join(errBody, ErrMalformed)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Join(err, ErrIO)
	}

	tmpFile, errTmp := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if errTmp != nil {
		return errors.Join(errTmp, ErrIO)
	}

	tmpName := tmpFile.Name()
	cleanup := func(err error) error {
		if errRemove := os.Remove(tmpName); errRemove != nil && !errors.Is(errRemove, fs.ErrNotExist) {
			slog.Error("Failed to remove temp state file", slog.String("error", errRemove.Error()))
		}

		return errors.Join(err, ErrIO)
	}

	if _, err := tmpFile.Write(body); err != nil {
		_ = tmpFile.Close()

		return cleanup(err)
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()

		return cleanup(err)
	}

	if err := tmpFile.Close(); err != nil {
		return cleanup(err)
	}

	if err := os.Chmod(tmpName, filePerms); err != nil {
		return cleanup(err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return cleanup(err)
	}

	return nil
}

// Load reads the state stored at path. Cached monitor state is never stored so all loaded
// monitors start from their defaults.
func Load(path string) (State, error) {
	body, errRead := os.ReadFile(path)
	if errRead != nil {
		if errors.Is(errRead, fs.ErrNotExist) {
			return State{}, errors.Join(errRead, ErrNotFound)
		}

		return State{}, errors.Join(errRead, ErrIO)
	}

	record, errDecode := encoding.DecodeBytes[fileRecord](body)
	if errDecode != nil {
		return State{}, errors.Join(errDecode, ErrMalformed)
	}

	state := State{APIKey: record.APIKey, Monitors: record.Monitors}
	if len(state.Monitors) == 0 && len(record.TrackedPlayerList) > 0 {
		slog.Info("Converting legacy tracked player list", slog.Int("count", len(record.TrackedPlayerList)))

		for _, playerID := range record.TrackedPlayerList {
			state.Monitors = append(state.Monitors, monitor.NewSlot(monitor.NewSimple(playerID)))
		}
	}

	if state.Monitors == nil {
		state.Monitors = monitor.List{}
	}

	return state, nil
}

// Quarantine moves an unreadable state file out of the way so a later Save does not destroy it.
// It returns the new location.
func Quarantine(path string) (string, error) {
	target := path + ".bak"
	if err := os.Rename(path, target); err != nil {
		return "", errors.Join(err, ErrIO)
	}

	return target, nil
}
