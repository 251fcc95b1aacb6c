// Package state holds the live application state: the api key and the monitor collection.
// Everything the presentation layer does with them goes through a Tracker.
package state

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/persist"
	"github.com/leighmacdonald/hosp-tui/internal/store"
	"github.com/leighmacdonald/hosp-tui/internal/torn"
)

var ErrRefreshInProgress = errors.New("refresh already in progress")

// Recorder stores refresh outcomes. *store.Queries satisfies it.
type Recorder interface {
	RecordRefresh(ctx context.Context, refresh store.Refresh) (int64, error)
}

// Row is a read only view of one slot for display.
type Row struct {
	Index     int
	Kind      monitor.Kind
	PlayerID  uint32
	Name      string
	ReleaseAt time.Time
	Remaining int64
	IDError   bool
}

type Tracker struct {
	mu         *sync.RWMutex
	path       string
	credential string
	monitors   monitor.List
	fetcher    monitor.Fetcher
	// recorder is optional, nil disables history.
	recorder    Recorder
	refreshing  atomic.Bool
	lastRefresh time.Time
	lastReport  monitor.Report
}

func NewTracker(path string, fetcher monitor.Fetcher, recorder Recorder) *Tracker {
	return &Tracker{
		mu:       &sync.RWMutex{},
		path:     path,
		monitors: monitor.List{},
		fetcher:  fetcher,
		recorder: recorder,
	}
}

// Init loads the saved state. Any failure leaves the tracker empty, a malformed file is moved aside
// first so Teardown cannot overwrite it.
func (t *Tracker) Init() {
	loaded, errLoad := persist.Load(t.path)

	switch {
	case errLoad == nil:
	case errors.Is(errLoad, persist.ErrNotFound):
		slog.Info("No saved state found, starting empty", slog.String("path", t.path))

		return
	case errors.Is(errLoad, persist.ErrMalformed):
		slog.Error("Saved state is malformed, starting empty", slog.String("path", t.path),
			slog.String("error", errLoad.Error()))

		moved, errMove := persist.Quarantine(t.path)
		if errMove != nil {
			slog.Error("Failed to move malformed state aside", slog.String("error", errMove.Error()))
		} else {
			slog.Info("Moved malformed state", slog.String("path", moved))
		}

		return
	default:
		slog.Error("Failed to load saved state, starting empty", slog.String("path", t.path),
			slog.String("error", errLoad.Error()))

		return
	}

	t.mu.Lock()
	t.credential = loaded.APIKey
	t.monitors = loaded.Monitors
	t.mu.Unlock()

	slog.Info("Loaded saved state", slog.Int("monitors", len(loaded.Monitors)))
}

// Teardown saves the current state.
func (t *Tracker) Teardown() error {
	t.mu.RLock()
	state := persist.State{APIKey: t.credential, Monitors: t.monitors}
	errSave := persist.Save(state, t.path)
	t.mu.RUnlock()

	if errSave != nil {
		return errSave
	}

	slog.Debug("Saved state", slog.String("path", t.path), slog.Int("monitors", len(state.Monitors)))

	return nil
}

func (t *Tracker) Path() string {
	return t.path
}

func (t *Tracker) Credential() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.credential
}

func (t *Tracker) SetCredential(credential string) {
	t.mu.Lock()
	t.credential = credential
	t.mu.Unlock()
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.monitors)
}

// Add appends a new monitor of kind and returns its index.
func (t *Tracker) Add(kind monitor.Kind) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.monitors = append(t.monitors, monitor.NewSlot(monitor.New(kind)))

	return len(t.monitors) - 1
}

// Remove deletes the slot at index. Out of range indexes are ignored.
func (t *Tracker) Remove(index int) {
	t.mu.Lock()
	t.monitors = t.monitors.Remove(index)
	t.mu.Unlock()
}

// CycleKind switches the slot at index to the next kind and returns it.
func (t *Tracker) CycleKind(index int) monitor.Kind {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.monitors) {
		return monitor.KindNone
	}

	slot := t.monitors[index]
	t.monitors[index] = slot.WithKind(slot.Kind().Next())

	return t.monitors[index].Kind()
}

// Render draws the slot at index onto surface.
func (t *Tracker) Render(index int, surface monitor.Surface) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.monitors) {
		return
	}

	t.monitors[index].Monitor().Render(surface)
}

// Rows returns a display snapshot of every slot.
func (t *Tracker) Rows(now time.Time) []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]Row, len(t.monitors))
	for idx, slot := range t.monitors {
		row := Row{Index: idx, Kind: slot.Kind(), PlayerID: slot.PlayerID()}
		if simple, ok := slot.Simple(); ok {
			row.Name = simple.Name()
			row.ReleaseAt = simple.ReleaseAt()
			row.Remaining = simple.SecondsRemaining(now)
			row.IDError = simple.IDError()
		}

		rows[idx] = row
	}

	return rows
}

func (t *Tracker) Refreshing() bool {
	return t.refreshing.Load()
}

// LastRefresh returns when the last refresh pass completed and its outcome.
func (t *Tracker) LastRefresh() (time.Time, monitor.Report) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.lastRefresh, t.lastReport
}

// RefreshAll refreshes every monitor with the current credential. Requests run against copies of
// the monitors so the lock is not held while waiting on the network. A result is dropped when its
// monitor was removed, replaced or had its id edited in the meantime. Only one pass runs at a time.
func (t *Tracker) RefreshAll(ctx context.Context) (monitor.Report, error) {
	if !t.refreshing.CompareAndSwap(false, true) {
		return monitor.Report{}, ErrRefreshInProgress
	}
	defer t.refreshing.Store(false)

	t.mu.RLock()
	credential := t.credential
	original := slices.Clone(t.monitors)
	working := t.monitors.Clone()
	t.mu.RUnlock()

	report := working.RefreshAll(ctx, t.fetcher, credential)

	t.mu.Lock()
	for idx, slot := range working {
		t.merge(original[idx], slot)
	}
	t.lastRefresh = time.Now()
	t.lastReport = report
	t.mu.Unlock()

	t.record(ctx, working, report)

	return report, nil
}

func (t *Tracker) merge(original monitor.Slot, refreshed monitor.Slot) {
	if original.Kind() == monitor.KindNone {
		return
	}

	for idx, current := range t.monitors {
		if current.Monitor() != original.Monitor() {
			continue
		}

		if current.PlayerID() == refreshed.PlayerID() {
			t.monitors[idx] = refreshed
		}

		return
	}
}

func (t *Tracker) record(ctx context.Context, refreshed monitor.List, report monitor.Report) {
	if t.recorder == nil {
		return
	}

	now := time.Now()

	for _, result := range report.Results {
		slot := refreshed[result.Index]
		if slot.Kind() == monitor.KindNone || errors.Is(result.Err, context.Canceled) {
			continue
		}

		refresh := store.Refresh{PlayerID: slot.PlayerID(), CreatedOn: now}
		if result.Err != nil {
			refresh.ErrorKind, refresh.ErrorCode, refresh.ErrorMessage = describe(result.Err)
		} else if simple, ok := slot.Simple(); ok {
			refresh.Name = simple.Name()
			refresh.ReleaseTime = simple.ReleaseAt()
		}

		if _, err := t.recorder.RecordRefresh(ctx, refresh); err != nil {
			slog.Error("Failed to record refresh", slog.Int64("player_id", int64(refresh.PlayerID)),
				slog.String("error", err.Error()))
		}
	}
}

// describe flattens a refresh error into its history columns.
func describe(err error) (string, int64, string) {
	var apiErr torn.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind.String(), apiErr.Code, apiErr.Message
	}

	switch {
	case errors.Is(err, torn.ErrTransport):
		return "transport", 0, err.Error()
	case errors.Is(err, torn.ErrDecode):
		return "decode", 0, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout", 0, err.Error()
	default:
		return "unknown", 0, err.Error()
	}
}
