package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/leighmacdonald/hosp-tui/internal/torn"
)

// List is an ordered monitor collection.
type List []Slot

// PlayerIDs returns the tracked ids in order, skipping kinds that do not track a player.
func (l List) PlayerIDs() []uint32 {
	var ids []uint32 //nolint:prealloc
	for _, slot := range l {
		if slot.Kind() == KindNone {
			continue
		}
		ids = append(ids, slot.PlayerID())
	}

	return ids
}

// Contains reports whether any slot tracks playerID.
func (l List) Contains(playerID uint32) bool {
	return slices.ContainsFunc(l, func(slot Slot) bool {
		return slot.Kind() != KindNone && slot.PlayerID() == playerID
	})
}

// Remove returns the list without the slot at index. Out of range indexes are ignored.
func (l List) Remove(index int) List {
	if index < 0 || index >= len(l) {
		return l
	}

	return slices.Delete(l, index, index+1)
}

// Clone copies every slot, see Slot.Clone.
func (l List) Clone() List {
	clone := make(List, len(l))
	for idx, slot := range l {
		clone[idx] = slot.Clone()
	}

	return clone
}

// Result is the outcome of refreshing one slot.
type Result struct {
	Index   int
	Monitor Monitor
	Err     error
}

// Report collects the results of a RefreshAll pass in slot order.
type Report struct {
	Results []Result
}

// Err joins every failure, nil when all slots refreshed.
func (r Report) Err() error {
	var errs []error
	for _, result := range r.Results {
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("slot %d: %w", result.Index, result.Err))
		}
	}

	return errors.Join(errs...)
}

func (r Report) Failed() int {
	var failed int
	for _, result := range r.Results {
		if result.Err != nil {
			failed++
		}
	}

	return failed
}

// CredentialRejected reports whether any slot failed because the api key was refused.
func (r Report) CredentialRejected() bool {
	return slices.ContainsFunc(r.Results, func(result Result) bool {
		return errors.Is(result.Err, torn.ErrInvalidCredential)
	})
}

// RefreshAll refreshes every slot in order. A failing slot never prevents the following ones from being
// attempted. Once ctx is done the remaining slots are reported with the context error.
func (l List) RefreshAll(ctx context.Context, fetcher Fetcher, credential string) Report {
	report := Report{Results: make([]Result, 0, len(l))}

	for idx, slot := range l {
		result := Result{Index: idx, Monitor: slot.Monitor()}

		if errCtx := ctx.Err(); errCtx != nil {
			result.Err = errCtx
		} else if err := result.Monitor.Refresh(ctx, fetcher, credential); err != nil {
			result.Err = err
			slog.Warn("Failed to refresh monitor", slog.Int("index", idx),
				slog.Int64("player_id", int64(slot.PlayerID())), slog.String("error", err.Error()))
		}

		report.Results = append(report.Results, result)
	}

	return report
}
