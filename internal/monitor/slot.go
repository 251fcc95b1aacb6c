package monitor

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var (
	ErrUnknownKind = errors.New("unknown monitor kind")
	errSlotData    = errors.New("invalid monitor data")
)

// Slot is a single entry of a monitor collection. The zero value is an unassigned (None) slot.
type Slot struct {
	monitor Monitor
}

func NewSlot(monitor Monitor) Slot {
	return Slot{monitor: monitor}
}

// Monitor returns the held monitor, None for the zero value.
func (s Slot) Monitor() Monitor {
	if s.monitor == nil {
		return None{}
	}

	return s.monitor
}

func (s Slot) Kind() Kind {
	return s.Monitor().Kind()
}

// Simple returns the held monitor when it is a *Simple.
func (s Slot) Simple() (*Simple, bool) {
	simple, ok := s.monitor.(*Simple)

	return simple, ok
}

// PlayerID returns the tracked id, 0 for kinds that do not track a player.
func (s Slot) PlayerID() uint32 {
	switch monitor := s.Monitor().(type) {
	case *Simple:
		return monitor.ID
	case None:
		return 0
	default:
		panic(fmt.Sprintf("monitor: unhandled kind %q", string(monitor.Kind())))
	}
}

// WithKind returns a slot holding a fresh monitor of kind. The tracked id carries over when both
// kinds track a player.
func (s Slot) WithKind(kind Kind) Slot {
	if kind == s.Kind() {
		return s
	}

	next := New(kind)
	if simple, ok := next.(*Simple); ok {
		simple.ID = s.PlayerID()
	}

	return NewSlot(next)
}

// Clone returns a slot holding a copy of the monitor, cached state included.
func (s Slot) Clone() Slot {
	if simple, ok := s.Simple(); ok {
		clone := *simple

		return NewSlot(&clone)
	}

	return s
}

type simpleRecord struct {
	ID uint32 `json:"id"`
}

type slotRecord struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON writes the kind tag plus the persistent fields of the monitor. Cached api state is
// never written.
func (s Slot) MarshalJSON() ([]byte, error) {
	record := slotRecord{Kind: s.Kind()}

	switch monitor := s.Monitor().(type) {
	case *Simple:
		data, err := json.Marshal(simpleRecord{ID: monitor.ID})
		if err != nil {
			return nil, err
		}
		record.Data = data
	case None:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, monitor.Kind())
	}

	return json.Marshal(record)
}

func (s *Slot) UnmarshalJSON(data []byte) error {
	var record slotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}

	switch record.Kind {
	case KindNone:
		s.monitor = None{}
	case KindSimple:
		if len(record.Data) == 0 {
			return fmt.Errorf("%w: simple monitor without data", errSlotData)
		}

		var simple simpleRecord
		if err := json.Unmarshal(record.Data, &simple); err != nil {
			return errors.Join(err, errSlotData)
		}

		s.monitor = NewSimple(simple.ID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(record.Kind))
	}

	return nil
}
