package monitor

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/leighmacdonald/hosp-tui/internal/conv"
	"github.com/leighmacdonald/hosp-tui/internal/torn"
)

// MaxIDDigits is the longest player id accepted from user input.
const MaxIDDigits = 8

// Simple tracks one player's hospital release time and name.
type Simple struct {
	// ID is the tracked player id. It is the only persisted field.
	ID uint32

	releaseAt  time.Time
	name       string
	idError    bool
	credential string
}

func NewSimple(playerID uint32) *Simple {
	return &Simple{ID: playerID, releaseAt: time.Now()}
}

func (s *Simple) Kind() Kind {
	return KindSimple
}

// Name is the player name from the last successful refresh.
func (s *Simple) Name() string {
	return s.name
}

// ReleaseAt is when the player leaves hospital. Until the first successful refresh it is the
// creation time of the monitor.
func (s *Simple) ReleaseAt() time.Time {
	return s.releaseAt
}

// IDError reports whether the last refresh was rejected because the id does not exist.
func (s *Simple) IDError() bool {
	return s.idError
}

// Credential is the api key used for the last refresh. Only kept for error display.
func (s *Simple) Credential() string {
	return s.credential
}

// SecondsRemaining returns the whole seconds, rounded up, until release. Never negative.
func (s *Simple) SecondsRemaining(now time.Time) int64 {
	remaining := math.Ceil(s.releaseAt.Sub(now).Seconds())

	return int64(conv.Clamp(remaining, 0, math.MaxInt32))
}

func (s *Simple) Render(surface Surface) {
	hint := "ID to query"
	if s.idError {
		hint = "ID doesn't exist"
	}

	edited := surface.TextInput(strconv.FormatUint(uint64(s.ID), 10), hint, s.idError)
	s.ID = ParseID(edited)

	surface.Label("ETA: "+conv.ToHMS(s.SecondsRemaining(time.Now())), "Time to leave hospital")
	surface.Label(s.name, "")
}

func (s *Simple) Refresh(ctx context.Context, fetcher Fetcher, credential string) error {
	s.credential = credential

	player, err := fetcher.Player(ctx, credential, s.ID)
	if err != nil {
		s.idError = errors.Is(err, torn.ErrInvalidIdentifier)

		return err
	}

	s.releaseAt = player.ReleaseTime()
	s.name = player.Name
	s.idError = false

	return nil
}

func (s *Simple) sealed() {}

// ParseID turns free form user input into a player id. Everything but ascii digits is dropped,
// the result is capped at MaxIDDigits and empty input yields 0.
func ParseID(input string) uint32 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, input)

	if len(digits) > MaxIDDigits {
		digits = digits[:MaxIDDigits]
	}

	if digits == "" {
		return 0
	}

	// Cannot fail, 8 digits always fit.
	value, _ := strconv.ParseUint(digits, 10, 32)

	return uint32(value)
}
