package monitor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/torn"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	players map[uint32]torn.PlayerSnapshot
	errs    map[uint32]error
	calls   []uint32
	keys    []string
}

func (f *stubFetcher) Player(_ context.Context, credential string, playerID uint32) (torn.PlayerSnapshot, error) {
	f.calls = append(f.calls, playerID)
	f.keys = append(f.keys, credential)

	if err, found := f.errs[playerID]; found {
		return torn.PlayerSnapshot{}, err
	}

	return f.players[playerID], nil
}

func classified(code int64) error {
	return torn.Classify(torn.ErrorEnvelope{Error: map[string]torn.NumOrText{"code": torn.Num(code)}})
}

type recordingSurface struct {
	input   string
	edit    bool
	labels  []string
	invalid bool
	hints   []string
}

func (s *recordingSurface) Label(text string, hint string) {
	s.labels = append(s.labels, text)
	s.hints = append(s.hints, hint)
}

func (s *recordingSurface) TextInput(value string, hint string, invalid bool) string {
	s.invalid = invalid
	s.hints = append(s.hints, hint)
	if s.edit {
		return s.input
	}

	return value
}

func TestRefreshInvalidCredentialKeepsCache(t *testing.T) {
	simple := monitor.NewSimple(12345)
	releaseBefore := simple.ReleaseAt()
	fetcher := &stubFetcher{errs: map[uint32]error{12345: classified(2)}}

	err := simple.Refresh(t.Context(), fetcher, "BADKEY")
	require.ErrorIs(t, err, torn.ErrInvalidCredential)
	require.Equal(t, "", simple.Name())
	require.Equal(t, releaseBefore, simple.ReleaseAt())
	require.False(t, simple.IDError())
	require.Equal(t, "BADKEY", simple.Credential())
	require.Equal(t, []uint32{12345}, fetcher.calls)
}

func TestRefreshSuccess(t *testing.T) {
	simple := monitor.NewSimple(7)
	fetcher := &stubFetcher{errs: map[uint32]error{7: classified(6)}}

	require.ErrorIs(t, simple.Refresh(t.Context(), fetcher, "KEY"), torn.ErrInvalidIdentifier)
	require.True(t, simple.IDError())

	fetcher.errs = nil
	fetcher.players = map[uint32]torn.PlayerSnapshot{7: {
		Name:   "Alice",
		States: map[string]int64{torn.HospitalTimestampKey: 1700000000},
	}}

	require.NoError(t, simple.Refresh(t.Context(), fetcher, "KEY"))
	require.Equal(t, "Alice", simple.Name())
	require.Equal(t, time.Unix(1700000000, 0), simple.ReleaseAt())
	require.False(t, simple.IDError())
}

func TestRefreshFaultsAreReturned(t *testing.T) {
	simple := monitor.NewSimple(3)
	fetcher := &stubFetcher{errs: map[uint32]error{3: errors.Join(errors.New("dial tcp: refused"), torn.ErrTransport)}}

	require.ErrorIs(t, simple.Refresh(t.Context(), fetcher, "KEY"), torn.ErrTransport)
	require.False(t, simple.IDError())
	require.Equal(t, "", simple.Name())

	fetcher.errs[3] = errors.Join(errors.New("garbage"), torn.ErrDecode)
	require.ErrorIs(t, simple.Refresh(t.Context(), fetcher, "KEY"), torn.ErrDecode)
}

func TestInvalidIdentifierFlagClearedByOtherErrors(t *testing.T) {
	simple := monitor.NewSimple(9)
	fetcher := &stubFetcher{errs: map[uint32]error{9: classified(6)}}
	require.Error(t, simple.Refresh(t.Context(), fetcher, "KEY"))
	require.True(t, simple.IDError())

	fetcher.errs[9] = classified(17)
	require.ErrorIs(t, simple.Refresh(t.Context(), fetcher, "KEY"), torn.ErrUnclassified)
	require.False(t, simple.IDError())
}

func TestNoneIsNoop(t *testing.T) {
	fetcher := &stubFetcher{}
	none := monitor.New(monitor.KindNone)
	require.NoError(t, none.Refresh(t.Context(), fetcher, "KEY"))
	require.Empty(t, fetcher.calls)

	surface := &recordingSurface{}
	none.Render(surface)
	require.Empty(t, surface.labels)
	require.Empty(t, surface.hints)
}

func TestRender(t *testing.T) {
	simple := monitor.NewSimple(42)
	fetcher := &stubFetcher{players: map[uint32]torn.PlayerSnapshot{42: {
		Name:   "Bob",
		States: map[string]int64{torn.HospitalTimestampKey: time.Now().Add(2 * time.Hour).Unix()},
	}}}
	require.NoError(t, simple.Refresh(t.Context(), fetcher, "KEY"))

	surface := &recordingSurface{}
	simple.Render(surface)
	require.Equal(t, uint32(42), simple.ID)
	require.Len(t, surface.labels, 2)
	require.Regexp(t, `^ETA: (02:00:00|01:59:59)$`, surface.labels[0])
	require.Equal(t, "Bob", surface.labels[1])
	require.False(t, surface.invalid)
	require.Equal(t, "ID to query", surface.hints[0])

	expired := monitor.NewSimple(1)
	surface = &recordingSurface{}
	expired.Render(surface)
	require.Equal(t, "ETA: 00:00:00", surface.labels[0])
}

func TestRenderEditsID(t *testing.T) {
	simple := monitor.NewSimple(42)

	surface := &recordingSurface{edit: true, input: "12a3"}
	simple.Render(surface)
	require.Equal(t, uint32(123), simple.ID)

	surface.input = ""
	simple.Render(surface)
	require.Equal(t, uint32(0), simple.ID)

	surface.input = "1234567890"
	simple.Render(surface)
	require.Equal(t, uint32(12345678), simple.ID)
}

func TestRenderFlagsInvalidID(t *testing.T) {
	simple := monitor.NewSimple(5)
	require.Error(t, simple.Refresh(t.Context(), &stubFetcher{errs: map[uint32]error{5: classified(6)}}, "KEY"))

	surface := &recordingSurface{}
	simple.Render(surface)
	require.True(t, surface.invalid)
	require.Equal(t, "ID doesn't exist", surface.hints[0])
}

func TestParseID(t *testing.T) {
	require.Equal(t, uint32(0), monitor.ParseID(""))
	require.Equal(t, uint32(0), monitor.ParseID("abc"))
	require.Equal(t, uint32(99999999), monitor.ParseID("999999999999"))
	require.Equal(t, uint32(1), monitor.ParseID("０1"), "non ascii digits are dropped")
	require.Equal(t, uint32(2048), monitor.ParseID(" 2 0 4 8 "))
}

func TestKinds(t *testing.T) {
	require.Equal(t, monitor.KindSimple, monitor.KindNone.Next())
	require.Equal(t, monitor.KindNone, monitor.KindSimple.Next())
	require.Equal(t, "Simple", monitor.KindSimple.Label())
	require.Equal(t, "", monitor.KindNone.Label())
	require.Panics(t, func() { monitor.New(monitor.Kind("fancy")) })

	for _, kind := range monitor.Kinds {
		require.Equal(t, kind, monitor.New(kind).Kind())
	}
}
