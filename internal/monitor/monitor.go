// Package monitor defines the tracked item types. The set of monitor kinds is closed: every kind
// is declared here and each implementation must satisfy Monitor, including the unexported seal.
package monitor

import (
	"context"
	"fmt"

	"github.com/leighmacdonald/hosp-tui/internal/torn"
)

// Kind identifies a monitor implementation. It is also the persisted type tag.
type Kind string

const (
	KindNone   Kind = "none"
	KindSimple Kind = "simple"
)

// Kinds lists every kind in selection order.
var Kinds = []Kind{KindNone, KindSimple} //nolint:gochecknoglobals

// Label is the human readable name shown in kind selectors.
func (k Kind) Label() string {
	switch k {
	case KindNone:
		return ""
	case KindSimple:
		return "Simple"
	default:
		panic(fmt.Sprintf("monitor: unknown kind %q", string(k)))
	}
}

// Next returns the kind following k in Kinds, wrapping around.
func (k Kind) Next() Kind {
	for idx, kind := range Kinds {
		if kind == k {
			return Kinds[(idx+1)%len(Kinds)]
		}
	}

	return KindNone
}

// Fetcher is the api surface monitors refresh from. *torn.Client satisfies it.
type Fetcher interface {
	Player(ctx context.Context, credential string, playerID uint32) (torn.PlayerSnapshot, error)
}

// Surface is the drawing target supplied by the presentation layer. Nothing beyond displaying text
// and a single line of editable text is assumed.
type Surface interface {
	// Label displays text. hint is optional extra context, eg. a tooltip.
	Label(text string, hint string)
	// TextInput displays an editable field holding value and returns the possibly edited value.
	// invalid asks the surface to flag the field as erroneous.
	TextInput(value string, hint string, invalid bool) string
}

// Monitor is the capability every tracked item type provides.
type Monitor interface {
	Kind() Kind
	// Render draws the current state onto surface. The only state it may change is what the user
	// edited through the surface.
	Render(surface Surface)
	// Refresh queries the api using credential and updates the cached state.
	Refresh(ctx context.Context, fetcher Fetcher, credential string) error

	sealed()
}

// New returns a monitor of the given kind with default state.
func New(kind Kind) Monitor {
	switch kind {
	case KindNone:
		return None{}
	case KindSimple:
		return NewSimple(0)
	default:
		panic(fmt.Sprintf("monitor: unknown kind %q", string(kind)))
	}
}

// None is an unassigned slot. Both operations are no-ops.
type None struct{}

func (None) Kind() Kind {
	return KindNone
}

func (None) Render(_ Surface) {}

func (None) Refresh(_ context.Context, _ Fetcher, _ string) error {
	return nil
}

func (None) sealed() {}
