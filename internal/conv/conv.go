// Package conv holds small conversion helpers shared by the ui and the cli.
package conv

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Clamp restricts v to the inclusive range [low, high]. Swapped bounds are tolerated.
func Clamp[T Number](v, low, high T) T {
	if high < low {
		low, high = high, low
	}

	return min(high, max(low, v))
}

// ToHMS formats a duration in seconds as a zero padded HH:MM:SS string. Hours are not
// wrapped at 24. Negative values are not clamped here, callers should Clamp first.
func ToHMS(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
