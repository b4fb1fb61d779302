// Package spin holds the wheel math and the spin session identity. The
// outcome of a spin is drawn once, up front; the animations elsewhere are
// a visual replay of a result that is already committed.
package spin

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/givewheel/givewheel/internal/catalog"
)

const (
	fullCircleDeg = 360.0

	// The wheel always makes at least minRotations full turns before
	// settling, plus up to rotationSpread more.
	minRotations   = 5
	rotationSpread = 5
)

// Result is the pre-committed outcome of one spin: the rotation that the
// wheel animation replays and the values both selectors settle on.
type Result struct {
	Rotations int     // full turns before settling
	OffsetDeg float64 // final resting angle within [0, 360)
	Segment   int     // index into the amount set, derived from OffsetDeg
	Amount    int64   // catalog amount at Segment, in hundredths
	Charity   catalog.Charity
}

// Draw produces a spin result from rng. The amount comes from rotation
// math: a random offset angle mapped onto the segment whose arc contains
// it. The charity is an independent uniform draw made at the same moment,
// so the reveal several seconds later cannot disagree with it.
func Draw(rng *rand.Rand) Result {
	amounts := catalog.AmountOptions()
	charities := catalog.Charities()

	offset := rng.Float64() * fullCircleDeg
	segWidth := fullCircleDeg / float64(len(amounts))
	segment := int(offset/segWidth) % len(amounts)

	return Result{
		Rotations: minRotations + rng.Intn(rotationSpread),
		OffsetDeg: offset,
		Segment:   segment,
		Amount:    amounts[segment],
		Charity:   charities[rng.Intn(len(charities))],
	}
}

// Session identifies one spin cycle, from spin start to dialog dismissal.
// Timer messages carry the session id; anything arriving with a different
// id belongs to a dead cycle and must be dropped.
type Session struct {
	ID     string
	Result Result
}

// NewSession draws a result and wraps it with a fresh identity.
func NewSession(rng *rand.Rand) Session {
	return Session{ID: uuid.NewString(), Result: Draw(rng)}
}

// FrameIndex maps a free-running frame counter onto a valid index in a set
// of n items. Negative counters wrap too, so a display can never index out
// of range.
func FrameIndex(frame, n int) int {
	if n <= 0 {
		return 0
	}
	return ((frame % n) + n) % n
}
