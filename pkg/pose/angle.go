package pose

import (
	"errors"
	"math"
)

// ErrUnknownLandmark is returned when a landmark name does not resolve
// against the vocabulary.
var ErrUnknownLandmark = errors.New("pose: unknown landmark")

// Angle returns the planar angle in degrees at vertex b, formed by the
// segments b→a and b→c, in [0, 180].
//
// Only X and Y are used; Z is ignored. When a or c coincides with b the
// corresponding arm has no direction and atan2(0, 0) = 0, so the result
// degrades to the angle of the remaining arm (or 0 when both coincide).
// Callers need not special-case degenerate frames.
func Angle(a, b, c Landmark) float64 {
	rad := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	deg := math.Abs(rad * 180.0 / math.Pi)
	if deg > 180.0 {
		deg = 360.0 - deg
	}
	return deg
}
