// Package exercise defines tracking configurations for exercises and the
// registry that holds them.
//
// A configuration names the three joints whose planar angle is tracked
// (vertex second), the two angle thresholds, and the counting mode.
// Configurations may be built in or generated at runtime by the AI coach;
// landmark names are normalized at registration but only resolved against
// the pose vocabulary per frame, so partial or malformed dynamic configs
// remain inspectable.
package exercise

import "strings"

// Mode selects the counting direction of an exercise.
type Mode string

const (
	// ModeMaxMin counts a rep on the high→low transition: the joint angle
	// must first exceed the up threshold (extended), then drop below the
	// down threshold. Squats and pushups count this way.
	ModeMaxMin Mode = "max_min"

	// ModeMinMax counts a rep on the low→high transition: the angle must
	// first drop below the down threshold, then exceed the up threshold.
	// Lateral raises count this way.
	//
	// Note the threshold field names describe angle bounds, not motion
	// direction; for min_max exercises "down" is the start of the rep.
	ModeMinMax Mode = "min_max"
)

// Valid reports whether m is a known counting mode.
func (m Mode) Valid() bool {
	return m == ModeMaxMin || m == ModeMinMax
}

// Thresholds are the angle bounds of a rep in degrees.
type Thresholds struct {
	Down float64 `json:"down"` // low angle bound
	Up   float64 `json:"up"`   // high angle bound
}

// Exercise is a tracking configuration. Immutable once registered.
type Exercise struct {
	// ID is the lowercase registry key.
	ID string `json:"id"`

	// Description is the human-readable form cue shown on selection.
	Description string `json:"description"`

	// Landmarks are the three joint names whose angle is tracked.
	// The second entry is the vertex. Names are stored uppercase and
	// trimmed; they are resolved against the pose vocabulary per frame.
	Landmarks [3]string `json:"landmarks"`

	// Thresholds bound the tracked angle.
	Thresholds Thresholds `json:"thresholds"`

	// Mode selects the counting direction.
	Mode Mode `json:"mode"`
}

// DisplayName returns the ID with the first letter capitalized, for
// selection feedback.
func (e Exercise) DisplayName() string {
	if e.ID == "" {
		return ""
	}
	return strings.ToUpper(e.ID[:1]) + e.ID[1:]
}

// normalize canonicalizes the config for storage: lowercase id,
// uppercase trimmed landmark names. Thresholds and mode pass through
// untouched; their validation is deferred to analysis time.
func (e Exercise) normalize() Exercise {
	e.ID = strings.ToLower(strings.TrimSpace(e.ID))
	for i, name := range e.Landmarks {
		e.Landmarks[i] = strings.ToUpper(strings.TrimSpace(name))
	}
	return e
}
