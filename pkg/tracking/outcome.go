package tracking

import "errors"

// Phase is the rep-cycle extreme the tracked angle last visited. It acts
// as hysteresis memory: a rep is counted only when the phase flips, so
// re-entering the same extreme never double-counts.
type Phase string

const (
	// PhaseNone means no phase-defining frame has been seen yet.
	PhaseNone Phase = ""
	// PhaseUp is the high-angle extreme.
	PhaseUp Phase = "UP"
	// PhaseDown is the low-angle extreme.
	PhaseDown Phase = "DOWN"
)

// Frame-local errors. They surface in Outcome.Err, never as panics; the
// session stays tracking-capable on the next frame.
var (
	// ErrNoExercise means Advance was called before a successful Select.
	ErrNoExercise = errors.New("tracking: no exercise selected")

	// ErrNoDetection means the frame carried none of the configured
	// joints (typically: no person in view).
	ErrNoDetection = errors.New("tracking: required joints not detected")

	// ErrBadLandmark means a configured landmark name does not resolve
	// against the pose vocabulary. Dynamic configs hit this per frame.
	ErrBadLandmark = errors.New("tracking: unresolvable landmark in config")
)

// Outcome is the per-frame result of Advance. When Err is non-nil the
// frame contributed no state change: Angle is 0, Phase and Reps carry the
// unchanged session values, and Feedback holds a diagnostic string. The
// caller decides whether to log.
type Outcome struct {
	// Angle is the tracked joint angle in degrees.
	Angle float64 `json:"angle"`

	// Phase is the session phase after this frame.
	Phase Phase `json:"phase"`

	// Reps is the session rep count after this frame.
	Reps int `json:"reps"`

	// Counted is true when this frame completed a repetition.
	Counted bool `json:"counted,omitempty"`

	// Feedback is the latest coaching or diagnostic string.
	Feedback string `json:"feedback"`

	// FormFault is true when Feedback comes from a form check rather
	// than the counting cue.
	FormFault bool `json:"form_fault,omitempty"`

	// Err is the frame-local failure, if any.
	Err error `json:"-"`
}
