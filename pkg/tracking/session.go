package tracking

import (
	"fmt"
	"math"

	"github.com/fitvision/go-fitcoach/pkg/exercise"
	"github.com/fitvision/go-fitcoach/pkg/pose"
)

// FeedbackUnavailable is reported for frames where the configured joints
// could not be found (no person detected, joint out of view).
const FeedbackUnavailable = "Analysis unavailable"

// Session tracks repetitions of one exercise from a stream of pose frames.
// Create one per tracking session with NewSession; deliver frames through
// Advance from a single goroutine.
type Session struct {
	registry *exercise.Registry
	cfg      Config

	ex       exercise.Exercise
	selected bool

	phase    Phase
	reps     int
	feedback string

	rec recorder
}

// NewSession creates a session over the given exercise registry.
func NewSession(registry *exercise.Registry, cfg Config) *Session {
	if cfg.RecordStride <= 0 {
		cfg.RecordStride = DefaultConfig().RecordStride
	}
	return &Session{
		registry: registry,
		cfg:      cfg,
		feedback: "Ready",
		rec:      recorder{stride: cfg.RecordStride},
	}
}

// Select switches the session to the named exercise if it exists in the
// registry (case-insensitive). On success the phase resets, the rep count
// drops to zero, and the feedback announces the selection. On failure the
// session state is untouched and Select returns false.
func (s *Session) Select(id string) bool {
	ex, err := s.registry.Get(id)
	if err != nil {
		return false
	}
	s.ex = ex
	s.selected = true
	s.phase = PhaseNone
	s.reps = 0
	s.feedback = fmt.Sprintf("Selected: %s. %s", ex.DisplayName(), ex.Description)
	return true
}

// Exercise returns the active configuration and whether one is selected.
func (s *Session) Exercise() (exercise.Exercise, bool) {
	return s.ex, s.selected
}

// Phase returns the current rep-cycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Reps returns the rep count of the current session.
func (s *Session) Reps() int { return s.reps }

// Feedback returns the latest coaching or diagnostic string.
func (s *Session) Feedback() string { return s.feedback }

// Advance processes one frame of landmarks: computes the tracked angle,
// moves the phase hysteresis, counts completed reps, and derives feedback.
// Failures are frame-local; the returned Outcome carries the error and the
// session remains tracking-capable on the next frame.
func (s *Session) Advance(frame pose.Frame) Outcome {
	if !s.selected {
		return s.failure(ErrNoExercise, "Select an exercise to begin")
	}

	var pts [3]pose.Landmark
	for i, name := range s.ex.Landmarks {
		j, err := pose.LookupJoint(name)
		if err != nil {
			s.rec.observe(0, s.phase, frame)
			return s.failure(
				fmt.Errorf("%w: %q", ErrBadLandmark, name),
				"Error: unknown landmark "+name,
			)
		}
		lm, ok := frame.Get(j)
		if !ok {
			s.rec.observe(0, s.phase, frame)
			return s.failure(ErrNoDetection, FeedbackUnavailable)
		}
		pts[i] = lm
	}

	angle := pose.Angle(pts[0], pts[1], pts[2])

	mode, th, substituted := s.effectiveParams()
	counted, cue := s.step(mode, th, angle)
	if cue == "" && substituted {
		cue = "Config incomplete; tracking with default thresholds"
	}

	// Built-in exercises run a secondary form check that shares the
	// feedback slot with the counting cue and wins when triggered.
	fault := false
	if msg, ok := checkForm(s.ex.ID, frame); ok {
		cue = msg
		fault = true
	}
	if cue != "" {
		s.feedback = cue
	}

	s.rec.observe(angle, s.phase, frame)

	return Outcome{
		Angle:     angle,
		Phase:     s.phase,
		Reps:      s.reps,
		Counted:   counted,
		Feedback:  s.feedback,
		FormFault: fault,
	}
}

// failure builds the no-state-change outcome for a frame-local error.
func (s *Session) failure(err error, feedback string) Outcome {
	s.feedback = feedback
	return Outcome{
		Phase:    s.phase,
		Reps:     s.reps,
		Feedback: feedback,
		Err:      err,
	}
}

// effectiveParams returns the mode and thresholds to track with,
// substituting the configured fallbacks when a dynamic config arrived
// without them.
func (s *Session) effectiveParams() (exercise.Mode, exercise.Thresholds, bool) {
	mode := s.ex.Mode
	th := s.ex.Thresholds
	substituted := false
	if !mode.Valid() {
		mode = s.cfg.FallbackMode
		substituted = true
	}
	if th.Down == 0 && th.Up == 0 {
		th = s.cfg.FallbackThresholds
		substituted = true
	}
	return mode, th, substituted
}

// step applies the mode-specific hysteresis to one angle sample.
//
// The field names "down"/"up" are historical and misleading for some
// exercises (curl stores down=160, up=30), so the effective bounds are
// taken by magnitude: the phase flips to the high extreme above
// max(down, up) and a rep registers below min(down, up) — or the reverse
// for min_max. A rep is counted exactly once per full phase flip.
func (s *Session) step(mode exercise.Mode, th exercise.Thresholds, angle float64) (bool, string) {
	high := math.Max(th.Down, th.Up)
	low := math.Min(th.Down, th.Up)
	cues := cuesFor(s.ex.ID, mode)

	switch mode {
	case exercise.ModeMinMax:
		switch {
		case angle < low:
			s.phase = PhaseDown
			return false, cues.armed
		case angle > high && s.phase == PhaseDown:
			s.phase = PhaseUp
			s.reps++
			return true, cues.counted
		case s.phase == PhaseNone:
			return false, cues.prompt
		}
	default: // max_min
		switch {
		case angle > high:
			s.phase = PhaseUp
			return false, cues.armed
		case angle < low && s.phase == PhaseUp:
			s.phase = PhaseDown
			s.reps++
			return true, cues.counted
		case s.phase == PhaseNone:
			return false, cues.prompt
		}
	}
	return false, ""
}

// cueSet holds the three counting cues of an exercise: entering the
// arming extreme, completing a rep, and the not-yet-started prompt.
type cueSet struct {
	armed   string
	counted string
	prompt  string
}

var builtinCues = map[string]cueSet{
	"squat":  {"Squat down", "Push Up!", "Stand tall to start"},
	"pushup": {"Lower your chest", "Push Up!", "Lock out your arms to start"},
	"curl":   {"Curl the weight up", "Lower with control", "Straighten your arm to start"},
}

func cuesFor(id string, mode exercise.Mode) cueSet {
	if c, ok := builtinCues[id]; ok {
		return c
	}
	if mode == exercise.ModeMinMax {
		return cueSet{"Lift High", "Return to Start", "Lower to start"}
	}
	return cueSet{"Descend", "Push Up!", "Fully extend to start"}
}
