package tracking

import (
	"math"
	"sort"

	"github.com/fitvision/go-fitcoach/pkg/pose"
)

// RecordedPoint is one landmark in a sampled frame, rounded to three
// decimal places to bound the payload handed to the analysis collaborator.
type RecordedPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RecordedFrame is one sampled frame of a recording.
type RecordedFrame struct {
	// Index is the value of the per-recording frame counter when this
	// frame was sampled (10, 20, 30, … at the default stride).
	Index int `json:"index"`

	// Angle is the tracked angle truncated to an integer.
	Angle int `json:"angle"`

	// Phase is the session phase label at sampling time.
	Phase string `json:"phase"`

	// Landmarks are all detected joints, ordered by vocabulary index.
	Landmarks []RecordedPoint `json:"landmarks"`
}

// Recording is the compact set-recording handed to the analysis
// collaborator when recording stops.
type Recording struct {
	ExerciseName string          `json:"exercise_name"`
	Frames       []RecordedFrame `json:"frames"`
}

// recorder samples frames while recording is active. Driven by the same
// per-frame Advance call as the state machine.
type recorder struct {
	stride    int
	recording bool
	count     int
	frames    []RecordedFrame
}

// StartRecording clears the buffer, resets the frame counter, and begins
// sampling every Nth frame delivered through Advance.
func (s *Session) StartRecording() {
	s.rec.recording = true
	s.rec.count = 0
	s.rec.frames = nil
}

// StopRecording ends sampling and hands over the buffer. The returned
// Recording owns the frames; the session buffer is cleared.
func (s *Session) StopRecording() Recording {
	rec := Recording{
		ExerciseName: s.ex.ID,
		Frames:       s.rec.frames,
	}
	s.rec.recording = false
	s.rec.frames = nil
	s.rec.count = 0
	return rec
}

// IsRecording reports whether frames are currently being sampled.
func (s *Session) IsRecording() bool {
	return s.rec.recording
}

// observe counts one delivered frame and samples it at stride boundaries.
// The counter starts at 1, so the first sample lands on frame == stride.
func (r *recorder) observe(angle float64, phase Phase, frame pose.Frame) {
	if !r.recording {
		return
	}
	r.count++
	if r.count%r.stride != 0 {
		return
	}

	joints := make([]pose.Joint, 0, len(frame))
	for j := range frame {
		joints = append(joints, j)
	}
	sort.Slice(joints, func(i, k int) bool { return joints[i] < joints[k] })

	points := make([]RecordedPoint, len(joints))
	for i, j := range joints {
		lm := frame[j]
		points[i] = RecordedPoint{X: round3(lm.X), Y: round3(lm.Y)}
	}

	r.frames = append(r.frames, RecordedFrame{
		Index:     r.count,
		Angle:     int(angle),
		Phase:     string(phase),
		Landmarks: points,
	})
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
