package web

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/websocket/v2"

	"github.com/fitvision/go-fitcoach/internal/log"
	"github.com/fitvision/go-fitcoach/pkg/pose"
	"github.com/fitvision/go-fitcoach/pkg/tracking"
)

// IngestFrame is one inbound landmark frame: joint name to coordinates, as
// produced by a pose-detection collaborator.
type IngestFrame struct {
	Landmarks map[string]pose.Landmark `json:"landmarks"`
}

// FrameResult is the per-frame reply on the ingest socket.
type FrameResult struct {
	Angle     float64 `json:"angle"`
	Phase     string  `json:"phase"`
	Reps      int     `json:"reps"`
	Counted   bool    `json:"counted,omitempty"`
	Feedback  string  `json:"feedback"`
	FormFault bool    `json:"form_fault,omitempty"`
	Error     string  `json:"error,omitempty"`
	Capped    bool    `json:"capped,omitempty"`
}

const cappedFeedback = "Session limit reached (50 reps). Select an exercise to start a new session."

// handleIngestWS consumes landmark frames (JSON) or JPEG images (binary,
// when a detector is configured) and replies with the per-frame outcome.
// Frames are serialized per connection and across connections through the
// session mutex.
func (s *Server) handleIngestWS(c *websocket.Conn) {
	defer c.Close()

	for {
		msgType, data, err := c.ReadMessage()
		if err != nil {
			return
		}

		var frame pose.Frame
		switch msgType {
		case websocket.TextMessage:
			var in IngestFrame
			if err := json.Unmarshal(data, &in); err != nil {
				c.WriteJSON(FrameResult{Error: "bad_frame", Feedback: "Malformed frame payload"})
				continue
			}
			frame = pose.FrameFromNames(in.Landmarks)

		case websocket.BinaryMessage:
			if s.detector == nil {
				c.WriteJSON(FrameResult{Error: "no_detector", Feedback: "Image ingest requires a pose model"})
				continue
			}
			frame, err = s.detector.Detect(data)
			if err != nil {
				log.Debug("detector failed", "error", err)
				c.WriteJSON(FrameResult{Error: "detect_failed", Feedback: tracking.FeedbackUnavailable})
				continue
			}

		default:
			continue
		}

		result := s.advance(frame)
		if err := c.WriteJSON(result); err != nil {
			return
		}
	}
}

// advance runs one frame through the session under the server mutex,
// enforcing the session cap and collecting form faults while recording.
func (s *Server) advance(frame pose.Frame) FrameResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Reps() >= MaxRepsPerSession {
		return FrameResult{
			Phase:    string(s.session.Phase()),
			Reps:     s.session.Reps(),
			Feedback: cappedFeedback,
			Capped:   true,
		}
	}

	out := s.session.Advance(frame)

	if out.FormFault && s.session.IsRecording() {
		s.faults[out.Feedback] = true
	}
	if out.Counted {
		s.broadcastStatus()
	}

	return FrameResult{
		Angle:     out.Angle,
		Phase:     string(out.Phase),
		Reps:      out.Reps,
		Counted:   out.Counted,
		Feedback:  out.Feedback,
		FormFault: out.FormFault,
		Error:     errorCode(out.Err),
		Capped:    out.Reps >= MaxRepsPerSession,
	}
}

// errorCode maps frame-local errors to wire codes.
func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, tracking.ErrNoExercise):
		return "no_exercise"
	case errors.Is(err, tracking.ErrNoDetection):
		return "no_detection"
	case errors.Is(err, tracking.ErrBadLandmark):
		return "bad_landmark"
	default:
		return "internal"
	}
}
