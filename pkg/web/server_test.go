package web

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fitvision/go-fitcoach/pkg/coach"
	"github.com/fitvision/go-fitcoach/pkg/exercise"
	"github.com/fitvision/go-fitcoach/pkg/logbook"
	"github.com/fitvision/go-fitcoach/pkg/pose"
	"github.com/fitvision/go-fitcoach/pkg/tracking"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	registry := exercise.NewRegistry()
	registry.LoadBuiltIn()

	store, err := logbook.NewJSONStore(filepath.Join(t.TempDir(), "logbook.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	return NewServer(Config{
		Port:     "0",
		Registry: registry,
		Coach:    coach.New(nil),
		Store:    store,
		Tracking: tracking.DefaultConfig(),
	})
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// doJSON performs a request and decodes the JSON response body.
func doJSON(t *testing.T, s *Server, req *http.Request, out interface{}) int {
	t.Helper()
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("decode response %s: %v", data, err)
		}
	}
	return resp.StatusCode
}

// squatFrame builds a landmark frame with the hip-knee-ankle angle at deg.
// The shoulder is omitted so the torso form check stays quiet.
func squatFrame(deg float64) pose.Frame {
	rad := deg * math.Pi / 180
	knee := pose.Landmark{X: 0.5, Y: 0.5}
	return pose.Frame{
		pose.LeftKnee:  knee,
		pose.LeftHip:   {X: knee.X + 0.2*math.Cos(rad), Y: knee.Y + 0.2*math.Sin(rad)},
		pose.LeftAnkle: {X: knee.X + 0.2, Y: knee.Y},
	}
}

func TestListExercises(t *testing.T) {
	s := newTestServer(t)

	var exercises []exercise.Exercise
	status := doJSON(t, s, httptest.NewRequest("GET", "/api/exercises", nil), &exercises)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(exercises) != 3 {
		t.Errorf("expected 3 built-ins, got %d", len(exercises))
	}
}

func TestSelectExercise(t *testing.T) {
	s := newTestServer(t)

	var got SessionStatus
	status := doJSON(t, s, jsonRequest("POST", "/api/exercises/select", SelectRequest{ID: "Squat"}), &got)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got.Exercise != "squat" {
		t.Errorf("exercise = %q, want squat", got.Exercise)
	}
	if got.Reps != 0 {
		t.Errorf("reps = %d, want 0", got.Reps)
	}
}

func TestSelectUnknownExercise(t *testing.T) {
	s := newTestServer(t)

	status := doJSON(t, s, jsonRequest("POST", "/api/exercises/select", SelectRequest{ID: "nonexistent"}), nil)
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestSelectMissingBody(t *testing.T) {
	s := newTestServer(t)

	status := doJSON(t, s, jsonRequest("POST", "/api/exercises/select", nil), nil)
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestGenerateExerciseOffline(t *testing.T) {
	s := newTestServer(t)

	status := doJSON(t, s, jsonRequest("POST", "/api/exercises/generate", GenerateRequest{Name: "Lunge"}), nil)
	if status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 without a provider", status)
	}
}

func TestRecordingLifecycle(t *testing.T) {
	s := newTestServer(t)

	// Start before selecting is a conflict.
	if status := doJSON(t, s, jsonRequest("POST", "/api/recording/start", nil), nil); status != http.StatusConflict {
		t.Fatalf("start without selection: status = %d, want 409", status)
	}

	doJSON(t, s, jsonRequest("POST", "/api/exercises/select", SelectRequest{ID: "squat"}), nil)

	var st SessionStatus
	if status := doJSON(t, s, jsonRequest("POST", "/api/recording/start", nil), &st); status != http.StatusOK {
		t.Fatalf("start: status = %d", status)
	}
	if !st.Recording {
		t.Error("expected recording state")
	}

	// Two full squat reps while recording.
	for i := 0; i < 2; i++ {
		s.advance(squatFrame(170))
		s.advance(squatFrame(80))
	}

	var entry logbook.Entry
	if status := doJSON(t, s, jsonRequest("POST", "/api/recording/stop", nil), &entry); status != http.StatusOK {
		t.Fatalf("stop: status = %d", status)
	}
	if entry.Exercise != "squat" {
		t.Errorf("entry exercise = %q", entry.Exercise)
	}
	if entry.Reps != 2 {
		t.Errorf("entry reps = %d, want 2", entry.Reps)
	}
	if !strings.Contains(entry.Report, "Score") {
		t.Errorf("offline report missing score: %q", entry.Report)
	}
	if s.store.Count() != 1 {
		t.Errorf("store count = %d, want 1", s.store.Count())
	}

	// Second stop is a conflict.
	if status := doJSON(t, s, jsonRequest("POST", "/api/recording/stop", nil), nil); status != http.StatusConflict {
		t.Errorf("double stop: status = %d, want 409", status)
	}
}

func TestIngestAdvanceCountsReps(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, jsonRequest("POST", "/api/exercises/select", SelectRequest{ID: "squat"}), nil)

	s.advance(squatFrame(170))
	result := s.advance(squatFrame(80))

	if !result.Counted {
		t.Error("expected counted rep")
	}
	if result.Reps != 1 {
		t.Errorf("reps = %d, want 1", result.Reps)
	}
	if result.Phase != "DOWN" {
		t.Errorf("phase = %q, want DOWN", result.Phase)
	}
}

func TestIngestErrorCodes(t *testing.T) {
	s := newTestServer(t)

	// No exercise selected.
	result := s.advance(squatFrame(170))
	if result.Error != "no_exercise" {
		t.Errorf("error = %q, want no_exercise", result.Error)
	}

	doJSON(t, s, jsonRequest("POST", "/api/exercises/select", SelectRequest{ID: "squat"}), nil)

	// Frame with no joints.
	result = s.advance(pose.Frame{})
	if result.Error != "no_detection" {
		t.Errorf("error = %q, want no_detection", result.Error)
	}
	if result.Feedback != tracking.FeedbackUnavailable {
		t.Errorf("feedback = %q", result.Feedback)
	}
}

func TestSessionCap(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, jsonRequest("POST", "/api/exercises/select", SelectRequest{ID: "squat"}), nil)

	for i := 0; i < MaxRepsPerSession; i++ {
		s.advance(squatFrame(170))
		s.advance(squatFrame(80))
	}

	result := s.advance(squatFrame(170))
	if !result.Capped {
		t.Fatal("expected capped result")
	}
	if result.Reps != MaxRepsPerSession {
		t.Errorf("reps = %d, want %d", result.Reps, MaxRepsPerSession)
	}
	if !strings.Contains(result.Feedback, "Session limit") {
		t.Errorf("feedback = %q", result.Feedback)
	}

	// Selecting again resets the counter and lifts the cap.
	doJSON(t, s, jsonRequest("POST", "/api/exercises/select", SelectRequest{ID: "squat"}), nil)
	result = s.advance(squatFrame(170))
	if result.Capped {
		t.Error("cap should reset after select")
	}
	if result.Reps != 0 {
		t.Errorf("reps = %d, want 0 after reset", result.Reps)
	}
}

func TestPlanAndChatOffline(t *testing.T) {
	s := newTestServer(t)

	var planResp struct {
		Plan string `json:"plan"`
	}
	status := doJSON(t, s, jsonRequest("POST", "/api/plan", PlanRequest{Weight: 80, Height: 180, Goal: "Lose"}), &planResp)
	if status != http.StatusOK {
		t.Fatalf("plan status = %d", status)
	}
	if !strings.Contains(planResp.Plan, "provide your stats") {
		t.Errorf("unexpected offline plan %q", planResp.Plan)
	}

	var chatResp struct {
		Reply string `json:"reply"`
	}
	status = doJSON(t, s, jsonRequest("POST", "/api/chat", ChatRequest{Message: "hello"}), &chatResp)
	if status != http.StatusOK {
		t.Fatalf("chat status = %d", status)
	}
	if !strings.Contains(chatResp.Reply, "FitAI") {
		t.Errorf("unexpected offline reply %q", chatResp.Reply)
	}
}

func TestLogbookEndpoints(t *testing.T) {
	s := newTestServer(t)

	if status := doJSON(t, s, httptest.NewRequest("GET", "/api/logbook/latest", nil), nil); status != http.StatusNotFound {
		t.Errorf("latest on empty logbook: status = %d, want 404", status)
	}

	entry := &logbook.Entry{Exercise: "curl", Reps: 12, Report: "Control the negative."}
	if err := s.store.Save(entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var entries []logbook.Entry
	if status := doJSON(t, s, httptest.NewRequest("GET", "/api/logbook", nil), &entries); status != http.StatusOK {
		t.Fatalf("logbook status = %d", status)
	}
	if len(entries) != 1 || entries[0].Exercise != "curl" {
		t.Errorf("unexpected entries %+v", entries)
	}

	var latest logbook.Entry
	if status := doJSON(t, s, httptest.NewRequest("GET", "/api/logbook/latest", nil), &latest); status != http.StatusOK {
		t.Fatalf("latest status = %d", status)
	}
	if latest.ID != entry.ID {
		t.Errorf("latest id = %q, want %q", latest.ID, entry.ID)
	}
}

func TestGoogleEndpointsUnconfigured(t *testing.T) {
	s := newTestServer(t)

	var gs logbook.GoogleDocsStatus
	if status := doJSON(t, s, httptest.NewRequest("GET", "/api/logbook/google", nil), &gs); status != http.StatusOK {
		t.Fatalf("google status = %d", status)
	}
	if gs.Connected {
		t.Error("expected disconnected status")
	}

	if status := doJSON(t, s, jsonRequest("POST", "/api/logbook/some-id/export", nil), nil); status != http.StatusServiceUnavailable {
		t.Errorf("export status = %d, want 503", status)
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t)

	var st SessionStatus
	if status := doJSON(t, s, httptest.NewRequest("GET", "/api/status", nil), &st); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if st.Exercise != "" {
		t.Errorf("exercise = %q, want none selected", st.Exercise)
	}
	if st.CoachOnline {
		t.Error("coach should be offline in tests")
	}
}

func TestFormFaultsCollectedWhileRecording(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, jsonRequest("POST", "/api/exercises/select", SelectRequest{ID: "squat"}), nil)
	doJSON(t, s, jsonRequest("POST", "/api/recording/start", nil), nil)

	// A frame with the shoulder collapsed toward the knee triggers the
	// torso form check: place it along the hip-to-knee direction.
	frame := squatFrame(170)
	hip := frame[pose.LeftHip]
	knee := frame[pose.LeftKnee]
	frame[pose.LeftShoulder] = pose.Landmark{
		X: hip.X + (knee.X - hip.X),
		Y: hip.Y + (knee.Y - hip.Y),
	}

	result := s.advance(frame)
	if !result.FormFault {
		t.Fatalf("expected form fault, got %+v", result)
	}

	s.mu.Lock()
	faults := len(s.faults)
	s.mu.Unlock()
	if faults != 1 {
		t.Errorf("faults = %d, want 1", faults)
	}
}
