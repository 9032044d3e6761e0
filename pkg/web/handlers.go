package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fitvision/go-fitcoach/internal/log"
	"github.com/fitvision/go-fitcoach/pkg/coach"
	"github.com/fitvision/go-fitcoach/pkg/inference"
	"github.com/fitvision/go-fitcoach/pkg/logbook"
)

// handleStatus returns the current session state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(s.snapshot())
}

// handleListExercises returns every registered exercise.
func (s *Server) handleListExercises(c *fiber.Ctx) error {
	return c.JSON(s.registry.All())
}

// SelectRequest is the request body for selecting an exercise.
type SelectRequest struct {
	ID string `json:"id"`
}

// handleSelectExercise switches the session to the named exercise. Selecting
// resets the rep count, which also clears the session cap.
func (s *Server) handleSelectExercise(c *fiber.Ctx) error {
	var req SelectRequest
	if err := c.BodyParser(&req); err != nil || req.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id is required",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Select(req.ID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown exercise: " + req.ID,
		})
	}

	s.faults = make(map[string]bool)
	s.broadcastStatus()
	return c.JSON(s.snapshot())
}

// GenerateRequest is the request body for AI exercise generation.
type GenerateRequest struct {
	Name string `json:"name"`
}

// handleGenerateExercise asks the coach for tracking parameters and registers
// the result.
func (s *Server) handleGenerateExercise(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	ex, err := s.coach.GenerateExercise(c.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, coach.ErrOffline):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "exercise generation requires an OpenAI API key",
			})
		case errors.Is(err, coach.ErrBadParameters):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	s.registry.Register(ex)
	log.Info("registered generated exercise", "exercise", ex.ID)
	return c.Status(fiber.StatusCreated).JSON(ex)
}

// handleStartRecording begins sampling frames for set analysis.
func (s *Server) handleStartRecording(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.session.Exercise(); !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "select an exercise before recording",
		})
	}

	s.session.StartRecording()
	s.faults = make(map[string]bool)
	s.broadcastStatus()
	return c.JSON(s.snapshot())
}

// handleStopRecording stops sampling, hands the recording to the coach for
// analysis, and stores the report in the logbook.
func (s *Server) handleStopRecording(c *fiber.Ctx) error {
	s.mu.Lock()
	if !s.session.IsRecording() {
		s.mu.Unlock()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "not recording",
		})
	}

	rec := s.session.StopRecording()
	reps := s.session.Reps()
	faults := make([]string, 0, len(s.faults))
	for f := range s.faults {
		faults = append(faults, f)
	}
	s.broadcastStatus()
	s.mu.Unlock()

	report, err := s.coach.AnalyzeSet(c.Context(), coach.SetSummary{
		Exercise: rec.ExerciseName,
		Reps:     reps,
		Errors:   faults,
		Frames:   rec.Frames,
	})
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	entry := &logbook.Entry{
		Exercise: rec.ExerciseName,
		Reps:     reps,
		Report:   report,
	}
	if err := s.store.Save(entry); err != nil {
		log.Error("failed to save logbook entry", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to persist analysis",
		})
	}

	return c.JSON(entry)
}

// handleListLogbook returns all stored entries, newest first.
func (s *Server) handleListLogbook(c *fiber.Ctx) error {
	entries, err := s.store.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(entries)
}

// handleLatestLogbook returns the most recent analysis report.
func (s *Server) handleLatestLogbook(c *fiber.Ctx) error {
	entry, err := s.store.Latest()
	if err != nil {
		if errors.Is(err, logbook.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no analysis recorded yet",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(entry)
}

// handleExportEntry exports a logbook entry to Google Docs.
func (s *Server) handleExportEntry(c *fiber.Ctx) error {
	if s.google == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "google docs export not configured",
		})
	}

	entry, err := s.store.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := s.google.Export(entry); err != nil {
		s.store.Save(entry) // Persist the error status
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := s.store.Save(entry); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"id":  entry.ID,
		"url": logbook.DocURL(entry.GoogleDocID),
	})
}

// handleGoogleConnect redirects to the Google OAuth consent page.
func (s *Server) handleGoogleConnect(c *fiber.Ctx) error {
	if s.google == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "google docs export not configured",
		})
	}
	return c.Redirect(s.google.AuthURL(), fiber.StatusTemporaryRedirect)
}

// handleGoogleCallback completes the OAuth flow.
func (s *Server) handleGoogleCallback(c *fiber.Ctx) error {
	if s.google == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "google docs export not configured",
		})
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing authorization code",
		})
	}

	if err := s.google.HandleCallback(code); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"connected": true})
}

// handleGoogleStatus reports the Google Docs connection state.
func (s *Server) handleGoogleStatus(c *fiber.Ctx) error {
	if s.google == nil {
		return c.JSON(logbook.GoogleDocsStatus{Connected: false})
	}
	return c.JSON(s.google.Status())
}

// PlanRequest mirrors coach.PlanRequest for the HTTP surface.
type PlanRequest struct {
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activity_level"`
}

// handlePlan generates a workout/nutrition plan.
func (s *Server) handlePlan(c *fiber.Ctx) error {
	var req PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	plan, err := s.coach.GeneratePlan(c.Context(), coach.PlanRequest{
		Weight:        req.Weight,
		Height:        req.Height,
		Goal:          req.Goal,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"plan": plan})
}

// ChatRequest is the request body for coach chat.
type ChatRequest struct {
	Message string              `json:"message"`
	History []inference.Message `json:"history"`
}

// handleChat answers a training or diet question.
func (s *Server) handleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	reply, err := s.coach.Chat(c.Context(), req.History, req.Message)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"reply": reply})
}
