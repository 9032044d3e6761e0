// Package web exposes the tracking core over HTTP and WebSocket: exercise
// management, landmark ingest, recording control with coach analysis, and a
// live status broadcast.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/fitvision/go-fitcoach/internal/log"
	"github.com/fitvision/go-fitcoach/pkg/coach"
	"github.com/fitvision/go-fitcoach/pkg/detection"
	"github.com/fitvision/go-fitcoach/pkg/exercise"
	"github.com/fitvision/go-fitcoach/pkg/hub"
	"github.com/fitvision/go-fitcoach/pkg/logbook"
	"github.com/fitvision/go-fitcoach/pkg/tracking"
)

// MaxRepsPerSession caps a single tracking session. The ingest loop stops
// counting past the cap; selecting an exercise resets it.
const MaxRepsPerSession = 50

// SessionStatus is the live view of the tracking session.
type SessionStatus struct {
	Exercise    string `json:"exercise"`
	Phase       string `json:"phase"`
	Reps        int    `json:"reps"`
	Feedback    string `json:"feedback"`
	Recording   bool   `json:"recording"`
	Capped      bool   `json:"capped"`
	CoachOnline bool   `json:"coach_online"`
}

// Config wires the server's collaborators.
type Config struct {
	Port     string
	Registry *exercise.Registry
	Coach    *coach.Coach
	Store    logbook.Store
	Google   *logbook.GoogleDocsClient // optional
	Detector detection.Detector        // optional, for binary frame ingest
	Tracking tracking.Config
}

// Server owns the tracking session and serializes all access to it: REST
// handlers and the ingest socket both go through the session mutex.
type Server struct {
	app  *fiber.App
	port string

	registry *exercise.Registry
	coach    *coach.Coach
	store    logbook.Store
	google   *logbook.GoogleDocsClient
	detector detection.Detector

	session *tracking.Session
	faults  map[string]bool // distinct form faults seen while recording
	mu      sync.Mutex

	statusHub *hub.Hub
}

// NewServer creates the web server and registers all routes.
func NewServer(cfg Config) *Server {
	s := &Server{
		port:      cfg.Port,
		registry:  cfg.Registry,
		coach:     cfg.Coach,
		store:     cfg.Store,
		google:    cfg.Google,
		detector:  cfg.Detector,
		session:   tracking.NewSession(cfg.Registry, cfg.Tracking),
		faults:    make(map[string]bool),
		statusHub: hub.New("status"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "FitCoach",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/exercises", s.handleListExercises)
	api.Post("/exercises/select", s.handleSelectExercise)
	api.Post("/exercises/generate", s.handleGenerateExercise)
	api.Post("/recording/start", s.handleStartRecording)
	api.Post("/recording/stop", s.handleStopRecording)
	api.Get("/logbook", s.handleListLogbook)
	api.Get("/logbook/latest", s.handleLatestLogbook)
	api.Post("/logbook/:id/export", s.handleExportEntry)
	api.Get("/logbook/connect", s.handleGoogleConnect)
	api.Get("/logbook/callback", s.handleGoogleCallback)
	api.Get("/logbook/google", s.handleGoogleStatus)
	api.Post("/plan", s.handlePlan)
	api.Post("/chat", s.handleChat)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/ingest", websocket.New(s.handleIngestWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start starts the web server and the status hub.
func (s *Server) Start() error {
	log.Info("web server listening", "port", s.port)
	go s.statusHub.Run()
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// snapshot builds the current SessionStatus. Callers must hold s.mu.
func (s *Server) snapshot() SessionStatus {
	ex, _ := s.session.Exercise()
	return SessionStatus{
		Exercise:    ex.ID,
		Phase:       string(s.session.Phase()),
		Reps:        s.session.Reps(),
		Feedback:    s.session.Feedback(),
		Recording:   s.session.IsRecording(),
		Capped:      s.session.Reps() >= MaxRepsPerSession,
		CoachOnline: s.coach.Online(),
	}
}

// broadcastStatus pushes the current status to all viewers. Callers must
// hold s.mu.
func (s *Server) broadcastStatus() {
	s.statusHub.BroadcastJSON(s.snapshot())
}

// handleStatusWS registers a status viewer with the broadcast hub.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	s.mu.Lock()
	status := s.snapshot()
	s.mu.Unlock()
	c.WriteJSON(status)

	client := hub.NewClient(s.statusHub, c)
	client.Run() // Blocks until the connection closes
}
