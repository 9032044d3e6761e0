// FitCoach server - rep counting, form feedback, and AI coaching over
// HTTP/WebSocket. Landmark frames arrive from a pose-detection client (or as
// JPEG images when a local model is configured).
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fitvision/go-fitcoach/internal/config"
	"github.com/fitvision/go-fitcoach/internal/log"
	"github.com/fitvision/go-fitcoach/pkg/coach"
	"github.com/fitvision/go-fitcoach/pkg/detection"
	"github.com/fitvision/go-fitcoach/pkg/exercise"
	"github.com/fitvision/go-fitcoach/pkg/inference"
	"github.com/fitvision/go-fitcoach/pkg/logbook"
	"github.com/fitvision/go-fitcoach/pkg/tracking"
	"github.com/fitvision/go-fitcoach/pkg/web"
)

func main() {
	port := flag.String("port", config.Port(), "HTTP listen port")
	modelPath := flag.String("model", config.PoseModelPath(), "Path to the pose detection ONNX model")
	withDetector := flag.Bool("detector", false, "Load the local pose model for JPEG ingest")
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.Parse()

	level := config.LogLevel()
	if *debug {
		level = "debug"
	}
	log.Init(level)

	registry := exercise.NewRegistry()
	registry.LoadBuiltIn()

	fitCoach := newCoach()

	store, err := logbook.NewJSONStore(filepath.Join(config.DataDir(), "logbook.json"))
	if err != nil {
		log.Error("failed to open logbook", "error", err)
		os.Exit(1)
	}

	var google *logbook.GoogleDocsClient
	if config.GoogleClientID() != "" {
		google, err = logbook.NewGoogleDocsClient(logbook.GoogleDocsConfig{
			ClientID:     config.GoogleClientID(),
			ClientSecret: config.GoogleClientSecret(),
			RedirectURL:  "http://localhost:" + *port + "/api/logbook/callback",
		})
		if err != nil {
			log.Warn("google docs export disabled", "error", err)
			google = nil
		}
	}

	var detector detection.Detector
	if *withDetector {
		cfg := detection.DefaultConfig()
		cfg.ModelPath = *modelPath
		detector, err = detection.NewMoveNet(cfg)
		if err != nil {
			log.Error("failed to load pose model", "path", cfg.ModelPath, "error", err)
			os.Exit(1)
		}
		defer detector.Close()
		log.Info("pose model loaded", "path", cfg.ModelPath)
	}

	server := web.NewServer(web.Config{
		Port:     *port,
		Registry: registry,
		Coach:    fitCoach,
		Store:    store,
		Google:   google,
		Detector: detector,
		Tracking: tracking.DefaultConfig(),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error("shutdown error", "error", err)
		}
	}
}

// newCoach builds the AI coach, falling back to the offline rule-based coach
// when no API key is configured.
func newCoach() *coach.Coach {
	apiKey := config.OpenAIKey()
	if apiKey == "" {
		log.Warn("OPENAI_API_KEY not set; running with the offline coach")
		return coach.New(nil)
	}

	opts := []inference.Option{
		inference.WithAPIKey(apiKey),
		inference.WithLogger(log.L()),
	}
	if base := config.OpenAIBaseURL(); base != "" {
		opts = append(opts, inference.WithBaseURL(base))
	}

	client, err := inference.NewClient(opts...)
	if err != nil {
		log.Warn("inference client unavailable; running with the offline coach", "error", err)
		return coach.New(nil)
	}
	return coach.New(client)
}
