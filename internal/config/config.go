// Package config provides configuration helpers for go-fitcoach commands.
package config

import (
	"os"
	"path/filepath"
)

// Defaults for the coach server.
const (
	DefaultPort      = "8090"
	DefaultLogLevel  = "info"
	DefaultModelPath = "models/movenet_singlepose_lightning.onnx"
)

// Port returns the HTTP port from FITCOACH_PORT, or the default.
func Port() string {
	if p := os.Getenv("FITCOACH_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// LogLevel returns the log level from FITCOACH_LOG_LEVEL, or the default.
func LogLevel() string {
	if l := os.Getenv("FITCOACH_LOG_LEVEL"); l != "" {
		return l
	}
	return DefaultLogLevel
}

// OpenAIKey returns the OpenAI API key from OPENAI_API_KEY.
// Empty means the AI coach runs in offline mode.
func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// OpenAIBaseURL returns an override base URL from OPENAI_BASE_URL
// (e.g. an Ollama or vLLM endpoint). Empty means the provider default.
func OpenAIBaseURL() string {
	return os.Getenv("OPENAI_BASE_URL")
}

// PoseModelPath returns the path to the pose estimation ONNX model
// from FITCOACH_POSE_MODEL, or the default.
func PoseModelPath() string {
	if p := os.Getenv("FITCOACH_POSE_MODEL"); p != "" {
		return p
	}
	return DefaultModelPath
}

// GoogleClientID returns the OAuth client ID from GOOGLE_CLIENT_ID.
func GoogleClientID() string {
	return os.Getenv("GOOGLE_CLIENT_ID")
}

// GoogleClientSecret returns the OAuth client secret from GOOGLE_CLIENT_SECRET.
func GoogleClientSecret() string {
	return os.Getenv("GOOGLE_CLIENT_SECRET")
}

// DataDir returns the directory for persisted sessions and tokens.
// Defaults to ~/.fitcoach.
func DataDir() string {
	if d := os.Getenv("FITCOACH_DATA_DIR"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fitcoach"
	}
	return filepath.Join(home, ".fitcoach")
}
