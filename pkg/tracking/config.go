// Package tracking turns per-frame pose landmarks into rep counts.
//
// A Session owns the mutable state of one exercise-tracking session:
// the selected exercise, the phase hysteresis, the rep counter, and the
// optional recording buffer. Frames are delivered one at a time by the
// caller's acquisition loop; a Session is not safe for concurrent
// Advance calls and the caller must serialize frame delivery.
package tracking

import "github.com/fitvision/go-fitcoach/pkg/exercise"

// Config holds tunable parameters for a tracking session.
type Config struct {
	// RecordStride samples every Nth frame into the recording buffer.
	// The downstream analysis collaborator has strict input-size limits,
	// so the default trades fidelity for payload size.
	RecordStride int

	// FallbackThresholds substitute for dynamic configs that arrive
	// without usable angle bounds.
	FallbackThresholds exercise.Thresholds

	// FallbackMode substitutes for dynamic configs with a missing or
	// unknown counting mode.
	FallbackMode exercise.Mode
}

// DefaultConfig returns the recommended session configuration.
func DefaultConfig() Config {
	return Config{
		RecordStride:       10,
		FallbackThresholds: exercise.Thresholds{Down: 90, Up: 160},
		FallbackMode:       exercise.ModeMaxMin,
	}
}
