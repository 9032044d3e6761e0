// Package detection provides pose estimation using computer vision.
//
// The rep-counting core treats the detector as an external collaborator:
// it consumes whatever Frame a Detector produces and handles empty frames
// as "no person detected". Landmarks may also arrive pre-detected over
// the wire (e.g. from a browser running MediaPipe), in which case no
// Detector is involved at all.
package detection

import "github.com/fitvision/go-fitcoach/pkg/pose"

// Detector is the interface for pose estimation backends.
type Detector interface {
	// Detect finds a single person's landmarks in the JPEG image.
	// An empty frame (not an error) means no person was detected.
	Detect(jpeg []byte) (pose.Frame, error)

	// Close releases resources.
	Close() error
}

// Config holds detector configuration.
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum keypoint confidence (default 0.3)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for MoveNet Lightning.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/movenet_singlepose_lightning.onnx",
		ConfidenceThresh: 0.3,
		InputWidth:       192,
		InputHeight:      192,
	}
}
