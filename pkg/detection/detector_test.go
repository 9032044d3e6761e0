package detection

import (
	"errors"
	"testing"

	"github.com/fitvision/go-fitcoach/pkg/pose"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InputWidth != 192 || cfg.InputHeight != 192 {
		t.Errorf("expected 192x192 input, got %dx%d", cfg.InputWidth, cfg.InputHeight)
	}
	if cfg.ConfidenceThresh <= 0 || cfg.ConfidenceThresh >= 1 {
		t.Errorf("confidence threshold %v out of range", cfg.ConfidenceThresh)
	}
	if cfg.ModelPath == "" {
		t.Error("expected a default model path")
	}
}

func TestCocoJointMapping(t *testing.T) {
	// Every slot must map to a distinct joint, and the known anchor
	// positions of the COCO order must hold.
	seen := make(map[pose.Joint]bool, len(cocoJoints))
	for i, j := range cocoJoints {
		if seen[j] {
			t.Errorf("joint %v mapped twice (index %d)", j, i)
		}
		seen[j] = true
	}

	anchors := []struct {
		index int
		joint pose.Joint
	}{
		{0, pose.Nose},
		{5, pose.LeftShoulder},
		{11, pose.LeftHip},
		{16, pose.RightAnkle},
	}
	for _, a := range anchors {
		if cocoJoints[a.index] != a.joint {
			t.Errorf("index %d = %v, want %v", a.index, cocoJoints[a.index], a.joint)
		}
	}
}

func TestNewMoveNetMissingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = "/nonexistent/model.onnx"

	_, err := NewMoveNet(cfg)
	if err == nil {
		t.Fatal("expected error for missing model file")
	}
}

func TestMockDetector(t *testing.T) {
	m := NewMock()

	frame := pose.Frame{
		pose.LeftElbow: {X: 0.5, Y: 0.5, Visibility: 0.9},
	}
	m.DetectFunc = func(jpeg []byte) (pose.Frame, error) {
		return frame, nil
	}

	got, err := m.Detect([]byte("jpeg"))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if _, ok := got.Get(pose.LeftElbow); !ok {
		t.Error("expected left elbow in frame")
	}
	if m.Calls != 1 {
		t.Errorf("expected 1 call, got %d", m.Calls)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !m.Closed {
		t.Error("expected Closed to be set")
	}
}

func TestMockDetectorError(t *testing.T) {
	m := NewMock()
	want := errors.New("no person")
	m.DetectFunc = func(jpeg []byte) (pose.Frame, error) {
		return nil, want
	}

	_, err := m.Detect(nil)
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}
