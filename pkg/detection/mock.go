package detection

import "github.com/fitvision/go-fitcoach/pkg/pose"

// Mock is a detector for testing. Set DetectFunc to control the output;
// otherwise Detect returns an empty frame.
type Mock struct {
	DetectFunc func(jpeg []byte) (pose.Frame, error)
	Calls      int
	Closed     bool
}

// NewMock creates a mock detector.
func NewMock() *Mock {
	return &Mock{}
}

// Detect invokes DetectFunc if set, counting every call.
func (m *Mock) Detect(jpeg []byte) (pose.Frame, error) {
	m.Calls++
	if m.DetectFunc != nil {
		return m.DetectFunc(jpeg)
	}
	return pose.Frame{}, nil
}

// Close marks the detector closed.
func (m *Mock) Close() error {
	m.Closed = true
	return nil
}

var _ Detector = (*Mock)(nil)
