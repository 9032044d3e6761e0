package detection

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/fitvision/go-fitcoach/pkg/pose"
)

// movenetKeypoints is the number of keypoints in the MoveNet skeleton.
const movenetKeypoints = 17

// cocoJoints maps MoveNet's COCO keypoint order onto the pose vocabulary.
var cocoJoints = [movenetKeypoints]pose.Joint{
	pose.Nose,
	pose.LeftEye,
	pose.RightEye,
	pose.LeftEar,
	pose.RightEar,
	pose.LeftShoulder,
	pose.RightShoulder,
	pose.LeftElbow,
	pose.RightElbow,
	pose.LeftWrist,
	pose.RightWrist,
	pose.LeftHip,
	pose.RightHip,
	pose.LeftKnee,
	pose.RightKnee,
	pose.LeftAnkle,
	pose.RightAnkle,
}

// MoveNetDetector runs MoveNet single-pose inference through OpenCV's DNN
// module. It produces the 17 COCO keypoints; landmarks outside that set
// (heels, hands, face detail) are never reported.
type MoveNetDetector struct {
	net    gocv.Net
	config Config
	mu     sync.Mutex // Protects inference
}

// NewMoveNet creates a MoveNet detector from an ONNX model file.
func NewMoveNet(cfg Config) (*MoveNetDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNet(cfg.ModelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model: %s", cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &MoveNetDetector{
		net:    net,
		config: cfg,
	}, nil
}

// Detect finds a single person's landmarks in the JPEG image.
func (d *MoveNetDetector) Detect(jpeg []byte) (pose.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	blob := gocv.BlobFromImage(img, 1.0,
		image.Pt(d.config.InputWidth, d.config.InputHeight),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	defer out.Close()

	// MoveNet output shape is [1, 1, 17, 3]: (y, x, score) per keypoint,
	// already normalized to the input image.
	keypoints := out.Reshape(1, movenetKeypoints)
	defer keypoints.Close()

	frame := make(pose.Frame, movenetKeypoints)
	for r := 0; r < movenetKeypoints; r++ {
		y := float64(keypoints.GetFloatAt(r, 0))
		x := float64(keypoints.GetFloatAt(r, 1))
		score := float64(keypoints.GetFloatAt(r, 2))

		if score < d.config.ConfidenceThresh {
			continue
		}
		frame[cocoJoints[r]] = pose.Landmark{X: x, Y: y, Visibility: score}
	}

	return frame, nil
}

// Close releases the network resources.
func (d *MoveNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}

// Verify MoveNetDetector implements Detector at compile time.
var _ Detector = (*MoveNetDetector)(nil)
