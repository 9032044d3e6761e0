// Package pose defines the body landmark vocabulary and geometry
// primitives shared by the tracking pipeline.
//
// The vocabulary follows the MediaPipe Pose convention of 33 named
// landmarks in normalized image coordinates.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
package pose

import (
	"fmt"
	"strings"
)

// Joint identifies a single body landmark in the fixed vocabulary.
type Joint int

// Body landmark indices following the MediaPipe Pose convention.
const (
	Nose Joint = iota
	LeftEyeInner
	LeftEye
	LeftEyeOuter
	RightEyeInner
	RightEye
	RightEyeOuter
	LeftEar
	RightEar
	MouthLeft
	MouthRight
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftPinky
	RightPinky
	LeftIndex
	RightIndex
	LeftThumb
	RightThumb
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	LeftHeel
	RightHeel
	LeftFootIndex
	RightFootIndex

	NumJoints = 33
)

// jointNames holds the canonical uppercase names, indexed by Joint.
var jointNames = [NumJoints]string{
	"NOSE",
	"LEFT_EYE_INNER",
	"LEFT_EYE",
	"LEFT_EYE_OUTER",
	"RIGHT_EYE_INNER",
	"RIGHT_EYE",
	"RIGHT_EYE_OUTER",
	"LEFT_EAR",
	"RIGHT_EAR",
	"MOUTH_LEFT",
	"MOUTH_RIGHT",
	"LEFT_SHOULDER",
	"RIGHT_SHOULDER",
	"LEFT_ELBOW",
	"RIGHT_ELBOW",
	"LEFT_WRIST",
	"RIGHT_WRIST",
	"LEFT_PINKY",
	"RIGHT_PINKY",
	"LEFT_INDEX",
	"RIGHT_INDEX",
	"LEFT_THUMB",
	"RIGHT_THUMB",
	"LEFT_HIP",
	"RIGHT_HIP",
	"LEFT_KNEE",
	"RIGHT_KNEE",
	"LEFT_ANKLE",
	"RIGHT_ANKLE",
	"LEFT_HEEL",
	"RIGHT_HEEL",
	"LEFT_FOOT_INDEX",
	"RIGHT_FOOT_INDEX",
}

// jointByName maps canonical names back to joints.
var jointByName = func() map[string]Joint {
	m := make(map[string]Joint, NumJoints)
	for j, name := range jointNames {
		m[name] = Joint(j)
	}
	return m
}()

// String returns the canonical uppercase name of the joint.
func (j Joint) String() string {
	if j < 0 || j >= NumJoints {
		return fmt.Sprintf("JOINT_%d", int(j))
	}
	return jointNames[j]
}

// Valid reports whether the joint index is within the vocabulary.
func (j Joint) Valid() bool {
	return j >= 0 && j < NumJoints
}

// LookupJoint resolves a landmark name (case-insensitive, surrounding
// whitespace ignored) to its Joint. Returns ErrUnknownLandmark when the
// name is not in the vocabulary.
func LookupJoint(name string) (Joint, error) {
	canonical := strings.ToUpper(strings.TrimSpace(name))
	j, ok := jointByName[canonical]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLandmark, name)
	}
	return j, nil
}

// Landmark is a detected landmark position in normalized image space.
// X and Y are in [0, 1]; Z is detector-supplied depth and is ignored by
// the rep-counting core. Visibility is the detector's confidence in [0, 1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z,omitempty"`
	Visibility float64 `json:"visibility,omitempty"`
}

// Frame is the set of landmarks detected in a single video frame.
// An empty frame means no person was detected.
type Frame map[Joint]Landmark

// Get returns the landmark for a joint and whether it was detected.
func (f Frame) Get(j Joint) (Landmark, bool) {
	lm, ok := f[j]
	return lm, ok
}

// FrameFromNames builds a Frame from a name-keyed landmark map, as
// produced by external detectors. Names outside the vocabulary are
// dropped; resolution of exercise-configured names against the frame
// happens later, per frame.
func FrameFromNames(m map[string]Landmark) Frame {
	f := make(Frame, len(m))
	for name, lm := range m {
		j, err := LookupJoint(name)
		if err != nil {
			continue
		}
		f[j] = lm
	}
	return f
}

// Names returns the frame keyed by canonical landmark names, for
// serialization toward external collaborators.
func (f Frame) Names() map[string]Landmark {
	m := make(map[string]Landmark, len(f))
	for j, lm := range f {
		m[j.String()] = lm
	}
	return m
}
