package tracking

import (
	"math"

	"github.com/fitvision/go-fitcoach/pkg/pose"
)

// Form-check thresholds for the built-in exercises.
const (
	// squatTorsoMinAngle is the minimum shoulder-hip-knee angle before
	// the torso counts as collapsed over the knees.
	squatTorsoMinAngle = 45.0

	// pushupPlankMinAngle is the minimum shoulder-hip-ankle angle before
	// the hips count as sagging or piking.
	pushupPlankMinAngle = 150.0

	// curlElbowMaxDrift is the maximum horizontal elbow-to-shoulder
	// offset (normalized image units) before the elbow counts as flaring.
	curlElbowMaxDrift = 0.10
)

// checkForm runs the secondary form heuristic for built-in exercises.
// It returns a corrective cue and true only when the check's joints are
// all present and the heuristic triggers; it never fails a frame.
func checkForm(id string, f pose.Frame) (string, bool) {
	switch id {
	case "squat":
		return squatTorsoCheck(f)
	case "pushup":
		return pushupPlankCheck(f)
	case "curl":
		return curlElbowCheck(f)
	}
	return "", false
}

// squatTorsoCheck flags a collapsed torso via the shoulder-hip-knee angle.
func squatTorsoCheck(f pose.Frame) (string, bool) {
	shoulder, ok1 := f.Get(pose.LeftShoulder)
	hip, ok2 := f.Get(pose.LeftHip)
	knee, ok3 := f.Get(pose.LeftKnee)
	if !ok1 || !ok2 || !ok3 {
		return "", false
	}
	if pose.Angle(shoulder, hip, knee) < squatTorsoMinAngle {
		return "Chest up, back straight", true
	}
	return "", false
}

// pushupPlankCheck flags sagging hips via the shoulder-hip-ankle angle.
func pushupPlankCheck(f pose.Frame) (string, bool) {
	shoulder, ok1 := f.Get(pose.LeftShoulder)
	hip, ok2 := f.Get(pose.LeftHip)
	ankle, ok3 := f.Get(pose.LeftAnkle)
	if !ok1 || !ok2 || !ok3 {
		return "", false
	}
	if pose.Angle(shoulder, hip, ankle) < pushupPlankMinAngle {
		return "Keep your hips in line with your shoulders", true
	}
	return "", false
}

// curlElbowCheck flags the elbow drifting away from the torso.
func curlElbowCheck(f pose.Frame) (string, bool) {
	shoulder, ok1 := f.Get(pose.LeftShoulder)
	elbow, ok2 := f.Get(pose.LeftElbow)
	if !ok1 || !ok2 {
		return "", false
	}
	if math.Abs(elbow.X-shoulder.X) > curlElbowMaxDrift {
		return "Keep your elbow pinned to your side", true
	}
	return "", false
}
