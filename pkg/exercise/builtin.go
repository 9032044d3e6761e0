package exercise

// BuiltIn returns the seed exercise configurations.
//
// Thresholds were tuned on the left-side landmark chain viewed from the
// side; the curl tracks the same shoulder-elbow-wrist chain as the pushup
// but starts extended near 160° and contracts toward 30°.
func BuiltIn() []Exercise {
	return []Exercise{
		{
			ID:          "squat",
			Description: "Keep your chest up and push through your heels.",
			Landmarks:   [3]string{"LEFT_HIP", "LEFT_KNEE", "LEFT_ANKLE"},
			Thresholds:  Thresholds{Down: 90, Up: 160},
			Mode:        ModeMaxMin,
		},
		{
			ID:          "curl",
			Description: "Keep your elbows pinned to your sides.",
			Landmarks:   [3]string{"LEFT_SHOULDER", "LEFT_ELBOW", "LEFT_WRIST"},
			Thresholds:  Thresholds{Down: 160, Up: 30},
			Mode:        ModeMaxMin,
		},
		{
			ID:          "pushup",
			Description: "Keep your body in a straight line from head to heels.",
			Landmarks:   [3]string{"LEFT_SHOULDER", "LEFT_ELBOW", "LEFT_WRIST"},
			Thresholds:  Thresholds{Down: 90, Up: 160},
			Mode:        ModeMaxMin,
		},
	}
}
