package exercise

import (
	"errors"
	"testing"
)

func TestRegistry_RegisterNormalizes(t *testing.T) {
	r := NewRegistry()
	r.Register(Exercise{
		ID:          "  Lateral Raise ",
		Description: "Raise to shoulder height.",
		Landmarks:   [3]string{" left_hip ", "Left_Shoulder", "LEFT_ELBOW"},
		Thresholds:  Thresholds{Down: 45, Up: 135},
		Mode:        ModeMinMax,
	})

	e, err := r.Get("lateral raise")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := [3]string{"LEFT_HIP", "LEFT_SHOULDER", "LEFT_ELBOW"}
	if e.Landmarks != want {
		t.Errorf("landmarks = %v, want %v", e.Landmarks, want)
	}
	if e.ID != "lateral raise" {
		t.Errorf("id = %q, want lowercase trimmed", e.ID)
	}
}

func TestRegistry_GetCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.LoadBuiltIn()

	for _, id := range []string{"squat", "Squat", "SQUAT", " squat "} {
		if _, err := r.Get(id); err != nil {
			t.Errorf("Get(%q) error: %v", id, err)
		}
	}

	_, err := r.Get("deadlift")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deadlift) error = %v, want ErrNotFound", err)
	}
}

func TestRegistry_AcceptsMalformedDynamicConfig(t *testing.T) {
	// Registration never rejects: unknown landmark names and missing
	// thresholds are deferred to analysis time so partial AI-generated
	// configs stay inspectable.
	r := NewRegistry()
	r.Register(Exercise{
		ID:        "mystery",
		Landmarks: [3]string{"LEFT_TENTACLE", "", "LEFT_ANKLE"},
	})

	e, err := r.Get("mystery")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if e.Landmarks[0] != "LEFT_TENTACLE" {
		t.Errorf("landmark stored as %q", e.Landmarks[0])
	}
	if e.Mode.Valid() {
		t.Error("empty mode should be invalid, resolved at analysis time")
	}
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	r := NewRegistry()
	r.LoadBuiltIn()
	before := r.Count()

	custom := Exercise{
		ID:          "squat",
		Description: "Goblet variant.",
		Landmarks:   [3]string{"LEFT_HIP", "LEFT_KNEE", "LEFT_ANKLE"},
		Thresholds:  Thresholds{Down: 80, Up: 150},
		Mode:        ModeMaxMin,
	}
	r.Register(custom)

	if r.Count() != before {
		t.Errorf("count = %d, want %d (overwrite, not insert)", r.Count(), before)
	}
	e, _ := r.Get("squat")
	if e.Thresholds.Down != 80 {
		t.Errorf("down threshold = %v, want overwritten 80", e.Thresholds.Down)
	}
}

func TestBuiltIn_Seeds(t *testing.T) {
	r := NewRegistry()
	r.LoadBuiltIn()

	tests := []struct {
		id     string
		vertex string
		th     Thresholds
		mode   Mode
	}{
		{"squat", "LEFT_KNEE", Thresholds{Down: 90, Up: 160}, ModeMaxMin},
		{"curl", "LEFT_ELBOW", Thresholds{Down: 160, Up: 30}, ModeMaxMin},
		{"pushup", "LEFT_ELBOW", Thresholds{Down: 90, Up: 160}, ModeMaxMin},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			e, err := r.Get(tc.id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if e.Landmarks[1] != tc.vertex {
				t.Errorf("vertex = %q, want %q", e.Landmarks[1], tc.vertex)
			}
			if e.Thresholds != tc.th {
				t.Errorf("thresholds = %+v, want %+v", e.Thresholds, tc.th)
			}
			if e.Mode != tc.mode {
				t.Errorf("mode = %q, want %q", e.Mode, tc.mode)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	e := Exercise{ID: "lateral raise"}
	if got := e.DisplayName(); got != "Lateral raise" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := (Exercise{}).DisplayName(); got != "" {
		t.Errorf("DisplayName() on empty = %q", got)
	}
}
