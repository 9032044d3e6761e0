package coach

import (
	"context"
	"strings"
	"testing"
)

func TestOfflineAnalyzeScoring(t *testing.T) {
	cases := []struct {
		name      string
		sum       SetSummary
		wantScore string
		wantIn    string
	}{
		{
			name:      "perfect form",
			sum:       SetSummary{Exercise: "Squat", Reps: 10},
			wantScore: "Score: 10/10",
			wantIn:    "Perfect form.",
		},
		{
			name: "two errors",
			sum: SetSummary{
				Exercise: "Squat",
				Errors:   []string{"Knees caving in", "Depth insufficient"},
			},
			wantScore: "Score: 6/10",
			wantIn:    "Push knees outward.",
		},
		{
			name: "score floors at zero",
			sum: SetSummary{
				Exercise: "Deadlift",
				Errors:   []string{"a", "b", "c", "d", "e", "f"},
			},
			wantScore: "Score: 0/10",
			wantIn:    "Fix: a.",
		},
		{
			name: "rounded back cue",
			sum: SetSummary{
				Exercise: "Squat",
				Errors:   []string{"Back is rounding"},
			},
			wantScore: "Score: 8/10",
			wantIn:    "Chest up, back straight.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := offlineAnalyze(tc.sum)
			if !strings.Contains(got, tc.wantScore) {
				t.Errorf("missing %q in %q", tc.wantScore, got)
			}
			if !strings.Contains(got, tc.wantIn) {
				t.Errorf("missing %q in %q", tc.wantIn, got)
			}
		})
	}
}

func TestOfflineAnalyzeUnknownExercise(t *testing.T) {
	got := offlineAnalyze(SetSummary{})
	if !strings.Contains(got, "Unknown Exercise") {
		t.Errorf("expected unknown exercise label, got %q", got)
	}
}

func TestOfflineAnalyzeTrimsToFiftyWords(t *testing.T) {
	errs := make([]string, 30)
	for i := range errs {
		errs[i] = "unrecognized problem number"
	}
	got := offlineAnalyze(SetSummary{Exercise: "Squat", Errors: errs})

	if n := len(strings.Fields(got)); n > offlineMaxWords {
		t.Errorf("response has %d words, cap is %d", n, offlineMaxWords)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncation marker, got %q", got)
	}
}

func TestOfflineChat(t *testing.T) {
	cases := []struct {
		message string
		wantIn  string
	}{
		{"Can you make me a plan?", "provide your stats"},
		{"Here are my stats", "provide your stats"},
		{"I have a Vitamin D deficiency", "Fatty fish"},
		{"hello", "I am FitAI"},
	}

	for _, tc := range cases {
		got := offlineChat(tc.message)
		if !strings.Contains(got, tc.wantIn) {
			t.Errorf("offlineChat(%q) = %q, want substring %q", tc.message, got, tc.wantIn)
		}
	}
}

func TestOfflineCoachThroughCoach(t *testing.T) {
	c := New(nil)

	if c.Online() {
		t.Error("expected offline coach")
	}

	report, err := c.AnalyzeSet(context.Background(), SetSummary{Exercise: "curl", Reps: 12})
	if err != nil {
		t.Fatalf("AnalyzeSet: %v", err)
	}
	if !strings.Contains(report, "curl") {
		t.Errorf("report %q missing exercise name", report)
	}

	plan, err := c.GeneratePlan(context.Background(), PlanRequest{})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if !strings.Contains(plan, "provide your stats") {
		t.Errorf("unexpected offline plan %q", plan)
	}
}
