// Package coach adapts an LLM provider into the fitness-coach collaborator:
// exercise parameter generation, recorded-set analysis, plan generation, and
// chat. When no provider is configured, a rule-based offline coach keeps the
// analysis and chat surfaces functional.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fitvision/go-fitcoach/internal/log"
	"github.com/fitvision/go-fitcoach/pkg/exercise"
	"github.com/fitvision/go-fitcoach/pkg/inference"
	"github.com/fitvision/go-fitcoach/pkg/pose"
	"github.com/fitvision/go-fitcoach/pkg/tracking"
)

// Models per task. Form analysis runs on the cheap model since it fires
// after every recorded set.
const (
	modelAnalysis = "gpt-4o-mini"
	modelPlan     = "gpt-4o"
	modelChat     = "gpt-4o"
	modelGenerate = "gpt-4o-mini"
)

// bufferDegrees widens the usable range of generated thresholds: the raw
// anatomical extremes are hard to hit on camera, so the down bound moves up
// and the up bound moves down to make rep registration more forgiving.
const bufferDegrees = 15

const analysisSystemPrompt = "You are FitAI, a strict biomechanics coach. " +
	"Receive JSON data about exercise. Keep responses under 50 words. " +
	"Focus on form correction."

const chatSystemPrompt = "You are FitAI, a concise and professional fitness coach."

const generateSystemPrompt = "You are an expert kinesiologist. Given an exercise name, " +
	"respond with a single JSON object describing how to track it from a side-on camera: " +
	`{"landmarks": [three MediaPipe landmark names, tracked joint second], ` +
	`"thresholds": {"min": lowest joint angle in degrees, "max": highest joint angle in degrees}, ` +
	`"mode": "max_min" if a rep starts extended and contracts, "min_max" if it starts contracted and extends, ` +
	`"description": one short form cue}. JSON only, no prose.`

// Sentinel errors.
var (
	// ErrOffline is returned for operations that require the LLM provider
	// when none is configured.
	ErrOffline = errors.New("coach: no inference provider configured")

	// ErrBadParameters is returned when the provider's exercise parameters
	// cannot be turned into a valid tracking config.
	ErrBadParameters = errors.New("coach: unusable exercise parameters")
)

// SetSummary is the motion data handed to the analysis collaborator when a
// recording stops.
type SetSummary struct {
	Exercise string                   `json:"exercise"`
	Reps     int                      `json:"rep_count"`
	Errors   []string                 `json:"errors,omitempty"`
	Frames   []tracking.RecordedFrame `json:"frames,omitempty"`
}

// PlanRequest carries the user stats for plan generation.
type PlanRequest struct {
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activity_level"`
}

// Coach wraps an inference provider with the fitness-domain prompts. A nil
// provider selects the offline rule-based coach for analysis and chat;
// exercise generation requires the provider.
type Coach struct {
	provider inference.Provider
}

// New creates a coach. provider may be nil for offline operation.
func New(provider inference.Provider) *Coach {
	return &Coach{provider: provider}
}

// Online reports whether an inference provider is configured.
func (c *Coach) Online() bool {
	return c.provider != nil
}

// exerciseParams is the collaborator's raw payload for a generated exercise.
type exerciseParams struct {
	Landmarks  []string `json:"landmarks"`
	Thresholds struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"thresholds"`
	Mode        string `json:"mode"`
	Description string `json:"description"`
}

// GenerateExercise asks the provider for tracking parameters for a named
// exercise and translates them into a registry config: min/max angle extremes
// become down/up thresholds with a 15 degree buffer applied inward.
func (c *Coach) GenerateExercise(ctx context.Context, name string) (exercise.Exercise, error) {
	if c.provider == nil {
		return exercise.Exercise{}, ErrOffline
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return exercise.Exercise{}, fmt.Errorf("%w: empty exercise name", ErrBadParameters)
	}

	resp, err := c.provider.Chat(ctx, &inference.ChatRequest{
		Model: modelGenerate,
		Messages: []inference.Message{
			inference.NewSystemMessage(generateSystemPrompt),
			inference.NewUserMessage(name),
		},
		MaxTokens:   300,
		Temperature: 0.2,
		JSONOnly:    true,
	})
	if err != nil {
		return exercise.Exercise{}, fmt.Errorf("generate exercise %q: %w", name, err)
	}

	params, err := parseExerciseParams(resp.Message.Content)
	if err != nil {
		return exercise.Exercise{}, fmt.Errorf("generate exercise %q: %w", name, err)
	}

	ex, err := paramsToExercise(name, params)
	if err != nil {
		return exercise.Exercise{}, fmt.Errorf("generate exercise %q: %w", name, err)
	}

	log.Debug("generated exercise config",
		"exercise", ex.ID,
		"down", ex.Thresholds.Down,
		"up", ex.Thresholds.Up,
		"mode", ex.Mode,
	)
	return ex, nil
}

// parseExerciseParams decodes the provider's JSON, tolerating markdown fences.
func parseExerciseParams(content string) (exerciseParams, error) {
	var params exerciseParams

	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if err := json.Unmarshal([]byte(trimmed), &params); err != nil {
		return params, fmt.Errorf("%w: %v", ErrBadParameters, err)
	}
	return params, nil
}

// paramsToExercise validates and translates collaborator parameters into a
// registry config.
func paramsToExercise(name string, params exerciseParams) (exercise.Exercise, error) {
	if len(params.Landmarks) != 3 {
		return exercise.Exercise{}, fmt.Errorf("%w: need 3 landmarks, got %d",
			ErrBadParameters, len(params.Landmarks))
	}

	var landmarks [3]string
	for i, lm := range params.Landmarks {
		if _, err := pose.LookupJoint(lm); err != nil {
			return exercise.Exercise{}, fmt.Errorf("%w: landmark %q: %v",
				ErrBadParameters, lm, err)
		}
		landmarks[i] = lm
	}

	mode := exercise.Mode(params.Mode)
	if !mode.Valid() {
		mode = exercise.ModeMaxMin
	}

	min, max := params.Thresholds.Min, params.Thresholds.Max
	if min == 0 && max == 0 {
		min, max = 30, 150
	}
	if min >= max {
		return exercise.Exercise{}, fmt.Errorf("%w: min %v >= max %v",
			ErrBadParameters, min, max)
	}

	desc := params.Description
	if desc == "" {
		desc = "Custom AI exercise"
	}

	return exercise.Exercise{
		ID:          name,
		Description: desc,
		Landmarks:   landmarks,
		Thresholds: exercise.Thresholds{
			Down: min + bufferDegrees,
			Up:   max - bufferDegrees,
		},
		Mode: mode,
	}, nil
}

// AnalyzeSet produces a short form-correction report for a recorded set.
// Offline it falls back to the rule-based analyzer.
func (c *Coach) AnalyzeSet(ctx context.Context, sum SetSummary) (string, error) {
	if c.provider == nil {
		return offlineAnalyze(sum), nil
	}

	payload, err := json.Marshal(sum)
	if err != nil {
		return "", fmt.Errorf("analyze set: %w", err)
	}

	resp, err := c.provider.Chat(ctx, &inference.ChatRequest{
		Model: modelAnalysis,
		Messages: []inference.Message{
			inference.NewSystemMessage(analysisSystemPrompt),
			inference.NewUserMessage(string(payload)),
		},
		MaxTokens: 100,
	})
	if err != nil {
		log.Warn("set analysis failed, using offline coach", "error", err)
		return offlineAnalyze(sum), nil
	}
	return resp.Message.Content, nil
}

// GeneratePlan produces a workout/nutrition plan from user stats.
func (c *Coach) GeneratePlan(ctx context.Context, req PlanRequest) (string, error) {
	if c.provider == nil {
		return offlinePlanPrompt, nil
	}

	prompt := fmt.Sprintf(`You are FitAI, an expert fitness coach. Create a concise plan for a user with these stats:
- Weight: %.1f kg
- Height: %.1f cm
- Goal: %s
- Activity Level: %s

Provide:
1. Daily Calorie Target
2. Macro Split (Protein/Carbs/Fats)
3. 3 Key Exercises recommended

Keep it under 150 words. Use bullet points.`, req.Weight, req.Height, req.Goal, req.ActivityLevel)

	resp, err := c.provider.Chat(ctx, &inference.ChatRequest{
		Model: modelPlan,
		Messages: []inference.Message{
			inference.NewSystemMessage("You are a helpful fitness assistant."),
			inference.NewUserMessage(prompt),
		},
		MaxTokens: 300,
	})
	if err != nil {
		return "", fmt.Errorf("generate plan: %w", err)
	}
	return resp.Message.Content, nil
}

// Chat answers a general training or diet question, carrying prior history.
func (c *Coach) Chat(ctx context.Context, history []inference.Message, message string) (string, error) {
	if c.provider == nil {
		return offlineChat(message), nil
	}

	messages := make([]inference.Message, 0, len(history)+2)
	messages = append(messages, inference.NewSystemMessage(chatSystemPrompt))
	messages = append(messages, history...)
	messages = append(messages, inference.NewUserMessage(message))

	resp, err := c.provider.Chat(ctx, &inference.ChatRequest{
		Model:     modelChat,
		Messages:  messages,
		MaxTokens: 150,
	})
	if err != nil {
		log.Warn("chat failed, using offline coach", "error", err)
		return offlineChat(message), nil
	}
	return resp.Message.Content, nil
}
