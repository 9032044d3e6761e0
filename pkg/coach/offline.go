package coach

import (
	"fmt"
	"strings"
)

// Offline rule-based coach. Keeps analysis and chat working with no API key:
// canned fixes per known error phrase and a simple 10-point score.

const offlineMaxWords = 50

const offlinePlanPrompt = "Please provide your stats:\n" +
	"- Weight\n" +
	"- Height\n" +
	"- Goal (Lose/Gain/Maintain)\n" +
	"- Any blood test results?"

// offlineAnalyze scores a set from its error list: 10 minus 2 per error,
// floored at 0, with a fix phrase per recognized error.
func offlineAnalyze(sum SetSummary) string {
	name := sum.Exercise
	if name == "" {
		name = "Unknown Exercise"
	}

	parts := []string{fmt.Sprintf("Exercise: %s.", name)}

	score := 10 - len(sum.Errors)*2
	if score < 0 {
		score = 0
	}

	if len(sum.Errors) > 0 {
		fixes := make([]string, 0, len(sum.Errors))
		for _, e := range sum.Errors {
			fixes = append(fixes, fixFor(e))
		}
		parts = append(parts, strings.Join(fixes, " "))
	} else {
		parts = append(parts, "Perfect form.")
	}

	parts = append(parts, fmt.Sprintf("Score: %d/10", score))

	return trimWords(strings.Join(parts, " "), offlineMaxWords)
}

// fixFor maps an error phrase to a correction cue.
func fixFor(err string) string {
	lower := strings.ToLower(err)
	switch {
	case strings.Contains(lower, "knees caving"):
		return "Push knees outward."
	case strings.Contains(lower, "depth"):
		return "Squat deeper."
	case strings.Contains(lower, "back") && strings.Contains(lower, "round"):
		return "Chest up, back straight."
	default:
		return fmt.Sprintf("Fix: %s.", err)
	}
}

// offlineChat handles diet and planning questions with keyword detection.
func offlineChat(message string) string {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "plan") || strings.Contains(lower, "stats") {
		return offlinePlanPrompt
	}

	if strings.Contains(lower, "deficiency") || strings.Contains(lower, "vitamin") {
		if strings.Contains(lower, "vitamin d") {
			return "**Vitamin D Deficiency Detected:**\n" +
				"- Fatty fish (Salmon, Tuna)\n" +
				"- Egg yolks\n" +
				"- Fortified foods (Milk, Cereal)\n" +
				"- Consider a supplement if advised by a doctor."
		}
	}

	return "I am FitAI. How can I help with your training or diet today?"
}

// trimWords truncates text to at most n words, appending an ellipsis when cut.
func trimWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + "..."
}
