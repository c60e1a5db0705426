package ai

import (
	"fmt"
	"strings"
)

// enrichmentPrompt asks for the four-key JSON analysis of a threat item.
func enrichmentPrompt(title, description string) string {
	return fmt.Sprintf(`Analyze the following cybersecurity threat and provide a structured JSON response.
Do not include %s markdown.

Threat Title: %q
Description: %q

Provide the following fields in your JSON response:
1. "summary": A concise, one-sentence summary of the threat for a non-technical executive.
2. "mitigation": Three actionable, bullet-pointed mitigation steps. Use '*' for bullet points.
3. "entities": A comma-separated string of key entities (e.g., malware names, vulnerability IDs, targeted groups).
4. "priority_score": An integer score from 1 to 10, where 10 is the most critical. Base this on the potential impact and urgency.`,
		"```json", title, description)
}

// briefingPrompt asks for free text, not JSON.
func briefingPrompt(title, description string) string {
	return fmt.Sprintf(`You are a cybersecurity advisor briefing a non-technical executive (CISO).
Analyze the following threat and provide a concise, two-paragraph summary.
Focus on the potential business impact, risk, and recommended strategic posture.
Avoid technical jargon.

Threat Title: %q
Description: %q`, title, description)
}

// quizPrompt asks for a strict three-question multiple-choice quiz as a JSON array.
func quizPrompt(title, summary, mitigation string) string {
	return fmt.Sprintf(`You are a cybersecurity training instructor. Based on the following threat, create a 3-question multiple-choice quiz.
The quiz should test a security analyst's practical understanding of the threat's impact and mitigation.
Provide a structured JSON response which is a list of objects. Do not include %s markdown.
Each object in the list should have the following keys: "question", "options" (a list of 4 strings), "answer" (the correct option string), and "explanation".

Threat Title: %q
Summary: %q
Mitigation Steps: %q`, "```json", title, summary, mitigation)
}

// stripFences removes the fenced-code wrapping the engine is prone to emit
// around JSON payloads.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
