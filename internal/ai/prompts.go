// Package ai holds the prompt texts and history encoding shared by the
// provider adapters. Prompts are part of the service contract: the tutor
// and alias operations behave the same regardless of which backend serves
// them.
package ai

import (
	"encoding/json"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

const (
	ExtractProblemPrompt = "Extract the mathematical problem from this image. Present it clearly in a format that can be used for further analysis. Only return the problem itself."

	FirstStepPromptFormat = `You are a compassionate, Socratic math tutor. A student has presented you with the following problem: "%s".
Your task is to provide ONLY the very first logical step to begin solving it.
Frame your response as a gentle suggestion. Do not solve it or give away more than the first step.
For example: "A good place to start would be to distribute the 3x into the parentheses."
Do not explain why yet. Be encouraging and concise.`

	ExplainStepPromptFormat = `You are a Socratic math tutor. The problem is "%s". The last step you suggested was "%s". The student has asked 'Why did we do that?'.
Explain the underlying mathematical concept or rule for this specific step in a clear, simple, and patient manner.
Focus only on this single concept. Keep the explanation focused and easy to understand for someone who is stuck.
Previous conversation for context: %s`

	NextStepPromptFormat = `You are a Socratic math tutor. The problem is "%s". The conversation history is: %s.
Based on the previous steps, what is the single next logical step to solve the problem?
State the step clearly and concisely, like you did before. Do not explain why, just provide the next action.`

	ChatResponsePromptFormat = `You are a compassionate, Socratic math tutor. A student is working on the problem: "%s".
The conversation history so far is: %s.
The student has asked a direct question: "%s".

Your role is to answer their question helpfully, but you must adhere to these strict rules:
1.  **Stay on Topic:** Only discuss concepts related to Algebra and Calculus. Do not engage in any other topics.
2.  **Socratic Method:** Do not simply give the answer. Guide the student to understand the concept behind their question.
3.  **Context is Key:** Your explanation should be relevant to the current problem and the conversation history.
4.  **Encourage, Don't Solve:** Help them understand, but do not solve the main problem for them. Your goal is to empower them to solve it themselves.

Now, provide a helpful, Socratic response to the student's question.`

	SuggestAliasPromptFormat = `Given this URL: "%s", suggest a short, memorable, URL-safe slug. The slug should be 4-8 characters long, containing only lowercase letters and numbers. Respond with ONLY the slug text and nothing else.`
)

// MarshalHistory renders the model-visible history as it is embedded in
// prompts: a JSON list of role/parts turns.
func MarshalHistory(turns []model.Turn) string {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Role  string `json:"role"`
		Parts []part `json:"parts"`
	}
	contents := make([]content, 0, len(turns))
	for _, turn := range turns {
		contents = append(contents, content{Role: string(turn.Role), Parts: []part{{Text: turn.Text}}})
	}
	raw, err := json.Marshal(contents)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
