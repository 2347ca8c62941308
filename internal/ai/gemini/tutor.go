package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/jleboube/AI-Toolkit/internal/ai"
	"github.com/jleboube/AI-Toolkit/internal/model"
)

// ExtractProblem reads the math problem out of a photographed exercise.
func (c *Client) ExtractProblem(ctx context.Context, image model.Image) (string, error) {
	parts := []part{
		{Text: ai.ExtractProblemPrompt},
		imagePart(image),
	}
	resp, err := c.generateContent(ctx, c.cfg.VisionModel, parts, nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract problem: %w", err)
	}
	return c.trimmedText(resp, "failed to extract problem")
}

// FirstStep suggests the very first step towards solving the problem.
func (c *Client) FirstStep(ctx context.Context, problem string) (string, error) {
	return c.reason(ctx, "failed to get first step", fmt.Sprintf(ai.FirstStepPromptFormat, problem))
}

// ExplainStep explains the concept behind the last suggested step.
func (c *Client) ExplainStep(ctx context.Context, problem, lastStep string, history []model.Turn) (string, error) {
	prompt := fmt.Sprintf(ai.ExplainStepPromptFormat, problem, lastStep, ai.MarshalHistory(history))
	return c.reason(ctx, "failed to explain step", prompt)
}

// NextStep suggests the next step given the dialogue so far.
func (c *Client) NextStep(ctx context.Context, problem string, history []model.Turn) (string, error) {
	prompt := fmt.Sprintf(ai.NextStepPromptFormat, problem, ai.MarshalHistory(history))
	return c.reason(ctx, "failed to get next step", prompt)
}

// ChatResponse answers a free-form student question in Socratic style.
func (c *Client) ChatResponse(ctx context.Context, problem string, history []model.Turn, message string) (string, error) {
	prompt := fmt.Sprintf(ai.ChatResponsePromptFormat, problem, ai.MarshalHistory(history), message)
	return c.reason(ctx, "failed to get chat response", prompt)
}

func (c *Client) reason(ctx context.Context, failMsg, prompt string) (string, error) {
	resp, err := c.generateContent(
		ctx, c.cfg.ReasoningModel, []part{{Text: prompt}}, &generationConfig{
			Temperature:    c.cfg.Temperature,
			ThinkingConfig: c.thinking(),
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", failMsg, err)
	}
	return c.trimmedText(resp, failMsg)
}

func (c *Client) trimmedText(resp *apiResponse, failMsg string) (string, error) {
	text, err := textFrom(resp)
	if err != nil {
		return "", fmt.Errorf("%s: %w", failMsg, err)
	}
	return strings.TrimSpace(text), nil
}
