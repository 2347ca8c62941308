// Package openai serves the text-only AI operations through an
// OpenAI-compatible chat-completions backend, as an alternative to the
// Gemini adapter. Image generation is not offered here.
package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/jleboube/AI-Toolkit/config"
	"github.com/jleboube/AI-Toolkit/internal/ai"
	"github.com/jleboube/AI-Toolkit/internal/model"
)

type Client struct {
	cfg    config.OpenAI
	client *openai.Client
}

func NewClient(cfg config.OpenAI) *Client {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	return &Client{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx, openai.ChatCompletionRequest{
			Model:       c.cfg.OpenAIModel,
			Temperature: c.cfg.ModelTemperature,
			TopP:        1,
			N:           1,
			Messages:    messages,
		},
	)
	if err != nil {
		return "", model.ServiceErr(fmt.Errorf("failed to create chat completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", model.ServiceErr(fmt.Errorf("no choices in response"))
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *Client) completePrompt(ctx context.Context, prompt string) (string, error) {
	return c.complete(
		ctx, []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	)
}

// ExtractProblem reads the math problem out of a photographed exercise.
func (c *Client) ExtractProblem(ctx context.Context, image model.Image) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", image.MimeType, base64.StdEncoding.EncodeToString(image.Data))
	text, err := c.complete(
		ctx, []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: ai.ExtractProblemPrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to extract problem: %w", err)
	}
	return text, nil
}

// FirstStep suggests the very first step towards solving the problem.
func (c *Client) FirstStep(ctx context.Context, problem string) (string, error) {
	return c.completePrompt(ctx, fmt.Sprintf(ai.FirstStepPromptFormat, problem))
}

// ExplainStep explains the concept behind the last suggested step.
func (c *Client) ExplainStep(ctx context.Context, problem, lastStep string, history []model.Turn) (string, error) {
	return c.completePrompt(ctx, fmt.Sprintf(ai.ExplainStepPromptFormat, problem, lastStep, ai.MarshalHistory(history)))
}

// NextStep suggests the next step given the dialogue so far.
func (c *Client) NextStep(ctx context.Context, problem string, history []model.Turn) (string, error) {
	return c.completePrompt(ctx, fmt.Sprintf(ai.NextStepPromptFormat, problem, ai.MarshalHistory(history)))
}

// ChatResponse answers a free-form student question in Socratic style.
func (c *Client) ChatResponse(ctx context.Context, problem string, history []model.Turn, message string) (string, error) {
	return c.completePrompt(ctx, fmt.Sprintf(ai.ChatResponsePromptFormat, problem, ai.MarshalHistory(history), message))
}

// SuggestAlias asks the model for a short slug candidate for the URL.
func (c *Client) SuggestAlias(ctx context.Context, longURL string) (string, error) {
	text, err := c.completePrompt(ctx, fmt.Sprintf(ai.SuggestAliasPromptFormat, longURL))
	if err != nil {
		return "", fmt.Errorf("failed to suggest alias: %w", err)
	}
	return text, nil
}
