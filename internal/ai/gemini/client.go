// Package gemini is the Gemini REST adapter behind the demos' AI
// operations: inline-image generation and editing, text generation with an
// optional thinking budget, and JSON-schema constrained output.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jleboube/AI-Toolkit/config"
	"github.com/jleboube/AI-Toolkit/internal/model"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var ErrNoContent = errors.New("no content in response")

type Client struct {
	cfg    config.Gemini
	client *http.Client
}

func NewClient(cfg config.Gemini) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = "gemini-2.5-flash"
	}
	if cfg.ReasoningModel == "" {
		cfg.ReasoningModel = "gemini-2.5-pro"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "gemini-2.5-flash-image"
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type generationConfig struct {
	Temperature        float32         `json:"temperature,omitempty"`
	ResponseModalities []string        `json:"responseModalities,omitempty"`
	ResponseMIMEType   string          `json:"responseMimeType,omitempty"`
	ResponseSchema     *schema         `json:"responseSchema,omitempty"`
	ThinkingConfig     *thinkingConfig `json:"thinkingConfig,omitempty"`
}

// schema is the subset of the response-schema language the document
// operations need.
type schema struct {
	Type       string             `json:"type"`
	Items      *schema            `json:"items,omitempty"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type apiRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type apiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
			Role  string `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func imagePart(img model.Image) part {
	return part{
		InlineData: &inlineData{
			MimeType: img.MimeType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		},
	}
}

func (c *Client) generateContent(
	ctx context.Context, aiModel string, parts []part, genCfg *generationConfig,
) (*apiResponse, error) {
	reqBody, err := json.Marshal(
		apiRequest{
			Contents:         []content{{Parts: parts}},
			GenerationConfig: genCfg,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, aiModel, c.cfg.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, model.ServiceErr(fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, model.ServiceErr(fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body)))
	}

	var apiResp apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, model.ServiceErr(fmt.Errorf("failed to decode response: %w", err))
	}
	return &apiResp, nil
}

// textFrom returns the first text part of the first candidate.
func textFrom(resp *apiResponse) (string, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", model.ServiceErr(ErrNoContent)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// imageFrom returns the first inline-image part of the first candidate.
func imageFrom(resp *apiResponse) (model.Image, error) {
	if len(resp.Candidates) == 0 {
		return model.Image{}, model.ServiceErr(ErrNoContent)
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData == nil {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return model.Image{}, model.BadDataErr(fmt.Errorf("failed to decode image data: %w", err))
		}
		return model.Image{MimeType: p.InlineData.MimeType, Data: data}, nil
	}
	return model.Image{}, model.BadDataErr(errors.New("no image data found in the response"))
}

func (c *Client) thinking() *thinkingConfig {
	if c.cfg.ThinkingBudget <= 0 {
		return nil
	}
	return &thinkingConfig{ThinkingBudget: c.cfg.ThinkingBudget}
}
