package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

const (
	extractDocumentPrompt = `Analyze this image of a document. Extract all key-value pairs and logical sections of information. Structure the output as a JSON array of sections. Each section must have a unique 'id' (e.g., 'section-1'), a 'title', and an array of 'fields'. Each field must have a unique 'id' (e.g., 'field-1'), a 'key', and a 'value'. Ensure all IDs are unique strings. Only return the JSON object. Example: [{ "id": "section-1", "title": "Personal Information", "fields": [{ "id": "field-1", "key": "Name", "value": "John Doe" }] }]`

	modifyDocumentPromptFormat = `You are an intelligent data structure manipulator. Your task is to modify a JSON structure based on a user's command.
The user's command is: "%s"

The current JSON data structure is:
%s

Apply the user's command to this JSON structure and return ONLY the modified, valid JSON object that adheres to the provided schema.
- If you move an item, ensure it is removed from its original location.
- If you create a new item (section or field), assign it a new, unique string ID (e.g., 'section-new-123').
- Preserve existing IDs for items that are not created or deleted.
- Do not add any commentary or explanation in your response.`
)

// documentSchema constrains modification responses to the section/field
// tree shape.
var documentSchema = &schema{
	Type: "ARRAY",
	Items: &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"id":    {Type: "STRING"},
			"title": {Type: "STRING"},
			"fields": {
				Type: "ARRAY",
				Items: &schema{
					Type: "OBJECT",
					Properties: map[string]*schema{
						"id":    {Type: "STRING"},
						"key":   {Type: "STRING"},
						"value": {Type: "STRING"},
					},
					Required: []string{"id", "key", "value"},
				},
			},
		},
		Required: []string{"id", "title", "fields"},
	},
}

// ExtractDocument parses a document image into the section/field tree.
func (c *Client) ExtractDocument(ctx context.Context, image model.Image) (model.Document, error) {
	parts := []part{
		imagePart(image),
		{Text: extractDocumentPrompt},
	}
	resp, err := c.generateContent(
		ctx, c.cfg.VisionModel, parts, &generationConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}
	text, err := textFrom(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}

	var doc model.Document
	if err = json.Unmarshal([]byte(strings.TrimSpace(text)), &doc); err != nil {
		return nil, model.BadDataErr(errors.New("the AI returned an invalid data structure. Please try another image"))
	}
	return doc, nil
}

// ModifyDocument applies a natural-language command to the whole document
// and returns the replacement structure.
func (c *Client) ModifyDocument(ctx context.Context, doc model.Document, command string) (model.Document, error) {
	current, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	parts := []part{
		{Text: fmt.Sprintf(modifyDocumentPromptFormat, command, string(current))},
	}
	resp, err := c.generateContent(
		ctx, c.cfg.ReasoningModel, parts, &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   documentSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to modify document: %w", err)
	}
	text, err := textFrom(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to modify document: %w", err)
	}

	var updated model.Document
	if err = json.Unmarshal([]byte(strings.TrimSpace(text)), &updated); err != nil {
		return nil, model.BadDataErr(errors.New("the AI returned an invalid data structure after modification"))
	}
	return updated, nil
}
