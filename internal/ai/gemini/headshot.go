package gemini

import (
	"context"
	"fmt"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

const headshotPromptFormat = "Generate a generic professional headshot of the person in the image. The style should be: %s. The generated person should look like the person in the photo but not be an exact copy. Focus on creating a high-quality, professional-looking photograph suitable for a corporate profile or LinkedIn. Do not include any text, watermarks, or logos in the generated image."

// GenerateHeadshot renders a styled headshot from the uploaded selfie.
func (c *Client) GenerateHeadshot(ctx context.Context, selfie model.Image, stylePrompt string) (model.Image, error) {
	parts := []part{
		imagePart(selfie),
		{Text: fmt.Sprintf(headshotPromptFormat, stylePrompt)},
	}
	resp, err := c.generateContent(
		ctx, c.cfg.ImageModel, parts, &generationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	)
	if err != nil {
		return model.Image{}, fmt.Errorf("failed to generate headshot: %w", err)
	}
	return imageFrom(resp)
}

// EditImage applies a free-form edit prompt to an already generated image.
func (c *Client) EditImage(ctx context.Context, image model.Image, editPrompt string) (model.Image, error) {
	parts := []part{
		imagePart(image),
		{Text: editPrompt},
	}
	resp, err := c.generateContent(
		ctx, c.cfg.ImageModel, parts, &generationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	)
	if err != nil {
		return model.Image{}, fmt.Errorf("failed to edit image: %w", err)
	}
	return imageFrom(resp)
}
