// Package rasterize calls an external rasterization service that renders
// the first page of a multi-page document file as an image.
package rasterize

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

type ServiceRasterizer struct {
	serviceURL string
	client     *http.Client
}

func NewServiceRasterizer(serviceURL string) *ServiceRasterizer {
	if serviceURL == "" {
		serviceURL = "http://localhost:8081"
	}
	return &ServiceRasterizer{
		serviceURL: serviceURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// renderResponse is the rasterization service response format.
type renderResponse struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
	Pages    int    `json:"pages"`
	Error    string `json:"error,omitempty"`
}

// RasterizeFirstPage renders page one of the document as image bytes.
func (r *ServiceRasterizer) RasterizeFirstPage(ctx context.Context, document []byte) (model.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.serviceURL+"/render", bytes.NewReader(document))
	if err != nil {
		return model.Image{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := r.client.Do(req)
	if err != nil {
		return model.Image{}, model.ServiceErr(fmt.Errorf("failed to call rasterization service: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Image{}, model.ServiceErr(fmt.Errorf("failed to read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return model.Image{}, model.ServiceErr(fmt.Errorf("rasterization service returned status %d", resp.StatusCode))
	}

	var result renderResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return model.Image{}, model.BadDataErr(fmt.Errorf("failed to decode response: %w", err))
	}
	if result.Error != "" {
		return model.Image{}, model.ServiceErr(fmt.Errorf("rasterization error: %s", result.Error))
	}

	data, err := base64.StdEncoding.DecodeString(result.Data)
	if err != nil {
		return model.Image{}, model.BadDataErr(fmt.Errorf("failed to decode image data: %w", err))
	}
	return model.Image{MimeType: result.MimeType, Data: data}, nil
}
