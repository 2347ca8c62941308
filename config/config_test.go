package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gemini.APIKey != "test-key" {
		t.Errorf("api key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.ImageModel != "gemini-2.5-flash-image" {
		t.Errorf("image model = %q", cfg.Gemini.ImageModel)
	}
	if cfg.AI.TextProvider != "gemini" {
		t.Errorf("text provider = %q", cfg.AI.TextProvider)
	}
	if cfg.AI.HistoryTokenBudget != 3500 {
		t.Errorf("history token budget = %d", cfg.AI.HistoryTokenBudget)
	}
	if cfg.Shortener.BaseURL != "https://z-pq.com" || cfg.Shortener.CodeLength != 6 {
		t.Errorf("shortener = %+v", cfg.Shortener)
	}
	if cfg.Redis.Endpoint != "localhost:6379" {
		t.Errorf("redis endpoint = %q", cfg.Redis.Endpoint)
	}
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
gemini:
  vision_model: custom-vision
shortener:
  base_url: https://sho.rt
ai:
  text_provider: openai
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gemini.VisionModel != "custom-vision" {
		t.Errorf("vision model = %q", cfg.Gemini.VisionModel)
	}
	if cfg.Shortener.BaseURL != "https://sho.rt" {
		t.Errorf("base url = %q", cfg.Shortener.BaseURL)
	}
	if cfg.AI.TextProvider != "openai" {
		t.Errorf("text provider = %q", cfg.AI.TextProvider)
	}
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected error for missing required key")
	}
}
