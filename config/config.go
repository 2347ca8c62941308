package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Gemini struct {
	APIKey         string  `env:"GEMINI_API_KEY" env-required:"true"`
	BaseURL        string  `yaml:"base_url" env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	VisionModel    string  `yaml:"vision_model" env:"GEMINI_VISION_MODEL" env-default:"gemini-2.5-flash"`
	ReasoningModel string  `yaml:"reasoning_model" env:"GEMINI_REASONING_MODEL" env-default:"gemini-2.5-pro"`
	ImageModel     string  `yaml:"image_model" env:"GEMINI_IMAGE_MODEL" env-default:"gemini-2.5-flash-image"`
	ThinkingBudget int     `yaml:"thinking_budget" env-default:"32768"`
	Temperature    float32 `yaml:"model_temperature" env:"MODEL_TEMPERATURE"`
}

type OpenAI struct {
	OpenAIAPIKey     string  `env:"OPENAI_API_KEY"`
	OpenAIModel      string  `yaml:"openai_model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIBaseURL    string  `yaml:"open_ai_base_url" env:"OPENAI_BASE_URL"`
	ModelTemperature float32 `yaml:"openai_model_temperature" env:"OPENAI_MODEL_TEMPERATURE"`
}

type AI struct {
	// TextProvider selects the backend for the text-only operations
	// (tutor dialogue, alias suggestion): "gemini" or "openai".
	// Image operations always go through Gemini.
	TextProvider       string `yaml:"text_provider" env:"AI_TEXT_PROVIDER" env-default:"gemini"`
	HistoryTokenBudget int    `yaml:"history_token_budget" env-default:"3500"`
}

type Redis struct {
	Endpoint string `yaml:"endpoint" env:"REDIS_ENDPOINT" env-default:"localhost:6379"`
}

type Shortener struct {
	BaseURL    string `yaml:"base_url" env:"SHORTENER_BASE_URL" env-default:"https://z-pq.com"`
	CodeLength int    `yaml:"code_length" env-default:"6"`
}

type Rasterizer struct {
	Endpoint string `yaml:"endpoint" env:"RASTERIZER_ENDPOINT" env-default:"http://localhost:8081"`
}

type Catalog struct {
	Path  string `yaml:"path" env:"CATALOG_PATH" env-default:"products.json"`
	Watch bool   `yaml:"watch" env:"CATALOG_WATCH"`
}

type App struct {
	// Demo selects which demo the interactive loop runs:
	// headshot, document, tutor, shortener or catalog.
	Demo   string `yaml:"demo" env:"APP_DEMO" env-default:"tutor"`
	OutDir string `yaml:"out_dir" env:"APP_OUT_DIR" env-default:"."`
}

type Config struct {
	Gemini     Gemini     `yaml:"gemini"`
	OpenAI     OpenAI     `yaml:"openai"`
	AI         AI         `yaml:"ai"`
	Redis      Redis      `yaml:"redis"`
	Shortener  Shortener  `yaml:"shortener"`
	Rasterizer Rasterizer `yaml:"rasterizer"`
	Catalog    Catalog    `yaml:"catalog"`
	App        App        `yaml:"app"`
}

func LoadConfig(cfgPath string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(cfgPath); err == nil {
		if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
			return nil, err
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
