package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/jleboube/AI-Toolkit/config"
	"github.com/jleboube/AI-Toolkit/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v\n", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("app stopped: %v", err)
	}
}
