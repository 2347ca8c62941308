package app

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc"

	"github.com/jleboube/AI-Toolkit/config"
	"github.com/jleboube/AI-Toolkit/internal/ai/gemini"
	"github.com/jleboube/AI-Toolkit/internal/ai/openai"
	"github.com/jleboube/AI-Toolkit/internal/catalog"
	"github.com/jleboube/AI-Toolkit/internal/rasterize"
	key_value "github.com/jleboube/AI-Toolkit/internal/storage/key-value"
	"github.com/jleboube/AI-Toolkit/internal/usecase"
	"github.com/jleboube/AI-Toolkit/pkg/aitools"
)

func Run(cfg *config.Config) error {
	geminiClient := gemini.NewClient(cfg.Gemini)

	var (
		tutorProvider  usecase.TutorProvider  = geminiClient
		aliasSuggester usecase.AliasSuggester = geminiClient
	)
	if cfg.AI.TextProvider == "openai" {
		baseURL, err := url.JoinPath(cfg.OpenAI.OpenAIBaseURL, "/v1")
		if err != nil {
			return err
		}
		cfg.OpenAI.OpenAIBaseURL = baseURL
		openAIClient := openai.NewClient(cfg.OpenAI)
		tutorProvider = openAIClient
		aliasSuggester = openAIClient
	}

	rdb := redis.NewClient(
		&redis.Options{
			Addr: cfg.Redis.Endpoint,
		},
	)

	linkStorage := key_value.NewLinkStorage(rdb)

	headshotUsecase := usecase.NewHeadshotUsecase(
		usecase.HeadshotUsecaseDeps{
			Generator: geminiClient,
		},
	)

	documentUsecase := usecase.NewDocumentUsecase(
		usecase.DocumentUsecaseDeps{
			Extractor:  geminiClient,
			Rasterizer: rasterize.NewServiceRasterizer(cfg.Rasterizer.Endpoint),
		},
	)

	tutorUsecase := usecase.NewTutorUsecase(
		usecase.TutorUsecaseDeps{
			Provider:    tutorProvider,
			CountTokens: aitools.CountTokens,
			TokenBudget: cfg.AI.HistoryTokenBudget,
		},
	)

	shortenerUsecase := usecase.NewShortenerUsecase(
		usecase.ShortenerUsecaseDeps{
			Storage:    linkStorage,
			Suggester:  aliasSuggester,
			BaseURL:    cfg.Shortener.BaseURL,
			CodeLength: cfg.Shortener.CodeLength,
		},
	)

	productCatalog, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg conc.WaitGroup
	defer wg.Wait()

	if cfg.Catalog.Watch {
		wg.Go(func() {
			if err := productCatalog.Watch(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "catalog watch stopped: %v\n", err)
			}
		})
	}

	demos := demoDeps{
		cfg:       cfg,
		headshot:  headshotUsecase,
		document:  documentUsecase,
		tutor:     tutorUsecase,
		shortener: shortenerUsecase,
		catalog:   productCatalog,
	}
	return runDemo(ctx, demos)
}
