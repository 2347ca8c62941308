package app

import (
	"bufio"
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jleboube/AI-Toolkit/config"
	"github.com/jleboube/AI-Toolkit/internal/catalog"
	"github.com/jleboube/AI-Toolkit/internal/model"
	"github.com/jleboube/AI-Toolkit/internal/usecase"
)

type demoDeps struct {
	cfg       *config.Config
	headshot  *usecase.HeadshotUsecase
	document  *usecase.DocumentUsecase
	tutor     *usecase.TutorUsecase
	shortener *usecase.ShortenerUsecase
	catalog   *catalog.Catalog
}

// runDemo runs the interactive console loop for the configured demo.
func runDemo(ctx context.Context, deps demoDeps) error {
	switch deps.cfg.App.Demo {
	case "headshot":
		return runHeadshotDemo(ctx, deps)
	case "document":
		return runDocumentDemo(ctx, deps)
	case "tutor":
		return runTutorDemo(ctx, deps)
	case "shortener":
		return runShortenerDemo(ctx, deps)
	case "catalog":
		return runCatalogDemo(deps)
	default:
		return fmt.Errorf("unknown demo %q", deps.cfg.App.Demo)
	}
}

func runHeadshotDemo(ctx context.Context, deps demoDeps) error {
	fmt.Println("Headshot demo. Commands: upload <file>, style <id>, edit <prompt>, reset, quit")
	for id := range model.HeadshotStyles {
		fmt.Printf("  style: %s\n", model.HeadshotStyles[id].ID)
	}
	return repl(ctx, func(line string) error {
		cmd, arg := splitCommand(line)
		switch cmd {
		case "upload":
			image, err := readImage(arg)
			if err != nil {
				return err
			}
			if err := deps.headshot.Upload(image); err != nil {
				return err
			}
			if err := deps.headshot.Generate(ctx); err != nil {
				return err
			}
			return saveResult(deps, deps.headshot.GeneratedImage())
		case "style":
			style, ok := model.StyleByID(arg)
			if !ok {
				return fmt.Errorf("unknown style %q", arg)
			}
			if err := deps.headshot.SelectStyle(ctx, style); err != nil {
				return err
			}
			return saveResult(deps, deps.headshot.GeneratedImage())
		case "edit":
			if err := deps.headshot.Edit(ctx, arg); err != nil {
				return err
			}
			return saveResult(deps, deps.headshot.GeneratedImage())
		case "reset":
			deps.headshot.Reset()
			return nil
		default:
			return fmt.Errorf("unknown command %q", cmd)
		}
	})
}

func runDocumentDemo(ctx context.Context, deps demoDeps) error {
	fmt.Println("Document demo. Commands: ingest <file>, say <command>, show, quit")
	return repl(ctx, func(line string) error {
		cmd, arg := splitCommand(line)
		switch cmd {
		case "ingest":
			data, err := os.ReadFile(arg)
			if err != nil {
				return err
			}
			mimeType := mime.TypeByExtension(filepath.Ext(arg))
			if err := deps.document.Ingest(ctx, data, mimeType); err != nil {
				return err
			}
			printMessages(deps.document.Messages())
			return nil
		case "say":
			if err := deps.document.ApplyCommand(ctx, arg); err != nil {
				return err
			}
			printMessages(deps.document.Messages())
			return nil
		case "show":
			for _, section := range deps.document.Document() {
				fmt.Printf("%s\n", section.Title)
				for _, field := range section.Fields {
					fmt.Printf("  %s: %s\n", field.Key, field.Value)
				}
			}
			return nil
		default:
			return fmt.Errorf("unknown command %q", cmd)
		}
	})
}

func runTutorDemo(ctx context.Context, deps demoDeps) error {
	fmt.Println("Tutor demo. Commands: problem <file>, why, next, say <text>, new, quit")
	printMessages(deps.tutor.Messages())
	return repl(ctx, func(line string) error {
		cmd, arg := splitCommand(line)
		var err error
		switch cmd {
		case "problem":
			var image model.Image
			image, err = readImage(arg)
			if err != nil {
				return err
			}
			err = deps.tutor.UploadProblem(ctx, image)
		case "why":
			err = deps.tutor.AskWhy(ctx)
		case "next":
			err = deps.tutor.NextStep(ctx)
		case "say":
			err = deps.tutor.SendMessage(ctx, arg)
		case "new":
			deps.tutor.NewProblem()
		default:
			return fmt.Errorf("unknown command %q", cmd)
		}
		printMessages(deps.tutor.Messages())
		return err
	})
}

func runShortenerDemo(ctx context.Context, deps demoDeps) error {
	fmt.Println("Shortener demo. Commands: shorten <url> [alias], suggest <url>, list, quit")
	return repl(ctx, func(line string) error {
		cmd, arg := splitCommand(line)
		switch cmd {
		case "shorten":
			longURL, alias := splitCommand(arg)
			link, err := deps.shortener.Shorten(ctx, longURL, alias)
			if err != nil {
				return err
			}
			fmt.Printf("%s -> %s\n", link.ShortURL, link.LongURL)
			return nil
		case "suggest":
			alias, err := deps.shortener.SuggestAlias(ctx, arg)
			if err != nil {
				return err
			}
			fmt.Printf("suggested alias: %s\n", alias)
			return nil
		case "list":
			links, err := deps.shortener.Links(ctx)
			if err != nil {
				return err
			}
			for _, link := range links {
				fmt.Printf("%s  %s  %s\n",
					link.CreatedAt.Format(time.DateTime), link.ShortURL, link.LongURL)
			}
			return nil
		default:
			return fmt.Errorf("unknown command %q", cmd)
		}
	})
}

func runCatalogDemo(deps demoDeps) error {
	siteCfg := deps.catalog.Config()
	fmt.Printf("%s\n%s\n\n", siteCfg.Title, siteCfg.Tagline)
	for _, product := range deps.catalog.Products() {
		launchURL := catalog.ProductURL(product, "http:", "localhost")
		fmt.Printf("%s %s\n  %s\n  %s\n", product.Icon, product.Name, product.Description, launchURL)
	}
	return nil
}

func repl(ctx context.Context, handle func(line string) error) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := handle(line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func splitCommand(line string) (string, string) {
	cmd, arg, _ := strings.Cut(line, " ")
	return cmd, strings.TrimSpace(arg)
}

func readImage(path string) (model.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Image{}, err
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "image/png"
	}
	return model.Image{MimeType: mimeType, Data: data}, nil
}

func printMessages(messages []model.ChatMessage) {
	for _, msg := range messages {
		fmt.Printf("[%s] %s\n", msg.Sender, msg.Text)
	}
}

func saveResult(deps demoDeps, image *model.Image) error {
	if image == nil {
		return nil
	}
	ext := ".png"
	if exts, err := mime.ExtensionsByType(image.MimeType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	path := filepath.Join(deps.cfg.App.OutDir, fmt.Sprintf("headshot-%d%s", time.Now().Unix(), ext))
	if err := os.WriteFile(path, image.Data, 0o644); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	fmt.Printf("saved %s\n", path)
	return nil
}
