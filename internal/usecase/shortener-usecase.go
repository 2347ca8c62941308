package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	ErrEmptyURL             = errors.New("url is empty")
	ErrInvalidURL           = errors.New("url is not a valid absolute http(s) url")
	ErrAliasTaken           = errors.New("alias is already taken")
	ErrEmptyAliasSuggestion = errors.New("suggested alias is empty after sanitizing")
)

type LinkStorage interface {
	ListLinks(ctx context.Context) ([]model.ShortLink, error)
	SaveLinks(ctx context.Context, links []model.ShortLink) error
}

type AliasSuggester interface {
	SuggestAlias(ctx context.Context, longURL string) (string, error)
}

type ShortenerUsecaseDeps struct {
	Storage   LinkStorage
	Suggester AliasSuggester
	// BaseURL is the short-link host, e.g. "https://z-pq.com".
	BaseURL string
	// CodeLength is the length of generated random codes. Zero means 6.
	CodeLength int
}

// ShortenerUsecase maintains the registry of shortened links. The whole
// list is read and written back on every mutation, mirroring a single
// shared record in the storage.
type ShortenerUsecase struct {
	ShortenerUsecaseDeps
}

func NewShortenerUsecase(deps ShortenerUsecaseDeps) *ShortenerUsecase {
	if deps.CodeLength <= 0 {
		deps.CodeLength = 6
	}
	return &ShortenerUsecase{
		ShortenerUsecaseDeps: deps,
	}
}

// Shorten registers a new link. An empty alias yields a random code; a
// custom alias is lowercased and stripped to [a-z0-9-]. Either way the
// code is checked against the current list before insert, and a collision
// rejects the request with nothing written.
func (s *ShortenerUsecase) Shorten(ctx context.Context, longURL, alias string) (model.ShortLink, error) {
	longURL = strings.TrimSpace(longURL)
	if longURL == "" {
		return model.ShortLink{}, model.ValidationErr(ErrEmptyURL)
	}
	if !isHTTPURL(longURL) {
		return model.ShortLink{}, model.ValidationErr(ErrInvalidURL)
	}

	links, err := s.Storage.ListLinks(ctx)
	if err != nil {
		return model.ShortLink{}, fmt.Errorf("failed to list links: %w", err)
	}

	code := sanitizeAlias(alias)
	if code == "" {
		code = s.randomCode()
	}
	for _, link := range links {
		if link.ShortCode == code {
			return model.ShortLink{}, model.ValidationErr(ErrAliasTaken)
		}
	}

	link := model.ShortLink{
		ID:        uuid.New(),
		LongURL:   longURL,
		ShortCode: code,
		ShortURL:  s.BaseURL + "/" + code,
		CreatedAt: time.Now(),
	}
	updated := append([]model.ShortLink{link}, links...)
	if err := s.Storage.SaveLinks(ctx, updated); err != nil {
		return model.ShortLink{}, fmt.Errorf("failed to save links: %w", err)
	}
	return link, nil
}

// SuggestAlias asks the AI for a short memorable alias for the URL. The
// suggestion is lowercased and stripped to [a-z0-9]; an empty result is
// treated as bad data from the model.
func (s *ShortenerUsecase) SuggestAlias(ctx context.Context, longURL string) (string, error) {
	longURL = strings.TrimSpace(longURL)
	if longURL == "" {
		return "", model.ValidationErr(ErrEmptyURL)
	}
	if !isHTTPURL(longURL) {
		return "", model.ValidationErr(ErrInvalidURL)
	}

	suggestion, err := s.Suggester.SuggestAlias(ctx, longURL)
	if err != nil {
		return "", fmt.Errorf("failed to suggest alias: %w", err)
	}
	cleaned := sanitizeSuggestion(suggestion)
	if cleaned == "" {
		return "", model.BadDataErr(ErrEmptyAliasSuggestion)
	}
	return cleaned, nil
}

// Links returns the registry, newest first.
func (s *ShortenerUsecase) Links(ctx context.Context) ([]model.ShortLink, error) {
	links, err := s.Storage.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

func (s *ShortenerUsecase) randomCode() string {
	code := make([]byte, s.CodeLength)
	for i := range code {
		code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(code)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func sanitizeAlias(alias string) string {
	return keepRunes(strings.ToLower(strings.TrimSpace(alias)), true)
}

func sanitizeSuggestion(s string) string {
	return keepRunes(strings.ToLower(strings.TrimSpace(s)), false)
}

func keepRunes(s string, allowDash bool) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && allowDash:
			b.WriteRune(r)
		}
	}
	return b.String()
}
