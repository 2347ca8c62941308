package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

// The whole list lives under one key and is rewritten on every save,
// matching the demo's single-user read-modify-write semantics. Concurrent
// writers can overwrite each other; that is accepted.
const linksKey = "shortened_urls"

type linkInternal struct {
	ID        string    `json:"id"`
	LongURL   string    `json:"long_url"`
	ShortCode string    `json:"short_code"`
	ShortURL  string    `json:"short_url"`
	CreatedAt time.Time `json:"created_at"`
	Clicks    int       `json:"clicks"`
}

type LinkStorage struct {
	rdb *redis.Client
}

func NewLinkStorage(rdb *redis.Client) *LinkStorage {
	return &LinkStorage{
		rdb: rdb,
	}
}

func (s *LinkStorage) ListLinks(ctx context.Context) ([]model.ShortLink, error) {
	raw, err := s.rdb.Get(ctx, linksKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return make([]model.ShortLink, 0), nil
		}
		return nil, fmt.Errorf("failed to get links %s: %w", linksKey, err)
	}
	var linksInt []linkInternal
	if err = json.Unmarshal([]byte(raw), &linksInt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal links %s: %w", linksKey, err)
	}

	links := make([]model.ShortLink, 0, len(linksInt))
	for _, linkInt := range linksInt {
		id, err := uuid.Parse(linkInt.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse link id %s: %w", linkInt.ID, err)
		}
		links = append(
			links, model.ShortLink{
				ID:        id,
				LongURL:   linkInt.LongURL,
				ShortCode: linkInt.ShortCode,
				ShortURL:  linkInt.ShortURL,
				CreatedAt: linkInt.CreatedAt,
				Clicks:    linkInt.Clicks,
			},
		)
	}
	return links, nil
}

func (s *LinkStorage) SaveLinks(ctx context.Context, links []model.ShortLink) error {
	linksInt := make([]linkInternal, 0, len(links))
	for _, link := range links {
		linksInt = append(
			linksInt, linkInternal{
				ID:        link.ID.String(),
				LongURL:   link.LongURL,
				ShortCode: link.ShortCode,
				ShortURL:  link.ShortURL,
				CreatedAt: link.CreatedAt,
				Clicks:    link.Clicks,
			},
		)
	}
	linksJSON, err := json.Marshal(linksInt)
	if err != nil {
		return fmt.Errorf("failed to marshal links: %w", err)
	}
	if err = s.rdb.Set(ctx, linksKey, linksJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save links %s: %w", linksKey, err)
	}
	return nil
}
