package in_memory

import (
	"context"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

type LinkStorage struct {
	links []model.ShortLink
}

func NewLinkStorage() *LinkStorage {
	return &LinkStorage{
		links: make([]model.ShortLink, 0),
	}
}

func (s *LinkStorage) ListLinks(_ context.Context) ([]model.ShortLink, error) {
	links := make([]model.ShortLink, len(s.links))
	copy(links, s.links)
	return links, nil
}

func (s *LinkStorage) SaveLinks(_ context.Context, links []model.ShortLink) error {
	s.links = make([]model.ShortLink, len(links))
	copy(s.links, links)
	return nil
}
