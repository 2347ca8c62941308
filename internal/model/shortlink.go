package model

import (
	"time"

	"github.com/google/uuid"
)

// ShortLink is a shortened-URL record. Clicks is modeled but nothing in
// this repository increments it: there is no redirect-serving backend.
type ShortLink struct {
	ID        uuid.UUID
	LongURL   string
	ShortCode string
	ShortURL  string
	CreatedAt time.Time
	Clicks    int
}
