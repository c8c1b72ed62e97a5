package models

import (
	"encoding/json"
	"time"
)

type Video struct {
	ID           int64
	UserID       int64
	Title        string
	Description  string
	URL          string
	ThumbnailURL string
	Status       string
	Metadata     json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
