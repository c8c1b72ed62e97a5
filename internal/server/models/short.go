package models

import (
	"encoding/json"
	"time"
)

type Short struct {
	ID          int64
	UserID      int64
	VideoID     int64
	Title       string
	Description string
	Status      string
	Metadata    json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
