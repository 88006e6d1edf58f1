package models

import (
	"github.com/uptrace/bun"
)

// Item is a recyclable-material category. Items are seeded reference data.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID    int64  `bun:"id,pk,autoincrement" json:"id"`
	Title string `bun:"title,notnull" json:"title"`
	Image string `bun:"image,notnull" json:"image"`
}

type ItemTitle struct {
	Title string `bun:"title" json:"title"`
}

type ItemView struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}
