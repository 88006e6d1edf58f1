package models

import (
	"github.com/uptrace/bun"
)

// Point is a registered waste-collection location.
type Point struct {
	bun.BaseModel `bun:"table:points,alias:p"`

	ID        int64   `bun:"id,pk,autoincrement" json:"id"`
	Image     string  `bun:"image,notnull" json:"image"`
	Name      string  `bun:"name,notnull" json:"name"`
	Email     string  `bun:"email,notnull" json:"email"`
	Whatsapp  string  `bun:"whatsapp,notnull" json:"whatsapp"`
	Latitude  float64 `bun:"latitude,notnull" json:"latitude"`
	Longitude float64 `bun:"longitude,notnull" json:"longitude"`
	City      string  `bun:"city,notnull" json:"city"`
	State     string  `bun:"state,notnull" json:"state"`
}

// PointItem links a point to an item it accepts.
type PointItem struct {
	bun.BaseModel `bun:"table:point_items,alias:pi"`

	PointID int64 `bun:"point_id,pk" json:"point_id"`
	ItemID  int64 `bun:"item_id,pk" json:"item_id"`
}

// PointFilter restricts a point listing. All three conditions must hold;
// a point matches the item set if it accepts at least one of ItemIDs.
type PointFilter struct {
	City    string
	State   string
	ItemIDs []int64
}

// PointView is the client-facing shape of a point.
type PointView struct {
	Point
	ImageURL string `json:"image_url"`
}

// PointDetail is returned when a single point is requested.
type PointDetail struct {
	Point PointView   `json:"point"`
	Items []ItemTitle `json:"items"`
}
