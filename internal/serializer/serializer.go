// Package serializer shapes stored rows into their client-facing form.
package serializer

import (
	"strings"

	"ecoleta/internal/models"
)

// Serializer derives public asset URLs from stored filenames.
type Serializer struct {
	baseURL string
}

// New returns a serializer that resolves assets under publicBaseURL.
func New(publicBaseURL string) *Serializer {
	return &Serializer{baseURL: strings.TrimRight(publicBaseURL, "/")}
}

// AssetURL returns <base>/uploads/<filename>.
func (s *Serializer) AssetURL(filename string) string {
	return s.baseURL + "/uploads/" + filename
}

func (s *Serializer) Point(p models.Point) models.PointView {
	return models.PointView{Point: p, ImageURL: s.AssetURL(p.Image)}
}

// Points never returns nil so an empty result encodes as [].
func (s *Serializer) Points(points []models.Point) []models.PointView {
	views := make([]models.PointView, 0, len(points))
	for _, p := range points {
		views = append(views, s.Point(p))
	}
	return views
}

func (s *Serializer) Item(i models.Item) models.ItemView {
	return models.ItemView{ID: i.ID, Title: i.Title, ImageURL: s.AssetURL(i.Image)}
}

func (s *Serializer) Items(items []models.Item) []models.ItemView {
	views := make([]models.ItemView, 0, len(items))
	for _, i := range items {
		views = append(views, s.Item(i))
	}
	return views
}
