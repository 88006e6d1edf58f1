package services

import (
	"math"
	"net/mail"
	"strconv"
	"strings"

	"ecoleta/internal/models"

	"github.com/paulmach/orb"
)

// worldBound is the valid coordinate range, lon on X and lat on Y.
var worldBound = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// ParseItemFilter reads a comma-separated list of item ids for searching.
// Tokens that are not integers are dropped, so a malformed token narrows the
// filter instead of failing the request. Duplicates are removed.
func ParseItemFilter(csv string) []int64 {
	ids := make([]int64, 0)
	seen := make(map[int64]bool)

	for _, token := range strings.Split(csv, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// ParseItemIDs is the strict form used when registering a point: every token
// must be a positive integer and at least one is required. Duplicates are
// collapsed, keeping first-seen order.
func ParseItemIDs(csv string) ([]int64, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, invalid("items", "at least one item is required")
	}

	ids := make([]int64, 0)
	seen := make(map[int64]bool)

	for _, token := range strings.Split(csv, ",") {
		token = strings.TrimSpace(token)
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil || id <= 0 {
			return nil, invalid("items", "%q is not a valid item id", token)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// CreatePointInput carries the raw form fields of a point registration.
type CreatePointInput struct {
	Name      string
	Email     string
	Whatsapp  string
	Latitude  string
	Longitude string
	City      string
	State     string
	Items     string
}

// parse validates the input and returns the point to insert (without image)
// and its item ids.
func (in CreatePointInput) parse() (*models.Point, []int64, error) {
	required := []struct {
		field string
		value string
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"whatsapp", in.Whatsapp},
		{"city", in.City},
		{"state", in.State},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, nil, invalid(r.field, "is required")
		}
	}

	email := strings.TrimSpace(in.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, nil, invalid("email", "%q is not a valid address", email)
	}

	lat, err := parseCoordinate("latitude", in.Latitude)
	if err != nil {
		return nil, nil, err
	}
	lon, err := parseCoordinate("longitude", in.Longitude)
	if err != nil {
		return nil, nil, err
	}
	if !worldBound.Contains(orb.Point{lon, lat}) {
		return nil, nil, invalid("latitude", "coordinates %v,%v are out of range", lat, lon)
	}

	itemIDs, err := ParseItemIDs(in.Items)
	if err != nil {
		return nil, nil, err
	}

	return &models.Point{
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Whatsapp:  strings.TrimSpace(in.Whatsapp),
		Latitude:  lat,
		Longitude: lon,
		City:      strings.TrimSpace(in.City),
		State:     strings.TrimSpace(in.State),
	}, itemIDs, nil
}

func parseCoordinate(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid(field, "is required")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid(field, "%q is not a number", raw)
	}
	return v, nil
}
