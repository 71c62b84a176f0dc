package services

import (
	"encoding/json"
	"fmt"
	"math"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// ratingsKey is the collection name ratings are persisted under. The version
// suffix leaves room for a future layout change without migrating in place.
const ratingsKey = "ratings:v1"

// RatingService handles a profile's local product ratings. Each product maps
// to a running mean and a submission count; individual submissions are not
// retained and cannot be revised. Repeat submissions for the same product all
// count.
type RatingService struct {
	store repositories.RecordStore
}

// NewRatingService creates a new RatingService.
func NewRatingService(store repositories.RecordStore) *RatingService {
	return &RatingService{
		store: store,
	}
}

func (s *RatingService) entries(profile string) map[string]models.RatingEntry {
	raw, err := s.store.Read(profile, ratingsKey)
	if err != nil || len(raw) == 0 {
		return map[string]models.RatingEntry{}
	}
	var entries map[string]models.RatingEntry
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		return map[string]models.RatingEntry{}
	}
	return entries
}

func (s *RatingService) write(profile string, entries map[string]models.RatingEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize ratings: %w", err)
	}
	if err := s.store.Write(profile, ratingsKey, data); err != nil {
		return fmt.Errorf("failed to persist ratings: %w", err)
	}
	return nil
}

// GetRating returns the entry for a product, or a zero entry when the product
// has never been rated.
func (s *RatingService) GetRating(profile, id string) models.RatingEntry {
	entry, ok := s.entries(profile)[id]
	if !ok {
		return models.RatingEntry{}
	}
	return entry
}

// SubmitRating folds one star value into the product's running mean and
// returns the updated entry. Stars clamp to the integer range [1,5]; the
// stored average is rounded to two decimal places.
func (s *RatingService) SubmitRating(profile, id string, stars int) (models.RatingEntry, error) {
	if stars < 1 {
		stars = 1
	} else if stars > 5 {
		stars = 5
	}

	entries := s.entries(profile)
	prev := entries[id]
	next := models.RatingEntry{
		Count: prev.Count + 1,
	}
	avg := (prev.Average*float64(prev.Count) + float64(stars)) / float64(next.Count)
	next.Average = math.Round(avg*100) / 100
	entries[id] = next

	if err := s.write(profile, entries); err != nil {
		return models.RatingEntry{}, err
	}
	return next, nil
}
