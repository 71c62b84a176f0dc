package models

// RatingEntry is the running-mean star rating for one product. The average is
// recomputed incrementally from the count and the prior average, so individual
// submissions are never retained.
type RatingEntry struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
