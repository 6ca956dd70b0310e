// Package ui holds the client-side view logic of the recipe browser: pages,
// overlays and the derived values they display. It drives the API through
// internal/client and never renders anything itself.
package ui

import (
	"math"
	"strconv"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// AverageRating is the count-weighted mean of a rating histogram. ok is false
// when the histogram holds no ratings.
func AverageRating(buckets []model.RatingBucket) (avg float64, ok bool) {
	var sum float64
	var total int64
	for _, b := range buckets {
		sum += float64(b.Rating) * float64(b.Count)
		total += b.Count
	}
	if total == 0 {
		return 0, false
	}
	return sum / float64(total), true
}

// FormatRating renders an average with one decimal, or "n/a" when absent.
// Halves round up, so 4.25 renders as 4.3.
func FormatRating(avg float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return strconv.FormatFloat(math.Floor(avg*10+0.5)/10, 'f', 1, 64)
}
