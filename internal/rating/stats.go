package rating

// Stats is the aggregate over a user's public ratings.
type Stats struct {
	AverageRating float64     `json:"average_rating"`
	TotalRatings  int         `json:"total_ratings"`
	Distribution  map[int]int `json:"distribution"`
}

// Aggregate computes count, arithmetic mean and the 1-5 histogram over
// the given ratings. Zero ratings yield a zero mean, not NaN.
func Aggregate(ratings []Rating) Stats {
	stats := Stats{
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	sum := 0
	for _, r := range ratings {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		stats.Distribution[r.Rating]++
		stats.TotalRatings++
		sum += r.Rating
	}
	if stats.TotalRatings > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalRatings)
	}
	return stats
}
