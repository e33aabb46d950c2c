package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)
	assert.Equal(t, 0, stats.TotalRatings)
	assert.Equal(t, 0.0, stats.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.Distribution)
}

func TestAggregateMeanAndHistogram(t *testing.T) {
	ratings := []Rating{
		{Rating: 5, IsPublic: true},
		{Rating: 3, IsPublic: true},
		{Rating: 4, IsPublic: true},
	}
	stats := Aggregate(ratings)
	assert.Equal(t, 3, stats.TotalRatings)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.0001)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 1}, stats.Distribution)
}

func TestAggregateSingleRating(t *testing.T) {
	stats := Aggregate([]Rating{{Rating: 1}})
	assert.Equal(t, 1, stats.TotalRatings)
	assert.Equal(t, 1.0, stats.AverageRating)
	assert.Equal(t, 1, stats.Distribution[1])
}

func TestAggregateIgnoresOutOfRangeValues(t *testing.T) {
	stats := Aggregate([]Rating{{Rating: 0}, {Rating: 6}, {Rating: 2}})
	assert.Equal(t, 1, stats.TotalRatings)
	assert.Equal(t, 2.0, stats.AverageRating)
}
