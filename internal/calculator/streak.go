package calculator

import "MarketLens/internal/model"

// LongestDownwardStreak returns the length, in points, of the longest run of
// strictly decreasing consecutive values. Equal values break a run.
func LongestDownwardStreak(daily []model.DailyPoint) int {
	if len(daily) == 0 {
		return 0
	}
	longest, current := 1, 1
	for i := 1; i < len(daily); i++ {
		if daily[i].Value < daily[i-1].Value {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 1
	}
	return longest
}
