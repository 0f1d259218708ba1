package calculator

import "MarketLens/internal/model"

// SampleDaily reduces a raw series to one point per day of rng, picking the raw
// point closest to each day's midnight. raw must be sorted by minute.
//
// The cursor into raw only moves forward, so the whole pass is linear in
// len(raw) plus the number of days. When two raw points are equally close the
// later one wins. Sparse input can yield the same raw point for several days.
func SampleDaily(raw []model.RawPoint, rng model.DateRange) []model.DailyPoint {
	if len(raw) == 0 || rng.EndMinute < rng.StartMinute {
		return nil
	}

	daily := make([]model.DailyPoint, 0, rng.Days())
	closest := 0
	for day := rng.StartMinute; day <= rng.EndMinute; day += model.MinutesPerDay {
		for j := closest + 1; j < len(raw); j++ {
			if distance(raw[j].Minute, day) > distance(raw[closest].Minute, day) {
				break
			}
			closest = j
		}
		daily = append(daily, model.DailyPoint{
			Minute: raw[closest].Minute,
			Value:  raw[closest].Value,
		})
	}
	return daily
}

func distance(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
