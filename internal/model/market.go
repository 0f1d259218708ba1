package model

import "time"

// MinutesPerDay is the spacing between consecutive daily samples.
const MinutesPerDay = 24 * 60

// RawPoint is a single price or volume observation at minute granularity.
type RawPoint struct {
	Minute int64   `json:"minute"` // minutes since Unix epoch
	Value  float64 `json:"value"`
}

// DailyPoint is the observation chosen to represent one calendar day.
type DailyPoint struct {
	Minute int64   `json:"minute"`
	Value  float64 `json:"value"`
}

// MarketChart holds the two raw series returned by the data source.
type MarketChart struct {
	Prices  []RawPoint `json:"prices"`
	Volumes []RawPoint `json:"volumes"`
}

// ChartQuery identifies one remote market chart request.
type ChartQuery struct {
	Coin     string    `json:"coin"`
	Currency string    `json:"currency"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
}

// DateRange is an inclusive window of day boundaries expressed in epoch minutes.
type DateRange struct {
	StartMinute int64 `json:"start_minute"`
	EndMinute   int64 `json:"end_minute"`
}

// NewDateRange builds a range from two UTC midnights.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		StartMinute: start.Unix() / 60,
		EndMinute:   end.Unix() / 60,
	}
}

// Days returns how many daily samples the range produces.
func (r DateRange) Days() int {
	if r.EndMinute < r.StartMinute {
		return 0
	}
	return int((r.EndMinute-r.StartMinute)/MinutesPerDay) + 1
}

// Start returns the first day of the range.
func (r DateRange) Start() time.Time { return MinuteTime(r.StartMinute) }

// End returns the last day of the range.
func (r DateRange) End() time.Time { return MinuteTime(r.EndMinute) }

// MinuteTime converts epoch minutes to a UTC time.
func MinuteTime(minute int64) time.Time {
	return time.Unix(minute*60, 0).UTC()
}
