package model

// VolumePeak is the day with the highest nonzero traded volume.
type VolumePeak struct {
	Minute int64   `json:"minute"`
	Volume float64 `json:"volume"`
}

// ProfitWindow is the buy/sell pair with the largest positive price gain.
type ProfitWindow struct {
	BuyMinute  int64   `json:"buy_minute"`
	SellMinute int64   `json:"sell_minute"`
	BuyPrice   float64 `json:"buy_price"`
	SellPrice  float64 `json:"sell_price"`
	Profit     float64 `json:"profit"`
}

// StatisticsResult is the combined output for one date range.
// Nil pointers mean no qualifying value exists.
type StatisticsResult struct {
	LongestDownwardStreak int           `json:"longest_downward_streak"`
	PeakVolume            *VolumePeak   `json:"peak_volume,omitempty"`
	ProfitWindow          *ProfitWindow `json:"profit_window,omitempty"`
	PriceDays             int           `json:"price_days"`
	VolumeDays            int           `json:"volume_days"`
}

// Report is the outcome of one statistics query, handed to presentation.
type Report struct {
	Coin     string           `json:"coin"`
	Currency string           `json:"currency"`
	Range    DateRange        `json:"range"`
	Result   StatisticsResult `json:"result"`
	Source   string           `json:"source"`
	Cached   bool             `json:"cached"`
}
