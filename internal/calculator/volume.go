package calculator

import "MarketLens/internal/model"

// HighestVolumeDay returns the day with the largest nonzero volume, or nil when
// every volume is zero. The earliest day wins ties.
func HighestVolumeDay(daily []model.DailyPoint) *model.VolumePeak {
	var peak *model.VolumePeak
	for _, d := range daily {
		if d.Value == 0 {
			continue
		}
		if peak == nil || d.Value > peak.Volume {
			peak = &model.VolumePeak{Minute: d.Minute, Volume: d.Value}
		}
	}
	return peak
}
