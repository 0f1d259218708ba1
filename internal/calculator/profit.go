package calculator

import "MarketLens/internal/model"

// BestProfitWindow finds the buy day and later sell day with the largest price
// gain by comparing every ordered pair. The first pair found with the maximum
// gain is kept, scanning buy days ascending and then sell days ascending.
// Returns nil for fewer than two points or when no pair gains.
func BestProfitWindow(daily []model.DailyPoint) *model.ProfitWindow {
	if len(daily) < 2 {
		return nil
	}

	buy, sell := 0, 1
	best := daily[1].Value - daily[0].Value
	for i := 0; i < len(daily); i++ {
		for j := i + 1; j < len(daily); j++ {
			if diff := daily[j].Value - daily[i].Value; diff > best {
				best = diff
				buy, sell = i, j
			}
		}
	}
	if best <= 0 {
		return nil
	}
	return newProfitWindow(daily, buy, sell)
}

// BestProfitWindowLinear returns the same window as BestProfitWindow in a
// single pass. It tracks the earliest index of the running minimum and only
// replaces the best pair on a strictly larger gain, which yields the smallest
// sell index among maximal pairs and, for it, the smallest buy index.
func BestProfitWindowLinear(daily []model.DailyPoint) *model.ProfitWindow {
	if len(daily) < 2 {
		return nil
	}

	minIdx := 0
	buy, sell := 0, 1
	best := daily[1].Value - daily[0].Value
	for j := 1; j < len(daily); j++ {
		if diff := daily[j].Value - daily[minIdx].Value; diff > best {
			best = diff
			buy, sell = minIdx, j
		}
		if daily[j].Value < daily[minIdx].Value {
			minIdx = j
		}
	}
	if best <= 0 {
		return nil
	}
	return newProfitWindow(daily, buy, sell)
}

func newProfitWindow(daily []model.DailyPoint, buy, sell int) *model.ProfitWindow {
	return &model.ProfitWindow{
		BuyMinute:  daily[buy].Minute,
		SellMinute: daily[sell].Minute,
		BuyPrice:   daily[buy].Value,
		SellPrice:  daily[sell].Value,
		Profit:     daily[sell].Value - daily[buy].Value,
	}
}
