package calculator

import (
	"math/rand"
	"testing"

	"MarketLens/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = model.MinutesPerDay

// dailySeries builds daily points one day apart from the given values.
func dailySeries(values ...float64) []model.DailyPoint {
	out := make([]model.DailyPoint, len(values))
	for i, v := range values {
		out[i] = model.DailyPoint{Minute: int64(i+1) * day, Value: v}
	}
	return out
}

// hourlySeries builds a raw series with one point per hour starting at start.
func hourlySeries(start int64, hours int, value func(i int) float64) []model.RawPoint {
	out := make([]model.RawPoint, hours)
	for i := 0; i < hours; i++ {
		out[i] = model.RawPoint{Minute: start + int64(i)*60, Value: value(i)}
	}
	return out
}

func TestSampleDaily_PicksClosestToMidnight(t *testing.T) {
	raw := []model.RawPoint{
		{Minute: 0*day + 100, Value: 1},
		{Minute: 1*day - 30, Value: 2},
		{Minute: 1*day + 45, Value: 3},
		{Minute: 2*day - 200, Value: 4},
		{Minute: 2*day + 10, Value: 5},
		{Minute: 3*day + 700, Value: 6},
	}
	got := SampleDaily(raw, model.DateRange{StartMinute: 0, EndMinute: 3 * day})

	require.Len(t, got, 4)
	assert.Equal(t, model.DailyPoint{Minute: 100, Value: 1}, got[0])
	assert.Equal(t, model.DailyPoint{Minute: day - 30, Value: 2}, got[1])
	assert.Equal(t, model.DailyPoint{Minute: 2*day + 10, Value: 5}, got[2])
	assert.Equal(t, model.DailyPoint{Minute: 3*day + 700, Value: 6}, got[3])
}

func TestSampleDaily_TiePrefersLater(t *testing.T) {
	raw := []model.RawPoint{
		{Minute: day - 60, Value: 1},
		{Minute: day + 60, Value: 2},
	}
	got := SampleDaily(raw, model.DateRange{StartMinute: day, EndMinute: day})

	require.Len(t, got, 1)
	assert.Equal(t, 2.0, got[0].Value)
}

func TestSampleDaily_Empty(t *testing.T) {
	assert.Empty(t, SampleDaily(nil, model.DateRange{StartMinute: 0, EndMinute: 5 * day}))
	assert.Empty(t, SampleDaily([]model.RawPoint{}, model.DateRange{StartMinute: 0, EndMinute: 0}))
}

func TestSampleDaily_SparseSourceRepeatsPoint(t *testing.T) {
	raw := []model.RawPoint{{Minute: 10 * day, Value: 42}}
	got := SampleDaily(raw, model.DateRange{StartMinute: 0, EndMinute: 2 * day})

	require.Len(t, got, 3)
	for _, p := range got {
		assert.Equal(t, model.DailyPoint{Minute: 10 * day, Value: 42}, p)
	}
}

func TestSampleDaily_LengthAndOptimality(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		var raw []model.RawPoint
		minute := int64(rnd.Intn(500))
		for i := 0; i < 20+rnd.Intn(200); i++ {
			minute += int64(1 + rnd.Intn(900))
			raw = append(raw, model.RawPoint{Minute: minute, Value: rnd.Float64()})
		}
		rng := model.DateRange{StartMinute: 0, EndMinute: int64(rnd.Intn(20)) * day}

		got := SampleDaily(raw, rng)

		require.Len(t, got, int(rng.EndMinute/day)+1)
		for i, p := range got {
			target := rng.StartMinute + int64(i)*day
			best := distance(raw[0].Minute, target)
			for _, r := range raw {
				if d := distance(r.Minute, target); d < best {
					best = d
				}
			}
			assert.Equal(t, best, distance(p.Minute, target), "day %d", i)
		}
	}
}

func TestSampleDaily_Idempotent(t *testing.T) {
	raw := hourlySeries(0, 24*10, func(i int) float64 { return float64(i % 17) })
	rng := model.DateRange{StartMinute: day, EndMinute: 8 * day}

	first := SampleDaily(raw, rng)
	resampled := make([]model.RawPoint, len(first))
	for i, p := range first {
		resampled[i] = model.RawPoint{Minute: p.Minute, Value: p.Value}
	}
	second := SampleDaily(resampled, rng)

	assert.Equal(t, first, second)
}

func TestLongestDownwardStreak(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   int
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 1},
		{"mixed", []float64{5, 4, 3, 6, 2, 1}, 3},
		{"tie breaks run", []float64{5, 4, 4, 3}, 2},
		{"strictly decreasing", []float64{9, 8, 7, 6, 5}, 5},
		{"non decreasing", []float64{1, 1, 2, 3, 3}, 1},
		{"run at start", []float64{10, 9, 8, 7, 8, 7}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LongestDownwardStreak(dailySeries(tt.values...)))
		})
	}
}

func TestHighestVolumeDay(t *testing.T) {
	t.Run("ignores zero", func(t *testing.T) {
		got := HighestVolumeDay(dailySeries(0, 0, 7))
		require.NotNil(t, got)
		assert.Equal(t, model.VolumePeak{Minute: 3 * day, Volume: 7}, *got)
	})
	t.Run("all zero", func(t *testing.T) {
		assert.Nil(t, HighestVolumeDay(dailySeries(0)))
	})
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, HighestVolumeDay(nil))
	})
	t.Run("first occurrence wins", func(t *testing.T) {
		got := HighestVolumeDay(dailySeries(5, 5))
		require.NotNil(t, got)
		assert.Equal(t, int64(day), got.Minute)
	})
	t.Run("max after zeros and smaller values", func(t *testing.T) {
		got := HighestVolumeDay(dailySeries(3, 0, 9, 1, 9, 2))
		require.NotNil(t, got)
		assert.Equal(t, model.VolumePeak{Minute: 3 * day, Volume: 9}, *got)
	})
}

func TestBestProfitWindow(t *testing.T) {
	finders := map[string]func([]model.DailyPoint) *model.ProfitWindow{
		"quadratic": BestProfitWindow,
		"linear":    BestProfitWindowLinear,
	}
	for name, find := range finders {
		t.Run(name, func(t *testing.T) {
			got := find(dailySeries(10, 7, 12, 5, 15))
			require.NotNil(t, got)
			assert.Equal(t, int64(4*day), got.BuyMinute)
			assert.Equal(t, int64(5*day), got.SellMinute)
			assert.Equal(t, 10.0, got.Profit)
			assert.Equal(t, 5.0, got.BuyPrice)
			assert.Equal(t, 15.0, got.SellPrice)

			assert.Nil(t, find(dailySeries(9, 8, 7, 3)), "strictly decreasing")
			assert.Nil(t, find(dailySeries(4, 4, 4)), "flat")
			assert.Nil(t, find(dailySeries(4)), "single point")
			assert.Nil(t, find(nil), "empty")

			// (1,2) and (3,4) both gain 4; the earlier pair is kept.
			tie := find(dailySeries(1, 5, 0, 4))
			require.NotNil(t, tie)
			assert.Equal(t, int64(day), tie.BuyMinute)
			assert.Equal(t, int64(2*day), tie.SellMinute)

			// Equal minimum twice before the peak: the first minimum is the buy day.
			dup := find(dailySeries(2, 2, 6))
			require.NotNil(t, dup)
			assert.Equal(t, int64(day), dup.BuyMinute)
			assert.Equal(t, int64(3*day), dup.SellMinute)
		})
	}
}

func TestBestProfitWindowLinear_MatchesQuadratic(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for iter := 0; iter < 500; iter++ {
		values := make([]float64, rnd.Intn(30))
		for i := range values {
			// Small integer range forces plenty of ties.
			values[i] = float64(rnd.Intn(6))
		}
		daily := dailySeries(values...)
		assert.Equal(t, BestProfitWindow(daily), BestProfitWindowLinear(daily), "values %v", values)
	}
}
