// Package query turns user supplied dates into a model.DateRange, enforcing
// the limits of the data source before any fetching happens.
package query

import (
	"errors"
	"fmt"
	"time"

	"MarketLens/internal/model"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the accepted input format for dates.
const DateLayout = "2006-01-02"

// ErrInvalidRange is returned for any rejected date range.
var ErrInvalidRange = errors.New("invalid date range")

// EarliestDate is the first day with market data at the source.
var EarliestDate = time.Date(2013, time.April, 28, 0, 0, 0, 0, time.UTC)

// Form is the raw start/end input.
type Form struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

var validate = validator.New()

// ParseRange validates a start and end date (UTC days) and returns the range.
// The start must not precede EarliestDate, the end must not be after today and
// must be at least one day after the start.
func ParseRange(start, end string, now time.Time) (model.DateRange, error) {
	form := Form{Start: start, End: end}
	if err := validate.Struct(form); err != nil {
		return model.DateRange{}, fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalidRange)
	}

	from, err := time.Parse(DateLayout, form.Start)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	to, err := time.Parse(DateLayout, form.End)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
	}

	today := truncateDay(now)
	switch {
	case from.Before(EarliestDate):
		return model.DateRange{}, fmt.Errorf("%w: start must be on or after %s", ErrInvalidRange, EarliestDate.Format(DateLayout))
	case to.After(today):
		return model.DateRange{}, fmt.Errorf("%w: end must not be after %s", ErrInvalidRange, today.Format(DateLayout))
	case !to.After(from):
		return model.DateRange{}, fmt.Errorf("%w: end must be after start", ErrInvalidRange)
	}
	return model.NewDateRange(from, to), nil
}

// TrailingRange returns the range of the last days daily samples ending today.
func TrailingRange(days int, now time.Time) model.DateRange {
	if days < 1 {
		days = 1
	}
	end := truncateDay(now)
	start := end.AddDate(0, 0, -(days - 1))
	return model.NewDateRange(start, end)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
