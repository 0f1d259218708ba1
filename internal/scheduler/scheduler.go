package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"MarketLens/internal/collector"
	"MarketLens/internal/notifier"
	"MarketLens/internal/query"
	"MarketLens/internal/store"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sender delivers formatted messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron tasks and answers bot commands.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	Notifier   Sender
	Cache      store.ChartCache
	ReportDays int
	Ctx        context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, sender Sender, cache store.ChartCache, reportDays int) *Scheduler {
	if cache == nil {
		cache = store.NewNoopCache()
	}
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Collector:  col,
		Notifier:   sender,
		Cache:      cache,
		ReportDays: reportDays,
		Ctx:        ctx,
		now:        time.Now,
	}
}

// RegisterAll registers the daily report and the hourly cache prune.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyReport); err != nil {
		return fmt.Errorf("register daily report: %w", err)
	}
	if _, err := s.Cron.AddFunc("0 30 * * * *", s.pruneCache); err != nil {
		return fmt.Errorf("register cache prune: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunReportNow executes the daily report immediately.
func (s *Scheduler) RunReportNow() {
	s.dailyReport()
}

func (s *Scheduler) dailyReport() {
	log.Info().Int("days", s.ReportDays).Msg("running daily report")
	s.trySend(s.trailingReport(s.Ctx))
}

func (s *Scheduler) trailingReport(ctx context.Context) string {
	rng := query.TrailingRange(s.ReportDays, s.now())
	report, err := s.Collector.Collect(ctx, rng)
	if err != nil {
		log.Error().Err(err).Msg("daily report collect failed")
		return fetchFailed(err)
	}
	return notifier.FormatReport(report)
}

func (s *Scheduler) pruneCache() {
	n, err := s.Cache.Prune(s.Ctx)
	if err != nil {
		log.Error().Err(err).Msg("prune chart cache failed")
		return
	}
	if n > 0 {
		log.Info().Int64("removed", n).Msg("chart cache pruned")
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	name := fields[0]
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}

	switch name {
	case "/stats":
		if len(fields) != 3 {
			return "Usage: /stats YYYY-MM-DD YYYY-MM-DD"
		}
		return s.rangeReport(ctx, fields[1], fields[2])
	case "/report":
		return s.trailingReport(ctx)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) rangeReport(ctx context.Context, start, end string) string {
	rng, err := query.ParseRange(start, end, s.now())
	if errors.Is(err, query.ErrInvalidRange) {
		return "⚠️ " + html.EscapeString(err.Error())
	}
	if err != nil {
		return "❌ " + html.EscapeString(err.Error())
	}
	report, err := s.Collector.Collect(ctx, rng)
	if err != nil {
		log.Error().Err(err).Str("start", start).Str("end", end).Msg("range report collect failed")
		return fetchFailed(err)
	}
	return notifier.FormatReport(report)
}

// fetchFailed renders a collect error for an HTML reply. Upstream errors can
// carry raw response bodies.
func fetchFailed(err error) string {
	return "❌ Fetching market data failed: " + html.EscapeString(err.Error())
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification failed")
	}
}
