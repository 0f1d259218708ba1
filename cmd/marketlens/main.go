// Command marketlens prints the statistics for one date range.
//
//	marketlens -from 2021-01-01 -to 2021-01-31
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"MarketLens/internal/app"
	"MarketLens/internal/config"
	"MarketLens/internal/logging"
	"MarketLens/internal/notifier"
	"MarketLens/internal/query"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to config file")
	from := flag.String("from", "", "start date (YYYY-MM-DD)")
	to := flag.String("to", "", "end date (YYYY-MM-DD)")
	asJSON := flag.Bool("json", false, "print the report as JSON")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	rng, err := query.ParseRange(*from, *to, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	cache := app.ProvideCache(cfg)
	defer cache.Close()
	col, err := app.ProvideCollector(cfg, cache, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("init collector")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := col.Collect(ctx, rng)
	if err != nil {
		log.Error().Err(err).Msg("collect statistics")
		cancel()
		cache.Close()
		os.Exit(1)
	}

	if *asJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("encode result")
		}
		fmt.Println(string(out))
		return
	}
	fmt.Println(notifier.PlainText(notifier.FormatReport(report)))
}
