package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"psx_backend/internal/app/di"
	"psx_backend/internal/platform/config"
)

func main() {
	dateFlag := flag.String("date", "", "target date for the transactions feed (YYYY-MM-DD, default today)")
	portfolioFlag := flag.String("portfolio", "", "restrict the ticker stage to one portfolio's symbols")
	quietFlag := flag.Bool("quiet", false, "suppress progress output")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg := config.Load()

	targetDate := time.Now().Truncate(24 * time.Hour)
	if *dateFlag != "" {
		d, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -date %q, want YYYY-MM-DD\n", *dateFlag)
			os.Exit(2)
		}
		targetDate = d
	}

	c, err := di.NewContainer(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Error("failed to close container", "error", err)
		}
	}()

	progress := func(fraction float64, message string) {
		if *quietFlag {
			return
		}
		fmt.Fprintf(os.Stderr, "[%3.0f%%] %s\n", fraction*100, message)
	}

	sum := c.Orchestrator.Synchronize(context.Background(), targetDate, *portfolioFlag, progress)

	out, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		log.Error("failed to encode summary", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if !sum.MarketWatch.Success && !sum.Tickers.Success && !sum.Transactions.Success {
		os.Exit(1)
	}
}
