package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"modesdk/internal/config"
	"modesdk/internal/httpx"
	"modesdk/modeapi"
)

func main() {
	var configPath string
	var quotesCSV string
	var histSymbol string
	var start string
	var end string
	var interval string
	var assetSymbol string

	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to modectl.yaml (optional)")
	flag.StringVar(&quotesCSV, "quotes", "", "comma-separated symbols to quote")
	flag.StringVar(&histSymbol, "historical", "", "symbol to fetch historical bars for")
	flag.StringVar(&start, "start", "", "historical start date (YYYY-MM-DD)")
	flag.StringVar(&end, "end", "", "historical end date (YYYY-MM-DD)")
	flag.StringVar(&interval, "interval", "daily", "historical interval (e.g., daily, 1min)")
	flag.StringVar(&assetSymbol, "asset", "", "symbol to fetch reference data for")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	httpClient := httpx.New(time.Duration(cfg.TimeoutSec) * time.Second)
	httpClient.Logger = logger

	client, err := modeapi.New(cfg.API.Email, cfg.API.Password,
		modeapi.WithBaseURL(cfg.API.BaseURL),
		modeapi.WithHTTPClient(httpClient),
		modeapi.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("client setup")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSec)*time.Second)
	defer cancel()

	switch {
	case quotesCSV != "":
		book, err := client.GetQuotes(ctx, splitCSV(quotesCSV))
		if err != nil {
			logger.Fatal().Err(err).Msg("quotes")
		}
		printJSON(book)

	case histSymbol != "":
		startT, err := time.Parse("2006-01-02", start)
		if err != nil {
			logger.Fatal().Err(err).Msg("bad -start")
		}
		endT, err := time.Parse("2006-01-02", end)
		if err != nil {
			logger.Fatal().Err(err).Msg("bad -end")
		}
		series, err := client.GetHistorical(ctx, histSymbol, startT, endT, interval)
		if err != nil {
			logger.Fatal().Err(err).Msg("historical")
		}
		printJSON(series)

	case assetSymbol != "":
		asset, err := client.GetAsset(ctx, assetSymbol)
		if err != nil {
			logger.Fatal().Err(err).Msg("asset")
		}
		printJSON(asset)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
