package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"triplecrown-scraper/chart"
	"triplecrown-scraper/config"
	"triplecrown-scraper/fetcher"
	"triplecrown-scraper/pipeline"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to configuration file (optional)")
	flag.Parse()

	// The default path may be absent; an explicitly named file may not
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	cfg, err := config.LoadConfig(*configPath, !explicit)
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f, err := fetcher.New(cfg)
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	p := pipeline.New(cfg, f, os.Stdout)

	res, err := p.Run(ctx)
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	if err := p.Plot(res.Records); err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	if cfg.Chart.Open {
		if err := chart.Open(ctx, cfg.Chart.File); err != nil {
			log.Printf("Warning: Could not open chart viewer: %v\n", err)
		}
	}
}
