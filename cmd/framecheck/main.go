package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/milk9111/flipbook/assets"
	"github.com/milk9111/flipbook/config"
)

func main() {
	configPath := flag.String("config", "player.yaml", "player config (yaml); embedded defaults are used when missing")
	assetRoot := flag.String("assets", "", "asset directory or http(s) base url")
	workers := flag.Int("workers", 8, "concurrent fetches")
	flag.Parse()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		log.Fatalf("framecheck: %v", err)
	}
	if *assetRoot != "" {
		cfg.AssetRoot = *assetRoot
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("framecheck: %v", err)
	}

	src, err := assets.NewSource(cfg.AssetRoot)
	if err != nil {
		log.Fatalf("framecheck: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames := &assets.Frames{Source: src, Pattern: cfg.FramePattern, Total: cfg.TotalFrames}
	report, err := assets.CheckFrames(ctx, frames, *workers)
	if err != nil {
		log.Fatalf("framecheck: %v", err)
	}

	for _, p := range report.Missing {
		fmt.Printf("missing  %4d  %s\n", p.Index, p.Path)
	}
	for _, p := range report.Broken {
		fmt.Printf("broken   %4d  %s: %v\n", p.Index, p.Path, p.Err)
	}
	for _, p := range report.Mismatch {
		fmt.Printf("size     %4d  %s: %v\n", p.Index, p.Path, p.Err)
	}

	audioOK := true
	if cfg.Audio != "" {
		if _, err := assets.ReadAll(ctx, src, cfg.Audio); err != nil {
			fmt.Printf("audio    %s: %v\n", cfg.Audio, err)
			audioOK = false
		}
	}

	fmt.Printf("%s: %d frames checked, %dx%d, %d missing, %d broken, %d mismatched\n",
		src, report.Checked, report.Size.X, report.Size.Y, len(report.Missing), len(report.Broken), len(report.Mismatch))
	if !report.OK() || !audioOK {
		stop()
		os.Exit(1)
	}
}
