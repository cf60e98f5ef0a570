package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/flipbook/common"
	"github.com/milk9111/flipbook/config"
	"github.com/milk9111/flipbook/greeting"
)

func main() {
	configPath := flag.String("config", "player.yaml", "player config (yaml); embedded defaults are used when missing")
	assetRoot := flag.String("assets", "", "asset directory or http(s) base url serving render/ and music.mp3")
	pageURL := flag.String("page", "", "hosting page url; its name query parameter personalizes the greeting")
	clock := flag.String("clock", "", "frame clock: drift or interval")
	watch := flag.Bool("watch", false, "reload frames rewritten on disk (directory assets only)")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		log.Fatalf("flipbook: %v", err)
	}
	if *assetRoot != "" {
		cfg.AssetRoot = *assetRoot
	}
	if *clock != "" {
		cfg.Clock = *clock
	}
	if *watch {
		cfg.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("flipbook: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(cfg, greeting.Message(greeting.FromPageURL(*pageURL)), *debug)
	if err != nil {
		log.Fatalf("flipbook: %v", err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Printf("flipbook: %v", err)
	}
}
