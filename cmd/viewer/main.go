package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/viewrig"
)

const (
	screenWidth  = 1024
	screenHeight = 640
)

func main() {
	configPath := flag.String("config", "viewrig.yaml", "camera rig config, reloaded on change")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	g := NewGame(opts, *configPath)
	defer g.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("viewrig")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) (viewrig.Config, error) {
	cfg, err := viewrig.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("No config at %s, using defaults", path)
		return viewrig.DefaultConfig(), nil
	}
	return cfg, err
}
