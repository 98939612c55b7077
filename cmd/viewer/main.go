package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/junsooki/AirView/internal/config"
	"github.com/junsooki/AirView/internal/display"
	"github.com/junsooki/AirView/internal/resource"
	"github.com/junsooki/AirView/internal/sampling"
	"github.com/junsooki/AirView/internal/texture"
)

func main() {
	cfg := config.ParseViewerFlags()

	if cfg.Path == "" {
		log.Fatal("Usage: airview [flags] <image-file>")
	}

	log.Printf("AirView starting")
	log.Printf("  File:      %s", cfg.Path)
	log.Printf("  Thumbnail: %v", cfg.Thumbnail)

	var policy sampling.Policy
	if cfg.Thumbnail {
		policy = sampling.Thumbnail(cfg.ThumbMax)
	} else {
		mw, mh := ebiten.Monitor().Size()
		policy = sampling.FullView(mw, mh)
	}

	tex := texture.NewEbitenTexture()
	res, err := resource.OpenFile(cfg.Path, policy, tex)
	if err != nil {
		log.Fatalf("open image: %v", err)
	}
	if res.FrameInterval() > 0 {
		log.Printf("Decoded animated %dx%d", res.Width(), res.Height())
	} else {
		log.Printf("Decoded %dx%d", res.Width(), res.Height())
	}

	// Ebitengine RunGame must be on the main goroutine (macOS requirement).
	viewer := display.NewEbitenViewer(res, tex, cfg.Title, cfg.WindowW, cfg.WindowH)
	if err := viewer.Run(); err != nil {
		log.Fatalf("display: %v", err)
	}
}
