package config

import "flag"

// Config holds all runtime configuration for the viewer binary.
type Config struct {
	Path      string
	Thumbnail bool
	ThumbMax  int
	WindowW   int
	WindowH   int
	Title     string
}

// ParseViewerFlags parses flags for the viewer binary. The image path is the
// first positional argument.
func ParseViewerFlags() *Config {
	cfg := &Config{}
	flag.BoolVar(&cfg.Thumbnail, "thumb", false, "Decode at search-thumbnail size instead of full view")
	flag.IntVar(&cfg.ThumbMax, "thumb-size", 384, "Maximum thumbnail dimension in pixels")
	flag.IntVar(&cfg.WindowW, "width", 1280, "Initial window width")
	flag.IntVar(&cfg.WindowH, "height", 720, "Initial window height")
	flag.StringVar(&cfg.Title, "title", "AirView", "Window title")
	flag.Parse()

	cfg.Path = flag.Arg(0)
	return cfg
}
