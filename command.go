package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/alecthomas/kong"
	"github.com/gen2brain/avif"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type Config struct {
	InputPath       string           `arg:"" name:"input_folder" help:"Folder containing the JPG/PNG images to convert." type:"path"`
	OutputPath      string           `short:"o" name:"output" help:"Output folder (default: sibling \"webp\" folder)." type:"path"`
	Quality         int              `short:"q" default:"80" help:"Lossy quality (0-100, higher is better)."`
	Format          string           `default:"webp" enum:"webp,avif" help:"Output format (${enum})."`
	QualityAlpha    int              `name:"quality-alpha" default:"80" help:"AVIF alpha channel quality (0-100)."`
	Speed           int              `default:"6" help:"AVIF encoding speed (0-10, lower is better quality but slower)."`
	Workers         int              `default:"1" help:"Number of files converted concurrently."`
	Background      string           `default:"#ffffff" help:"Color that transparent pixels are flattened onto."`
	Verify          bool             `help:"Decode every output and compare it with its source."`
	VerifyThreshold int              `name:"verify-threshold" default:"10" help:"Largest perceptual hash distance accepted by --verify (0-64)."`
	LogJSON         bool             `name:"log-json" help:"Emit log records as JSON."`
	NoColor         bool             `name:"no-color" help:"Disable colored output."`
	Version         kong.VersionFlag `help:"Show version information."`
}

var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func versionString() string {
	return fmt.Sprintf("webpconv %s (built %s, commit %s)", Version, BuildDate, GitCommit)
}

// ParseConfig parses args (without the program name) into a validated Config.
func ParseConfig(args []string, options ...kong.Option) (*Config, error) {
	cfg := &Config{}

	opts := []kong.Option{
		kong.Name("webpconv"),
		kong.Description("Convert JPG and PNG images to WebP format."),
		kong.Vars{"version": versionString()},
	}
	parser, err := kong.New(cfg, append(opts, options...)...)
	if err != nil {
		return nil, err
	}

	if _, err := parser.Parse(args); err != nil {
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Quality < 0 || cfg.Quality > 100 {
		return fmt.Errorf("quality must be in range 0-100")
	}
	if cfg.QualityAlpha < 0 || cfg.QualityAlpha > 100 {
		return fmt.Errorf("alpha quality must be in range 0-100")
	}
	if cfg.Speed < 0 || cfg.Speed > 10 {
		return fmt.Errorf("encoding speed must be in range 0-10")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if cfg.VerifyThreshold < 0 || cfg.VerifyThreshold > 64 {
		return fmt.Errorf("verify threshold must be in range 0-64")
	}

	if _, err := parseBackground(cfg.Background); err != nil {
		return err
	}
	return nil
}

// BackgroundColor is the flatten color, white unless --background was given.
// An unparsable value falls back to white; validate rejects it earlier.
func (cfg *Config) BackgroundColor() color.Color {
	bg, err := parseBackground(cfg.Background)
	if err != nil {
		return White
	}
	return bg
}

func parseBackground(hex string) (color.Color, error) {
	if hex == "" {
		return White, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid background color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func (cfg *Config) GetEncodingOptions() avif.Options {
	return avif.Options{
		Quality:           cfg.Quality,
		QualityAlpha:      cfg.QualityAlpha,
		Speed:             cfg.Speed,
		ChromaSubsampling: image.YCbCrSubsampleRatio420,
	}
}

// DefaultConfig mirrors the CLI defaults for callers that build a Config
// without parsing arguments.
func DefaultConfig() *Config {
	return &Config{
		Quality:         80,
		Format:          FormatWebP,
		QualityAlpha:    80,
		Speed:           6,
		Workers:         1,
		Background:      "#ffffff",
		VerifyThreshold: 10,
	}
}
