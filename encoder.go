package main

import (
	"fmt"
	"image"
	"io"

	"github.com/chai2010/webp"
	"github.com/gen2brain/avif"
)

const (
	FormatWebP = "webp"
	FormatAVIF = "avif"
)

// Encoder writes an image in one output format.
type Encoder interface {
	// Ext is the output file extension including the leading dot.
	Ext() string
	Encode(w io.Writer, img image.Image) error
	// Decode reads back an image this encoder produced.
	Decode(r io.Reader) (image.Image, error)
}

type webpEncoder struct {
	quality int
}

func (e webpEncoder) Ext() string { return ".webp" }

func (e webpEncoder) Encode(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Quality: float32(e.quality)})
}

// Decode goes through libwebp so limited-range YUV is converted back to the
// colors that were encoded.
func (e webpEncoder) Decode(r io.Reader) (image.Image, error) {
	return webp.Decode(r)
}

type avifEncoder struct {
	options avif.Options
}

func (e avifEncoder) Ext() string { return ".avif" }

func (e avifEncoder) Encode(w io.Writer, img image.Image) error {
	return avif.Encode(w, img, e.options)
}

func (e avifEncoder) Decode(r io.Reader) (image.Image, error) {
	return avif.Decode(r)
}

// NewEncoder builds the encoder selected by cfg.Format.
func NewEncoder(cfg *Config) (Encoder, error) {
	switch cfg.Format {
	case FormatWebP, "":
		return webpEncoder{quality: clampQuality(cfg.Quality)}, nil
	case FormatAVIF:
		return avifEncoder{options: cfg.GetEncodingOptions()}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", cfg.Format)
	}
}

func clampQuality(q int) int {
	if q < 0 {
		return 0
	}
	if q > 100 {
		return 100
	}
	return q
}
