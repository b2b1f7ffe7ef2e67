package main

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// White is the default flatten background.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// HasAlpha reports whether img's color model can carry transparency. Paletted
// images only count when at least one palette entry is not fully opaque.
func HasAlpha(img image.Image) bool {
	switch m := img.ColorModel().(type) {
	case color.Palette:
		for _, c := range m {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}

	switch img.ColorModel() {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model,
		color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}

// Flatten returns a new opaque RGBA image with the same bounds as src. Images
// with alpha are composited "over" a canvas filled with bg; others are copied
// as-is into RGB. src is never modified or aliased.
func Flatten(src image.Image, bg color.Color) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if !HasAlpha(src) {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}

	r, g, bl, _ := bg.RGBA()
	opaque := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 255}
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: opaque}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}
