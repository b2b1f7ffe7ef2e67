package main

import (
	"image"
	"image/color"
	"testing"
)

func TestHasAlpha(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)
	tests := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"rgba", image.NewRGBA(rect), true},
		{"nrgba", image.NewNRGBA(rect), true},
		{"nrgba64", image.NewNRGBA64(rect), true},
		{"alpha", image.NewAlpha(rect), true},
		{"gray", image.NewGray(rect), false},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio420), false},
		{"cmyk", image.NewCMYK(rect), false},
		{"opaque palette", image.NewPaletted(rect, color.Palette{color.Black, color.White}), false},
		{"transparent palette", image.NewPaletted(rect, color.Palette{color.Transparent, color.White}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasAlpha(tt.img); got != tt.want {
				t.Errorf("HasAlpha = %v, want %v", got, tt.want)
			}
		})
	}
}

func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestFlatten_TransparentBecomesBackground(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 10, G: 120, B: 200, A: 255})
		}
	}
	// Colour channels of a fully transparent pixel must not leak through.
	src.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 0, B: 255, A: 0})
	src.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 128})

	got := Flatten(src, White)

	if r, g, b := rgbAt(got, 0, 0); r != 255 || g != 255 || b != 255 {
		t.Errorf("transparent pixel = (%d,%d,%d), want white", r, g, b)
	}
	if r, g, b := rgbAt(got, 2, 2); r != 10 || g != 120 || b != 200 {
		t.Errorf("opaque pixel = (%d,%d,%d), want (10,120,200)", r, g, b)
	}
	// Half-transparent black over white lands near mid grey.
	if r, _, _ := rgbAt(got, 1, 0); r < 125 || r > 130 {
		t.Errorf("half transparent pixel red = %d, want ~127", r)
	}
	for i := 3; i < len(got.Pix); i += 4 {
		if got.Pix[i] != 255 {
			t.Fatalf("alpha at byte %d = %d, want opaque canvas", i, got.Pix[i])
		}
	}
}

func TestFlatten_CustomBackground(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	bg := color.RGBA{R: 0, G: 64, B: 0, A: 255}

	got := Flatten(src, bg)
	if r, g, b := rgbAt(got, 0, 0); r != 0 || g != 64 || b != 0 {
		t.Errorf("pixel = (%d,%d,%d), want (0,64,0)", r, g, b)
	}
}

func TestFlatten_PalettedTransparency(t *testing.T) {
	pal := color.Palette{color.Transparent, color.RGBA{R: 255, A: 255}}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	src.SetColorIndex(0, 0, 0)
	src.SetColorIndex(1, 0, 1)

	got := Flatten(src, White)
	if r, g, b := rgbAt(got, 0, 0); r != 255 || g != 255 || b != 255 {
		t.Errorf("transparent index = (%d,%d,%d), want white", r, g, b)
	}
	if r, g, b := rgbAt(got, 1, 0); r != 255 || g != 0 || b != 0 {
		t.Errorf("red index = (%d,%d,%d), want red", r, g, b)
	}
}

func TestFlatten_OpaqueCopiedWithoutCompositing(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(1, 1, color.Gray{Y: 77})

	got := Flatten(src, color.RGBA{R: 255, A: 255})
	if r, g, b := rgbAt(got, 0, 0); r != 0 || g != 0 || b != 0 {
		t.Errorf("pixel = (%d,%d,%d), want black, background must not apply", r, g, b)
	}
	if r, g, b := rgbAt(got, 1, 1); r != 77 || g != 77 || b != 77 {
		t.Errorf("pixel = (%d,%d,%d), want (77,77,77)", r, g, b)
	}
}

func TestFlatten_DoesNotAliasSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.SetRGBA(6, 6, color.RGBA{R: 40, G: 40, B: 40, A: 255})
	before := append([]uint8(nil), src.Pix...)

	got := Flatten(src, White)

	if got.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("bounds = %v, want origin-based 3x2", got.Bounds())
	}
	if &got.Pix[0] == &src.Pix[0] {
		t.Fatal("Flatten returned the source buffer")
	}
	for i := range before {
		if src.Pix[i] != before[i] {
			t.Fatalf("source modified at byte %d", i)
		}
	}
}
