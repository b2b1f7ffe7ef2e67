package main

import (
	"fmt"
	"image"
	"os"

	"github.com/corona10/goimagehash"
)

// verifyOutput decodes the file at path and checks it against the flattened
// source: same dimensions and a perceptual hash distance within threshold.
func verifyOutput(enc Encoder, path string, source image.Image, threshold int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: opening output: %v", ErrVerify, err)
	}
	defer f.Close()

	decoded, err := enc.Decode(f)
	if err != nil {
		return fmt.Errorf("%w: output is not decodable: %v", ErrVerify, err)
	}

	sb, db := source.Bounds(), decoded.Bounds()
	if sb.Dx() != db.Dx() || sb.Dy() != db.Dy() {
		return fmt.Errorf("%w: output is %dx%d, source is %dx%d",
			ErrVerify, db.Dx(), db.Dy(), sb.Dx(), sb.Dy())
	}

	srcHash, err := goimagehash.PerceptionHash(source)
	if err != nil {
		return fmt.Errorf("%w: hashing source: %v", ErrVerify, err)
	}
	outHash, err := goimagehash.PerceptionHash(decoded)
	if err != nil {
		return fmt.Errorf("%w: hashing output: %v", ErrVerify, err)
	}

	distance, err := srcHash.Distance(outHash)
	if err != nil {
		return fmt.Errorf("%w: comparing hashes: %v", ErrVerify, err)
	}
	if distance > threshold {
		return fmt.Errorf("%w: perceptual distance %d exceeds %d", ErrVerify, distance, threshold)
	}
	return nil
}
