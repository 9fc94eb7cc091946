package qoi

import (
	"math/rand"
)

// generatePixels builds a deterministic image that exercises every opcode: long runs, recurring
// palette colors, small and medium deltas, literals and, with 4 channels, alpha changes.
func generatePixels(seed int64, width, height, channels int) []byte {
	rng := rand.New(rand.NewSource(seed))
	palette := make([][4]byte, 12)
	for i := range palette {
		palette[i] = [4]byte{byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256)), 255}
	}
	palette[0] = [4]byte{0, 0, 0, 255}

	pixels := make([]byte, width*height*channels)
	current := [4]byte{0, 0, 0, 255}
	repeat := 0
	for i := 0; i < width*height; i++ {
		if repeat > 0 {
			repeat--
			copy(pixels[i*channels:], current[:channels])
			continue
		}
		switch rng.Intn(7) {
		case 0:
			repeat = rng.Intn(150)
		case 1:
			current = palette[rng.Intn(len(palette))]
		case 2:
			for c := 0; c < 3; c++ {
				current[c] += byte(rng.Intn(4)) - 2
			}
		case 3:
			dg := rng.Intn(64) - 32
			current[0] += byte(dg + rng.Intn(16) - 8)
			current[1] += byte(dg)
			current[2] += byte(dg + rng.Intn(16) - 8)
		case 4:
			current[0], current[1], current[2] = byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256))
		case 5:
			if channels == 4 {
				current[3] = byte(rng.Intn(256))
			}
		case 6:
			if channels == 4 && rng.Intn(2) == 0 {
				current[3] = 255
			}
			current[1] += byte(rng.Intn(3)) - 1
		}
		copy(pixels[i*channels:], current[:channels])
	}
	return pixels
}

func filledPixels(n int, px []byte) []byte {
	pixels := make([]byte, 0, n*len(px))
	for i := 0; i < n; i++ {
		pixels = append(pixels, px...)
	}
	return pixels
}

// stream builds a complete file from a header and raw opcode bytes.
func stream(h Header, ops ...byte) []byte {
	b := h.Append(nil)
	b = append(b, ops...)
	return append(b, qoiPadding[:]...)
}

var allColors = []Colors{SRGB, SRGBLinearAlpha, RGB, RGBA}
