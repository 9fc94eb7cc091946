package container

import (
	"image"

	"github.com/cespare/xxhash/v2"
)

// PixelDigest returns the xxHash64 of the NRGBA pixels of img, row by row, ignoring stride padding.
// Two images with equal bounds size and pixels have equal digests.
func PixelDigest(img *image.NRGBA) uint64 {
	digest := xxhash.New()
	size := img.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		offset := y * img.Stride
		_, _ = digest.Write(img.Pix[offset : offset+size.X*4])
	}
	return digest.Sum64()
}
