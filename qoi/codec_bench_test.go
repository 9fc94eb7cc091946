package qoi

import (
	"testing"
)

func BenchmarkEncode(b *testing.B) {
	header := Header{Width: 512, Height: 512, Colors: RGBA}
	pixels := generatePixels(1, 512, 512, 4)
	output := make([]byte, header.EncodedSizeLimit())
	b.SetBytes(int64(len(pixels)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(header, pixels, output); err != nil {
			b.Fatalf("Could not encode the image: %v", err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	header := Header{Width: 512, Height: 512, Colors: RGBA}
	encoded, err := EncodeAlloc(header, generatePixels(1, 512, 512, 4))
	if err != nil {
		b.Fatalf("Could not encode the image: %v", err)
	}
	output := make([]byte, header.DecodedSize())
	b.SetBytes(int64(len(output)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(encoded, output); err != nil {
			b.Fatalf("Could not decode the image: %v", err)
		}
	}
}
