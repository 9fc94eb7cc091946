package rapidqoi

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapidqoi/qoi"
)

func testImage(opaque bool) *image.NRGBA {
	img := imaging.New(45, 23, color.NRGBA{R: 12, G: 200, B: 34, A: 255})
	for y := 0; y < 23; y++ {
		for x := 0; x < 45; x += 1 + y%4 {
			a := uint8(255)
			if !opaque {
				a = uint8(x * y)
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 5), G: uint8(y * 11), B: uint8(x ^ y), A: a})
		}
	}
	return img
}

func TestEncodeDecodeOpaque(t *testing.T) {
	img := testImage(true)
	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, img))

	header, err := Header(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, qoi.RGB, header.Colors)

	decoded, format, err := image.Decode(buf)
	require.NoErrorf(t, err, "Could not decode the QOI test image: %v", err)
	assert.Equal(t, "qoi", format)
	assert.EqualValues(t, img, decoded)
}

func TestEncodeDecodeTransparent(t *testing.T) {
	img := testImage(false)
	buf := new(bytes.Buffer)
	require.NoError(t, NewEncoder(buf, img).Encode())

	header, err := Header(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, qoi.RGBA, header.Colors)

	decoded, err := Decode(buf)
	require.NoError(t, err)
	assert.EqualValues(t, img, decoded)
}

func TestEncodeWithColors(t *testing.T) {
	img := testImage(false)
	buf := new(bytes.Buffer)
	enc := NewEncoder(buf, img, WithColors(qoi.SRGB))
	assert.Equal(t, qoi.SRGB, enc.Colors())
	require.NoError(t, enc.Encode())

	decoded, err := Decode(buf)
	require.NoError(t, err)
	nrgba := decoded.(*image.NRGBA)
	for i := 0; i < len(img.Pix); i += 4 {
		require.Equal(t, img.Pix[i:i+3], nrgba.Pix[i:i+3])
		require.EqualValues(t, 255, nrgba.Pix[i+3], "the alpha is dropped")
	}
}

func TestEncodeConvertsOtherModels(t *testing.T) {
	gray := image.NewGray(image.Rect(3, 5, 20, 12))
	for y := 5; y < 12; y++ {
		for x := 3; x < 20; x++ {
			gray.SetGray(x, y, color.Gray{Y: uint8(x * y)})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, gray))

	decoded, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 17, 7), decoded.Bounds())
	for y := 0; y < 7; y++ {
		for x := 0; x < 17; x++ {
			expected := color.NRGBAModel.Convert(gray.At(x+3, y+5))
			assert.Equal(t, expected, decoded.At(x, y))
		}
	}
}

func TestEncodeSubImage(t *testing.T) {
	img := testImage(false)
	sub := img.SubImage(image.Rect(4, 2, 30, 20)).(*image.NRGBA)
	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, sub))

	decoded, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, imaging.Crop(img, image.Rect(4, 2, 30, 20)), decoded)
}

func TestDecodeConfig(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, testImage(true)))

	cfg, format, err := image.DecodeConfig(buf)
	require.NoError(t, err)
	assert.Equal(t, "qoi", format)
	assert.Equal(t, 45, cfg.Width)
	assert.Equal(t, 23, cfg.Height)
	assert.Equal(t, color.NRGBAModel, cfg.ColorModel)
}

func TestDecodeErrors(t *testing.T) {
	_, err := DecodeConfig(bytes.NewReader([]byte("qoif")))
	assert.ErrorIs(t, err, qoi.ErrNotEnoughData)

	_, err = Decode(bytes.NewReader([]byte("qoixqoixqoixqoix")))
	assert.ErrorIs(t, err, qoi.ErrInvalidMagic)

	huge, err := qoi.Header{Width: 100_000, Height: 100_000, Colors: qoi.RGBA}.MarshalBinary()
	require.NoError(t, err)
	_, err = Decode(bytes.NewReader(huge))
	assert.ErrorIs(t, err, ErrImageTooLarge)

	truncated := new(bytes.Buffer)
	require.NoError(t, Encode(truncated, testImage(true)))
	_, err = Decode(bytes.NewReader(truncated.Bytes()[:40]))
	assert.ErrorIs(t, err, qoi.ErrNotEnoughData)
}
