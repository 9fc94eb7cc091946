package rapidqoi

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"rapidqoi/qoi"
)

// Encode writes the Image m to w in QOI format. Any Image may be encoded, but images that are not
// image.NRGBA might be encoded lossily.
func Encode(w io.Writer, m image.Image, opts ...EncodeOption) error {
	return NewEncoder(w, m, opts...).Encode()
}

// EncodeOption configures an Encoder.
type EncodeOption func(*Encoder)

// WithColors forces the channel layout and colorspace tag instead of picking RGB or RGBA from the
// image's opacity. A three channel layout drops the alpha.
func WithColors(colors qoi.Colors) EncodeOption {
	return func(enc *Encoder) {
		enc.colors = colors
		enc.autoColors = false
	}
}

type Encoder struct {
	out        io.Writer
	img        *image.NRGBA
	colors     qoi.Colors
	autoColors bool
}

func NewEncoder(out io.Writer, img image.Image, opts ...EncodeOption) *Encoder {
	if !isImageNRGBA(img) {
		img = convertImageToNRGBA(img)
	}
	enc := &Encoder{out: out, img: img.(*image.NRGBA), autoColors: true}
	for _, opt := range opts {
		opt(enc)
	}
	if enc.autoColors {
		enc.colors = qoi.RGBA
		if enc.img.Opaque() {
			enc.colors = qoi.RGB
		}
	}
	return enc
}

func isImageNRGBA(img image.Image) bool {
	_, ok := img.(*image.NRGBA)
	return ok
}

func convertImageToNRGBA(img image.Image) image.Image {
	bounds := img.Bounds()
	newImg := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			newImg.Set(x-bounds.Min.X, y-bounds.Min.Y, color.NRGBAModel.Convert(img.At(x, y)))
		}
	}
	return newImg
}

// Image returns the image as it will be encoded, before any channel is dropped.
func (enc *Encoder) Image() *image.NRGBA {
	return enc.img
}

// Colors returns the layout the image will be encoded with.
func (enc *Encoder) Colors() qoi.Colors {
	return enc.colors
}

func (enc *Encoder) Encode() error {
	size := enc.img.Bounds().Size()
	header := qoi.Header{
		Width:  uint32(size.X),
		Height: uint32(size.Y),
		Colors: enc.colors,
	}
	data, err := qoi.EncodeAlloc(header, enc.pixelBytes())
	if err != nil {
		return fmt.Errorf("could not encode the image: %w", err)
	}
	_, err = enc.out.Write(data)
	if err != nil {
		return fmt.Errorf("could not write the image: %w", err)
	}
	return nil
}

// pixelBytes returns the image as a tightly packed buffer in the encoder's channel layout.
func (enc *Encoder) pixelBytes() []byte {
	img := enc.img
	size := img.Bounds().Size()
	rowLength := size.X * 4
	if enc.colors.HasAlpha() && img.Stride == rowLength {
		return img.Pix[:rowLength*size.Y]
	}

	channels := enc.colors.Channels()
	pixels := make([]byte, 0, size.X*size.Y*channels)
	for y := 0; y < size.Y; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+rowLength]
		if channels == 4 {
			pixels = append(pixels, row...)
			continue
		}
		for x := 0; x < rowLength; x += 4 {
			pixels = append(pixels, row[x], row[x+1], row[x+2])
		}
	}
	return pixels
}
