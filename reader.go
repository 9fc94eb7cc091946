// Package rapidqoi registers the QOI format with the image package and adapts the byte level
// codec of rapidqoi/qoi to image.Image.
package rapidqoi

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"rapidqoi/qoi"
)

func init() {
	image.RegisterFormat("qoi", "qoif", Decode, DecodeConfig)
}

// maxPixels caps the images Decode is willing to allocate.
const maxPixels = 400_000_000

var ErrImageTooLarge = errors.New("image is too large to decode")

// Decode reads a QOI image from r and returns it as an *image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read the image: %w", err)
	}
	header, err := qoi.DecodeHeader(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode the header: %w", err)
	}
	if uint64(header.Width)*uint64(header.Height) > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, header.Width, header.Height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(header.Width), int(header.Height)))
	if header.Colors.HasAlpha() {
		_, err = qoi.Decode(data, img.Pix)
	} else {
		err = decodeOpaque(data, img)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode the image body: %w", err)
	}
	return img, nil
}

// decodeOpaque decodes a three channel image row by row, filling in the alpha.
func decodeOpaque(data []byte, img *image.NRGBA) error {
	rows, err := qoi.NewRowDecoder(data)
	if err != nil {
		return err
	}
	row := make([]byte, rows.RowSize())
	for y := 0; ; y++ {
		err := rows.Next(row)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < len(row)/3; x++ {
			dst[x*4+0] = row[x*3+0]
			dst[x*4+1] = row[x*3+1]
			dst[x*4+2] = row[x*3+2]
			dst[x*4+3] = 0xff
		}
	}
}

// DecodeConfig returns the color model and dimensions of a QOI image without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	header, err := Header(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("could not decode the header: %w", err)
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(header.Width),
		Height:     int(header.Height),
	}, nil
}

// Header reads only the QOI header from r.
func Header(r io.Reader) (qoi.Header, error) {
	var headerBytes [14]byte
	if _, err := io.ReadFull(r, headerBytes[:]); err != nil {
		return qoi.Header{}, fmt.Errorf("could not read the header: %w", errors.Join(qoi.ErrNotEnoughData, err))
	}
	return qoi.DecodeHeader(headerBytes[:])
}
