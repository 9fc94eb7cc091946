package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"rapidqoi"
	"rapidqoi/internal/container"
)

var errVerification = errors.New("decoded pixels differ from the source")

type converter struct {
	opts   []rapidqoi.EncodeOption
	verify bool
}

func newConverter(colors string, verify bool) (converter, error) {
	c, auto, err := parseColors(colors)
	if err != nil {
		return converter{}, err
	}
	conv := converter{verify: verify}
	if !auto {
		conv.opts = append(conv.opts, rapidqoi.WithColors(c))
	}
	return conv, nil
}

func (c converter) convert(j job) error {
	img, err := openImage(j.in)
	if err != nil {
		return err
	}

	if !isQOIFilename(j.out) {
		return writeGenericImage(img, j.out)
	}

	expected, err := writeQOIImage(img, j.out, c.opts)
	if err != nil {
		return err
	}
	if !c.verify {
		return nil
	}
	written, err := openImage(j.out)
	if err != nil {
		return fmt.Errorf("could not reopen the output for verification: %w", err)
	}
	if container.PixelDigest(expected) != container.PixelDigest(imaging.Clone(written)) {
		return fmt.Errorf("%w: %s", errVerification, j.out)
	}
	return nil
}

func trimCompressionSuffix(filename string) string {
	_, trimmed := container.FromFilename(filename)
	return trimmed
}

func isQOIFilename(filename string) bool {
	return strings.HasSuffix(trimCompressionSuffix(filename), ".qoi")
}

func openImage(filename string) (image.Image, error) {
	if !isQOIFilename(filename) {
		img, err := imaging.Open(filename)
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return nil, fmt.Errorf("the only supported formats are png, jpeg, gif, bmp, tiff & qoi: %w", err)
		}
		if err != nil {
			return nil, fmt.Errorf("could not open the input image: %w", err)
		}
		return img, nil
	}

	compression, _ := container.FromFilename(filename)
	codec, err := container.GetCodec(compression)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read the input image: %w", err)
	}
	data, err = codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("could not decompress the input image: %w", err)
	}
	img, err := rapidqoi.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode the input image: %w", err)
	}
	return img, nil
}

func writeGenericImage(img image.Image, outputFilename string) error {
	err := imaging.Save(img, outputFilename)
	if errors.Is(err, imaging.ErrUnsupportedFormat) {
		return fmt.Errorf("the only supported formats are png, jpeg, gif, bmp, tiff & qoi: %w", err)
	}
	if err != nil {
		return fmt.Errorf("could not save the output image: %w", err)
	}
	return nil
}

// writeQOIImage encodes img to outputFilename and returns the pixels the file should decode to.
func writeQOIImage(img image.Image, outputFilename string, opts []rapidqoi.EncodeOption) (*image.NRGBA, error) {
	compression, _ := container.FromFilename(outputFilename)
	codec, err := container.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := rapidqoi.NewEncoder(&buf, img, opts...)
	if err := enc.Encode(); err != nil {
		return nil, err
	}
	data, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("could not compress the output image: %w", err)
	}
	if err := os.WriteFile(outputFilename, data, 0o644); err != nil {
		return nil, fmt.Errorf("could not write the output image: %w", err)
	}

	expected := imaging.Clone(enc.Image())
	if !enc.Colors().HasAlpha() {
		for i := 3; i < len(expected.Pix); i += 4 {
			expected.Pix[i] = 0xff
		}
	}
	return expected, nil
}
