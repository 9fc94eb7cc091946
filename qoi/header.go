package qoi

import (
	"encoding/binary"
	"fmt"
)

// Colors describes the channel layout of an image and its colorspace tag.
// The colorspace is only metadata, the codec never converts colors.
type Colors uint8

const (
	// SRGB is 3 channels, sRGB colors with linear alpha (colorspace 0).
	SRGB Colors = iota
	// SRGBLinearAlpha is 4 channels, sRGB colors with linear alpha (colorspace 0).
	SRGBLinearAlpha
	// RGB is 3 channels, all channels linear (colorspace 1).
	RGB
	// RGBA is 4 channels, all channels linear (colorspace 1).
	RGBA
)

func (c Colors) HasAlpha() bool {
	return c == SRGBLinearAlpha || c == RGBA
}

// Channels returns the number of bytes per pixel, 3 or 4.
func (c Colors) Channels() int {
	if c.HasAlpha() {
		return 4
	}
	return 3
}

// Colorspace returns the header colorspace byte.
func (c Colors) Colorspace() byte {
	if c == RGB || c == RGBA {
		return 1
	}
	return 0
}

func (c Colors) String() string {
	switch c {
	case SRGB:
		return "srgb"
	case SRGBLinearAlpha:
		return "srgb-linear-alpha"
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	default:
		return fmt.Sprintf("Colors(%d)", uint8(c))
	}
}

func colorsFromHeader(channels, colorspace byte) (Colors, error) {
	switch {
	case channels == 3 && colorspace == 0:
		return SRGB, nil
	case channels == 4 && colorspace == 0:
		return SRGBLinearAlpha, nil
	case channels == 3 && colorspace == 1:
		return RGB, nil
	case channels == 4 && colorspace == 1:
		return RGBA, nil
	case colorspace == 0 || colorspace == 1:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidChannelsValue, channels)
	default:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidColorSpaceValue, colorspace)
	}
}

// Header is the fixed 14 byte preamble of a QOI stream.
type Header struct {
	Width  uint32
	Height uint32
	Colors Colors
}

// DecodedSize returns the length of the raw pixel buffer described by the header.
func (h Header) DecodedSize() int {
	return int(h.Width) * int(h.Height) * h.Colors.Channels()
}

// EncodedSizeLimit returns an output length that always fits the encoded image,
// header and padding included.
func (h Header) EncodedSizeLimit() int {
	return int(h.Width)*int(h.Height)*(h.Colors.Channels()+1) + headerLength + paddingLength
}

// Append appends the 14 header bytes to b.
func (h Header) Append(b []byte) []byte {
	b = append(b, qoiMagic...)
	b = binary.BigEndian.AppendUint32(b, h.Width)
	b = binary.BigEndian.AppendUint32(b, h.Height)
	return append(b, byte(h.Colors.Channels()), h.Colors.Colorspace())
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h Header) MarshalBinary() ([]byte, error) {
	return h.Append(make([]byte, 0, headerLength)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *Header) UnmarshalBinary(data []byte) error {
	header, err := DecodeHeader(data)
	if err != nil {
		return err
	}
	*h = header
	return nil
}

func (h Header) put(dst []byte) {
	copy(dst[:4], qoiMagic)
	binary.BigEndian.PutUint32(dst[4:], h.Width)
	binary.BigEndian.PutUint32(dst[8:], h.Height)
	dst[12] = byte(h.Colors.Channels())
	dst[13] = h.Colors.Colorspace()
}

// DecodeHeader parses the header from the first 14 bytes of data.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < headerLength {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrNotEnoughData, headerLength, len(data))
	}
	if string(data[:4]) != qoiMagic {
		return Header{}, fmt.Errorf("%w: '%v'", ErrInvalidMagic, data[:4])
	}
	colors, err := colorsFromHeader(data[12], data[13])
	if err != nil {
		return Header{}, err
	}
	return Header{
		Width:  binary.BigEndian.Uint32(data[4:]),
		Height: binary.BigEndian.Uint32(data[8:]),
		Colors: colors,
	}, nil
}
