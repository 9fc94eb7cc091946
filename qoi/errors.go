package qoi

import "errors"

var (
	// ErrNotEnoughData is returned when the encoded stream ends inside the header or an opcode.
	ErrNotEnoughData = errors.New("buffer does not contain enough encoded data")
	// ErrInvalidMagic is returned when the header does not start with "qoif".
	ErrInvalidMagic = errors.New("encoded header contains an invalid magic value")
	// ErrInvalidChannelsValue is returned when the header channel count is neither 3 nor 4.
	ErrInvalidChannelsValue = errors.New("encoded header contains an invalid channels value, must be 3 or 4")
	// ErrInvalidColorSpaceValue is returned when the header colorspace is neither 0 nor 1.
	ErrInvalidColorSpaceValue = errors.New("encoded header contains an invalid colorspace value, must be 0 or 1")
	// ErrOutputIsTooSmall is returned when the destination buffer cannot hold the result.
	ErrOutputIsTooSmall = errors.New("output buffer is too small")
	// ErrNotEnoughPixelData is returned when the pixel buffer is shorter than the header implies.
	ErrNotEnoughPixelData = errors.New("pixel buffer is too small for the image")
)
