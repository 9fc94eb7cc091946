package qoi

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowDecoder(t *testing.T) {
	for _, colors := range allColors {
		header := Header{Width: 37, Height: 9, Colors: colors}
		pixels := generatePixels(21, 37, 9, colors.Channels())
		encoded, err := EncodeAlloc(header, pixels)
		require.NoError(t, err)

		rows, err := NewRowDecoder(encoded)
		require.NoError(t, err)
		assert.Equal(t, header, rows.Header())

		var decoded []byte
		row := make([]byte, rows.RowSize())
		for {
			err := rows.Next(row)
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			decoded = append(decoded, row...)
		}
		assert.Equal(t, pixels, decoded)
	}
}

func TestRowDecoderRunAcrossRows(t *testing.T) {
	header := Header{Width: 5, Height: 20, Colors: RGB}
	pixels := filledPixels(100, []byte{0, 0, 0})
	encoded, err := EncodeAlloc(header, pixels)
	require.NoError(t, err)

	rows, err := NewRowDecoder(encoded)
	require.NoError(t, err)
	row := make([]byte, rows.RowSize())
	for i := 0; i < 20; i++ {
		require.NoError(t, rows.Next(row))
		assert.Equal(t, pixels[:15], row)
	}
	assert.Equal(t, io.EOF, rows.Next(row))
}

func TestRowDecoderErrors(t *testing.T) {
	_, err := NewRowDecoder([]byte("qoi"))
	assert.ErrorIs(t, err, ErrNotEnoughData)

	header := Header{Width: 3, Height: 1, Colors: RGBA}
	encoded, err := EncodeAlloc(header, generatePixels(1, 3, 1, 4))
	require.NoError(t, err)
	rows, err := NewRowDecoder(encoded)
	require.NoError(t, err)
	assert.ErrorIs(t, rows.Next(make([]byte, 11)), ErrOutputIsTooSmall)

	rows, err = NewRowDecoder(append(header.Append(nil), 0xFE, 1))
	require.NoError(t, err)
	assert.ErrorIs(t, rows.Next(make([]byte, 12)), ErrNotEnoughData)

	empty, err := NewRowDecoder(stream(Header{Width: 0, Height: 4, Colors: RGB}))
	require.NoError(t, err)
	assert.Equal(t, io.EOF, empty.Next(nil))
}
