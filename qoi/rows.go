package qoi

import (
	"fmt"
	"io"
)

// RowDecoder decodes an image one row at a time, so the whole pixel buffer never has to be held
// in memory. Runs crossing a row boundary are carried over to the next row.
type RowDecoder struct {
	header Header
	state  *State
	data   []byte
	row    uint32
}

// NewRowDecoder parses the header of data and prepares to decode its rows.
func NewRowDecoder(data []byte) (*RowDecoder, error) {
	header, err := DecodeHeader(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode the header: %w", err)
	}
	return &RowDecoder{
		header: header,
		state:  NewState(header.Colors),
		data:   data[headerLength:],
	}, nil
}

func (d *RowDecoder) Header() Header {
	return d.header
}

// RowSize returns the number of bytes Next writes per row.
func (d *RowDecoder) RowSize() int {
	return int(d.header.Width) * d.header.Colors.Channels()
}

// Next decodes the next row into row and returns io.EOF once every row has been decoded.
func (d *RowDecoder) Next(row []byte) error {
	if d.row >= d.header.Height || d.header.Width == 0 {
		return io.EOF
	}
	size := d.RowSize()
	if len(row) < size {
		return fmt.Errorf("%w: row needs %d bytes, got %d", ErrOutputIsTooSmall, size, len(row))
	}
	n, err := DecodeRange(d.state, d.data, row[:size])
	if err != nil {
		return fmt.Errorf("could not decode row %d: %w", d.row, err)
	}
	d.data = d.data[n:]
	d.row++
	return nil
}
