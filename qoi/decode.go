package qoi

import (
	"fmt"
)

// Decode parses the header of data and decodes the pixels into output.
// output must hold at least the header's DecodedSize() bytes.
func Decode(data, output []byte) (Header, error) {
	header, err := DecodeHeader(data)
	if err != nil {
		return Header{}, fmt.Errorf("could not decode the header: %w", err)
	}
	err = DecodeSkipHeader(header, data[headerLength:], output)
	if err != nil {
		return Header{}, err
	}
	return header, nil
}

// DecodeSkipHeader decodes the opcode stream that follows an already parsed header.
func DecodeSkipHeader(h Header, data, output []byte) error {
	if h.Width == 0 || h.Height == 0 {
		return nil
	}
	size := h.DecodedSize()
	if len(output) < size {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrOutputIsTooSmall, size, len(output))
	}
	_, err := DecodeRange(NewState(h.Colors), data, output[:size])
	if err != nil {
		return fmt.Errorf("could not decode the image body: %w", err)
	}
	return nil
}

// DecodeAlloc decodes data into a newly allocated pixel buffer.
func DecodeAlloc(data []byte) (Header, []byte, error) {
	header, err := DecodeHeader(data)
	if err != nil {
		return Header{}, nil, fmt.Errorf("could not decode the header: %w", err)
	}
	output := make([]byte, header.DecodedSize())
	err = DecodeSkipHeader(header, data[headerLength:], output)
	if err != nil {
		return Header{}, nil, err
	}
	return header, output, nil
}

// DecodeRange fills pixels from the opcodes in data, continuing from s, and returns the number of
// bytes of data consumed. It stops once pixels is full. A run that does not fit is kept in s and
// finished by the next call, which then may consume no data at all.
func DecodeRange(s *State, data, pixels []byte) (int, error) {
	channels := s.channels
	if len(pixels)%channels != 0 {
		return 0, fmt.Errorf("%w: %d bytes is not a whole number of %d channel pixels", ErrOutputIsTooSmall, len(pixels), channels)
	}
	dec := rangeDecoder{State: s, data: data, out: pixels}
	dec.currentPixel = s.previous

	dec.repeat()
	for dec.outPos < len(dec.out) {
		err := dec.dispatchOP()
		if err != nil {
			return dec.pos, err
		}
	}
	s.previous = dec.currentPixel
	return dec.pos, nil
}

type rangeDecoder struct {
	*State
	data         []byte
	pos          int
	out          []byte
	outPos       int
	currentPixel pixel
}

func (dec *rangeDecoder) dispatchOP() error {
	if dec.pos >= len(dec.data) {
		return fmt.Errorf("%w: stream ended with %d bytes of pixels left to decode", ErrNotEnoughData, len(dec.out)-dec.outPos)
	}
	b1 := dec.data[dec.pos]
	switch {
	case b1 == qoi_OP_RGB:
		return dec.op_RGB()
	case b1 == qoi_OP_RGBA:
		return dec.op_RGBA()
	case b1&qoi_2B_MASK == qoi_OP_INDEX:
		dec.op_INDEX(b1)
	case b1&qoi_2B_MASK == qoi_OP_DIFF:
		dec.op_DIFF(b1)
	case b1&qoi_2B_MASK == qoi_OP_LUMA:
		return dec.op_LUMA(b1)
	default:
		dec.op_RUN(b1)
	}
	return nil
}

// need reports whether the opcode at pos has all n of its bytes available.
func (dec *rangeDecoder) need(n int) error {
	if len(dec.data)-dec.pos < n {
		return fmt.Errorf("%w: opcode 0x%02x at offset %d needs %d bytes, %d left", ErrNotEnoughData, dec.data[dec.pos], dec.pos, n, len(dec.data)-dec.pos)
	}
	return nil
}

func (dec *rangeDecoder) op_RGB() error {
	if err := dec.need(4); err != nil {
		return err
	}
	b := dec.data[dec.pos:]
	dec.currentPixel.setRGB(b[1], b[2], b[3])
	dec.pos += 4
	dec.cacheAndWrite()
	return nil
}

// op_RGBA always spans 5 bytes. Three channel images drop the alpha.
func (dec *rangeDecoder) op_RGBA() error {
	if err := dec.need(5); err != nil {
		return err
	}
	b := dec.data[dec.pos:]
	if dec.channels == 4 {
		dec.currentPixel.setRGBA(b[1], b[2], b[3], b[4])
	} else {
		dec.currentPixel.setRGB(b[1], b[2], b[3])
	}
	dec.pos += 5
	dec.cacheAndWrite()
	return nil
}

func (dec *rangeDecoder) op_INDEX(b1 byte) {
	alpha := dec.currentPixel.A()
	dec.currentPixel = dec.index[b1&qoi_6B_PAYLOAD]
	if dec.channels == 3 {
		// slots never written hold a transparent pixel, three channel images stay opaque
		dec.currentPixel[3] = alpha
	}
	dec.pos++
	dec.writeCurrentPixel()
}

func (dec *rangeDecoder) op_DIFF(b1 byte) {
	dec.currentPixel.Add(diffValues(b1))
	dec.pos++
	dec.cacheAndWrite()
}

func (dec *rangeDecoder) op_LUMA(b1 byte) error {
	if err := dec.need(2); err != nil {
		return err
	}
	dec.currentPixel.Add(lumaValues(b1, dec.data[dec.pos+1]))
	dec.pos += 2
	dec.cacheAndWrite()
	return nil
}

func (dec *rangeDecoder) op_RUN(b1 byte) {
	dec.run = int(b1&qoi_6B_PAYLOAD) + 1
	dec.pos++
	dec.repeat()
}

// repeat writes as much of the pending run as fits in the output.
func (dec *rangeDecoder) repeat() {
	for ; dec.run > 0 && dec.outPos < len(dec.out); dec.run-- {
		dec.writeCurrentPixel()
	}
}

func (dec *rangeDecoder) cacheAndWrite() {
	dec.cache(dec.currentPixel)
	dec.writeCurrentPixel()
}

func (dec *rangeDecoder) writeCurrentPixel() {
	dec.currentPixel.write(dec.out[dec.outPos:], dec.channels)
	dec.outPos += dec.channels
}
