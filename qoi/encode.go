package qoi

import (
	"fmt"
)

// Encode writes the header, the opcode stream and the padding for the raw pixels to output.
// It returns the number of bytes written. pixels must hold at least h.DecodedSize() bytes;
// output.Len() >= h.EncodedSizeLimit() always fits.
func Encode(h Header, pixels, output []byte) (int, error) {
	if len(output) <= headerLength {
		return 0, fmt.Errorf("%w: %d bytes cannot fit the header", ErrOutputIsTooSmall, len(output))
	}
	h.put(output)

	size := h.DecodedSize()
	if len(pixels) < size {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", ErrNotEnoughPixelData, size, len(pixels))
	}

	n, err := EncodeRange(NewState(h.Colors), pixels[:size], output[headerLength:])
	if err != nil {
		return 0, fmt.Errorf("could not encode the image body: %w", err)
	}

	end := headerLength + n
	if len(output) < end+paddingLength {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", ErrOutputIsTooSmall, end+paddingLength, len(output))
	}
	copy(output[end:], qoiPadding[:])
	return end + paddingLength, nil
}

// EncodeAlloc encodes the image into a newly allocated slice.
func EncodeAlloc(h Header, pixels []byte) ([]byte, error) {
	output := make([]byte, h.EncodedSizeLimit())
	n, err := Encode(h, pixels, output)
	if err != nil {
		return nil, err
	}
	return output[:n], nil
}

// EncodeRange encodes whole pixels from pixels into output as opcodes only, continuing from s.
// A pending run is flushed when pixels is exhausted, so consecutive calls produce a valid stream.
// It returns the number of bytes written.
//
// Every pixel requires 8 free bytes in output before it is processed. This is stricter than
// needed, output buffers that would barely fit may be rejected.
func EncodeRange(s *State, pixels, output []byte) (int, error) {
	channels := s.channels
	if len(pixels)%channels != 0 {
		return 0, fmt.Errorf("%w: %d bytes is not a whole number of %d channel pixels", ErrNotEnoughPixelData, len(pixels), channels)
	}

	enc := rangeEncoder{State: s, out: output}
	for offset := 0; offset < len(pixels); offset += channels {
		if len(enc.out)-enc.pos < minHeadroom {
			return enc.pos, fmt.Errorf("%w: ran out of space after %d bytes", ErrOutputIsTooSmall, enc.pos)
		}
		current := enc.previous
		current.read(pixels[offset:], channels)
		last := offset+channels == len(pixels)
		enc.dispatchOP(current, last)
	}
	return enc.pos, nil
}

type rangeEncoder struct {
	*State
	out []byte
	pos int
}

func (enc *rangeEncoder) dispatchOP(current pixel, last bool) {
	if current == enc.previous {
		enc.op_RUN(last)
		return
	}
	enc.flushRun()
	enc.encodePixel(current)
	enc.previous = current
}

// encodePixel writes the cheapest of INDEX, RGBA, DIFF, LUMA and RGB for current.
func (enc *rangeEncoder) encodePixel(current pixel) {
	hash := current.Hash()
	if enc.index[hash] == current {
		enc.op_INDEX(hash)
		return
	}
	enc.index[hash] = current

	if enc.channels == 4 && current.A() != enc.previous.A() {
		enc.op_RGBA(current)
		return
	}
	diff := current.Minus(enc.previous)
	if op, ok := diff.diff(); ok {
		enc.writeByte(op)
		return
	}
	if op, ok := diff.luma(); ok {
		enc.writeByte(op[0])
		enc.writeByte(op[1])
		return
	}
	enc.op_RGB(current)
}

// op_RUN extends the pending run by one pixel, flushing it when it is full or the input ends.
func (enc *rangeEncoder) op_RUN(last bool) {
	if enc.run == maxRun-1 || last {
		enc.writeByte(qoi_OP_RUN | byte(enc.run))
		enc.run = 0
		return
	}
	enc.run++
}

// flushRun emits the repeats of the previous pixel accumulated so far.
// A single repeat is written as an INDEX of the previous pixel, which is always cached, unless the
// previous pixel is still the uncached opaque seed.
func (enc *rangeEncoder) flushRun() {
	switch enc.run {
	case 0:
		return
	case 1:
		hash := enc.previous.Hash()
		if hash == opaqueSeedHash && enc.index[opaqueSeedHash] == (pixel{}) {
			enc.writeByte(qoi_OP_RUN)
		} else {
			enc.op_INDEX(hash)
		}
	default:
		enc.writeByte(qoi_OP_RUN | byte(enc.run-1))
	}
	enc.run = 0
}

func (enc *rangeEncoder) op_INDEX(hash byte) {
	enc.writeByte(qoi_OP_INDEX | hash)
}

func (enc *rangeEncoder) op_RGB(p pixel) {
	out := enc.out[enc.pos : enc.pos+4]
	out[0] = qoi_OP_RGB
	out[1], out[2], out[3] = p.R(), p.G(), p.B()
	enc.pos += 4
}

func (enc *rangeEncoder) op_RGBA(p pixel) {
	out := enc.out[enc.pos : enc.pos+5]
	out[0] = qoi_OP_RGBA
	out[1], out[2], out[3], out[4] = p.R(), p.G(), p.B(), p.A()
	enc.pos += 5
}

func (enc *rangeEncoder) writeByte(b byte) {
	enc.out[enc.pos] = b
	enc.pos++
}
