package qoi

// pixel always carries four channels. Three channel images keep the alpha at 255 so that
// hashing and comparisons behave the same for both layouts.
type pixel [4]byte

func opaquePixel() pixel {
	return pixel{0, 0, 0, 0xff}
}

func (p pixel) R() byte {
	return p[0]
}

func (p pixel) G() byte {
	return p[1]
}

func (p pixel) B() byte {
	return p[2]
}

func (p pixel) A() byte {
	return p[3]
}

// the mulX methods allow for some compiler magic to minimally enhance performance. Also helps with profiling
func (p pixel) mulR() byte {
	return p.R() * 3
}

func (p pixel) mulG() byte {
	return p.G() * 5
}

func (p pixel) mulB() byte {
	return p.B() * 7
}

func (p pixel) mulA() byte {
	return p.A() * 11
}

// Hash returns the cache slot of the pixel, in [0, 64).
func (p pixel) Hash() byte {
	return (p.mulR() + p.mulG() + p.mulB() + p.mulA()) % indexLength
}

// Add adds the deltas to the color channels, wrapping around. Alpha is untouched.
func (p *pixel) Add(r, g, b byte) {
	p[0] += r
	p[1] += g
	p[2] += b
}

func (p *pixel) setRGB(r, g, b byte) {
	p[0] = r
	p[1] = g
	p[2] = b
}

func (p *pixel) setRGBA(r, g, b, a byte) {
	*p = pixel{r, g, b, a}
}

// read loads the first channels bytes of src. With three channels the alpha is kept.
func (p *pixel) read(src []byte, channels int) {
	if channels == 4 {
		*p = pixel{src[0], src[1], src[2], src[3]}
		return
	}
	p.setRGB(src[0], src[1], src[2])
}

func (p pixel) write(dst []byte, channels int) {
	copy(dst[:channels], p[:channels])
}

// Minus returns the wrapping per-channel difference p - prev.
func (p pixel) Minus(prev pixel) delta {
	return delta{r: p.R() - prev.R(), g: p.G() - prev.G(), b: p.B() - prev.B()}
}

// delta holds wrapping (modulo 256) channel differences between two consecutive pixels.
type delta struct {
	r, g, b byte
}

const (
	diffBias      byte = 2
	lumaBias      byte = 8
	lumaGreenBias byte = 32
)

// diff returns the DIFF opcode for d if every channel is within [-2, 1].
func (d delta) diff() (byte, bool) {
	r := d.r + diffBias
	g := d.g + diffBias
	b := d.b + diffBias
	if r|g|b > 0b11 {
		return 0, false
	}
	return qoi_OP_DIFF | r<<4 | g<<2 | b, true
}

// luma returns the two LUMA bytes for d if the green delta fits in 6 bits and the red and blue
// deltas, relative to green, fit in 4 bits each.
func (d delta) luma() ([2]byte, bool) {
	r := d.r + lumaBias - d.g
	g := d.g + lumaGreenBias
	b := d.b + lumaBias - d.g
	if r|b > 0b1111 || g > 0b111111 {
		return [2]byte{}, false
	}
	return [2]byte{qoi_OP_LUMA | g, r<<4 | b}, true
}

func diffValues(op byte) (byte, byte, byte) {
	return op>>4&0b11 - diffBias, op>>2&0b11 - diffBias, op&0b11 - diffBias
}

func lumaValues(b1, b2 byte) (byte, byte, byte) {
	diffGreen := b1&qoi_6B_PAYLOAD - lumaGreenBias
	diffRed := diffGreen + b2>>4 - lumaBias
	diffBlue := diffGreen + b2&0b1111 - lumaBias
	return diffRed, diffGreen, diffBlue
}
