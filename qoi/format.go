package qoi

const (
	qoi_OP_INDEX byte = 0b00_000000
	qoi_OP_DIFF  byte = 0b01_000000
	qoi_OP_LUMA  byte = 0b10_000000
	qoi_OP_RUN   byte = 0b11_000000
	qoi_OP_RGB   byte = 0b11111110
	qoi_OP_RGBA  byte = 0b11111111

	qoi_2B_MASK    byte = 0b11_000000
	qoi_6B_PAYLOAD byte = 0b00_111111
)

const (
	headerLength  = 4 + 4 + 4 + 1 + 1
	paddingLength = 8

	// indexLength is the number of slots in the pixel cache. The hash is masked to fit.
	indexLength = 64

	// minHeadroom is the free output space the encoder demands before each pixel.
	// A flushed run plus the largest opcode take 6 bytes.
	minHeadroom = 8

	// maxRun is the longest run a single RUN opcode can carry. 63 and 64 would collide with the RGB and RGBA tags.
	maxRun = 62
)

const qoiMagic = "qoif"

var qoiPadding = [paddingLength]byte{0, 0, 0, 0, 0, 0, 0, 1}

// the opaque seed has hash 0x35. An empty slot there means the seed was never cached
const opaqueSeedHash = 0x35
