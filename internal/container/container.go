// Package container wraps finished QOI files in an optional outer compression, chosen by file
// name suffix, and fingerprints decoded pixels so conversions can be verified.
//
// QOI has no entropy coding, so a general purpose compressor on top often shrinks files further.
// The QOI stream itself is never altered.
package container

import (
	"fmt"
	"strings"
)

// Compression identifies the outer compression of a QOI file.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

var suffixes = map[Compression]string{
	CompressionZstd: ".zst",
	CompressionS2:   ".s2",
	CompressionLZ4:  ".lz4",
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// Suffix returns the file name suffix appended after ".qoi", empty for CompressionNone.
func (c Compression) Suffix() string {
	return suffixes[c]
}

// FromFilename returns the compression implied by name and the name without its compression
// suffix. Names without a known suffix are not compressed.
func FromFilename(name string) (Compression, string) {
	for c, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return c, strings.TrimSuffix(name, suffix)
		}
	}
	return CompressionNone, name
}

// Codec compresses and decompresses whole QOI files.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[Compression]Codec{
	CompressionNone: noopCodec{},
	CompressionZstd: ZstdCodec{},
	CompressionS2:   S2Codec{},
	CompressionLZ4:  LZ4Codec{},
}

// GetCodec retrieves the built-in Codec for c.
func GetCodec(c Compression) (Codec, error) {
	if codec, ok := builtinCodecs[c]; ok {
		return codec, nil
	}
	return nil, fmt.Errorf("unsupported compression: %s", c)
}

type noopCodec struct{}

func (noopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (noopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
