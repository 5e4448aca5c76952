// Package textsource builds an FM-Index from zstd-compressed source text,
// so the original corpus doesn't need to live on disk uncompressed next to
// the index that replaces it.
package textsource

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/ext-sakamoro/ALICE-Search"
)

// Compress encodes text at the given zstd level, returning the compressed
// bytes. Level follows zstd.EncoderLevelFromZstd's convention (roughly
// 1-22, higher is slower and smaller).
func Compress(text []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, fmt.Errorf("textsource: creating encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(text, nil), nil
}

// Decompress reverses Compress.
func Decompress(compressed []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("textsource: creating decoder: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("textsource: decoding: %w", err)
	}
	return out, nil
}

// Index wraps an *alice.Index with the length of the text it was built
// from. It does not keep the compressed text itself: FromText hands the
// compressed bytes back to the caller, and recovering the text means
// passing those bytes to Decompress.
type Index struct {
	*alice.Index
	decompressedLen int
}

// FromCompressed decompresses compressed and builds an Index over the
// result.
func FromCompressed(compressed []byte, saSampleStep int) (*Index, error) {
	text, err := Decompress(compressed)
	if err != nil {
		return nil, err
	}

	ix, err := alice.Build(text, saSampleStep)
	if err != nil {
		return nil, fmt.Errorf("textsource: building index: %w", err)
	}
	return &Index{Index: ix, decompressedLen: len(text)}, nil
}

// FromText builds an Index over text and returns both the Index and text
// compressed at the given zstd level, ready to be persisted in place of
// the uncompressed original.
func FromText(text []byte, saSampleStep, zstdLevel int) (*Index, []byte, error) {
	ix, err := alice.Build(text, saSampleStep)
	if err != nil {
		return nil, nil, fmt.Errorf("textsource: building index: %w", err)
	}

	compressed, err := Compress(text, zstdLevel)
	if err != nil {
		return nil, nil, err
	}

	return &Index{Index: ix, decompressedLen: len(text)}, compressed, nil
}

// DecompressedLen returns the length of the original, uncompressed text.
func (ix *Index) DecompressedLen() int { return ix.decompressedLen }
