package gbst

import (
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/bodgit/gbst/style"
)

// ReadFile loads and decodes the style file at path. Gzip-wrapped files
// are transparently decompressed first.
func ReadFile(path string) (*style.Style, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		defer zr.Close()

		if b, err = io.ReadAll(zr); err != nil {
			return nil, err
		}
	}

	return style.Decode(b)
}
