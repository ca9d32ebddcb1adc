package gbst

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/bodgit/gbst/style"
)

// Tiles per montage row, matching the 256 pixel page width they were
// packed at in the file.
const sheetColumns = 4

// Sheet re-packs every decoded tile into a single page-width montage and
// writes it to path. A .gif extension selects GIF output with the montage
// quantized down to 256 colors; anything else is written as PNG.
func (e *Extractor) Sheet(s *style.Style, path string) error {
	n := len(s.Tiles)
	if n == 0 {
		return errors.New("gbst: style has no tiles")
	}

	rows := (n + sheetColumns - 1) / sheetColumns
	m := image.NewRGBA(image.Rect(0, 0, sheetColumns*style.TileWidth, rows*style.TileHeight))

	for i := 0; i < n; i++ {
		tile, err := s.TileImage(i)
		if err != nil {
			return err
		}
		x := (i % sheetColumns) * style.TileWidth
		y := (i / sheetColumns) * style.TileHeight
		draw.Draw(m, image.Rect(x, y, x+style.TileWidth, y+style.TileHeight), tile, image.Point{}, draw.Src)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if filepath.Ext(path) == ".gif" {
		q := quantize.MedianCutQuantizer{}
		pm := image.NewPaletted(m.Bounds(), q.Quantize(make(color.Palette, 0, 256), m))
		draw.Draw(pm, m.Bounds(), m, image.Point{}, draw.Src)

		if err := gif.Encode(f, pm, nil); err != nil {
			return err
		}
	} else {
		if err := png.Encode(f, m); err != nil {
			return err
		}
	}

	e.logger.Printf("wrote %s\n", path)
	return nil
}
