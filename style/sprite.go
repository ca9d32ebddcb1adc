package style

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"
)

const spriteCacheSize = 128

// TileImage assembles tile i into an RGBA image using the tile area of the
// virtual palette space.
func (s *Style) TileImage(i int) (*image.RGBA, error) {
	if i < 0 || i >= len(s.Tiles) {
		return nil, ErrInvalidIndex
	}

	pal, err := s.palette(s.PaletteBase.Offset(PaletteTile) + i)
	if err != nil {
		return nil, err
	}

	m := image.NewRGBA(image.Rect(0, 0, TileWidth, TileHeight))
	for y := 0; y < TileHeight; y++ {
		for x := 0; x < TileWidth; x++ {
			m.SetRGBA(x, y, pal[s.Tiles[i][y*TileWidth+x]])
		}
	}
	return m, nil
}

// SpriteImage assembles sprite i through its own palette. Assembled base
// sprites are cached since delta reconstruction revisits them; callers
// always receive their own copy.
func (s *Style) SpriteImage(i int) (*image.RGBA, error) {
	if i < 0 || i >= len(s.Sprites) {
		return nil, ErrInvalidIndex
	}

	if s.spriteCache == nil {
		cache, err := lru.New[int, *image.RGBA](spriteCacheSize)
		if err != nil {
			return nil, err
		}
		s.spriteCache = cache
	}
	if m, ok := s.spriteCache.Get(i); ok {
		return cloneRGBA(m), nil
	}

	m, err := s.assembleSprite(i, s.PaletteBase.Offset(PaletteSprite)+i)
	if err != nil {
		return nil, err
	}
	s.spriteCache.Add(i, m)
	return cloneRGBA(m), nil
}

// SpriteRemapImage assembles sprite i through one of the car remap
// palettes instead of the sprite's own. remap is relative to the start of
// the car remap palette area, as CarInfo.Remaps records them.
func (s *Style) SpriteRemapImage(i, remap int) (*image.RGBA, error) {
	if i < 0 || i >= len(s.Sprites) {
		return nil, ErrInvalidIndex
	}
	if remap < 0 || remap >= s.PaletteBase.Count(PaletteCarRemap) {
		return nil, ErrInvalidIndex
	}
	return s.assembleSprite(i, s.PaletteBase.Offset(PaletteCarRemap)+remap)
}

func (s *Style) assembleSprite(i, virtual int) (*image.RGBA, error) {
	pal, err := s.palette(virtual)
	if err != nil {
		return nil, err
	}

	// Sprite offsets decompose into coordinates within the fixed-width
	// page atlas. A sprite wider than the page would wrap across row
	// boundaries here; no shipped asset has one.
	sp := s.Sprites[i]
	sx := int(sp.Offset) % pageWidth
	sy := int(sp.Offset) / pageWidth
	w, h := int(sp.Width), int(sp.Height)

	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := (sy+y)*pageWidth + sx
		if row+w > len(s.SpriteData) {
			return nil, ErrTruncated
		}
		for x := 0; x < w; x++ {
			m.SetRGBA(x, y, pal[s.SpriteData[row+x]])
		}
	}
	return m, nil
}

func cloneRGBA(m *image.RGBA) *image.RGBA {
	dup := image.NewRGBA(m.Rect)
	copy(dup.Pix, m.Pix)
	return dup
}
