package style

import "encoding/binary"

func decodePaletteIndex(s *Style, r *reader) error {
	if r.remaining() != NumVirtualPalettes*2 {
		return ErrSizeMismatch
	}
	b, err := r.bytes(NumVirtualPalettes * 2)
	if err != nil {
		return err
	}
	s.PaletteIndex = make([]uint16, NumVirtualPalettes)
	for i := range s.PaletteIndex {
		s.PaletteIndex[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return nil
}

// decodePhysicalPalettes unpacks the PPAL chunk. Palettes are stored in
// pages of 64 and interleaved within a page: the stream is color 0 of
// palettes 0..63, then color 1 of palettes 0..63, and so on. The decoder
// transposes this into palette-major order.
func decodePhysicalPalettes(s *Style, r *reader) error {
	if r.remaining()%paletteBytes != 0 {
		return ErrSizeMismatch
	}
	count := r.remaining() / paletteBytes
	if count%palettesPerPage != 0 {
		return ErrSizeMismatch
	}

	s.Palettes = make([]Palette, count)
	for page := 0; page < count/palettesPerPage; page++ {
		for c := 0; c < colorsPerPalette; c++ {
			for p := 0; p < palettesPerPage; p++ {
				v, err := r.uint32()
				if err != nil {
					return err
				}
				s.Palettes[page*palettesPerPage+p][c] = convertColor(v)
			}
		}
	}
	return nil
}

func decodePaletteBase(s *Style, r *reader) error {
	if r.remaining() != int(numPaletteCategories)*2 {
		return ErrSizeMismatch
	}
	for i := range s.PaletteBase {
		v, err := r.uint16()
		if err != nil {
			return err
		}
		s.PaletteBase[i] = v
	}
	return nil
}

func decodeSpriteBase(s *Style, r *reader) error {
	if r.remaining() != int(numSpriteCategories)*2 {
		return ErrSizeMismatch
	}
	for i := range s.SpriteBase {
		v, err := r.uint16()
		if err != nil {
			return err
		}
		s.SpriteBase[i] = v
	}
	return nil
}

// decodeTiles unswizzles the TILE chunk. Tiles are packed four across into
// 256x256 pixel pages; tile i occupies tile row i/4 and tile column i%4
// against the flat page pixel buffer.
func decodeTiles(s *Style, r *reader) error {
	if r.remaining()%tileBytes != 0 {
		return ErrSizeMismatch
	}
	count := r.remaining() / tileBytes

	data, err := r.peek(r.remaining())
	if err != nil {
		return err
	}
	if err := r.skip(len(data)); err != nil {
		return err
	}

	s.Tiles = make([]Tile, count)
	for t := 0; t < count; t++ {
		row := t / tilesPerPageRow
		col := t % tilesPerPageRow
		for y := 0; y < TileHeight; y++ {
			src := (y+row*TileHeight)*pageWidth + col*TileWidth
			copy(s.Tiles[t][y*TileWidth:(y+1)*TileWidth], data[src:src+TileWidth])
		}
	}
	return nil
}

func decodeSpriteData(s *Style, r *reader) error {
	b, err := r.bytes(r.remaining())
	if err != nil {
		return err
	}
	s.SpriteData = b
	return nil
}

func decodeSpriteIndex(s *Style, r *reader) error {
	if r.remaining()%spriteRecordBytes != 0 {
		return ErrSizeMismatch
	}
	count := r.remaining() / spriteRecordBytes

	s.Sprites = make([]Sprite, count)
	for i := range s.Sprites {
		offset, err := r.uint32()
		if err != nil {
			return err
		}
		width, err := r.uint8()
		if err != nil {
			return err
		}
		height, err := r.uint8()
		if err != nil {
			return err
		}
		if err := r.skip(2); err != nil {
			return err
		}
		s.Sprites[i] = Sprite{Offset: offset, Width: width, Height: height}
	}
	return nil
}

func decodeDeltaData(s *Style, r *reader) error {
	b, err := r.bytes(r.remaining())
	if err != nil {
		return err
	}
	s.DeltaData = b
	return nil
}

// decodeDeltaIndex reads DELX records until the chunk is consumed. Each
// record is a sprite number, a frame count, one pad byte, then one u16
// patch byte-length per frame.
func decodeDeltaIndex(s *Style, r *reader) error {
	for !r.done() {
		sprite, err := r.uint16()
		if err != nil {
			return ErrSizeMismatch
		}
		count, err := r.uint8()
		if err != nil {
			return ErrSizeMismatch
		}
		if err := r.skip(1); err != nil {
			return ErrSizeMismatch
		}

		sizes := make([]uint16, count)
		for i := range sizes {
			if sizes[i], err = r.uint16(); err != nil {
				return ErrSizeMismatch
			}
		}
		s.Deltas = append(s.Deltas, SpriteDelta{Sprite: sprite, Sizes: sizes})
	}
	return nil
}

func decodeFontBase(s *Style, r *reader) error {
	count, err := r.uint16()
	if err != nil {
		return ErrSizeMismatch
	}
	s.FontBase.Counts = make([]uint16, count)
	for i := range s.FontBase.Counts {
		if s.FontBase.Counts[i], err = r.uint16(); err != nil {
			return ErrSizeMismatch
		}
	}
	return nil
}

// decodeCars reads CARI records until the chunk is consumed. The fixed
// part is fourteen bytes, followed by the remap list, the door count and
// the door list.
func decodeCars(s *Style, r *reader) error {
	for !r.done() {
		var c CarInfo
		var numRemaps uint8

		for _, f := range []*uint8{
			&c.Model, &c.Sprite, &c.Width, &c.Height, &numRemaps,
			&c.Passengers, &c.Wreck, &c.Rating,
		} {
			v, err := r.uint8()
			if err != nil {
				return ErrSizeMismatch
			}
			*f = v
		}
		for _, f := range []*int8{
			&c.FrontWheelOffset, &c.RearWheelOffset,
			&c.FrontWindowOffset, &c.RearWindowOffset,
		} {
			v, err := r.int8()
			if err != nil {
				return ErrSizeMismatch
			}
			*f = v
		}

		var err error
		if c.Flags, err = r.uint8(); err != nil {
			return ErrSizeMismatch
		}
		if c.Flags2, err = r.uint8(); err != nil {
			return ErrSizeMismatch
		}

		if c.Remaps, err = r.bytes(int(numRemaps)); err != nil {
			return ErrSizeMismatch
		}

		numDoors, err := r.uint8()
		if err != nil {
			return ErrSizeMismatch
		}
		c.Doors = make([]Door, numDoors)
		for i := range c.Doors {
			if c.Doors[i].X, err = r.int8(); err != nil {
				return ErrSizeMismatch
			}
			if c.Doors[i].Y, err = r.int8(); err != nil {
				return ErrSizeMismatch
			}
		}

		s.Cars = append(s.Cars, c)
	}
	return nil
}

func decodeObjects(s *Style, r *reader) error {
	if r.remaining()%2 != 0 {
		return ErrSizeMismatch
	}
	count := r.remaining() / 2

	s.Objects = make([]ObjectInfo, count)
	for i := range s.Objects {
		model, err := r.uint8()
		if err != nil {
			return err
		}
		sprites, err := r.uint8()
		if err != nil {
			return err
		}
		s.Objects[i] = ObjectInfo{Model: model, Sprites: sprites}
	}
	return nil
}

// decodeRecyclableCars reads car models up to the 255 sentinel. Anything
// after the sentinel is padding.
func decodeRecyclableCars(s *Style, r *reader) error {
	if r.remaining() > maxRecyclableCars {
		return ErrSizeMismatch
	}
	for !r.done() {
		v, err := r.uint8()
		if err != nil {
			return err
		}
		if v == recycleSentinel {
			return r.skip(r.remaining())
		}
		s.RecyclableCars = append(s.RecyclableCars, v)
	}
	return nil
}

// decodeSurfaces reads one zero-terminated u16 tile list per surface type.
func decodeSurfaces(s *Style, r *reader) error {
	for t := Surface(0); t < NumSurfaces && !r.done(); t++ {
		var tiles []uint16
		for !r.done() {
			v, err := r.uint16()
			if err != nil {
				return ErrSizeMismatch
			}
			if v == 0 {
				break
			}
			tiles = append(tiles, v)
		}
		s.Surfaces[t] = tiles
	}
	return nil
}
