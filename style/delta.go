package style

import "image"

// DeltaFrame is one reconstructed variant of a base sprite.
type DeltaFrame struct {
	Sprite int
	Frame  int
	Image  *image.RGBA
}

// ReconstructDeltas replays the delta store against every sprite that has
// patch sets and returns the derived frames in declared order.
//
// The store is one sequential stream shared by all patch sets: a single
// cursor is carried across them and only ever advances, so the sets must
// be visited in exactly the order the DELX chunk declared them. Base
// sprites are never modified; each frame is patched into its own clone.
func (s *Style) ReconstructDeltas() ([]DeltaFrame, error) {
	cur := &reader{data: s.DeltaData}

	var frames []DeltaFrame
	for _, d := range s.Deltas {
		base, err := s.SpriteImage(int(d.Sprite))
		if err != nil {
			return nil, err
		}
		// Deltas use the sprite's own palette, not a palette of their own.
		pal, err := s.palette(s.PaletteBase.Offset(PaletteSprite) + int(d.Sprite))
		if err != nil {
			return nil, err
		}

		for frame, size := range d.Sizes {
			m := cloneRGBA(base)
			if err := applyPatches(cur, m, pal, int(size)); err != nil {
				return nil, err
			}
			frames = append(frames, DeltaFrame{
				Sprite: int(d.Sprite),
				Frame:  frame,
				Image:  m,
			})
		}
	}
	return frames, nil
}

// applyPatches consumes exactly size bytes of patch entries from cur and
// writes them into m. An entry is a u16 position advance, a u8 run length
// and that many indexed color bytes; positions decompose against the page
// width the same way sprite offsets do.
func applyPatches(cur *reader, m *image.RGBA, pal *Palette, size int) error {
	pos, consumed := 0, 0
	for consumed < size {
		advance, err := cur.uint16()
		if err != nil {
			return err
		}
		run, err := cur.uint8()
		if err != nil {
			return err
		}
		data, err := cur.bytes(int(run))
		if err != nil {
			return err
		}

		pos += int(advance)
		for i, ci := range data {
			p := pos + i
			m.SetRGBA(p%pageWidth, p/pageWidth, pal[ci])
		}
		pos += int(run)
		consumed += 3 + int(run)
	}
	if consumed != size {
		// A frame boundary fell inside an entry; the stream and the
		// declared sizes disagree.
		return ErrSizeMismatch
	}
	return nil
}
