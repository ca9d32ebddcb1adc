package style

import "image/color"

// convertColor unpacks a stored BGRA dword. The format carries no alpha
// channel so every color decodes fully opaque, including color 0.
func convertColor(v uint32) color.RGBA {
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}

// PhysicalPalette resolves a virtual palette index to a physical palette
// index.
func (s *Style) PhysicalPalette(virtual int) (int, error) {
	if virtual < 0 || virtual >= len(s.PaletteIndex) {
		return 0, ErrInvalidIndex
	}
	return int(s.PaletteIndex[virtual]), nil
}

// Color resolves one color of a physical palette.
func (s *Style) Color(physical, index int) (color.RGBA, error) {
	if physical < 0 || physical >= len(s.Palettes) {
		return color.RGBA{}, ErrInvalidIndex
	}
	if index < 0 || index >= colorsPerPalette {
		return color.RGBA{}, ErrInvalidIndex
	}
	return s.Palettes[physical][index], nil
}

// palette resolves a virtual index all the way to its physical palette.
func (s *Style) palette(virtual int) (*Palette, error) {
	physical, err := s.PhysicalPalette(virtual)
	if err != nil {
		return nil, err
	}
	if physical >= len(s.Palettes) {
		return nil, ErrInvalidIndex
	}
	return &s.Palettes[physical], nil
}
