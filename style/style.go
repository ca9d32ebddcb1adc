/*
Package style implements a decoder for GBST style files.

A style file carries all the graphics for one city: tiles, sprites, the
two-level palette tables that map them to colors, and the sparse delta
patches used to derive damage and animation frames from base sprites. The
file is a sequence of tagged, length-prefixed chunks following a six byte
header; everything is little-endian.

Decoding is a single pass over one in-memory buffer. It either produces a
complete Style or fails atomically with a DecodeError naming the chunk and
offset that stopped it.
*/
package style

import (
	"image"
	"image/color"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	fileMagic   = "GBST"
	fileVersion = 1
)

const (
	// NumVirtualPalettes is the size of the virtual palette index space.
	NumVirtualPalettes = 16384

	colorsPerPalette = 256
	palettesPerPage  = 64
	paletteBytes     = colorsPerPalette * 4

	// TileWidth and TileHeight are the fixed tile dimensions.
	TileWidth  = 64
	TileHeight = TileWidth
	tileBytes  = TileWidth * TileHeight

	// Tiles and sprites are packed into fixed-width page atlases.
	pageWidth       = 256
	tilesPerPageRow = pageWidth / TileWidth

	spriteRecordBytes = 8

	maxRecyclableCars = 64
	recycleSentinel   = 255
)

// Palette is one physical palette of 256 colors.
type Palette [colorsPerPalette]color.RGBA

// PaletteCategory identifies one contiguous range of the virtual palette
// space, in the order the PALB chunk declares them.
type PaletteCategory int

const (
	PaletteTile PaletteCategory = iota
	PaletteSprite
	PaletteCarRemap
	PalettePedRemap
	PaletteCodeObjectRemap
	PaletteMapObjectRemap
	PaletteUserRemap
	PaletteFontRemap

	numPaletteCategories
)

// PaletteBase partitions the virtual palette space into category ranges.
// The stored values are per-category counts; offsets are running sums so
// the ranges are contiguous, non-overlapping and ordered.
type PaletteBase [numPaletteCategories]uint16

// Count returns the number of virtual palettes in category c.
func (b PaletteBase) Count(c PaletteCategory) int { return int(b[c]) }

// Offset returns the first virtual palette index of category c.
func (b PaletteBase) Offset(c PaletteCategory) int {
	n := 0
	for i := PaletteCategory(0); i < c; i++ {
		n += int(b[i])
	}
	return n
}

// Total returns the number of virtual palettes covered by all categories.
func (b PaletteBase) Total() int { return b.Offset(numPaletteCategories) }

// SpriteCategory identifies one contiguous range of the sprite index
// space, in the order the SPRB chunk declares them.
type SpriteCategory int

const (
	SpriteCar SpriteCategory = iota
	SpritePed
	SpriteCodeObject
	SpriteMapObject
	SpriteUser
	SpriteFont

	numSpriteCategories
)

// SpriteBase partitions the sprite index space into category ranges, with
// the same running-sum layout as PaletteBase.
type SpriteBase [numSpriteCategories]uint16

// Count returns the number of sprites in category c.
func (b SpriteBase) Count(c SpriteCategory) int { return int(b[c]) }

// Offset returns the first sprite index of category c.
func (b SpriteBase) Offset(c SpriteCategory) int {
	n := 0
	for i := SpriteCategory(0); i < c; i++ {
		n += int(b[i])
	}
	return n
}

// Total returns the number of sprites covered by all categories.
func (b SpriteBase) Total() int { return b.Offset(numSpriteCategories) }

// FontBase allocates ranges of the font sprite area to individual fonts.
// Counts holds the number of characters in each font.
type FontBase struct {
	Counts []uint16
}

// NumFonts returns the number of fonts.
func (f FontBase) NumFonts() int { return len(f.Counts) }

// Offset returns the first character sprite of font i, relative to the
// start of the font sprite area.
func (f FontBase) Offset(i int) int {
	n := 0
	for _, c := range f.Counts[:i] {
		n += int(c)
	}
	return n
}

// Total returns the number of character sprites across all fonts.
func (f FontBase) Total() int { return f.Offset(len(f.Counts)) }

// Tile is one 64x64 tile of indexed color bytes, row-major.
type Tile [tileBytes]uint8

// Sprite locates one sprite within the sprite store. Offset is a byte
// offset relative to the start of the store.
type Sprite struct {
	Offset uint32
	Width  uint8
	Height uint8
}

// SpriteDelta declares the delta variants of one sprite. Sizes holds the
// number of patch bytes for each variant frame, in the order the frames'
// patch data appears in the delta store.
type SpriteDelta struct {
	Sprite uint16
	Sizes  []uint16
}

// Door is a door position relative to the center of a car.
type Door struct {
	X int8
	Y int8
}

// CarInfo describes one car model.
type CarInfo struct {
	Model      uint8
	Sprite     uint8 // relative car sprite number
	Width      uint8 // collision width, may differ from the sprite width
	Height     uint8
	Passengers uint8
	Wreck      uint8 // wreck graphic number, 99 if the car cannot wreck
	Rating     uint8

	// Axle and window distances from the center of the car.
	FrontWheelOffset  int8
	RearWheelOffset   int8
	FrontWindowOffset int8
	RearWindowOffset  int8

	Flags  uint8
	Flags2 uint8

	// Remaps holds virtual palette numbers relative to the start of the
	// car remap palette area.
	Remaps []uint8
	Doors  []Door
}

// ObjectInfo describes one map object model.
type ObjectInfo struct {
	Model   uint8
	Sprites uint8
}

// Surface classifies tile behavior.
type Surface int

const (
	SurfaceGrass Surface = iota
	SurfaceRoadSpecial
	SurfaceWater
	SurfaceElectrified
	SurfaceElectrifiedPlatform
	SurfaceWoodFloor
	SurfaceMetalFloor
	SurfaceMetalWall
	SurfaceGrassWall

	// NumSurfaces is the number of surface types a SPEC chunk declares.
	NumSurfaces
)

var surfaceNames = [NumSurfaces]string{
	"grass",
	"road special",
	"water",
	"electrified",
	"electrified platform",
	"wood floor",
	"metal floor",
	"metal wall",
	"grass wall",
}

func (s Surface) String() string {
	if s < 0 || s >= NumSurfaces {
		return "unknown"
	}
	return surfaceNames[s]
}

// Style is a fully decoded style file. All tables are populated by Decode
// and are not modified afterwards.
type Style struct {
	Version uint16

	// PaletteIndex maps virtual palette indices to physical ones. When
	// present it has exactly NumVirtualPalettes entries.
	PaletteIndex []uint16
	Palettes     []Palette
	PaletteBase  PaletteBase

	SpriteBase SpriteBase
	FontBase   FontBase

	Tiles []Tile

	// SpriteData is the sprite store, a flat page atlas pageWidth pixels
	// wide that Sprites index into.
	SpriteData []byte
	Sprites    []Sprite

	// DeltaData is the delta store, consumed strictly sequentially by
	// ReconstructDeltas in the order Deltas declares.
	DeltaData []byte
	Deltas    []SpriteDelta

	Cars           []CarInfo
	Objects        []ObjectInfo
	RecyclableCars []uint8
	Surfaces       [NumSurfaces][]uint16

	spriteCache *lru.Cache[int, *image.RGBA]
}
