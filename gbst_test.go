package gbst

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/gbst/catalog"
)

func chunk(tag string, payload []byte) []byte {
	b := make([]byte, 0, 8+len(payload))
	b = append(b, tag...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(payload)))
	return append(b, payload...)
}

// testStyle builds a small but complete style file: one page of tiles,
// one sprite and one delta frame for it.
func testStyle() []byte {
	b := []byte("GBST")
	b = binary.LittleEndian.AppendUint16(b, 1)

	// 16384 virtual palettes, all resolving to physical palette 0.
	b = append(b, chunk("PALX", make([]byte, 16384*2))...)

	// One 64-palette page; palette 0 maps color index k to red k.
	ppal := make([]byte, 0, 64*256*4)
	for c := 0; c < 256; c++ {
		for p := 0; p < 64; p++ {
			var v uint32
			if p == 0 {
				v = uint32(c) << 16
			}
			ppal = binary.LittleEndian.AppendUint32(ppal, v)
		}
	}
	b = append(b, chunk("PPAL", ppal)...)

	b = append(b, chunk("TILE", make([]byte, 256*256))...)
	b = append(b, chunk("SPRG", make([]byte, 256))...)
	b = append(b, chunk("SPRX", []byte{0, 0, 0, 0, 8, 1, 0, 0})...)
	b = append(b, chunk("DELS", []byte{2, 0, 1, 200})...)
	b = append(b, chunk("DELX", []byte{0, 0, 1, 0, 4, 0})...)

	return b
}

func writeTestStyle(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sty")
	require.NoError(t, ioutil.WriteFile(path, testStyle(), 0644))
	return path
}

func testLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

func TestReadFile(t *testing.T) {
	s, err := ReadFile(writeTestStyle(t))
	require.NoError(t, err)
	assert.Len(t, s.Tiles, 16)
	assert.Len(t, s.Sprites, 1)
}

func TestReadFileGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(testStyle())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "test.sty.gz")
	require.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0644))

	s, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Tiles, 16)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.sty"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtract(t *testing.T) {
	stylePath := writeTestStyle(t)
	dir := filepath.Join(t.TempDir(), "out")

	db, err := catalog.New(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)

	e := New(db, testLogger())
	defer e.Close()

	require.NoError(t, e.Extract(stylePath, dir))

	for _, name := range []string{"tile_000.png", "tile_015.png", "sprite_000.png", "delta_000_00.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err, name)
		_, err = png.Decode(f)
		f.Close()
		require.NoError(t, err, name)
	}

	// 16 tiles, 1 sprite, 1 delta frame catalogued; the 16 identical
	// all-black tiles share one image row.
	assets, err := db.Assets()
	require.NoError(t, err)
	assert.Equal(t, 18, assets)

	images, err := db.Images()
	require.NoError(t, err)
	assert.Less(t, images, assets)
}

func TestExtractNoCatalog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	e := New(nil, testLogger())
	defer e.Close()

	require.NoError(t, e.Extract(writeTestStyle(t), dir))

	_, err := os.Stat(filepath.Join(dir, "sprite_000.png"))
	assert.NoError(t, err)
}

func TestSheet(t *testing.T) {
	s, err := ReadFile(writeTestStyle(t))
	require.NoError(t, err)

	e := New(nil, testLogger())
	defer e.Close()

	for _, name := range []string{"sheet.png", "sheet.gif"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, e.Sheet(s, path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}

	path := filepath.Join(t.TempDir(), "sheet.png")
	require.NoError(t, e.Sheet(s, path))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	m, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 256, m.Bounds().Dx())
	assert.Equal(t, 256, m.Bounds().Dy())
}
