package style

type chunkDecoder func(*Style, *reader) error

// chunkDecoders maps each supported four-character tag to its payload
// decoder. A decoder is handed a cursor bounded to exactly the declared
// payload and must consume all of it.
var chunkDecoders = map[string]chunkDecoder{
	"PALX": decodePaletteIndex,
	"PPAL": decodePhysicalPalettes,
	"PALB": decodePaletteBase,
	"SPRB": decodeSpriteBase,
	"TILE": decodeTiles,
	"SPRG": decodeSpriteData,
	"SPRX": decodeSpriteIndex,
	"DELS": decodeDeltaData,
	"DELX": decodeDeltaIndex,
	"FONB": decodeFontBase,
	"CARI": decodeCars,
	"OBJI": decodeObjects,
	"RECY": decodeRecyclableCars,
	"SPEC": decodeSurfaces,
}

// unsupportedTag carries PSX-format tile data which this decoder does not
// handle. It is a hard error rather than a skip so the caller finds out
// the file needs the console variant of the decoder.
const unsupportedTag = "PSXT"

// Decode parses a complete style file from b. On failure the returned
// error is a *DecodeError wrapping one of the sentinel error kinds.
func Decode(b []byte) (*Style, error) {
	r := &reader{data: b}

	hdr, err := r.bytes(4)
	if err != nil || string(hdr) != fileMagic {
		return nil, &DecodeError{Err: ErrMalformedHeader}
	}
	version, err := r.uint16()
	if err != nil || version != fileVersion {
		return nil, &DecodeError{Err: ErrMalformedHeader}
	}

	s := &Style{Version: version}

	for !r.done() {
		at := r.pos

		tag, err := r.bytes(4)
		if err != nil {
			return nil, &DecodeError{Offset: at, Err: ErrTruncated}
		}
		name := string(tag)

		length, err := r.uint32()
		if err != nil {
			return nil, &DecodeError{Chunk: name, Offset: at, Err: ErrTruncated}
		}

		payload, err := r.sub(int(length))
		if err != nil {
			return nil, &DecodeError{Chunk: name, Offset: at, Err: ErrTruncated}
		}

		if name == unsupportedTag {
			return nil, &DecodeError{Chunk: name, Offset: at, Err: ErrUnsupportedChunk}
		}

		decode, ok := chunkDecoders[name]
		if !ok {
			// Unknown chunk; sub already advanced the cursor past the
			// declared payload so the next header lines up.
			continue
		}

		if err := decode(s, payload); err != nil {
			return nil, &DecodeError{Chunk: name, Offset: at, Err: err}
		}
		if !payload.done() {
			return nil, &DecodeError{Chunk: name, Offset: at, Err: ErrSizeMismatch}
		}
	}

	return s, nil
}
