/*
Package gbst extracts graphics from GBST style files, the chunked asset
archives carrying the tiles, sprites and sprite delta frames of a vintage
top-down game. Indexed pixel data is resolved to true-color images and
written out as PNG files, with every extracted image tracked in a catalog.
*/
package gbst

import (
	"log"

	"github.com/bodgit/gbst/catalog"
)

// Extractor ties together the style decoder, the asset catalog and the
// output pipeline.
type Extractor struct {
	db     *catalog.DB
	logger *log.Logger
}

// New returns an Extractor recording extracted assets in db. A nil db
// skips cataloguing.
func New(db *catalog.DB, logger *log.Logger) *Extractor {
	return &Extractor{
		db:     db,
		logger: logger,
	}
}

// Close releases the underlying catalog, if any.
func (e *Extractor) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}
