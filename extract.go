package gbst

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/gbst/catalog"
	"github.com/bodgit/gbst/style"
)

const numWriters = 10

type asset struct {
	kind  string
	index int
	frame int // -1 for tiles and base sprites
	name  string
	image *image.RGBA
}

// produceAssets assembles every tile, sprite and delta frame on a single
// goroutine; the decode pass is strictly sequential, only the image
// writing fans out.
func (e *Extractor) produceAssets(ctx context.Context, s *style.Style) (<-chan asset, <-chan error, error) {
	out := make(chan asset)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)

		emit := func(a asset) bool {
			select {
			case out <- a:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for i := range s.Tiles {
			m, err := s.TileImage(i)
			if err != nil {
				errc <- err
				return
			}
			if !emit(asset{
				kind:  catalog.KindTile,
				index: i,
				frame: -1,
				name:  fmt.Sprintf("tile_%03d.png", i),
				image: m,
			}) {
				return
			}
		}

		for i := range s.Sprites {
			m, err := s.SpriteImage(i)
			if err != nil {
				errc <- err
				return
			}
			if !emit(asset{
				kind:  catalog.KindSprite,
				index: i,
				frame: -1,
				name:  fmt.Sprintf("sprite_%03d.png", i),
				image: m,
			}) {
				return
			}
		}

		frames, err := s.ReconstructDeltas()
		if err != nil {
			errc <- err
			return
		}
		for _, f := range frames {
			if !emit(asset{
				kind:  catalog.KindDelta,
				index: f.Sprite,
				frame: f.Frame,
				name:  fmt.Sprintf("delta_%03d_%02d.png", f.Sprite, f.Frame),
				image: f.Image,
			}) {
				return
			}
		}
	}()
	return out, errc, nil
}

func (e *Extractor) writeWorker(ctx context.Context, dir string, in <-chan asset) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for a := range in {
			if err := e.writeAsset(dir, a); err != nil {
				errc <- err
				return
			}

			select {
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			default:
			}
		}
	}()
	return errc, nil
}

func (e *Extractor) writeAsset(dir string, a asset) error {
	path := filepath.Join(dir, a.name)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, a.image); err != nil {
		return err
	}
	e.logger.Printf("wrote %s\n", path)

	if e.db == nil {
		return nil
	}
	return e.db.Add(a.kind, a.index, a.frame, a.name, a.image)
}

// Extract decodes the style file at path and writes every tile, sprite
// and reconstructed delta frame under dir as PNG images. dir is created
// if absent.
func (e *Extractor) Extract(path, dir string) error {
	s, err := ReadFile(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	assets, errc, err := e.produceAssets(ctx, s)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWriters; i++ {
		errc, err := e.writeWorker(ctx, dir, assets)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	for err := range mergeErrors(errcList...) {
		if err != nil {
			return err
		}
	}

	return nil
}

// mergeErrors fans the producer's and every writer's error channel into
// one; the merged channel closes once all of them have.
func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
