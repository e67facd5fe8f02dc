// Package batch encodes many image files concurrently and writes manifests
// of the resulting hashes.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dividenconquer/blurhash-generator/internal/blurhash"
	"github.com/dividenconquer/blurhash-generator/internal/imaging"
)

// ErrTooLarge marks images skipped because they exceed Options.MaxPixels.
var ErrTooLarge = errors.New("image too large")

// Options controls a batch run.
type Options struct {
	XComponents  int
	YComponents  int
	MaxDimension int
	MaxPixels    int // 0 means no limit
	Workers      int
	Codec        blurhash.Options

	// Debug logs progress and each failed file.
	Debug bool
}

// Result is the outcome for one file. Exactly one of Hash and Error is set.
type Result struct {
	Path        string `json:"path" cbor:"path"`
	Hash        string `json:"hash,omitempty" cbor:"hash,omitempty"`
	XComponents int    `json:"x_components" cbor:"x_components"`
	YComponents int    `json:"y_components" cbor:"y_components"`
	Width       int    `json:"width" cbor:"width"`
	Height      int    `json:"height" cbor:"height"`
	Error       string `json:"error,omitempty" cbor:"error,omitempty"`
}

// OK reports whether the file was encoded.
func (r Result) OK() bool {
	return r.Error == ""
}

// Collect expands paths into a sorted, de-duplicated list of image files.
// Directories are walked recursively and contribute only files with a
// supported extension; explicitly named files are kept whatever their
// extension.
func Collect(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && imaging.IsSupported(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}

	sort.Strings(out)
	return out, nil
}

// EncodeFile loads one image through cache (nil means no caching) and
// encodes it.
func EncodeFile(cache *imaging.ImageCache, path string, opts Options) Result {
	res := Result{Path: path, XComponents: opts.XComponents, YComponents: opts.YComponents}

	var (
		img image.Image
		err error
	)
	if cache != nil {
		img, err = cache.Load(path)
	} else {
		img, _, err = imaging.Open(path)
	}
	if err != nil {
		res.Error = err.Error()
		return res
	}

	b := img.Bounds()
	res.Width, res.Height = b.Dx(), b.Dy()
	if opts.MaxPixels > 0 && res.Width*res.Height > opts.MaxPixels {
		res.Error = fmt.Sprintf("%v: %dx%d exceeds %d pixels", ErrTooLarge, res.Width, res.Height, opts.MaxPixels)
		return res
	}

	hash, err := opts.Codec.Encode(imaging.ToPixelGrid(img, opts.MaxDimension), opts.XComponents, opts.YComponents)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Hash = hash
	return res
}

// Run encodes every path with a pool of opts.Workers goroutines. Results are
// returned in the order of paths. Once ctx is done no new files are
// started; files that never ran carry the context error. Each path is
// evicted from cache once encoded, so a run holds at most one decoded image
// per worker.
func Run(ctx context.Context, cache *imaging.ImageCache, paths []string, opts Options) []Result {
	results := make([]Result, len(paths))
	done := make([]bool, len(paths))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan int)
	var finished atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results[i] = EncodeFile(cache, paths[i], opts)
				if cache != nil {
					cache.Evict(paths[i])
				}
				done[i] = true
				n := finished.Add(1)
				if opts.Debug {
					if !results[i].OK() {
						log.Printf("batch: %s: %s", paths[i], results[i].Error)
					}
					log.Printf("batch: progress %d/%d", n, len(paths))
				}
			}
		}()
	}

dispatch:
	for i := range paths {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for i, ok := range done {
		if !ok {
			results[i] = Result{
				Path:        paths[i],
				XComponents: opts.XComponents,
				YComponents: opts.YComponents,
				Error:       context.Cause(ctx).Error(),
			}
		}
	}
	return results
}

// Sample returns at most the first n paths. n <= 0 keeps them all.
func Sample(paths []string, n int) []string {
	if n <= 0 || n >= len(paths) {
		return paths
	}
	return paths[:n]
}

// Summarize counts successful and failed results.
func Summarize(results []Result) (ok, failed int) {
	for _, r := range results {
		if r.OK() {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}
