package batch

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dividenconquer/blurhash-generator/internal/blurhash"
	"github.com/dividenconquer/blurhash-generator/internal/imaging"
)

// writePNG writes a solid width x height PNG to path.
func writePNG(t *testing.T, path string, width, height int, c color.Color) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

func defaultOptions() Options {
	return Options{XComponents: 4, YComponents: 3, MaxDimension: 64, Workers: 2}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 2, 2, color.White)
	writePNG(t, filepath.Join(dir, "sub", "a.png"), 2, 2, color.White)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	explicit := filepath.Join(dir, "notes.txt")

	got, err := Collect([]string{dir, explicit, filepath.Join(dir, "b.png")})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "sub", "a.png"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCollect_Missing(t *testing.T) {
	if _, err := Collect([]string{filepath.Join(t.TempDir(), "nope.png")}); err == nil {
		t.Error("Collect should fail for a missing path")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	colors := []color.RGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}}
	var paths []string
	for i, c := range colors {
		p := filepath.Join(dir, string(rune('a'+i))+".png")
		writePNG(t, p, 20, 10, c)
		paths = append(paths, p)
	}
	paths = append(paths, filepath.Join(dir, "missing.png"))

	results := Run(context.Background(), imaging.NewImageCache(), paths, defaultOptions())
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}

	for i, c := range colors {
		r := results[i]
		if r.Path != paths[i] {
			t.Errorf("result %d: path %s, want %s", i, r.Path, paths[i])
		}
		if !r.OK() {
			t.Errorf("result %d failed: %s", i, r.Error)
			continue
		}
		if r.Width != 20 || r.Height != 10 || r.XComponents != 4 || r.YComponents != 3 {
			t.Errorf("result %d: got %+v", i, r)
		}

		grid := blurhash.NewPixelGrid(20, 10)
		for j := range grid.Pix {
			grid.Pix[j] = blurhash.RGBFrom255(c.R, c.G, c.B)
		}
		want, err := blurhash.Encode(grid, 4, 3)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if r.Hash != want {
			t.Errorf("result %d: hash %s, want %s", i, r.Hash, want)
		}
	}

	if last := results[3]; last.OK() || last.Hash != "" {
		t.Errorf("missing file: got %+v, want an error", last)
	}

	ok, failed := Summarize(results)
	if ok != 3 || failed != 1 {
		t.Errorf("Summarize: got %d ok %d failed", ok, failed)
	}
}

func TestRun_EvictsCache(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 20; i++ {
		p := filepath.Join(dir, fmt.Sprintf("img%02d.png", i))
		writePNG(t, p, 8, 8, color.Gray{uint8(i * 10)})
		paths = append(paths, p)
	}

	cache := imaging.NewImageCache()
	opts := defaultOptions()
	opts.Workers = 4
	results := Run(context.Background(), cache, paths, opts)

	if ok, failed := Summarize(results); ok != len(paths) || failed != 0 {
		t.Fatalf("Summarize: got %d ok %d failed", ok, failed)
	}
	if n := cache.Len(); n != 0 {
		t.Errorf("cache holds %d images after Run, want 0", n)
	}
}

func TestRun_MoreWorkersThanFiles(t *testing.T) {
	p := filepath.Join(t.TempDir(), "one.png")
	writePNG(t, p, 4, 4, color.Gray{128})

	opts := defaultOptions()
	opts.Workers = 16
	results := Run(context.Background(), nil, []string{p}, opts)
	if len(results) != 1 || !results[0].OK() {
		t.Fatalf("got %+v", results)
	}
	if x, y, err := blurhash.ComponentCount(results[0].Hash); err != nil || x != 4 || y != 3 {
		t.Errorf("components: got %dx%d (%v)", x, y, err)
	}
}

func TestRun_Empty(t *testing.T) {
	if results := Run(context.Background(), nil, nil, defaultOptions()); len(results) != 0 {
		t.Errorf("got %d results, want none", len(results))
	}
}

func TestRun_Canceled(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, string(rune('a'+i))+".png")
		writePNG(t, p, 4, 4, color.White)
		paths = append(paths, p)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, nil, paths, defaultOptions())
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d: path %s", i, r.Path)
		}
		if r.OK() || !strings.Contains(r.Error, context.Canceled.Error()) {
			t.Errorf("result %d: got %+v, want canceled", i, r)
		}
	}
}

func TestEncodeFile_InvalidComponents(t *testing.T) {
	p := filepath.Join(t.TempDir(), "img.png")
	writePNG(t, p, 4, 4, color.White)

	opts := defaultOptions()
	opts.XComponents = 10
	if r := EncodeFile(nil, p, opts); r.OK() {
		t.Errorf("got %+v, want an error", r)
	}
}

func TestEncodeFile_TooLarge(t *testing.T) {
	p := filepath.Join(t.TempDir(), "big.png")
	writePNG(t, p, 20, 10, color.White)

	opts := defaultOptions()
	opts.MaxPixels = 199
	r := EncodeFile(nil, p, opts)
	if r.OK() || !strings.Contains(r.Error, ErrTooLarge.Error()) {
		t.Errorf("got %+v, want a too-large error", r)
	}
	if r.Width != 20 || r.Height != 10 {
		t.Errorf("size should still be reported, got %dx%d", r.Width, r.Height)
	}

	opts.MaxPixels = 200
	if r := EncodeFile(nil, p, opts); !r.OK() {
		t.Errorf("image at the limit should encode: %s", r.Error)
	}
}

func TestSample(t *testing.T) {
	paths := []string{"a", "b", "c"}

	tests := []struct {
		n    int
		want []string
	}{
		{0, paths},
		{-1, paths},
		{2, []string{"a", "b"}},
		{3, paths},
		{10, paths},
	}
	for _, tt := range tests {
		if got := Sample(paths, tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Sample(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}
