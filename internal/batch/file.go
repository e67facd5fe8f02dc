package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ZstdExtension marks manifest files that are stored zstd-compressed.
const ZstdExtension = ".zst"

// IsCompressed reports whether path names a zstd-compressed manifest.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ZstdExtension)
}

type zstdFileWriter struct {
	*zstd.Encoder
	f *os.File
}

func (w *zstdFileWriter) Close() error {
	if err := w.Encoder.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

type zstdFileReader struct {
	*zstd.Decoder
	f *os.File
}

func (r *zstdFileReader) Close() error {
	r.Decoder.Close()
	return r.f.Close()
}

// CreateManifestFile creates path for a manifest. Paths ending in .zst are
// compressed with zstd; the caller must Close the writer to flush it.
func CreateManifestFile(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest: %w", err)
	}
	if !IsCompressed(path) {
		return f, nil
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderConcurrency(runtime.NumCPU()))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start compression: %w", err)
	}
	return &zstdFileWriter{Encoder: enc, f: f}, nil
}

// OpenManifestFile opens a manifest written by CreateManifestFile.
func OpenManifestFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	if !IsCompressed(path) {
		return f, nil
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start decompression: %w", err)
	}
	return &zstdFileReader{Decoder: dec, f: f}, nil
}
