package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/dividenconquer/blurhash-generator/internal/batch"
	"github.com/dividenconquer/blurhash-generator/internal/config"
	"github.com/dividenconquer/blurhash-generator/internal/imaging"
	"github.com/dividenconquer/blurhash-generator/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errUsage marks command line mistakes; the message has already been printed.
var errUsage = errors.New("usage error")

const usage = `blurhash-generator - create and decode BlurHash image placeholders

Usage:
  blurhash-generator [encode] [-x 4] [-y 3] [-max-size 64] <image>
  blurhash-generator decode [-width 32] [-height 32] [-punch 1] -o out.png <hash>
  blurhash-generator batch [-workers N] [-sample N] [-max-pixels N]
                           [-format text|json|cbor] [-o file[.zst]] <path>...
  blurhash-generator serve

Options:
  --version, -v    Print version information
  --help, -h       Print this help message

Environment variables:
  BLURHASH_X_COMPONENTS, BLURHASH_Y_COMPONENTS    Default component grid (4x3)
  BLURHASH_MAX_DIMENSION                          Longest side before encoding (64, 0 = full size)
  BLURHASH_MAX_PIXELS                             Batch size limit (10000000, 0 = no limit)
  BLURHASH_WORKERS                                Batch workers (number of CPUs)
  BLURHASH_PUNCH                                  Decode contrast (1.0)
  BLURHASH_GAMMA=srgb|2.2                         Transfer curve (srgb)
  BLURHASH_LOG_LEVEL=debug                        Enable debug logging

"serve" runs an MCP server over stdin/stdout. Configure it in your MCP
client to generate placeholders from an assistant.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "blurhash-generator %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return exitOK
		case "--help", "-h", "help":
			fmt.Fprint(stdout, usage)
			return exitOK
		}
	}

	// Configure logging to stderr (stdout is for results and MCP frames)
	log.SetOutput(stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: invalid configuration: %v\n", err)
		return exitFailure
	}
	if cfg.Debug {
		log.Printf("blurhash-generator v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "encode":
		err = runEncode(cfg, rest, stdout, stderr)
	case "decode":
		err = runDecode(cfg, rest, stderr)
	case "batch":
		err = runBatch(cfg, rest, stdout, stderr)
	case "serve":
		err = runServe(cfg, rest, stdin, stdout, stderr)
	default:
		err = runEncode(cfg, args, stdout, stderr)
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
}

// newFlagSet returns a flag set that reports to stderr and returns errors
// instead of exiting.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parse parses args and checks that exactly want positional arguments
// remain, or at least one when want is -1.
func parse(fs *flag.FlagSet, args []string, want int, what string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	n := fs.NArg()
	if (want < 0 && n == 0) || (want >= 0 && n != want) {
		fmt.Fprintf(fs.Output(), "%s: expected %s\n", fs.Name(), what)
		fs.Usage()
		return errUsage
	}
	return nil
}

func runEncode(cfg config.Config, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("encode", stderr)
	x := fs.Int("x", cfg.XComponents, "horizontal components (1-9)")
	y := fs.Int("y", cfg.YComponents, "vertical components (1-9)")
	maxSize := fs.Int("max-size", cfg.MaxDimension, "shrink the longest side to this many pixels before encoding (0 = full size)")
	if err := parse(fs, args, 1, "one image path"); err != nil {
		return err
	}

	img, _, err := imaging.Open(fs.Arg(0))
	if err != nil {
		return err
	}

	hash, err := cfg.Options().Encode(imaging.ToPixelGrid(img, *maxSize), *x, *y)
	if err != nil {
		return err
	}
	if cfg.Debug {
		log.Printf("encoded %s (%dx%d) with %dx%d components", fs.Arg(0), img.Bounds().Dx(), img.Bounds().Dy(), *x, *y)
	}

	_, err = fmt.Fprintln(stdout, hash)
	return err
}

func runDecode(cfg config.Config, args []string, stderr io.Writer) error {
	fs := newFlagSet("decode", stderr)
	width := fs.Int("width", cfg.DecodeWidth, "output width in pixels")
	height := fs.Int("height", cfg.DecodeHeight, "output height in pixels")
	punch := fs.Float64("punch", cfg.Punch, "contrast multiplier for the AC components")
	out := fs.String("o", "", "output file (.png, .jpg or .jpeg)")
	if err := parse(fs, args, 1, "one hash"); err != nil {
		return err
	}
	if *out == "" {
		fmt.Fprintln(stderr, "decode: -o is required")
		fs.Usage()
		return errUsage
	}
	if *punch <= 0 {
		return fmt.Errorf("punch %v must be positive", *punch)
	}

	opts := cfg.Options()
	opts.Punch = *punch
	grid, err := opts.Decode(fs.Arg(0), *width, *height)
	if err != nil {
		return err
	}
	return imaging.Save(*out, imaging.FromPixelGrid(grid))
}

func runBatch(cfg config.Config, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("batch", stderr)
	workers := fs.Int("workers", cfg.Workers, "number of concurrent encoders")
	format := fs.String("format", string(batch.FormatText), "manifest format: text, json or cbor")
	out := fs.String("o", "", "write the manifest to this file instead of stdout (.zst compresses it)")
	x := fs.Int("x", cfg.XComponents, "horizontal components (1-9)")
	y := fs.Int("y", cfg.YComponents, "vertical components (1-9)")
	maxSize := fs.Int("max-size", cfg.MaxDimension, "shrink the longest side to this many pixels before encoding (0 = full size)")
	maxPixels := fs.Int("max-pixels", cfg.MaxPixels, "skip images with more pixels than this (0 = no limit)")
	sample := fs.Int("sample", 0, "encode only the first N files found (0 = all)")
	if err := parse(fs, args, -1, "at least one file or directory"); err != nil {
		return err
	}

	f, err := batch.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(stderr, "batch: %v\n", err)
		return errUsage
	}

	paths, err := batch.Collect(fs.Args())
	if err != nil {
		return err
	}
	paths = batch.Sample(paths, *sample)
	if cfg.Debug {
		log.Printf("found %d files to encode", len(paths))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := batch.Run(ctx, nil, paths, batch.Options{
		XComponents:  *x,
		YComponents:  *y,
		MaxDimension: *maxSize,
		MaxPixels:    *maxPixels,
		Workers:      *workers,
		Codec:        cfg.Options(),
		Debug:        cfg.Debug,
	})

	if err := writeManifest(*out, stdout, results, f); err != nil {
		return err
	}

	ok, failed := batch.Summarize(results)
	if cfg.Debug || failed > 0 {
		log.Printf("encoded %d of %d files", ok, len(results))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// writeManifest writes results to path, or to stdout when path is empty.
// A .zst path is compressed.
func writeManifest(path string, stdout io.Writer, results []batch.Result, format batch.Format) error {
	if path == "" {
		return batch.WriteManifest(stdout, results, format)
	}
	w, err := batch.CreateManifestFile(path)
	if err != nil {
		return err
	}
	if err := batch.WriteManifest(w, results, format); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func runServe(cfg config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("serve", stderr)
	if err := parse(fs, args, 0, "no arguments"); err != nil {
		return err
	}

	server.Version = Version
	srv := server.New(cfg)
	if err := srv.Serve(stdin, stdout); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
