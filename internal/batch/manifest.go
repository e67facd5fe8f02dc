package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Format selects the manifest encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat accepts "text", "json" or "cbor" in any case. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("unknown manifest format %q", s)
	}
}

// WriteManifest writes results to w.
//
// The text format has one line per file: "hash<TAB>path" on success and
// "error<TAB>path<TAB>message" on failure. The json format is an indented
// array of Result objects and cbor is the same array encoded as CBOR.
func WriteManifest(w io.Writer, results []Result, format Format) error {
	switch format {
	case FormatText, "":
		for _, r := range results {
			var err error
			if r.OK() {
				_, err = fmt.Fprintf(w, "%s\t%s\n", r.Hash, r.Path)
			} else {
				_, err = fmt.Fprintf(w, "error\t%s\t%s\n", r.Path, r.Error)
			}
			if err != nil {
				return fmt.Errorf("failed to write manifest: %w", err)
			}
		}
		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(nonNil(results)); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		return nil

	case FormatCBOR:
		data, err := cbor.Marshal(nonNil(results))
		if err != nil {
			return fmt.Errorf("failed to encode manifest: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown manifest format %q", format)
	}
}

// ReadManifest parses a json or cbor manifest written by WriteManifest.
func ReadManifest(r io.Reader, format Format) ([]Result, error) {
	var results []Result
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&results); err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
	case FormatCBOR:
		if err := cbor.NewDecoder(r).Decode(&results); err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("cannot read %q manifests", format)
	}
	return results, nil
}

// nonNil makes an empty run encode as [] rather than null.
func nonNil(results []Result) []Result {
	if results == nil {
		return []Result{}
	}
	return results
}
