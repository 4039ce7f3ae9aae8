// Package compress wraps dataset streams in zstd or LZ4 frames.
//
// The frame carries the unchanged dataset layout; the compression type is
// chosen from the file extension (.zst, .lz4) or set explicitly.
package compress

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used.
type Type uint8

const (
	// None indicates a raw stream.
	None Type = iota
	// LZ4 indicates an LZ4 frame (fast, lower ratio).
	LZ4
	// Zstd indicates a zstd frame (better ratio).
	Zstd
)

// ErrUnknownType is returned for an unsupported compression type.
var ErrUnknownType = errors.New("compress: unknown type")

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Ext returns the file extension for t, including the dot.
func (t Type) Ext() string {
	switch t {
	case LZ4:
		return ".lz4"
	case Zstd:
		return ".zst"
	default:
		return ""
	}
}

// ParseType parses a compression name as accepted on the command line.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "", "none", "raw":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zst":
		return Zstd, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// TypeFromPath returns the compression type implied by the name's extension.
func TypeFromPath(name string) Type {
	switch strings.ToLower(path.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// TrimExt strips a compression extension from name, if present.
func TrimExt(name string) string {
	if TypeFromPath(name) == None {
		return name
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w so that written bytes are compressed with t.
//
// Close must be called to flush the frame; it does not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("compress: zstd writer: %w", err)
		}
		return enc, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
}

type zstdReadCloser struct{ *zstd.Decoder }

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// NewReader wraps r so that reads return the decompressed stream.
//
// Close releases decoder resources; it does not close r.
func NewReader(r io.Reader, t Type) (io.ReadCloser, error) {
	switch t {
	case None:
		return io.NopCloser(r), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Zstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("compress: zstd reader: %w", err)
		}
		return zstdReadCloser{dec}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
}
