package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

var byteOrder = binary.LittleEndian

// BinaryWriter writes fixed-width fields in dataset byte order.
type BinaryWriter struct {
	w       io.Writer
	scratch []byte
	n       int64
}

// NewBinaryWriter creates a new binary writer.
func NewBinaryWriter(w io.Writer) *BinaryWriter {
	return &BinaryWriter{
		w:       w,
		scratch: make([]byte, 0, 64),
	}
}

// BytesWritten returns the number of bytes written so far.
func (bw *BinaryWriter) BytesWritten() int64 { return bw.n }

// WriteInt32s writes the values back to back with a single Write call.
func (bw *BinaryWriter) WriteInt32s(vals ...int32) error {
	buf := bw.grow(len(vals) * Int32Size)
	for i, v := range vals {
		byteOrder.PutUint32(buf[i*Int32Size:], uint32(v))
	}
	return bw.write(buf)
}

// WriteRecord writes two integers followed by vec with a single Write call.
func (bw *BinaryWriter) WriteRecord(a, b int32, vec []float32) error {
	buf := bw.grow(NodePrefixSize + len(vec)*Float32Size)
	byteOrder.PutUint32(buf[0:], uint32(a))
	byteOrder.PutUint32(buf[Int32Size:], uint32(b))
	off := NodePrefixSize
	for _, v := range vec {
		byteOrder.PutUint32(buf[off:], math.Float32bits(v))
		off += Float32Size
	}
	return bw.write(buf)
}

func (bw *BinaryWriter) grow(n int) []byte {
	if cap(bw.scratch) < n {
		bw.scratch = make([]byte, n)
	}
	return bw.scratch[:n]
}

func (bw *BinaryWriter) write(p []byte) error {
	n, err := bw.w.Write(p)
	bw.n += int64(n)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	return err
}

// BinaryReader reads fixed-width fields in dataset byte order.
//
// Reads fail with io.EOF when no byte of a field was available and with
// io.ErrUnexpectedEOF when a field was cut short.
type BinaryReader struct {
	r       io.Reader
	scratch []byte
	n       int64
}

// NewBinaryReader creates a new binary reader.
func NewBinaryReader(r io.Reader) *BinaryReader {
	return &BinaryReader{
		r:       r,
		scratch: make([]byte, 0, 64),
	}
}

// BytesRead returns the number of bytes consumed so far.
func (br *BinaryReader) BytesRead() int64 { return br.n }

// ReadInt32 reads a single 4-byte signed integer.
func (br *BinaryReader) ReadInt32() (int32, error) {
	var b [Int32Size]byte
	if err := br.read(b[:]); err != nil {
		return 0, err
	}
	return int32(byteOrder.Uint32(b[:])), nil
}

// ReadFloat32SliceInto fills vec with consecutive 4-byte floats.
func (br *BinaryReader) ReadFloat32SliceInto(vec []float32) error {
	if len(vec) == 0 {
		return nil
	}
	if cap(br.scratch) < len(vec)*Float32Size {
		br.scratch = make([]byte, len(vec)*Float32Size)
	}
	buf := br.scratch[:len(vec)*Float32Size]
	if err := br.read(buf); err != nil {
		return err
	}
	for i := range vec {
		vec[i] = math.Float32frombits(byteOrder.Uint32(buf[i*Float32Size:]))
	}
	return nil
}

func (br *BinaryReader) read(p []byte) error {
	n, err := io.ReadFull(br.r, p)
	br.n += int64(n)
	return err
}

// OpenError reports that a dataset file could not be opened in the requested mode.
type OpenError struct {
	Path string
	Mode string // "read" or "write"
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s for %s: %v", e.Path, e.Mode, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SaveToFile writes a file atomically: data goes to a temp file in the same
// directory which is synced and renamed over filename.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return &OpenError{Path: filename, Mode: "write", Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}

// LoadFromFile opens filename and passes a buffered reader to readFunc.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return &OpenError{Path: filename, Mode: "read", Err: err}
	}
	defer f.Close()

	return readFunc(bufio.NewReaderSize(f, 256*1024))
}
