package persistence

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryFormat_WriteRead(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinaryWriter(&buf)

	require.NoError(t, w.WriteInt32s(2, 1, 3))
	require.NoError(t, w.WriteRecord(10, -1, []float32{1.5, -2.25, float32(math.Inf(1))}))
	require.NoError(t, w.WriteInt32s(7))
	require.NoError(t, w.WriteRecord(0, 0, nil))

	assert.Equal(t, int64(HeaderSize+NodeSize(3)+Int32Size+NodeSize(0)), w.BytesWritten())
	assert.Equal(t, int64(buf.Len()), w.BytesWritten())

	r := NewBinaryReader(&buf)
	for _, want := range []int32{2, 1, 3, 10, -1} {
		got, err := r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	vec := make([]float32, 3)
	require.NoError(t, r.ReadFloat32SliceInto(vec))
	assert.Equal(t, []float32{1.5, -2.25, float32(math.Inf(1))}, vec)

	for _, want := range []int32{7, 0, 0} {
		got, err := r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	require.NoError(t, r.ReadFloat32SliceInto(nil))

	_, err := r.ReadInt32()
	assert.ErrorIs(t, err, io.EOF)
}

func TestBinaryFormat_LittleEndian(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinaryWriter(&buf)
	require.NoError(t, w.WriteRecord(1, 2, []float32{1.0}))

	assert.Equal(t, []byte{
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x80, 0x3f,
	}, buf.Bytes())
}

func TestBinaryReader_ShortField(t *testing.T) {
	r := NewBinaryReader(bytes.NewReader([]byte{1, 2}))
	_, err := r.ReadInt32()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, int64(2), r.BytesRead())

	r = NewBinaryReader(bytes.NewReader([]byte{0, 0, 0, 0, 1}))
	vec := make([]float32, 2)
	assert.ErrorIs(t, r.ReadFloat32SliceInto(vec), io.ErrUnexpectedEOF)
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestBinaryWriter_ShortWrite(t *testing.T) {
	w := NewBinaryWriter(shortWriter{})
	assert.ErrorIs(t, w.WriteInt32s(1), io.ErrShortWrite)
}

func TestEncodedSize(t *testing.T) {
	assert.Equal(t, 8, NodeSize(0))
	assert.Equal(t, 16, NodeSize(2))
	assert.Equal(t, int64(12+3*16), EncodedSize(3, 2))
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.opf")

	err := SaveToFile(path, func(w io.Writer) error {
		bw := NewBinaryWriter(w)
		return bw.WriteRecord(5, 1, []float32{1.1, 2.2, 3.3, 4.4})
	})
	require.NoError(t, err)

	var loaded []float32
	err = LoadFromFile(path, func(r io.Reader) error {
		br := NewBinaryReader(r)
		if _, err := br.ReadInt32(); err != nil {
			return err
		}
		if _, err := br.ReadInt32(); err != nil {
			return err
		}
		loaded = make([]float32, 4)
		return br.ReadFloat32SliceInto(loaded)
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{1.1, 2.2, 3.3, 4.4}, loaded)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveToFile_WriteFuncErrorKeepsTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.opf")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	boom := errors.New("boom")
	err := SaveToFile(path, func(io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpenErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.opf")
	err := LoadFromFile(missing, func(io.Reader) error { return nil })

	var oe *OpenError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "read", oe.Mode)
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = SaveToFile(filepath.Join(missing, "nested", "x.opf"), func(io.Writer) error { return nil })
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "write", oe.Mode)
}
