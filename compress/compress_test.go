package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("opf dataset payload "), 2048)

	for _, typ := range []Type{None, LZ4, Zstd} {
		t.Run(typ.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, typ)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if typ != None {
				assert.Less(t, buf.Len(), len(payload))
			}

			r, err := NewReader(&buf, typ)
			require.NoError(t, err)
			defer r.Close()
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestTruncatedFrame(t *testing.T) {
	payload := bytes.Repeat([]byte{1, 2, 3, 4}, 4096)
	var buf bytes.Buffer
	w, err := NewWriter(&buf, Zstd)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()[:buf.Len()/2]), Zstd)
	require.NoError(t, err)
	defer r.Close()
	_, err = io.ReadAll(r)
	assert.Error(t, err)
}

func TestTypeFromPath(t *testing.T) {
	assert.Equal(t, Zstd, TypeFromPath("train.dat.zst"))
	assert.Equal(t, Zstd, TypeFromPath("a/b/TRAIN.ZSTD"))
	assert.Equal(t, LZ4, TypeFromPath("s3/prefix/test.dat.lz4"))
	assert.Equal(t, None, TypeFromPath("train.dat"))
	assert.Equal(t, None, TypeFromPath("noext"))

	assert.Equal(t, "train.dat", TrimExt("train.dat.zst"))
	assert.Equal(t, "train.dat", TrimExt("train.dat"))
	assert.Equal(t, ".lz4", LZ4.Ext())
	assert.Equal(t, "", None.Ext())
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{"": None, "none": None, "LZ4": LZ4, "zstd": Zstd, "zst": Zstd} {
		got, err := ParseType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseType("gzip")
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = NewWriter(io.Discard, Type(9))
	assert.ErrorIs(t, err, ErrUnknownType)
	_, err = NewReader(bytes.NewReader(nil), Type(9))
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, "type(9)", Type(9).String())
}
