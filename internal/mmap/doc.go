// Package mmap maps dataset files read-only into memory.
//
// A Mapping exposes the file as an io.ReaderAt so a decoder can stream the
// records without copying the whole file through a read buffer first.
//
//	m, err := mmap.Open("train.dat")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AccessSequential)
//	sg, err := subgraph.Decode(io.NewSectionReader(m, 0, int64(m.Size())))
//
// Unix systems use mmap(2) with madvise(2) hints. Windows uses
// CreateFileMapping/MapViewOfFile and ignores hints.
//
// Close is idempotent. Callers must not touch Bytes() after Close returns.
package mmap
