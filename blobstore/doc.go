// Package blobstore provides storage backends for dataset files.
//
// A Store holds named, immutable blobs. Datasets are written whole and read
// back either as a stream (ReadRange) or by offset (ReadAt).
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped reads, atomic writes
//   - MemoryStore: in-process map, for tests
//   - minio.Store: MinIO and S3-compatible servers
//   - s3.Store: Amazon S3 with multipart uploads
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Open must return an error matching ErrNotFound for a missing blob.
package blobstore
