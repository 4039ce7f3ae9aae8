// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("opf/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	repo := opfgo.NewRepository(store)
//
// Reads use ranged GETs, writes stream through the SDK's multipart
// uploader, and listings follow ListObjectsV2 pagination.
package s3
