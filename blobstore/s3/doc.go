// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("indexes/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = db.Save(ctx, store, "docs.lvdb")
//	db, err = lunavdb.Open(ctx, store, "docs.lvdb")
//
// # Features
//
//   - Multipart uploads for large dumps
//   - CRC32C upload checksums
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
