// Package opfgo reads, writes and stores Optimum-Path Forest datasets.
//
// A dataset is a subgraph.Subgraph: a collection of labeled feature vectors
// that the OPF training and classification passes annotate with adjacency,
// forest linkage and density. This package is the IO front door for it.
//
// # Files
//
//	sg, err := opfgo.ReadFile("train.dat")
//	if err != nil { ... }
//	defer sg.Release()
//
//	protos, err := opfgo.ExtractPrototypes(sg)
//	err = opfgo.WriteFile("protos.dat.zst", protos)
//
// A .zst or .lz4 extension selects a zstd or LZ4 frame around the binary
// layout. WithCompression overrides the extension.
//
// # Repositories
//
// A Repository keeps datasets in a blobstore.Store (local directory, MinIO
// or S3):
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("opf/"))
//	repo := opfgo.NewRepository(store, opfgo.WithConcurrency(8))
//
//	err := repo.Save(ctx, "train.dat", sg)
//	all, err := repo.LoadAll(ctx, []string{"train.dat", "eval.dat"})
//
// # Observability
//
// WithLogger attaches a slog-based Logger and WithMetrics a MetricsCollector
// (see the metrics package for a Prometheus implementation). Both default to
// no-ops.
//
// # Resource limits
//
// WithController attaches a resource.Controller. Its memory budget bounds the
// node and feature storage of decoded datasets, its IO limit throttles blob
// transfers and its worker limit caps parallel loads.
package opfgo
