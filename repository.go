package opfgo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/opfgo/blobstore"
	"github.com/hupe1980/opfgo/resource"
	"github.com/hupe1980/opfgo/subgraph"
	"golang.org/x/sync/errgroup"
)

// Repository stores datasets as named blobs in a blobstore.Store.
//
// The container format of each blob follows its name (.zst, .lz4) unless
// WithCompression is given. Transfers are throttled by the IO limit of the
// attached resource.Controller.
type Repository struct {
	store blobstore.Store
	opts  options
}

// NewRepository creates a Repository on top of store.
func NewRepository(store blobstore.Store, optFns ...Option) *Repository {
	return &Repository{
		store: store,
		opts:  newOptions(optFns),
	}
}

// Store returns the underlying blob store.
func (r *Repository) Store() blobstore.Store { return r.store }

// Save encodes sg and stores it under name, replacing any existing blob.
func (r *Repository) Save(ctx context.Context, name string, sg *subgraph.Subgraph) error {
	start := time.Now()
	n, err := r.save(ctx, name, sg)
	err = translateError(err)

	r.opts.logger.WithDataset(name).LogTransfer(ctx, "upload", n, time.Since(start), err)
	if err != nil {
		r.opts.metrics.RecordWrite(0, 0, time.Since(start), err)
		return err
	}
	r.opts.metrics.RecordWrite(sg.Len(), encodedSize(sg), time.Since(start), nil)
	return nil
}

func (r *Repository) save(ctx context.Context, name string, sg *subgraph.Subgraph) (int64, error) {
	if err := sg.Validate(); err != nil {
		return 0, err
	}

	w, err := r.store.Create(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("opfgo: create %s: %w", name, err)
	}

	rw := resource.NewRateLimitedWriter(ctx, w, r.opts.controller)
	if err := encodeStream(rw, sg, r.opts.compressionFor(name)); err != nil {
		_ = w.Abort()
		return rw.BytesWritten(), err
	}
	if err := w.Close(); err != nil {
		return rw.BytesWritten(), fmt.Errorf("opfgo: commit %s: %w", name, err)
	}
	return rw.BytesWritten(), nil
}

// Load reads the dataset stored under name.
// A missing blob yields an error matching ErrNotFound.
func (r *Repository) Load(ctx context.Context, name string) (*subgraph.Subgraph, error) {
	start := time.Now()
	sg, n, err := r.load(ctx, name)
	err = translateError(err)

	logger := r.opts.logger.WithDataset(name)
	logger.LogTransfer(ctx, "download", n, time.Since(start), err)
	if err != nil {
		r.opts.metrics.RecordRead(0, 0, time.Since(start), err)
		return nil, err
	}
	logger.LogRead(ctx, name, sg.Len(), sg.NumLabels, sg.NumFeatures, nil)
	r.opts.metrics.RecordRead(sg.Len(), encodedSize(sg), time.Since(start), nil)
	return sg, nil
}

func (r *Repository) load(ctx context.Context, name string) (*subgraph.Subgraph, int64, error) {
	blob, err := r.store.Open(ctx, name)
	if err != nil {
		return nil, 0, fmt.Errorf("opfgo: open %s: %w", name, err)
	}
	defer blob.Close()

	body, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, 0, fmt.Errorf("opfgo: read %s: %w", name, err)
	}
	defer body.Close()

	rr := resource.NewRateLimitedReader(ctx, body, r.opts.controller)
	sg, err := decodeStream(rr, r.opts.compressionFor(name), &r.opts)
	if err != nil {
		return nil, rr.BytesRead(), fmt.Errorf("opfgo: decode %s: %w", name, err)
	}
	return sg, rr.BytesRead(), nil
}

// LoadAll loads the named datasets in parallel and returns them in the
// order of names.
//
// At most WithConcurrency datasets are decoded at once, further bounded by
// the worker limit of the attached controller. On the first failure the
// remaining loads are canceled and every dataset already decoded is released.
func (r *Repository) LoadAll(ctx context.Context, names []string) ([]*subgraph.Subgraph, error) {
	out := make([]*subgraph.Subgraph, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.concurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := r.opts.controller.AcquireWorker(gctx); err != nil {
				return err
			}
			defer r.opts.controller.ReleaseWorker()

			sg, err := r.Load(gctx, name)
			if err != nil {
				return err
			}
			out[i] = sg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, sg := range out {
			sg.Release()
		}
		return nil, err
	}
	return out, nil
}

// List returns the names of stored blobs with the given prefix.
func (r *Repository) List(ctx context.Context, prefix string) ([]string, error) {
	return r.store.List(ctx, prefix)
}

// Delete removes the dataset stored under name.
func (r *Repository) Delete(ctx context.Context, name string) error {
	return r.store.Delete(ctx, name)
}
