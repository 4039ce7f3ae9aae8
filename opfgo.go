package opfgo

import (
	"context"
	"io"
	"time"

	"github.com/hupe1980/opfgo/compress"
	"github.com/hupe1980/opfgo/persistence"
	"github.com/hupe1980/opfgo/subgraph"
)

// ReadFile reads a binary dataset file.
//
// A .zst or .lz4 extension selects the matching container unless
// WithCompression is given. A file that cannot be opened yields an *IOError.
func ReadFile(path string, optFns ...Option) (*subgraph.Subgraph, error) {
	o := newOptions(optFns)
	return o.readFile(context.Background(), path, func(r io.Reader) (*subgraph.Subgraph, error) {
		return decodeStream(r, o.compressionFor(path), &o)
	})
}

// WriteFile writes sg to path in the binary layout.
//
// The file is replaced atomically. The subgraph is validated before the
// file is touched, so an invalid subgraph leaves any existing file intact.
func WriteFile(path string, sg *subgraph.Subgraph, optFns ...Option) error {
	o := newOptions(optFns)
	return o.writeFile(context.Background(), path, sg, func(w io.Writer) error {
		return encodeStream(w, sg, o.compressionFor(path))
	})
}

// ReadTextFile reads a dataset in the whitespace-separated text layout.
func ReadTextFile(path string, optFns ...Option) (*subgraph.Subgraph, error) {
	o := newOptions(optFns)
	return o.readFile(context.Background(), path, func(r io.Reader) (*subgraph.Subgraph, error) {
		cr, err := compress.NewReader(r, o.compressionFor(path))
		if err != nil {
			return nil, err
		}
		defer cr.Close()
		return subgraph.ReadText(cr, o.subgraphOptions()...)
	})
}

// WriteTextFile writes sg in the whitespace-separated text layout.
func WriteTextFile(path string, sg *subgraph.Subgraph, optFns ...Option) error {
	o := newOptions(optFns)
	return o.writeFile(context.Background(), path, sg, func(w io.Writer) error {
		cw, err := compress.NewWriter(w, o.compressionFor(path))
		if err != nil {
			return err
		}
		if err := subgraph.WriteText(cw, sg); err != nil {
			_ = cw.Close()
			return err
		}
		return cw.Close()
	})
}

// ExtractPrototypes returns a new subgraph holding a copy of every
// prototype (root node) of sg. The copy reserves memory against the
// controller sg was created with. See Subgraph.Prototypes.
func ExtractPrototypes(sg *subgraph.Subgraph, optFns ...Option) (*subgraph.Subgraph, error) {
	o := newOptions(optFns)
	start := time.Now()

	protos, err := sg.Prototypes()

	nodes, count := 0, 0
	if sg != nil {
		nodes = sg.Len()
	}
	if protos != nil {
		count = protos.Len()
	}
	o.logger.LogExtract(context.Background(), nodes, count, err)
	o.metrics.RecordExtract(count, time.Since(start), err)

	return protos, err
}

func (o *options) readFile(ctx context.Context, path string, decode func(io.Reader) (*subgraph.Subgraph, error)) (*subgraph.Subgraph, error) {
	start := time.Now()

	var sg *subgraph.Subgraph
	err := persistence.LoadFromFile(path, func(r io.Reader) error {
		var err error
		sg, err = decode(r)
		return err
	})
	err = translateError(err)

	if err != nil {
		o.logger.LogRead(ctx, path, 0, 0, 0, err)
		o.metrics.RecordRead(0, 0, time.Since(start), err)
		return nil, err
	}

	o.logger.LogRead(ctx, path, sg.Len(), sg.NumLabels, sg.NumFeatures, nil)
	o.metrics.RecordRead(sg.Len(), encodedSize(sg), time.Since(start), nil)
	return sg, nil
}

func (o *options) writeFile(ctx context.Context, path string, sg *subgraph.Subgraph, encode func(io.Writer) error) error {
	start := time.Now()

	var err error
	if sg == nil {
		err = subgraph.ErrNilSubgraph
	} else if err = sg.Validate(); err == nil {
		err = translateError(persistence.SaveToFile(path, encode))
	}

	if err != nil {
		o.logger.LogWrite(ctx, path, 0, 0, 0, err)
		o.metrics.RecordWrite(0, 0, time.Since(start), err)
		return err
	}

	o.logger.LogWrite(ctx, path, sg.Len(), sg.NumLabels, sg.NumFeatures, nil)
	o.metrics.RecordWrite(sg.Len(), encodedSize(sg), time.Since(start), nil)
	return nil
}

func decodeStream(r io.Reader, t compress.Type, o *options) (*subgraph.Subgraph, error) {
	cr, err := compress.NewReader(r, t)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	return subgraph.Decode(cr, o.subgraphOptions()...)
}

func encodeStream(w io.Writer, sg *subgraph.Subgraph, t compress.Type) error {
	cw, err := compress.NewWriter(w, t)
	if err != nil {
		return err
	}
	if err := subgraph.Encode(cw, sg); err != nil {
		_ = cw.Close()
		return err
	}
	return cw.Close()
}

func encodedSize(sg *subgraph.Subgraph) int64 {
	return persistence.EncodedSize(sg.Len(), sg.NumFeatures)
}
