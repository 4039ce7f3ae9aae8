package subgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteText writes sg as whitespace-separated text: a header line with the
// node, label and feature counts, then one line per node holding position,
// true label and features. Floats use the shortest representation that reads
// back to the same float32.
func WriteText(w io.Writer, sg *Subgraph) error {
	if sg == nil {
		return ErrNilSubgraph
	}
	if _, err := sg.encodeHeader(); err != nil {
		return err
	}
	if err := sg.validateFeatures(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", len(sg.Nodes), sg.NumLabels, sg.NumFeatures); err != nil {
		return err
	}

	line := make([]byte, 0, 256)
	for i := range sg.Nodes {
		node := &sg.Nodes[i]
		line = line[:0]
		line = strconv.AppendInt(line, int64(node.Position), 10)
		line = append(line, ' ')
		line = strconv.AppendInt(line, int64(node.TrueLabel), 10)
		for _, v := range node.Features {
			line = append(line, ' ')
			line = strconv.AppendFloat(line, float64(v), 'g', -1, 32)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type tokenReader struct {
	sc *bufio.Scanner
}

func (t *tokenReader) next() (string, error) {
	if t.sc.Scan() {
		return t.sc.Text(), nil
	}
	if err := t.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (t *tokenReader) int() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, tok)
	}
	return int(v), nil
}

func (t *tokenReader) float() (float32, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, tok)
	}
	return float32(v), nil
}

// ReadText reads a subgraph written by WriteText. Line breaks are not
// significant; values are read as a stream of whitespace-separated tokens.
func ReadText(r io.Reader, opts ...Option) (*Subgraph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	tr := &tokenReader{sc: sc}

	var counts [3]int
	for i, field := range [3]string{"node count", "label count", "feature count"} {
		v, err := tr.int()
		if err != nil {
			return nil, headerError(field, err)
		}
		counts[i] = v
	}
	if err := checkHeader("node count", int32(counts[0]), MaxNodeCount); err != nil {
		return nil, err
	}
	if err := checkHeader("label count", int32(counts[1]), -1); err != nil {
		return nil, err
	}
	if err := checkHeader("feature count", int32(counts[2]), MaxFeatureCount); err != nil {
		return nil, err
	}

	total := counts[0]
	sg, err := newDecoding(total, opts)
	if err != nil {
		return nil, err
	}
	sg.NumLabels = counts[1]
	sg.NumFeatures = counts[2]

	for range total {
		i, err := sg.appendNode(total)
		if err == nil {
			err = sg.readTextNode(tr, i)
		}
		if err != nil {
			sg.Release()
			return nil, err
		}
	}
	if err := sg.finishDecoding(); err != nil {
		sg.Release()
		return nil, err
	}
	return sg, nil
}

func (sg *Subgraph) readTextNode(tr *tokenReader, i int) error {
	node := &sg.Nodes[i]

	pos, err := tr.int()
	if err != nil {
		return bodyError(i, "position", err)
	}
	label, err := tr.int()
	if err != nil {
		return bodyError(i, "true label", err)
	}
	node.Position = pos
	node.TrueLabel = label

	feat, err := sg.AllocFeatures(i)
	if err != nil {
		return err
	}
	for j := range feat {
		if feat[j], err = tr.float(); err != nil {
			return bodyError(i, "features", err)
		}
	}
	return nil
}
