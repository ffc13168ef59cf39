package sink

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"logzq/internal/services/retrieval/domain"
)

// NDJSON writes one document per line to w
type NDJSON struct {
	w io.Writer
	c io.Closer
}

// NewNDJSON wraps w. Close closes w only when owned is set
func NewNDJSON(w io.Writer, owned bool) *NDJSON {
	n := &NDJSON{w: w}
	if c, ok := w.(io.Closer); ok && owned {
		n.c = c
	}
	return n
}

func (n *NDJSON) Write(_ context.Context, _ Run, docs []domain.Document) (int, error) {
	bw := bufio.NewWriter(n.w)
	for i, d := range docs {
		if _, err := bw.WriteString(text(d)); err != nil {
			return i, fmt.Errorf("writing document: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return i, fmt.Errorf("writing document: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("flushing documents: %w", err)
	}
	return len(docs), nil
}

func (n *NDJSON) Close(context.Context) error {
	if n.c == nil {
		return nil
	}
	return n.c.Close()
}
