package store

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/matzehuels/mulnet/pkg/pipeline"
)

// JSONLSink writes one JSON object per line.
type JSONLSink struct {
	mu  sync.Mutex
	w   io.WriteCloser
	enc *json.Encoder
}

// NewJSONLSink writes records to w and closes it on Close.
func NewJSONLSink(w io.WriteCloser) *JSONLSink {
	return &JSONLSink{w: w, enc: json.NewEncoder(w)}
}

// CreateJSONL opens path for appending, creating it if needed.
func CreateJSONL(path string) (*JSONLSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return NewJSONLSink(f), nil
}

// Write appends rec as one line.
func (s *JSONLSink) Write(_ context.Context, rec pipeline.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(rec)
}

// Close closes the underlying writer.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func stdout() io.Writer { return os.Stdout }

var _ Sink = (*JSONLSink)(nil)
