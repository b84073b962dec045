// Package progrock provides the Progrock implementation of the telemetry
// adapter. Every module processed in a run gets one vertex.
package progrock

import (
	"context"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/kindle/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu    sync.Mutex
	names map[string]int
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:     w,
		rec:   progrock.NewRecorder(w),
		names: make(map[string]int),
	}
}

// Record starts recording a new vertex. Recording the same name twice in one
// session yields distinct vertices.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	r.mu.Lock()
	n := r.names[name]
	r.names[name] = n + 1
	r.mu.Unlock()

	key := name
	if n > 0 {
		key = fmt.Sprintf("%s#%d", name, n)
	}
	v := r.rec.Vertex(digest.FromString(key), name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
