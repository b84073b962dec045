package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kindle/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*LogProcessor)(nil)

// LogProcessor implements sdktrace.SpanProcessor by writing a one line
// summary of every ended span to the debug log.
type LogProcessor struct {
	log ports.Logger
}

// NewLogProcessor returns a new LogProcessor.
func NewLogProcessor(log ports.Logger) *LogProcessor {
	return &LogProcessor{log: log}
}

// OnStart does nothing.
func (p *LogProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration, status and attributes.
func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if p.log == nil || !p.log.DebugEnabled() {
		return
	}
	if !s.SpanContext().IsValid() {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "span %s took %s", s.Name(), s.EndTime().Sub(s.StartTime()))
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		fmt.Fprintf(&b, " error=%q", desc)
	}
	for _, kv := range s.Attributes() {
		fmt.Fprintf(&b, " %s=%s", kv.Key, kv.Value.Emit())
	}
	p.log.Debug(b.String())
}

// ForceFlush does nothing.
func (p *LogProcessor) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (p *LogProcessor) Shutdown(context.Context) error {
	return nil
}

// NewProvider returns an SDK tracer provider that reports spans to log.
func NewProvider(log ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewLogProcessor(log)))
}
