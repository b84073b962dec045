// Package scheduler runs profile selection for every module of a workspace.
package scheduler

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"go.trai.ch/kindle/internal/adapters/problems" //nolint:depguard // Per-module problem sink
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/kindle/internal/engine/activation"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Scheduler selects the active profiles of the modules of a workspace
// concurrently. All modules share one Selector, and with it one activation
// cache.
type Scheduler struct {
	selector  *activation.Selector
	telemetry ports.Telemetry
	tracer    ports.Tracer
	log       ports.Logger

	mu     sync.RWMutex
	status map[string]domain.VertexStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	selector *activation.Selector,
	telemetry ports.Telemetry,
	tracer ports.Tracer,
	log ports.Logger,
) *Scheduler {
	return &Scheduler{
		selector:  selector,
		telemetry: telemetry,
		tracer:    tracer,
		log:       log,
		status:    make(map[string]domain.VertexStatus),
	}
}

// Run selects the profiles of every module of ws and returns one report per
// module, in workspace order. A parallelism below one means one worker per
// CPU. Reported problems do not fail the run; an invalid selection call does.
func (s *Scheduler) Run(
	ctx context.Context,
	ws *domain.Workspace,
	overrides domain.Overrides,
	parallelism int,
) ([]domain.ModuleReport, error) {
	names := make([]string, len(ws.Modules))
	for i, m := range ws.Modules {
		names[i] = m.Name
	}
	s.initStatuses(names)
	s.tracer.EmitPlan(ctx, names)

	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}

	reports := make([]domain.ModuleReport, len(ws.Modules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, m := range ws.Modules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := s.runModule(gctx, ws, m, overrides)
			reports[i] = report
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}

// Status returns the status of the named module in the last run.
func (s *Scheduler) Status(module string) domain.VertexStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status[module]
}

// Selector returns the selector shared by all modules.
func (s *Scheduler) Selector() *activation.Selector {
	return s.selector
}

func (s *Scheduler) initStatuses(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.status)
	for _, name := range names {
		s.status[name] = domain.VertexStatusPending
	}
}

func (s *Scheduler) updateStatus(name string, status domain.VertexStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[name] = status
}

func (s *Scheduler) runModule(
	ctx context.Context,
	ws *domain.Workspace,
	m *domain.Module,
	overrides domain.Overrides,
) (domain.ModuleReport, error) {
	report := domain.ModuleReport{Module: m.Name, ActiveProfiles: []string{}}
	s.updateStatus(m.Name, domain.VertexStatusRunning)

	ctx, vertex := s.telemetry.Record(ctx, m.Name)

	if len(m.Profiles) == 0 {
		report.Status = domain.VertexStatusSkipped
		s.updateStatus(m.Name, report.Status)
		vertex.Log(domain.LogLevelDebug, "no profiles declared")
		vertex.Complete(nil)
		return report, nil
	}

	sink := problems.NewCollector()
	sel, err := s.selector.Select(ctx, m.Profiles, ws.NewModuleContext(m, overrides), sink)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to select profiles"), "module", m.Name)
		report.Status = domain.VertexStatusFailed
		s.updateStatus(m.Name, report.Status)
		vertex.Complete(err)
		return report, err
	}

	report.ActiveProfiles = domain.ProfileIDs(sel.Active)
	report.Problems = sink.Problems()
	for _, p := range report.Problems {
		vertex.Log(p.Severity.LogLevel(), p.String())
	}
	_, _ = fmt.Fprintf(vertex.Stdout(), "active: %s\n", strings.Join(report.ActiveProfiles, ", "))

	switch {
	case sink.HasErrors():
		report.Status = domain.VertexStatusFailed
		vertex.Complete(zerr.With(zerr.Wrap(domain.ErrModuleProblems, "selection failed"), "module", m.Name))
	case sel.Misses == 0:
		report.Status = domain.VertexStatusCached
		vertex.Cached()
		vertex.Complete(nil)
	default:
		report.Status = domain.VertexStatusCompleted
		vertex.Complete(nil)
	}
	s.updateStatus(m.Name, report.Status)

	if s.log.DebugEnabled() {
		s.log.Debug(fmt.Sprintf("module %s: %d hits, %d misses", m.Name, sel.Hits, sel.Misses))
	}
	return report, nil
}
