// Package app implements the application layer for kindle.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/kindle/internal/adapters/problems"
	"go.trai.ch/kindle/internal/adapters/watcher"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/kindle/internal/engine/activation"
	"go.trai.ch/kindle/internal/engine/scheduler"
	"go.trai.ch/kindle/internal/ui/report"
	"go.trai.ch/zerr"
)

// evalProfileID names the synthetic profile Eval evaluates scripts for.
const evalProfileID = "eval"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	evaluator    *activation.Evaluator
	logger       ports.Logger
	store        ports.RecordStore
	hasher       ports.Hasher
	watcher      ports.Watcher

	out            io.Writer
	debounceWindow time.Duration
	getwd          func() (string, error)
	environ        func() []string
	now            func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	evaluator *activation.Evaluator,
	log ports.Logger,
	store ports.RecordStore,
	hasher ports.Hasher,
	w ports.Watcher,
) *App {
	return &App{
		configLoader:   loader,
		scheduler:      sched,
		evaluator:      evaluator,
		logger:         log,
		store:          store,
		hasher:         hasher,
		watcher:        w,
		out:            os.Stdout,
		debounceWindow: watcher.DefaultDebounceWindow,
		getwd:          os.Getwd,
		environ:        os.Environ,
		now:            time.Now,
	}
}

// WithOutput sets the writer reports are printed to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithDebounceWindow sets how long Watch waits for changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// WithClock sets the clock used to timestamp activation records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

type levelSetter interface {
	SetLevel(level domain.LogLevel)
}

type jsonSetter interface {
	SetJSON(enable bool)
}

// ConfigureLogging switches the logger to debug level and JSON output when
// the logger supports it.
func (a *App) ConfigureLogging(verbose, jsonLogs bool) {
	if l, ok := a.logger.(levelSetter); ok && verbose {
		l.SetLevel(domain.LogLevelDebug)
	}
	if l, ok := a.logger.(jsonSetter); ok {
		l.SetJSON(jsonLogs)
	}
}

// Select loads the workspace, selects the active profiles of its modules and
// prints the reports. It returns an error wrapping domain.ErrModuleProblems
// when a module reported error problems.
func (a *App) Select(ctx context.Context, opts SelectOptions) error {
	_, reports, err := a.selectModules(ctx, opts)
	if err != nil {
		return err
	}
	if err := a.render(reports, opts.JSON); err != nil {
		return err
	}
	return checkReports(reports)
}

// Eval evaluates one activation script for a synthetic profile in the
// context of the module at opts.Dir, or of the bare directory when it is not
// part of a workspace.
func (a *App) Eval(_ context.Context, script string, opts EvalOptions) (*report.Evaluation, error) {
	dir, err := a.resolveDir(opts.Dir)
	if err != nil {
		return nil, err
	}
	actx, module, err := a.evalContext(dir, overrides(opts.Properties, opts.Profiles, opts.Trace))
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:     evalProfileID,
		Source: domain.SourceDescriptor,
		Activation: &domain.Activation{
			Property: &domain.ActivationProperty{
				Name:     domain.MarkerPropertyName,
				Value:    script,
				Location: domain.Location{File: "<command line>"},
			},
		},
	}

	sink := problems.NewCollector()
	result := a.evaluator.Evaluate(profile, actx, sink, script, a.traceFunc(opts.Trace))
	eval := &report.Evaluation{
		Script:       script,
		Module:       module,
		Active:       result.Active,
		Dependencies: result.Dependencies,
		Problems:     sink.Problems(),
	}

	if opts.JSON {
		err = report.WriteJSON(a.out, *eval)
	} else {
		err = report.NewPrinter(a.out).Evaluation(*eval)
	}
	if err != nil {
		return eval, zerr.Wrap(err, "failed to print evaluation")
	}
	return eval, nil
}

// Watch runs Select, then runs it again whenever a file of the workspace
// changes, until ctx is done. Problems reported by a run do not stop watching.
func (a *App) Watch(ctx context.Context, opts SelectOptions) error {
	ws, reports, err := a.selectModules(ctx, opts)
	if err != nil {
		return err
	}
	if err := a.render(reports, opts.JSON); err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, ws.Root); err != nil {
		return zerr.Wrap(err, "failed to start watching")
	}
	defer func() { _ = a.watcher.Stop() }()
	a.logger.Info("watching " + ws.Root + " for changes")

	var mu sync.Mutex
	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		a.logger.Info(fmt.Sprintf("%d changed paths, selecting profiles again", len(paths)))
		if a.logger.DebugEnabled() {
			a.logger.Debug("changed: " + strings.Join(paths, ", "))
		}
		_, reports, err := a.selectModules(ctx, opts)
		if err == nil {
			err = a.render(reports, opts.JSON)
		}
		if err != nil {
			a.logger.Error(err)
		}
	})
	defer debouncer.Stop()

	for event := range a.watcher.Events() {
		debouncer.Add(event.Path)
	}
	return nil
}

func (a *App) selectModules(
	ctx context.Context,
	opts SelectOptions,
) (*domain.Workspace, []domain.ModuleReport, error) {
	dir, err := a.resolveDir(opts.Dir)
	if err != nil {
		return nil, nil, err
	}
	ws, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}
	ws, err = filterModules(ws, opts.Modules)
	if err != nil {
		return nil, nil, err
	}

	reports, err := a.scheduler.Run(ctx, ws, overrides(opts.Properties, opts.Profiles, opts.Trace), opts.Parallelism)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "profile selection failed")
	}

	if opts.Record {
		if err := a.record(ws, reports); err != nil {
			return nil, nil, err
		}
	}
	return ws, reports, nil
}

// record stores the activation of every module and flags the reports whose
// activation differs from the stored one.
func (a *App) record(ws *domain.Workspace, reports []domain.ModuleReport) error {
	for i := range reports {
		r := &reports[i]
		m, ok := ws.Module(r.Module)
		if !ok {
			continue
		}

		fingerprint, err := a.hasher.ComputeActivationHash(m, r.ActiveProfiles)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to fingerprint activation"), "module", m.Name)
		}
		previous, err := a.store.Get(ws.Root, m.Name)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read activation record"), "module", m.Name)
		}

		r.Fingerprint = fingerprint
		r.Changed = previous == nil ||
			previous.Fingerprint != fingerprint ||
			!slices.Equal(previous.ActiveProfiles, r.ActiveProfiles)
		if !r.Changed {
			continue
		}

		err = a.store.Put(ws.Root, domain.ActivationRecord{
			Module:         m.Name,
			ActiveProfiles: r.ActiveProfiles,
			Fingerprint:    fingerprint,
			Timestamp:      a.now().UTC(),
		})
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to store activation record"), "module", m.Name)
		}
	}
	return nil
}

func (a *App) render(reports []domain.ModuleReport, asJSON bool) error {
	var err error
	if asJSON {
		err = report.WriteJSON(a.out, reports)
	} else {
		err = report.NewPrinter(a.out).Modules(reports)
	}
	if err != nil {
		return zerr.Wrap(err, "failed to print reports")
	}
	return nil
}

// evalContext builds the context Eval runs in. Inside a workspace the
// innermost module containing dir provides the project properties.
func (a *App) evalContext(dir string, o domain.Overrides) (*domain.Context, string, error) {
	ws, err := a.configLoader.Load(dir)
	switch {
	case errors.Is(err, domain.ErrWorkspaceNotFound):
	case err != nil:
		return nil, "", zerr.Wrap(err, "failed to load configuration")
	default:
		if m := innermostModule(ws, dir); m != nil {
			return ws.NewModuleContext(m, o), m.Name, nil
		}
		bare := &domain.Module{Dir: dir}
		return ws.NewModuleContext(bare, o), "", nil
	}

	ws = &domain.Workspace{Root: dir, SystemProperties: domain.HostProperties(a.environ())}
	return ws.NewModuleContext(&domain.Module{Dir: dir}, o), "", nil
}

func (a *App) traceFunc(trace bool) activation.Tracef {
	switch {
	case trace:
		return func(format string, args ...any) { a.logger.Info(fmt.Sprintf(format, args...)) }
	case a.logger.DebugEnabled():
		return func(format string, args ...any) { a.logger.Debug(fmt.Sprintf(format, args...)) }
	default:
		return nil
	}
}

func (a *App) resolveDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := a.getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to get working directory")
		}
		dir = cwd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve directory"), "dir", dir)
	}
	return abs, nil
}

func innermostModule(ws *domain.Workspace, dir string) *domain.Module {
	var best *domain.Module
	for _, m := range ws.Modules {
		rel, err := filepath.Rel(m.Dir, dir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if best == nil || len(m.Dir) > len(best.Dir) {
			best = m
		}
	}
	return best
}

func filterModules(ws *domain.Workspace, names []string) (*domain.Workspace, error) {
	if len(names) == 0 {
		return ws, nil
	}
	filtered := *ws
	filtered.Modules = make([]*domain.Module, 0, len(names))
	for _, name := range names {
		m, ok := ws.Module(name)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrModuleNotFound, "cannot select profiles"), "module", name)
		}
		filtered.Modules = append(filtered.Modules, m)
	}
	return &filtered, nil
}

func checkReports(reports []domain.ModuleReport) error {
	var failed []string
	for i := range reports {
		if reports[i].HasErrors() {
			failed = append(failed, reports[i].Module)
		}
	}
	if len(failed) > 0 {
		return zerr.With(zerr.Wrap(domain.ErrModuleProblems, "profile activation failed"),
			"modules", strings.Join(failed, ","))
	}
	return nil
}
