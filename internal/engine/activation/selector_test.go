package activation_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/kindle/internal/adapters/fs"
	"go.trai.ch/kindle/internal/adapters/interp"
	"go.trai.ch/kindle/internal/adapters/problems"
	"go.trai.ch/kindle/internal/adapters/telemetry"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/kindle/internal/core/ports/mocks"
	"go.trai.ch/kindle/internal/engine/activation"
	"go.uber.org/mock/gomock"
)

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().DebugEnabled().Return(false).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

func newSelector(log ports.Logger, chain ...ports.ProfileActivator) *activation.Selector {
	return activation.NewSelector(newEvaluator(), fs.NewFileSystem(), chain, log, telemetry.NewNoOpTracer())
}

func TestSelector_RequiresContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newSelector(quietLogger(ctrl))

	_, err := s.Select(t.Context(), nil, nil, problems.NewCollector())

	require.ErrorIs(t, err, domain.ErrNilContext)
}

func TestSelector_RejectsDuplicateIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newSelector(quietLogger(ctrl))
	profiles := []*domain.Profile{scriptProfile("a", "file(x)"), scriptProfile("a", "file(y)")}

	_, err := s.Select(t.Context(), profiles, projectContext(t.TempDir(), nil), problems.NewCollector())

	require.ErrorIs(t, err, domain.ErrDuplicateProfile)
	assert.Zero(t, s.Stats().Calls)
}

func TestSelector_SelectsScriptedProfiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "marker"))

	s := newSelector(quietLogger(ctrl))
	profiles := []*domain.Profile{
		scriptProfile("a", "file(marker)"),
		scriptProfile("b", "property(env)"),
		{ID: "plain", Source: domain.SourceDescriptor},
		scriptProfile("c", "missing(other)"),
	}

	sel, err := s.Select(t.Context(), profiles, projectContext(dir, nil), problems.NewCollector())

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, domain.ProfileIDs(sel.Active))
	assert.Zero(t, sel.Hits)
	assert.Equal(t, 4, sel.Misses)
	assert.True(t, sel.Revalidation.Checked)
}

func TestSelector_SkipProperty(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "marker"))

	s := newSelector(quietLogger(ctrl))
	profiles := []*domain.Profile{scriptProfile("foo", "file(marker)")}

	sel, err := s.Select(t.Context(), profiles, projectContext(dir, map[string]string{"skipfoo": "true"}), problems.NewCollector())

	require.NoError(t, err)
	assert.Empty(t, sel.Active)
}

func TestSelector_SameContextTrustsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	s := newSelector(quietLogger(ctrl))
	profiles := []*domain.Profile{scriptProfile("a", "file(marker)")}
	ctx := projectContext(dir, nil)

	first, err := s.Select(t.Context(), profiles, ctx, problems.NewCollector())
	require.NoError(t, err)
	assert.Empty(t, first.Active)

	touch(t, filepath.Join(dir, "marker"))

	second, err := s.Select(t.Context(), profiles, ctx, problems.NewCollector())
	require.NoError(t, err)
	assert.Empty(t, second.Active)
	assert.False(t, second.Revalidation.Checked)
	assert.Equal(t, 1, second.Hits)
	assert.Zero(t, second.Misses)
}

func TestSelector_NewContextRevalidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	s := newSelector(quietLogger(ctrl))
	profiles := []*domain.Profile{
		scriptProfile("a", "file(marker)"),
		scriptProfile("b", "property(!env)"),
	}

	first, err := s.Select(t.Context(), profiles, projectContext(dir, nil), problems.NewCollector())
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, domain.ProfileIDs(first.Active))

	unchanged, err := s.Select(t.Context(), profiles, projectContext(dir, nil), problems.NewCollector())
	require.NoError(t, err)
	assert.True(t, unchanged.Revalidation.Checked)
	assert.False(t, unchanged.Revalidation.Cleared())
	assert.Equal(t, 2, unchanged.Hits)

	touch(t, filepath.Join(dir, "marker"))

	flipped, err := s.Select(t.Context(), profiles, projectContext(dir, nil), problems.NewCollector())
	require.NoError(t, err)
	assert.True(t, flipped.Revalidation.Cleared())
	assert.Equal(t, domain.FileExistence{Path: filepath.Join(dir, "marker")}, flipped.Revalidation.Failed)
	assert.Equal(t, []string{"a", "b"}, domain.ProfileIDs(flipped.Active))
	assert.Equal(t, 2, flipped.Misses)

	stats := s.Stats()
	assert.Equal(t, 3, stats.Calls)
	assert.Equal(t, 3, stats.Revalidations)
	assert.Equal(t, 1, stats.Clears)
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 4, stats.Misses)
}

func TestSelector_PropertyChangeClearsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	s := newSelector(quietLogger(ctrl))
	profiles := []*domain.Profile{scriptProfile("dev", "property(env=dev)")}

	sel, err := s.Select(t.Context(), profiles, projectContext(dir, map[string]string{"env": "dev"}), problems.NewCollector())
	require.NoError(t, err)
	assert.Len(t, sel.Active, 1)

	sel, err = s.Select(t.Context(), profiles, projectContext(dir, map[string]string{"env": "prod"}), problems.NewCollector())
	require.NoError(t, err)
	assert.True(t, sel.Revalidation.Cleared())
	assert.Empty(t, sel.Active)
}

func TestSelector_UserPropertyAppearingClearsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	s := newSelector(quietLogger(ctrl))
	profiles := []*domain.Profile{scriptProfile("ci", "property(!ci)")}

	sel, err := s.Select(t.Context(), profiles, projectContext(dir, nil), problems.NewCollector())
	require.NoError(t, err)
	assert.Equal(t, []string{"ci"}, domain.ProfileIDs(sel.Active))

	sel, err = s.Select(t.Context(), profiles, projectContext(dir, map[string]string{"ci": "true"}), problems.NewCollector())
	require.NoError(t, err)
	assert.True(t, sel.Revalidation.Cleared())
	assert.Empty(t, sel.Active)
}

func TestSelector_SkipPropertyInLaterContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "src", "main.go"))
	s := newSelector(quietLogger(ctrl))
	profiles := []*domain.Profile{scriptProfile("foo", "file(src)")}

	sel, err := s.Select(t.Context(), profiles, projectContext(dir, nil), problems.NewCollector())
	require.NoError(t, err)
	assert.Equal(t, []string{"foo"}, domain.ProfileIDs(sel.Active))

	skipped := projectContext(dir, map[string]string{"skipfoo": "true"})
	sel, err = s.Select(t.Context(), profiles, skipped, problems.NewCollector())
	require.NoError(t, err)
	assert.True(t, sel.Revalidation.Cleared())
	assert.Empty(t, sel.Active)

	fresh, err := newSelector(quietLogger(ctrl)).Select(t.Context(), profiles, skipped, problems.NewCollector())
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileIDs(fresh.Active), domain.ProfileIDs(sel.Active))
}

func TestSelector_ResolutionFailureNeverTrusted(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newSelector(quietLogger(ctrl))
	profiles := []*domain.Profile{scriptProfile("a", "file(${basedir}/x)")}

	sink := problems.NewCollector()
	_, err := s.Select(t.Context(), profiles, projectContext("", nil), sink)
	require.NoError(t, err)
	assert.Equal(t, 1, sink.Len())
	assert.Contains(t, s.CacheDependencies(), domain.Dependency(domain.AlwaysFails{}))

	sel, err := s.Select(t.Context(), profiles, projectContext("", nil), problems.NewCollector())
	require.NoError(t, err)
	assert.True(t, sel.Revalidation.Cleared())
	assert.Equal(t, 1, sel.Misses)
}

func TestSelector_DebugPropertyTracesAtInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "marker"))

	var mu sync.Mutex
	var infos []string
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().DebugEnabled().Return(false).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		infos = append(infos, msg)
	}).AnyTimes()

	s := newSelector(log)
	ctx := domain.NewContext(domain.ContextSpec{
		ProjectDir:       dir,
		SystemProperties: map[string]string{domain.DebugProperty: "true"},
	})

	_, err := s.Select(t.Context(), []*domain.Profile{scriptProfile("a", "file(marker)")}, ctx, problems.NewCollector())
	require.NoError(t, err)

	joined := strings.Join(infos, "\n")
	assert.Contains(t, joined, "select([a])")
	assert.Contains(t, joined, "resolving and(not(property(skipa=true)), file(marker))")
	assert.Contains(t, joined, "activating profile a")
	assert.Contains(t, joined, "activated profiles: a")
}

func TestSelector_QuietWithoutDebug(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().DebugEnabled().Return(false).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).Times(1)

	s := newSelector(log)
	_, err := s.Select(t.Context(), []*domain.Profile{scriptProfile("a", "property(x)")}, projectContext(t.TempDir(), nil), problems.NewCollector())
	require.NoError(t, err)
	_, err = s.Select(t.Context(), []*domain.Profile{scriptProfile("a", "property(x)")}, projectContext(t.TempDir(), nil), problems.NewCollector())
	require.NoError(t, err)
}

func TestSelector_SpanAttributes(t *testing.T) {
	ctrl := gomock.NewController(t)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	s := activation.NewSelector(newEvaluator(), fs.NewFileSystem(), nil, quietLogger(ctrl),
		telemetry.NewOTelTracerWithProvider(tp, "test"))
	profiles := []*domain.Profile{scriptProfile("a", "property(env)"), scriptProfile("b", "file(x)")}

	_, err := s.Select(t.Context(), profiles, projectContext(t.TempDir(), nil), problems.NewCollector())
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "activation.select", spans[0].Name())
	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(2), attrs["profiles"].AsInt64())
	assert.Equal(t, int64(2), attrs["cache.misses"].AsInt64())
	assert.Equal(t, int64(2), attrs["cache.inactive"].AsInt64())
	assert.False(t, attrs["cache.cleared"].AsBool())
}

func TestSelector_PanicIsLoggedAndPropagated(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().DebugEnabled().Return(false).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).Times(1)

	broken := activation.NewEvaluator(nil, activation.NewResolver(interp.New(), fs.NewPathTranslator()))
	s := activation.NewSelector(broken, fs.NewFileSystem(), nil, log, telemetry.NewNoOpTracer())

	assert.Panics(t, func() {
		_, _ = s.Select(t.Context(), []*domain.Profile{scriptProfile("a", "file(x)")},
			projectContext(t.TempDir(), nil), problems.NewCollector())
	})

	// The lock is released after the panic.
	_, err := s.Select(t.Context(), nil, projectContext(t.TempDir(), nil), problems.NewCollector())
	require.NoError(t, err)
}

func TestSelector_ConcurrentCallsAreSerialized(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	s := newSelector(quietLogger(ctrl))

	var wg sync.WaitGroup
	for i := range 16 {
		dir := filepath.Join(root, string(rune('a'+i)))
		require.NoError(t, os.MkdirAll(dir, 0o750))
		if i%2 == 0 {
			touch(t, filepath.Join(dir, "marker"))
		}
		wg.Go(func() {
			profiles := []*domain.Profile{scriptProfile("p", "file(marker)")}
			_, err := s.Select(context.Background(), profiles, projectContext(dir, nil), problems.NewCollector())
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	assert.Equal(t, 16, s.Stats().Calls)
}
