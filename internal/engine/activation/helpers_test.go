package activation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/kindle/internal/adapters/fs"
	"go.trai.ch/kindle/internal/adapters/interp"
	"go.trai.ch/kindle/internal/adapters/problems"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/engine/activation"
)

func newEvaluator() *activation.Evaluator {
	return activation.NewEvaluator(fs.NewFileSystem(), activation.NewResolver(interp.New(), fs.NewPathTranslator()))
}

func scriptProfile(id, script string) *domain.Profile {
	return &domain.Profile{
		ID:     id,
		Source: domain.SourceDescriptor,
		Activation: &domain.Activation{
			Property: &domain.ActivationProperty{
				Name:     domain.MarkerPropertyName,
				Value:    script,
				Location: domain.Location{File: "kindle.yaml", Line: 3, Column: 7},
			},
		},
	}
}

func projectContext(dir string, user map[string]string) *domain.Context {
	return domain.NewContext(domain.ContextSpec{
		ProjectDir:       dir,
		UserProperties:   user,
		SystemProperties: map[string]string{"os.name": "linux"},
	})
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

type evalResult struct {
	activation.Evaluation
	problems []domain.Problem
}

func evaluate(t *testing.T, ctx *domain.Context, script string) evalResult {
	t.Helper()
	sink := problems.NewCollector()
	eval := newEvaluator().Evaluate(scriptProfile("p", script), ctx, sink, script, nil)
	return evalResult{Evaluation: eval, problems: sink.Problems()}
}
