package interp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindle/internal/adapters/interp"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
)

func TestInterpolate(t *testing.T) {
	project := ports.MapSource(map[string]string{"app.dir": "apps/web", "nested": "${app.dir}/src"})
	user := ports.MapSource(map[string]string{"app.dir": "ignored", "user.only": "u"})

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"no placeholder", "profiles/marker", "profiles/marker"},
		{"first source wins", "${app.dir}/x", "apps/web/x"},
		{"later source used", "${user.only}", "u"},
		{"unresolved is kept", "${missing}/x", "${missing}/x"},
		{"nested values expand", "${nested}/main", "apps/web/src/main"},
		{"several placeholders", "${user.only}-${app.dir}", "u-apps/web"},
		{"whitespace inside braces", "${ app.dir }", "apps/web"},
		{"unterminated is literal", "${app.dir", "${app.dir"},
	}

	i := interp.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := i.Interpolate(tt.template, project, user)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpolate_NilSourceIsSkipped(t *testing.T) {
	got, err := interp.New().Interpolate("${a}", nil, ports.MapSource(map[string]string{"a": "b"}))
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestInterpolate_Cycle(t *testing.T) {
	source := ports.MapSource(map[string]string{"a": "${b}", "b": "x/${a}"})

	_, err := interp.New().Interpolate("${a}", source)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInterpolationCycle))
}

func TestInterpolate_SelfReference(t *testing.T) {
	source := ports.MapSource(map[string]string{"a": "${a}"})

	_, err := interp.New().Interpolate("dir/${a}", source)
	require.ErrorIs(t, err, domain.ErrInterpolationCycle)
}
