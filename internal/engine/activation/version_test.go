package activation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/engine/activation"
)

func TestParseVersionComparison(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr    string
		op      string
		version int
	}{
		{expr: "<=8", op: "<=", version: 8},
		{expr: "=<8", op: "<=", version: 8},
		{expr: ">=11", op: ">=", version: 11},
		{expr: "=>11", op: ">=", version: 11},
		{expr: "<17", op: "<", version: 17},
		{expr: ">17", op: ">", version: 17},
		{expr: "=21", op: "=", version: 21},
		{expr: "21", op: "=", version: 21},
		{expr: " >= 11 ", op: ">=", version: 11},
	}

	for _, tt := range tests {
		op, version, err := activation.ParseVersionComparison(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.op, op, tt.expr)
		assert.Equal(t, tt.version, version, tt.expr)
	}
}

func TestParseVersionComparison_Invalid(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"", ">=", "1.8", "eleven", "<<8"} {
		_, _, err := activation.ParseVersionComparison(expr)
		require.ErrorIs(t, err, domain.ErrInvalidVersion, expr)
	}
}

func TestVersionMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr     string
		detected int
		want     bool
	}{
		{expr: ">=11", detected: 17, want: true},
		{expr: "<11", detected: 17, want: false},
		{expr: "=17", detected: 17, want: true},
		{expr: "18", detected: 17, want: false},
		{expr: "<=17", detected: 17, want: true},
		{expr: ">17", detected: 17, want: false},
	}

	for _, tt := range tests {
		got, err := activation.VersionMatches(tt.expr, tt.detected)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s against %d", tt.expr, tt.detected)
	}
}

func TestJavaVersion(t *testing.T) {
	t.Parallel()

	v, ok := activation.JavaVersion("type-java-21")
	assert.True(t, ok)
	assert.Equal(t, 21, v)

	for _, entry := range []string{"type-java-", "type-java-21-ea", "type-war", "java-21"} {
		_, ok := activation.JavaVersion(entry)
		assert.False(t, ok, entry)
	}
}
