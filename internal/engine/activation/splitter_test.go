package activation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kindle/internal/engine/activation"
)

func TestSplitArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args string
		want []string
	}{
		{name: "single term", args: "a", want: []string{"a"}},
		{name: "flat list", args: "a, b ,c", want: []string{"a", "b", "c"}},
		{name: "nested commas do not split", args: "or(a,b),c", want: []string{"or(a,b)", "c"}},
		{name: "deep nesting", args: "and(or(a,b),not(c)),d", want: []string{"and(or(a,b),not(c))", "d"}},
		{name: "empty string", args: "", want: []string{""}},
		{name: "trailing comma", args: "a,", want: []string{"a", ""}},
		{name: "unbalanced drops trailing term", args: "a,or(b", want: []string{"a"}},
		{name: "extra closing drops trailing term", args: "a,b)", want: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, activation.SplitArgs(tt.args))
		})
	}
}
