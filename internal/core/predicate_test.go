package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildgate/internal/types"
)

func TestParsePredicate(t *testing.T) {
	tests := []struct {
		raw  string
		want []types.Constraint
	}{
		{"", nil},
		{">=9.2.0", []types.Constraint{{Op: types.ConstraintOpGte, Version: "9.2.0"}}},
		{">=9.2.0, <9.6.0", []types.Constraint{
			{Op: types.ConstraintOpGte, Version: "9.2.0"},
			{Op: types.ConstraintOpLt, Version: "9.6.0"},
		}},
		{"==3.11.4", []types.Constraint{{Op: types.ConstraintOpEq2, Version: "3.11.4"}}},
		{"!=9.3.0", []types.Constraint{{Op: types.ConstraintOpNe, Version: "9.3.0"}}},
		{"~=3.11", []types.Constraint{{Op: types.ConstraintOpCompat, Version: "3.11"}}},
	}
	for _, tt := range tests {
		got, err := ParsePredicate(tt.raw)
		require.NoError(t, err, tt.raw)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("unexpected constraints for %q (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestParsePredicateInvalid(t *testing.T) {
	for _, raw := range []string{"9.2.0", ">=", ">=9.2.0,,<9.6.0", "<="} {
		_, err := ParsePredicate(raw)
		require.Error(t, err, raw)
	}
}

func TestMatchesPredicate(t *testing.T) {
	tests := []struct {
		kind      types.ComponentKind
		version   string
		predicate string
		want      bool
	}{
		{types.ComponentKindNative, "9.5.2", ">=9.2.0", true},
		{types.ComponentKindNative, "9.1.0", ">=9.2.0", false},
		{types.ComponentKindNative, "9.5.2", ">=9.2.0, <9.6.0", true},
		{types.ComponentKindNative, "9.6.0", ">=9.2.0, <9.6.0", false},
		{types.ComponentKindNative, "9.3.0", "!=9.3.0", false},
		{types.ComponentKindNative, "9.5.2", "", true},
		{types.ComponentKindRuntime, "3.11.4", "~=3.11", true},
		{types.ComponentKindRuntime, "3.10.2", ">=3.11", false},
	}
	for _, tt := range tests {
		got, err := MatchesPredicate(tt.kind, tt.version, tt.predicate)
		require.NoError(t, err, "%s %s", tt.version, tt.predicate)
		assert.Equal(t, tt.want, got, "%s %s", tt.version, tt.predicate)
	}
}

func TestMatchesPredicateCompatOnNative(t *testing.T) {
	_, err := MatchesPredicate(types.ComponentKindNative, "9.5.2", "~=9.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtime")
}

func TestMatchesPredicateInvalidVersion(t *testing.T) {
	_, err := MatchesPredicate(types.ComponentKindNative, "??", ">=1.0")
	require.Error(t, err)
}
