package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"buildgate/internal/types"
)

// ---------------------------------------------------------------------------
// versionCache
// ---------------------------------------------------------------------------

func TestVersionCacheParseNative(t *testing.T) {
	cache := newVersionCache(types.ComponentKindNative)
	require.NoError(t, cache.parse("9.5.2"))
	require.NoError(t, cache.parse("1.2.3-1ubuntu1"))
}

func TestVersionCacheParseRuntime(t *testing.T) {
	cache := newVersionCache(types.ComponentKindRuntime)
	require.NoError(t, cache.parse("3.11.4"))
	require.NoError(t, cache.parse("3.13.0rc1"))
}

func TestVersionCacheParseInvalid(t *testing.T) {
	cache := newVersionCache(types.ComponentKindRuntime)
	err := cache.parse("not-a-version!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid version")
}

func TestVersionCacheParseEmpty(t *testing.T) {
	cache := newVersionCache(types.ComponentKindNative)
	require.Error(t, cache.parse(""))
}

func TestVersionCacheParseUnknownKind(t *testing.T) {
	cache := newVersionCache("unknown")
	require.Error(t, cache.parse("1.0.0"))
}

// ---------------------------------------------------------------------------
// versionCache.compare
// ---------------------------------------------------------------------------

func TestVersionCacheCompareNative(t *testing.T) {
	cache := newVersionCache(types.ComponentKindNative)

	cmp, err := cache.compare("9.2.0", "9.6.0")
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = cache.compare("9.6.0", "9.6.0")
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = cache.compare("9.6.0", "9.2.0")
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)
}

func TestVersionCacheComparePrereleaseBelowRelease(t *testing.T) {
	cache := newVersionCache(types.ComponentKindRuntime)
	cmp, err := cache.compare("3.13.0rc1", "3.13.0")
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)
}

func TestVersionCacheCompareInvalid(t *testing.T) {
	cache := newVersionCache(types.ComponentKindNative)
	_, err := cache.compare("not valid", "1.0.0")
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// versionCache.inRange
// ---------------------------------------------------------------------------

func TestVersionCacheInRange(t *testing.T) {
	cache := newVersionCache(types.ComponentKindNative)
	tests := []struct {
		v            string
		min          string
		max          string
		maxInclusive bool
		want         bool
	}{
		{"9.2.0", "9.2.0", "9.6.0", false, true},
		{"9.5.2", "9.2.0", "9.6.0", false, true},
		{"9.6.0", "9.2.0", "9.6.0", false, false},
		{"9.6.0", "9.2.0", "9.6.0", true, true},
		{"9.1.0", "9.2.0", "9.6.0", false, false},
		{"99.0.0", "9.2.0", "", false, true},
	}
	for _, tt := range tests {
		got, err := cache.inRange(tt.v, tt.min, tt.max, tt.maxInclusive)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s in [%s, %s] inclusive=%v", tt.v, tt.min, tt.max, tt.maxInclusive)
	}
}

func TestVersionCacheInRangeInvalidVersion(t *testing.T) {
	cache := newVersionCache(types.ComponentKindNative)
	_, err := cache.inRange("bogus version", "1.0.0", "2.0.0", false)
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// properties
// ---------------------------------------------------------------------------

func TestVersionOrderingMatchesNumericOrdering(t *testing.T) {
	for _, kind := range []types.ComponentKind{types.ComponentKindNative, types.ComponentKindRuntime} {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				cache := newVersionCache(kind)
				a := drawTriple(t, "a")
				b := drawTriple(t, "b")
				cmp, err := cache.compare(tripleString(a), tripleString(b))
				require.NoError(t, err)
				assert.Equal(t, compareTriples(a, b), cmp)
			})
		})
	}
}

func TestVersionParseIsStableAcrossCalls(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cache := newVersionCache(types.ComponentKindRuntime)
		v := tripleString(drawTriple(t, "v"))
		require.NoError(t, cache.parse(v))
		// Second parse hits the cache and must agree with the first.
		require.NoError(t, cache.parse(v))
		cmp, err := cache.compare(v, v)
		require.NoError(t, err)
		assert.Equal(t, 0, cmp)
	})
}

func drawTriple(t *rapid.T, label string) [3]int {
	return [3]int{
		rapid.IntRange(0, 99).Draw(t, label+"_major"),
		rapid.IntRange(0, 99).Draw(t, label+"_minor"),
		rapid.IntRange(0, 99).Draw(t, label+"_patch"),
	}
}

func tripleString(v [3]int) string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

func compareTriples(a [3]int, b [3]int) int {
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}
