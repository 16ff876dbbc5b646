package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeohashPrecisionFor(t *testing.T) {
	t.Run("larger radius means shorter prefix", func(t *testing.T) {
		assert.Equal(t, uint(4), geohashPrecisionFor(10))
		assert.Equal(t, uint(5), geohashPrecisionFor(1))
		assert.Equal(t, uint(6), geohashPrecisionFor(0.5))
	})

	t.Run("huge radius bottoms out at precision one", func(t *testing.T) {
		assert.Equal(t, uint(1), geohashPrecisionFor(4000))
	})

	t.Run("tiny radius caps at the stored precision", func(t *testing.T) {
		assert.Equal(t, uint(8), geohashPrecisionFor(0.001))
	})

	t.Run("cell must span the radius", func(t *testing.T) {
		// 19.5km cells cover a 19.5km radius, 4.89km cells do not.
		assert.Equal(t, uint(4), geohashPrecisionFor(19.5))
		assert.Equal(t, uint(4), geohashPrecisionFor(5))
	})
}

func TestGeohashPrefixes(t *testing.T) {
	// Manila city center.
	prefixes := geohashPrefixes(14.5995, 120.9842, 10)

	require.Len(t, prefixes, 9, "center plus eight neighbors")
	for _, prefix := range prefixes {
		assert.True(t, strings.HasSuffix(prefix, "%"))
		assert.Len(t, prefix, 5, "precision four prefix plus wildcard")
	}

	seen := make(map[string]bool)
	for _, prefix := range prefixes {
		assert.False(t, seen[prefix], "prefixes must be distinct: %s", prefix)
		seen[prefix] = true
	}
}

func TestGeohashPrefixesHugeRadius(t *testing.T) {
	// A listing 5893km from the equator origin sits outside every
	// precision-1 neighbor cell; prefiltering would wrongly exclude it,
	// so no prefixes may be produced.
	assert.Nil(t, geohashPrefixes(0, 0, 6000))
	assert.NotNil(t, geohashPrefixes(0, 0, 5000))
}
