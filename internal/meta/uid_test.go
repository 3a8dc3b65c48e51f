package meta

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(rand.NewSource(42)).UIDs(5)
	b := NewGenerator(rand.NewSource(42)).UIDs(5)
	assert.Equal(t, a, b)
}

func TestGeneratorDistinctNonZero(t *testing.T) {
	gen := NewGenerator(rand.NewSource(1))
	seen := map[int64]bool{}
	for _, uid := range gen.UIDs(1000) {
		assert.Positive(t, uid)
		assert.False(t, seen[uid])
		seen[uid] = true
	}
}
