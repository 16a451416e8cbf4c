package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// constructToken builds a synthetic token with a known (register, value)
// decomposition for a given log2m, mirroring how Add extracts them.
func constructToken(log2m, register, value int) uint64 {
	substreamValue := uint64(1) << uint(value-1)
	return (substreamValue << uint(log2m)) | uint64(register)
}

func assertEmpty(t *testing.T, s *SketchValue) bool {
	return assert.Equal(t, repEmpty, s.rep)
}

func assertExplicit(t *testing.T, s *SketchValue) bool {
	return assert.Equal(t, repExplicit, s.rep)
}

func assertDense(t *testing.T, s *SketchValue) bool {
	return assert.Equal(t, repDense, s.rep)
}

func assertUndefined(t *testing.T, s *SketchValue) bool {
	return assert.Equal(t, repUndefined, s.rep)
}

func mustEmpty(t *testing.T, p Parameters) *SketchValue {
	s, err := NewEmpty(p)
	assert.NoError(t, err)
	return s
}

// smallParams disables Sparse and uses a small register bank, handy for
// tests that want to see Dense promotion without a huge loop.
var smallParams = Parameters{
	Log2m:         4,
	Regwidth:      5,
	Expthresh:     0,
	SparseEnabled: false,
}

var denseTestParams = Parameters{
	Log2m:         11,
	Regwidth:      5,
	Expthresh:     0,
	SparseEnabled: false,
}
