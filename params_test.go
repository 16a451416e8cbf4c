package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Validate_RejectsOutOfRangeLog2m(t *testing.T) {
	err := Parameters{Log2m: -1, Regwidth: 5}.validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	err = Parameters{Log2m: 32, Regwidth: 5}.validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func Test_Validate_RejectsOutOfRangeRegwidth(t *testing.T) {
	err := Parameters{Log2m: 11, Regwidth: 0}.validate()
	require.Error(t, err)

	err = Parameters{Log2m: 11, Regwidth: 9}.validate()
	require.Error(t, err)
}

func Test_Validate_RejectsNonPowerOfTwoExpthresh(t *testing.T) {
	err := Parameters{Log2m: 11, Regwidth: 5, Expthresh: 3}.validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func Test_Validate_AcceptsAutoAndZeroExpthresh(t *testing.T) {
	assert.NoError(t, (Parameters{Log2m: 11, Regwidth: 5, Expthresh: AutoExpthresh}).validate())
	assert.NoError(t, (Parameters{Log2m: 11, Regwidth: 5, Expthresh: 0}).validate())
}

func Test_ExpthreshEncodeDecode_RoundTrips(t *testing.T) {
	cases := []int64{AutoExpthresh, 0, 1, 2, 4, 1024, maxExpthresh}
	for _, expthresh := range cases {
		p := Parameters{Log2m: 11, Regwidth: 5, Expthresh: expthresh}
		internal, err := p.toInternal()
		require.NoError(t, err)

		encoded := expthreshEncode(internal)
		decoded, err := expthreshDecode(encoded)
		require.NoError(t, err)
		assert.Equal(t, expthresh, decoded)
	}
}

func Test_PackUnpackDescriptor_RoundTrips(t *testing.T) {
	cases := []Parameters{
		{Log2m: 11, Regwidth: 5, Expthresh: AutoExpthresh, SparseEnabled: true},
		{Log2m: 4, Regwidth: 1, Expthresh: 0, SparseEnabled: false},
		{Log2m: 31, Regwidth: 8, Expthresh: maxExpthresh, SparseEnabled: true},
	}

	for _, p := range cases {
		d, err := packDescriptor(p)
		require.NoError(t, err)

		out, err := unpackDescriptor(d)
		require.NoError(t, err)
		assert.Equal(t, p, out)
	}
}

func Test_AutoExplicitCapacity_MatchesDenseByteBudget(t *testing.T) {
	capacity := autoExplicitCapacity(11, 5)
	denseBytes := divideBy8RoundUp(5 * (1 << 11))
	assert.Equal(t, int64(denseBytes/8), capacity)
}

func Test_SameAs_RequiresAllFourFieldsEqual(t *testing.T) {
	base := Parameters{Log2m: 11, Regwidth: 5, Expthresh: 0, SparseEnabled: true}
	assert.True(t, base.sameAs(base))

	other := base
	other.SparseEnabled = false
	assert.False(t, base.sameAs(other))

	other = base
	other.Expthresh = 16
	assert.False(t, base.sameAs(other))
}
