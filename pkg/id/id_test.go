package id

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestU32RoundTrip(t *testing.T) {
	id := FromU32(0xDEADBEEF)
	v, err := id.ToU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v)
}

func TestU32OverflowFails(t *testing.T) {
	big := FromBigInt(new(big.Int).Lsh(big.NewInt(1), 40))
	_, err := big.ToU32()
	assert.Error(t, err)
}

func TestStringNoLeadersRoundTrip(t *testing.T) {
	cases := []*big.Int{
		big.NewInt(0),
		big.NewInt(0x0a1f),
		new(big.Int).Lsh(big.NewInt(1), 127),
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)),
	}
	for _, c := range cases {
		original := FromBigInt(c)
		s := original.ToStringNoLeaders(16)
		parsed, err := FromString(s)
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	}
}

func TestToStringNoLeadersFormat(t *testing.T) {
	id := FromBigInt(big.NewInt(0x0a1f))
	assert.Equal(t, "0,0,0,0,0,0,0,0,0,0,0,0,0,0,a,1f", id.ToStringNoLeaders(16))
}

func TestToStringKeepsLeaders(t *testing.T) {
	id := FromBigInt(big.NewInt(0x0a))
	assert.Equal(t, "0a", id.ToString(1))
	assert.Equal(t, "a", id.ToStringNoLeaders(1))
}
