package field

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func init() {
	SetOrder(big.NewInt(0).SetUint64(2305843009213693951)) // 2^61-1, a Mersenne prime, plenty for arithmetic checks
}

func TestAddSubInverse(t *testing.T) {
	a := Rand(rand.Reader)
	b := Rand(rand.Reader)

	sum := Add(a, b)
	back := Sub(sum, b)
	require.True(t, back.Equal(a))
}

func TestMulInverse(t *testing.T) {
	a := Rand(rand.Reader)
	for a.IsZero() {
		a = Rand(rand.Reader)
	}
	inv := a.Inverse()
	require.True(t, Mul(a, inv).Equal(One()))
}

func TestNeg(t *testing.T) {
	a := Rand(rand.Reader)
	require.True(t, Add(a, a.Neg()).IsZero())
}

func TestScalarPowers(t *testing.T) {
	x := FromUint64(3)
	powers := ScalarPowers(x, 4)
	require.Len(t, powers, 5)
	require.True(t, powers[0].Equal(One()))
	require.True(t, powers[4].Equal(FromUint64(81)))
}

func TestMarshalRoundTrip(t *testing.T) {
	a := Rand(rand.Reader)
	b, err := a.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, ByteLen())

	var back Element
	require.NoError(t, back.UnmarshalBinary(b))
	require.True(t, a.Equal(&back))
}

func TestFromUint64Reduces(t *testing.T) {
	a := FromUint64(2305843009213693951 + 5) // order 2^61-1 plus 5
	b := FromUint64(5)
	require.True(t, a.Equal(b))
}
