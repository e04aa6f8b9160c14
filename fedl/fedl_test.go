package fedl

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
)

func init() {
	field.SetOrder(group.Ristretto255().N())
}

func TestSignVerifyRoundTrip(t *testing.T) {
	grp := group.Ristretto255()
	pp := &Parameters{G: grp.Generator()}
	pk, sk := KeyGen(grp, rand.Reader)

	sig, err := Sign(rand.Reader, grp, pp, pk, sk, []byte("ballot-1"))
	require.NoError(t, err)
	require.NoError(t, Verify(grp, pp, pk, []byte("ballot-1"), sig))
}

func TestTokenIsDeterministic(t *testing.T) {
	grp := group.Ristretto255()
	pp := &Parameters{G: grp.Generator()}
	pk, sk := KeyGen(grp, rand.Reader)

	sig1, err := Sign(rand.Reader, grp, pp, pk, sk, []byte("msg"))
	require.NoError(t, err)
	sig2, err := Sign(rand.Reader, grp, pp, pk, sk, []byte("msg"))
	require.NoError(t, err)

	require.True(t, ExtractToken(sig1).IsEqual(ExtractToken(sig2)))
}

func TestTokenUniquePerMessage(t *testing.T) {
	grp := group.Ristretto255()
	pp := &Parameters{G: grp.Generator()}
	pk, sk := KeyGen(grp, rand.Reader)

	sig1, err := Sign(rand.Reader, grp, pp, pk, sk, []byte("msg-a"))
	require.NoError(t, err)
	sig2, err := Sign(rand.Reader, grp, pp, pk, sk, []byte("msg-b"))
	require.NoError(t, err)

	require.False(t, ExtractToken(sig1).IsEqual(ExtractToken(sig2)))
}

func TestWrongKeyRejected(t *testing.T) {
	grp := group.Ristretto255()
	pp := &Parameters{G: grp.Generator()}
	pk, sk := KeyGen(grp, rand.Reader)
	otherPk, _ := KeyGen(grp, rand.Reader)

	sig, err := Sign(rand.Reader, grp, pp, pk, sk, []byte("msg"))
	require.NoError(t, err)
	require.Error(t, Verify(grp, pp, otherPk, []byte("msg"), sig))
}

func TestHashToCurveDeterministic(t *testing.T) {
	grp := group.Ristretto255()
	h1, err := HashToCurve(grp, []byte("same message"))
	require.NoError(t, err)
	h2, err := HashToCurve(grp, []byte("same message"))
	require.NoError(t, err)
	require.True(t, h1.IsEqual(h2))
}
