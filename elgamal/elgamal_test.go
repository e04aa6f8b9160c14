package elgamal

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

func setup() (*Parameters, PublicKey, SecretKey) {
	pp := Setup(group.Ristretto255())
	pk, sk := KeyGen(pp, rand.Reader)
	return pp, pk, sk
}

func decrypt(pp *Parameters, sk SecretKey, c Ciphertext) group.Element {
	shared := pp.Group.Element().Scale(c.C1, sk.BigInt())
	return pp.Group.Element().Subtract(c.C2, shared)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	pp, pk, sk := setup()
	m := field.FromUint64(42)
	r := field.Rand(rand.Reader)

	c := Encrypt(pp, pk, m, r)
	mG := decrypt(pp, sk, c)

	expected := pp.Group.Element().BaseScale(m.BigInt())
	require.True(t, mG.IsEqual(expected))
}

func TestHomomorphicAdd(t *testing.T) {
	pp, pk, sk := setup()
	m1, m2 := field.FromUint64(3), field.FromUint64(5)
	c1 := Encrypt(pp, pk, m1, field.Rand(rand.Reader))
	c2 := Encrypt(pp, pk, m2, field.Rand(rand.Reader))

	sum := Add(pp, c1, c2)
	got := decrypt(pp, sk, sum)
	expected := pp.Group.Element().BaseScale(field.Add(m1, m2).BigInt())
	require.True(t, got.IsEqual(expected))
}

func TestEncryptZeroIsReencryption(t *testing.T) {
	pp, pk, sk := setup()
	m := field.FromUint64(7)
	c := Encrypt(pp, pk, m, field.Rand(rand.Reader))
	mask := EncryptZero(pp, pk, field.Rand(rand.Reader))

	remasked := Add(pp, c, mask)
	got := decrypt(pp, sk, remasked)
	expected := pp.Group.Element().BaseScale(m.BigInt())
	require.True(t, got.IsEqual(expected))
}

func TestDotProductLengthMismatch(t *testing.T) {
	pp, pk, _ := setup()
	ciphers := []Ciphertext{Encrypt(pp, pk, field.Zero(), field.Rand(rand.Reader))}
	_, err := DotProduct(pp, field.SampleVector(rand.Reader, 2), ciphers)
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	pp, pk, _ := setup()
	c := Encrypt(pp, pk, field.FromUint64(9), field.Rand(rand.Reader))
	b, err := c.MarshalBinary()
	require.NoError(t, err)
	require.NotEmpty(t, b)
}
