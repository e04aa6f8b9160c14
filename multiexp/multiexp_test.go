package multiexp

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/shuffle-argument/commitment"
	"github.com/bgshuffle/shuffle-argument/elgamal"
	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/transcript"
)

func init() {
	field.SetOrder(group.Ristretto255().N())
}

func setup(t *testing.T, m, n int) (*Parameters, *Statement, *Witness) {
	grp := group.Ristretto255()
	ck := commitment.Setup(grp, rand.Reader, n)
	encParams := elgamal.Setup(grp)
	pk, _ := elgamal.KeyGen(encParams, rand.Reader)
	pp := &Parameters{M: m, N: n, Group: grp, EncParams: encParams, CommitKey: ck}

	shuffled := make([][]elgamal.Ciphertext, m)
	for i := range shuffled {
		row := make([]elgamal.Ciphertext, n)
		for j := range row {
			row[j] = elgamal.Encrypt(encParams, pk, field.Rand(rand.Reader), field.Rand(rand.Reader))
		}
		shuffled[i] = row
	}

	b := make([][]*field.Element, m)
	s := make([]*field.Element, m)
	commits := make([]*commitment.Commitment, m)
	acc := elgamal.Zero(encParams)
	for i := 0; i < m; i++ {
		b[i] = field.SampleVector(rand.Reader, n)
		s[i] = field.Rand(rand.Reader)
		c, err := commitment.Commit(grp, ck, b[i], s[i])
		require.NoError(t, err)
		commits[i] = c

		rowProduct, err := elgamal.DotProduct(encParams, b[i], shuffled[i])
		require.NoError(t, err)
		acc = elgamal.Add(encParams, acc, rowProduct)
	}

	rho := field.Rand(rand.Reader)
	product := elgamal.Add(encParams, acc, elgamal.EncryptZero(encParams, pk, rho))

	statement := &Statement{PublicKey: pk, CommitmentsToExponents: commits, Product: product, ShuffledCiphers: shuffled}
	witness := &Witness{B: b, S: s, Rho: rho}
	return pp, statement, witness
}

func TestHonestMultiExpVerifies(t *testing.T) {
	pp, statement, witness := setup(t, 3, 4)
	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("me")))
	require.NoError(t, err)
	require.NoError(t, Verify(pp, statement, proof, transcript.New([]byte("me"))))
}

func TestWrongProductRejected(t *testing.T) {
	pp, statement, witness := setup(t, 2, 3)
	statement.Product = elgamal.Add(pp.EncParams, statement.Product,
		elgamal.EncryptZero(pp.EncParams, statement.PublicKey, field.One()))

	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("me")))
	require.NoError(t, err)
	require.Error(t, Verify(pp, statement, proof, transcript.New([]byte("me"))))
}
