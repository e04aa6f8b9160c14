package shuffle

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/shuffle-argument/commitment"
	"github.com/bgshuffle/shuffle-argument/elgamal"
	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/permutation"
	"github.com/bgshuffle/shuffle-argument/transcript"
)

func init() {
	field.SetOrder(group.Ristretto255().N())
}

func setup(t *testing.T, m, n int) (*Parameters, *Statement, *Witness) {
	grp := group.Ristretto255()
	total := m * n

	ck := commitment.Setup(grp, rand.Reader, n)
	encParams := elgamal.Setup(grp)
	pk, _ := elgamal.KeyGen(encParams, rand.Reader)

	inputCiphers := make([]elgamal.Ciphertext, total)
	for i := range inputCiphers {
		inputCiphers[i] = elgamal.Encrypt(encParams, pk, field.Rand(rand.Reader), field.Rand(rand.Reader))
	}

	perm, err := permutation.Sample(total)
	require.NoError(t, err)
	rho := field.SampleVector(rand.Reader, total)

	permuted := permutation.Permute(perm, inputCiphers)
	shuffled := make([]elgamal.Ciphertext, total)
	for i := range shuffled {
		shuffled[i] = elgamal.Add(encParams, permuted[i], elgamal.EncryptZero(encParams, pk, rho[i]))
	}

	pp := &Parameters{M: m, N: n, Group: grp, EncParams: encParams, PublicKey: pk, CommitKey: ck}
	statement := &Statement{InputCiphers: inputCiphers, ShuffledCiphers: shuffled}
	witness := &Witness{Permutation: perm, Rho: rho}
	return pp, statement, witness
}

func TestHonestShuffleVerifies(t *testing.T) {
	pp, statement, witness := setup(t, 3, 4)
	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("shuffle")))
	require.NoError(t, err)
	require.NoError(t, Verify(pp, statement, proof, transcript.New([]byte("shuffle"))))
}

func TestLargerDeckShuffleVerifies(t *testing.T) {
	pp, statement, witness := setup(t, 4, 13)
	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("shuffle-deck")))
	require.NoError(t, err)
	require.NoError(t, Verify(pp, statement, proof, transcript.New([]byte("shuffle-deck"))))
}

func TestTamperedShuffledCiphertextRejected(t *testing.T) {
	pp, statement, witness := setup(t, 2, 3)
	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("shuffle")))
	require.NoError(t, err)

	// Replace one shuffled ciphertext with an unrelated fresh encryption:
	// the permutation/re-encryption relation to InputCiphers no longer holds.
	statement.ShuffledCiphers[0] = elgamal.Encrypt(pp.EncParams, pp.PublicKey, field.Rand(rand.Reader), field.Rand(rand.Reader))

	require.Error(t, Verify(pp, statement, proof, transcript.New([]byte("shuffle"))))
}

func TestWrongDimensionsRejected(t *testing.T) {
	pp, statement, _ := setup(t, 2, 3)
	statement.ShuffledCiphers = statement.ShuffledCiphers[:len(statement.ShuffledCiphers)-1]

	err := Verify(pp, statement, &Proof{}, transcript.New([]byte("shuffle")))
	require.Error(t, err)
}

func TestNoRangeProofSidecarByDefault(t *testing.T) {
	pp, statement, witness := setup(t, 2, 2)
	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("shuffle-no-rp")))
	require.NoError(t, err)
	require.Nil(t, proof.RangeProof)
}
