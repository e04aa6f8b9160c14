package hadamard

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/shuffle-argument/commitment"
	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/transcript"
)

func init() {
	field.SetOrder(group.Ristretto255().N())
}

func buildWitness(m, n int) *Witness {
	a := make([][]*field.Element, m)
	r := make([]*field.Element, m)
	for i := 0; i < m; i++ {
		a[i] = field.SampleVector(rand.Reader, n)
		r[i] = field.Rand(rand.Reader)
	}
	b := make([]*field.Element, n)
	for j := 0; j < n; j++ {
		b[j] = a[0][j]
		for i := 1; i < m; i++ {
			b[j] = field.Mul(b[j], a[i][j])
		}
	}
	return &Witness{A: a, R: r, B: b, S: field.Rand(rand.Reader)}
}

func setup(t *testing.T, m, n int) (group.Group, *Parameters, *Statement, *Witness) {
	grp := group.Ristretto255()
	ck := commitment.Setup(grp, rand.Reader, n)
	pp := &Parameters{M: m, N: n, CommitKey: ck, Group: grp}

	witness := buildWitness(m, n)
	commitsA := make([]*commitment.Commitment, m)
	for i := 0; i < m; i++ {
		c, err := commitment.Commit(grp, ck, witness.A[i], witness.R[i])
		require.NoError(t, err)
		commitsA[i] = c
	}
	commitB, err := commitment.Commit(grp, ck, witness.B, witness.S)
	require.NoError(t, err)

	return grp, pp, &Statement{CommitmentToA: commitsA, CommitmentToB: commitB}, witness
}

func TestHonestHadamardVerifies(t *testing.T) {
	const m, n = 4, 5
	_, pp, statement, witness := setup(t, m, n)

	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("had")))
	require.NoError(t, err)
	require.NoError(t, Verify(pp, statement, proof, transcript.New([]byte("had"))))
}

func TestWrongProductCommitmentRejected(t *testing.T) {
	const m, n = 3, 4
	grp, pp, statement, witness := setup(t, m, n)

	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("had")))
	require.NoError(t, err)

	// A statement claiming a product vector other than the true row
	// product must be rejected by the anchor check
	// BCommits[m-1]==CommitmentToB.
	wrongCommit, err := commitment.Commit(grp, pp.CommitKey, field.SampleVector(rand.Reader, n), field.Rand(rand.Reader))
	require.NoError(t, err)
	statement.CommitmentToB = wrongCommit

	require.Error(t, Verify(pp, statement, proof, transcript.New([]byte("had"))))
}

func TestFlippedRowRejected(t *testing.T) {
	const m, n = 3, 4
	_, pp, statement, witness := setup(t, m, n)

	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("had")))
	require.NoError(t, err)

	// Swap two of the round-1 row-product commitments: the chain
	// b_commits[0]==CommitmentToA[0] / b_commits[m-1]==CommitmentToB
	// anchors no longer hold.
	proof.BCommits[0], proof.BCommits[1] = proof.BCommits[1], proof.BCommits[0]
	require.Error(t, Verify(pp, statement, proof, transcript.New([]byte("had"))))
}
