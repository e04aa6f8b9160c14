package matrixproduct

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

func setup(t *testing.T, m, n int) (*Parameters, *Statement, *Witness) {
	grp := group.Ristretto255()
	ck := commitment.Setup(grp, rand.Reader, n)
	pp := &Parameters{M: m, N: n, CommitKey: ck, Group: grp}

	a := make([][]*field.Element, m)
	r := make([]*field.Element, m)
	b := field.One()
	for i := 0; i < m; i++ {
		a[i] = field.SampleVector(rand.Reader, n)
		r[i] = field.Rand(rand.Reader)
		for _, v := range a[i] {
			b = field.Mul(b, v)
		}
	}

	commitsA := make([]*commitment.Commitment, m)
	for i := 0; i < m; i++ {
		c, err := commitment.Commit(grp, ck, a[i], r[i])
		require.NoError(t, err)
		commitsA[i] = c
	}

	return pp, &Statement{CommitmentsToA: commitsA, B: b}, &Witness{A: a, R: r}
}

func TestHonestProductVerifies(t *testing.T) {
	pp, statement, witness := setup(t, 3, 4)
	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("mp")))
	require.NoError(t, err)
	require.NoError(t, Verify(pp, statement, proof, transcript.New([]byte("mp"))))
}

func TestWrongClaimedTotalRejected(t *testing.T) {
	pp, statement, witness := setup(t, 2, 3)
	statement.B = field.Add(statement.B, field.One())

	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("mp")))
	require.NoError(t, err)
	require.Error(t, Verify(pp, statement, proof, transcript.New([]byte("mp"))))
}
