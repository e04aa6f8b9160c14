package svp

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

func setup(t *testing.T, n int) (*Parameters, *Statement, *Witness) {
	grp := group.Ristretto255()
	ck := commitment.Setup(grp, rand.Reader, n)
	pp := &Parameters{N: n, CommitKey: ck, Group: grp}

	a := field.SampleVector(rand.Reader, n)
	b := a[0]
	for i := 1; i < n; i++ {
		b = field.Mul(b, a[i])
	}
	r := field.Rand(rand.Reader)

	aCommit, err := commitment.Commit(grp, ck, a, r)
	require.NoError(t, err)

	return pp, &Statement{ACommit: aCommit, B: b}, &Witness{A: a, RandomForACommit: r}
}

func TestHonestProductVerifies(t *testing.T) {
	pp, statement, witness := setup(t, 6)
	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("svp")))
	require.NoError(t, err)
	require.NoError(t, Verify(pp, statement, proof, transcript.New([]byte("svp"))))
}

func TestWrongClaimedProductRejected(t *testing.T) {
	pp, statement, witness := setup(t, 5)
	statement.B = field.Add(statement.B, field.One())

	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("svp")))
	require.NoError(t, err)
	require.Error(t, Verify(pp, statement, proof, transcript.New([]byte("svp"))))
}

func TestSingleElementVector(t *testing.T) {
	pp, statement, witness := setup(t, 1)
	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("svp-1")))
	require.NoError(t, err)
	require.NoError(t, Verify(pp, statement, proof, transcript.New([]byte("svp-1"))))
}
