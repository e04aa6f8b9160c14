package zeroarg

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

// zeroWitness builds an (m,n) witness whose rows satisfy
// Sigma A_i (*) B_i = 0 by fixing every B row to the zero vector: any
// bilinear map sends (a, 0) to 0 regardless of a.
func zeroWitness(m, n int) (*Witness, [][]*field.Element) {
	a := make([][]*field.Element, m)
	b := make([][]*field.Element, m)
	r := make([]*field.Element, m)
	s := make([]*field.Element, m)
	for i := 0; i < m; i++ {
		a[i] = field.SampleVector(rand.Reader, n)
		b[i] = make([]*field.Element, n)
		for j := range b[i] {
			b[i][j] = field.Zero()
		}
		r[i] = field.Rand(rand.Reader)
		s[i] = field.Rand(rand.Reader)
	}
	return &Witness{A: a, B: b, R: r, S: s}, a
}

func commitRows(t *testing.T, grp group.Group, ck *commitment.CommitKey, rows [][]*field.Element, rnd []*field.Element) []*commitment.Commitment {
	out := make([]*commitment.Commitment, len(rows))
	for i := range rows {
		c, err := commitment.Commit(grp, ck, rows[i], rnd[i])
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func TestHonestZeroArgumentVerifies(t *testing.T) {
	grp := group.Ristretto255()
	const m, n = 3, 4
	ck := commitment.Setup(grp, rand.Reader, n)
	pp := &Parameters{M: m, N: n, CommitKey: ck, Group: grp}

	witness, _ := zeroWitness(m, n)
	commitsA := commitRows(t, grp, ck, witness.A, witness.R)
	commitsB := commitRows(t, grp, ck, witness.B, witness.S)

	y := field.Rand(rand.Reader)
	statement := &Statement{CommitmentToA: commitsA, CommitmentToB: commitsB, BilinearMap: NewYMapping(y, n)}

	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("zero")))
	require.NoError(t, err)
	require.NoError(t, Verify(pp, statement, proof, transcript.New([]byte("zero"))))
}

func TestTamperedBilinearMapRejected(t *testing.T) {
	grp := group.Ristretto255()
	const m, n = 2, 3
	ck := commitment.Setup(grp, rand.Reader, n)
	pp := &Parameters{M: m, N: n, CommitKey: ck, Group: grp}

	witness, _ := zeroWitness(m, n)
	commitsA := commitRows(t, grp, ck, witness.A, witness.R)
	commitsB := commitRows(t, grp, ck, witness.B, witness.S)

	y := field.Rand(rand.Reader)
	statement := &Statement{CommitmentToA: commitsA, CommitmentToB: commitsB, BilinearMap: NewYMapping(y, n)}

	proof, err := Prove(rand.Reader, pp, statement, witness, transcript.New([]byte("zero")))
	require.NoError(t, err)

	otherY := field.Rand(rand.Reader)
	statement.BilinearMap = NewYMapping(otherY, n)
	require.Error(t, Verify(pp, statement, proof, transcript.New([]byte("zero"))))
}
