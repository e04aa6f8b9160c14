package chaumpedersen

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/transcript"
)

func init() {
	field.SetOrder(group.Ristretto255().N())
}

func setup(t *testing.T) (group.Group, *Parameters, *field.Element, *Statement) {
	grp := group.Ristretto255()
	g := grp.Generator()
	h := grp.Random()
	x := field.Rand(rand.Reader)

	pp := &Parameters{G: g, H: h}
	statement := &Statement{
		A: grp.Element().Scale(g, x.BigInt()),
		B: grp.Element().Scale(h, x.BigInt()),
	}
	return grp, pp, x, statement
}

func TestHonestProofVerifies(t *testing.T) {
	grp, pp, x, statement := setup(t)
	proof := Prove(rand.Reader, grp, pp, statement, x, transcript.New([]byte("cp")))
	require.NoError(t, Verify(grp, pp, statement, proof, transcript.New([]byte("cp"))))
}

func TestUnequalDiscreteLogsRejected(t *testing.T) {
	grp, pp, _, statement := setup(t)
	// tamper: B no longer shares A's discrete log w.r.t. H
	statement.B = grp.Random()
	x := field.Rand(rand.Reader)
	proof := Prove(rand.Reader, grp, pp, statement, x, transcript.New([]byte("cp")))
	require.Error(t, Verify(grp, pp, statement, proof, transcript.New([]byte("cp"))))
}
