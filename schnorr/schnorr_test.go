package schnorr

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

func TestHonestProofVerifies(t *testing.T) {
	grp := group.Ristretto255()
	g := grp.Generator()
	x := field.Rand(rand.Reader)
	statement := grp.Element().Scale(g, x.BigInt())

	proof := Prove(rand.Reader, grp, g, statement, x, transcript.New([]byte("test")))
	err := Verify(grp, g, statement, proof, transcript.New([]byte("test")))
	require.NoError(t, err)
}

func TestWrongWitnessRejected(t *testing.T) {
	grp := group.Ristretto255()
	g := grp.Generator()
	x := field.Rand(rand.Reader)
	wrongX := field.Rand(rand.Reader)
	statement := grp.Element().Scale(g, x.BigInt())

	proof := Prove(rand.Reader, grp, g, statement, wrongX, transcript.New([]byte("test")))
	err := Verify(grp, g, statement, proof, transcript.New([]byte("test")))
	require.Error(t, err)
}

func TestMismatchedTranscriptSeedRejected(t *testing.T) {
	grp := group.Ristretto255()
	g := grp.Generator()
	x := field.Rand(rand.Reader)
	statement := grp.Element().Scale(g, x.BigInt())

	proof := Prove(rand.Reader, grp, g, statement, x, transcript.New([]byte("test")))
	err := Verify(grp, g, statement, proof, transcript.New([]byte("other")))
	require.Error(t, err)
}
