// Package schnorr implements the Schnorr identification proof of
// knowledge of a discrete logarithm (spec section 4.3), the simplest
// leaf of the argument stack: P = x*g for public g,P, witness x.
//
// Grounded on original_source's schnorr_identification/{proof,prover}.rs
// and the sigma-protocol idiom of the teacher's voteproof.Prove/Verify
// (commit, absorb-then-squeeze challenge, blinded response).
package schnorr

import (
	"io"

	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/transcript"
	"github.com/bgshuffle/shuffle-argument/zkerr"
)

const protocolLabel = "schnorr_identity"

// Proof is (R, s): the round-1 commitment and the round-2 opening.
type Proof struct {
	RandomCommit group.Element
	Opening      *field.Element
}

// Prove produces a proof that the caller knows x such that statement =
// x*g, absorbing (tag, g, statement, R) before squeezing the challenge.
func Prove(rng io.Reader, g group.Group, pp, statement group.Element, witness *field.Element, ts *transcript.Transcript) *Proof {
	k := field.Rand(rng)
	randomCommit := g.Element().Scale(pp, k.BigInt())

	ts.Absorb(protocolLabel, pp, statement, randomCommit)
	c := ts.SqueezeScalar()

	opening := field.Sub(k, field.Mul(c, witness))
	return &Proof{RandomCommit: randomCommit, Opening: opening}
}

// Verify checks s*g + c*P == R, recomputing c by absorbing the same
// sequence the prover did.
func Verify(g group.Group, pp, statement group.Element, proof *Proof, ts *transcript.Transcript) error {
	ts.Absorb(protocolLabel, pp, statement, proof.RandomCommit)
	c := ts.SqueezeScalar()

	left := g.Element().Add(
		g.Element().Scale(pp, proof.Opening.BigInt()),
		g.Element().Scale(statement, c.BigInt()),
	)
	if !left.IsEqual(proof.RandomCommit) {
		return zkerr.NewProofVerificationError("Schnorr Identification")
	}
	return nil
}
