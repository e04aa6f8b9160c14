// Package chaumpedersen implements the Chaum-Pedersen discrete-log
// equality proof of spec section 4.4: A = x*g, B = x*h for a shared
// secret x, under public bases g,h.
//
// Grounded on original_source's chaum_pedersen_dl_equality/{proof,
// prover}.rs, and consumed by the FEDL VUF under a fixed transcript
// seed (spec section 4.5).
package chaumpedersen

import (
	"io"

	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/transcript"
	"github.com/bgshuffle/shuffle-argument/zkerr"
)

const protocolLabel = "chaum_pedersen"

// Parameters fixes the two public bases g,h.
type Parameters struct {
	G, H group.Element
}

// Statement is the pair (A,B) claimed to share a discrete log across g,h.
type Statement struct {
	A, B group.Element
}

// Proof is (a, b, r): the round-1 commitments and the round-2 opening.
type Proof struct {
	RandomA, RandomB group.Element
	Response         *field.Element
}

// Prove shows knowledge of x with A=x*g, B=x*h.
func Prove(rng io.Reader, g group.Group, pp *Parameters, statement *Statement, witness *field.Element, ts *transcript.Transcript) *Proof {
	ts.Absorb(protocolLabel, pp.G, pp.H, statement.A, statement.B)

	omega := field.Rand(rng)
	a := g.Element().Scale(pp.G, omega.BigInt())
	b := g.Element().Scale(pp.H, omega.BigInt())

	ts.Absorb(protocolLabel, a, b)
	c := ts.SqueezeScalar()

	r := field.Add(omega, field.Mul(c, witness))
	return &Proof{RandomA: a, RandomB: b, Response: r}
}

// Verify checks r*g == a+c*A and r*h == b+c*B.
func Verify(g group.Group, pp *Parameters, statement *Statement, proof *Proof, ts *transcript.Transcript) error {
	ts.Absorb(protocolLabel, pp.G, pp.H, statement.A, statement.B)
	ts.Absorb(protocolLabel, proof.RandomA, proof.RandomB)
	c := ts.SqueezeScalar()

	leftG := g.Element().Scale(pp.G, proof.Response.BigInt())
	rightG := g.Element().Add(proof.RandomA, g.Element().Scale(statement.A, c.BigInt()))
	if !leftG.IsEqual(rightG) {
		return zkerr.NewProofVerificationError("Chaum-Pedersen")
	}

	leftH := g.Element().Scale(pp.H, proof.Response.BigInt())
	rightH := g.Element().Add(proof.RandomB, g.Element().Scale(statement.B, c.BigInt()))
	if !leftH.IsEqual(rightH) {
		return zkerr.NewProofVerificationError("Chaum-Pedersen")
	}
	return nil
}
