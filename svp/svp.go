// Package svp implements the Single-Value-Product argument of spec
// section 4.8 (L3): a proof of knowledge of a committed vector a whose
// entries multiply to a claimed scalar b.
//
// Grounded on original_source's
// zkp/arguments/single_value_product/{proof,prover}.rs, ported
// verbatim including the off-by-one boundary conditions on delta.
package svp

import (
	"io"

	"github.com/bgshuffle/shuffle-argument/commitment"
	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/transcript"
	"github.com/bgshuffle/shuffle-argument/zkerr"
)

const protocolLabel = "single_value_product_argument"

// Parameters fixes the vector dimension and the commit key.
type Parameters struct {
	N         int
	CommitKey *commitment.CommitKey
	Group     group.Group
}

// Statement is the commitment to a and the claimed product b.
type Statement struct {
	ACommit *commitment.Commitment
	B       *field.Element
}

// Witness is the vector a and its commitment randomness, satisfying
// Prod(a) = statement.B.
type Witness struct {
	A              []*field.Element
	RandomForACommit *field.Element
}

// Proof is the round-1 commitments (d, delta, diff) and the round-2
// blinded openings.
type Proof struct {
	DCommit, DeltaCommit, DiffCommit *commitment.Commitment
	ABlinded, BBlinded               []*field.Element
	RBlinded, SBlinded               *field.Element
}

func runningProduct(a []*field.Element) []*field.Element {
	b := make([]*field.Element, len(a))
	b[0] = a[0]
	for i := 1; i < len(a); i++ {
		b[i] = field.Mul(b[i-1], a[i])
	}
	return b
}

func blind(x, blinders []*field.Element, challenge *field.Element) []*field.Element {
	out := make([]*field.Element, len(x))
	for i := range x {
		out[i] = field.Add(field.Mul(challenge, x[i]), blinders[i])
	}
	return out
}

// Prove constructs a single-value-product argument for the given witness.
func Prove(rng io.Reader, pp *Parameters, statement *Statement, witness *Witness, ts *transcript.Transcript) (*Proof, error) {
	n := pp.N
	b := runningProduct(witness.A)

	d := field.SampleVector(rng, n)
	if n == 1 {
		// delta_1 must equal both d_1 and 0, so d_1 is fixed to 0; with a
		// single entry b = a_1 is public anyway.
		d[0] = field.Zero()
	}
	deltas := make([]*field.Element, n)
	deltas[0] = d[0]
	for i := 1; i < n-1; i++ {
		deltas[i] = field.Rand(rng)
	}
	deltas[n-1] = field.Zero()

	rD := field.Rand(rng)
	s1 := field.Rand(rng)
	sX := field.Rand(rng)

	dCommit, err := commitment.Commit(pp.Group, pp.CommitKey, d, rD)
	if err != nil {
		return nil, err
	}

	minusOne := field.One().Neg()
	deltaDs := make([]*field.Element, n-1)
	for i := 0; i < n-1; i++ {
		deltaDs[i] = field.Mul(minusOne, field.Mul(deltas[i], d[i+1]))
	}
	deltaCommit, err := commitment.Commit(pp.Group, pp.CommitKey, deltaDs, s1)
	if err != nil {
		return nil, err
	}

	diffs := make([]*field.Element, n-1)
	for i := 0; i < n-1; i++ {
		aI := witness.A[i+1]
		dI := d[i+1]
		bIMinusOne := b[i]
		deltaI := deltas[i+1]
		deltaIMinusOne := deltas[i]
		diffs[i] = field.Add(deltaI, field.Add(
			field.Mul(minusOne, field.Mul(aI, deltaIMinusOne)),
			field.Mul(minusOne, field.Mul(bIMinusOne, dI)),
		))
	}
	diffCommit, err := commitment.Commit(pp.Group, pp.CommitKey, diffs, sX)
	if err != nil {
		return nil, err
	}

	ts.AbsorbBytes(protocolLabel, nil)
	ts.Absorb(protocolLabel, statement.ACommit)
	ts.Absorb(protocolLabel, dCommit, deltaCommit, diffCommit)
	x := ts.SqueezeScalar()

	aBlinded := blind(witness.A, d, x)
	rBlinded := field.Add(field.Mul(x, witness.RandomForACommit), rD)
	bBlinded := blind(b, deltas, x)
	sBlinded := field.Add(field.Mul(x, sX), s1)

	return &Proof{
		DCommit:     dCommit,
		DeltaCommit: deltaCommit,
		DiffCommit:  diffCommit,
		ABlinded:    aBlinded,
		BBlinded:    bBlinded,
		RBlinded:    rBlinded,
		SBlinded:    sBlinded,
	}, nil
}

// Verify checks proof against statement.
func Verify(pp *Parameters, statement *Statement, proof *Proof, ts *transcript.Transcript) error {
	fail := zkerr.NewProofVerificationError("Single Value Product Argument (5.3)")
	n := pp.N

	if len(proof.BBlinded) != n || len(proof.ABlinded) != n {
		return fail
	}
	if !proof.BBlinded[0].Equal(proof.ABlinded[0]) {
		return fail
	}

	ts.AbsorbBytes(protocolLabel, nil)
	ts.Absorb(protocolLabel, statement.ACommit)
	ts.Absorb(protocolLabel, proof.DCommit, proof.DeltaCommit, proof.DiffCommit)
	x := ts.SqueezeScalar()

	if !proof.BBlinded[n-1].Equal(field.Mul(x, statement.B)) {
		return fail
	}

	left := commitment.Add(commitment.Scale(statement.ACommit, x), proof.DCommit)
	right, err := commitment.Commit(pp.Group, pp.CommitKey, proof.ABlinded, proof.RBlinded)
	if err != nil {
		return err
	}
	if !left.Equal(right) {
		return fail
	}

	left2 := commitment.Add(commitment.Scale(proof.DiffCommit, x), proof.DeltaCommit)
	blindedDiffs := make([]*field.Element, n-1)
	for i := 0; i < n-1; i++ {
		blindedDiffs[i] = field.Sub(
			field.Mul(x, proof.BBlinded[i+1]),
			field.Mul(proof.BBlinded[i], proof.ABlinded[i+1]),
		)
	}
	right2, err := commitment.Commit(pp.Group, pp.CommitKey, blindedDiffs, proof.SBlinded)
	if err != nil {
		return err
	}
	if !left2.Equal(right2) {
		return fail
	}

	return nil
}
