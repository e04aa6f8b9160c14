// Package matrixproduct implements the Matrix-Elements-Product argument
// of spec section 4.9 (L4): a proof of knowledge of a committed matrix
// A whose every entry multiplies (row-major) to a claimed scalar b.
//
// Grounded on original_source's
// zkp/arguments/matrix_elements_product/proof.rs, which composes a
// hadamard-product argument (the rows multiply entrywise to the
// committed vector c) with a single-value-product argument (c's entries
// multiply to b).
// No prover.rs was retrieved for this layer; the prover is
// reconstructed directly from spec section 4.9 plus the sub-argument
// Prove signatures it delegates to.
package matrixproduct

import (
	"io"

	"github.com/bgshuffle/shuffle-argument/commitment"
	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/hadamard"
	"github.com/bgshuffle/shuffle-argument/svp"
	"github.com/bgshuffle/shuffle-argument/transcript"
)

const protocolLabel = "matrix_elements_product"

// Parameters fixes the matrix dimensions and the commit key.
type Parameters struct {
	M, N      int
	CommitKey *commitment.CommitKey
	Group     group.Group
}

// Statement is the per-row commitments to A and the claimed product b.
type Statement struct {
	CommitmentsToA []*commitment.Commitment
	B              *field.Element
}

// Witness is the matrix A and its commitment randomness, satisfying
// Prod_{i,j} A_{i,j} = b.
type Witness struct {
	A [][]*field.Element
	R []*field.Element
}

// Proof composes the row-product commitment with the two delegated
// sub-arguments.
type Proof struct {
	BCommit            *commitment.Commitment
	HadamardProductProof *hadamard.Proof
	SingleValueProof    *svp.Proof
}

func rowProduct(row []*field.Element) *field.Element {
	acc := row[0]
	for i := 1; i < len(row); i++ {
		acc = field.Mul(acc, row[i])
	}
	return acc
}

// Prove constructs a matrix-elements-product argument for the given witness.
func Prove(rng io.Reader, pp *Parameters, statement *Statement, witness *Witness, ts *transcript.Transcript) (*Proof, error) {
	// c is the entrywise product of the rows, c_j = Prod_i A_{i,j}, so
	// Prod_j c_j = b.
	c := make([]*field.Element, pp.N)
	for j := range c {
		c[j] = witness.A[0][j]
		for i := 1; i < pp.M; i++ {
			c[j] = field.Mul(c[j], witness.A[i][j])
		}
	}
	s := field.Rand(rng)
	bCommit, err := commitment.Commit(pp.Group, pp.CommitKey, c, s)
	if err != nil {
		return nil, err
	}

	ts.AbsorbBytes(protocolLabel, nil)

	hadamardParams := &hadamard.Parameters{M: pp.M, N: pp.N, CommitKey: pp.CommitKey, Group: pp.Group}
	hadamardStatement := &hadamard.Statement{CommitmentToA: statement.CommitmentsToA, CommitmentToB: bCommit}
	hadamardWitness := &hadamard.Witness{A: witness.A, R: witness.R, B: c, S: s}
	hadamardProof, err := hadamard.Prove(rng, hadamardParams, hadamardStatement, hadamardWitness, ts)
	if err != nil {
		return nil, err
	}

	svpParams := &svp.Parameters{N: pp.N, CommitKey: pp.CommitKey, Group: pp.Group}
	svpStatement := &svp.Statement{ACommit: bCommit, B: statement.B}
	svpWitness := &svp.Witness{A: c, RandomForACommit: s}
	svpProof, err := svp.Prove(rng, svpParams, svpStatement, svpWitness, ts)
	if err != nil {
		return nil, err
	}

	return &Proof{BCommit: bCommit, HadamardProductProof: hadamardProof, SingleValueProof: svpProof}, nil
}

// Verify checks proof against statement.
func Verify(pp *Parameters, statement *Statement, proof *Proof, ts *transcript.Transcript) error {
	ts.AbsorbBytes(protocolLabel, nil)

	hadamardParams := &hadamard.Parameters{M: pp.M, N: pp.N, CommitKey: pp.CommitKey, Group: pp.Group}
	hadamardStatement := &hadamard.Statement{CommitmentToA: statement.CommitmentsToA, CommitmentToB: proof.BCommit}
	if err := hadamard.Verify(hadamardParams, hadamardStatement, proof.HadamardProductProof, ts); err != nil {
		return err
	}

	svpParams := &svp.Parameters{N: pp.N, CommitKey: pp.CommitKey, Group: pp.Group}
	svpStatement := &svp.Statement{ACommit: proof.BCommit, B: statement.B}
	if err := svp.Verify(svpParams, svpStatement, proof.SingleValueProof, ts); err != nil {
		return err
	}

	return nil
}
