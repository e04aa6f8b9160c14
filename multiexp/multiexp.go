// Package multiexp implements the Multi-Exponentiation argument of spec
// section 4.10 (L5): a proof of knowledge of a committed exponent
// matrix B and masking scalar rho such that a claimed ciphertext E*
// equals Enc(pk,0;rho) plus the "power-product" of B against shuffled
// ciphertext chunks.
//
// Grounded on original_source's
// zkp/arguments/multi_exponentiation/proof.rs (verifier side kept
// exactly, including its challenge_powers.take(m).rev() exponent
// indexing against shuffled_ciphers). No prover.rs was retrieved for
// this layer; the prover is reconstructed to satisfy the verifier
// equations directly, following the same diagonal-sum technique as the
// zero-value bilinear-map argument. The diagonal count is taken to be
// 2m (k=0..2m-1, special index m) rather than spec section 4.10's
// "k=0..2m" prose, matching both the verifier's literal
// num_of_diagonals=2m-1 and an independent re-derivation of which
// diagonal indices the verifier equation can actually populate.
package multiexp

import (
	"io"

	"github.com/bgshuffle/shuffle-argument/commitment"
	"github.com/bgshuffle/shuffle-argument/elgamal"
	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/transcript"
	"github.com/bgshuffle/shuffle-argument/zkerr"
)

const protocolLabel = "multi-exponentiation"

// Parameters fixes the dimensions, encryption parameters, and commit key.
type Parameters struct {
	M, N      int
	Group     group.Group
	EncParams *elgamal.Parameters
	CommitKey *commitment.CommitKey
}

// Statement is the public key, the commitments to the exponent matrix's
// rows, the claimed power-product ciphertext, and the shuffled
// ciphertext chunks it is taken against.
type Statement struct {
	PublicKey              elgamal.PublicKey
	CommitmentsToExponents []*commitment.Commitment // length M
	Product                elgamal.Ciphertext
	ShuffledCiphers        [][]elgamal.Ciphertext // M chunks of N
}

// Witness is the exponent matrix B, its commitment randomness, and the
// masking scalar rho satisfying
// Product = Enc(pk,0;rho) + Sum_{i,j} B_{i,j}*ShuffledCiphers_{i,j}.
type Witness struct {
	B   [][]*field.Element // M rows of N entries
	S   []*field.Element   // length M, randomness for CommitmentsToExponents
	Rho *field.Element
}

// Proof is the round-1 commitments/diagonal ciphertexts and the
// round-2 blinded openings.
type Proof struct {
	A0Commit   *commitment.Commitment
	CommitBK   []*commitment.Commitment // length 2m
	VectorEK   []elgamal.Ciphertext      // length 2m
	RBlinded   *field.Element
	BBlinded   *field.Element
	SBlinded   *field.Element
	TauBlinded *field.Element
	ABlinded   []*field.Element
}

func absorbCommon(ts *transcript.Transcript, pp *Parameters, statement *Statement) {
	ts.AbsorbBytes(protocolLabel, nil)
	ts.Absorb(protocolLabel, statement.PublicKey)
	for _, c := range statement.CommitmentsToExponents {
		ts.Absorb(protocolLabel, c)
	}
	ts.Absorb(protocolLabel, statement.Product)
	for _, chunk := range statement.ShuffledCiphers {
		for _, c := range chunk {
			ts.Absorb(protocolLabel, c)
		}
	}
	ts.AbsorbUint32(protocolLabel+"_m", uint32(pp.M))
	ts.AbsorbUint32(protocolLabel+"_n", uint32(pp.N))
	ts.AbsorbUint32(protocolLabel+"_diag", uint32(2*pp.M))
}

// diagonalCipher computes Sum over rows l=0..m (l=0 is the fresh row a0,
// l=1..m are witness rows B_l) paired against shuffled-cipher chunk
// i = l+m-k (1-indexed, valid only if in [1,m]).
func diagonalCipher(pp *Parameters, a0 []*field.Element, rows [][]*field.Element, statement *Statement, k int) (elgamal.Ciphertext, error) {
	acc := elgamal.Zero(pp.EncParams)
	for l := 0; l <= pp.M; l++ {
		i := l + pp.M - k
		if i < 1 || i > pp.M {
			continue
		}
		var row []*field.Element
		if l == 0 {
			row = a0
		} else {
			row = rows[l-1]
		}
		chunk := statement.ShuffledCiphers[i-1]
		dp, err := elgamal.DotProduct(pp.EncParams, row, chunk)
		if err != nil {
			return elgamal.Ciphertext{}, err
		}
		acc = elgamal.Add(pp.EncParams, acc, dp)
	}
	return acc, nil
}

// Prove constructs a multi-exponentiation argument for the given witness.
func Prove(rng io.Reader, pp *Parameters, statement *Statement, witness *Witness, ts *transcript.Transcript) (*Proof, error) {
	m, n := pp.M, pp.N
	numDiagonals := 2 * m

	a0 := field.SampleVector(rng, n)
	r0 := field.Rand(rng)
	a0Commit, err := commitment.Commit(pp.Group, pp.CommitKey, a0, r0)
	if err != nil {
		return nil, err
	}

	bK := make([]*field.Element, numDiagonals)
	diagS := make([]*field.Element, numDiagonals)
	tauK := make([]*field.Element, numDiagonals)
	commitBK := make([]*commitment.Commitment, numDiagonals)
	vectorEK := make([]elgamal.Ciphertext, numDiagonals)

	for k := 0; k < numDiagonals; k++ {
		if k == m {
			bK[k] = field.Zero()
			diagS[k] = field.Zero()
			tauK[k] = witness.Rho
		} else {
			bK[k] = field.Rand(rng)
			diagS[k] = field.Rand(rng)
			tauK[k] = field.Rand(rng)
		}

		c, err := commitment.Commit(pp.Group, pp.CommitKey, []*field.Element{bK[k]}, diagS[k])
		if err != nil {
			return nil, err
		}
		commitBK[k] = c

		diag, err := diagonalCipher(pp, a0, witness.B, statement, k)
		if err != nil {
			return nil, err
		}
		mask := elgamal.Encrypt(pp.EncParams, statement.PublicKey, bK[k], tauK[k])
		vectorEK[k] = elgamal.Add(pp.EncParams, mask, diag)
	}

	absorbCommon(ts, pp, statement)
	ts.Absorb(protocolLabel, a0Commit)
	for _, c := range commitBK {
		ts.Absorb(protocolLabel, c)
	}
	for _, c := range vectorEK {
		ts.Absorb(protocolLabel, c)
	}
	x := ts.SqueezeScalar()

	xPowers := field.ScalarPowers(x, numDiagonals-1) // length numDiagonals, x^0..x^{2m-1}

	aBlinded := make([]*field.Element, n)
	for i := 0; i < n; i++ {
		acc := a0[i]
		for l := 1; l <= m; l++ {
			acc = field.Add(acc, field.Mul(xPowers[l], witness.B[l-1][i]))
		}
		aBlinded[i] = acc
	}
	rBlinded := r0
	for l := 1; l <= m; l++ {
		rBlinded = field.Add(rBlinded, field.Mul(xPowers[l], witness.S[l-1]))
	}

	bBlinded := field.Zero()
	sBlinded := field.Zero()
	tauBlinded := field.Zero()
	for k := 0; k < numDiagonals; k++ {
		bBlinded = field.Add(bBlinded, field.Mul(xPowers[k], bK[k]))
		sBlinded = field.Add(sBlinded, field.Mul(xPowers[k], diagS[k]))
		tauBlinded = field.Add(tauBlinded, field.Mul(xPowers[k], tauK[k]))
	}

	return &Proof{
		A0Commit:   a0Commit,
		CommitBK:   commitBK,
		VectorEK:   vectorEK,
		RBlinded:   rBlinded,
		BBlinded:   bBlinded,
		SBlinded:   sBlinded,
		TauBlinded: tauBlinded,
		ABlinded:   aBlinded,
	}, nil
}

func commitDot(scalars []*field.Element, commits []*commitment.Commitment) *commitment.Commitment {
	acc := commitment.Scale(commits[0], scalars[0])
	for i := 1; i < len(scalars); i++ {
		acc = commitment.Add(acc, commitment.Scale(commits[i], scalars[i]))
	}
	return acc
}

// Verify checks proof against statement.
func Verify(pp *Parameters, statement *Statement, proof *Proof, ts *transcript.Transcript) error {
	fail := zkerr.NewProofVerificationError("Multi Exponentiation")
	m := pp.M
	numDiagonals := 2 * m

	absorbCommon(ts, pp, statement)
	ts.Absorb(protocolLabel, proof.A0Commit)
	for _, c := range proof.CommitBK {
		ts.Absorb(protocolLabel, c)
	}
	for _, c := range proof.VectorEK {
		ts.Absorb(protocolLabel, c)
	}
	x := ts.SqueezeScalar()

	xPowers := field.ScalarPowers(x, numDiagonals-1)

	zero, err := commitment.CommitZero(pp.Group, pp.CommitKey)
	if err != nil {
		return err
	}
	if !proof.CommitBK[m].Equal(zero) {
		return fail
	}
	if !proof.VectorEK[m].Equal(statement.Product) {
		return fail
	}

	xArray := xPowers[1 : m+1]
	cAx := commitDot(xArray, statement.CommitmentsToExponents)
	left := commitment.Add(cAx, proof.A0Commit)
	right, err := commitment.Commit(pp.Group, pp.CommitKey, proof.ABlinded, proof.RBlinded)
	if err != nil {
		return err
	}
	if !left.Equal(right) {
		return fail
	}

	cBk := commitDot(xPowers, proof.CommitBK)
	right2, err := commitment.Commit(pp.Group, pp.CommitKey, []*field.Element{proof.BBlinded}, proof.SBlinded)
	if err != nil {
		return err
	}
	if !cBk.Equal(right2) {
		return fail
	}

	sumEk, err := elgamal.DotProduct(pp.EncParams, xPowers, proof.VectorEK)
	if err != nil {
		return err
	}
	aggregateMaskingCipher := elgamal.Encrypt(pp.EncParams, statement.PublicKey, proof.BBlinded, proof.TauBlinded)

	rhsSum := elgamal.Zero(pp.EncParams)
	for i := 1; i <= m; i++ {
		weight := xPowers[m-i]
		scaledRow := make([]*field.Element, len(proof.ABlinded))
		for j := range scaledRow {
			scaledRow[j] = field.Mul(proof.ABlinded[j], weight)
		}
		dp, err := elgamal.DotProduct(pp.EncParams, scaledRow, statement.ShuffledCiphers[i-1])
		if err != nil {
			return err
		}
		rhsSum = elgamal.Add(pp.EncParams, rhsSum, dp)
	}
	rhs := elgamal.Add(pp.EncParams, aggregateMaskingCipher, rhsSum)

	if !sumEk.Equal(rhs) {
		return fail
	}

	return nil
}
