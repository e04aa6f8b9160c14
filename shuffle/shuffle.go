// Package shuffle implements the top-level Shuffle argument of spec
// section 4.11 (L6): a proof of knowledge of a permutation and
// re-encryption randomness relating an input ElGamal ciphertext vector
// to its shuffled-and-remasked output, built by reducing the relation
// to a single matrix-elements-product instance (the permutation check)
// and a single multi-exponentiation instance (the re-encryption
// check), both run over the same Fiat-Shamir transcript.
//
// Grounded on original_source's zkp/arguments/shuffle/{proof,prover}.rs,
// ported line-for-line: the commitments_to_a construction via
// Scale(a_commits[i], y) + b_commits[i] minus a repeated Commit(-z..-z, 0)
// term, the verifier-side product recomputed directly from the
// unpermuted index values (valid because a product over a permutation
// is invariant to the permutation itself), and the multi-exponentiation
// statement's Product field built purely from the public input
// ciphertexts (the re-encryption masking term lives only in the
// witness-side Rho value passed to the delegated argument, never in
// the public statement).
package shuffle

import (
	"io"

	"github.com/bgshuffle/shuffle-argument/bulletproofs"
	"github.com/bgshuffle/shuffle-argument/commitment"
	"github.com/bgshuffle/shuffle-argument/elgamal"
	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/matrixproduct"
	"github.com/bgshuffle/shuffle-argument/multiexp"
	"github.com/bgshuffle/shuffle-argument/permutation"
	"github.com/bgshuffle/shuffle-argument/transcript"
	"github.com/bgshuffle/shuffle-argument/vectorutil"
	"github.com/bgshuffle/shuffle-argument/zkerr"
)

const protocolLabel = "shuffle_argument"

// Parameters fixes the chunking m*n = N, the encryption parameters,
// public key, and the shared commit key.
type Parameters struct {
	M, N      int
	Group     group.Group
	EncParams *elgamal.Parameters
	PublicKey elgamal.PublicKey
	CommitKey *commitment.CommitKey

	// RangeProofParams, if non-nil, turns on an additional bulletproofs
	// sidecar proving the multi-exponentiation masking scalar rho (the
	// aggregate re-encryption randomness) lies in a bounded range. The
	// core shuffle argument's soundness does not depend on this: it is
	// an optional deployment hardening, off by default.
	RangeProofParams *bulletproofs.BulletProofSetupParams
}

// Statement is the input and shuffled ciphertext vectors, each of
// length M*N.
type Statement struct {
	InputCiphers    []elgamal.Ciphertext
	ShuffledCiphers []elgamal.Ciphertext
}

// Witness is the secret permutation on {0..M*N-1} and the per-entry
// re-encryption randomness used to build ShuffledCiphers from
// InputCiphers: ShuffledCiphers[i] = InputCiphers[perm(i)] +
// EncryptZero(pk, rho[i]).
type Witness struct {
	Permutation *permutation.Permutation
	Rho         []*field.Element
}

// Proof composes the round-1 commitments to the permuted index vector
// and the permuted challenge-power vector with the two delegated
// sub-arguments.
type Proof struct {
	ACommits             []*commitment.Commitment
	BCommits             []*commitment.Commitment
	ProductArgumentProof *matrixproduct.Proof
	MultiExpProof        *multiexp.Proof

	// RangeProof is present only when Parameters.RangeProofParams was set.
	RangeProof *bulletproofs.BulletProof
}

func validate(pp *Parameters, statement *Statement) error {
	total := pp.M * pp.N
	if len(statement.InputCiphers) != total || len(statement.ShuffledCiphers) != total {
		return zkerr.NewProofVerificationError("Shuffle Argument (4.11): statement dimension mismatch")
	}
	return nil
}

func negConstantCommit(grp group.Group, ck *commitment.CommitKey, n int, value *field.Element) (*commitment.Commitment, error) {
	vec := make([]*field.Element, n)
	for i := range vec {
		vec[i] = value
	}
	return commitment.Commit(grp, ck, vec, field.Zero())
}

// Prove constructs a shuffle argument for the given witness.
func Prove(rng io.Reader, pp *Parameters, statement *Statement, witness *Witness, ts *transcript.Transcript) (*Proof, error) {
	if err := validate(pp, statement); err != nil {
		return nil, err
	}
	m, n := pp.M, pp.N
	total := m * n

	ts.AbsorbBytes(protocolLabel, nil)

	r := field.SampleVector(rng, m)

	index := make([]*field.Element, total)
	for i := 0; i < total; i++ {
		index[i] = field.FromUint64(uint64(i + 1))
	}
	a := permutation.Permute(witness.Permutation, index)

	aChunks, err := vectorutil.Reshape(a, m, n)
	if err != nil {
		return nil, err
	}
	aCommits := make([]*commitment.Commitment, m)
	for i := 0; i < m; i++ {
		c, err := commitment.Commit(pp.Group, pp.CommitKey, aChunks[i], r[i])
		if err != nil {
			return nil, err
		}
		aCommits[i] = c
	}

	ts.Absorb(protocolLabel, pp.PublicKey)
	for _, c := range statement.InputCiphers {
		ts.Absorb(protocolLabel, c)
	}
	for _, c := range statement.ShuffledCiphers {
		ts.Absorb(protocolLabel, c)
	}
	ts.AbsorbUint32(protocolLabel+"_m", uint32(m))
	ts.AbsorbUint32(protocolLabel+"_n", uint32(n))
	for _, c := range aCommits {
		ts.Absorb(protocolLabel, c)
	}
	x := ts.SqueezeScalar()

	challengePowers := field.ScalarPowers(x, total)[1:] // x^1..x^{mn}
	b := permutation.Permute(witness.Permutation, challengePowers)
	s := field.SampleVector(rng, m)

	bChunks, err := vectorutil.Reshape(b, m, n)
	if err != nil {
		return nil, err
	}
	bCommits := make([]*commitment.Commitment, m)
	for i := 0; i < m; i++ {
		c, err := commitment.Commit(pp.Group, pp.CommitKey, bChunks[i], s[i])
		if err != nil {
			return nil, err
		}
		bCommits[i] = c
	}

	for _, c := range bCommits {
		ts.Absorb(protocolLabel, c)
	}
	y := ts.SqueezeScalar()
	z := ts.SqueezeScalar()

	d := make([]*field.Element, total)
	t := make([]*field.Element, m)
	for i := 0; i < total; i++ {
		d[i] = field.Add(field.Mul(y, a[i]), b[i])
	}
	for i := 0; i < m; i++ {
		t[i] = field.Add(field.Mul(y, r[i]), s[i])
	}

	dMinusZ := make([]*field.Element, total)
	for i := range d {
		dMinusZ[i] = field.Sub(d[i], z)
	}
	dMinusZChunks, err := vectorutil.Reshape(dMinusZ, m, n)
	if err != nil {
		return nil, err
	}
	dMinusZCommits := make([]*commitment.Commitment, m)
	for i := 0; i < m; i++ {
		c, err := commitment.Commit(pp.Group, pp.CommitKey, dMinusZChunks[i], t[i])
		if err != nil {
			return nil, err
		}
		dMinusZCommits[i] = c
	}

	claimedProduct := field.One()
	for _, v := range dMinusZ {
		claimedProduct = field.Mul(claimedProduct, v)
	}

	productParams := &matrixproduct.Parameters{M: m, N: n, CommitKey: pp.CommitKey, Group: pp.Group}
	productStatement := &matrixproduct.Statement{CommitmentsToA: dMinusZCommits, B: claimedProduct}
	productWitness := &matrixproduct.Witness{A: dMinusZChunks, R: t}
	productProof, err := matrixproduct.Prove(rng, productParams, productStatement, productWitness, ts)
	if err != nil {
		return nil, err
	}

	minusRho := make([]*field.Element, total)
	for i, rho := range witness.Rho {
		minusRho[i] = field.Mul(field.One().Neg(), rho)
	}
	rhoScalar, err := vectorutil.DotProductScalars(minusRho, b)
	if err != nil {
		return nil, err
	}
	temp, err := elgamal.DotProduct(pp.EncParams, b, statement.ShuffledCiphers)
	if err != nil {
		return nil, err
	}
	maskingCipher := elgamal.EncryptZero(pp.EncParams, pp.PublicKey, rhoScalar)
	product := elgamal.Add(pp.EncParams, temp, maskingCipher)

	shuffledChunks, err := vectorutil.Reshape(statement.ShuffledCiphers, m, n)
	if err != nil {
		return nil, err
	}

	multiExpParams := &multiexp.Parameters{M: m, N: n, Group: pp.Group, EncParams: pp.EncParams, CommitKey: pp.CommitKey}
	multiExpStatement := &multiexp.Statement{
		PublicKey:              pp.PublicKey,
		CommitmentsToExponents: bCommits,
		Product:                product,
		ShuffledCiphers:        shuffledChunks,
	}
	multiExpWitness := &multiexp.Witness{B: bChunks, S: s, Rho: rhoScalar}
	multiExpProof, err := multiexp.Prove(rng, multiExpParams, multiExpStatement, multiExpWitness, ts)
	if err != nil {
		return nil, err
	}

	var rangeProof *bulletproofs.BulletProof
	if pp.RangeProofParams != nil {
		rp, err := bulletproofs.ProveExponentRange(rhoScalar, *pp.RangeProofParams)
		if err != nil {
			return nil, err
		}
		rangeProof = &rp
	}

	return &Proof{
		ACommits:             aCommits,
		BCommits:             bCommits,
		ProductArgumentProof: productProof,
		MultiExpProof:        multiExpProof,
		RangeProof:           rangeProof,
	}, nil
}

// Verify checks proof against statement.
func Verify(pp *Parameters, statement *Statement, proof *Proof, ts *transcript.Transcript) error {
	fail := zkerr.NewProofVerificationError("Shuffle Argument (4.11)")
	if err := validate(pp, statement); err != nil {
		return err
	}
	m, n := pp.M, pp.N
	total := m * n

	ts.AbsorbBytes(protocolLabel, nil)
	ts.Absorb(protocolLabel, pp.PublicKey)
	for _, c := range statement.InputCiphers {
		ts.Absorb(protocolLabel, c)
	}
	for _, c := range statement.ShuffledCiphers {
		ts.Absorb(protocolLabel, c)
	}
	ts.AbsorbUint32(protocolLabel+"_m", uint32(m))
	ts.AbsorbUint32(protocolLabel+"_n", uint32(n))
	for _, c := range proof.ACommits {
		ts.Absorb(protocolLabel, c)
	}
	x := ts.SqueezeScalar()

	challengePowers := field.ScalarPowers(x, total)[1:]

	for _, c := range proof.BCommits {
		ts.Absorb(protocolLabel, c)
	}
	y := ts.SqueezeScalar()
	z := ts.SqueezeScalar()

	negZCommit, err := negConstantCommit(pp.Group, pp.CommitKey, n, field.Mul(field.One().Neg(), z))
	if err != nil {
		return err
	}

	commitmentsToA := make([]*commitment.Commitment, m)
	for i := 0; i < m; i++ {
		cd := commitment.Add(commitment.Scale(proof.ACommits[i], y), proof.BCommits[i])
		commitmentsToA[i] = commitment.Add(cd, negZCommit)
	}

	expectedProduct := field.One()
	for i := 0; i < total; i++ {
		idx := field.FromUint64(uint64(i + 1))
		term := field.Sub(field.Add(field.Mul(y, idx), challengePowers[i]), z)
		expectedProduct = field.Mul(expectedProduct, term)
	}

	productParams := &matrixproduct.Parameters{M: m, N: n, CommitKey: pp.CommitKey, Group: pp.Group}
	productStatement := &matrixproduct.Statement{CommitmentsToA: commitmentsToA, B: expectedProduct}
	if err := matrixproduct.Verify(productParams, productStatement, proof.ProductArgumentProof, ts); err != nil {
		return fail
	}

	shuffledChunks, err := vectorutil.Reshape(statement.ShuffledCiphers, m, n)
	if err != nil {
		return err
	}
	product, err := elgamal.DotProduct(pp.EncParams, challengePowers, statement.InputCiphers)
	if err != nil {
		return err
	}

	multiExpParams := &multiexp.Parameters{M: m, N: n, Group: pp.Group, EncParams: pp.EncParams, CommitKey: pp.CommitKey}
	multiExpStatement := &multiexp.Statement{
		PublicKey:              pp.PublicKey,
		CommitmentsToExponents: proof.BCommits,
		Product:                product,
		ShuffledCiphers:        shuffledChunks,
	}
	if err := multiexp.Verify(multiExpParams, multiExpStatement, proof.MultiExpProof, ts); err != nil {
		return fail
	}

	if pp.RangeProofParams != nil {
		if proof.RangeProof == nil {
			return fail
		}
		ok, err := bulletproofs.VerifyExponentRange(proof.RangeProof)
		if err != nil || !ok {
			return fail
		}
	}

	return nil
}
