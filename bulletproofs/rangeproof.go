package bulletproofs

import (
	"math/big"

	"github.com/bgshuffle/shuffle-argument/algebra"
	"github.com/bgshuffle/shuffle-argument/field"
)

// ExponentRangeBits is the bit-width a shuffle-argument scalar witness
// (e.g. the multi-exponentiation re-masking randomness rho) is
// constrained to when an optional range-proof sidecar is requested. 32
// is the largest power-of-two exponent Setup accepts (its n > 32 check).
const ExponentRangeBits = 32

var exponentRangeEnd = new(big.Int).Lsh(big.NewInt(1), ExponentRangeBits)

// SetupExponentRange builds bulletproofs parameters over secp256k1 for
// proving that a field.Element witness lies in [0, 2^ExponentRangeBits).
// Kept on its own curve group (independent of the shuffle argument's
// configured group) since the range proof is a standalone sidecar, not
// part of the core argument's algebra.
func SetupExponentRange() (BulletProofSetupParams, error) {
	return Setup(exponentRangeEnd.Int64(), algebra.NewSecP256k1Group())
}

// ProveExponentRange proves that x's canonical big-integer
// representative lies within the configured range.
func ProveExponentRange(x *field.Element, params BulletProofSetupParams) (BulletProof, error) {
	proof, _, err := Prove(x.BigInt(), params)
	return proof, err
}

// VerifyExponentRange checks a range proof produced by ProveExponentRange.
func VerifyExponentRange(proof *BulletProof) (bool, error) {
	return proof.Verify()
}
