package sigmalink

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/shuffle-argument/group"
)

func setupParams(t *testing.T) Parameters {
	groupEG := group.Ristretto255()
	groupFEDL := group.SecP256k1()

	// Ristretto255's order is the smaller of the two group orders here;
	// pick conservative bit widths well under its ~252-bit order.
	pp, err := Setup(128, 64, 250, groupEG, groupFEDL)
	require.NoError(t, err)
	return pp
}

func TestLinkProofVerifies(t *testing.T) {
	pp := setupParams(t)
	sk, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 120))
	require.NoError(t, err)

	pkEG := pp.GroupEG.Element().Scale(pp.GeneratorEG, sk)
	pkFEDL := pp.GroupFEDL.Element().Scale(pp.GeneratorFEDL, sk)
	statement := &Statement{PkEG: pkEG, PkFEDL: pkFEDL}

	proof, err := Prove(&pp, sk)
	require.NoError(t, err)
	require.True(t, Verify(&pp, statement, proof))
}

func TestMismatchedSecretsRejected(t *testing.T) {
	pp := setupParams(t)
	sk, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 120))
	require.NoError(t, err)
	otherSk, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 120))
	require.NoError(t, err)

	pkEG := pp.GroupEG.Element().Scale(pp.GeneratorEG, sk)
	// FEDL key bound to a DIFFERENT secret than the one Prove is given.
	pkFEDL := pp.GroupFEDL.Element().Scale(pp.GeneratorFEDL, otherSk)
	statement := &Statement{PkEG: pkEG, PkFEDL: pkFEDL}

	proof, err := Prove(&pp, sk)
	require.NoError(t, err)
	require.False(t, Verify(&pp, statement, proof))
}

func TestSetupRejectsNegativeSlack(t *testing.T) {
	_, err := Setup(200, 64, 250, group.Ristretto255(), group.SecP256k1())
	require.Error(t, err)
}
