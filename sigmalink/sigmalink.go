// Package sigmalink implements a cross-group secret-equality sigma
// protocol binding one scalar sk to two independent discrete-log
// statements in (possibly different) prime-order groups: an ElGamal
// public key pk_EG = sk*G_EG, and a FEDL public key pk_FEDL =
// sk*G_FEDL. It is the building block a mix-net deployment uses to
// bind a voter's FEDL-derived unique token to the ElGamal key their
// ballot is encrypted under, without ever revealing sk itself.
//
// Adapted from the teacher's voteproof package: the original bound a
// single secret across an ElGamal ciphertext component and a pair of
// Pedersen range-proof commitments (in a second, Bulletproofs-sized,
// group) using an abort-based Schnorr response whose width is padded
// so the response leaks nothing about which of the secret's possible
// representatives across the two groups' differing orders was used.
// That same abort/width technique is the load-bearing part kept here;
// the Pedersen-commitment half (specific to hiding a vote choice) is
// dropped since both public keys this package links are already
// public, and the two Pedersen components are collapsed into a single
// second discrete-log check against pk_FEDL.
package sigmalink

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/bgshuffle/shuffle-argument/group"
)

var two = big.NewInt(2)

// Parameters fixes the secret's claimed bit-length, the Fiat-Shamir
// challenge's bit-length, and the two groups being linked. BoundBits
// is the abort-loop's slack parameter (spec §9 names it Bb): it must
// be chosen so that SecretBits + ChallengeBits + BoundBits is strictly
// less than the base-2 logarithm of the smaller group's order.
type Parameters struct {
	SecretBits    uint8
	ChallengeBits uint16
	BoundBits     int
	GroupEG       group.Group
	GeneratorEG   group.Element
	GroupFEDL     group.Group
	GeneratorFEDL group.Element
}

// Setup derives Parameters from the two linked groups' order bit
// lengths, choosing BoundBits so the abort loop has enough slack.
func Setup(secretBits uint8, challengeBits uint16, smallerGroupOrderBits uint16,
	groupEG group.Group, groupFEDL group.Group) (Parameters, error) {
	boundBits := int(smallerGroupOrderBits) - 1 - int(secretBits) - int(challengeBits)
	if boundBits < 1 {
		return Parameters{}, errors.New("sigmalink: inconsistent parameter choice, negative abort slack")
	}
	return Parameters{
		SecretBits:    secretBits,
		ChallengeBits: challengeBits,
		BoundBits:     boundBits,
		GroupEG:       groupEG,
		GeneratorEG:   groupEG.Generator(),
		GroupFEDL:     groupFEDL,
		GeneratorFEDL: groupFEDL.Generator(),
	}, nil
}

// Statement is the pair of public keys claimed to share a discrete log.
type Statement struct {
	PkEG   group.Element
	PkFEDL group.Element
}

// Proof is the sigma protocol's commit/challenge/response transcript.
type Proof struct {
	W         group.Element // k*G_EG
	K         group.Element // k*G_FEDL
	Challenge *big.Int
	Z         *big.Int // k + challenge*sk, padded wide enough to not leak sk
}

func fiatShamirChallenge(w, k group.Element, bits uint16) *big.Int {
	hasher := sha256.New()
	var buf bytes.Buffer
	buf.WriteString(w.String())
	buf.WriteString(k.String())
	hasher.Write(buf.Bytes())
	digest := hasher.Sum(nil)[:bits/8]
	return new(big.Int).SetBytes(digest)
}

// Prove constructs a sigma-link proof that sk is the discrete log of
// both statement.PkEG (base GeneratorEG) and statement.PkFEDL (base
// GeneratorFEDL). It retries the commit/response draw until the
// response z falls in the designated leak-free window, mirroring the
// teacher's abort loop.
func Prove(pp *Parameters, sk *big.Int) (*Proof, error) {
	bxbc := big.NewInt(int64(uint16(pp.SecretBits) + pp.ChallengeBits))
	zLowerBound := new(big.Int).Exp(two, bxbc, nil)
	zUpperBound := new(big.Int).Exp(two, new(big.Int).Add(bxbc, big.NewInt(int64(pp.BoundBits))), nil)

	for {
		k, err := rand.Int(rand.Reader, zUpperBound)
		if err != nil {
			return nil, err
		}

		w := pp.GroupEG.Element().Scale(pp.GeneratorEG, new(big.Int).Mod(k, pp.GroupEG.N()))
		kFedl := pp.GroupFEDL.Element().Scale(pp.GeneratorFEDL, new(big.Int).Mod(k, pp.GroupFEDL.N()))

		challenge := fiatShamirChallenge(w, kFedl, pp.ChallengeBits)
		z := new(big.Int).Add(k, new(big.Int).Mul(challenge, sk))
		if z.Cmp(zLowerBound) < 0 || z.Cmp(zUpperBound) >= 0 {
			continue
		}

		return &Proof{W: w, K: kFedl, Challenge: challenge, Z: z}, nil
	}
}

// Verify checks that proof links statement.PkEG and statement.PkFEDL
// to the same secret, without learning the secret itself.
func Verify(pp *Parameters, statement *Statement, proof *Proof) bool {
	bxbc := big.NewInt(int64(uint16(pp.SecretBits) + pp.ChallengeBits))
	zLowerBound := new(big.Int).Exp(two, bxbc, nil)
	zUpperBound := new(big.Int).Exp(two, new(big.Int).Add(bxbc, big.NewInt(int64(pp.BoundBits))), nil)

	if proof.Z.Cmp(zLowerBound) < 0 || proof.Z.Cmp(zUpperBound) >= 0 {
		return false
	}

	if fiatShamirChallenge(proof.W, proof.K, pp.ChallengeBits).Cmp(proof.Challenge) != 0 {
		return false
	}

	leftEG := pp.GroupEG.Element().Scale(pp.GeneratorEG, proof.Z)
	rightEG := pp.GroupEG.Element().Scale(statement.PkEG, proof.Challenge)
	rightEG = pp.GroupEG.Element().Add(rightEG, proof.W)
	if !leftEG.IsEqual(rightEG) {
		return false
	}

	leftFedl := pp.GroupFEDL.Element().Scale(pp.GeneratorFEDL, proof.Z)
	rightFedl := pp.GroupFEDL.Element().Scale(statement.PkFEDL, proof.Challenge)
	rightFedl = pp.GroupFEDL.Element().Add(rightFedl, proof.K)
	return leftFedl.IsEqual(rightFedl)
}
