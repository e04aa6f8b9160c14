// Package fedl implements the Fixed-EDL verifiable unpredictable
// function of spec section 4.5: a deterministic unique signature built
// from hash-to-curve plus a Chaum-Pedersen DL-equality proof run under a
// transcript seeded with the fixed literal b"FEDL", so that signing the
// same message twice yields the same unique token B even though the
// accompanying proof may differ across runs.
//
// Grounded on original_source's src/vuf/fedl/mod.rs, whose
// try_and_increment hash-to-curve and fixed FS seed are ported exactly.
package fedl

import (
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/bgshuffle/shuffle-argument/chaumpedersen"
	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/transcript"
	"github.com/bgshuffle/shuffle-argument/zkerr"
)

// FixedSeed is the literal transcript seed every FEDL signature and
// verification must use, per spec section 4.5.
var FixedSeed = []byte("FEDL")

const maxNonce = 256

// Parameters fixes the base generator g.
type Parameters struct {
	G group.Element
}

// PublicKey is pk = sk*g.
type PublicKey = group.Element

// SecretKey is the discrete log of PublicKey.
type SecretKey = *field.Element

// Signature is (proof, B): a Chaum-Pedersen DL-equality proof that B and
// pk share the same discrete log with respect to H = hash_to_curve(msg)
// and g, plus the unique token B itself.
type Signature struct {
	Proof *chaumpedersen.Proof
	B     group.Element
}

// KeyGen samples a fresh FEDL keypair in grp.
func KeyGen(grp group.Group, rng io.Reader) (PublicKey, SecretKey) {
	sk := field.Rand(rng)
	pk := grp.Element().Scale(grp.Generator(), sk.BigInt())
	return pk, sk
}

// HashToCurve maps msg to a group element via try-and-increment: for
// nonce = 0..255, feed (nonce || msg) to a SHAKE128 XOF and attempt to
// decode the output as a valid element; return the first success.
func HashToCurve(grp group.Group, msg []byte) (group.Element, error) {
	sizeHint, err := grp.Identity().MarshalBinary()
	if err != nil {
		return nil, zkerr.NewIoError(err)
	}
	outputLen := len(sizeHint)

	for nonce := 0; nonce < maxNonce; nonce++ {
		h := sha3.NewShake128()
		_, _ = h.Write([]byte{byte(nonce)})
		_, _ = h.Write(msg)
		out := make([]byte, outputLen)
		if _, err := h.Read(out); err != nil {
			return nil, zkerr.NewIoError(err)
		}

		candidate := grp.Element()
		if err := candidate.UnmarshalBinary(out); err == nil {
			return candidate, nil
		}
	}
	return nil, zkerr.ErrCannotHashToCurve
}

// Sign deterministically signs message under keypair (pk,sk): B = sk*H
// is a pure function of (sk, msg), so ExtractToken is unique per
// (sk, msg) pair regardless of the randomness used in the accompanying
// proof.
func Sign(rng io.Reader, grp group.Group, pp *Parameters, pk PublicKey, sk SecretKey, message []byte) (*Signature, error) {
	h, err := HashToCurve(grp, message)
	if err != nil {
		return nil, err
	}
	b := grp.Element().Scale(h, sk.BigInt())

	cpParams := &chaumpedersen.Parameters{G: pp.G, H: h}
	statement := &chaumpedersen.Statement{A: pk, B: b}

	ts := transcript.New(FixedSeed)
	proof := chaumpedersen.Prove(rng, grp, cpParams, statement, sk, ts)

	return &Signature{Proof: proof, B: b}, nil
}

// Verify checks that sig is a valid FEDL signature of message under pk.
func Verify(grp group.Group, pp *Parameters, pk PublicKey, message []byte, sig *Signature) error {
	h, err := HashToCurve(grp, message)
	if err != nil {
		return err
	}
	cpParams := &chaumpedersen.Parameters{G: pp.G, H: h}
	statement := &chaumpedersen.Statement{A: pk, B: sig.B}

	ts := transcript.New(FixedSeed)
	return chaumpedersen.Verify(grp, cpParams, statement, sig.Proof, ts)
}

// ExtractToken returns the signature's unique token B.
func ExtractToken(sig *Signature) group.Element {
	return sig.B
}
