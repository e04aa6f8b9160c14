// Package elgamal implements the homomorphic ElGamal encryption scheme
// abstracted by spec section 1: Setup, KeyGen, Encrypt, homomorphic
// ciphertext addition, and scalar multiplication of a ciphertext. Ported
// from the teacher's root-level elgamal.go (a single free function tied
// to a candidate-encoding voting flow) and promoted into a general
// package over field.Element plaintexts, following the Statement/Witness
// shape the rest of this module uses.
package elgamal

import (
	"io"

	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/zkerr"
)

// Parameters fixes the group the scheme operates over.
type Parameters struct {
	Group group.Group
}

// Setup returns ElGamal parameters bound to grp.
func Setup(grp group.Group) *Parameters {
	return &Parameters{Group: grp}
}

// PublicKey is pk = sk*G.
type PublicKey = group.Element

// SecretKey is the discrete log of PublicKey.
type SecretKey = *field.Element

// KeyGen samples a fresh keypair.
func KeyGen(pp *Parameters, rng io.Reader) (PublicKey, SecretKey) {
	sk := field.Rand(rng)
	pk := pp.Group.Element().BaseScale(sk.BigInt())
	return pk, sk
}

// Ciphertext is an ElGamal pair (c1,c2) in G^2.
type Ciphertext struct {
	C1, C2 group.Element
}

// Encrypt returns Enc(pk, m; r) = (r*G, m*G + r*pk).
func Encrypt(pp *Parameters, pk PublicKey, m *field.Element, r *field.Element) Ciphertext {
	c1 := pp.Group.Element().BaseScale(r.BigInt())
	mG := pp.Group.Element().BaseScale(m.BigInt())
	rPk := pp.Group.Element().Scale(pk, r.BigInt())
	c2 := pp.Group.Element().Add(mG, rPk)
	return Ciphertext{C1: c1, C2: c2}
}

// EncryptZero returns Enc(pk, 0; r), the re-masking term used throughout
// the shuffle/multi-exponentiation arguments.
func EncryptZero(pp *Parameters, pk PublicKey, r *field.Element) Ciphertext {
	return Encrypt(pp, pk, field.Zero(), r)
}

// Add returns the homomorphic sum of two ciphertexts.
func Add(pp *Parameters, a, b Ciphertext) Ciphertext {
	return Ciphertext{
		C1: pp.Group.Element().Add(a.C1, b.C1),
		C2: pp.Group.Element().Add(a.C2, b.C2),
	}
}

// Scale returns alpha*c (scalar multiplication applied to both components).
func Scale(pp *Parameters, c Ciphertext, alpha *field.Element) Ciphertext {
	return Ciphertext{
		C1: pp.Group.Element().Scale(c.C1, alpha.BigInt()),
		C2: pp.Group.Element().Scale(c.C2, alpha.BigInt()),
	}
}

// Zero returns the additive identity ciphertext (identity, identity).
func Zero(pp *Parameters) Ciphertext {
	return Ciphertext{C1: pp.Group.Identity(), C2: pp.Group.Identity()}
}

// Equal reports whether a and b encode the same pair of group elements.
func (c Ciphertext) Equal(other Ciphertext) bool {
	return c.C1.IsEqual(other.C1) && c.C2.IsEqual(other.C2)
}

// DotProduct computes Sigma scalars[i]*ciphers[i], the ciphertext
// "power-product" the multi-exponentiation argument is built around.
func DotProduct(pp *Parameters, scalars []*field.Element, ciphers []Ciphertext) (Ciphertext, error) {
	if len(scalars) != len(ciphers) {
		return Ciphertext{}, &zkerr.DotProductLengthError{Left: len(scalars), Right: len(ciphers)}
	}
	acc := Zero(pp)
	for i := range scalars {
		acc = Add(pp, acc, Scale(pp, ciphers[i], scalars[i]))
	}
	return acc, nil
}

// MarshalBinary encodes the ciphertext as the concatenation of its two
// components' canonical affine encodings.
func (c Ciphertext) MarshalBinary() ([]byte, error) {
	b1, err := c.C1.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b2, err := c.C2.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(b1, b2...), nil
}
