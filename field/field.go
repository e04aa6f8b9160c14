// Package field implements scalar arithmetic over the prime field F of
// order q underlying a prime-order group G, following the capability set
// design note of the shuffle argument spec: {+,-,*,inv,rand,from_u64,
// serialize}. It generalizes the modular big.Int idiom used throughout
// the teacher's bulletproofs vector arithmetic to a value type so
// argument code can stop threading a modulus through every call.
package field

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Order is the prime order q shared by F and G. Set once per process via
// SetOrder before any Element is constructed; every Element created
// afterwards is implicitly reduced modulo Order.
//
// A package-level order (rather than storing it on every Element) mirrors
// how the group packages fix a single curve per Group implementation: all
// field elements in a given proof session belong to the same scalar
// field, so paying an extra pointer per Element for a modulus that never
// varies within a run buys nothing.
var Order *big.Int

// SetOrder fixes the field modulus for the process. It must be called
// once, before constructing any Element, with the order of the group the
// proof session operates over.
func SetOrder(q *big.Int) {
	Order = new(big.Int).Set(q)
}

// Element is a scalar in F.
type Element struct {
	v *big.Int
}

func reduce(v *big.Int) *big.Int {
	r := new(big.Int).Mod(v, Order)
	return r
}

// Zero returns the additive identity.
func Zero() *Element { return &Element{v: big.NewInt(0)} }

// One returns the multiplicative identity.
func One() *Element { return &Element{v: big.NewInt(1)} }

// FromUint64 builds an Element from a small unsigned integer.
func FromUint64(x uint64) *Element {
	return &Element{v: reduce(new(big.Int).SetUint64(x))}
}

// FromBigInt reduces x modulo Order into an Element.
func FromBigInt(x *big.Int) *Element {
	return &Element{v: reduce(x)}
}

// Rand samples a uniform Element from rng.
func Rand(rng io.Reader) *Element {
	v, err := rand.Int(rng, Order)
	if err != nil {
		panic(err)
	}
	return &Element{v: v}
}

// BigInt returns the underlying representative in [0, Order).
func (e *Element) BigInt() *big.Int { return new(big.Int).Set(e.v) }

// Add returns a+b.
func Add(a, b *Element) *Element {
	return &Element{v: reduce(new(big.Int).Add(a.v, b.v))}
}

// Sub returns a-b.
func Sub(a, b *Element) *Element {
	return &Element{v: reduce(new(big.Int).Sub(a.v, b.v))}
}

// Mul returns a*b.
func Mul(a, b *Element) *Element {
	return &Element{v: reduce(new(big.Int).Mul(a.v, b.v))}
}

// Neg returns -a.
func (a *Element) Neg() *Element {
	return &Element{v: reduce(new(big.Int).Neg(a.v))}
}

// Inverse returns a^-1. Panics if a is zero, mirroring the field axiom
// that zero has no multiplicative inverse; callers in this codebase never
// invert an element that can be zero by construction.
func (a *Element) Inverse() *Element {
	if a.v.Sign() == 0 {
		panic("field: inverse of zero")
	}
	return &Element{v: new(big.Int).ModInverse(a.v, Order)}
}

// IsZero reports whether a is the additive identity.
func (a *Element) IsZero() bool { return a.v.Sign() == 0 }

// Equal reports whether a and b represent the same field element.
func (a *Element) Equal(b *Element) bool { return a.v.Cmp(b.v) == 0 }

// ByteLen is the fixed serialized width of an Element: ceil(log2(Order)/8).
func ByteLen() int {
	return (Order.BitLen() + 7) / 8
}

// MarshalBinary encodes the element as fixed-width little-endian bytes.
func (a *Element) MarshalBinary() ([]byte, error) {
	out := make([]byte, ByteLen())
	b := a.v.Bytes() // big-endian
	for i := 0; i < len(b); i++ {
		out[i] = b[len(b)-1-i]
	}
	return out, nil
}

// UnmarshalBinary decodes a fixed-width little-endian encoding produced by
// MarshalBinary.
func (a *Element) UnmarshalBinary(data []byte) error {
	be := make([]byte, len(data))
	for i, c := range data {
		be[len(data)-1-i] = c
	}
	a.v = reduce(new(big.Int).SetBytes(be))
	return nil
}

// ScalarPowers returns (1, x, x^2, ..., x^k), length k+1.
func ScalarPowers(x *Element, k int) []*Element {
	out := make([]*Element, k+1)
	out[0] = One()
	for i := 1; i <= k; i++ {
		out[i] = Mul(out[i-1], x)
	}
	return out
}

// SampleVector returns k uniformly independent field elements.
func SampleVector(rng io.Reader, k int) []*Element {
	out := make([]*Element, k)
	for i := range out {
		out[i] = Rand(rng)
	}
	return out
}
