// Package commitment implements the Pedersen vector commitment scheme of
// spec section 4.1, ported from
// original_source/proof-essentials/src/vector_commitment/pedersen/mod.rs
// and the teacher's util.PedersenCommit, generalized to vectors via the
// group's multi-scalar-mul helper.
package commitment

import (
	"io"

	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/vectorutil"
	"github.com/bgshuffle/shuffle-argument/zkerr"
)

// CommitKey holds the public parameters (g_1..g_n, h) of the Pedersen
// scheme. Produced once by Setup and shared unmutated by prover and
// verifier for the session's lifetime.
type CommitKey struct {
	G []group.Element
	H group.Element
}

// Setup samples h and g_1..g_n uniformly from grp.
func Setup(grp group.Group, rng io.Reader, n int) *CommitKey {
	g := make([]group.Element, n)
	for i := range g {
		g[i] = randomElement(grp, rng)
	}
	return &CommitKey{G: g, H: randomElement(grp, rng)}
}

func randomElement(grp group.Group, rng io.Reader) group.Element {
	r := field.Rand(rng)
	return grp.Element().BaseScale(r.BigInt())
}

// Commitment is an element of G.
type Commitment struct {
	grp group.Group
	E   group.Element
}

// Add returns a+b, preserving the commitment scheme's additive
// homomorphism: Commit(x,r)+Commit(y,s) = Commit(x+y,r+s).
func Add(a, b *Commitment) *Commitment {
	return &Commitment{grp: a.grp, E: a.grp.Element().Add(a.E, b.E)}
}

// Scale returns alpha*c, preserving alpha*Commit(x,r) = Commit(alpha*x, alpha*r).
func Scale(c *Commitment, alpha *field.Element) *Commitment {
	return &Commitment{grp: c.grp, E: c.grp.Element().Scale(c.E, alpha.BigInt())}
}

// Equal reports whether a and b encode the same group element.
func (c *Commitment) Equal(other *Commitment) bool {
	return c.E.IsEqual(other.E)
}

// MarshalBinary encodes the commitment as its group element's canonical
// affine encoding.
func (c *Commitment) MarshalBinary() ([]byte, error) {
	return c.E.MarshalBinary()
}

// Commit returns r*h + Sum_{i=1..k} x_i*g_i via multi-scalar
// multiplication. It fails with CommitmentLengthError if k > n; if k < n
// only the first k bases are used.
func Commit(grp group.Group, ck *CommitKey, x []*field.Element, r *field.Element) (*Commitment, error) {
	if len(x) > len(ck.G) {
		return nil, &zkerr.CommitmentLengthError{Scheme: "Pedersen", Values: len(x), Bases: len(ck.G)}
	}
	bases := append([]group.Element{ck.H}, ck.G[:len(x)]...)
	scalars := append([]*field.Element{r}, x...)
	e, err := vectorutil.DotProductGroup(grp, scalars, bases)
	if err != nil {
		return nil, zkerr.NewIoError(err)
	}
	return &Commitment{grp: grp, E: e}, nil
}

// CommitZero returns the deterministic commitment to the zero vector
// [0] with randomness 0, used as the fixed anchor several arguments pin
// a round-1 commitment against (e.g. the (m+1)-th diagonal commitment in
// the zero-value argument).
func CommitZero(grp group.Group, ck *CommitKey) (*Commitment, error) {
	return Commit(grp, ck, []*field.Element{field.Zero()}, field.Zero())
}

// RandomBlind samples a fresh uniform blinding scalar suitable for r in
// Commit.
func RandomBlind(rng io.Reader) *field.Element {
	return field.Rand(rng)
}
