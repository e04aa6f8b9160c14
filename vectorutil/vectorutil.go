// Package vectorutil implements the small vector/matrix utility contracts
// shared by every argument layer: dot products and reshaping a vector into
// an m-by-n matrix (scalar-vector sampling lives in field). Generalizes the *big.Int
// vector arithmetic idiom of the teacher's bulletproofs/vector.go to the
// field.Element and group.Element value types used throughout this
// module.
package vectorutil

import (
	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/zkerr"
)

// Reshape splits v into m rows of n elements each, row-major. It fails if
// m*n != len(v).
func Reshape[T any](v []T, m, n int) ([][]T, error) {
	if m*n != len(v) {
		return nil, &zkerr.VectorCastingError{Size: len(v), M: m, N: n}
	}
	rows := make([][]T, m)
	for i := 0; i < m; i++ {
		rows[i] = v[i*n : (i+1)*n]
	}
	return rows, nil
}

// DotProductScalars returns the field inner product of a and b.
func DotProductScalars(a, b []*field.Element) (*field.Element, error) {
	if len(a) != len(b) {
		return nil, &zkerr.DotProductLengthError{Left: len(a), Right: len(b)}
	}
	acc := field.Zero()
	for i := range a {
		acc = field.Add(acc, field.Mul(a[i], b[i]))
	}
	return acc, nil
}

// DotProductGroup computes Sigma scalars[i]*bases[i] in G, i.e. a
// multi-scalar multiplication. This is the one place spec's L0
// "MultiScalarMul" primitive is realized on top of the group.Element
// capability set, since no pack dependency exposes a public batch-MSM
// hook for an arbitrary group.Element backend.
func DotProductGroup(g group.Group, scalars []*field.Element, bases []group.Element) (group.Element, error) {
	if len(scalars) != len(bases) {
		return nil, &zkerr.DotProductLengthError{Left: len(scalars), Right: len(bases)}
	}
	acc := g.Identity()
	for i := range scalars {
		term := g.Element().Scale(bases[i], scalars[i].BigInt())
		acc = g.Element().Add(acc, term)
	}
	return acc, nil
}
