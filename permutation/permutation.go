// Package permutation implements the secret bijection on {0..N-1} that a
// shuffle proof's witness carries, sampled uniformly with Fisher-Yates
// over crypto/rand and immutable once created.
package permutation

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Permutation is a bijection on {0..N-1}.
type Permutation struct {
	size int
	// perm[i] gives the source index that output position i reads from,
	// i.e. Permute(a)[i] = a[perm[i]].
	perm []int
}

// Size returns N.
func (p *Permutation) Size() int { return p.size }

// At returns perm(i).
func (p *Permutation) At(i int) int { return p.perm[i] }

// New builds a Permutation from an explicit mapping, for fixtures and
// tests. perm must be a bijection on {0..len(perm)-1}.
func New(perm []int) (*Permutation, error) {
	n := len(perm)
	seen := make([]bool, n)
	for _, v := range perm {
		if v < 0 || v >= n || seen[v] {
			return nil, fmt.Errorf("permutation: not a bijection on {0..%d}", n-1)
		}
		seen[v] = true
	}
	cp := make([]int, n)
	copy(cp, perm)
	return &Permutation{size: n, perm: cp}, nil
}

// Identity returns the identity permutation of size n.
func Identity(n int) *Permutation {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return &Permutation{size: n, perm: perm}
}

// Sample draws a uniformly random permutation of size n using
// Fisher-Yates over crypto/rand.
func Sample(n int) (*Permutation, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, err
		}
		j := int(jBig.Int64())
		perm[i], perm[j] = perm[j], perm[i]
	}
	return &Permutation{size: n, perm: perm}, nil
}

// Permute returns a vector b of the same length as a such that
// b[i] = a[perm[i]].
func Permute[T any](p *Permutation, a []T) []T {
	out := make([]T, len(a))
	for i := range out {
		out[i] = a[p.perm[i]]
	}
	return out
}
