package commitment

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
)

func init() {
	field.SetOrder(group.Ristretto255().N())
}

func TestCommitHomomorphism(t *testing.T) {
	grp := group.Ristretto255()
	ck := Setup(grp, rand.Reader, 3)

	x := field.SampleVector(rand.Reader, 3)
	y := field.SampleVector(rand.Reader, 3)
	rx := field.Rand(rand.Reader)
	ry := field.Rand(rand.Reader)

	cx, err := Commit(grp, ck, x, rx)
	require.NoError(t, err)
	cy, err := Commit(grp, ck, y, ry)
	require.NoError(t, err)

	sum := make([]*field.Element, 3)
	for i := range sum {
		sum[i] = field.Add(x[i], y[i])
	}
	cSum, err := Commit(grp, ck, sum, field.Add(rx, ry))
	require.NoError(t, err)

	require.True(t, Add(cx, cy).Equal(cSum))
}

func TestCommitScale(t *testing.T) {
	grp := group.Ristretto255()
	ck := Setup(grp, rand.Reader, 2)

	x := field.SampleVector(rand.Reader, 2)
	r := field.Rand(rand.Reader)
	alpha := field.Rand(rand.Reader)

	c, err := Commit(grp, ck, x, r)
	require.NoError(t, err)

	scaledX := make([]*field.Element, 2)
	for i := range scaledX {
		scaledX[i] = field.Mul(alpha, x[i])
	}
	expected, err := Commit(grp, ck, scaledX, field.Mul(alpha, r))
	require.NoError(t, err)

	require.True(t, Scale(c, alpha).Equal(expected))
}

func TestCommitTooManyValues(t *testing.T) {
	grp := group.Ristretto255()
	ck := Setup(grp, rand.Reader, 1)
	_, err := Commit(grp, ck, field.SampleVector(rand.Reader, 2), field.Zero())
	require.Error(t, err)
}

func TestCommitZeroIsDeterministic(t *testing.T) {
	grp := group.Ristretto255()
	ck := Setup(grp, rand.Reader, 2)

	a, err := CommitZero(grp, ck)
	require.NoError(t, err)
	b, err := CommitZero(grp, ck)
	require.NoError(t, err)
	require.True(t, a.Equal(b))
}

func TestCommitDifferentValuesDiffer(t *testing.T) {
	grp := group.Ristretto255()
	ck := Setup(grp, rand.Reader, 1)
	r := field.Rand(rand.Reader)

	a, err := Commit(grp, ck, []*field.Element{field.FromUint64(1)}, r)
	require.NoError(t, err)
	b, err := Commit(grp, ck, []*field.Element{field.FromUint64(2)}, r)
	require.NoError(t, err)
	require.False(t, a.Equal(b))
}
