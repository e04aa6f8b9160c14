package group

import (
	"fmt"
	"math/big"
	"testing"
)

var allGroups = []Group{
	SecP256k1(),
	Ristretto255(),
}

func TestGroup(t *testing.T) {
	const testTimes = 1 << 7
	for _, g := range allGroups {
		g := g
		t.Run(g.Name()+"/Neg", func(tt *testing.T) { testNeg(tt, testTimes, g) })
		t.Run(g.Name()+"/Order", func(tt *testing.T) { testOrder(tt, testTimes, g) })
		t.Run(g.Name()+"/Set", func(tt *testing.T) { testSet(tt, g) })
	}
}

func testNeg(t *testing.T, testTimes int, g Group) {
	Q := g.Element()
	for i := 0; i < testTimes; i++ {
		P := g.Random()
		Q.Set(P)
		Q.Subtract(Q, P)
		got := Q.IsIdentity()
		want := true
		if got != want {
			t.Error("testNeg | Got:", got, "Wanted:", want)
		}
	}
}

func testOrder(t *testing.T, testTimes int, g Group) {
	I := g.Identity()
	Q := g.Element()
	minusOne := big.NewInt(-1)
	for i := 0; i < testTimes; i++ {
		P := g.Random()

		Q.Scale(P, minusOne)
		got := Q.Add(Q, P)
		want := I
		if !got.IsEqual(want) {
			t.Error("testOrder | Got:", got, "Wanted:", want)
		}
	}
}

func testSet(t *testing.T, g Group) {
	P := g.Random()
	Q := g.Element()
	Q.Set(P)
	if !Q.IsEqual(P) {
		t.Error("testSet | Got:", false, "Wanted:", true)
	}
}

func TestNewElements(t *testing.T) {
	els := []struct {
		name string
		el   func(Group) Element
	}{
		{"identity", func(g Group) Element { return g.Identity() }},
		{"generator", func(g Group) Element { return g.Generator() }},
		{"random", func(g Group) Element { return g.Random() }},
	}

	g := SecP256k1()
	for _, e := range els {
		t.Run(fmt.Sprintf("%s-%s", g.Name(), e.name), func(t *testing.T) {
			x := e.el(g)
			if x == nil {
				t.Error("new element")
			}
		})
	}
}

func TestMath(t *testing.T) {
	g := SecP256k1()

	a := g.Element().BaseScale(big.NewInt(2))
	b := g.Element().Add(g.Generator(), g.Generator())
	if !a.IsEqual(b) {
		t.Error("doubling error")
	}

	a = g.Element().Add(a, g.Generator())
	b = g.Element().BaseScale(big.NewInt(3))
	if !a.IsEqual(b) {
		t.Error("error in adding or scaling")
	}

	e := g.Identity()
	r1 := g.Random()
	r2 := g.Random()
	e.Add(r1, r2)
	e.Subtract(e, r2)
	if !e.IsEqual(r1) {
		t.Error("error in subtracting")
	}
}
