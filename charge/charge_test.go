// SPDX-License-Identifier: MIT

package charge_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anton-romen/tensorq/charge"
)

func TestU1_GroupLaws(t *testing.T) {
	t.Parallel()

	r := charge.U1()
	a := charge.Charge{2}
	b := charge.Charge{-5}
	c := charge.Charge{7}

	// associativity
	require.True(t, r.Equal(r.Fuse(r.Fuse(a, b), c), r.Fuse(a, r.Fuse(b, c))))
	// identity acts as no-op
	require.True(t, r.Equal(r.Fuse(a, r.Identity()), a))
	// dual inverts
	require.True(t, r.Equal(r.Fuse(a, r.Dual(a)), r.Identity()))
	// involution
	require.True(t, r.Equal(r.Dual(r.Dual(b)), b))
	// commutativity (abelian)
	require.True(t, r.Equal(r.Fuse(a, b), r.Fuse(b, a)))
}

func TestZN_ModularFusion(t *testing.T) {
	t.Parallel()

	r, err := charge.ZN(3)
	require.NoError(t, err)

	got := r.Fuse(charge.Charge{2}, charge.Charge{2})
	require.True(t, r.Equal(got, charge.Charge{1}), "2+2 mod 3 = 1, got %v", got)

	// dual of 0 stays 0, dual of 1 is n-1
	require.True(t, r.Equal(r.Dual(charge.Charge{0}), charge.Charge{0}))
	require.True(t, r.Equal(r.Dual(charge.Charge{1}), charge.Charge{2}))
}

func TestZN_BadModulus_Err(t *testing.T) {
	t.Parallel()

	_, err := charge.ZN(1)
	if !errors.Is(err, charge.ErrBadModulus) {
		t.Fatalf("want ErrBadModulus, got %v", err)
	}
}

func TestTrivial_AlwaysIdentity(t *testing.T) {
	t.Parallel()

	r := charge.Trivial()
	require.Equal(t, 0, r.Len())
	require.True(t, r.Equal(r.Fuse(charge.Charge{}, charge.Charge{}), r.Identity()))
}

func TestProduct_FactorwiseFusion(t *testing.T) {
	t.Parallel()

	z2, err := charge.ZN(2)
	require.NoError(t, err)
	r := charge.Product(charge.U1(), z2)

	require.Equal(t, 2, r.Len())
	require.Equal(t, "Product(U1xZ2)", r.Name())

	a := charge.Charge{3, 1}
	b := charge.Charge{-1, 1}
	got := r.Fuse(a, b)
	require.True(t, r.Equal(got, charge.Charge{2, 0}), "got %v", got)

	d := r.Dual(a)
	require.True(t, r.Equal(r.Fuse(a, d), r.Identity()))
}

func TestSame_DistinguishesRules(t *testing.T) {
	t.Parallel()

	z2, _ := charge.ZN(2)
	z3, _ := charge.ZN(3)
	require.True(t, charge.Same(charge.U1(), charge.U1()))
	require.False(t, charge.Same(z2, z3))
	require.False(t, charge.Same(charge.U1(), z2))
}

func TestFold_ManyCharges(t *testing.T) {
	t.Parallel()

	r := charge.U1()
	got := charge.Fold(r, charge.Charge{1}, charge.Charge{2}, charge.Charge{-3})
	require.True(t, r.Equal(got, r.Identity()))
	require.True(t, r.Equal(charge.Fold(r), r.Identity()))
}

func TestCompare_TotalOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t, -1, charge.Charge{0, 1}.Compare(charge.Charge{1, 0}))
	require.Equal(t, 1, charge.Charge{1, 0}.Compare(charge.Charge{0, 1}))
	require.Equal(t, 0, charge.Charge{2, 2}.Compare(charge.Charge{2, 2}))
	require.Equal(t, -1, charge.Charge{1}.Compare(charge.Charge{1, 0}))
}

func TestValidate_LengthChecked(t *testing.T) {
	t.Parallel()

	if err := charge.Validate(charge.U1(), charge.Charge{1, 2}); !errors.Is(err, charge.ErrBadChargeLen) {
		t.Fatalf("want ErrBadChargeLen, got %v", err)
	}
	require.NoError(t, charge.Validate(charge.U1(), charge.Charge{4}))
}
