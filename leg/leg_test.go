// SPDX-License-Identifier: MIT

package leg_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anton-romen/tensorq/charge"
	"github.com/anton-romen/tensorq/leg"
)

// u1Leg builds the canonical two-sector U(1) test leg:
// charge 0 on indices 0..1, charge 1 on indices 2..3.
func u1Leg(t *testing.T, conj bool) *leg.LegCharge {
	t.Helper()
	l, err := leg.New(charge.U1(), []leg.Sector{
		{Q: charge.Charge{0}, Begin: 0, End: 2},
		{Q: charge.Charge{1}, Begin: 2, End: 4},
	}, conj)
	require.NoError(t, err)
	return l
}

func TestNew_RejectsMalformedPartitions(t *testing.T) {
	t.Parallel()

	r := charge.U1()
	cases := []struct {
		name    string
		sectors []leg.Sector
	}{
		{"empty", nil},
		{"gap", []leg.Sector{
			{Q: charge.Charge{0}, Begin: 0, End: 2},
			{Q: charge.Charge{1}, Begin: 3, End: 5},
		}},
		{"overlap", []leg.Sector{
			{Q: charge.Charge{0}, Begin: 0, End: 3},
			{Q: charge.Charge{1}, Begin: 2, End: 5},
		}},
		{"nonzero start", []leg.Sector{
			{Q: charge.Charge{0}, Begin: 1, End: 4},
		}},
		{"zero length", []leg.Sector{
			{Q: charge.Charge{0}, Begin: 0, End: 0},
		}},
		{"bad charge len", []leg.Sector{
			{Q: charge.Charge{0, 0}, Begin: 0, End: 4},
		}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := leg.New(r, tc.sectors, false)
			if !errors.Is(err, leg.ErrMalformed) {
				t.Fatalf("want ErrMalformed, got %v", err)
			}
		})
	}
}

func TestSectorOf_BinarySearch(t *testing.T) {
	t.Parallel()

	l := u1Leg(t, false)
	for idx, want := range []struct{ sector, offset int }{
		{0, 0}, {0, 1}, {1, 0}, {1, 1},
	} {
		s, off, err := l.SectorOf(idx)
		require.NoError(t, err)
		require.Equal(t, want.sector, s, "index %d", idx)
		require.Equal(t, want.offset, off, "index %d", idx)
	}

	_, _, err := l.SectorOf(4)
	if !errors.Is(err, leg.ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
	_, _, err = l.SectorOf(-1)
	if !errors.Is(err, leg.ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
}

func TestFromFlat_GroupsRuns(t *testing.T) {
	t.Parallel()

	flat := []charge.Charge{{0}, {0}, {1}, {1}, {0}}
	l, err := leg.FromFlat(charge.U1(), flat, false)
	require.NoError(t, err)
	require.Equal(t, 3, l.NumSectors())
	require.Equal(t, 5, l.Dim())

	s2, err := l.Sector(2)
	require.NoError(t, err)
	require.Equal(t, 4, s2.Begin)
	require.True(t, s2.Q.EqualTo(charge.Charge{0}))
}

func TestConjugate_Involution(t *testing.T) {
	t.Parallel()

	l := u1Leg(t, false)
	c := l.Conjugate()
	require.True(t, c.IsConjugated())
	require.Equal(t, l.Dim(), c.Dim())

	// stored charges stay put; effective charges dualize
	s, err := c.Sector(1)
	require.NoError(t, err)
	require.True(t, s.Q.EqualTo(charge.Charge{1}))
	require.True(t, c.EffectiveCharge(1).EqualTo(charge.Charge{-1}))

	require.True(t, c.Conjugate().Equal(l))
}

func TestCompatible_ContractionPrecondition(t *testing.T) {
	t.Parallel()

	l := u1Leg(t, false)
	require.False(t, l.Compatible(l), "same orientation must be incompatible")
	require.True(t, l.Compatible(l.Conjugate()))

	// same rule, different partition
	other, err := leg.New(charge.U1(), []leg.Sector{
		{Q: charge.Charge{0}, Begin: 0, End: 4},
	}, true)
	require.NoError(t, err)
	require.False(t, l.Compatible(other))

	// different rule
	z2, _ := charge.ZN(2)
	zleg, err := leg.New(z2, []leg.Sector{
		{Q: charge.Charge{0}, Begin: 0, End: 2},
		{Q: charge.Charge{1}, Begin: 2, End: 4},
	}, true)
	require.NoError(t, err)
	require.False(t, l.Compatible(zleg))
}

func TestCombineWith_SortedSectorsAndOffsets(t *testing.T) {
	t.Parallel()

	l := u1Leg(t, false)
	m, err := l.CombineWith(l)
	require.NoError(t, err)

	c := m.Combined()
	require.Equal(t, 16, c.Dim())
	require.Equal(t, 3, c.NumSectors(), "charges 0,1,2")
	require.False(t, c.IsConjugated())

	// charge 1 sector holds pairs (0,1) and (1,0), laid out in that order
	p01, err := m.Pair(0, 1)
	require.NoError(t, err)
	p10, err := m.Pair(1, 0)
	require.NoError(t, err)
	require.Equal(t, p01.Sector, p10.Sector)
	require.Equal(t, 0, p01.Offset)
	require.Equal(t, 4, p10.Offset)

	mid, err := c.Sector(p01.Sector)
	require.NoError(t, err)
	require.True(t, mid.Q.EqualTo(charge.Charge{1}))
	require.Equal(t, 8, mid.Size())
}

func TestCombineWith_ConjugatedInputUsesEffectiveCharges(t *testing.T) {
	t.Parallel()

	l := u1Leg(t, false)
	m, err := l.CombineWith(l.Conjugate())
	require.NoError(t, err)

	// the conjugate contributes effective charges {0,-1}, so the fused
	// charge set is {-1, 0, 1}
	c := m.Combined()
	require.Equal(t, 3, c.NumSectors())
	lo, err := c.Sector(0)
	require.NoError(t, err)
	require.True(t, lo.Q.EqualTo(charge.Charge{-1}))
}

func TestCombineWith_RuleMismatch_Err(t *testing.T) {
	t.Parallel()

	z2, _ := charge.ZN(2)
	zleg, err := leg.New(z2, []leg.Sector{{Q: charge.Charge{0}, Begin: 0, End: 4}}, false)
	require.NoError(t, err)

	_, err = u1Leg(t, false).CombineWith(zleg)
	if !errors.Is(err, leg.ErrIncompatible) {
		t.Fatalf("want ErrIncompatible, got %v", err)
	}
}

func TestFusionMap_PairsLayoutOrder(t *testing.T) {
	t.Parallel()

	l := u1Leg(t, false)
	m, err := l.CombineWith(l)
	require.NoError(t, err)

	prev := -1
	prevOff := -1
	for _, p := range m.Pairs() {
		if p.Sector != prev {
			require.Greater(t, p.Sector, prev)
			require.Equal(t, 0, p.Offset, "each sector starts at offset 0")
			prev, prevOff = p.Sector, p.Offset
			continue
		}
		require.Greater(t, p.Offset, prevOff)
		prevOff = p.Offset
	}
}

func TestBlocked_AscendingUniqueCharges(t *testing.T) {
	t.Parallel()

	require.True(t, u1Leg(t, false).Blocked())

	dup, err := leg.New(charge.U1(), []leg.Sector{
		{Q: charge.Charge{1}, Begin: 0, End: 2},
		{Q: charge.Charge{0}, Begin: 2, End: 3},
		{Q: charge.Charge{1}, Begin: 3, End: 4},
	}, false)
	require.NoError(t, err)
	require.False(t, dup.Blocked())

	// fusion output is always blocked
	m, err := dup.CombineWith(dup.Conjugate())
	require.NoError(t, err)
	require.True(t, m.Combined().Blocked())
}
