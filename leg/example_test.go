// SPDX-License-Identifier: MIT

package leg_test

import (
	"fmt"
	"log"

	"github.com/anton-romen/tensorq/charge"
	"github.com/anton-romen/tensorq/leg"
)

// ExampleLegCharge_CombineWith fuses two single-spin U(1) legs. The two
// mixed sector pairs carry the same fused charge and land side by side in
// one combined sector.
func ExampleLegCharge_CombineWith() {
	l, err := leg.New(charge.U1(), []leg.Sector{
		{Q: charge.Charge{0}, Begin: 0, End: 1},
		{Q: charge.Charge{1}, Begin: 1, End: 2},
	}, false)
	if err != nil {
		log.Fatal(err)
	}

	fm, err := l.CombineWith(l)
	if err != nil {
		log.Fatal(err)
	}

	combined := fm.Combined()
	fmt.Println("dim:", combined.Dim())
	for i := 0; i < combined.NumSectors(); i++ {
		s, _ := combined.Sector(i)
		fmt.Printf("charge %v: [%d,%d)\n", s.Q, s.Begin, s.End)
	}
	// Output:
	// dim: 4
	// charge [0]: [0,1)
	// charge [1]: [1,3)
	// charge [2]: [3,4)
}
