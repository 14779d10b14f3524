// SPDX-License-Identifier: MIT

package engine_test

import (
	"fmt"
	"log"

	"github.com/anton-romen/tensorq/array"
	"github.com/anton-romen/tensorq/charge"
	"github.com/anton-romen/tensorq/engine"
	"github.com/anton-romen/tensorq/leg"
)

// ExampleTensordot multiplies two charge-conserving 4x4 matrices. Only the
// two diagonal charge blocks can exist, so only two block products run.
func ExampleTensordot() {
	l, err := leg.New(charge.U1(), []leg.Sector{
		{Q: charge.Charge{0}, Begin: 0, End: 2},
		{Q: charge.Charge{1}, Begin: 2, End: 4},
	}, false)
	if err != nil {
		log.Fatal(err)
	}
	legs := []*leg.LegCharge{l, l.Conjugate()}

	a, err := array.FromDense(charge.Charge{0}, legs, []float64{
		1, 2, 0, 0,
		3, 4, 0, 0,
		0, 0, 5, 6,
		0, 0, 7, 8,
	})
	if err != nil {
		log.Fatal(err)
	}
	b, err := array.FromDense(charge.Charge{0}, legs, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 2,
	})
	if err != nil {
		log.Fatal(err)
	}

	c, err := engine.Tensordot(a, b, []int{1}, []int{0})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("blocks:", c.NumBlocks())
	d := c.ToDense()
	fmt.Println("row 0:", d.Data()[0:4])
	fmt.Println("row 2:", d.Data()[8:12])
	// Output:
	// blocks: 2
	// row 0: [1 2 0 0]
	// row 2: [0 0 10 12]
}

// ExampleSVD factorizes a block-diagonal matrix. Singular values stay
// grouped per bond charge sector, descending inside each.
func ExampleSVD() {
	l, err := leg.New(charge.U1(), []leg.Sector{
		{Q: charge.Charge{0}, Begin: 0, End: 2},
		{Q: charge.Charge{1}, Begin: 2, End: 4},
	}, false)
	if err != nil {
		log.Fatal(err)
	}

	a, err := array.FromDense(charge.Charge{0}, []*leg.LegCharge{l, l.Conjugate()}, []float64{
		3, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 0.5,
	})
	if err != nil {
		log.Fatal(err)
	}

	res, err := engine.SVD(a)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("values:", res.Values)
	fmt.Println("discarded:", res.TruncErr)
	// Output:
	// values: [[3 1] [2 0.5]]
	// discarded: 0
}
