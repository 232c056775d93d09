// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cube implements the hypercube iterator: a resumable,
// mixed-radix nested enumeration of up to five polydispersity
// dimensions. It carries no knowledge of models, parameter blocks, or
// magnetic/orientation dressing; it only produces (slot, value,
// cumulative weight) assignments for the driver to apply.
package cube

// Dim describes one active polydispersity dimension, flattened out of
// a problem descriptor so this package has no dependency on package
// integral.
type Dim struct {
	Par    int // which Block.Pars slot this dimension drives
	Length int // grid length
	Offset int // shared index into the pool for this dimension's values
	Stride int // mixed-radix stride
}

// Iter enumerates cube points in mixed-radix order, dim 0 fastest
// varying, starting anywhere in [0, numEval) without replaying earlier
// points.
type Iter struct {
	dims       []Dim
	numWeights int
	pool       []float64
	idx        []int
	step, stop int
}

// New seeds an iterator so that the first call to Next produces the
// cube point at linear index start, and enumeration terminates once
// step reaches stop.
func New(dims []Dim, numWeights int, pool []float64, start, stop int) *Iter {
	idx := make([]int, len(dims))
	for d, dim := range dims {
		if dim.Stride == 0 || dim.Length <= 1 {
			idx[d] = 0
			continue
		}
		idx[d] = (start / dim.Stride) % dim.Length
	}
	return &Iter{dims: dims, numWeights: numWeights, pool: pool, idx: idx, step: start, stop: stop}
}

// Next writes the current cube point's values into pars (indexed by
// each dimension's Par slot) and returns the cumulative product of
// this point's active weights. ok is false once the slice [start,
// stop) is exhausted, in which case pars and the return weight are
// unchanged.
func (it *Iter) Next(pars []float64) (weight float64, ok bool) {
	if it.step >= it.stop {
		return 0, false
	}
	weight = 1
	for d, dim := range it.dims {
		pars[dim.Par] = it.pool[dim.Offset+it.idx[d]]
		weight *= it.pool[dim.Offset+it.numWeights+it.idx[d]]
	}
	it.step++
	for d := range it.dims {
		it.idx[d]++
		if it.idx[d] < it.dims[d].Length {
			break
		}
		it.idx[d] = 0
	}
	return weight, true
}

// Step returns the linear index of the next point to be produced.
func (it *Iter) Step() int { return it.step }
