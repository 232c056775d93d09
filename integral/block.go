// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integral

// Block is the parameter block: a fixed-shape mutable tuple of
// NumPars doubles, reinitialized from the parameter pool at the start
// of a call and then mutated in place, one slot at a time, as the
// hypercube iterator (package integral/cube) visits each cube point.
type Block struct {
	Pars []float64
}

// NewBlock allocates a Block and seeds it from the pool's nominal
// parameter values. The mean orientation angles, if any, land in
// Pars[ThetaPar:ThetaPar+3] here and are never touched again by the
// cube loop, which instead mutates Pars[JitterPar:JitterPar+3].
func NewBlock(d *Descriptor, pool *Pool) *Block {
	b := &Block{Pars: make([]float64, d.NumPars)}
	for i := range b.Pars {
		b.Pars[i] = pool.Par(i)
	}
	return b
}

// Copy returns an independent copy of the block, used to give each
// goroutine a private scratch region when fanning out the per-q loop
// in magnetic mode, where the loop body mutates Pars per q.
func (b *Block) Copy() *Block {
	cp := &Block{Pars: make([]float64, len(b.Pars))}
	copy(cp.Pars, b.Pars)
	return cp
}

// MeanAngles reads the mean orientation (θ, φ, ψ) out of the block's
// ThetaPar slots, which NewBlock seeds and the cube loop does not
// overwrite, so it may be called at any cube point. Dispatch1D and
// DispatchUnoriented2D have no orientation and return zeros.
func (d *Descriptor) MeanAngles(b *Block) (theta, phi, psi float64) {
	if d.ThetaPar < 0 {
		return 0, 0, 0
	}
	theta = b.Pars[d.ThetaPar]
	phi = b.Pars[d.ThetaPar+1]
	if d.Dispatch == DispatchAsym {
		psi = b.Pars[d.ThetaPar+2]
	}
	return
}

// JitterAngles reads the per-point jitter angles the cube loop has
// just written into b.Pars[JitterPar:].
func (d *Descriptor) JitterAngles(b *Block) (theta, phi, psi float64) {
	if d.JitterPar < 0 {
		return 0, 0, 0
	}
	theta = b.Pars[d.JitterPar]
	phi = b.Pars[d.JitterPar+1]
	if d.Dispatch == DispatchAsym {
		psi = b.Pars[d.JitterPar+2]
	}
	return
}
