// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package integral implements the scattering-intensity integrator: a
// resumable, cutoff-pruned, weight-normalized quadrature over a
// polydispersity hypercube, with optional orientation jitter and
// magnetic spin-cross-section mixing. Model kernels (package
// mdl/kernel) are external leaf collaborators; this package owns the
// quadrature, not the physics of any particular model.
package integral

import "github.com/cpmech/gosl/chk"

// MaxPD is the maximum number of simultaneously active polydispersity
// dimensions a Descriptor may carry.
const MaxPD = 5

// Dispatch selects which model capability the driver invokes for a
// cube point.
type Dispatch int

const (
	Dispatch1D           Dispatch = iota // Iq(|q|, p); q given as scalars
	DispatchUnoriented2D                 // Iq(|q|, p); q given as (qx,qy) pairs, isotropic average
	DispatchSym                          // Iqac via orientation jitter in two angles
	DispatchAsym                         // Iqabc via orientation jitter in three angles
)

// MagneticSlot records where one magnetic scattering-length-density
// rewrite lives: SLDIndex is the slot in Block.Pars holding the
// nuclear SLD to rewrite, PoolOffset is the index into Pool.Values
// where the (m_x, m_y, m_z) triplet for this slot begins.
type MagneticSlot struct {
	SLDIndex   int
	PoolOffset int
}

// Descriptor is the problem descriptor (C3): the shape of the
// polydispersity hypercube plus the bookkeeping the driver needs to
// interpret the parameter pool.
type Descriptor struct {
	NumPars  int // number of plain model-parameter slots in Block.Pars
	Dispatch Dispatch

	// ThetaPar is the slot, in Block.Pars, of the mean orientation
	// angle triple (θ at ThetaPar, φ at ThetaPar+1, ψ at ThetaPar+2
	// when Dispatch == DispatchAsym). -1 when Dispatch == Dispatch1D
	// or DispatchUnoriented2D.
	ThetaPar int

	// JitterPar is the slot, in Block.Pars, of the per-point jitter
	// angle triple. Active polydispersity dimensions that drive
	// orientation jitter target this slot (and its +1/+2 neighbors),
	// distinct from ThetaPar which the cube iterator never touches.
	JitterPar int

	NumActive  int // number of active polydispersity dimensions, 0..MaxPD
	NumWeights int // length of the weight half of the pd value/weight pool

	PdPar    [MaxPD]int // which Block.Pars slot dimension d drives
	PdLength [MaxPD]int // grid length of dimension d
	PdOffset [MaxPD]int // shared index into Pool.Values for dimension d's values
	PdStride [MaxPD]int // mixed-radix stride of dimension d

	NumEval int // product of all PdLength[0:NumActive]

	Magnetic      bool
	MagneticSlots []MagneticSlot
}

// Validate checks the structural invariants a Descriptor must satisfy.
// Violations are precondition errors: callers are expected
// to supply a well-formed descriptor. Input parsing calls it, and every
// Driver.Run1D/Run2D call runs it before walking the hypercube.
func (d *Descriptor) Validate() error {
	if d.NumActive < 0 || d.NumActive > MaxPD {
		return chk.Err("num_active=%d must be in [0, %d]", d.NumActive, MaxPD)
	}
	stride := 1
	eval := 1
	for i := 0; i < d.NumActive; i++ {
		if d.PdStride[i] != stride {
			return chk.Err("pd_stride[%d]=%d does not match expected mixed-radix stride %d", i, d.PdStride[i], stride)
		}
		if d.PdLength[i] < 1 {
			return chk.Err("pd_length[%d]=%d must be >= 1", i, d.PdLength[i])
		}
		if d.PdPar[i] < 0 || d.PdPar[i] >= d.NumPars {
			return chk.Err("pd_par[%d]=%d out of range [0, %d)", i, d.PdPar[i], d.NumPars)
		}
		stride *= d.PdLength[i]
		eval *= d.PdLength[i]
	}
	for i := d.NumActive; i < MaxPD; i++ {
		if d.PdLength[i] != 0 && d.PdLength[i] != 1 {
			return chk.Err("pd_length[%d]=%d beyond num_active must be 1 (or unset)", i, d.PdLength[i])
		}
	}
	if eval != d.NumEval && d.NumEval != 0 {
		return chk.Err("num_eval=%d does not match product of pd_length=%d", d.NumEval, eval)
	}
	if (d.Dispatch == DispatchSym || d.Dispatch == DispatchAsym) && d.ThetaPar < 0 {
		return chk.Err("theta_par must be set (>=0) for oriented dispatch")
	}
	if d.Dispatch == Dispatch1D || d.Dispatch == DispatchUnoriented2D {
		if d.ThetaPar >= 0 {
			return chk.Err("theta_par must be -1 for unoriented dispatch")
		}
	}
	return nil
}

// magneticBase returns the index, in Pool.Values, of up_frac_i. The
// pool layout places [scale, background, p_1..p_NumPars] first, so
// the magnetic block starts right after.
func (d *Descriptor) magneticBase() int {
	return 2 + d.NumPars
}
