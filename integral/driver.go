// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integral

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/go-sas/scatterfem/integral/cube"
	"github.com/go-sas/scatterfem/integral/magnetic"
	"github.com/go-sas/scatterfem/integral/orient"
	"github.com/go-sas/scatterfem/mdl/kernel"
)

// Point2 is a lab-frame momentum-transfer pair (qx, qy), used for the
// 2-D and magnetic call signatures.
type Point2 struct{ X, Y float64 }

// Driver orchestrates C6 (hypercube iteration) against C1 (the model
// kernel), applying C4/C5 dressing as the descriptor requires, and
// accumulates into the caller-owned result buffer.
type Driver struct {
	// Workers bounds how many goroutines fan out across the per-q
	// loop of a single cube point. 0 or 1 means sequential. The outer
	// cube enumeration itself is always sequential.
	Workers int

	// Verbose routes per-slice diagnostics through gosl/io.
	Verbose bool
}

const qsqFloor = 1e-16
const spinFloor = 1e-8

// evalFn evaluates the non-magnetic scattering at one q for one cube
// point, given the mean and jitter orientation angles already read
// out of the block for this point.
type evalFn func(pars []float64, qx, qy, meanTheta, meanPhi, meanPsi, jitTheta, jitPhi, jitPsi float64) float64

// dims builds the cube.Dim slice this descriptor's active dimensions
// describe, for consumption by package integral/cube.
func (d *Descriptor) dims() []cube.Dim {
	out := make([]cube.Dim, d.NumActive)
	for i := 0; i < d.NumActive; i++ {
		out[i] = cube.Dim{Par: d.PdPar[i], Length: d.PdLength[i], Offset: d.PdOffset[i], Stride: d.PdStride[i]}
	}
	return out
}

// Run1D evaluates the 1-D, unoriented, non-magnetic form:
// s_k = Iq(q_k, p).
func (drv *Driver) Run1D(model kernel.Oriented1D, details *Descriptor, pool *Pool, pdStart, pdStop int, q []float64, result []float64, cutoff float64) error {
	nq := len(result) - 1
	if len(q) != nq {
		return chk.Err("len(q)=%d does not match len(result)-1=%d", len(q), nq)
	}
	return drv.runCube(details, pool, pdStart, pdStop, cutoff, result, model, func(block *Block, w float64) {
		drv.forEachQ(nq, func(k int) {
			result[k] += w * model.Iq(q[k], block.Pars)
		})
	})
}

// Run2D evaluates the unoriented-isotropic, oriented-symmetric,
// oriented-asymmetric, or magnetic forms over 2-D q. The capability required of model
// depends on details.Dispatch.
func (drv *Driver) Run2D(model kernel.Model, details *Descriptor, pool *Pool, pdStart, pdStop int, q []Point2, result []float64, cutoff float64) error {
	nq := len(result) - 1
	if len(q) != nq {
		return chk.Err("len(q)=%d does not match len(result)-1=%d", len(q), nq)
	}

	eval, err := buildEval(model, details.Dispatch)
	if err != nil {
		return err
	}

	return drv.runCube(details, pool, pdStart, pdStop, cutoff, result, model, func(block *Block, w float64) {
		meanTheta, meanPhi, meanPsi := details.MeanAngles(block)
		jitTheta, jitPhi, jitPsi := details.JitterAngles(block)
		if !details.Magnetic {
			drv.forEachQ(nq, func(k int) {
				result[k] += w * eval(block.Pars, q[k].X, q[k].Y, meanTheta, meanPhi, meanPsi, jitTheta, jitPhi, jitPsi)
			})
			return
		}
		drv.runMagnetic(details, pool, block, meanTheta, meanPhi, meanPsi, jitTheta, jitPhi, jitPsi, eval, q, w, result)
	})
}

// buildEval selects the non-magnetic evaluation closure appropriate
// for details.Dispatch, type-asserting the capability the dispatch
// requires out of model (a model exposes exactly one of
// {Iq, Iqac, Iqabc}).
func buildEval(model kernel.Model, dispatch Dispatch) (evalFn, error) {
	switch dispatch {
	case DispatchUnoriented2D:
		m, ok := model.(kernel.Oriented1D)
		if !ok {
			return nil, chk.Err("model does not implement Iq required for unoriented-2D dispatch")
		}
		return func(pars []float64, qx, qy, _, _, _, _, _, _ float64) float64 {
			return m.Iq(math.Hypot(qx, qy), pars)
		}, nil
	case DispatchSym:
		m, ok := model.(kernel.OrientedSym)
		if !ok {
			return nil, chk.Err("model does not implement Iqac required for oriented-symmetric dispatch")
		}
		return func(pars []float64, qx, qy, mt, mp, _, jt, jp, _ float64) float64 {
			qa, qc := orient.Symmetric(qx, qy, mt, mp, jt, jp)
			return m.Iqac(qa, qc, pars)
		}, nil
	case DispatchAsym:
		m, ok := model.(kernel.OrientedAsym)
		if !ok {
			return nil, chk.Err("model does not implement Iqabc required for oriented-asymmetric dispatch")
		}
		return func(pars []float64, qx, qy, mt, mp, mps, jt, jp, jps float64) float64 {
			qa, qb, qc := orient.Asymmetric(qx, qy, mt, mp, mps, jt, jp, jps)
			return m.Iqabc(qa, qb, qc, pars)
		}, nil
	}
	return nil, chk.Err("Run2D does not support Dispatch1D; call Run1D instead")
}

// runCube walks the hypercube from pdStart to pdStop, applying the
// invalid/cutoff policy and the denominator accumulation
// common to every dispatch, delegating the per-point scattering
// accumulation to accumulate. It owns the zero-or-resume decision for
// the result buffer.
func (drv *Driver) runCube(details *Descriptor, pool *Pool, pdStart, pdStop int, cutoff float64, result []float64, model kernel.Model, accumulate func(block *Block, w float64)) error {
	if err := details.Validate(); err != nil {
		return err
	}
	nq := len(result) - 1

	var pdNorm float64
	if pdStart == 0 {
		for k := 0; k < nq; k++ {
			result[k] = 0
		}
	} else {
		pdNorm = result[nq]
	}

	block := NewBlock(details, pool)
	it := cube.New(details.dims(), details.NumWeights, pool.Values, pdStart, pdStop)

	validator, checksInvalid := model.(kernel.Validator)
	var invalidCount, cutoffCount int
	for {
		w, ok := it.Next(block.Pars)
		if !ok {
			break
		}
		if checksInvalid && validator.Invalid(block.Pars) {
			invalidCount++
			continue
		}
		if w <= cutoff {
			cutoffCount++
			continue
		}
		accumulate(block, w)
		pdNorm += w * model.FormVolume(block.Pars)
	}
	result[nq] = pdNorm

	if drv.Verbose {
		io.Pf("integral: slice [%d,%d) done, invalid=%d, cutoff-pruned=%d, pd_norm=%g\n", pdStart, pdStop, invalidCount, cutoffCount, pdNorm)
	}
	return nil
}

// runMagnetic implements C5 for one cube point: for every q with
// qx²+qy² > qsqFloor, mix the four spin cross-sections, rewriting the
// magnetic SLD slots before each model invocation.
func (drv *Driver) runMagnetic(details *Descriptor, pool *Pool, block *Block, meanTheta, meanPhi, meanPsi, jitTheta, jitPhi, jitPsi float64, eval evalFn, q []Point2, w float64, result []float64) {
	upAngle := details.UpAngle(pool)
	spins := magnetic.Weights(details.UpFracI(pool), details.UpFracF(pool))

	nuclear := make([]float64, len(details.MagneticSlots))
	for i, slot := range details.MagneticSlots {
		nuclear[i] = block.Pars[slot.SLDIndex]
	}
	restore := func(pars []float64) {
		for i, slot := range details.MagneticSlots {
			pars[slot.SLDIndex] = nuclear[i]
		}
	}
	defer restore(block.Pars)

	nq := len(result) - 1
	chunkFn := func(pars []float64, k int) {
		qx, qy := q[k].X, q[k].Y
		p, qsq := magnetic.Projections(qx, qy, upAngle)
		if qsq <= qsqFloor {
			return
		}
		var acc float64
		for i := 0; i < 4; i++ {
			if spins[i] <= spinFloor {
				continue
			}
			spin := magnetic.Spin(i)
			flip := magnetic.FlipsNonFlip(spin)

			for si, slot := range details.MagneticSlots {
				mx, my, _ := pool.MagneticTriplet(slot)
				nuclearTerm := 0.0
				if !flip {
					nuclearTerm = nuclear[si]
				}
				pars[slot.SLDIndex] = spins[i] * magnetic.SLD(qx, qy, p[i], mx, my, nuclearTerm)
			}
			acc += eval(pars, qx, qy, meanTheta, meanPhi, meanPsi, jitTheta, jitPhi, jitPsi)

			if flip {
				for si, slot := range details.MagneticSlots {
					_, _, mz := pool.MagneticTriplet(slot)
					pars[slot.SLDIndex] = spins[i] * magnetic.FlipZ(spin, mz)
				}
				acc += eval(pars, qx, qy, meanTheta, meanPhi, meanPsi, jitTheta, jitPhi, jitPsi)
			}
		}
		result[k] += w * acc
	}

	if drv.Workers <= 1 || nq < 2*drv.Workers {
		for k := 0; k < nq; k++ {
			chunkFn(block.Pars, k)
		}
		return
	}

	// magnetic mode mutates the parameter block per q; each worker
	// needs a private copy, since the loop body mutates Pars per q.
	var wg sync.WaitGroup
	workers := drv.Workers
	chunk := (nq + workers - 1) / workers
	for start := 0; start < nq; start += chunk {
		end := start + chunk
		if end > nq {
			end = nq
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			local := block.Copy()
			for k := start; k < end; k++ {
				chunkFn(local.Pars, k)
			}
		}(start, end)
	}
	wg.Wait()
}

// forEachQ fans the per-q loop out across drv.Workers goroutines when
// Workers > 1; each result[k] is touched by exactly one worker so
// accumulation stays bitwise-deterministic. Safe only for
// non-magnetic dispatch, where pars is read-only inside the loop.
func (drv *Driver) forEachQ(nq int, body func(k int)) {
	if drv.Workers <= 1 || nq < 2*drv.Workers {
		for k := 0; k < nq; k++ {
			body(k)
		}
		return
	}
	var wg sync.WaitGroup
	chunk := (nq + drv.Workers - 1) / drv.Workers
	for start := 0; start < nq; start += chunk {
		end := start + chunk
		if end > nq {
			end = nq
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for k := start; k < end; k++ {
				body(k)
			}
		}(start, end)
	}
	wg.Wait()
}
