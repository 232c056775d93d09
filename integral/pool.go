// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integral

// Pool is the flat parameter pool: scale, background, the model's own
// parameters, the optional magnetic block, and finally the
// concatenated polydispersity value/weight grids. It is read-only for
// the duration of a Driver.Run1D/Run2D call and may be shared across
// concurrent calls.
type Pool struct {
	Values []float64
}

// Scale returns the scale factor. The integrator itself never applies
// it; callers scale result[k]/pd_norm afterwards.
func (p *Pool) Scale() float64 { return p.Values[0] }

// Background returns the background level, likewise caller-applied.
func (p *Pool) Background() float64 { return p.Values[1] }

// Par returns the i-th nominal model parameter, before any
// polydispersity dimension overwrites it in a Block.
func (p *Pool) Par(i int) float64 { return p.Values[2+i] }

// PdValue returns the i-th grid point of active dimension dim.
func (d *Descriptor) PdValue(p *Pool, dim, i int) float64 {
	return p.Values[d.PdOffset[dim]+i]
}

// PdWeight returns the i-th grid weight of active dimension dim.
func (d *Descriptor) PdWeight(p *Pool, dim, i int) float64 {
	return p.Values[d.PdOffset[dim]+d.NumWeights+i]
}

// UpFracI returns the initial-spin up fraction, pre-clamp.
func (d *Descriptor) UpFracI(p *Pool) float64 { return p.Values[d.magneticBase()] }

// UpFracF returns the final-spin up fraction, pre-clamp.
func (d *Descriptor) UpFracF(p *Pool) float64 { return p.Values[d.magneticBase()+1] }

// UpAngle returns the polarization axis angle, in degrees.
func (d *Descriptor) UpAngle(p *Pool) float64 { return p.Values[d.magneticBase()+2] }

// MagneticTriplet returns the (m_x, m_y, m_z) magnetization for a slot.
func (p *Pool) MagneticTriplet(slot MagneticSlot) (mx, my, mz float64) {
	return p.Values[slot.PoolOffset], p.Values[slot.PoolOffset+1], p.Values[slot.PoolOffset+2]
}
