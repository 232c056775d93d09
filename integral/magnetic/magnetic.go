// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package magnetic implements the pure-math half of the magnetic
// mixer: spin cross-section weights and the polarization
// projection/SLD-rewrite formulas. It knows nothing of parameter
// blocks or models; package integral drives the per-(q,spin) loop and
// calls back into here for the arithmetic.
package magnetic

import "math"

const deg2rad = math.Pi / 180

// Spin indexes the four cross-sections dd=0, du=1, ud=2, uu=3.
type Spin int

const (
	DD Spin = iota
	DU
	UD
	UU
)

// Clip restricts value to [low, high]. It must run before the
// fourth-root in Weights, otherwise sqrt(sqrt(negative)) yields NaN
// silently.
func Clip(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// Weights returns the four spin cross-section weights for the given
// initial/final spin-up fractions, clamped to [0,1] first.
func Weights(upFracI, upFracF float64) [4]float64 {
	i := Clip(upFracI, 0, 1)
	f := Clip(upFracF, 0, 1)
	return [4]float64{
		math.Sqrt(math.Sqrt((1 - i) * (1 - f))), // dd
		math.Sqrt(math.Sqrt((1 - i) * f)),       // du
		math.Sqrt(math.Sqrt(i * (1 - f))),       // ud
		math.Sqrt(math.Sqrt(i * f)),             // uu
	}
}

// FlipsNonFlip reports whether cross-section s is a spin-flip
// transition: du and ud flip, dd and uu do not.
func FlipsNonFlip(s Spin) bool {
	return s == DU || s == UD
}

// Projections computes the four polarization projections p[0..3], one
// per cross-section, used in the in-plane SLD rewrite, along with
// qsq = qx²+qy². The caller must check qsq against the 1e-16 floor
// before calling; Projections divides by qsq unconditionally.
func Projections(qx, qy, upAngle float64) (p [4]float64, qsq float64) {
	qsq = qx*qx + qy*qy
	sm, cm := math.Sincos(-upAngle * deg2rad)
	p0 := (qy*cm + qx*sm) / qsq
	p1 := (qy*sm - qx*cm) / qsq
	p[0] = p0
	p[1] = p1
	p[2] = p1
	p[3] = -p0
	return
}

// SLD computes the spin-dependent nuclear+magnetic in-plane SLD
// contribution for any cross-section: sld is
// the nuclear SLD to rewrite from (0 for a flip cross-section), mx/my
// the in-plane magnetization, pk the polarization projection for this
// spin.
func SLD(qx, qy, pk, mx, my, sld float64) float64 {
	perp := qy*mx - qx*my
	return sld + perp*pk
}

// FlipZ computes the spin-dependent magnetization contribution for a
// spin-flip cross-section: du flips the
// sign of m_z, ud does not.
func FlipZ(s Spin, mz float64) float64 {
	if s == DU {
		return -mz
	}
	return mz
}
