// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package multilayervesicle ports
// original_source/sasmodels/models/multilayer_vesicle.c's Iq kernel
// verbatim in its order of operations, including the load-bearing use
// of voli, the outermost shell's volume at loop exit, in the final
// rescale: a kernel may depend on state like this in ways invisible to
// its signature.
package multilayervesicle

import "math"

// NumPars is the parameter-tuple size: volfraction, radius,
// thick_shell, thick_solvent, sld_solvent, sld, n_pairs.
const NumPars = 7

const fourPi3 = 4.0 / 3.0 * math.Pi

// Model implements mdl/kernel's Oriented1D and Validator capabilities.
type Model struct{}

func sphJ1c(x float64) float64 {
	if math.Abs(x) < 1e-8 {
		return 1
	}
	return 3 * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
}

// kernel is a direct port of multilayer_vesicle_kernel: each loop pass
// evaluates one shell as two sphere terms (its inner and outer
// surface), and the final rescale divides by voli, the
// last shell's volume computed inside the loop, not a separately
// tracked outer-shell volume.
func kernel(q, volfraction, radius, thickShell, thickSolvent, sldSolvent, sld float64, nPairs int) float64 {
	sldi := sldSolvent - sld
	var fval, voli float64
	ii := 0
	for {
		ri := radius + float64(ii)*(thickShell+thickSolvent)

		voli = fourPi3 * ri * ri * ri
		fval += voli * sldi * sphJ1c(ri * q)

		ri += thickShell
		voli = fourPi3 * ri * ri * ri
		fval -= voli * sldi * sphJ1c(ri * q)

		ii++
		if ii > nPairs-1 {
			break
		}
	}
	fval *= volfraction * 1.0e-4 * fval / voli
	return fval
}

// Iq is the 1-D form factor.
func (Model) Iq(q float64, p []float64) float64 {
	volfraction, radius, thickShell, thickSolvent, sldSolvent, sld, fpNPairs := p[0], p[1], p[2], p[3], p[4], p[5], p[6]
	nPairs := int(fpNPairs + 0.5)
	return kernel(q, volfraction, radius, thickShell, thickSolvent, sldSolvent, sld, nPairs)
}

// FormVolume returns the outermost shell's volume at the same ii it
// settles at inside Iq's kernel, for a model-consistent normalization;
// original_source's multilayer_vesicle.c does not expose a
// form_volume, so this choice is documented in DESIGN.md.
func (Model) FormVolume(p []float64) float64 {
	radius, thickShell, thickSolvent, fpNPairs := p[1], p[2], p[3], p[6]
	nPairs := int(fpNPairs + 0.5)
	if nPairs < 1 {
		nPairs = 1
	}
	outer := radius + float64(nPairs-1)*(thickShell+thickSolvent) + thickShell
	return fourPi3 * outer * outer * outer
}

// Invalid rejects non-physical radii or a non-positive shell count.
func (Model) Invalid(p []float64) bool {
	radius, thickShell, thickSolvent, fpNPairs := p[1], p[2], p[3], p[6]
	return radius <= 0 || thickShell < 0 || thickSolvent < 0 || fpNPairs <= 0
}
