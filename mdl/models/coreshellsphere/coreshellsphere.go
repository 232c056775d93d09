// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package coreshellsphere implements the core-shell-sphere scattering
// model kernel, grounded in
// original_source/sasmodels/models/core_shell_sphere.c's Iq/Fq/
// form_volume signatures. core_shell_kernel's own body is not available
// in original_source, so the amplitude below is the standard textbook
// core-shell-sphere form factor rather than a literal port: a sum of
// two uniform-sphere amplitudes at the contrast steps core/shell and
// shell/solvent.
package coreshellsphere

import "math"

// NumPars is the parameter-tuple size this model occupies in a
// Block: radius, thickness, core_sld, shell_sld, solvent_sld.
const NumPars = 5

const fourPi3 = 4.0 / 3.0 * math.Pi

// Model implements mdl/kernel's Oriented1D, Validator, and
// AmplitudeKernel capabilities.
type Model struct{}

// sphereAmplitude returns 3*(sin(x)-x*cos(x))/x^3, the normalized
// uniform-sphere form factor amplitude, with the qr->0 limit of 1.
func sphereAmplitude(x float64) float64 {
	if math.Abs(x) < 1e-8 {
		return 1
	}
	return 3 * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
}

func intensity(q float64, p []float64) float64 {
	radius, thickness, coreSLD, shellSLD, solventSLD := p[0], p[1], p[2], p[3], p[4]
	rc := radius
	rt := radius + thickness
	vc := fourPi3 * rc * rc * rc
	vt := fourPi3 * rt * rt * rt
	fq := vc*(coreSLD-shellSLD)*sphereAmplitude(q*rc) + vt*(shellSLD-solventSLD)*sphereAmplitude(q*rt)
	return 1.0e-4 * fq * fq
}

// Iq is the 1-D form factor.
func (Model) Iq(q float64, p []float64) float64 {
	return intensity(q, p)
}

// F1Q and F2Q expose the amplitude/intensity pair for structure-factor
// composition; integral never calls these.
func (Model) F1Q(q float64, p []float64) float64 {
	return math.Sqrt(intensity(q, p))
}

func (Model) F2Q(q float64, p []float64) float64 {
	return intensity(q, p)
}

// FormVolume returns the outer (shell) volume, matching
// core_shell_sphere.c's form_volume.
func (Model) FormVolume(p []float64) float64 {
	radius, thickness := p[0], p[1]
	rt := radius + thickness
	return fourPi3 * rt * rt * rt
}

// Invalid rejects non-physical radii/thicknesses.
func (Model) Invalid(p []float64) bool {
	return p[0] <= 0 || p[1] < 0
}
