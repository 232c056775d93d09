// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernel defines the contract a scattering-model kernel must
// satisfy to be driven by package integral. Kernels are leaves: pure
// numeric functions of a scalar or vector q and a parameter tuple.
package kernel

// Model is the capability every scattering-model kernel must provide.
// A model exposes exactly one of Oriented1D, OrientedSym or
// OrientedAsym; integral.Driver selects by type assertion.
type Model interface {
	// FormVolume returns a positive scalar normalization volume for p.
	FormVolume(p []float64) float64
}

// Oriented1D is the capability for models with no preferred orientation.
type Oriented1D interface {
	Model
	Iq(q float64, p []float64) float64
}

// OrientedSym is the capability for models that are rotationally
// symmetric about the model's c-axis (two jitter angles).
type OrientedSym interface {
	Model
	Iqac(qa, qc float64, p []float64) float64
}

// OrientedAsym is the capability for models with no rotational symmetry
// (three jitter angles).
type OrientedAsym interface {
	Model
	Iqabc(qa, qb, qc float64, p []float64) float64
}

// Validator is the optional capability a model may provide to mark a
// cube point as unevaluable; such points are skipped with no weight
// and no denominator contribution.
type Validator interface {
	Invalid(p []float64) bool
}

// AmplitudeKernel is the optional capability some models provide for
// structure-factor composition. integral never calls this; it exists
// so the interface boundary described by the model kernel contract is
// representable, not because the core consumes it.
type AmplitudeKernel interface {
	F1Q(q float64, p []float64) float64
	F2Q(q float64, p []float64) float64
}
