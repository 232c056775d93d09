// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integral

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// identityModel is a synthetic 1-D kernel: Iq(q,p) = p[0],
// form_volume(p) = p[0]. Used for E1.
type identityModel struct{}

func (identityModel) Iq(q float64, p []float64) float64 { return p[0] }
func (identityModel) FormVolume(p []float64) float64    { return p[0] }

// unitVolumeModel is Iq(q,p) = p[0] with a constant unit form_volume.
// Used for E2-E4.
type unitVolumeModel struct{}

func (unitVolumeModel) Iq(q float64, p []float64) float64 { return p[0] }
func (unitVolumeModel) FormVolume(p []float64) float64    { return 1 }

// invalidAtModel rejects one specific parameter value outright.
type invalidAtModel struct {
	unitVolumeModel
	skip float64
}

func (m invalidAtModel) Invalid(p []float64) bool { return p[0] == m.skip }

// oneDimPool builds a Pool+Descriptor with a single active
// polydispersity dimension driving Block.Pars[0].
func oneDimPool(values, weights []float64) (*Descriptor, *Pool) {
	numPars := 1
	valuesBase := 2 + numPars
	pool := make([]float64, valuesBase+len(values)+len(weights))
	pool[2] = 0 // nominal, overwritten by the pd dimension
	copy(pool[valuesBase:], values)
	copy(pool[valuesBase+len(values):], weights)

	d := &Descriptor{
		NumPars:    numPars,
		Dispatch:   Dispatch1D,
		ThetaPar:   -1,
		JitterPar:  -1,
		NumActive:  1,
		NumWeights: len(weights),
		NumEval:    len(values),
	}
	d.PdPar[0] = 0
	d.PdLength[0] = len(values)
	d.PdOffset[0] = valuesBase
	d.PdStride[0] = 1

	return d, &Pool{Values: pool}
}

// zeroDimPool builds a Pool+Descriptor with no active polydispersity
// dimensions: num_eval = 1, the single cube point reads the nominal
// parameter value straight from the pool.
func zeroDimPool(nominal float64) (*Descriptor, *Pool) {
	pool := []float64{0, 0, nominal}
	d := &Descriptor{
		NumPars:   1,
		Dispatch:  Dispatch1D,
		ThetaPar:  -1,
		JitterPar: -1,
		NumEval:   1,
	}
	return d, &Pool{Values: pool}
}

func TestE1MinimalOneD(tst *testing.T) {
	chk.PrintTitle("E1 minimal 1-D")
	d, pool := zeroDimPool(2.5)
	result := make([]float64, 3)
	var drv Driver
	err := drv.Run1D(identityModel{}, d, pool, 0, d.NumEval, []float64{1.0, 2.0}, result, 0)
	if err != nil {
		tst.Fatalf("Run1D failed: %v", err)
	}
	chk.AnaNum(tst, "result[0]", 1e-15, result[0], 2.5, false)
	chk.AnaNum(tst, "result[1]", 1e-15, result[1], 2.5, false)
	chk.AnaNum(tst, "result[2]", 1e-15, result[2], identityModel{}.FormVolume([]float64{2.5}), false)
}

func TestE2Polydispersity(tst *testing.T) {
	chk.PrintTitle("E2 1-D with polydispersity")
	d, pool := oneDimPool([]float64{1, 2, 3}, []float64{0.25, 0.5, 0.25})
	result := make([]float64, 2)
	var drv Driver
	err := drv.Run1D(unitVolumeModel{}, d, pool, 0, d.NumEval, []float64{1.0}, result, 0)
	if err != nil {
		tst.Fatalf("Run1D failed: %v", err)
	}
	chk.AnaNum(tst, "result[0]", 1e-15, result[0], 2.0, false)
	chk.AnaNum(tst, "pd_norm", 1e-15, result[1], 1.0, false)
}

func TestE3CutoffPruning(tst *testing.T) {
	chk.PrintTitle("E3 cutoff pruning")
	d, pool := oneDimPool([]float64{1, 2, 3}, []float64{0.25, 0.5, 1e-9})
	result := make([]float64, 2)
	var drv Driver
	err := drv.Run1D(unitVolumeModel{}, d, pool, 0, d.NumEval, []float64{1.0}, result, 1e-6)
	if err != nil {
		tst.Fatalf("Run1D failed: %v", err)
	}
	chk.AnaNum(tst, "result[0]", 1e-15, result[0], 0.25*1+0.5*2, false)
	chk.AnaNum(tst, "pd_norm", 1e-15, result[1], 0.75, false)
}

func TestE4Resumability(tst *testing.T) {
	chk.PrintTitle("E4 resumability")
	d, pool := oneDimPool([]float64{1, 2, 3}, []float64{0.25, 0.5, 0.25})

	full := make([]float64, 2)
	var drvFull Driver
	if err := drvFull.Run1D(unitVolumeModel{}, d, pool, 0, d.NumEval, []float64{1.0}, full, 0); err != nil {
		tst.Fatalf("full run failed: %v", err)
	}

	sliced := make([]float64, 2)
	var drvSliced Driver
	if err := drvSliced.Run1D(unitVolumeModel{}, d, pool, 0, 1, []float64{1.0}, sliced, 0); err != nil {
		tst.Fatalf("slice 1 failed: %v", err)
	}
	if err := drvSliced.Run1D(unitVolumeModel{}, d, pool, 1, 3, []float64{1.0}, sliced, 0); err != nil {
		tst.Fatalf("slice 2 failed: %v", err)
	}

	chk.AnaNum(tst, "result[0]", 1e-15, sliced[0], full[0], false)
	chk.AnaNum(tst, "pd_norm", 1e-15, sliced[1], full[1], false)
}

func TestInvariantWeightLinearity(tst *testing.T) {
	chk.PrintTitle("weight linearity")
	d, pool := oneDimPool([]float64{1, 2, 3}, []float64{0.25, 0.5, 0.25})
	base := make([]float64, 2)
	var drv Driver
	if err := drv.Run1D(unitVolumeModel{}, d, pool, 0, d.NumEval, []float64{1.0}, base, 0); err != nil {
		tst.Fatalf("base run failed: %v", err)
	}

	dScaled, poolScaled := oneDimPool([]float64{1, 2, 3}, []float64{0.5, 1.0, 0.5}) // c=2
	scaled := make([]float64, 2)
	if err := drv.Run1D(unitVolumeModel{}, dScaled, poolScaled, 0, dScaled.NumEval, []float64{1.0}, scaled, 0); err != nil {
		tst.Fatalf("scaled run failed: %v", err)
	}

	chk.AnaNum(tst, "result[0] scales by c", 1e-15, scaled[0], 2*base[0], false)
	chk.AnaNum(tst, "pd_norm scales by c", 1e-15, scaled[1], 2*base[1], false)
	chk.AnaNum(tst, "ratio invariant", 1e-15, scaled[0]/scaled[1], base[0]/base[1], false)
}

func TestInvariantCutoffMonotonicity(tst *testing.T) {
	chk.PrintTitle("cutoff monotonicity")
	d, pool := oneDimPool([]float64{1, 2, 3}, []float64{0.25, 0.5, 1e-9})
	var drv Driver

	low := make([]float64, 2)
	if err := drv.Run1D(unitVolumeModel{}, d, pool, 0, d.NumEval, []float64{1.0}, low, 1e-12); err != nil {
		tst.Fatalf("low cutoff run failed: %v", err)
	}
	high := make([]float64, 2)
	if err := drv.Run1D(unitVolumeModel{}, d, pool, 0, d.NumEval, []float64{1.0}, high, 1e-6); err != nil {
		tst.Fatalf("high cutoff run failed: %v", err)
	}
	if high[1] > low[1] {
		tst.Fatalf("raising cutoff must not increase pd_norm: low=%g high=%g", low[1], high[1])
	}
}

func TestInvariantZeroPolydispersityDegeneracy(tst *testing.T) {
	chk.PrintTitle("zero polydispersity degeneracy")
	d, pool := zeroDimPool(4.0)
	result := make([]float64, 3)
	var drv Driver
	if err := drv.Run1D(identityModel{}, d, pool, 0, d.NumEval, []float64{0.1, 0.2}, result, 0); err != nil {
		tst.Fatalf("run failed: %v", err)
	}
	chk.AnaNum(tst, "result[0]", 1e-15, result[0], 4.0, false)
	chk.AnaNum(tst, "result[1]", 1e-15, result[1], 4.0, false)
	chk.AnaNum(tst, "pd_norm", 1e-15, result[2], 4.0, false)
}

func TestInvariantInvalidSkipping(tst *testing.T) {
	chk.PrintTitle("invalid skipping")
	d, pool := oneDimPool([]float64{1, 2, 3}, []float64{0.25, 0.5, 0.25})
	result := make([]float64, 2)
	var drv Driver
	if err := drv.Run1D(invalidAtModel{skip: 3}, d, pool, 0, d.NumEval, []float64{1.0}, result, 0); err != nil {
		tst.Fatalf("run failed: %v", err)
	}

	dRemoved, poolRemoved := oneDimPool([]float64{1, 2}, []float64{0.25, 0.5})
	removed := make([]float64, 2)
	if err := drv.Run1D(unitVolumeModel{}, dRemoved, poolRemoved, 0, dRemoved.NumEval, []float64{1.0}, removed, 0); err != nil {
		tst.Fatalf("run failed: %v", err)
	}

	chk.AnaNum(tst, "result[0]", 1e-15, result[0], removed[0], false)
	chk.AnaNum(tst, "pd_norm", 1e-15, result[1], removed[1], false)
}

// symModel is a synthetic oriented-symmetric kernel used for E5:
// Iqac(qa,qc,p) = qa^2+qc^2.
type symModel struct{}

func (symModel) Iqac(qa, qc float64, p []float64) float64 { return qa*qa + qc*qc }
func (symModel) FormVolume(p []float64) float64           { return 1 }

func TestE5OrientationSymmetricIdentity(tst *testing.T) {
	chk.PrintTitle("E5 orientation-symmetric identity")
	// single parameter slot holding mean theta, phi plus a trailing
	// jitter pair; num_pars large enough to host both groups plus a
	// dummy model parameter at slot 0.
	numPars := 5 // [0]=dummy, [1,2]=mean theta/phi, [3,4]=jitter theta/phi
	pool := make([]float64, 2+numPars)
	d := &Descriptor{
		NumPars:   numPars,
		Dispatch:  DispatchSym,
		ThetaPar:  1,
		JitterPar: 3,
		NumEval:   1,
	}
	result := make([]float64, 2)
	var drv Driver
	q := []Point2{{X: 0.3, Y: 0.4}}
	err := drv.Run2D(symModel{}, d, &Pool{Values: pool}, 0, d.NumEval, q, result, 0)
	if err != nil {
		tst.Fatalf("Run2D failed: %v", err)
	}
	chk.AnaNum(tst, "scattering", 1e-12, result[0], 0.25, false)
}

func TestE5OrientationSymmetricNonzeroMeanZeroJitter(tst *testing.T) {
	chk.PrintTitle("E5 orientation-symmetric reduction to mean angles")
	// a nonzero mean orientation with zero jitter must still reduce to
	// evaluating Iqac at the mean angles; since symModel computes
	// qa^2+qc^2, any dqc that drops the mean rotation (or any dqa
	// recovered from a mismatched dqc) breaks the qx^2+qy^2 identity.
	numPars := 5
	pool := make([]float64, 2+numPars)
	pool[2+1] = 90 // mean theta
	d := &Descriptor{
		NumPars:   numPars,
		Dispatch:  DispatchSym,
		ThetaPar:  1,
		JitterPar: 3,
		NumEval:   1,
	}
	result := make([]float64, 2)
	var drv Driver
	q := []Point2{{X: 0.3, Y: 0.4}}
	err := drv.Run2D(symModel{}, d, &Pool{Values: pool}, 0, d.NumEval, q, result, 0)
	if err != nil {
		tst.Fatalf("Run2D failed: %v", err)
	}
	chk.AnaNum(tst, "scattering", 1e-12, result[0], 0.25, false)
}

// sldEchoModel is a synthetic unoriented-2D kernel that just returns
// whatever SLD value currently sits at p[0], used to observe the
// magnetic mixer's rewrite of the parameter block.
type sldEchoModel struct{}

func (sldEchoModel) Iq(q float64, p []float64) float64 { return p[0] }
func (sldEchoModel) FormVolume(p []float64) float64    { return 1 }

func TestE6MagneticNonSpinFlipReduction(tst *testing.T) {
	chk.PrintTitle("E6 magnetic non-spin-flip reduction")
	nuclearSLD := 5.0
	// pool: [scale, background, p0=nuclear_sld, up_frac_i, up_frac_f, up_angle, mx, my, mz]
	pool := []float64{1, 0, nuclearSLD, 1, 1, 0, 0, 0, 0}
	d := &Descriptor{
		NumPars:       1,
		Dispatch:      DispatchUnoriented2D,
		ThetaPar:      -1,
		JitterPar:     -1,
		NumEval:       1,
		Magnetic:      true,
		MagneticSlots: []MagneticSlot{{SLDIndex: 0, PoolOffset: 6}},
	}
	result := make([]float64, 2)
	var drv Driver
	q := []Point2{{X: 1, Y: 0}}
	if err := drv.Run2D(sldEchoModel{}, d, &Pool{Values: pool}, 0, d.NumEval, q, result, 0); err != nil {
		tst.Fatalf("Run2D failed: %v", err)
	}
	chk.AnaNum(tst, "magnetic result == nuclear SLD", 1e-12, result[0], nuclearSLD, false)
}

func TestInvariantMagneticZeroFieldMatchedFractions(tst *testing.T) {
	chk.PrintTitle("invariant: magnetic zero-field at matched fractions")
	// The fourth-root spin weights only sum dd+uu back to 1 at the
	// extremes up_frac_i=up_frac_f∈{0,1} (e.g. sqrt(1-x)+sqrt(x) != 1 for
	// x=0.5); DESIGN.md records this as an inherited limitation, so this
	// invariant is exercised at the other extreme from the preceding
	// test's i=f=1 case.
	nuclearSLD := 3.0
	magPool := []float64{1, 0, nuclearSLD, 0, 0, 0, 0, 0, 0}
	dMag := &Descriptor{
		NumPars:       1,
		Dispatch:      DispatchUnoriented2D,
		ThetaPar:      -1,
		JitterPar:     -1,
		NumEval:       1,
		Magnetic:      true,
		MagneticSlots: []MagneticSlot{{SLDIndex: 0, PoolOffset: 6}},
	}
	magResult := make([]float64, 2)
	var drv Driver
	q := []Point2{{X: 0.6, Y: 0.8}}
	if err := drv.Run2D(sldEchoModel{}, dMag, &Pool{Values: magPool}, 0, dMag.NumEval, q, magResult, 0); err != nil {
		tst.Fatalf("magnetic Run2D failed: %v", err)
	}

	plainPool := []float64{1, 0, nuclearSLD}
	dPlain := &Descriptor{NumPars: 1, Dispatch: DispatchUnoriented2D, ThetaPar: -1, JitterPar: -1, NumEval: 1}
	plainResult := make([]float64, 2)
	if err := drv.Run2D(sldEchoModel{}, dPlain, &Pool{Values: plainPool}, 0, dPlain.NumEval, q, plainResult, 0); err != nil {
		tst.Fatalf("plain Run2D failed: %v", err)
	}

	chk.AnaNum(tst, "magnetic matches non-magnetic at m=0, i=f", 1e-12, magResult[0], plainResult[0], false)
}
