// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a problem-descriptor
// JSON file: read the whole file with gosl/io, decode with
// encoding/json, wrap failures with gosl/chk.
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/go-sas/scatterfem/integral"
)

// PdDim is the JSON shape of one active polydispersity dimension.
type PdDim struct {
	Par    int `json:"par"`
	Length int `json:"length"`
	Offset int `json:"offset"`
	Stride int `json:"stride"`
}

// MagSlot is the JSON shape of one magnetic SLD rewrite slot.
type MagSlot struct {
	SLDIndex   int `json:"sld_index"`
	PoolOffset int `json:"pool_offset"`
}

// Point2 is the JSON shape of one lab-frame (qx, qy) pair.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Problem is the on-disk shape of a scattering-intensity integration
// job: which model to run, how its descriptor is laid out, and the
// q-grid to evaluate against.
type Problem struct {
	Model    string  `json:"model"`
	Dispatch string  `json:"dispatch"` // "1d", "2d", "sym", "asym"
	NumPars  int     `json:"num_pars"`
	Cutoff   float64 `json:"cutoff"`
	Workers  int     `json:"workers"`
	Verbose  bool    `json:"verbose"`

	ThetaPar  int `json:"theta_par"`
	JitterPar int `json:"jitter_par"`

	PdDims     []PdDim `json:"pd_dims"`
	NumWeights int     `json:"num_weights"`

	Magnetic      bool      `json:"magnetic"`
	MagneticSlots []MagSlot `json:"magnetic_slots"`

	Pool []float64 `json:"pool"`

	Q  []float64 `json:"q"`
	Q2 []Point2  `json:"q2"`
}

var dispatchByName = map[string]integral.Dispatch{
	"1d":   integral.Dispatch1D,
	"2d":   integral.DispatchUnoriented2D,
	"sym":  integral.DispatchSym,
	"asym": integral.DispatchAsym,
}

// ReadProblem reads and decodes a problem-descriptor JSON file.
func ReadProblem(path string) (*Problem, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("ReadProblem: cannot read problem file %q: %v", path, err)
	}
	var p Problem
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, chk.Err("ReadProblem: cannot unmarshal problem file %q: %v", path, err)
	}
	return &p, nil
}

// Descriptor builds the integral.Descriptor this problem describes.
func (p *Problem) Descriptor() (*integral.Descriptor, error) {
	dispatch, ok := dispatchByName[p.Dispatch]
	if !ok {
		return nil, chk.Err("unknown dispatch %q", p.Dispatch)
	}
	d := &integral.Descriptor{
		NumPars:    p.NumPars,
		Dispatch:   dispatch,
		ThetaPar:   p.ThetaPar,
		JitterPar:  p.JitterPar,
		NumActive:  len(p.PdDims),
		NumWeights: p.NumWeights,
		Magnetic:   p.Magnetic,
	}
	if d.NumActive > integral.MaxPD {
		return nil, chk.Err("problem declares %d polydispersity dimensions, max is %d", d.NumActive, integral.MaxPD)
	}
	numEval := 1
	for i, dim := range p.PdDims {
		d.PdPar[i] = dim.Par
		d.PdLength[i] = dim.Length
		d.PdOffset[i] = dim.Offset
		d.PdStride[i] = dim.Stride
		numEval *= dim.Length
	}
	d.NumEval = numEval
	for _, slot := range p.MagneticSlots {
		d.MagneticSlots = append(d.MagneticSlots, integral.MagneticSlot{SLDIndex: slot.SLDIndex, PoolOffset: slot.PoolOffset})
	}
	if err := d.Validate(); err != nil {
		return nil, chk.Err("problem descriptor is malformed: %v", err)
	}
	return d, nil
}

// Values returns the flat parameter pool this problem describes.
func (p *Problem) Values() *integral.Pool {
	return &integral.Pool{Values: p.Pool}
}

// Points2 converts the JSON q2 array to []integral.Point2.
func (p *Problem) Points2() []integral.Point2 {
	out := make([]integral.Point2, len(p.Q2))
	for i, pt := range p.Q2 {
		out[i] = integral.Point2{X: pt.X, Y: pt.Y}
	}
	return out
}
