// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/go-sas/scatterfem/inp"
	"github.com/go-sas/scatterfem/integral"
	"github.com/go-sas/scatterfem/mdl/models"
	"github.com/go-sas/scatterfem/out"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// parse flags
	problemFile := flag.String("problem", "", "path to a problem-descriptor JSON file")
	outFile := flag.String("out", "iq.eps", "path to save the I(q) plot")
	verbose := flag.Bool("verbose", false, "print per-slice diagnostics")
	flag.Parse()
	if *problemFile == "" {
		chk.Panic("scatterfem: -problem is required")
	}

	// read problem descriptor
	prob, err := inp.ReadProblem(*problemFile)
	if err != nil {
		chk.Panic("%v", err)
	}
	model, err := models.New(prob.Model)
	if err != nil {
		chk.Panic("%v", err)
	}
	details, err := prob.Descriptor()
	if err != nil {
		chk.Panic("%v", err)
	}
	pool := prob.Values()

	// partition [0, num_eval) across MPI ranks when running under mpirun
	start, stop := 0, details.NumEval
	if mpi.IsOn() {
		nProcs := mpi.Size()
		rank := mpi.Rank()
		chunk := (details.NumEval + nProcs - 1) / nProcs
		start = rank * chunk
		stop = start + chunk
		if stop > details.NumEval {
			stop = details.NumEval
		}
		if start > details.NumEval {
			start = details.NumEval
		}
	}

	workers := prob.Workers
	if workers < 1 {
		workers = 1
	}
	drv := &integral.Driver{Workers: workers, Verbose: *verbose || prob.Verbose}

	var nq int
	var result []float64
	if len(prob.Q) > 0 {
		nq = len(prob.Q)
		result = make([]float64, nq+1)
		oriented, ok := model.(interface {
			Iq(q float64, p []float64) float64
			FormVolume(p []float64) float64
		})
		if !ok {
			chk.Panic("model %q does not implement the 1-D Iq capability", prob.Model)
		}
		if err := drv.Run1D(oriented, details, pool, start, stop, prob.Q, result, prob.Cutoff); err != nil {
			chk.Panic("%v", err)
		}
	} else {
		q2 := prob.Points2()
		nq = len(q2)
		result = make([]float64, nq+1)
		if err := drv.Run2D(model, details, pool, start, stop, q2, result, prob.Cutoff); err != nil {
			chk.Panic("%v", err)
		}
	}

	if mpi.IsOn() {
		result = mpiReduceSum(result)
	}

	if mpi.Rank() == 0 {
		nominal := make([]float64, details.NumPars)
		for i := range nominal {
			nominal[i] = pool.Par(i)
		}
		formVolumeNominal := model.FormVolume(nominal)
		curve := out.Normalize(prob.Q, result, pool.Scale(), pool.Background(), formVolumeNominal)
		curve.Label = prob.Model
		out.Iq(*outFile, curve)
		io.Pf("scatterfem: wrote %s\n", *outFile)
	}
}

// mpiReduceSum combines every rank's partial result buffer into a
// single global buffer via gosl/mpi.AllReduceSum.
func mpiReduceSum(local []float64) []float64 {
	global := make([]float64, len(local))
	mpi.AllReduceSum(local, global)
	return global
}
