// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out plots a normalized I(q) curve with gosl/plt, as an
// ambient consumer of the integral package's output rather than a part
// of the core integrator.
package out

import (
	"github.com/cpmech/gosl/plt"
)

// Curve is a normalized scattering-intensity curve ready to plot:
// Q[k] paired with I[k] as computed by Normalize.
type Curve struct {
	Q     []float64
	I     []float64
	Label string
	Style plt.Fmt
}

// Normalize divides the driver's raw accumulation by pd_norm and
// applies scale/background, producing the curve a caller plots or
// writes out: I(q) = scale*result[q]/pd_norm +
// background*formVolumeNominal/pd_norm, where formVolumeNominal is
// form_volume evaluated at the pool's nominal (unperturbed) parameters.
// The integrator itself never applies scale or background.
func Normalize(q []float64, result []float64, scale, background, formVolumeNominal float64) *Curve {
	nq := len(result) - 1
	pdNorm := result[nq]
	i := make([]float64, nq)
	for k := 0; k < nq; k++ {
		if pdNorm != 0 {
			i[k] = scale*result[k]/pdNorm + background*formVolumeNominal/pdNorm
		} else {
			i[k] = background
		}
	}
	return &Curve{Q: q, I: i, Style: plt.Fmt{C: "b", M: "."}}
}

// Iq plots one or more normalized curves against q and saves the
// figure to fn.
func Iq(fn string, curves ...*Curve) {
	for _, c := range curves {
		style := c.Style
		style.L = c.Label
		plt.Plot(c.Q, c.I, style.GetArgs("clip_on=0"))
	}
	plt.Gll("$q$", "$I(q)$", "")
	plt.Save(fn)
}
