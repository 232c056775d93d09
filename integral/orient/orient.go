// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package orient implements the orientation transform (C4): reverse
// rotation of lab-frame (qx, qy) into the oriented-model frame, for
// both the rotationally-symmetric (qa, qc) case and the fully
// asymmetric (qa, qb, qc) case.
package orient

import "math"

const deg2rad = math.Pi / 180

// Symmetric reverse-rotates (qx, qy, 0) through the mean orientation
// (theta, phi) to get an intermediate triple, then reverse-rotates that
// triple through the jitter angles the same way Asymmetric composes its
// two rotations; qc is the third (c-axis) component of that composed
// result.
// dqa is then recovered from the Pythagorean identity
// dqa²+dqc²=qx²+qy² using this same dqc, so the mean orientation is
// never dropped from the recovered dqa. Any tiny negative radicand from
// floating-point cancellation is clamped to zero before the square
// root.
func Symmetric(qx, qy, meanTheta, meanPhi, jitterTheta, jitterPhi float64) (qa, qc float64) {
	a, b, c := reverseRotate(qx, qy, 0, meanTheta, meanPhi, 0)
	_, _, qc = reverseRotate(a, b, c, jitterTheta, jitterPhi, 0)
	radicand := qx*qx + qy*qy - qc*qc
	if radicand < 0 {
		radicand = 0
	}
	qa = math.Sqrt(radicand)
	return
}

// Asymmetric reverse-rotates (qx, qy, 0) through the mean orientation
// (theta, phi, psi) to get an intermediate (qa, qb, qc), then
// reverse-rotates that triple through the jitter angles to obtain the
// final (dqa, dqb, dqc) handed to Iqabc.
func Asymmetric(qx, qy, meanTheta, meanPhi, meanPsi, jitterTheta, jitterPhi, jitterPsi float64) (dqa, dqb, dqc float64) {
	qa, qb, qc := reverseRotate(qx, qy, 0, meanTheta, meanPhi, meanPsi)
	dqa, dqb, dqc = reverseRotate(qa, qb, qc, jitterTheta, jitterPhi, jitterPsi)
	return
}

// reverseRotate applies the reverse (lab-to-model) extrinsic Euler
// rotation, angles in degrees, to a 3-vector.
func reverseRotate(x, y, z, theta, phi, psi float64) (rx, ry, rz float64) {
	st, ct := math.Sincos(-theta * deg2rad)
	sp, cp := math.Sincos(-phi * deg2rad)
	ss, cs := math.Sincos(-psi * deg2rad)

	r11 := -sp*ss + ct*cp*cs
	r12 := cp*ss + ct*sp*cs
	r13 := -st * cs
	r21 := -sp*cs - ct*cp*ss
	r22 := cp*cs - ct*sp*ss
	r23 := st * ss
	r31 := st * cp
	r32 := st * sp
	r33 := ct

	rx = r11*x + r12*y + r13*z
	ry = r21*x + r22*y + r23*z
	rz = r31*x + r32*y + r33*z
	return
}
