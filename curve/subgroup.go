package curve

import (
	"math/bits"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// G1InSubgroup reports whether p, assumed on the curve, lies in the prime
// order subgroup. Section 6 of eprint 2021/1130: accept iff
// endomorphism(P) == -[x²]P.
func G1InSubgroup(p *bls.G1Affine) bool {
	var xp bls.G1Jac
	g1MulUint64(&xp, p, xSeed)

	// Early out: if [x]P == P and P is not infinity, P has small order.
	var pj bls.G1Jac
	pj.FromAffine(p)
	if xp.Equal(&pj) && !p.IsInfinity() {
		return false
	}

	var x2p bls.G1Jac
	g1MulUint64Jac(&x2p, &xp, xSeed)
	x2p.Neg(&x2p)

	var psi bls.G1Affine
	G1Endomorphism(&psi, p)
	var psij bls.G1Jac
	psij.FromAffine(&psi)
	return x2p.Equal(&psij)
}

// G2InSubgroup reports whether p, assumed on the curve, lies in the prime
// order subgroup. Section 4 of eprint 2021/1130: accept iff [x]P == ψ(P).
func G2InSubgroup(p *bls.G2Affine) bool {
	var xp bls.G2Jac
	g2MulUint64(&xp, p, xSeed)
	xp.Neg(&xp) // the curve parameter is negative

	var psi bls.G2Affine
	G2Endomorphism(&psi, p)
	var psij bls.G2Jac
	psij.FromAffine(&psi)
	return xp.Equal(&psij)
}

// g1MulUint64 is a plain double-and-add ladder. It makes no subgroup
// assumption about base, unlike ScalarMultiplication.
func g1MulUint64(res *bls.G1Jac, base *bls.G1Affine, scalar uint64) {
	res.X.SetOne()
	res.Y.SetOne()
	res.Z.SetZero()
	for i := bits.Len64(scalar) - 1; i >= 0; i-- {
		res.DoubleAssign()
		if scalar>>uint(i)&1 == 1 {
			res.AddMixed(base)
		}
	}
}

func g1MulUint64Jac(res *bls.G1Jac, base *bls.G1Jac, scalar uint64) {
	res.X.SetOne()
	res.Y.SetOne()
	res.Z.SetZero()
	for i := bits.Len64(scalar) - 1; i >= 0; i-- {
		res.DoubleAssign()
		if scalar>>uint(i)&1 == 1 {
			res.AddAssign(base)
		}
	}
}

func g2MulUint64(res *bls.G2Jac, base *bls.G2Affine, scalar uint64) {
	res.X.SetOne()
	res.Y.SetOne()
	res.Z.SetZero()
	for i := bits.Len64(scalar) - 1; i >= 0; i-- {
		res.DoubleAssign()
		if scalar>>uint(i)&1 == 1 {
			res.AddMixed(base)
		}
	}
}
