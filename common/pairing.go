package common

import (
	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// SameRatio checks e(a₁, a₂) = e(b₁, b₂)
func SameRatio(a1, b1 bls.G1Affine, a2, b2 bls.G2Affine) bool {
	var na2 bls.G2Affine
	na2.Neg(&a2)
	res, err := bls.PairingCheck(
		[]bls.G1Affine{a1, b1},
		[]bls.G2Affine{na2, b2})
	if err != nil {
		panic(err)
	}
	return res
}
