// Package curve provides BLS12-381 endomorphisms, subgroup membership checks
// and GLV scalar multiplication on top of gnark-crypto's arithmetic.
//
// The subgroup checks follow https://eprint.iacr.org/2021/1130 and cannot use
// gnark-crypto's ScalarMultiplication, which itself relies on the
// endomorphism and is only sound for points already inside the subgroup.
package curve

import (
	"math/big"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// xSeed is |x| for the BLS12-381 parameter x = -0xd201000000010000.
const xSeed uint64 = 0xd201000000010000

var (
	// g1Beta is a non-trivial cube root of unity in Fp.
	g1Beta fp.Element

	// lambda is z², the square of the curve parameter; the G1 endomorphism
	// acts on the subgroup as multiplication by -lambda, a cube root of
	// unity in Fr.
	lambda big.Int

	// psiX = 1/(u+1)^((p-1)/3) and psiY = 1/(u+1)^((p-1)/2) are the
	// untwist-Frobenius-twist coefficients for the G2 endomorphism.
	psiX fp.Element
	psiY bls.E2
)

func init() {
	g1Beta = fpFromDecimal("793479390729215512621379701633421447060886740281060493010456487427281649075476305620758731620350")
	lambda.SetString("228988810152649578064853576960394133504", 10)
	psiX = fpFromDecimal("4002409555221667392624310435006688643935503118305586438271171395842971157480381377015405980053539358417135540939437")
	psiY.A0 = fpFromDecimal("2973677408986561043442465346520108879172042883009249989176415018091420807192182638567116318576472649347015917690530")
	psiY.A1 = fpFromDecimal("1028732146235106349975324479215795277384839936929757896155643118032610843298655225875571310552543014690878354869257")
}

func fpFromDecimal(s string) fp.Element {
	var e fp.Element
	if _, err := e.SetString(s); err != nil {
		panic(err)
	}
	return e
}

// G1Endomorphism sets res to (βx, y), which acts on the subgroup as
// multiplication by -λ.
func G1Endomorphism(res, p *bls.G1Affine) {
	res.Y = p.Y
	res.X.Mul(&p.X, &g1Beta)
}

// G2Endomorphism sets res to the p-power endomorphism ψ of p, obtained by
// untwisting to E, applying Frobenius and twisting back. On the subgroup ψ
// acts as multiplication by the curve parameter x.
func G2Endomorphism(res, p *bls.G2Affine) {
	var x, y bls.E2
	x.Conjugate(&p.X)
	y.Conjugate(&p.Y)
	res.X.A0.Mul(&x.A1, &psiX)
	res.X.A0.Neg(&res.X.A0)
	res.X.A1.Mul(&x.A0, &psiX)
	res.Y.Mul(&y, &psiY)
}
