package ceremony

import (
	"math/big"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// BatchPairingCheck accumulates pairing equality checks so an arbitrary
// number of them can be decided with a single multi-pairing. Each check
// e(a₁, a₂) == e(b₁, b₂) is blinded by a fresh random factor ρ and stored as
// the pair of terms e(ρ·a₁, a₂)·e(-ρ·b₁, b₂); the product over all terms is 1
// iff every check holds, except with negligible probability.
type BatchPairingCheck struct {
	g1 []bls.G1Affine
	g2 []bls.G2Affine
}

// NewBatchPairingCheck returns an empty batch.
func NewBatchPairingCheck() *BatchPairingCheck {
	return &BatchPairingCheck{}
}

// AddCheck schedules verification of e(a1, a2) == e(b1, b2).
func (b *BatchPairingCheck) AddCheck(a1 bls.G1Affine, a2 bls.G2Affine, b1 bls.G1Affine, b2 bls.G2Affine) error {
	var rho fr.Element
	if _, err := rho.SetRandom(); err != nil {
		return err
	}
	var factor big.Int
	rho.BigInt(&factor)

	var lhs, rhs bls.G1Affine
	lhs.ScalarMultiplication(&a1, &factor)
	rhs.ScalarMultiplication(&b1, &factor)
	rhs.Neg(&rhs)

	b.g1 = append(b.g1, lhs, rhs)
	b.g2 = append(b.g2, a2, b2)
	return nil
}

// Merge folds the checks accumulated in other into b.
func (b *BatchPairingCheck) Merge(other *BatchPairingCheck) {
	b.g1 = append(b.g1, other.g1...)
	b.g2 = append(b.g2, other.g2...)
}

// Len returns the number of scheduled checks.
func (b *BatchPairingCheck) Len() int {
	return len(b.g1) / 2
}

// Check decides all accumulated checks at once. An empty batch is vacuously
// true.
func (b *BatchPairingCheck) Check() (bool, error) {
	if len(b.g1) == 0 {
		return true, nil
	}
	return bls.PairingCheck(b.g1, b.g2)
}
