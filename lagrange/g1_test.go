package lagrange

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/stretchr/testify/require"
)

func monomialPowers(tau fr.Element, n int) []bls.G1Affine {
	_, _, g1Gen, _ := bls.Generators()
	powers := make([]bls.G1Affine, n)
	var pow fr.Element
	pow.SetOne()
	var s big.Int
	for i := range powers {
		pow.BigInt(&s)
		powers[i].ScalarMultiplication(&g1Gen, &s)
		pow.Mul(&pow, &tau)
	}
	return powers
}

// Committing to a polynomial by coefficients over the monomial powers must
// equal committing by evaluations over the Lagrange points.
func TestToLagrangeCommitmentEquivalence(t *testing.T) {
	const n = 8
	var tau fr.Element
	tau.SetUint64(77)
	powers := monomialPowers(tau, n)

	lag, err := ToLagrange(powers)
	require.NoError(t, err)
	require.Len(t, lag, n)

	coeffs := make([]fr.Element, n)
	for i := range coeffs {
		_, err := coeffs[i].SetRandom()
		require.NoError(t, err)
	}

	// evaluate the polynomial on the domain
	domain := fft.NewDomain(n)
	evals := make([]fr.Element, n)
	var x fr.Element
	x.SetOne()
	for i := 0; i < n; i++ {
		var acc fr.Element
		for j := n - 1; j >= 0; j-- {
			acc.Mul(&acc, &x).Add(&acc, &coeffs[j])
		}
		evals[i] = acc
		x.Mul(&x, &domain.Generator)
	}

	var byCoeffs, byEvals bls.G1Affine
	_, err = byCoeffs.MultiExp(powers, coeffs, ecc.MultiExpConfig{})
	require.NoError(t, err)
	_, err = byEvals.MultiExp(lag, evals, ecc.MultiExpConfig{})
	require.NoError(t, err)
	require.True(t, byCoeffs.Equal(&byEvals))
}

// The Lagrange basis sums to one, so the points must sum to the generator.
func TestToLagrangeSumsToGenerator(t *testing.T) {
	const n = 8
	var tau fr.Element
	tau.SetUint64(31337)
	lag, err := ToLagrange(monomialPowers(tau, n))
	require.NoError(t, err)

	var sum bls.G1Jac
	sum.X.SetOne()
	sum.Y.SetOne()
	for i := range lag {
		sum.AddMixed(&lag[i])
	}
	var got bls.G1Affine
	got.FromJacobian(&sum)
	_, _, g1Gen, _ := bls.Generators()
	require.True(t, got.Equal(&g1Gen))
}

func TestToLagrangeRejectsNonPowerOfTwo(t *testing.T) {
	_, err := ToLagrange(make([]bls.G1Affine, 6))
	require.Error(t, err)
	_, err = ToLagrange(nil)
	require.Error(t, err)
}

func TestToLagrangeLeavesInputUntouched(t *testing.T) {
	const n = 8
	var tau fr.Element
	tau.SetUint64(5)
	powers := monomialPowers(tau, n)
	snapshot := append([]bls.G1Affine(nil), powers...)

	_, err := ToLagrange(powers)
	require.NoError(t, err)
	for i := range powers {
		require.True(t, powers[i].Equal(&snapshot[i]))
	}
}
