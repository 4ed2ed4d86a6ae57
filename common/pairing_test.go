package common

import (
	"math/big"
	"testing"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/require"
)

func TestSameRatio(t *testing.T) {
	_, _, g1, g2 := bls.Generators()

	var p1 bls.G1Affine
	var p2 bls.G2Affine
	k := big.NewInt(42)
	p1.ScalarMultiplication(&g1, k)
	p2.ScalarMultiplication(&g2, k)

	require.True(t, SameRatio(p1, g1, g2, p2))
	require.True(t, SameRatio(g1, p1, p2, g2))
	require.False(t, SameRatio(p1, g1, p2, g2))
}
