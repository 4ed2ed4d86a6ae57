package ceremony

import (
	"math/big"
	"testing"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"
)

// validCheck returns sides satisfying e(a1, a2) == e(b1, b2).
func validCheck(t *testing.T) (bls.G1Affine, bls.G2Affine, bls.G1Affine, bls.G2Affine) {
	t.Helper()
	x := randomFr(t)
	y := randomFr(t)
	var xy fr.Element
	xy.Mul(&x, &y)
	var xb, yb, xyb big.Int
	x.BigInt(&xb)
	y.BigInt(&yb)
	xy.BigInt(&xyb)

	var a1, b1 bls.G1Affine
	a1.ScalarMultiplication(&g1Gen, &xb)
	b1.ScalarMultiplication(&g1Gen, &xyb)
	var a2 bls.G2Affine
	a2.ScalarMultiplication(&g2Gen, &yb)
	return a1, a2, b1, g2Gen
}

func TestBatchPairingCheckHolds(t *testing.T) {
	batch := NewBatchPairingCheck()
	for i := 0; i < 5; i++ {
		a1, a2, b1, b2 := validCheck(t)
		require.NoError(t, batch.AddCheck(a1, a2, b1, b2))
	}
	require.Equal(t, 5, batch.Len())
	ok, err := batch.Check()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBatchPairingCheckRejectsOneBad(t *testing.T) {
	batch := NewBatchPairingCheck()
	for i := 0; i < 4; i++ {
		a1, a2, b1, b2 := validCheck(t)
		require.NoError(t, batch.AddCheck(a1, a2, b1, b2))
	}
	a1, a2, b1, b2 := validCheck(t)
	var two big.Int
	two.SetUint64(2)
	b1.ScalarMultiplication(&b1, &two)
	require.NoError(t, batch.AddCheck(a1, a2, b1, b2))

	ok, err := batch.Check()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBatchPairingCheckMerge(t *testing.T) {
	good := NewBatchPairingCheck()
	a1, a2, b1, b2 := validCheck(t)
	require.NoError(t, good.AddCheck(a1, a2, b1, b2))

	bad := NewBatchPairingCheck()
	a1, a2, b1, b2 = validCheck(t)
	var three big.Int
	three.SetUint64(3)
	a1.ScalarMultiplication(&a1, &three)
	require.NoError(t, bad.AddCheck(a1, a2, b1, b2))

	good.Merge(bad)
	require.Equal(t, 2, good.Len())
	ok, err := good.Check()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBatchPairingCheckEmpty(t *testing.T) {
	ok, err := NewBatchPairingCheck().Check()
	require.NoError(t, err)
	require.True(t, ok)
}
