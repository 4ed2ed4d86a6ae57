package ceremony

import (
	"math/big"
	"testing"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/recmo/kzg-ceremony-coordinator/common"
	"github.com/recmo/kzg-ceremony-coordinator/zcash"
)

const (
	testNumG1 = 16
	testNumG2 = 9
)

func randomFr(t *testing.T) fr.Element {
	t.Helper()
	var s fr.Element
	_, err := s.SetRandom()
	require.NoError(t, err)
	return s
}

func TestGenesisVerifies(t *testing.T) {
	transcript := NewTranscript(testNumG1, testNumG2)
	contribution := NewContribution(testNumG1, testNumG2)
	require.NoError(t, contribution.SubgroupCheck())
	require.NoError(t, contribution.Verify(transcript))
}

func TestAddTauVerifies(t *testing.T) {
	transcript := NewTranscript(testNumG1, testNumG2)
	contribution := transcript.Contribution()
	tau := randomFr(t)
	contribution.AddTau(&tau)
	require.NoError(t, contribution.SubgroupCheck())
	require.NoError(t, contribution.Verify(transcript))

	// chain a second participant on the advanced transcript
	transcript.Accept(contribution)
	next := transcript.Contribution()
	tau2 := randomFr(t)
	next.AddTau(&tau2)
	require.NoError(t, next.Verify(transcript))
}

func TestAddTauMatchesNaive(t *testing.T) {
	contribution := NewContribution(testNumG1, testNumG2)
	var tau fr.Element
	tau.SetUint64(12345)
	contribution.AddTau(&tau)

	var pow fr.Element
	pow.SetOne()
	var s big.Int
	for i := 0; i < testNumG1; i++ {
		pow.BigInt(&s)
		var expected bls.G1Affine
		expected.ScalarMultiplication(&g1Gen, &s)
		require.True(t, contribution.G1Powers[i].Equal(&expected), "G1 power %d", i)
		if i < testNumG2 {
			var expectedG2 bls.G2Affine
			expectedG2.ScalarMultiplication(&g2Gen, &s)
			require.True(t, contribution.G2Powers[i].Equal(&expectedG2), "G2 power %d", i)
		}
		pow.Mul(&pow, &tau)
	}

	var tb big.Int
	tau.BigInt(&tb)
	var expectedPubkey bls.G2Affine
	expectedPubkey.ScalarMultiplication(&g2Gen, &tb)
	require.True(t, contribution.Pubkey.Equal(&expectedPubkey))
}

func TestAddTauSameRatio(t *testing.T) {
	contribution := NewContribution(testNumG1, testNumG2)
	tau := randomFr(t)
	contribution.AddTau(&tau)
	// the step between G1 powers equals the step between G2 powers
	require.True(t, common.SameRatio(
		contribution.G1Powers[1], contribution.G1Powers[0],
		contribution.G2Powers[0], contribution.G2Powers[1]))
	require.True(t, common.SameRatio(
		contribution.G1Powers[5], contribution.G1Powers[4],
		contribution.G2Powers[0], contribution.G2Powers[1]))
}

func TestVerifyRejectsTampering(t *testing.T) {
	transcript := NewTranscript(testNumG1, testNumG2)

	fresh := func() *Contribution {
		c := transcript.Contribution()
		tau := randomFr(t)
		c.AddTau(&tau)
		return c
	}

	c := fresh()
	c.G1Powers[2] = c.G1Powers[3]
	require.ErrorIs(t, c.Verify(transcript), ErrG1PowersCheck)

	c = fresh()
	c.G2Powers[2] = c.G2Powers[3]
	require.ErrorIs(t, c.Verify(transcript), ErrG2PowersCheck)

	c = fresh()
	var two big.Int
	two.SetUint64(2)
	c.Pubkey.ScalarMultiplication(&c.Pubkey, &two)
	require.ErrorIs(t, c.Verify(transcript), ErrPubkeyCheck)
}

func TestVerifyRejectsSizeMismatch(t *testing.T) {
	transcript := NewTranscript(testNumG1, testNumG2)
	c := NewContribution(testNumG1-1, testNumG2)
	var countErr *CountError
	require.ErrorAs(t, c.Verify(transcript), &countErr)
}

func TestSubgroupCheckRejects(t *testing.T) {
	// (0, 2) is on the curve with order 3
	var small bls.G1Affine
	small.Y.SetUint64(2)

	c := NewContribution(testNumG1, testNumG2)
	c.G1Powers[2] = small
	err := c.SubgroupCheck()
	var pointErr *PointError
	require.ErrorAs(t, err, &pointErr)
	require.Equal(t, "G1", pointErr.Group)
	require.Equal(t, 2, pointErr.Index)
	require.ErrorIs(t, err, zcash.ErrInvalidSubgroup)

	c = NewContribution(testNumG1, testNumG2)
	badG2 := offSubgroupG2(t)
	c.G2Powers[1] = badG2
	err = c.SubgroupCheck()
	require.ErrorAs(t, err, &pointErr)
	require.Equal(t, "G2", pointErr.Group)

	c = NewContribution(testNumG1, testNumG2)
	c.Pubkey = badG2
	err = c.SubgroupCheck()
	require.ErrorAs(t, err, &pointErr)
	require.Equal(t, "potPubkey", pointErr.Group)
}

// offSubgroupG2 scans small x coordinates for a curve point outside the
// prime order subgroup.
func offSubgroupG2(t *testing.T) bls.G2Affine {
	t.Helper()
	var x, four bls.E2
	four.A0.SetUint64(4)
	four.A1.SetUint64(4)
	for i := uint64(1); i < 1000; i++ {
		x.A0.SetUint64(i)
		var ySq, y bls.E2
		ySq.Square(&x).Mul(&ySq, &x)
		ySq.Add(&ySq, &four)
		if ySq.Legendre() == -1 {
			continue
		}
		y.Sqrt(&ySq)
		p := bls.G2Affine{X: x, Y: y}
		if !p.IsInSubGroup() {
			return p
		}
	}
	t.Fatal("no off-subgroup point found")
	return bls.G2Affine{}
}

func TestTranscriptAccept(t *testing.T) {
	transcript := NewTranscript(testNumG1, testNumG2)
	c := transcript.Contribution()
	tau := randomFr(t)
	c.AddTau(&tau)
	transcript.Accept(c)

	require.Len(t, transcript.Products, 2)
	require.Len(t, transcript.Pubkeys, 2)
	require.True(t, transcript.Products[1].Equal(&c.G1Powers[1]))
	require.True(t, transcript.Pubkeys[1].Equal(&c.Pubkey))
	require.True(t, transcript.G1Powers[3].Equal(&c.G1Powers[3]))
}

func TestTranscriptFrom(t *testing.T) {
	transcript := NewTranscript(testNumG1, testNumG2)
	c := transcript.Contribution()
	tau := randomFr(t)
	c.AddTau(&tau)

	rebuilt := TranscriptFrom(c)
	require.Len(t, rebuilt.Products, 1)
	require.True(t, rebuilt.Products[0].Equal(&c.G1Powers[1]))
	require.True(t, rebuilt.Pubkeys[0].Equal(&c.Pubkey))

	// a follow-up contribution verifies against the rebuilt transcript
	next := rebuilt.Contribution()
	tau2 := randomFr(t)
	next.AddTau(&tau2)
	require.NoError(t, next.Verify(rebuilt))
}

func TestVerifyAllMerged(t *testing.T) {
	sizes := []Size{{8, 5}, {16, 9}}
	transcripts := make([]*Transcript, len(sizes))
	contributions := make([]*Contribution, len(sizes))
	for i, size := range sizes {
		transcripts[i] = NewTranscript(size.NumG1Powers, size.NumG2Powers)
		contributions[i] = transcripts[i].Contribution()
	}
	require.NoError(t, ContributeAll(contributions))
	require.NoError(t, VerifyAll(contributions, transcripts))

	// distinct secrets per sub-ceremony
	require.False(t, contributions[0].Pubkey.Equal(&contributions[1].Pubkey))

	contributions[1].G1Powers[2] = contributions[1].G1Powers[3]
	require.ErrorIs(t, VerifyAll(contributions, transcripts), ErrBatchCheckFailed)

	AcceptAll(contributions[:1], transcripts[:1])
	require.Len(t, transcripts[0].Products, 2)
}
