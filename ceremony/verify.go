package ceremony

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Verify checks the contribution against the transcript. The three pairing
// equations are decided separately so a failure names the broken property;
// use AccumulateChecks to fold many verifications into one multi-pairing.
func (c *Contribution) Verify(t *Transcript) error {
	if err := c.checkSizes(t); err != nil {
		return err
	}
	for _, step := range []struct {
		accumulate func(*Contribution, *Transcript, *BatchPairingCheck) error
		fail       error
	}{
		{(*Contribution).accumulatePubkeyCheck, ErrPubkeyCheck},
		{(*Contribution).accumulateG1Check, ErrG1PowersCheck},
		{(*Contribution).accumulateG2Check, ErrG2PowersCheck},
	} {
		batch := NewBatchPairingCheck()
		if err := step.accumulate(c, t, batch); err != nil {
			return err
		}
		ok, err := batch.Check()
		if err != nil {
			return err
		}
		if !ok {
			return step.fail
		}
	}
	return nil
}

// AccumulateChecks schedules the contribution's verification equations into
// batch without deciding them.
func (c *Contribution) AccumulateChecks(t *Transcript, batch *BatchPairingCheck) error {
	if err := c.checkSizes(t); err != nil {
		return err
	}
	if err := c.accumulatePubkeyCheck(t, batch); err != nil {
		return err
	}
	if err := c.accumulateG1Check(t, batch); err != nil {
		return err
	}
	return c.accumulateG2Check(t, batch)
}

func (c *Contribution) checkSizes(t *Transcript) error {
	if len(c.G1Powers) != len(t.G1Powers) {
		return &CountError{What: "G1 powers", Expected: len(t.G1Powers), Actual: len(c.G1Powers)}
	}
	if len(c.G2Powers) != len(t.G2Powers) {
		return &CountError{What: "G2 powers", Expected: len(t.G2Powers), Actual: len(c.G2Powers)}
	}
	return nil
}

// accumulatePubkeyCheck ties the new first power to the transcript's running
// product: e(g1[1], g2) == e(prev, pubkey), i.e. the contributor knows the
// tau that was multiplied in.
func (c *Contribution) accumulatePubkeyCheck(t *Transcript, batch *BatchPairingCheck) error {
	prev := t.Products[len(t.Products)-1]
	return batch.AddCheck(c.G1Powers[1], g2Gen, prev, c.Pubkey)
}

// accumulateG1Check verifies that consecutive G1 powers share the common
// ratio committed in g2[1], using one random linear combination over all
// n-1 consecutive pairs.
func (c *Contribution) accumulateG1Check(t *Transcript, batch *BatchPairingCheck) error {
	factors, sum, err := randomFactors(len(c.G1Powers) - 1)
	if err != nil {
		return err
	}
	var lhsG1, rhsG1 bls.G1Affine
	if _, err := lhsG1.MultiExp(c.G1Powers[1:], factors, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	if _, err := rhsG1.MultiExp(c.G1Powers[:len(factors)], factors, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	var sb big.Int
	sum.BigInt(&sb)
	var lhsG2, rhsG2 bls.G2Affine
	lhsG2.ScalarMultiplication(&g2Gen, &sb)
	rhsG2.ScalarMultiplication(&c.G2Powers[1], &sb)
	return batch.AddCheck(lhsG1, lhsG2, rhsG1, rhsG2)
}

// accumulateG2Check verifies that each G2 power carries the same scalar as
// the G1 power of the same index.
func (c *Contribution) accumulateG2Check(t *Transcript, batch *BatchPairingCheck) error {
	factors, sum, err := randomFactors(len(c.G2Powers))
	if err != nil {
		return err
	}
	var lhsG1 bls.G1Affine
	if _, err := lhsG1.MultiExp(c.G1Powers[:len(factors)], factors, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	var rhsG2 bls.G2Affine
	if _, err := rhsG2.MultiExp(c.G2Powers, factors, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	var sb big.Int
	sum.BigInt(&sb)
	var lhsG2 bls.G2Affine
	lhsG2.ScalarMultiplication(&g2Gen, &sb)
	var rhsG1 bls.G1Affine
	rhsG1.ScalarMultiplication(&g1Gen, &sb)
	return batch.AddCheck(lhsG1, lhsG2, rhsG1, rhsG2)
}

func randomFactors(n int) ([]fr.Element, fr.Element, error) {
	factors := make([]fr.Element, n)
	var sum fr.Element
	for i := range factors {
		if _, err := factors[i].SetRandom(); err != nil {
			return nil, sum, err
		}
		sum.Add(&sum, &factors[i])
	}
	return factors, sum, nil
}
