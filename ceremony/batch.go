package ceremony

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// GenesisTranscripts returns one genesis transcript per sub-ceremony.
func GenesisTranscripts() []*Transcript {
	ts := make([]*Transcript, len(Sizes))
	for i, size := range Sizes {
		ts[i] = NewTranscript(size.NumG1Powers, size.NumG2Powers)
	}
	return ts
}

// ContributeAll folds an independent fresh secret into each contribution and
// wipes it. One secret per sub-ceremony, so learning one tau reveals nothing
// about the others.
func ContributeAll(cs []*Contribution) error {
	for _, c := range cs {
		var tau fr.Element
		if _, err := tau.SetRandom(); err != nil {
			return err
		}
		c.AddTau(&tau)
		tau.SetZero()
	}
	return nil
}

// VerifyAll checks each contribution against its transcript. All pairing
// equations across all sub-ceremonies are merged into a single multi-pairing,
// so a failure is reported without attribution; use Contribution.Verify to
// narrow it down.
func VerifyAll(cs []*Contribution, ts []*Transcript) error {
	if len(cs) != len(ts) {
		return &CountError{What: "transcripts", Expected: len(cs), Actual: len(ts)}
	}
	batch := NewBatchPairingCheck()
	for i, c := range cs {
		if err := c.SubgroupCheck(); err != nil {
			return &SubContributionError{Index: i, Err: err}
		}
		if err := c.AccumulateChecks(ts[i], batch); err != nil {
			return &SubContributionError{Index: i, Err: err}
		}
	}
	ok, err := batch.Check()
	if err != nil {
		return err
	}
	if !ok {
		return ErrBatchCheckFailed
	}
	return nil
}

// AcceptAll folds verified contributions into their transcripts.
func AcceptAll(cs []*Contribution, ts []*Transcript) {
	for i, c := range cs {
		ts[i].Accept(c)
	}
}
