package ceremony

import (
	"encoding/json"
	"sync"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/recmo/kzg-ceremony-coordinator/common"
	"github.com/recmo/kzg-ceremony-coordinator/zcash"
)

const (
	genesisG1 = "0x97f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb"
	genesisG2 = "0x93e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8"
)

// ContributionsJSON is the wire form of a contribution file.
type ContributionsJSON struct {
	SubContributions []ContributionJSON `json:"subContributions"`
}

// ContributionJSON is the wire form of one sub-contribution.
type ContributionJSON struct {
	NumG1Powers int             `json:"numG1Powers"`
	NumG2Powers int             `json:"numG2Powers"`
	PowersOfTau PowersOfTauJSON `json:"powersOfTau"`
	PotPubkey   string          `json:"potPubkey,omitempty"`
}

// PowersOfTauJSON holds hex encoded powers.
type PowersOfTauJSON struct {
	G1Powers []string `json:"G1Powers"`
	G2Powers []string `json:"G2Powers"`
}

// InitialContributions returns the genesis contribution file, with every
// power set to the group generator and no pot pubkey.
func InitialContributions() *ContributionsJSON {
	subs := make([]ContributionJSON, len(Sizes))
	for i, size := range Sizes {
		subs[i] = initialContribution(size.NumG1Powers, size.NumG2Powers)
	}
	return &ContributionsJSON{SubContributions: subs}
}

func initialContribution(numG1, numG2 int) ContributionJSON {
	g1 := make([]string, numG1)
	for i := range g1 {
		g1[i] = genesisG1
	}
	g2 := make([]string, numG2)
	for i := range g2 {
		g2[i] = genesisG2
	}
	return ContributionJSON{
		NumG1Powers: numG1,
		NumG2Powers: numG2,
		PowersOfTau: PowersOfTauJSON{G1Powers: g1, G2Powers: g2},
	}
}

// FromJSON decodes a contribution file, optionally validating it against the
// embedded schema first.
func FromJSON(data []byte, validateSchema bool) (*ContributionsJSON, error) {
	if validateSchema {
		if err := ValidateSchema(data); err != nil {
			return nil, err
		}
	}
	var c ContributionsJSON
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Parse decodes all points and checks the counts against the ceremony sizes.
func (j *ContributionsJSON) Parse() ([]*Contribution, error) {
	if len(j.SubContributions) != len(Sizes) {
		return nil, &CountError{What: "subContributions", Expected: len(Sizes), Actual: len(j.SubContributions)}
	}
	for i := range j.SubContributions {
		sub := &j.SubContributions[i]
		if sub.NumG1Powers != Sizes[i].NumG1Powers {
			return nil, &SubContributionError{Index: i, Err: &CountError{What: "numG1Powers", Expected: Sizes[i].NumG1Powers, Actual: sub.NumG1Powers}}
		}
		if sub.NumG2Powers != Sizes[i].NumG2Powers {
			return nil, &SubContributionError{Index: i, Err: &CountError{What: "numG2Powers", Expected: Sizes[i].NumG2Powers, Actual: sub.NumG2Powers}}
		}
	}
	out := make([]*Contribution, len(j.SubContributions))
	for i := range j.SubContributions {
		c, err := j.SubContributions[i].Parse()
		if err != nil {
			return nil, &SubContributionError{Index: i, Err: err}
		}
		out[i] = c
	}
	return out, nil
}

// Parse decodes one sub-contribution. An absent pot pubkey, as in the genesis
// file, decodes to the point at infinity.
func (j *ContributionJSON) Parse() (*Contribution, error) {
	if len(j.PowersOfTau.G1Powers) != j.NumG1Powers {
		return nil, &CountError{What: "G1Powers", Expected: j.NumG1Powers, Actual: len(j.PowersOfTau.G1Powers)}
	}
	if len(j.PowersOfTau.G2Powers) != j.NumG2Powers {
		return nil, &CountError{What: "G2Powers", Expected: j.NumG2Powers, Actual: len(j.PowersOfTau.G2Powers)}
	}
	c := &Contribution{
		G1Powers: make([]bls.G1Affine, j.NumG1Powers),
		G2Powers: make([]bls.G2Affine, j.NumG2Powers),
	}
	var mu sync.Mutex
	var parseErr error
	fail := func(err error) {
		mu.Lock()
		if parseErr == nil {
			parseErr = err
		}
		mu.Unlock()
	}
	common.Parallelize(j.NumG1Powers, func(start, end int) {
		for i := start; i < end; i++ {
			p, err := zcash.ParseG1Hex(j.PowersOfTau.G1Powers[i])
			if err != nil {
				fail(&PointError{Group: "G1", Index: i, Err: err})
				return
			}
			c.G1Powers[i] = p
		}
	})
	common.Parallelize(j.NumG2Powers, func(start, end int) {
		for i := start; i < end; i++ {
			p, err := zcash.ParseG2Hex(j.PowersOfTau.G2Powers[i])
			if err != nil {
				fail(&PointError{Group: "G2", Index: i, Err: err})
				return
			}
			c.G2Powers[i] = p
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if j.PotPubkey != "" {
		pubkey, err := zcash.ParseG2Hex(j.PotPubkey)
		if err != nil {
			return nil, &PointError{Group: "potPubkey", Index: -1, Err: err}
		}
		c.Pubkey = pubkey
	}
	return c, nil
}

// ContributionsToJSON encodes parsed contributions back into the wire form.
func ContributionsToJSON(cs []*Contribution) *ContributionsJSON {
	subs := make([]ContributionJSON, len(cs))
	for i, c := range cs {
		subs[i] = c.JSON()
	}
	return &ContributionsJSON{SubContributions: subs}
}

// JSON encodes the contribution into the wire form.
func (c *Contribution) JSON() ContributionJSON {
	g1 := make([]string, len(c.G1Powers))
	common.Parallelize(len(c.G1Powers), func(start, end int) {
		for i := start; i < end; i++ {
			g1[i] = zcash.EncodeG1Hex(&c.G1Powers[i])
		}
	})
	g2 := make([]string, len(c.G2Powers))
	common.Parallelize(len(c.G2Powers), func(start, end int) {
		for i := start; i < end; i++ {
			g2[i] = zcash.EncodeG2Hex(&c.G2Powers[i])
		}
	})
	return ContributionJSON{
		NumG1Powers: len(c.G1Powers),
		NumG2Powers: len(c.G2Powers),
		PowersOfTau: PowersOfTauJSON{G1Powers: g1, G2Powers: g2},
		PotPubkey:   zcash.EncodeG2Hex(&c.Pubkey),
	}
}
