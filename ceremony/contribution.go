// Package ceremony implements the cryptographic core of the KZG powers of
// tau ceremony: the contribution and transcript structures, the update
// protocol folding fresh secrets into the powers, and the batched pairing
// checks used to verify contributions.
package ceremony

import (
	"math/big"
	"sync/atomic"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/recmo/kzg-ceremony-coordinator/common"
	"github.com/recmo/kzg-ceremony-coordinator/curve"
	"github.com/recmo/kzg-ceremony-coordinator/zcash"
)

var (
	g1Gen bls.G1Affine
	g2Gen bls.G2Affine
)

func init() {
	_, _, g1Gen, g2Gen = bls.Generators()
}

// Contribution holds one participant's powers of tau for a single
// sub-ceremony, together with the pot pubkey committing to the secret that
// was folded in.
type Contribution struct {
	Pubkey   bls.G2Affine
	G1Powers []bls.G1Affine
	G2Powers []bls.G2Affine
}

// Transcript is the accumulated state of a sub-ceremony: the current powers
// plus the witness trail of running products and pot pubkeys of every
// accepted contribution.
type Transcript struct {
	G1Powers []bls.G1Affine
	G2Powers []bls.G2Affine
	Products []bls.G1Affine
	Pubkeys  []bls.G2Affine
}

// NewTranscript returns the genesis transcript where every power is the
// group generator, corresponding to tau = 1.
func NewTranscript(numG1, numG2 int) *Transcript {
	return &Transcript{
		G1Powers: repeatG1(g1Gen, numG1),
		G2Powers: repeatG2(g2Gen, numG2),
		Products: []bls.G1Affine{g1Gen},
		Pubkeys:  []bls.G2Affine{g2Gen},
	}
}

// NewContribution returns the genesis contribution of the given size.
func NewContribution(numG1, numG2 int) *Contribution {
	return &Contribution{
		Pubkey:   g2Gen,
		G1Powers: repeatG1(g1Gen, numG1),
		G2Powers: repeatG2(g2Gen, numG2),
	}
}

// Contribution returns a fresh contribution seeded with the transcript's
// current powers, ready for AddTau.
func (t *Transcript) Contribution() *Contribution {
	return &Contribution{
		Pubkey:   g2Gen,
		G1Powers: append([]bls.G1Affine(nil), t.G1Powers...),
		G2Powers: append([]bls.G2Affine(nil), t.G2Powers...),
	}
}

// TranscriptFrom reconstructs the verification state from a previously
// published contribution: the running product is its first non-trivial
// power. Genesis files carry no pot pubkey; the trail starts at the
// generator then.
func TranscriptFrom(c *Contribution) *Transcript {
	pubkey := c.Pubkey
	if pubkey.IsInfinity() {
		pubkey = g2Gen
	}
	return &Transcript{
		G1Powers: append([]bls.G1Affine(nil), c.G1Powers...),
		G2Powers: append([]bls.G2Affine(nil), c.G2Powers...),
		Products: []bls.G1Affine{c.G1Powers[1]},
		Pubkeys:  []bls.G2Affine{pubkey},
	}
}

// Accept folds a contribution into the transcript, extending the witness
// trail. The caller must have verified the contribution first.
func (t *Transcript) Accept(c *Contribution) {
	t.G1Powers = append(t.G1Powers[:0:0], c.G1Powers...)
	t.G2Powers = append(t.G2Powers[:0:0], c.G2Powers...)
	t.Products = append(t.Products, c.G1Powers[1])
	t.Pubkeys = append(t.Pubkeys, c.Pubkey)
}

// SubgroupCheck verifies that every point of the contribution lies in the
// prime order subgroup. Points decoded by the zcash codec are already
// checked; this guards contributions built by other means.
func (c *Contribution) SubgroupCheck() error {
	if !curve.G2InSubgroup(&c.Pubkey) {
		return &PointError{Group: "potPubkey", Index: -1, Err: zcash.ErrInvalidSubgroup}
	}
	var bad atomic.Int64
	bad.Store(-1)
	common.Parallelize(len(c.G1Powers), func(start, end int) {
		for i := start; i < end; i++ {
			if !curve.G1InSubgroup(&c.G1Powers[i]) {
				bad.CompareAndSwap(-1, int64(i))
				return
			}
		}
	})
	if i := bad.Load(); i >= 0 {
		return &PointError{Group: "G1", Index: int(i), Err: zcash.ErrInvalidSubgroup}
	}
	common.Parallelize(len(c.G2Powers), func(start, end int) {
		for i := start; i < end; i++ {
			if !curve.G2InSubgroup(&c.G2Powers[i]) {
				bad.CompareAndSwap(-1, int64(i))
				return
			}
		}
	})
	if i := bad.Load(); i >= 0 {
		return &PointError{Group: "G2", Index: int(i), Err: zcash.ErrInvalidSubgroup}
	}
	return nil
}

// AddTau folds a fresh secret into the contribution: the i-th power is
// multiplied by tau^i and the pot pubkey by tau. All intermediate scalar
// material is wiped before returning; the caller owns wiping tau itself.
func (c *Contribution) AddTau(tau *fr.Element) {
	n := len(c.G1Powers)
	if len(c.G2Powers) > n {
		n = len(c.G2Powers)
	}
	powers := powTable(tau, n)
	defer wipeFr(powers)

	c.mulG1(powers[:len(c.G1Powers)])
	c.mulG2(powers[:len(c.G2Powers)])

	var tb big.Int
	tau.BigInt(&tb)
	c.Pubkey.ScalarMultiplication(&c.Pubkey, &tb)
	curve.WipeBig(&tb)
}

// powTable returns [1, tau, tau², ..., tau^(n-1)].
func powTable(tau *fr.Element, n int) []fr.Element {
	powers := make([]fr.Element, n)
	powers[0].SetOne()
	for i := 1; i < n; i++ {
		powers[i].Mul(&powers[i-1], tau)
	}
	return powers
}

func wipeFr(s []fr.Element) {
	for i := range s {
		s[i].SetZero()
	}
}

func (c *Contribution) mulG1(scalars []fr.Element) {
	jac := make([]bls.G1Jac, len(c.G1Powers))
	common.Parallelize(len(c.G1Powers), func(start, end int) {
		for i := start; i < end; i++ {
			curve.G1MulGLV(&jac[i], &c.G1Powers[i], &scalars[i])
		}
	})
	c.G1Powers = bls.BatchJacobianToAffineG1(jac)
}

func (c *Contribution) mulG2(scalars []fr.Element) {
	common.Parallelize(len(c.G2Powers), func(start, end int) {
		var s big.Int
		for i := start; i < end; i++ {
			scalars[i].BigInt(&s)
			c.G2Powers[i].ScalarMultiplication(&c.G2Powers[i], &s)
		}
		curve.WipeBig(&s)
	})
}

func repeatG1(p bls.G1Affine, n int) []bls.G1Affine {
	s := make([]bls.G1Affine, n)
	for i := range s {
		s[i] = p
	}
	return s
}

func repeatG2(p bls.G2Affine, n int) []bls.G2Affine {
	s := make([]bls.G2Affine, n)
	for i := range s {
		s[i] = p
	}
	return s
}
