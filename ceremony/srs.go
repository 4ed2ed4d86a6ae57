package ceremony

import (
	"bytes"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
)

// SRS exports the transcript's monomial powers as a gnark-crypto KZG
// structured reference string, usable directly by provers building on
// gnark-crypto.
func (t *Transcript) SRS() (*kzg.SRS, error) {
	var srs kzg.SRS
	srs.Pk.G1 = append(srs.Pk.G1, t.G1Powers...)
	srs.Vk.G1 = t.G1Powers[0]
	srs.Vk.G2[0] = t.G2Powers[0]
	srs.Vk.G2[1] = t.G2Powers[1]

	// Round-trip the verifying key through its own serialization so any
	// precomputation it carries is populated.
	var buf bytes.Buffer
	if _, err := srs.Vk.WriteTo(&buf); err != nil {
		return nil, err
	}
	if _, err := srs.Vk.ReadFrom(&buf); err != nil {
		return nil, err
	}
	return &srs, nil
}
