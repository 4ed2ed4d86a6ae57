// Package zcash implements the ZCash compressed point encoding for BLS12-381,
// as used by the Ethereum consensus specifications. Points are serialized as
// the big-endian x coordinate with three flag bits folded into the most
// significant byte: compression (0x80), infinity (0x40) and the sign of y
// (0x20, set when y is the lexicographically larger root).
package zcash

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"

	"github.com/recmo/kzg-ceremony-coordinator/curve"
)

const (
	// SizeG1 is the compressed size of a G1 point in bytes.
	SizeG1 = 48
	// SizeG2 is the compressed size of a G2 point in bytes.
	SizeG2 = 96

	flagCompressed = 0x80
	flagInfinity   = 0x40
	flagBigY       = 0x20
	flagMask       = flagCompressed | flagInfinity | flagBigY
)

// ParseHex strips the mandatory 0x prefix and decodes the remaining hex
// digits.
func ParseHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") {
		return nil, ErrMissingPrefix
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, fmt.Errorf("zcash: %w", err)
	}
	return b, nil
}

// ParseG1 decodes a compressed G1 point and verifies it lies in the prime
// order subgroup.
func ParseG1(data []byte) (bls.G1Affine, error) {
	var p bls.G1Affine
	if len(data) != SizeG1 {
		return p, &InvalidLengthError{Expected: SizeG1, Actual: len(data)}
	}
	flags := data[0] & flagMask
	if flags&flagCompressed == 0 {
		return p, ErrNotCompressed
	}
	if flags&flagInfinity != 0 {
		if err := checkInfinity(flags, data); err != nil {
			return p, err
		}
		return p, nil
	}

	x, err := parseFp(data, 0)
	if err != nil {
		return p, err
	}
	if x.IsZero() {
		// x = 0 is reserved for the infinity encoding.
		return p, ErrInvalidXCoordinate
	}
	y, err := g1YFromX(&x, flags&flagBigY != 0)
	if err != nil {
		return p, err
	}
	p.X = x
	p.Y = y
	if !curve.G1InSubgroup(&p) {
		return p, ErrInvalidSubgroup
	}
	return p, nil
}

// ParseG2 decodes a compressed G2 point and verifies it lies in the prime
// order subgroup. The first 48 bytes hold the imaginary part of x, the second
// the real part.
func ParseG2(data []byte) (bls.G2Affine, error) {
	var p bls.G2Affine
	if len(data) != SizeG2 {
		return p, &InvalidLengthError{Expected: SizeG2, Actual: len(data)}
	}
	flags := data[0] & flagMask
	if flags&flagCompressed == 0 {
		return p, ErrNotCompressed
	}
	if flags&flagInfinity != 0 {
		if err := checkInfinity(flags, data); err != nil {
			return p, err
		}
		return p, nil
	}

	var x bls.E2
	a1, err := parseFp(data, 0)
	if err != nil {
		return p, err
	}
	a0, err := parseFp(data, SizeG1)
	if err != nil {
		return p, err
	}
	x.A0, x.A1 = a0, a1
	if x.IsZero() {
		return p, ErrInvalidXCoordinate
	}
	y, err := g2YFromX(&x, flags&flagBigY != 0)
	if err != nil {
		return p, err
	}
	p.X = x
	p.Y = y
	if !curve.G2InSubgroup(&p) {
		return p, ErrInvalidSubgroup
	}
	return p, nil
}

// ParseG1Hex decodes a 0x-prefixed hex string into a G1 point.
func ParseG1Hex(s string) (bls.G1Affine, error) {
	b, err := ParseHex(s)
	if err != nil {
		return bls.G1Affine{}, err
	}
	return ParseG1(b)
}

// ParseG2Hex decodes a 0x-prefixed hex string into a G2 point.
func ParseG2Hex(s string) (bls.G2Affine, error) {
	b, err := ParseHex(s)
	if err != nil {
		return bls.G2Affine{}, err
	}
	return ParseG2(b)
}

// EncodeG1 serializes a G1 point in compressed form.
func EncodeG1(p *bls.G1Affine) [SizeG1]byte {
	var out [SizeG1]byte
	if p.IsInfinity() {
		out[0] = flagCompressed | flagInfinity
		return out
	}
	xb := p.X.Bytes()
	copy(out[:], xb[:])
	out[0] |= flagCompressed
	if p.Y.LexicographicallyLargest() {
		out[0] |= flagBigY
	}
	return out
}

// EncodeG2 serializes a G2 point in compressed form.
func EncodeG2(p *bls.G2Affine) [SizeG2]byte {
	var out [SizeG2]byte
	if p.IsInfinity() {
		out[0] = flagCompressed | flagInfinity
		return out
	}
	a1 := p.X.A1.Bytes()
	a0 := p.X.A0.Bytes()
	copy(out[:SizeG1], a1[:])
	copy(out[SizeG1:], a0[:])
	out[0] |= flagCompressed
	if p.Y.LexicographicallyLargest() {
		out[0] |= flagBigY
	}
	return out
}

// EncodeG1Hex serializes a G1 point as a 0x-prefixed hex string.
func EncodeG1Hex(p *bls.G1Affine) string {
	b := EncodeG1(p)
	return "0x" + hex.EncodeToString(b[:])
}

// EncodeG2Hex serializes a G2 point as a 0x-prefixed hex string.
func EncodeG2Hex(p *bls.G2Affine) string {
	b := EncodeG2(p)
	return "0x" + hex.EncodeToString(b[:])
}

// checkInfinity verifies that an encoding with the infinity flag set carries
// no other information.
func checkInfinity(flags byte, data []byte) error {
	if flags&flagBigY != 0 {
		return ErrInvalidInfinity
	}
	if data[0] & ^byte(flagMask) != 0 {
		return ErrInvalidInfinity
	}
	for _, b := range data[1:] {
		if b != 0 {
			return ErrInvalidInfinity
		}
	}
	return nil
}

// parseFp reads a canonical big-endian field element starting at off, masking
// the flag bits of the leading byte.
func parseFp(data []byte, off int) (fp.Element, error) {
	var buf [SizeG1]byte
	copy(buf[:], data[off:off+SizeG1])
	if off == 0 {
		buf[0] &^= flagMask
	}
	if new(big.Int).SetBytes(buf[:]).Cmp(fp.Modulus()) >= 0 {
		return fp.Element{}, ErrInvalidXField
	}
	var x fp.Element
	x.SetBytes(buf[:])
	return x, nil
}

// g1YFromX recovers the y coordinate with the requested sign from the curve
// equation y² = x³ + 4.
func g1YFromX(x *fp.Element, bigY bool) (fp.Element, error) {
	var ySq, y fp.Element
	ySq.Square(x).Mul(&ySq, x)
	ySq.Add(&ySq, &g1B)
	if y.Sqrt(&ySq) == nil {
		return fp.Element{}, ErrInvalidXCoordinate
	}
	if y.LexicographicallyLargest() != bigY {
		y.Neg(&y)
	}
	return y, nil
}

// g2YFromX recovers the y coordinate with the requested sign from the twist
// equation y² = x³ + 4(u+1).
func g2YFromX(x *bls.E2, bigY bool) (bls.E2, error) {
	var ySq, y bls.E2
	ySq.Square(x).Mul(&ySq, x)
	ySq.Add(&ySq, &g2B)
	if ySq.Legendre() == -1 {
		return bls.E2{}, ErrInvalidXCoordinate
	}
	y.Sqrt(&ySq)
	if y.LexicographicallyLargest() != bigY {
		y.Neg(&y)
	}
	return y, nil
}

var (
	g1B fp.Element
	g2B bls.E2
)

func init() {
	g1B.SetUint64(4)
	g2B.A0.SetUint64(4)
	g2B.A1.SetUint64(4)
}
