package curve

import (
	"encoding/binary"
	"math/big"
	"math/bits"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

type u128 struct {
	hi, lo uint64
}

func u128FromBig(b *big.Int) u128 {
	var buf [16]byte
	b.FillBytes(buf[:])
	return u128{
		hi: binary.BigEndian.Uint64(buf[:8]),
		lo: binary.BigEndian.Uint64(buf[8:]),
	}
}

func (u u128) bit(i int) bool {
	if i >= 64 {
		return u.hi>>uint(i-64)&1 == 1
	}
	return u.lo>>uint(i)&1 == 1
}

func (u u128) bitLen() int {
	if u.hi != 0 {
		return 64 + bits.Len64(u.hi)
	}
	return bits.Len64(u.lo)
}

func (u *u128) wipe() {
	u.hi, u.lo = 0, 0
}

// splitScalar decomposes s = k0 + k1·λ (mod r) with both halves below 2¹²⁸.
// Since r = λ² - λ + 1 a plain division suffices, no lattice reduction is
// needed.
func splitScalar(s *fr.Element) (k0, k1 u128) {
	var sb, q, r big.Int
	s.BigInt(&sb)
	q.QuoRem(&sb, &lambda, &r)
	k0 = u128FromBig(&r)
	k1 = u128FromBig(&q)
	WipeBig(&sb)
	WipeBig(&q)
	WipeBig(&r)
	return k0, k1
}

// WipeBig zeroes the backing words of b. Scalars derived from the secret pass
// through big.Int and must not linger on the heap.
func WipeBig(b *big.Int) {
	w := b.Bits()
	for i := range w {
		w[i] = 0
	}
	b.SetInt64(0)
}

// G1MulGLV computes [s]p using the curve endomorphism to halve the number of
// doublings. It is valid for any s, including zero, and wipes the scalar
// decomposition before returning.
func G1MulGLV(res *bls.G1Jac, p *bls.G1Affine, s *fr.Element) *bls.G1Jac {
	k0, k1 := splitScalar(s)
	defer k0.wipe()
	defer k1.wipe()

	res.X.SetOne()
	res.Y.SetOne()
	res.Z.SetZero()

	n := k0.bitLen()
	if m := k1.bitLen(); m > n {
		n = m
	}
	if n == 0 {
		return res
	}

	// q = -ψ(p) = [λ]p, so res accumulates [k0]p + [k1·λ]p.
	var q bls.G1Affine
	G1Endomorphism(&q, p)
	q.Neg(&q)

	for i := n - 1; ; i-- {
		if k0.bit(i) {
			res.AddMixed(p)
		}
		if k1.bit(i) {
			res.AddMixed(&q)
		}
		if i == 0 {
			break
		}
		res.DoubleAssign()
	}
	return res
}
