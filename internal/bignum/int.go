package bignum

import (
	"math/bits"

	"fortio.org/safecast"
)

const (
	// Base is the radix of a single limb.
	Base = 1_000_000_000
	// BaseDigits is the number of decimal digits held by one limb.
	BaseDigits = 9
)

// BigInt represents a big signed integer.
//
// Values are immutable: every operation returns a new BigInt and leaves its
// operands untouched, so a BigInt may be shared freely between goroutines.
// The zero value is 0.
type BigInt struct {
	neg bool
	// limbs are base-10^9 little-endian magnitude (limbs[0] is least significant).
	//
	// Canonical zero is neg=false and limbs=[0]; an empty slice also reads as zero.
	limbs nat
}

// nat is an unsigned magnitude in base 10^9, least significant limb first.
type nat []uint32

var natZero = nat{0}

// Zero returns the canonical zero.
func Zero() BigInt { return BigInt{limbs: nat{0}} }

// One returns the value 1.
func One() BigInt { return BigInt{limbs: nat{1}} }

// FromUint64 creates a BigInt from a uint64.
func FromUint64(v uint64) BigInt {
	return BigInt{limbs: natFromUint64(v)}
}

// FromInt64 creates a BigInt from an int64.
func FromInt64(v int64) BigInt {
	if v >= 0 {
		return BigInt{limbs: natFromUint64(uint64(v))}
	}
	u := uint64(-(v + 1)) //nolint:gosec // G115: -(v+1) is non-negative and fits in uint64 here.
	u++
	return BigInt{neg: true, limbs: natFromUint64(u)}
}

func natFromUint64(v uint64) nat {
	if v == 0 {
		return nat{0}
	}
	z := make(nat, 0, 3)
	for v != 0 {
		z = append(z, uint32(v%Base)) //nolint:gosec // G115: remainder is below Base.
		v /= Base
	}
	return z
}

// mag returns the magnitude, mapping the empty zero value to [0].
func (x BigInt) mag() nat {
	if len(x.limbs) == 0 {
		return natZero
	}
	return x.limbs
}

// IsZero reports whether x is zero.
func (x BigInt) IsZero() bool {
	return x.mag().isZero()
}

// IsNeg reports whether x is strictly negative.
func (x BigInt) IsNeg() bool {
	return x.neg && !x.IsZero()
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x BigInt) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// Limbs returns a copy of the base-10^9 magnitude, least significant first.
func (x BigInt) Limbs() []uint32 {
	m := x.mag()
	out := make([]uint32, len(m))
	copy(out, m)
	return out
}

// Abs returns |x|.
func (x BigInt) Abs() BigInt {
	return BigInt{limbs: x.mag()}
}

// Negated returns -x. Zero stays non-negative.
func (x BigInt) Negated() BigInt {
	if x.IsZero() {
		return Zero()
	}
	return BigInt{neg: !x.neg, limbs: x.mag()}
}

// IsEven reports whether x is divisible by two.
func (x BigInt) IsEven() bool {
	// Base is even, so parity is decided by the lowest limb alone.
	return x.mag()[0]&1 == 0
}

// Uint64 converts |x| to uint64 if it fits and x is not negative.
func (x BigInt) Uint64() (uint64, bool) {
	if x.IsNeg() {
		return 0, false
	}
	return x.mag().uint64()
}

// Int64 converts x to int64 if possible.
func (x BigInt) Int64() (int64, bool) {
	m, ok := x.mag().uint64()
	if !ok {
		return 0, false
	}
	if !x.IsNeg() {
		v, err := safecast.Conv[int64](m)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	// Negative: allow magnitude up to 2^63.
	const minMag = uint64(1) << 63
	switch {
	case m > minMag:
		return 0, false
	case m == minMag:
		return -1 << 63, true
	default:
		return -int64(m), true //nolint:gosec // G115: m < 2^63.
	}
}

func (z nat) isZero() bool {
	return len(z) == 1 && z[0] == 0
}

// uint64 folds at most three limbs into a uint64, reporting overflow.
func (z nat) uint64() (uint64, bool) {
	if len(z) > 3 {
		return 0, false
	}
	var v uint64
	for i := len(z) - 1; i >= 0; i-- {
		hi, lo := bits.Mul64(v, Base)
		if hi != 0 {
			return 0, false
		}
		sum, carry := bits.Add64(lo, uint64(z[i]), 0)
		if carry != 0 {
			return 0, false
		}
		v = sum
	}
	return v, true
}

// norm drops most-significant zero limbs, keeping at least one limb.
func (z nat) norm() nat {
	i := len(z)
	for i > 1 && z[i-1] == 0 {
		i--
	}
	if i == 0 {
		return nat{0}
	}
	return z[:i]
}

// makeInt builds a canonical BigInt from a magnitude and a sign.
func makeInt(neg bool, m nat) BigInt {
	m = m.norm()
	if m.isZero() {
		neg = false
	}
	return BigInt{neg: neg, limbs: m}
}
