package bignum

// KaratsubaThreshold is the operand length, in limbs, at or below which
// products are computed with grade-school multiplication. Longer operands use
// the three-way split.
const KaratsubaThreshold = 32

// mulBasic returns a * b using grade-school multiplication.
func mulBasic(a, b nat) nat {
	if a.isZero() || b.isZero() {
		return nat{0}
	}
	out := make(nat, len(a)+len(b))
	for i := range a {
		ai := uint64(a[i])
		if ai == 0 {
			continue
		}
		var carry uint64
		for j := range b {
			k := i + j
			cur := uint64(out[k]) + ai*uint64(b[j]) + carry
			out[k] = uint32(cur % Base) //nolint:gosec // G115: remainder is below Base.
			carry = cur / Base
		}
		for k := i + len(b); carry != 0; k++ {
			cur := uint64(out[k]) + carry
			out[k] = uint32(cur % Base) //nolint:gosec // G115: remainder is below Base.
			carry = cur / Base
		}
	}
	return out.norm()
}

// mulKaratsuba returns a * b, splitting both operands in half and using three
// recursive products instead of four:
//
//	z0 = lo(a)*lo(b)
//	z2 = hi(a)*hi(b)
//	z1 = (lo(a)+hi(a))*(lo(b)+hi(b)) - z0 - z2
//	a*b = z2*B^(2m) + z1*B^m + z0
func mulKaratsuba(a, b nat) nat {
	n := max(len(a), len(b))
	if n <= KaratsubaThreshold {
		return mulBasic(a, b)
	}
	m := n / 2
	a0, a1 := splitLimbs(a, m)
	b0, b1 := splitLimbs(b, m)

	z0 := mulKaratsuba(a0, b0)
	z2 := mulKaratsuba(a1, b1)
	z1 := mulKaratsuba(addMag(a0, a1), addMag(b0, b1))
	// z1 >= z0 + z2, so neither subtraction swaps.
	z1 = subMag(subMag(z1, z0), z2)

	return addMag(addMag(shiftLimbs(z2, 2*m), shiftLimbs(z1, m)), z0)
}

// mulMag picks the multiplication algorithm by operand size.
func mulMag(a, b nat) nat {
	if max(len(a), len(b)) <= KaratsubaThreshold {
		return mulBasic(a, b)
	}
	return mulKaratsuba(a, b)
}

// splitLimbs returns the normalized low m limbs and high remainder of x.
func splitLimbs(x nat, m int) (lo, hi nat) {
	if len(x) <= m {
		return x, nat{0}
	}
	return x[:m].norm(), x[m:].norm()
}

// shiftLimbs returns x * Base^k.
func shiftLimbs(x nat, k int) nat {
	if k == 0 || x.isZero() {
		return x
	}
	out := make(nat, len(x)+k)
	copy(out[k:], x)
	return out
}

// Mul returns a * b.
func Mul(a, b BigInt) BigInt {
	return makeInt(a.IsNeg() != b.IsNeg(), mulMag(a.mag(), b.mag()))
}
