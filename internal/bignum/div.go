package bignum

// divMag returns the quotient and remainder of a / b using schoolbook long
// division in base 10^9. b must be non-zero.
//
// The dividend is consumed one limb at a time from the most significant end.
// Each step appends the next limb to the running remainder and picks the
// largest quotient limb x in [0, Base) with b*x <= remainder by binary search.
func divMag(a, b nat) (q, r nat) {
	if cmpMag(a, b) < 0 {
		return nat{0}, a
	}
	q = make(nat, len(a))
	cur := nat{0}
	for i := len(a) - 1; i >= 0; i-- {
		cur = pushLimb(cur, a[i])
		x := quotientLimb(cur, b)
		q[i] = x
		if x != 0 {
			cur = subMag(cur, mulBasic(b, nat{x}))
		}
	}
	return q.norm(), cur
}

// pushLimb returns cur*Base + limb.
func pushLimb(cur nat, limb uint32) nat {
	out := make(nat, len(cur)+1)
	out[0] = limb
	copy(out[1:], cur)
	return out.norm()
}

// quotientLimb returns the largest x in [0, Base) such that b*x <= cur.
// The caller guarantees cur < b*Base.
func quotientLimb(cur, b nat) uint32 {
	if cmpMag(cur, b) < 0 {
		return 0
	}
	var x uint32
	lo, hi := uint32(1), uint32(Base-1)
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if cmpMag(mulBasic(b, nat{mid}), cur) <= 0 {
			x = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return x
}

// DivMod returns the truncated quotient and remainder of a / b:
// q is rounded toward zero and r = a - q*b takes the sign of a.
func DivMod(a, b BigInt) (q, r BigInt, err error) {
	if b.IsZero() {
		return Zero(), Zero(), ErrDivisionByZero
	}
	qm, rm := divMag(a.mag(), b.mag())
	return makeInt(a.IsNeg() != b.IsNeg(), qm), makeInt(a.IsNeg(), rm), nil
}

// Div returns a / b truncated toward zero.
func Div(a, b BigInt) (BigInt, error) {
	q, _, err := DivMod(a, b)
	return q, err
}

// Mod returns a - (a/b)*b. The result has the sign of a.
func Mod(a, b BigInt) (BigInt, error) {
	_, r, err := DivMod(a, b)
	return r, err
}
