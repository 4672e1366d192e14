package bignum

// addMag returns a + b.
func addMag(a, b nat) nat {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make(nat, len(a)+1)
	var carry uint32
	for i := range a {
		sum := a[i] + carry
		if i < len(b) {
			sum += b[i]
		}
		// Two limbs plus a carry stay below 2*Base < 2^32.
		if sum >= Base {
			out[i] = sum - Base
			carry = 1
		} else {
			out[i] = sum
			carry = 0
		}
	}
	out[len(a)] = carry
	return out.norm()
}

// subMag returns |a - b|. The operands are swapped when b is larger, so the
// caller owns the sign of the result.
func subMag(a, b nat) nat {
	if cmpMag(a, b) < 0 {
		a, b = b, a
	}
	out := make(nat, len(a))
	var borrow uint32
	for i := range a {
		sub := borrow
		if i < len(b) {
			sub += b[i]
		}
		if a[i] >= sub {
			out[i] = a[i] - sub
			borrow = 0
		} else {
			out[i] = a[i] + Base - sub
			borrow = 1
		}
	}
	return out.norm()
}

// Add returns a + b.
func Add(a, b BigInt) BigInt {
	am, bm := a.mag(), b.mag()
	an, bn := a.IsNeg(), b.IsNeg()
	if an == bn {
		return makeInt(an, addMag(am, bm))
	}
	switch cmpMag(am, bm) {
	case 0:
		return Zero()
	case 1:
		return makeInt(an, subMag(am, bm))
	default:
		return makeInt(bn, subMag(bm, am))
	}
}

// Sub returns a - b.
func Sub(a, b BigInt) BigInt {
	return Add(a, b.Negated())
}
