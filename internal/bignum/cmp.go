package bignum

// cmpMag compares two normalized magnitudes and returns -1, 0, or 1.
func cmpMag(a, b nat) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Cmp compares x and y and returns -1, 0, or 1.
func (x BigInt) Cmp(y BigInt) int {
	xn, yn := x.IsNeg(), y.IsNeg()
	if xn != yn {
		if xn {
			return -1
		}
		return 1
	}
	c := cmpMag(x.mag(), y.mag())
	if xn {
		return -c
	}
	return c
}

// CmpAbs compares |x| and |y| and returns -1, 0, or 1.
func CmpAbs(x, y BigInt) int {
	return cmpMag(x.mag(), y.mag())
}

// Equal reports whether x == y.
func (x BigInt) Equal(y BigInt) bool { return x.Cmp(y) == 0 }

// Less reports whether x < y.
func (x BigInt) Less(y BigInt) bool { return x.Cmp(y) < 0 }

// LessEqual reports whether x <= y.
func (x BigInt) LessEqual(y BigInt) bool { return x.Cmp(y) <= 0 }

// Greater reports whether x > y.
func (x BigInt) Greater(y BigInt) bool { return x.Cmp(y) > 0 }

// GreaterEqual reports whether x >= y.
func (x BigInt) GreaterEqual(y BigInt) bool { return x.Cmp(y) >= 0 }
