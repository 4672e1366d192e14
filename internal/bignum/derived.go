package bignum

import "context"

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD(a, b BigInt) BigInt {
	x, y := a.mag(), b.mag()
	for !y.isZero() {
		_, r := divMag(x, y)
		x, y = y, r
	}
	return makeInt(false, x)
}

// IsPrime reports whether x is prime by trial division.
//
// Every odd candidate up to x/2 is tried, so the cost grows linearly with x.
// Use IsPrimeContext to bound the search.
func (x BigInt) IsPrime() bool {
	ok, _ := IsPrimeContext(context.Background(), x)
	return ok
}

// primeCheckEvery is the number of trial divisions between context checks.
const primeCheckEvery = 1024

// IsPrimeContext is IsPrime with cancellation. It returns ctx.Err() if the
// context ends before the trial division finishes.
func IsPrimeContext(ctx context.Context, x BigInt) (bool, error) {
	two := nat{2}
	n := x.mag()
	switch {
	case x.IsNeg() || cmpMag(n, nat{1}) <= 0:
		return false, nil
	case cmpMag(n, two) == 0:
		return true, nil
	case x.IsEven():
		return false, nil
	}

	half, _ := divMag(n, two)
	steps := 0
	for d := (nat{3}); cmpMag(d, half) <= 0; d = addMag(d, two) {
		if _, r := divMag(n, d); r.isZero() {
			return false, nil
		}
		steps++
		if steps%primeCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}
