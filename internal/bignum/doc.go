// Package bignum implements arbitrary-precision signed integers.
//
// A BigInt stores its magnitude as base-10^9 limbs, least significant first,
// next to a sign flag. Values are immutable and always kept in canonical
// form: no most-significant zero limbs and a single, non-negative zero. That
// makes decimal conversion a matter of printing limbs and lets values be
// shared between goroutines without locking.
//
// Multiplication switches from grade-school to a Karatsuba three-way split
// once an operand exceeds KaratsubaThreshold limbs. Division is schoolbook
// long division whose quotient limbs are found by binary search. Factorial
// multiplies a balanced range-product tree and forks large sub-ranges onto a
// bounded errgroup pool.
//
// Errors are returned, never panicked (except by MustParse), and are one of
// the sentinels ErrDivisionByZero, ErrInvalidArgument, ErrMalformed and
// ErrOverflow, possibly wrapped with context:
//
//	q, err := bignum.Div(a, b)
//	if errors.Is(err, bignum.ErrDivisionByZero) {
//		...
//	}
package bignum
