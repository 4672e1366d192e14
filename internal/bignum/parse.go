package bignum

import "fmt"

// Parse converts a decimal string to a BigInt.
//
// The accepted form is an optional leading '-' followed by one or more ASCII
// digits. Leading zeros are allowed and "-0" is zero. Anything else, including
// surrounding whitespace or a '+' sign, fails with ErrMalformed.
func Parse(s string) (BigInt, error) {
	digits := s
	neg := false
	if len(digits) > 0 && digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}
	if digits == "" {
		return Zero(), fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	for i := range len(digits) {
		if ch := digits[i]; ch < '0' || ch > '9' {
			return Zero(), fmt.Errorf("%w: %q: unexpected %q at offset %d", ErrMalformed, s, ch, len(s)-len(digits)+i)
		}
	}

	// Chunk from the least significant end, BaseDigits digits per limb.
	limbs := make(nat, 0, (len(digits)+BaseDigits-1)/BaseDigits)
	for end := len(digits); end > 0; end -= BaseDigits {
		start := max(0, end-BaseDigits)
		var limb uint32
		for i := start; i < end; i++ {
			limb = limb*10 + uint32(digits[i]-'0')
		}
		limbs = append(limbs, limb)
	}
	return makeInt(neg, limbs), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) BigInt {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *BigInt) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
