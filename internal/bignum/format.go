package bignum

import "strconv"

// String returns the canonical decimal form of x: an optional '-', the most
// significant limb without padding and every other limb padded to nine digits.
func (x BigInt) String() string {
	return string(x.appendDecimal(nil))
}

// AppendText implements encoding.TextAppender.
func (x BigInt) AppendText(buf []byte) ([]byte, error) {
	return x.appendDecimal(buf), nil
}

// MarshalText implements encoding.TextMarshaler.
func (x BigInt) MarshalText() ([]byte, error) {
	return x.appendDecimal(nil), nil
}

func (x BigInt) appendDecimal(buf []byte) []byte {
	m := x.mag()
	if need := len(m)*BaseDigits + 1; cap(buf)-len(buf) < need {
		grown := make([]byte, len(buf), len(buf)+need)
		copy(grown, buf)
		buf = grown
	}
	if x.IsNeg() {
		buf = append(buf, '-')
	}
	buf = strconv.AppendUint(buf, uint64(m[len(m)-1]), 10)
	for i := len(m) - 2; i >= 0; i-- {
		buf = appendLimb(buf, m[i])
	}
	return buf
}

// appendLimb appends v as exactly BaseDigits digits.
func appendLimb(buf []byte, v uint32) []byte {
	var tmp [BaseDigits]byte
	for i := BaseDigits - 1; i >= 0; i-- {
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(buf, tmp[:]...)
}
