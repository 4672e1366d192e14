package bignum

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = BigInt{}
	_ msgpack.CustomDecoder = (*BigInt)(nil)
)

// EncodeMsgpack writes x as the array [neg, [limb0, limb1, ...]].
func (x BigInt) EncodeMsgpack(enc *msgpack.Encoder) error {
	m := x.mag()
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeBool(x.IsNeg()); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(m)); err != nil {
		return err
	}
	for _, limb := range m {
		if err := enc.EncodeUint32(limb); err != nil {
			return err
		}
	}
	return nil
}

// maxLimbHint bounds the capacity reserved from a decoded array header; the
// header comes from disk and is not trusted beyond that.
const maxLimbHint = 1 << 12

// DecodeMsgpack reads the form written by EncodeMsgpack. Out-of-range limbs
// fail with ErrMalformed; the decoded value is normalized.
func (x *BigInt) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("%w: msgpack array of length %d, want 2", ErrMalformed, n)
	}
	neg, err := dec.DecodeBool()
	if err != nil {
		return err
	}
	count, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("%w: msgpack value without limbs", ErrMalformed)
	}
	limbs := make(nat, 0, min(count, maxLimbHint))
	for i := range count {
		v, err := dec.DecodeUint32()
		if err != nil {
			return fmt.Errorf("%w: limb %d of %d: %w", ErrMalformed, i, count, err)
		}
		if v >= Base {
			return fmt.Errorf("%w: limb %d out of range: %d", ErrMalformed, i, v)
		}
		limbs = append(limbs, v)
	}
	*x = makeInt(neg, limbs)
	return nil
}
