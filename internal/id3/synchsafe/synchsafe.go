package synchsafe

import (
	"errors"
	"fmt"
)

// Max is the largest value a 4-byte synchsafe integer can hold.
const Max uint32 = 1<<28 - 1

var (
	ErrHighBitSet = errors.New("synchsafe: high bit set")
	ErrOverflow   = errors.New("synchsafe: value exceeds 28 bits")
)

// Decode packs the low 7 bits of each byte, most significant byte first.
func Decode(b [4]byte) (uint32, error) {
	var v uint32
	for i, c := range b {
		if c&0x80 != 0 {
			return 0, fmt.Errorf("%w: byte %d is 0x%02X", ErrHighBitSet, i, c)
		}
		v |= uint32(c) << (21 - 7*i)
	}
	return v, nil
}

func Encode(v uint32) ([4]byte, error) {
	if v > Max {
		return [4]byte{}, fmt.Errorf("%w: %d", ErrOverflow, v)
	}
	return [4]byte{
		byte(v>>21) & 0x7F,
		byte(v>>14) & 0x7F,
		byte(v>>7) & 0x7F,
		byte(v) & 0x7F,
	}, nil
}
