package rdb

import (
	"encoding/binary"
	"fmt"
)

// DecodeLength decodes a variable-width length prefix at the start of data.
// It returns the number of bytes consumed and the decoded length.
//
//	0-63    6 bit length in the marker itself
//	64-127  14 bit length using one extra byte
//	128-191 30 bit length using three extra bytes, big-endian
//	192-253 marker minus 192
//	254     32 bit little-endian length in four extra bytes
//	255     reserved
func DecodeLength(data []byte) (int, int, error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("%w: empty data when decoding length", ErrShortBuffer)
	}

	b := data[0]
	switch {
	case b <= 63:
		return 1, int(b), nil
	case b <= 127:
		if len(data) < 2 {
			return 0, 0, fmt.Errorf("%w: need 2 bytes for 14 bit length", ErrShortBuffer)
		}
		return 2, int(b&0x3F)<<8 | int(data[1]), nil
	case b <= 191:
		if len(data) < 4 {
			return 0, 0, fmt.Errorf("%w: need 4 bytes for 32 bit length", ErrShortBuffer)
		}
		return 4, int(b&0x3F)<<24 | int(data[1])<<16 | int(data[2])<<8 | int(data[3]), nil
	case b <= 253:
		return 1, int(b) - 192, nil
	case b == 254:
		if len(data) < 5 {
			return 0, 0, fmt.Errorf("%w: need 5 bytes for little-endian length", ErrShortBuffer)
		}
		return 5, int(binary.LittleEndian.Uint32(data[1:5])), nil
	default:
		return 0, 0, fmt.Errorf("%w (255)", ErrInvalidLength)
	}
}

// DecodeInteger decodes an integer-encoded value at the start of data.
// 0xC0 carries one unsigned byte, 0xC1-0xC3 carry 2, 4 and 8 byte signed
// little-endian values, and other markers up to 223 pack the value in their low 6 bits.
func DecodeInteger(data []byte) (int, int64, error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("%w: empty data when decoding integer", ErrShortBuffer)
	}

	need := func(n int) error {
		if len(data) < n {
			return fmt.Errorf("%w: need %d bytes for integer marker 0x%X", ErrShortBuffer, n, data[0])
		}
		return nil
	}

	b := data[0]
	switch {
	case b == 0xC0:
		if err := need(2); err != nil {
			return 0, 0, err
		}
		return 2, int64(data[1]), nil
	case b == 0xC1:
		if err := need(3); err != nil {
			return 0, 0, err
		}
		return 3, int64(int16(binary.LittleEndian.Uint16(data[1:3]))), nil
	case b == 0xC2:
		if err := need(5); err != nil {
			return 0, 0, err
		}
		return 5, int64(int32(binary.LittleEndian.Uint32(data[1:5]))), nil
	case b == 0xC3:
		if err := need(9); err != nil {
			return 0, 0, err
		}
		return 9, int64(binary.LittleEndian.Uint64(data[1:9])), nil
	case b >= 192 && b <= packedIntHi:
		return 1, int64(b & 0x3F), nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidInteger, b)
	}
}

// DecodeString decodes a length-prefixed byte string at the start of data.
// The returned payload aliases data.
func DecodeString(data []byte) (int, []byte, error) {
	n, length, err := DecodeLength(data)
	if err != nil {
		return 0, nil, err
	}

	total := n + length
	if len(data) < total {
		return 0, nil, fmt.Errorf("%w: need %d bytes for encoded string, have %d", ErrShortBuffer, total, len(data))
	}
	return total, data[n:total], nil
}

// isIntegerMarker reports whether b introduces an explicitly sized integer
func isIntegerMarker(b byte) bool {
	return b >= intEncMin && b <= intEncMax
}

// appendInt64LE appends the 8 byte little-endian form of v
func appendInt64LE(dst []byte, v int64) []byte {
	return binary.LittleEndian.AppendUint64(dst, uint64(v))
}
