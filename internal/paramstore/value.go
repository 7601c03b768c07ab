package paramstore

import (
	"encoding/binary"
	"math"
)

// ValueSize is the MAVLink PARAM_EXT opaque value width.
const ValueSize = 128

// Value is the opaque 128-byte parameter value carrier. Only the
// leading bytes (per the declared Type's width) are meaningful; the
// remainder is padding, little-endian host order throughout.
type Value [ValueSize]byte

// EncodeUint8 packs v as a UINT8 value.
func EncodeUint8(v uint8) Value {
	var buf Value
	buf[0] = v
	return buf
}

// DecodeUint8 reads the leading byte as UINT8.
func (v Value) DecodeUint8() uint8 { return v[0] }

// EncodeInt32 packs v as an INT32 value.
func EncodeInt32(v int32) Value {
	var buf Value
	binary.LittleEndian.PutUint32(buf[:4], uint32(v))
	return buf
}

// DecodeInt32 reads the leading 4 bytes as INT32.
func (v Value) DecodeInt32() int32 {
	return int32(binary.LittleEndian.Uint32(v[:4]))
}

// EncodeUint32 packs v as a UINT32 value.
func EncodeUint32(v uint32) Value {
	var buf Value
	binary.LittleEndian.PutUint32(buf[:4], v)
	return buf
}

// DecodeUint32 reads the leading 4 bytes as UINT32.
func (v Value) DecodeUint32() uint32 {
	return binary.LittleEndian.Uint32(v[:4])
}

// EncodeReal32 packs v as a REAL32 value.
func EncodeReal32(v float32) Value {
	var buf Value
	binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(v))
	return buf
}

// DecodeReal32 reads the leading 4 bytes as REAL32.
func (v Value) DecodeReal32() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(v[:4]))
}

// Equal compares two values over the width that typ declares; bytes
// beyond that width (padding) never participate in equality.
func Equal(typ Type, a, b Value) bool {
	w := typ.Width()
	if w == 0 {
		return a == b
	}
	for i := 0; i < w; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
