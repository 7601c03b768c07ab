package mavlink

import (
	"fmt"

	"github.com/camerarecorder/camera-streaming-daemon/internal/constants"
)

// Frame is a decoded MAVLink v2 frame: header fields plus a raw,
// not-yet-interpreted payload. Message-specific decoders consume
// Frame.Payload.
type Frame struct {
	Sequence    uint8
	SystemID    uint8
	ComponentID uint8
	MessageID   uint32
	Payload     []byte
}

// EncodeFrame serializes a Frame to a MAVLink v2 byte sequence,
// appending the trailing CRC. The incompat/compat flag bytes are
// always zero — this daemon does not use signing or fragmentation.
func EncodeFrame(f Frame) ([]byte, error) {
	if len(f.Payload) > constants.MaxPayloadLength {
		return nil, fmt.Errorf("mavlink: payload length %d exceeds max %d", len(f.Payload), constants.MaxPayloadLength)
	}

	length := byte(len(f.Payload))
	const incompat, compat = byte(0), byte(0)

	crc, ok := checksum(length, incompat, compat, f.Sequence, f.SystemID, f.ComponentID, f.MessageID, f.Payload)
	if !ok {
		return nil, fmt.Errorf("mavlink: no CRC_EXTRA registered for message id %d", f.MessageID)
	}

	buf := make([]byte, 0, 10+len(f.Payload)+2)
	buf = append(buf, constants.MagicV2, length, incompat, compat, f.Sequence, f.SystemID, f.ComponentID)
	buf = append(buf, byte(f.MessageID), byte(f.MessageID>>8), byte(f.MessageID>>16))
	buf = append(buf, f.Payload...)
	buf = append(buf, byte(crc), byte(crc>>8))
	return buf, nil
}
