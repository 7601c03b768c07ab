package mavlink

import "github.com/camerarecorder/camera-streaming-daemon/internal/constants"

type parserState int

const (
	stateWaitMagic parserState = iota
	stateHeader
	statePayload
	stateChecksum
)

const headerLen = 9 // length, incompat, compat, seq, sysID, compID, msgID(3)

// Parser accepts a MAVLink v2 byte stream one byte at a time and
// reassembles frames, discarding anything that fails its checksum
// rather than surfacing a parse error — a single dropped byte on a
// UDP datagram should not wedge the stream, it should just cost one
// frame (spec.md §4.6).
type Parser struct {
	state  parserState
	header [headerLen]byte
	hIdx   int
	length int
	payload []byte
	pIdx   int
	crcBuf [2]byte
	cIdx   int
}

// NewParser returns a Parser ready to consume bytes from a fresh stream.
func NewParser() *Parser {
	return &Parser{state: stateWaitMagic}
}

// Feed consumes one byte. It returns a decoded Frame and true once a
// complete, CRC-valid frame has been assembled; otherwise it returns
// false and the parser keeps its internal state for the next byte.
func (p *Parser) Feed(b byte) (Frame, bool) {
	switch p.state {
	case stateWaitMagic:
		if b == constants.MagicV2 {
			p.state = stateHeader
			p.hIdx = 0
		}
		return Frame{}, false

	case stateHeader:
		p.header[p.hIdx] = b
		p.hIdx++
		if p.hIdx < headerLen {
			return Frame{}, false
		}
		p.length = int(p.header[0])
		if p.length == 0 {
			p.payload = nil
			p.state = stateChecksum
			p.cIdx = 0
			return Frame{}, false
		}
		p.payload = make([]byte, p.length)
		p.pIdx = 0
		p.state = statePayload
		return Frame{}, false

	case statePayload:
		p.payload[p.pIdx] = b
		p.pIdx++
		if p.pIdx < p.length {
			return Frame{}, false
		}
		p.state = stateChecksum
		p.cIdx = 0
		return Frame{}, false

	case stateChecksum:
		p.crcBuf[p.cIdx] = b
		p.cIdx++
		if p.cIdx < 2 {
			return Frame{}, false
		}
		frame, ok := p.finish()
		p.reset()
		return frame, ok
	}

	p.reset()
	return Frame{}, false
}

func (p *Parser) finish() (Frame, bool) {
	length, incompat, compat := p.header[0], p.header[1], p.header[2]
	seq, sysID, compID := p.header[3], p.header[4], p.header[5]
	msgID := uint32(p.header[6]) | uint32(p.header[7])<<8 | uint32(p.header[8])<<16

	want, ok := checksum(length, incompat, compat, seq, sysID, compID, msgID, p.payload)
	if !ok {
		return Frame{}, false
	}
	got := uint16(p.crcBuf[0]) | uint16(p.crcBuf[1])<<8
	if got != want {
		return Frame{}, false
	}

	return Frame{
		Sequence:    seq,
		SystemID:    sysID,
		ComponentID: compID,
		MessageID:   msgID,
		Payload:     p.payload,
	}, true
}

func (p *Parser) reset() {
	p.state = stateWaitMagic
	p.hIdx = 0
	p.pIdx = 0
	p.cIdx = 0
	p.payload = nil
}
