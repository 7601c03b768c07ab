package camera

// Mode is the capture mode a device is operating in.
type Mode uint8

const (
	ModePreview Mode = 0
	ModeStill   Mode = 1
	ModeVideo   Mode = 2
)

// Info is the static per-device record advertised in CAMERA_INFORMATION.
// Immutable after device init.
type Info struct {
	Vendor              string // <=32 bytes
	Model               string // <=32 bytes
	FirmwareVersion     uint32
	FocalLength         float32 // mm
	SensorWidth         float32 // mm
	SensorHeight        float32 // mm
	ResolutionHorizontal uint16 // px
	ResolutionVertical   uint16 // px
	LensID              uint8
	Flags               uint32 // bitmask of MAV_CAMERA_CAP_FLAGS
	DefinitionVersion   uint16
	DefinitionURI       string // <=140 bytes ASCII
}

// FrameSize is a discrete (width, height) a device can emit.
type FrameSize struct {
	Width  uint32
	Height uint32
}

// Format owns a non-empty ordered list of FrameSizes for one pixel format.
type Format struct {
	PixelFormat string
	FrameSizes  []FrameSize
}

// frameSizeRef is a non-owning index pair into a Stream's own Formats,
// used instead of a pointer so the owning Stream can be copied/moved
// safely.
type frameSizeRef struct {
	formatIdx int
	sizeIdx   int
	set       bool
}

// Stream is one advertised RTSP stream on a device.
type Stream struct {
	ID           uint8
	IsStreaming  bool
	Formats      []Format
	selection    frameSizeRef
}

// Selected returns the currently selected frame size and whether one is set.
func (s *Stream) Selected() (FrameSize, bool) {
	if !s.selection.set {
		return FrameSize{}, false
	}
	return s.Formats[s.selection.formatIdx].FrameSizes[s.selection.sizeIdx], true
}

// selectAt points the selection at formats[formatIdx].frameSizes[sizeIdx].
// Panics on an out-of-range pair — callers must only pass indices returned
// by the Resolver, which always scans within Formats/FrameSizes bounds.
func (s *Stream) selectAt(formatIdx, sizeIdx int) {
	s.selection = frameSizeRef{formatIdx: formatIdx, sizeIdx: sizeIdx, set: true}
}

// ClearSelection sets the stream back to "no selection".
func (s *Stream) ClearSelection() {
	s.selection = frameSizeRef{}
}
