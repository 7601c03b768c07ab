package mavlink

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Heartbeat mirrors the common-dialect HEARTBEAT message (spec.md C10).
type Heartbeat struct {
	CustomMode     uint32
	Type           uint8
	Autopilot      uint8
	BaseMode       uint8
	SystemStatus   uint8
	MAVLinkVersion uint8
}

func EncodeHeartbeat(h Heartbeat) []byte {
	buf := make([]byte, 9)
	binary.LittleEndian.PutUint32(buf[0:4], h.CustomMode)
	buf[4] = h.Type
	buf[5] = h.Autopilot
	buf[6] = h.BaseMode
	buf[7] = h.SystemStatus
	buf[8] = h.MAVLinkVersion
	return buf
}

func DecodeHeartbeat(p []byte) (Heartbeat, error) {
	if len(p) < 9 {
		return Heartbeat{}, fmt.Errorf("mavlink: HEARTBEAT payload too short: %d", len(p))
	}
	return Heartbeat{
		CustomMode:     binary.LittleEndian.Uint32(p[0:4]),
		Type:           p[4],
		Autopilot:      p[5],
		BaseMode:       p[6],
		SystemStatus:   p[7],
		MAVLinkVersion: p[8],
	}, nil
}

// CommandLong mirrors COMMAND_LONG (spec.md C9).
type CommandLong struct {
	Param          [7]float32
	Command        uint16
	TargetSystem   uint8
	TargetComponent uint8
	Confirmation   uint8
}

func EncodeCommandLong(c CommandLong) []byte {
	buf := make([]byte, 33)
	for i, p := range c.Param {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(p))
	}
	binary.LittleEndian.PutUint16(buf[28:30], c.Command)
	buf[30] = c.TargetSystem
	buf[31] = c.TargetComponent
	buf[32] = c.Confirmation
	return buf
}

func DecodeCommandLong(p []byte) (CommandLong, error) {
	if len(p) < 33 {
		return CommandLong{}, fmt.Errorf("mavlink: COMMAND_LONG payload too short: %d", len(p))
	}
	var c CommandLong
	for i := range c.Param {
		c.Param[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*4 : i*4+4]))
	}
	c.Command = binary.LittleEndian.Uint16(p[28:30])
	c.TargetSystem = p[30]
	c.TargetComponent = p[31]
	c.Confirmation = p[32]
	return c, nil
}

// CommandAck mirrors COMMAND_ACK (spec.md C9).
type CommandAck struct {
	Command         uint16
	Result          uint8
	TargetSystem    uint8
	TargetComponent uint8
}

func EncodeCommandAck(a CommandAck) []byte {
	buf := make([]byte, 5)
	binary.LittleEndian.PutUint16(buf[0:2], a.Command)
	buf[2] = a.Result
	buf[3] = a.TargetSystem
	buf[4] = a.TargetComponent
	return buf
}

func DecodeCommandAck(p []byte) (CommandAck, error) {
	if len(p) < 5 {
		return CommandAck{}, fmt.Errorf("mavlink: COMMAND_ACK payload too short: %d", len(p))
	}
	return CommandAck{
		Command:         binary.LittleEndian.Uint16(p[0:2]),
		Result:          p[2],
		TargetSystem:    p[3],
		TargetComponent: p[4],
	}, nil
}

// CameraInformation mirrors CAMERA_INFORMATION (spec.md C9/C3).
type CameraInformation struct {
	TimeBootMs          uint32
	FirmwareVersion     uint32
	FocalLength         float32
	SensorSizeH         float32
	SensorSizeV         float32
	ResolutionH         uint16
	ResolutionV         uint16
	CamDefinitionVersion uint16
	Flags               uint32
	VendorName          string // <=32 bytes
	ModelName           string // <=32 bytes
	LensID              uint8
	CamDefinitionURI    string // <=140 bytes
}

const cameraInfoFixedLen = 4 + 4 + 4 + 4 + 4 + 2 + 2 + 2 + 4 + 32 + 32 + 1

func EncodeCameraInformation(c CameraInformation) []byte {
	uri := c.CamDefinitionURI
	if len(uri) > 140 {
		uri = uri[:140]
	}
	buf := make([]byte, cameraInfoFixedLen+len(uri))
	off := 0
	binary.LittleEndian.PutUint32(buf[off:off+4], c.TimeBootMs)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], c.FirmwareVersion)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(c.FocalLength))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(c.SensorSizeH))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(c.SensorSizeV))
	off += 4
	binary.LittleEndian.PutUint16(buf[off:off+2], c.ResolutionH)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], c.ResolutionV)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], c.CamDefinitionVersion)
	off += 2
	binary.LittleEndian.PutUint32(buf[off:off+4], c.Flags)
	off += 4
	putFixedString(buf[off:off+32], c.VendorName)
	off += 32
	putFixedString(buf[off:off+32], c.ModelName)
	off += 32
	buf[off] = c.LensID
	off++
	copy(buf[off:], uri)
	return buf
}

func DecodeCameraInformation(p []byte) (CameraInformation, error) {
	if len(p) < cameraInfoFixedLen {
		return CameraInformation{}, fmt.Errorf("mavlink: CAMERA_INFORMATION payload too short: %d", len(p))
	}
	var c CameraInformation
	off := 0
	c.TimeBootMs = binary.LittleEndian.Uint32(p[off : off+4])
	off += 4
	c.FirmwareVersion = binary.LittleEndian.Uint32(p[off : off+4])
	off += 4
	c.FocalLength = math.Float32frombits(binary.LittleEndian.Uint32(p[off : off+4]))
	off += 4
	c.SensorSizeH = math.Float32frombits(binary.LittleEndian.Uint32(p[off : off+4]))
	off += 4
	c.SensorSizeV = math.Float32frombits(binary.LittleEndian.Uint32(p[off : off+4]))
	off += 4
	c.ResolutionH = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	c.ResolutionV = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	c.CamDefinitionVersion = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	c.Flags = binary.LittleEndian.Uint32(p[off : off+4])
	off += 4
	c.VendorName = getFixedString(p[off : off+32])
	off += 32
	c.ModelName = getFixedString(p[off : off+32])
	off += 32
	c.LensID = p[off]
	off++
	c.CamDefinitionURI = string(p[off:])
	return c, nil
}

// CameraSettings mirrors CAMERA_SETTINGS (spec.md C9).
type CameraSettings struct {
	TimeBootMs uint32
	ZoomLevel  float32
	FocusLevel float32
	ModeID     uint8
}

func EncodeCameraSettings(c CameraSettings) []byte {
	buf := make([]byte, 13)
	binary.LittleEndian.PutUint32(buf[0:4], c.TimeBootMs)
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(c.ZoomLevel))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(c.FocusLevel))
	buf[12] = c.ModeID
	return buf
}

func DecodeCameraSettings(p []byte) (CameraSettings, error) {
	if len(p) < 13 {
		return CameraSettings{}, fmt.Errorf("mavlink: CAMERA_SETTINGS payload too short: %d", len(p))
	}
	return CameraSettings{
		TimeBootMs: binary.LittleEndian.Uint32(p[0:4]),
		ZoomLevel:  math.Float32frombits(binary.LittleEndian.Uint32(p[4:8])),
		FocusLevel: math.Float32frombits(binary.LittleEndian.Uint32(p[8:12])),
		ModeID:     p[12],
	}, nil
}

// StorageInformation mirrors STORAGE_INFORMATION (spec.md C9).
type StorageInformation struct {
	TimeBootMs        uint32
	TotalCapacity     float32
	UsedCapacity      float32
	AvailableCapacity float32
	ReadSpeed         float32
	WriteSpeed        float32
	StorageID         uint8
	StorageCount      uint8
	Status            uint8
}

func EncodeStorageInformation(s StorageInformation) []byte {
	buf := make([]byte, 27)
	binary.LittleEndian.PutUint32(buf[0:4], s.TimeBootMs)
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(s.TotalCapacity))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(s.UsedCapacity))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(s.AvailableCapacity))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(s.ReadSpeed))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(s.WriteSpeed))
	buf[24] = s.StorageID
	buf[25] = s.StorageCount
	buf[26] = s.Status
	return buf
}

func DecodeStorageInformation(p []byte) (StorageInformation, error) {
	if len(p) < 27 {
		return StorageInformation{}, fmt.Errorf("mavlink: STORAGE_INFORMATION payload too short: %d", len(p))
	}
	return StorageInformation{
		TimeBootMs:        binary.LittleEndian.Uint32(p[0:4]),
		TotalCapacity:     math.Float32frombits(binary.LittleEndian.Uint32(p[4:8])),
		UsedCapacity:      math.Float32frombits(binary.LittleEndian.Uint32(p[8:12])),
		AvailableCapacity: math.Float32frombits(binary.LittleEndian.Uint32(p[12:16])),
		ReadSpeed:         math.Float32frombits(binary.LittleEndian.Uint32(p[16:20])),
		WriteSpeed:        math.Float32frombits(binary.LittleEndian.Uint32(p[20:24])),
		StorageID:         p[24],
		StorageCount:      p[25],
		Status:            p[26],
	}, nil
}

// VideoStreamInformation mirrors VIDEO_STREAM_INFORMATION (spec.md C9).
type VideoStreamInformation struct {
	FrameRate   float32
	BitRate     uint32
	Flags       uint16
	ResolutionH uint16
	ResolutionV uint16
	Rotation    uint16
	HFov        uint16
	StreamID    uint8
	Count       uint8
	Type        uint8
	Name        string // <=32 bytes
	URI         string // <=160 bytes
}

const videoStreamInfoFixedLen = 4 + 4 + 2 + 2 + 2 + 2 + 2 + 1 + 1 + 1 + 32

func EncodeVideoStreamInformation(v VideoStreamInformation) []byte {
	uri := v.URI
	if len(uri) > 160 {
		uri = uri[:160]
	}
	buf := make([]byte, videoStreamInfoFixedLen+len(uri))
	off := 0
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v.FrameRate))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], v.BitRate)
	off += 4
	binary.LittleEndian.PutUint16(buf[off:off+2], v.Flags)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], v.ResolutionH)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], v.ResolutionV)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], v.Rotation)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], v.HFov)
	off += 2
	buf[off] = v.StreamID
	off++
	buf[off] = v.Count
	off++
	buf[off] = v.Type
	off++
	putFixedString(buf[off:off+32], v.Name)
	off += 32
	copy(buf[off:], uri)
	return buf
}

func DecodeVideoStreamInformation(p []byte) (VideoStreamInformation, error) {
	if len(p) < videoStreamInfoFixedLen {
		return VideoStreamInformation{}, fmt.Errorf("mavlink: VIDEO_STREAM_INFORMATION payload too short: %d", len(p))
	}
	var v VideoStreamInformation
	off := 0
	v.FrameRate = math.Float32frombits(binary.LittleEndian.Uint32(p[off : off+4]))
	off += 4
	v.BitRate = binary.LittleEndian.Uint32(p[off : off+4])
	off += 4
	v.Flags = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	v.ResolutionH = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	v.ResolutionV = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	v.Rotation = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	v.HFov = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	v.StreamID = p[off]
	off++
	v.Count = p[off]
	off++
	v.Type = p[off]
	off++
	v.Name = getFixedString(p[off : off+32])
	off += 32
	v.URI = string(p[off:])
	return v, nil
}

// SetVideoStreamSettings mirrors SET_VIDEO_STREAM_SETTINGS (spec.md C9).
type SetVideoStreamSettings struct {
	FrameRate       float32
	BitRate         uint32
	ResolutionH     uint16
	ResolutionV     uint16
	Rotation        uint16
	HFov            uint16
	TargetSystem    uint8
	TargetComponent uint8
	StreamID        uint8
	URI             string // <=160 bytes
}

const setVideoStreamFixedLen = 4 + 4 + 2 + 2 + 2 + 2 + 1 + 1 + 1

func EncodeSetVideoStreamSettings(s SetVideoStreamSettings) []byte {
	uri := s.URI
	if len(uri) > 160 {
		uri = uri[:160]
	}
	buf := make([]byte, setVideoStreamFixedLen+len(uri))
	off := 0
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(s.FrameRate))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], s.BitRate)
	off += 4
	binary.LittleEndian.PutUint16(buf[off:off+2], s.ResolutionH)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], s.ResolutionV)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], s.Rotation)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], s.HFov)
	off += 2
	buf[off] = s.TargetSystem
	off++
	buf[off] = s.TargetComponent
	off++
	buf[off] = s.StreamID
	off++
	copy(buf[off:], uri)
	return buf
}

func DecodeSetVideoStreamSettings(p []byte) (SetVideoStreamSettings, error) {
	if len(p) < setVideoStreamFixedLen {
		return SetVideoStreamSettings{}, fmt.Errorf("mavlink: SET_VIDEO_STREAM_SETTINGS payload too short: %d", len(p))
	}
	var s SetVideoStreamSettings
	off := 0
	s.FrameRate = math.Float32frombits(binary.LittleEndian.Uint32(p[off : off+4]))
	off += 4
	s.BitRate = binary.LittleEndian.Uint32(p[off : off+4])
	off += 4
	s.ResolutionH = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	s.ResolutionV = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	s.Rotation = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	s.HFov = binary.LittleEndian.Uint16(p[off : off+2])
	off += 2
	s.TargetSystem = p[off]
	off++
	s.TargetComponent = p[off]
	off++
	s.StreamID = p[off]
	off++
	s.URI = string(p[off:])
	return s, nil
}

// ParamExtRequestRead mirrors PARAM_EXT_REQUEST_READ (spec.md C9).
type ParamExtRequestRead struct {
	ParamIndex      int16
	TargetSystem    uint8
	TargetComponent uint8
	ParamID         string // <=16 bytes
}

func EncodeParamExtRequestRead(r ParamExtRequestRead) []byte {
	buf := make([]byte, 2+1+1+16)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(r.ParamIndex))
	buf[2] = r.TargetSystem
	buf[3] = r.TargetComponent
	putFixedString(buf[4:20], r.ParamID)
	return buf
}

func DecodeParamExtRequestRead(p []byte) (ParamExtRequestRead, error) {
	if len(p) < 20 {
		return ParamExtRequestRead{}, fmt.Errorf("mavlink: PARAM_EXT_REQUEST_READ payload too short: %d", len(p))
	}
	return ParamExtRequestRead{
		ParamIndex:      int16(binary.LittleEndian.Uint16(p[0:2])),
		TargetSystem:    p[2],
		TargetComponent: p[3],
		ParamID:         getFixedString(p[4:20]),
	}, nil
}

// ParamExtRequestList mirrors PARAM_EXT_REQUEST_LIST (spec.md C9).
type ParamExtRequestList struct {
	TargetSystem    uint8
	TargetComponent uint8
}

func EncodeParamExtRequestList(r ParamExtRequestList) []byte {
	return []byte{r.TargetSystem, r.TargetComponent}
}

func DecodeParamExtRequestList(p []byte) (ParamExtRequestList, error) {
	if len(p) < 2 {
		return ParamExtRequestList{}, fmt.Errorf("mavlink: PARAM_EXT_REQUEST_LIST payload too short: %d", len(p))
	}
	return ParamExtRequestList{TargetSystem: p[0], TargetComponent: p[1]}, nil
}

// ParamExtSet mirrors PARAM_EXT_SET (spec.md C9).
type ParamExtSet struct {
	TargetSystem    uint8
	TargetComponent uint8
	ParamType       uint8
	ParamID         string   // <=16 bytes
	ParamValue      [128]byte
}

func EncodeParamExtSet(s ParamExtSet) []byte {
	buf := make([]byte, 3+16+128)
	buf[0] = s.TargetSystem
	buf[1] = s.TargetComponent
	buf[2] = s.ParamType
	putFixedString(buf[3:19], s.ParamID)
	copy(buf[19:147], s.ParamValue[:])
	return buf
}

func DecodeParamExtSet(p []byte) (ParamExtSet, error) {
	if len(p) < 147 {
		return ParamExtSet{}, fmt.Errorf("mavlink: PARAM_EXT_SET payload too short: %d", len(p))
	}
	var s ParamExtSet
	s.TargetSystem = p[0]
	s.TargetComponent = p[1]
	s.ParamType = p[2]
	s.ParamID = getFixedString(p[3:19])
	copy(s.ParamValue[:], p[19:147])
	return s, nil
}

// ParamExtValue mirrors PARAM_EXT_VALUE (spec.md C9).
type ParamExtValue struct {
	ParamCount uint16
	ParamIndex uint16
	ParamType  uint8
	ParamID    string // <=16 bytes
	ParamValue [128]byte
}

func EncodeParamExtValue(v ParamExtValue) []byte {
	buf := make([]byte, 4+1+16+128)
	binary.LittleEndian.PutUint16(buf[0:2], v.ParamCount)
	binary.LittleEndian.PutUint16(buf[2:4], v.ParamIndex)
	buf[4] = v.ParamType
	putFixedString(buf[5:21], v.ParamID)
	copy(buf[21:149], v.ParamValue[:])
	return buf
}

func DecodeParamExtValue(p []byte) (ParamExtValue, error) {
	if len(p) < 149 {
		return ParamExtValue{}, fmt.Errorf("mavlink: PARAM_EXT_VALUE payload too short: %d", len(p))
	}
	var v ParamExtValue
	v.ParamCount = binary.LittleEndian.Uint16(p[0:2])
	v.ParamIndex = binary.LittleEndian.Uint16(p[2:4])
	v.ParamType = p[4]
	v.ParamID = getFixedString(p[5:21])
	copy(v.ParamValue[:], p[21:149])
	return v, nil
}

// ParamExtAck mirrors PARAM_EXT_ACK (spec.md C9).
type ParamExtAck struct {
	ParamType   uint8
	ParamResult uint8
	ParamID     string // <=16 bytes
	ParamValue  [128]byte
}

func EncodeParamExtAck(a ParamExtAck) []byte {
	buf := make([]byte, 2+16+128)
	buf[0] = a.ParamType
	buf[1] = a.ParamResult
	putFixedString(buf[2:18], a.ParamID)
	copy(buf[18:146], a.ParamValue[:])
	return buf
}

func DecodeParamExtAck(p []byte) (ParamExtAck, error) {
	if len(p) < 146 {
		return ParamExtAck{}, fmt.Errorf("mavlink: PARAM_EXT_ACK payload too short: %d", len(p))
	}
	var a ParamExtAck
	a.ParamType = p[0]
	a.ParamResult = p[1]
	a.ParamID = getFixedString(p[2:18])
	copy(a.ParamValue[:], p[18:146])
	return a, nil
}
