package camera

import (
	"fmt"

	"github.com/camerarecorder/camera-streaming-daemon/internal/logging"
	"github.com/camerarecorder/camera-streaming-daemon/internal/paramstore"
)

// GazeboSimDevice is a plugin-provided virtual camera with no backing
// hardware — the simulated Gazebo feed named in spec.md §1. Its
// device-side setters are in-memory and can be made to fail for a
// named parameter via Reject, used to exercise spec.md's S6 scenario
// (device rejects a set, GCS resyncs to the echoed current value).
type GazeboSimDevice struct {
	baseDevice
	Reject map[string]bool
}

// NewGazeboSimDevice constructs a simulated device advertising info
// and formats on a single stream.
func NewGazeboSimDevice(info Info, formats []Format, schema *paramstore.Schema, logger *logging.Logger) *GazeboSimDevice {
	stream := &Stream{ID: 1, Formats: formats}
	d := &GazeboSimDevice{
		baseDevice: newBaseDevice(info, schema, []*Stream{stream}, logger),
		Reject:     make(map[string]bool),
	}
	d.installSetters()
	d.seedDefaults()
	return d
}

func (d *GazeboSimDevice) installSetters() {
	effectful := []string{"image-size", "pixel-format", "scene-mode", "video-size", "video-format"}
	for _, name := range effectful {
		name := name
		d.setters[name] = func(paramstore.Value) error {
			if d.Reject[name] {
				return fmt.Errorf("simulated device rejected %s", name)
			}
			return nil
		}
	}
}

func (d *GazeboSimDevice) seedDefaults() {
	for _, e := range d.store.Schema().Iter() {
		var v paramstore.Value
		switch e.Type {
		case paramstore.TypeUint8:
			v = paramstore.EncodeUint8(0)
		case paramstore.TypeInt32:
			v = paramstore.EncodeInt32(0)
		case paramstore.TypeUint32:
			v = paramstore.EncodeUint32(0)
		case paramstore.TypeReal32:
			v = paramstore.EncodeReal32(0)
		}
		_ = d.store.SetCurrent(e.Name, v, e.Type)
	}
}

// DefaultSimCameraInfo returns a plausible CameraInfo for the simulated feed.
func DefaultSimCameraInfo() Info {
	return Info{
		Vendor:               "Gazebo",
		Model:                "SimCam",
		FirmwareVersion:      1,
		FocalLength:          4.0,
		SensorWidth:          6.0,
		SensorHeight:         4.5,
		ResolutionHorizontal: 1920,
		ResolutionVertical:   1080,
		LensID:               0,
		Flags:                0,
		DefinitionVersion:    1,
		DefinitionURI:        "",
	}
}

// DefaultSimFormats returns the advertised format list for the simulated feed.
func DefaultSimFormats() []Format {
	return []Format{
		{
			PixelFormat: "RGB24",
			FrameSizes: []FrameSize{
				{Width: 640, Height: 480},
				{Width: 1280, Height: 720},
				{Width: 1920, Height: 1080},
			},
		},
	}
}
