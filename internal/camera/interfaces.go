package camera

import (
	"errors"

	"github.com/camerarecorder/camera-streaming-daemon/internal/paramstore"
)

// ErrDeviceRejected is returned by a Device's SetParam when the
// underlying hardware (or simulated) setter rejects a value after the
// schema and type checks already passed.
var ErrDeviceRejected = errors.New("camera: device rejected parameter")

// Device is the polymorphic handle the server holds over a camera,
// uniform across V4L2Device and GazeboSimDevice (spec.md C3). SetParam
// validates against the schema, dispatches to any device-specific
// setter, and only updates the backing paramstore.Store on success.
type Device interface {
	// Info returns the static per-device record (spec.md CameraInfo).
	Info() Info
	// Streams returns this device's advertised RTSP streams, each
	// carrying its own non-empty Format/FrameSize list.
	Streams() []*Stream

	GetParam(name string) (paramstore.Value, error)
	SetParam(name string, value paramstore.Value, declared paramstore.Type) error
	GetParamType(name string) (paramstore.Type, bool)
	ParamList() []paramstore.CurrentEntry

	SetMode(m Mode) error
	GetMode() Mode
}

// Plugin discovers devices of one kind and instantiates them by URI
// (spec.md C4). Discovery failures are the plugin's caller's concern
// to log; a Plugin itself just returns what it can.
type Plugin interface {
	// Name identifies the plugin in logs (e.g. "v4l2", "gazebo-sim").
	Name() string
	// ListDevices returns the URIs of devices currently discoverable.
	ListDevices() ([]string, error)
	// CreateDevice instantiates a Device for a URI returned by ListDevices.
	CreateDevice(uri string) (Device, error)
}
