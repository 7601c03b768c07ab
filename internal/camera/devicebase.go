package camera

import (
	"fmt"

	"github.com/camerarecorder/camera-streaming-daemon/internal/logging"
	"github.com/camerarecorder/camera-streaming-daemon/internal/paramstore"
)

// deviceSetter is a device-specific side effect run after the schema
// and type checks passed; the supported-set check runs afterwards, when
// the store commits the value. GazeboSimDevice installs setters for
// image-size, pixel-format, scene-mode, video-size, and video-format;
// V4L2Device installs them for those, video-snapshot, and its six
// numeric controls. A parameter with no entry in a device's setter
// table is store-only.
type deviceSetter func(v paramstore.Value) error

// baseDevice is the shared plumbing embedded by V4L2Device and
// GazeboSimDevice: a paramstore-backed current/supported value store,
// a setter dispatch table for the handful of parameters with
// device-side effects, capture mode, and the advertised Streams.
type baseDevice struct {
	info    Info
	store   *paramstore.Store
	streams []*Stream
	mode    Mode
	setters map[string]deviceSetter
	logger  *logging.Logger
}

func newBaseDevice(info Info, schema *paramstore.Schema, streams []*Stream, logger *logging.Logger) baseDevice {
	return baseDevice{
		info:    info,
		store:   paramstore.NewStore(schema),
		streams: streams,
		mode:    ModePreview,
		setters: make(map[string]deviceSetter),
		logger:  logger,
	}
}

func (d *baseDevice) Info() Info         { return d.info }
func (d *baseDevice) Streams() []*Stream { return d.streams }

func (d *baseDevice) GetParam(name string) (paramstore.Value, error) {
	return d.store.GetCurrent(name)
}

func (d *baseDevice) GetParamType(name string) (paramstore.Type, bool) {
	e, ok := d.store.Schema().Lookup(name)
	if !ok {
		return 0, false
	}
	return e.Type, true
}

func (d *baseDevice) ParamList() []paramstore.CurrentEntry {
	return d.store.ListCurrent()
}

// SetParam checks the name and declared type against the schema, runs
// any device-specific setter, and then commits through the Store, which
// applies the supported-set check. A rejecting setter leaves the store
// untouched, matching spec.md's "ParamStore is mutated only by handlers
// ... after a successful device setter returns". A value outside a
// non-empty supported set is rejected only at commit, after the setter
// has already run.
func (d *baseDevice) SetParam(name string, value paramstore.Value, declared paramstore.Type) error {
	entry, ok := d.store.Schema().Lookup(name)
	if !ok {
		return paramstore.ErrUnknownParam
	}
	if declared != entry.Type {
		return paramstore.ErrBadType
	}
	if setter, hasEffect := d.setters[name]; hasEffect {
		if err := setter(value); err != nil {
			if d.logger != nil {
				d.logger.WithFields(logging.Fields{"param": name, "error": err}).Warn("device rejected parameter")
			}
			return fmt.Errorf("%w: %s: %v", ErrDeviceRejected, name, err)
		}
	}
	return d.store.SetCurrent(name, value, declared)
}

func (d *baseDevice) SetMode(m Mode) error {
	d.mode = m
	return nil
}

func (d *baseDevice) GetMode() Mode {
	return d.mode
}
