package camera

import (
	"fmt"

	"github.com/camerarecorder/camera-streaming-daemon/internal/logging"
	"github.com/camerarecorder/camera-streaming-daemon/internal/paramstore"
	"golang.org/x/sys/unix"
)

// V4L2Device is a Device backed by a real /dev/videoN node. Numeric
// controls with a hardware effect (brightness, contrast, saturation,
// hue, gain, sharpness) are set through VIDIOC_S_CTRL; reads come from
// the parameter store, not from VIDIOC_G_CTRL.
// image-size, pixel-format, video-size, video-format, scene-mode, and
// video-snapshot are schema-validated and store-updated but do not
// issue VIDIOC_S_FMT — see DESIGN.md for why.
type V4L2Device struct {
	baseDevice
	path string
	fd   int
}

// OpenV4L2Device opens devicePath and constructs a Device advertising
// info and formats. fd stays open for the lifetime of the Device;
// callers are responsible for Close.
func OpenV4L2Device(devicePath string, info Info, formats []Format, schema *paramstore.Schema, logger *logging.Logger) (*V4L2Device, error) {
	fd, err := unix.Open(devicePath, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", devicePath, err)
	}

	stream := &Stream{ID: 1, Formats: formats}
	d := &V4L2Device{
		baseDevice: newBaseDevice(info, schema, []*Stream{stream}, logger),
		path:       devicePath,
		fd:         fd,
	}
	d.installSetters()
	d.seedDefaults()
	return d, nil
}

// Close releases the underlying file descriptor.
func (d *V4L2Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}

func (d *V4L2Device) installSetters() {
	numeric := map[string]uint32{
		"brightness": ctrlBrightness,
		"contrast":   ctrlContrast,
		"saturation": ctrlSaturation,
		"hue":        ctrlHue,
		"gain":       ctrlGain,
		"sharpness":  ctrlSharpness,
	}
	for name, ctrlID := range numeric {
		ctrlID := ctrlID
		d.setters[name] = func(v paramstore.Value) error {
			return ioctlSetControl(d.fd, ctrlID, v.DecodeInt32())
		}
	}

	// These have a device-side intent per spec.md §4.3 but require the
	// full VIDIOC_S_FMT struct/union to actually reconfigure the
	// capture pipeline (out of the core's scope per spec.md §1); they
	// are accepted (schema + type checked) without a hardware ioctl.
	noHardwareEffect := []string{"image-size", "pixel-format", "video-size", "video-format", "scene-mode", "video-snapshot"}
	for _, name := range noHardwareEffect {
		d.setters[name] = func(paramstore.Value) error { return nil }
	}
}

func (d *V4L2Device) seedDefaults() {
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
