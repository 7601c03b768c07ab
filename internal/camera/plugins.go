package camera

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/camerarecorder/camera-streaming-daemon/internal/logging"
	"github.com/camerarecorder/camera-streaming-daemon/internal/paramstore"
)

// V4L2Plugin discovers /dev/video* nodes and instantiates V4L2Device
// handles for them (spec.md C4).
type V4L2Plugin struct {
	devDir  string
	schema  *paramstore.Schema
	logger  *logging.Logger
	formats []Format // advertised formats; real per-device enumeration is out of core scope (spec.md §1)
}

// NewV4L2Plugin constructs a plugin scanning devDir (normally "/dev")
// for video capture nodes.
func NewV4L2Plugin(devDir string, schema *paramstore.Schema, logger *logging.Logger) *V4L2Plugin {
	return &V4L2Plugin{
		devDir:  devDir,
		schema:  schema,
		logger:  logger,
		formats: DefaultSimFormats(),
	}
}

func (p *V4L2Plugin) Name() string { return "v4l2" }

// ListDevices scans devDir for video* nodes, sorted lexicographically
// by path (so video10 sorts before video2).
func (p *V4L2Plugin) ListDevices() ([]string, error) {
	entries, err := os.ReadDir(p.devDir)
	if err != nil {
		return nil, fmt.Errorf("v4l2 plugin: read %s: %w", p.devDir, err)
	}
	var uris []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "video") {
			uris = append(uris, filepath.Join(p.devDir, e.Name()))
		}
	}
	sort.Strings(uris)
	return uris, nil
}

// CreateDevice opens devicePath and builds a best-effort CameraInfo.
// Capability-string enumeration (vendor/model/firmware from the driver)
// is the GStreamer/V4L2 pipeline surface's job per spec.md §1; here we
// synthesize a plausible Info from the device node name so handlers
// always have something to report.
func (p *V4L2Plugin) CreateDevice(devicePath string) (Device, error) {
	info := Info{
		Vendor:               "V4L2",
		Model:                filepath.Base(devicePath),
		FirmwareVersion:      0,
		ResolutionHorizontal: 1920,
		ResolutionVertical:   1080,
		DefinitionVersion:    1,
	}
	return OpenV4L2Device(devicePath, info, p.formats, p.schema, p.logger)
}

// SimPlugin provides one or more simulated Gazebo camera feeds. Unlike
// V4L2Plugin, its device list is static — there is no hardware to
// hot-plug (spec.md §4.4).
type SimPlugin struct {
	uris   []string
	schema *paramstore.Schema
	logger *logging.Logger
}

// NewSimPlugin constructs a plugin exposing the given simulated camera
// URIs (e.g. "gazebo://camera0").
func NewSimPlugin(uris []string, schema *paramstore.Schema, logger *logging.Logger) *SimPlugin {
	return &SimPlugin{uris: uris, schema: schema, logger: logger}
}

func (p *SimPlugin) Name() string { return "gazebo-sim" }

func (p *SimPlugin) ListDevices() ([]string, error) {
	return append([]string(nil), p.uris...), nil
}

func (p *SimPlugin) CreateDevice(uri string) (Device, error) {
	found := false
	for _, u := range p.uris {
		if u == uri {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("gazebo-sim plugin: unknown uri %q", uri)
	}
	return NewGazeboSimDevice(DefaultSimCameraInfo(), DefaultSimFormats(), p.schema, p.logger), nil
}
