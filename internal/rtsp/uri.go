package rtsp

import (
	"fmt"
	"strings"
)

// URIBuilder is the external collaborator spec.md §1 calls
// get_rtsp_uri: given the server address, a path name, and an
// optional query suffix, build the URI a GCS should open to view a
// stream.
type URIBuilder interface {
	BuildURI(serverAddr, pathName, querySuffix string) (string, error)
}

// DefaultURIBuilder builds plain rtsp:// URIs against a MediaMTX-style
// RTSP server, one path per stream.
type DefaultURIBuilder struct{}

// BuildURI returns "rtsp://<serverAddr>/<pathName>[?<querySuffix>]".
// serverAddr must already include a port if one is required; pathName
// must not be empty.
func (DefaultURIBuilder) BuildURI(serverAddr, pathName, querySuffix string) (string, error) {
	if serverAddr == "" {
		return "", fmt.Errorf("rtsp: server address is empty")
	}
	if pathName == "" {
		return "", fmt.Errorf("rtsp: path name is empty")
	}

	var b strings.Builder
	b.WriteString("rtsp://")
	b.WriteString(serverAddr)
	b.WriteByte('/')
	b.WriteString(pathName)
	if querySuffix != "" {
		b.WriteByte('?')
		b.WriteString(querySuffix)
	}
	return b.String(), nil
}

// PathName derives the MediaMTX-style path name for componentID's
// streamID'th stream, e.g. (100, 1) -> "camera100-stream1", mirroring
// the device-path -> "cameraN" naming convention in a single-path
// component namespace instead of a /dev/videoN one.
func PathName(componentID uint8, streamID uint8) string {
	return fmt.Sprintf("camera%d-stream%d", componentID, streamID)
}
